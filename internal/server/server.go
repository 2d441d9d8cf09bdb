package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rabbitmq/amqp091-go"

	"github.com/skyatlas/missionq/internal/corpus"
	"github.com/skyatlas/missionq/internal/queue"
	mid "github.com/skyatlas/missionq/internal/server/middleware"
	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/answer"
	"github.com/skyatlas/missionq/pkg/extract"
	"github.com/skyatlas/missionq/pkg/graph"
	"github.com/skyatlas/missionq/pkg/index"
	"github.com/skyatlas/missionq/pkg/logger"
	"github.com/skyatlas/missionq/pkg/query"
	"github.com/skyatlas/missionq/pkg/relate"
	"github.com/skyatlas/missionq/pkg/store"
	storepgx "github.com/skyatlas/missionq/pkg/store/pgx"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor := extract.NewRuleExtractor()
	graphStore := graph.NewStore()
	docIndex := index.New()

	pipeline := graph.NewPipeline(graph.NewPipelineParams{
		Extractor:    extractor,
		Inferencer:   relate.NewInferencer(),
		Store:        graphStore,
		Index:        docIndex,
		ParallelDocs: int(util.GetEnvNumeric("INGEST_PARALLEL_DOCS", 4)),
	})

	aiClient := NewAIClient()

	synth, err := answer.NewSynthesizer(answer.NewSynthesizerParams{
		Client:    aiClient,
		Extractor: extractor,
		Timeout:   time.Duration(util.GetEnvNumeric("ANSWER_TIMEOUT_SECONDS", 20)) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create synthesizer", "err", err)
	}

	engine := query.NewEngine(query.NewEngineParams{
		Store:       graphStore,
		Index:       docIndex,
		Synthesizer: synth,
	})

	// Optional snapshot persistence
	var snapshots store.SnapshotStore
	var pool *pgxpool.Pool
	if dbURL := util.GetEnv("DATABASE_URL"); dbURL != "" {
		migrationsPath := util.GetEnvString("MIGRATIONS_PATH", "migrations")
		if err := storepgx.RunMigrations(migrationsPath, dbURL); err != nil {
			logger.Fatal("Failed to run migrations", "err", err)
		}

		pool, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", "err", err)
		}
		defer pool.Close()
		snapshots = storepgx.NewSnapshotDBStore(pool)
	}

	docs, err := corpus.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load corpus", "err", err)
	}

	if len(docs) > 0 {
		if err := pipeline.Ingest(ctx, docs); err != nil {
			logger.Fatal("Failed to ingest corpus", "err", err)
		}
		if snapshots != nil {
			if err := snapshots.Save(ctx, graphStore.Snapshot()); err != nil {
				logger.Error("Failed to persist graph snapshot", "err", err)
			}
		}
	} else if snapshots != nil {
		snap, err := snapshots.Load(ctx)
		if err != nil {
			logger.Fatal("Failed to load graph snapshot", "err", err)
		}
		graphStore.LoadSnapshot(snap)
		logger.Info("Restored graph snapshot",
			"entities", graphStore.EntityCount(),
			"relations", graphStore.RelationCount(),
		)
	}

	// Optional ingest queue
	var ch *amqp091.Channel
	if util.GetEnv("RABBITMQ_HOST") != "" {
		que := queue.Init()
		defer que.Close()
		ch, err = que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		if err := queue.SetupQueues(ch, []string{queue.IngestQueue}); err != nil {
			logger.Fatal("Failed to set up queues", "err", err)
		}
	}

	app := &mid.App{
		Engine:    engine,
		Pipeline:  pipeline,
		Queue:     ch,
		Snapshots: snapshots,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
