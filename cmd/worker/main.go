package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyatlas/missionq/internal/corpus"
	"github.com/skyatlas/missionq/internal/queue"
	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/extract"
	"github.com/skyatlas/missionq/pkg/graph"
	"github.com/skyatlas/missionq/pkg/index"
	"github.com/skyatlas/missionq/pkg/logger"
	"github.com/skyatlas/missionq/pkg/logger/console"
	"github.com/skyatlas/missionq/pkg/relate"
	"github.com/skyatlas/missionq/pkg/store"
	storepgx "github.com/skyatlas/missionq/pkg/store/pgx"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	graphStore := graph.NewStore()
	pipeline := graph.NewPipeline(graph.NewPipelineParams{
		Extractor:    extract.NewRuleExtractor(),
		Inferencer:   relate.NewInferencer(),
		Store:        graphStore,
		Index:        index.New(),
		ParallelDocs: int(util.GetEnvNumeric("INGEST_PARALLEL_DOCS", 4)),
	})

	// Optional snapshot persistence
	var snapshots store.SnapshotStore
	if dbURL := util.GetEnv("DATABASE_URL"); dbURL != "" {
		migrationsPath := util.GetEnvString("MIGRATIONS_PATH", "migrations")
		if err := storepgx.RunMigrations(migrationsPath, dbURL); err != nil {
			logger.Fatal("Failed to run migrations", "err", err)
		}

		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("Unable to connect to database", "err", err)
		}
		defer pool.Close()
		snapshots = storepgx.NewSnapshotDBStore(pool)
	}

	// Boot from the configured corpus, or from the persisted snapshot
	// when no corpus source is set.
	docs, err := corpus.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load corpus", "err", err)
	}
	if len(docs) > 0 {
		if err := pipeline.Ingest(ctx, docs); err != nil {
			logger.Fatal("Failed to ingest corpus", "err", err)
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

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	// Init rabbitmq queues if not exist
	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	queues := []string{queue.IngestQueue}
	if err := queue.SetupQueues(ch, queues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	logger.Info("Listening for messages")

	// Single consumer channel with prefetch=1 so only one batch is
	// processed at a time.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	err = consumerCh.Qos(1, 0, true)
	if err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := consumerCh.Consume(
		queue.IngestQueue,
		fmt.Sprintf("%s_consumer", queue.IngestQueue),
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.IngestQueue, "err", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Info("Message channel closed", "queue", queue.IngestQueue)
					return
				}

				startTime := time.Now()
				logger.Info("Received message", "queue", queue.IngestQueue)

				processingErr := queue.ProcessIngestMessage(ctx, pipeline, snapshots, string(msg.Body))

				// If there was an error send to retry or dead-letter, otherwise ack the message
				if processingErr != nil {
					logger.Error("Error processing message", "queue", queue.IngestQueue, "err", processingErr)
					handleProcessingError(consumerCh, msg, queue.IngestQueue)
				} else {
					if err := msg.Ack(false); err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
					logger.Info("Message processed successfully", "queue", queue.IngestQueue)
				}

				processingDuration := time.Since(startTime)
				hours := int(processingDuration.Hours())
				minutes := int(processingDuration.Minutes()) % 60
				seconds := int(processingDuration.Seconds()) % 60
				logger.Info(
					"Processing time",
					"duration", fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds),
				)
				logger.Info("Waiting for next message")
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}

func handleProcessingError(ch *amqp.Channel, msg amqp.Delivery, queueName string) {
	retries := 0
	if val, ok := msg.Headers["x-retries"]; ok {
		if v, ok := val.(int32); ok {
			retries = int(v)
		}
	}

	// After 10 attempts the message goes to the dead-letter queue
	if retries >= 10 {
		dlqName := queueName + "_dlq"
		logger.Info("Sending message to DLQ", "dlq", dlqName)
		pubErr := ch.Publish(
			"",
			dlqName,
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
		return
	}

	retryName := queueName + "_retry"
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retries"] = int32(retries + 1)

	pubErr := ch.Publish(
		"",
		retryName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("Failed to publish to retry queue", "queue", retryName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
