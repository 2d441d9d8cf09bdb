package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skyatlas/missionq/internal/corpus"
	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/common"
	"github.com/skyatlas/missionq/pkg/graph"
	"github.com/skyatlas/missionq/pkg/logger"
	"github.com/skyatlas/missionq/pkg/store"
)

// IngestMsg is the payload published to the ingest queue.
type IngestMsg struct {
	Message   string            `json:"message"`
	Documents []common.Document `json:"documents"`
}

// ProcessIngestMessage parses a batch of documents from the queue,
// runs it through the pipeline and persists the resulting graph
// snapshot. The snapshot store is optional.
func ProcessIngestMessage(
	ctx context.Context,
	pipeline *graph.Pipeline,
	snapshots store.SnapshotStore,
	msg string,
) error {
	data := new(IngestMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("failed to parse ingest message: %w", err)
	}

	if len(data.Documents) == 0 {
		logger.Warn("[Queue] Ingest message carried no documents")
		return nil
	}

	docs, err := corpus.Normalize(data.Documents)
	if err != nil {
		return fmt.Errorf("invalid ingest batch: %w", err)
	}

	if err := pipeline.Ingest(ctx, docs); err != nil {
		return fmt.Errorf("failed to ingest batch: %w", err)
	}

	logger.Info("[Queue] Ingested batch", "documents", len(docs))

	if snapshots == nil {
		return nil
	}

	snap := pipeline.Store().Snapshot()
	err = util.RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
		return snapshots.Save(ctx, snap)
	})
	if err != nil {
		return fmt.Errorf("failed to persist graph snapshot: %w", err)
	}

	logger.Info("[Queue] Persisted graph snapshot",
		"entities", len(snap.Nodes),
		"relations", len(snap.Links),
	)
	return nil
}
