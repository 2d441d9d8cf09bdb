package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/skyatlas/missionq/pkg/common"
	"github.com/skyatlas/missionq/pkg/extract"
	"github.com/skyatlas/missionq/pkg/graph"
	"github.com/skyatlas/missionq/pkg/relate"
)

type memorySnapshots struct {
	saved int
	snap  common.GraphSnapshot
	fail  bool
}

func (m *memorySnapshots) Save(ctx context.Context, snap common.GraphSnapshot) error {
	if m.fail {
		return errors.New("save failed")
	}
	m.saved++
	m.snap = snap
	return nil
}

func (m *memorySnapshots) Load(ctx context.Context) (common.GraphSnapshot, error) {
	return m.snap, nil
}

func newTestPipeline() *graph.Pipeline {
	return graph.NewPipeline(graph.NewPipelineParams{
		Extractor:  extract.NewRuleExtractor(),
		Inferencer: relate.NewInferencer(),
		Store:      graph.NewStore(),
	})
}

func TestProcessIngestMessage(t *testing.T) {
	pipeline := newTestPipeline()
	snapshots := &memorySnapshots{}

	msg, err := json.Marshal(IngestMsg{
		Message: "Ingest document batch",
		Documents: []common.Document{
			{ID: "d1", Title: "INSAT-3D", Content: "ISRO operates INSAT-3D."},
		},
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if err := ProcessIngestMessage(context.Background(), pipeline, snapshots, string(msg)); err != nil {
		t.Fatalf("processing failed: %v", err)
	}

	if pipeline.Store().EntityCount() == 0 {
		t.Fatal("expected entities merged from the batch")
	}
	if snapshots.saved != 1 {
		t.Fatalf("expected 1 snapshot save, got %d", snapshots.saved)
	}
	if len(snapshots.snap.Nodes) == 0 {
		t.Fatal("persisted snapshot is empty")
	}
}

func TestProcessIngestMessage_InvalidPayload(t *testing.T) {
	pipeline := newTestPipeline()

	if err := ProcessIngestMessage(context.Background(), pipeline, nil, "{not json"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestProcessIngestMessage_EmptyBatchIsNoop(t *testing.T) {
	pipeline := newTestPipeline()
	snapshots := &memorySnapshots{}

	msg, _ := json.Marshal(IngestMsg{Message: "empty"})
	if err := ProcessIngestMessage(context.Background(), pipeline, snapshots, string(msg)); err != nil {
		t.Fatalf("expected nil error for empty batch, got %v", err)
	}
	if snapshots.saved != 0 {
		t.Fatal("empty batch must not persist a snapshot")
	}
}

func TestProcessIngestMessage_PersistenceFailureSurfaces(t *testing.T) {
	pipeline := newTestPipeline()
	snapshots := &memorySnapshots{fail: true}

	msg, _ := json.Marshal(IngestMsg{
		Documents: []common.Document{
			{ID: "d1", Title: "INSAT-3D", Content: "ISRO operates INSAT-3D."},
		},
	})
	if err := ProcessIngestMessage(context.Background(), pipeline, snapshots, string(msg)); err == nil {
		t.Fatal("expected error when snapshot persistence fails")
	}
}
