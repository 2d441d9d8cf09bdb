package store

import (
	"context"

	"github.com/skyatlas/missionq/pkg/common"
)

// SnapshotStore persists knowledge graph snapshots so a restarted
// process can serve queries without replaying the corpus.
type SnapshotStore interface {
	// Save replaces the persisted snapshot with the given one.
	Save(ctx context.Context, snap common.GraphSnapshot) error

	// Load returns the persisted snapshot. An empty database yields an
	// empty snapshot, not an error.
	Load(ctx context.Context) (common.GraphSnapshot, error)
}
