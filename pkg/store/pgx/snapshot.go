package pgx

import (
	"context"
	"sync"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skyatlas/missionq/pkg/common"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// SnapshotDBStore persists graph snapshots in PostgreSQL. Writes
// replace the whole snapshot inside one transaction; a snapshot is
// small enough that incremental updates are not worth their
// complexity.
type SnapshotDBStore struct {
	conn   pgxIConn
	dbLock sync.Mutex
}

// NewSnapshotDBStore creates a snapshot store over an existing
// database connection or pool.
func NewSnapshotDBStore(conn pgxIConn) *SnapshotDBStore {
	return &SnapshotDBStore{
		conn:   conn,
		dbLock: sync.Mutex{},
	}
}

// Save replaces the persisted snapshot with the given one.
func (s *SnapshotDBStore) Save(ctx context.Context, snap common.GraphSnapshot) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM graph_relations`); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM graph_entities`); err != nil {
		return err
	}

	for ord, ent := range snap.Nodes {
		_, err := tx.Exec(ctx, `
			INSERT INTO graph_entities
				(id, name, type, description, frequency, avg_confidence, document_ids, ordinal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			ent.ID,
			ent.Name,
			string(ent.Type),
			ent.Description,
			ent.Frequency,
			ent.AvgConfidence,
			ent.DocumentIDs,
			ord,
		)
		if err != nil {
			return err
		}
	}

	for ord, rel := range snap.Links {
		_, err := tx.Exec(ctx, `
			INSERT INTO graph_relations
				(id, source_entity_id, target_entity_id, type, confidence, evidence_document_ids, ordinal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			rel.ID,
			rel.SourceEntityID,
			rel.TargetEntityID,
			rel.Type,
			rel.Confidence,
			rel.EvidenceDocumentIDs,
			ord,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Load returns the persisted snapshot in its original insertion order.
func (s *SnapshotDBStore) Load(ctx context.Context) (common.GraphSnapshot, error) {
	snap := common.GraphSnapshot{
		Nodes: []common.Entity{},
		Links: []common.Relation{},
	}

	rows, err := s.conn.Query(ctx, `
		SELECT id, name, type, description, frequency, avg_confidence, document_ids
		FROM graph_entities
		ORDER BY ordinal
	`)
	if err != nil {
		return snap, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ent       common.Entity
			labelText string
		)
		err := rows.Scan(
			&ent.ID,
			&ent.Name,
			&labelText,
			&ent.Description,
			&ent.Frequency,
			&ent.AvgConfidence,
			&ent.DocumentIDs,
		)
		if err != nil {
			return snap, err
		}
		ent.Type = common.EntityLabel(labelText)
		snap.Nodes = append(snap.Nodes, ent)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}
	rows.Close()

	relRows, err := s.conn.Query(ctx, `
		SELECT id, source_entity_id, target_entity_id, type, confidence, evidence_document_ids
		FROM graph_relations
		ORDER BY ordinal
	`)
	if err != nil {
		return snap, err
	}
	defer relRows.Close()

	for relRows.Next() {
		var rel common.Relation
		err := relRows.Scan(
			&rel.ID,
			&rel.SourceEntityID,
			&rel.TargetEntityID,
			&rel.Type,
			&rel.Confidence,
			&rel.EvidenceDocumentIDs,
		)
		if err != nil {
			return snap, err
		}
		snap.Links = append(snap.Links, rel)
	}
	if err := relRows.Err(); err != nil {
		return snap, err
	}

	return snap, nil
}
