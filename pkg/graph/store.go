package graph

import (
	"strings"
	"sync"

	"github.com/skyatlas/missionq/pkg/common"
)

// Store is the process-wide knowledge graph: canonical entities and
// typed relations merged from per-document extraction results.
//
// All mutation goes through merge operations; nodes are never deleted
// and a relation only exists while both endpoints do. The store is safe
// for concurrent use: merges are serialized internally so the
// frequency and running-mean invariants hold under parallel ingestion.
type Store struct {
	mu            sync.RWMutex
	entities      map[string]*common.Entity
	relations     map[string]*common.Relation
	entityOrder   []string
	relationOrder []string
}

// NewStore creates an empty knowledge graph store.
func NewStore() *Store {
	return &Store{
		entities:  make(map[string]*common.Entity),
		relations: make(map[string]*common.Relation),
	}
}

// NormalizeEntityText lowercases text and joins whitespace runs with
// underscores, producing the canonical half of an entity identity.
func NormalizeEntityText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "_")
}

// EntityID derives the canonical node id from a label and raw mention
// text. The same (label, normalized text) always maps to the same id.
func EntityID(label common.EntityLabel, text string) string {
	return string(label) + "_" + NormalizeEntityText(text)
}

// RelationID derives the canonical edge id from its endpoints and type.
func RelationID(sourceID, relType, targetID string) string {
	return sourceID + "-" + relType + "-" + targetID
}

// MergeDocument folds one document's mentions and relation candidates
// into the graph. Re-merging the same (label, text) always updates the
// same node; repeat evidence for a relation raises its confidence by a
// fixed increment capped at 1.0.
func (s *Store) MergeDocument(candidates []common.RelationCandidate, mentions []common.Mention, doc common.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range mentions {
		s.mergeEntityLocked(m, doc.ID)
	}

	for _, c := range candidates {
		sourceID := EntityID(c.SourceLabel, c.SourceText)
		targetID := EntityID(c.TargetLabel, c.TargetText)
		if s.entities[sourceID] == nil || s.entities[targetID] == nil {
			continue
		}
		s.mergeRelationLocked(common.Relation{
			ID:                  RelationID(sourceID, c.Type, targetID),
			SourceEntityID:      sourceID,
			TargetEntityID:      targetID,
			Type:                c.Type,
			Confidence:          c.Confidence,
			EvidenceDocumentIDs: []string{doc.ID},
		}, doc.ID)
	}
}

func (s *Store) mergeEntityLocked(m common.Mention, docID string) {
	id := EntityID(m.Label, m.Text)

	if existing, ok := s.entities[id]; ok {
		existing.Frequency++
		existing.AvgConfidence += (m.Confidence - existing.AvgConfidence) / float64(existing.Frequency)
		existing.DocumentIDs = append(existing.DocumentIDs, docID)
		return
	}

	s.entities[id] = &common.Entity{
		ID:            id,
		Name:          m.Text,
		Type:          m.Label,
		Description:   describeEntity(id, m.Text, m.Label),
		Frequency:     1,
		AvgConfidence: m.Confidence,
		DocumentIDs:   []string{docID},
	}
	s.entityOrder = append(s.entityOrder, id)
}

func (s *Store) mergeRelationLocked(rel common.Relation, docID string) {
	if existing, ok := s.relations[rel.ID]; ok {
		existing.EvidenceDocumentIDs = append(existing.EvidenceDocumentIDs, docID)
		existing.Confidence += relationEvidenceIncrement
		if existing.Confidence > 1.0 {
			existing.Confidence = 1.0
		}
		return
	}

	inserted := rel
	s.relations[rel.ID] = &inserted
	s.relationOrder = append(s.relationOrder, rel.ID)
}

// Confidence added for every further evidence document on an existing
// relation.
const relationEvidenceIncrement = 0.1

// Snapshot returns a deep copy of the graph in stable insertion order,
// suitable for JSON export and for replay into a fresh store.
func (s *Store) Snapshot() common.GraphSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := common.GraphSnapshot{
		Nodes: make([]common.Entity, 0, len(s.entityOrder)),
		Links: make([]common.Relation, 0, len(s.relationOrder)),
	}
	for _, id := range s.entityOrder {
		e := *s.entities[id]
		e.DocumentIDs = append([]string(nil), e.DocumentIDs...)
		snap.Nodes = append(snap.Nodes, e)
	}
	for _, id := range s.relationOrder {
		r := *s.relations[id]
		r.EvidenceDocumentIDs = append([]string(nil), r.EvidenceDocumentIDs...)
		snap.Links = append(snap.Links, r)
	}
	return snap
}

// LoadSnapshot replaces the graph contents with a previously exported
// snapshot. Relations whose endpoints are missing from the snapshot are
// dropped to preserve the endpoint invariant.
func (s *Store) LoadSnapshot(snap common.GraphSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities = make(map[string]*common.Entity, len(snap.Nodes))
	s.relations = make(map[string]*common.Relation, len(snap.Links))
	s.entityOrder = s.entityOrder[:0]
	s.relationOrder = s.relationOrder[:0]

	for _, node := range snap.Nodes {
		if _, ok := s.entities[node.ID]; ok {
			continue
		}
		e := node
		e.DocumentIDs = append([]string(nil), node.DocumentIDs...)
		s.entities[node.ID] = &e
		s.entityOrder = append(s.entityOrder, node.ID)
	}
	for _, link := range snap.Links {
		if _, ok := s.relations[link.ID]; ok {
			continue
		}
		if s.entities[link.SourceEntityID] == nil || s.entities[link.TargetEntityID] == nil {
			continue
		}
		r := link
		r.EvidenceDocumentIDs = append([]string(nil), link.EvidenceDocumentIDs...)
		s.relations[link.ID] = &r
		s.relationOrder = append(s.relationOrder, link.ID)
	}
}

// Entity returns a copy of the node with the given canonical id.
func (s *Store) Entity(id string) (common.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[id]
	if !ok {
		return common.Entity{}, false
	}
	out := *e
	out.DocumentIDs = append([]string(nil), e.DocumentIDs...)
	return out, true
}

// Relation returns a copy of the edge with the given canonical id.
func (s *Store) Relation(id string) (common.Relation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.relations[id]
	if !ok {
		return common.Relation{}, false
	}
	out := *r
	out.EvidenceDocumentIDs = append([]string(nil), r.EvidenceDocumentIDs...)
	return out, true
}

// EntityCount reports the number of canonical nodes.
func (s *Store) EntityCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// RelationCount reports the number of edges.
func (s *Store) RelationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.relations)
}
