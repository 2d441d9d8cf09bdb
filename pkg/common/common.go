package common

import "fmt"

// EntityLabel is the closed set of entity categories the pipeline knows
// about. Any other label is rejected at validation time rather than
// silently carried as a free-form string.
type EntityLabel string

const (
	LabelSatellite    EntityLabel = "SATELLITE"
	LabelInstrument   EntityLabel = "INSTRUMENT"
	LabelOrganization EntityLabel = "ORGANIZATION"
	LabelDataProduct  EntityLabel = "DATA_PRODUCT"
	LabelMission      EntityLabel = "MISSION"
)

// Labels lists every valid entity label in a fixed order.
func Labels() []EntityLabel {
	return []EntityLabel{
		LabelSatellite,
		LabelInstrument,
		LabelOrganization,
		LabelDataProduct,
		LabelMission,
	}
}

// Valid reports whether l is one of the known entity labels.
func (l EntityLabel) Valid() bool {
	switch l {
	case LabelSatellite, LabelInstrument, LabelOrganization, LabelDataProduct, LabelMission:
		return true
	}
	return false
}

// Validate returns an error naming the label when it is not part of the
// closed set.
func (l EntityLabel) Validate() error {
	if !l.Valid() {
		return fmt.Errorf("unknown entity label %q", string(l))
	}
	return nil
}

// Document is one corpus document. Content is plain text with markup
// already stripped by the ingestion collaborator; it is never rewritten
// by the pipeline.
type Document struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// Mention is a single occurrence of a named concept in one document,
// produced by the entity extractor. Start and End are byte offsets into
// the document content.
type Mention struct {
	Text       string      `json:"text"`
	Label      EntityLabel `json:"label"`
	Confidence float64     `json:"confidence"`
	Start      int         `json:"start"`
	End        int         `json:"end"`
}

// Entity is a canonical graph node, the merged representation of all
// mentions sharing the same (label, normalized text) identity.
//
// Frequency counts the (document, mention) merges folded into the node
// and AvgConfidence is the running mean of their mention confidences.
type Entity struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          EntityLabel `json:"type"`
	Description   string      `json:"description"`
	Frequency     int         `json:"frequency"`
	AvgConfidence float64     `json:"avg_confidence"`
	DocumentIDs   []string    `json:"document_ids"`
}

// Relation is a typed, directed, evidence-backed edge between two
// canonical entities. Identity is (source, type, target); confidence is
// monotonically non-decreasing as evidence accumulates, capped at 1.0.
type Relation struct {
	ID                  string   `json:"id"`
	SourceEntityID      string   `json:"source_entity_id"`
	TargetEntityID      string   `json:"target_entity_id"`
	Type                string   `json:"type"`
	Confidence          float64  `json:"confidence"`
	EvidenceDocumentIDs []string `json:"evidence_document_ids"`
}

// RelationCandidate is a proposed relation between two mentions of the
// same document, emitted by the relation inferencer before graph merge.
type RelationCandidate struct {
	SourceText  string      `json:"source_text"`
	SourceLabel EntityLabel `json:"source_label"`
	TargetText  string      `json:"target_text"`
	TargetLabel EntityLabel `json:"target_label"`
	Type        string      `json:"type"`
	Confidence  float64     `json:"confidence"`
}

// ScoredDocument pairs a document with its retrieval score for one
// query. Scores are non-negative and never persisted.
type ScoredDocument struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// Source is a cited document attached to a query response.
type Source struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Snippet    string  `json:"snippet"`
	Confidence float64 `json:"confidence"`
}

// Response is the payload returned for every query. It is always
// well-formed: failures upstream degrade the answer, they never replace
// it with an error.
type Response struct {
	Answer   string    `json:"answer"`
	Sources  []Source  `json:"sources"`
	Entities []Mention `json:"entities"`
}

// GraphSnapshot is the JSON-serializable export of the knowledge graph
// consumed by visualization tooling.
type GraphSnapshot struct {
	Nodes []Entity   `json:"nodes"`
	Links []Relation `json:"links"`
}
