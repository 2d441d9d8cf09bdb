package graph

import (
	"math"
	"reflect"
	"testing"

	"github.com/skyatlas/missionq/pkg/common"
)

func TestEntityID_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		label common.EntityLabel
		text  string
		want  string
	}{
		{"simple", common.LabelOrganization, "ISRO", "ORGANIZATION_isro"},
		{"case folded", common.LabelOrganization, "isro", "ORGANIZATION_isro"},
		{"whitespace run", common.LabelInstrument, "Ocean  Colour\tMonitor", "INSTRUMENT_ocean_colour_monitor"},
		{"padded", common.LabelSatellite, "  INSAT-3D ", "SATELLITE_insat-3d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntityID(tt.label, tt.text); got != tt.want {
				t.Fatalf("EntityID(%s, %q) = %q, want %q", tt.label, tt.text, got, tt.want)
			}
		})
	}
}

func TestMergeDocument_EntityIdentity(t *testing.T) {
	s := NewStore()

	mentions := []common.Mention{
		{Text: "ISRO", Label: common.LabelOrganization, Confidence: 0.9},
		{Text: "isro", Label: common.LabelOrganization, Confidence: 0.7},
	}
	s.MergeDocument(nil, mentions, common.Document{ID: "d1"})
	s.MergeDocument(nil, mentions[:1], common.Document{ID: "d2"})

	if s.EntityCount() != 1 {
		t.Fatalf("expected 1 canonical entity, got %d", s.EntityCount())
	}

	ent, ok := s.Entity("ORGANIZATION_isro")
	if !ok {
		t.Fatal("canonical entity not found")
	}
	if ent.Frequency != 3 {
		t.Fatalf("expected frequency 3, got %d", ent.Frequency)
	}
	wantAvg := (0.9 + 0.7 + 0.9) / 3
	if math.Abs(ent.AvgConfidence-wantAvg) > 1e-9 {
		t.Fatalf("expected avg confidence %v, got %v", wantAvg, ent.AvgConfidence)
	}
	if !reflect.DeepEqual(ent.DocumentIDs, []string{"d1", "d1", "d2"}) {
		t.Fatalf("unexpected document ids: %v", ent.DocumentIDs)
	}
	// first mention casing wins
	if ent.Name != "ISRO" {
		t.Fatalf("expected name ISRO, got %q", ent.Name)
	}
}

func TestMergeDocument_RelationConfidenceCapped(t *testing.T) {
	s := NewStore()

	mentions := []common.Mention{
		{Text: "ISRO", Label: common.LabelOrganization, Confidence: 0.9},
		{Text: "INSAT-3D", Label: common.LabelSatellite, Confidence: 0.9},
	}
	candidate := common.RelationCandidate{
		SourceText:  "ISRO",
		SourceLabel: common.LabelOrganization,
		TargetText:  "INSAT-3D",
		TargetLabel: common.LabelSatellite,
		Type:        "operates",
		Confidence:  0.75,
	}

	var prev float64
	for i := 0; i < 6; i++ {
		s.MergeDocument([]common.RelationCandidate{candidate}, mentions, common.Document{ID: "d1"})

		rel, ok := s.Relation("ORGANIZATION_isro-operates-SATELLITE_insat-3d")
		if !ok {
			t.Fatal("relation not found")
		}
		if rel.Confidence < prev {
			t.Fatalf("confidence decreased: %v -> %v", prev, rel.Confidence)
		}
		if rel.Confidence > 1.0 {
			t.Fatalf("confidence exceeded cap: %v", rel.Confidence)
		}
		prev = rel.Confidence
	}

	rel, _ := s.Relation("ORGANIZATION_isro-operates-SATELLITE_insat-3d")
	if rel.Confidence != 1.0 {
		t.Fatalf("expected confidence capped at 1.0 after repeated evidence, got %v", rel.Confidence)
	}
	if s.RelationCount() != 1 {
		t.Fatalf("expected a single relation, got %d", s.RelationCount())
	}
}

func TestMergeDocument_DropsDanglingRelation(t *testing.T) {
	s := NewStore()

	mentions := []common.Mention{
		{Text: "ISRO", Label: common.LabelOrganization, Confidence: 0.9},
	}
	candidate := common.RelationCandidate{
		SourceText:  "ISRO",
		SourceLabel: common.LabelOrganization,
		TargetText:  "Phantom-1",
		TargetLabel: common.LabelSatellite,
		Type:        "operates",
		Confidence:  0.75,
	}

	s.MergeDocument([]common.RelationCandidate{candidate}, mentions, common.Document{ID: "d1"})

	if s.RelationCount() != 0 {
		t.Fatalf("expected dangling relation to be dropped, got %d relations", s.RelationCount())
	}
}

func TestSeedDomainKnowledge_FillsGapsOnly(t *testing.T) {
	s := NewStore()

	// merge an organic ISRO operates INSAT-3D first
	mentions := []common.Mention{
		{Text: "ISRO", Label: common.LabelOrganization, Confidence: 0.9},
		{Text: "INSAT-3D", Label: common.LabelSatellite, Confidence: 0.9},
	}
	s.MergeDocument([]common.RelationCandidate{{
		SourceText:  "ISRO",
		SourceLabel: common.LabelOrganization,
		TargetText:  "INSAT-3D",
		TargetLabel: common.LabelSatellite,
		Type:        "operates",
		Confidence:  0.75,
	}}, mentions, common.Document{ID: "d1"})

	s.SeedDomainKnowledge()

	// organic relation untouched
	rel, ok := s.Relation("ORGANIZATION_isro-operates-SATELLITE_insat-3d")
	if !ok {
		t.Fatal("relation not found")
	}
	if rel.Confidence != 0.75 {
		t.Fatalf("seeding overwrote organic relation confidence: %v", rel.Confidence)
	}

	// seeded relation present with full confidence and evidence tag
	seeded, ok := s.Relation("SATELLITE_insat-3d-carries-INSTRUMENT_imager")
	if !ok {
		t.Fatal("seeded relation not found")
	}
	if seeded.Confidence != 1.0 {
		t.Fatalf("expected seeded confidence 1.0, got %v", seeded.Confidence)
	}
	if !reflect.DeepEqual(seeded.EvidenceDocumentIDs, []string{"domain_knowledge"}) {
		t.Fatalf("unexpected evidence: %v", seeded.EvidenceDocumentIDs)
	}

	// seeded endpoint entity created with zero frequency
	imager, ok := s.Entity("INSTRUMENT_imager")
	if !ok {
		t.Fatal("seeded entity not found")
	}
	if imager.Frequency != 0 || imager.AvgConfidence != 1.0 {
		t.Fatalf("unexpected seeded entity: %+v", imager)
	}

	// repeated seeding is idempotent
	before := s.RelationCount()
	s.SeedDomainKnowledge()
	if s.RelationCount() != before {
		t.Fatalf("seeding not idempotent: %d -> %d", before, s.RelationCount())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore()
	mentions := []common.Mention{
		{Text: "ISRO", Label: common.LabelOrganization, Confidence: 0.9},
		{Text: "INSAT-3D", Label: common.LabelSatellite, Confidence: 0.9},
	}
	s.MergeDocument([]common.RelationCandidate{{
		SourceText:  "ISRO",
		SourceLabel: common.LabelOrganization,
		TargetText:  "INSAT-3D",
		TargetLabel: common.LabelSatellite,
		Type:        "operates",
		Confidence:  0.75,
	}}, mentions, common.Document{ID: "d1"})
	s.SeedDomainKnowledge()

	snap := s.Snapshot()

	restored := NewStore()
	restored.LoadSnapshot(snap)

	if !reflect.DeepEqual(restored.Snapshot(), snap) {
		t.Fatal("snapshot round trip altered the graph")
	}
}

func TestLoadSnapshot_DropsDanglingLinks(t *testing.T) {
	s := NewStore()
	s.LoadSnapshot(common.GraphSnapshot{
		Nodes: []common.Entity{
			{ID: "ORGANIZATION_isro", Name: "ISRO", Type: common.LabelOrganization},
		},
		Links: []common.Relation{
			{
				ID:             "ORGANIZATION_isro-operates-SATELLITE_ghost",
				SourceEntityID: "ORGANIZATION_isro",
				TargetEntityID: "SATELLITE_ghost",
				Type:           "operates",
			},
		},
	})

	if s.EntityCount() != 1 {
		t.Fatalf("expected 1 entity, got %d", s.EntityCount())
	}
	if s.RelationCount() != 0 {
		t.Fatalf("expected dangling link dropped, got %d relations", s.RelationCount())
	}
}

func TestSnapshot_IsolatedFromStore(t *testing.T) {
	s := NewStore()
	s.MergeDocument(nil, []common.Mention{
		{Text: "ISRO", Label: common.LabelOrganization, Confidence: 0.9},
	}, common.Document{ID: "d1"})

	snap := s.Snapshot()
	snap.Nodes[0].Name = "mutated"
	snap.Nodes[0].DocumentIDs[0] = "mutated"

	ent, _ := s.Entity("ORGANIZATION_isro")
	if ent.Name != "ISRO" || ent.DocumentIDs[0] != "d1" {
		t.Fatalf("snapshot mutation leaked into store: %+v", ent)
	}
}
