package relate

import (
	"reflect"
	"testing"

	"github.com/skyatlas/missionq/pkg/common"
)

func mention(text string, label common.EntityLabel, confidence float64, start int) common.Mention {
	return common.Mention{
		Text:       text,
		Label:      label,
		Confidence: confidence,
		Start:      start,
		End:        start + len(text),
	}
}

func TestInfer_TypePairs(t *testing.T) {
	inf := NewInferencer()

	tests := []struct {
		name    string
		content string
		a, b    common.Mention
		want    common.RelationCandidate
	}{
		{
			name:    "satellite carries instrument",
			content: "INSAT-3D carries an Imager for cloud observation.",
			a:       mention("INSAT-3D", common.LabelSatellite, 0.9, 0),
			b:       mention("Imager", common.LabelInstrument, 0.85, 20),
			want: common.RelationCandidate{
				SourceText:  "INSAT-3D",
				SourceLabel: common.LabelSatellite,
				TargetText:  "Imager",
				TargetLabel: common.LabelInstrument,
				Type:        "carries",
				Confidence:  0.8,
			},
		},
		{
			name:    "reversed lookup swaps direction",
			content: "The Imager flies on INSAT-3D.",
			a:       mention("Imager", common.LabelInstrument, 0.85, 4),
			b:       mention("INSAT-3D", common.LabelSatellite, 0.9, 20),
			want: common.RelationCandidate{
				SourceText:  "Imager",
				SourceLabel: common.LabelInstrument,
				TargetText:  "INSAT-3D",
				TargetLabel: common.LabelSatellite,
				Type:        "carried_by",
				Confidence:  0.8,
			},
		},
		{
			name:    "unmapped pair falls back to related_to",
			content: "The rainfall record supports the INSAT programme goals.",
			a:       mention("rainfall", common.LabelDataProduct, 0.75, 4),
			b:       mention("INSAT programme", common.LabelMission, 0.8, 33),
			want: common.RelationCandidate{
				SourceText:  "rainfall",
				SourceLabel: common.LabelDataProduct,
				TargetText:  "INSAT programme",
				TargetLabel: common.LabelMission,
				Type:        "related_to",
				Confidence:  0.6,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := common.Document{ID: "d1", Content: tt.content}
			got := inf.Infer([]common.Mention{tt.a, tt.b}, doc)
			if len(got) != 1 {
				t.Fatalf("expected 1 candidate, got %d: %+v", len(got), got)
			}
			if !reflect.DeepEqual(got[0], tt.want) {
				t.Fatalf("unexpected candidate:\n got %+v\nwant %+v", got[0], tt.want)
			}
		})
	}
}

func TestInfer_LaunchedBoost(t *testing.T) {
	inf := NewInferencer()
	content := "INSAT-3D was launched by ISRO in July 2013."
	doc := common.Document{ID: "d1", Content: content}

	mentions := []common.Mention{
		mention("INSAT-3D", common.LabelSatellite, 0.9, 0),
		mention("ISRO", common.LabelOrganization, 0.9, 25),
	}

	got := inf.Infer(mentions, doc)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.Type != "launched" || c.Confidence != 0.85 {
		t.Fatalf("expected launched/0.85, got %s/%v", c.Type, c.Confidence)
	}
	// launched is always organization to satellite
	if c.SourceLabel != common.LabelOrganization || c.TargetLabel != common.LabelSatellite {
		t.Fatalf("expected ORGANIZATION->SATELLITE, got %s->%s", c.SourceLabel, c.TargetLabel)
	}
}

func TestInfer_ProvidesBoost(t *testing.T) {
	inf := NewInferencer()
	content := "MOSDAC provides rainfall products over the Indian region."
	doc := common.Document{ID: "d1", Content: content}

	mentions := []common.Mention{
		mention("MOSDAC", common.LabelOrganization, 0.9, 0),
		mention("rainfall", common.LabelDataProduct, 0.75, 16),
	}

	got := inf.Infer(mentions, doc)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Type != "provides" || got[0].Confidence != 0.8 {
		t.Fatalf("expected provides/0.8, got %s/%v", got[0].Type, got[0].Confidence)
	}
}

func TestInfer_FiltersAndWindows(t *testing.T) {
	inf := NewInferencer()
	doc := common.Document{ID: "d1", Content: string(make([]byte, 1200))}

	tests := []struct {
		name     string
		mentions []common.Mention
		want     int
	}{
		{
			name: "low confidence mention excluded",
			mentions: []common.Mention{
				mention("INSAT-3D", common.LabelSatellite, 0.9, 0),
				mention("weak", common.LabelDataProduct, 0.5, 20),
			},
			want: 0,
		},
		{
			name: "outside proximity window",
			mentions: []common.Mention{
				mention("INSAT-3D", common.LabelSatellite, 0.9, 0),
				mention("ISRO", common.LabelOrganization, 0.9, 700),
			},
			want: 0,
		},
		{
			name: "same entity twice not self-related",
			mentions: []common.Mention{
				mention("ISRO", common.LabelOrganization, 0.9, 0),
				mention("isro", common.LabelOrganization, 0.9, 100),
			},
			want: 0,
		},
		{
			name: "within window",
			mentions: []common.Mention{
				mention("INSAT-3D", common.LabelSatellite, 0.9, 0),
				mention("ISRO", common.LabelOrganization, 0.9, 400),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inf.Infer(tt.mentions, doc)
			if len(got) != tt.want {
				t.Fatalf("expected %d candidates, got %d: %+v", tt.want, len(got), got)
			}
		})
	}
}

func TestInfer_DeterministicOrder(t *testing.T) {
	inf := NewInferencer()
	content := "ISRO launched INSAT-3D carrying an Imager producing rainfall data."
	doc := common.Document{ID: "d1", Content: content}

	mentions := []common.Mention{
		mention("rainfall", common.LabelDataProduct, 0.75, 52),
		mention("ISRO", common.LabelOrganization, 0.9, 0),
		mention("Imager", common.LabelInstrument, 0.85, 35),
		mention("INSAT-3D", common.LabelSatellite, 0.9, 14),
	}

	first := inf.Infer(mentions, doc)
	if len(first) != 6 {
		t.Fatalf("expected 6 candidates for 4 mentions, got %d", len(first))
	}
	for i := 0; i < 5; i++ {
		if got := inf.Infer(mentions, doc); !reflect.DeepEqual(got, first) {
			t.Fatalf("inference not deterministic: run %d differs", i)
		}
	}

	// first pair by start offset is ISRO x INSAT-3D
	if first[0].SourceText != "ISRO" || first[0].TargetText != "INSAT-3D" {
		t.Fatalf("unexpected first pair: %+v", first[0])
	}
}
