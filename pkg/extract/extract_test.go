package extract

import (
	"reflect"
	"testing"

	"github.com/skyatlas/missionq/pkg/common"
)

func TestExtract_KnownVocabulary(t *testing.T) {
	e := NewRuleExtractor()

	tests := []struct {
		name string
		text string
		want []struct {
			text  string
			label common.EntityLabel
		}
	}{
		{
			name: "satellite and organization",
			text: "INSAT-3D was launched by ISRO in 2013.",
			want: []struct {
				text  string
				label common.EntityLabel
			}{
				{"INSAT-3D", common.LabelSatellite},
				{"ISRO", common.LabelOrganization},
			},
		},
		{
			name: "instrument and data product",
			text: "The Imager provides rainfall estimates.",
			want: []struct {
				text  string
				label common.EntityLabel
			}{
				{"Imager", common.LabelInstrument},
				{"rainfall", common.LabelDataProduct},
			},
		},
		{
			name: "case insensitive match keeps original casing",
			text: "data from mosdac and the ocean colour monitor",
			want: []struct {
				text  string
				label common.EntityLabel
			}{
				{"ocean colour monitor", common.LabelInstrument},
				{"mosdac", common.LabelOrganization},
				{"ocean colour", common.LabelDataProduct},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d mentions, got %d: %+v", len(tt.want), len(got), got)
			}
			for i, w := range tt.want {
				if got[i].Text != w.text || got[i].Label != w.label {
					t.Fatalf("mention %d: got (%q, %s), want (%q, %s)",
						i, got[i].Text, got[i].Label, w.text, w.label)
				}
			}
		})
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	e := NewRuleExtractor()

	for _, text := range []string{"", "   \n\t  "} {
		if got := e.Extract(text); len(got) != 0 {
			t.Fatalf("expected no mentions for %q, got %+v", text, got)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := NewRuleExtractor()
	text := "ISRO operates INSAT-3D and INSAT-3DR. MOSDAC provides rainfall and sea surface temperature."

	first := e.Extract(text)
	for i := 0; i < 10; i++ {
		if got := e.Extract(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("extraction not deterministic: run %d differs", i)
		}
	}
}

func TestExtract_OffsetsAndConfidence(t *testing.T) {
	e := NewRuleExtractor()
	text := "Data from SCATSAT-1 is archived."

	got := e.Extract(text)
	if len(got) != 1 {
		t.Fatalf("expected a single mention, got %+v", got)
	}
	m := got[0]
	if text[m.Start:m.End] != m.Text {
		t.Fatalf("offsets do not cover text: %q vs %q", text[m.Start:m.End], m.Text)
	}
	if m.Confidence != 0.9 {
		t.Fatalf("expected satellite confidence 0.9, got %v", m.Confidence)
	}
}

func TestExtract_LongerAlternativeWins(t *testing.T) {
	e := NewRuleExtractor()
	text := "INSAT-3DR continues the INSAT programme."

	got := e.Extract(text)

	var satellites []string
	for _, m := range got {
		if m.Label == common.LabelSatellite {
			satellites = append(satellites, m.Text)
		}
	}
	if !reflect.DeepEqual(satellites, []string{"INSAT-3DR"}) {
		t.Fatalf("expected only INSAT-3DR as satellite, got %v", satellites)
	}
}

func TestDedupeMentions(t *testing.T) {
	mentions := []common.Mention{
		{Text: "ISRO", Label: common.LabelOrganization, Start: 0},
		{Text: "isro", Label: common.LabelOrganization, Start: 40},
		{Text: "ISRO", Label: common.LabelOrganization, Start: 80},
		{Text: "Imager", Label: common.LabelInstrument, Start: 10},
	}

	got := DedupeMentions(mentions)
	if len(got) != 2 {
		t.Fatalf("expected 2 unique mentions, got %d: %+v", len(got), got)
	}
	if got[0].Text != "ISRO" || got[0].Start != 0 {
		t.Fatalf("expected first occurrence kept, got %+v", got[0])
	}
	if got[1].Text != "Imager" {
		t.Fatalf("expected Imager second, got %+v", got[1])
	}
}
