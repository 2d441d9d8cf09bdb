package relate

import (
	"sort"
	"strings"

	"github.com/skyatlas/missionq/pkg/common"
)

const (
	// Mentions below this confidence do not participate in relation
	// inference.
	confidenceThreshold = 0.7

	// Two mentions whose start offsets are farther apart than this are
	// assumed unrelated.
	proximityWindow = 500

	// Characters inspected around a mention pair for boosting keywords.
	contextWindow = 100

	defaultType       = "related_to"
	defaultConfidence = 0.6
)

type typedRelation struct {
	relType    string
	confidence float64
}

// Directed type-pair lookup. A missing pair falls back to related_to
// with a lower base confidence.
var typePairs = map[[2]common.EntityLabel]typedRelation{
	{common.LabelSatellite, common.LabelInstrument}:    {"carries", 0.8},
	{common.LabelInstrument, common.LabelSatellite}:    {"carried_by", 0.8},
	{common.LabelOrganization, common.LabelSatellite}:  {"operates", 0.75},
	{common.LabelSatellite, common.LabelOrganization}:  {"operated_by", 0.75},
	{common.LabelInstrument, common.LabelDataProduct}:  {"measures", 0.75},
	{common.LabelDataProduct, common.LabelInstrument}:  {"measured_by", 0.75},
	{common.LabelSatellite, common.LabelDataProduct}:   {"produces", 0.7},
	{common.LabelOrganization, common.LabelDataProduct}: {"provides", 0.7},
	{common.LabelSatellite, common.LabelMission}:       {"part_of", 0.7},
	{common.LabelOrganization, common.LabelMission}:    {"conducts", 0.7},
}

// Inferencer proposes typed relations between co-occurring entity
// mentions of a single document. Proximity, the type-pair table and
// contextual keyword boosts approximate semantic relatedness without a
// trained relation-extraction model.
type Inferencer struct{}

func NewInferencer() *Inferencer {
	return &Inferencer{}
}

// Infer emits one relation candidate per qualifying mention pair.
// Enumeration is fixed low-to-high start offset, so identical input
// always produces the identical candidate list.
func (inf *Inferencer) Infer(mentions []common.Mention, doc common.Document) []common.RelationCandidate {
	survivors := make([]common.Mention, 0, len(mentions))
	for _, m := range mentions {
		if m.Confidence >= confidenceThreshold {
			survivors = append(survivors, m)
		}
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].Start < survivors[j].Start
	})

	var candidates []common.RelationCandidate
	for i := 0; i < len(survivors); i++ {
		for j := i + 1; j < len(survivors); j++ {
			a, b := survivors[i], survivors[j]
			if b.Start-a.Start > proximityWindow {
				break
			}
			if a.Label == b.Label && strings.EqualFold(a.Text, b.Text) {
				continue
			}
			candidates = append(candidates, relateMentions(a, b, doc.Content))
		}
	}

	return candidates
}

func relateMentions(a, b common.Mention, content string) common.RelationCandidate {
	source, target := a, b
	rel, ok := typePairs[[2]common.EntityLabel{a.Label, b.Label}]
	if !ok {
		if reversed, revOK := typePairs[[2]common.EntityLabel{b.Label, a.Label}]; revOK {
			source, target = b, a
			rel, ok = reversed, true
		}
	}
	if !ok {
		rel = typedRelation{defaultType, defaultConfidence}
	}

	window := contextAround(content, a, b)

	orgSatPair := (source.Label == common.LabelOrganization && target.Label == common.LabelSatellite) ||
		(source.Label == common.LabelSatellite && target.Label == common.LabelOrganization)
	if orgSatPair && strings.Contains(window, "launched") {
		if source.Label == common.LabelSatellite {
			source, target = target, source
		}
		rel = typedRelation{"launched", 0.85}
	} else if strings.Contains(window, "provides") || strings.Contains(window, "offers") {
		rel = typedRelation{"provides", 0.8}
	}

	return common.RelationCandidate{
		SourceText:  source.Text,
		SourceLabel: source.Label,
		TargetText:  target.Text,
		TargetLabel: target.Label,
		Type:        rel.relType,
		Confidence:  rel.confidence,
	}
}

// contextAround returns the lowercased span covering both mentions plus
// contextWindow characters on either side, clamped to the document.
func contextAround(content string, a, b common.Mention) string {
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}

	start -= contextWindow
	if start < 0 {
		start = 0
	}
	end += contextWindow
	if end > len(content) {
		end = len(content)
	}
	if start >= end {
		return ""
	}

	return strings.ToLower(content[start:end])
}
