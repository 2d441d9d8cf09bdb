package extract

import (
	"regexp"
	"strings"

	"github.com/skyatlas/missionq/pkg/common"
)

// Extractor finds entity mentions in raw document text. Implementations
// must be deterministic: identical input yields the identical mention
// list in the same order. A statistical model can replace the rule-based
// implementation without touching relation inference or graph merge.
type Extractor interface {
	Extract(text string) []common.Mention
}

// Confidence assigned to every mention of a given label. These are fixed
// by rule, not learned.
var labelConfidence = map[common.EntityLabel]float64{
	common.LabelSatellite:    0.9,
	common.LabelInstrument:   0.85,
	common.LabelOrganization: 0.9,
	common.LabelDataProduct:  0.75,
	common.LabelMission:      0.8,
}

type rule struct {
	pattern *regexp.Regexp
	label   common.EntityLabel
}

// RuleExtractor applies an ordered list of case-insensitive lexical
// patterns over the text. Overlap between rules is permitted: a
// substring may be tagged under two labels, and deduplication happens
// later at graph-merge time.
type RuleExtractor struct {
	rules []rule
}

// NewRuleExtractor creates an extractor loaded with the satellite-mission
// vocabulary rules.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{rules: domainRules()}
}

// Extract scans text and returns one mention per pattern match, with the
// fixed per-label confidence and byte offsets. Malformed or empty input
// yields an empty list, never an error.
func (e *RuleExtractor) Extract(text string) []common.Mention {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var mentions []common.Mention
	for _, r := range e.rules {
		for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
			mentions = append(mentions, common.Mention{
				Text:       text[loc[0]:loc[1]],
				Label:      r.label,
				Confidence: labelConfidence[r.label],
				Start:      loc[0],
				End:        loc[1],
			})
		}
	}

	return mentions
}

// DedupeMentions collapses mentions sharing the same (upper-cased text,
// label) pair, keeping the first occurrence. Input order is preserved.
func DedupeMentions(mentions []common.Mention) []common.Mention {
	seen := make(map[string]struct{}, len(mentions))
	var out []common.Mention
	for _, m := range mentions {
		key := strings.ToUpper(m.Text) + "|" + string(m.Label)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}
