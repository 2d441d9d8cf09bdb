package answer

import (
	"fmt"
	"strings"

	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/common"
)

const excerptLen = 300

// cannedAnswers maps question keywords to curated domain answers used
// when no completion service is available or generation fails.
var cannedAnswers = []struct {
	keywords []string
	answer   string
}{
	{
		keywords: []string{"rainfall", "precipitation"},
		answer: "Rainfall products are derived from INSAT-3D Imager observations " +
			"and distributed through MOSDAC, including hourly and daily " +
			"accumulated precipitation estimates over the Indian region.",
	},
	{
		keywords: []string{"insat-3d"},
		answer: "INSAT-3D is an ISRO meteorological satellite carrying an Imager " +
			"and a Sounder. It provides cloud imagery, atmospheric profiles and " +
			"derived products such as rainfall and outgoing longwave radiation.",
	},
	{
		keywords: []string{"oceansat"},
		answer: "The Oceansat satellites are ISRO earth observation missions for " +
			"ocean applications. They carry the Ocean Colour Monitor and a " +
			"scatterometer, producing chlorophyll, sea surface temperature and " +
			"wind vector products.",
	},
	{
		keywords: []string{"mosdac"},
		answer: "MOSDAC is the Meteorological and Oceanographic Satellite Data " +
			"Archival Centre at the Space Applications Centre, ISRO. It archives " +
			"and distributes data products from Indian meteorological and " +
			"oceanographic satellite missions.",
	},
}

const genericAnswer = "I can answer questions about satellite missions, " +
	"their instruments and the data products they provide. Try asking " +
	"about a specific satellite, instrument or product."

// fallbackAnswer produces a deterministic answer when generation is
// unavailable. Keyword matches win over document excerpts, which win
// over the generic capability statement.
func (s *Synthesizer) fallbackAnswer(question string, ranked []common.ScoredDocument) string {
	lower := strings.ToLower(question)

	for _, canned := range cannedAnswers {
		for _, kw := range canned.keywords {
			if strings.Contains(lower, kw) {
				return canned.answer
			}
		}
	}

	if len(ranked) > 0 {
		top := ranked[0].Document
		return fmt.Sprintf(
			"According to %s, %s",
			top.Title,
			util.Snippet(top.Content, excerptLen),
		)
	}

	return genericAnswer
}
