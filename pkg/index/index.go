package index

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/skyatlas/missionq/pkg/common"
)

// TopK is the number of documents returned per query.
const TopK = 3

// Keyword lists are capped at this many terms per document.
const maxKeywords = 10

type docEntry struct {
	doc         common.Document
	titleLower  string
	bodyLower   string
	keywords    map[string]struct{}
	entityTexts []string
}

// Index scores and ranks corpus documents against a question using
// lexical, keyword and entity-mention overlap. It is a heuristic
// substitute for vector similarity and can be swapped for an
// embedding-based scorer without changing the Rank contract.
type Index struct {
	mu      sync.RWMutex
	entries []docEntry
	byID    map[string]int
}

// New creates an empty document index.
func New() *Index {
	return &Index{byID: make(map[string]int)}
}

// Add registers a document with its extracted mentions, precomputing the
// keyword list and the entity-mention text list used for scoring.
// Re-adding a document with a known id replaces its entry in place.
func (ix *Index) Add(doc common.Document, mentions []common.Mention) {
	seen := make(map[string]struct{}, len(mentions))
	texts := make([]string, 0, len(mentions))
	for _, m := range mentions {
		lowered := strings.ToLower(m.Text)
		if _, ok := seen[lowered]; ok {
			continue
		}
		seen[lowered] = struct{}{}
		texts = append(texts, lowered)
	}

	entry := docEntry{
		doc:         doc,
		titleLower:  strings.ToLower(doc.Title),
		bodyLower:   strings.ToLower(doc.Content),
		keywords:    keywordSet(doc.Content),
		entityTexts: texts,
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if pos, ok := ix.byID[doc.ID]; ok {
		ix.entries[pos] = entry
		return
	}
	ix.byID[doc.ID] = len(ix.entries)
	ix.entries = append(ix.entries, entry)
}

// Rank scores every corpus document against the question and returns the
// top-K by descending score. Documents scoring zero or below are
// excluded; ties keep corpus order. Identical input always yields the
// identical ordered list.
func (ix *Index) Rank(question string) []common.ScoredDocument {
	tokens := questionTokens(question)
	firstToken := ""
	if len(tokens) > 0 {
		firstToken = tokens[0]
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	scored := make([]common.ScoredDocument, 0, len(ix.entries))
	for _, entry := range ix.entries {
		score := 0.0
		if firstToken != "" && strings.Contains(entry.titleLower, firstToken) {
			score += 2
		}
		for _, token := range tokens {
			if len(token) <= 3 {
				continue
			}
			if strings.Contains(entry.bodyLower, token) {
				score += 1
			}
			if _, ok := entry.keywords[token]; ok {
				score += 1.5
			}
			if containsToken(entry.entityTexts, token) {
				score += 2
			}
		}
		if score <= 0 {
			continue
		}
		scored = append(scored, common.ScoredDocument{Document: entry.doc, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > TopK {
		scored = scored[:TopK]
	}
	return scored
}

// Documents returns the corpus in ingestion order.
func (ix *Index) Documents() []common.Document {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	docs := make([]common.Document, 0, len(ix.entries))
	for _, entry := range ix.entries {
		docs = append(docs, entry.doc)
	}
	return docs
}

// Len reports the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

func containsToken(texts []string, token string) bool {
	for _, t := range texts {
		if strings.Contains(t, token) {
			return true
		}
	}
	return false
}

// questionTokens lowercases the question, splits on whitespace and trims
// punctuation from token edges, keeping internal hyphens intact.
func questionTokens(question string) []string {
	fields := strings.Fields(strings.ToLower(question))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// keywordSet computes the document's keyword list: the most frequent
// terms longer than 3 characters, ties broken by first occurrence.
func keywordSet(content string) map[string]struct{} {
	counts := make(map[string]int)
	var order []string
	for _, f := range strings.Fields(strings.ToLower(content)) {
		term := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(term) <= 3 {
			continue
		}
		if counts[term] == 0 {
			order = append(order, term)
		}
		counts[term]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	set := make(map[string]struct{}, len(order))
	for _, term := range order {
		set[term] = struct{}{}
	}
	return set
}
