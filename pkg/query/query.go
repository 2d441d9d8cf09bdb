package query

import (
	"context"
	"errors"

	"github.com/skyatlas/missionq/pkg/answer"
	"github.com/skyatlas/missionq/pkg/common"
	"github.com/skyatlas/missionq/pkg/graph"
	"github.com/skyatlas/missionq/pkg/index"
	"github.com/skyatlas/missionq/pkg/logger"
)

// ErrNotReady is returned when a query arrives before any documents
// have been ingested.
var ErrNotReady = errors.New("no documents ingested yet")

// Engine answers questions against the ingested corpus. It owns no
// state of its own; it coordinates retrieval over the document index
// and synthesis over the ranked results.
type Engine struct {
	store *graph.Store
	index *index.Index
	synth *answer.Synthesizer
}

// NewEngineParams contains configuration options for creating a new
// Engine.
type NewEngineParams struct {
	Store       *graph.Store
	Index       *index.Index
	Synthesizer *answer.Synthesizer
}

// NewEngine creates a query engine over the given store and index.
func NewEngine(params NewEngineParams) *Engine {
	return &Engine{
		store: params.Store,
		index: params.Index,
		synth: params.Synthesizer,
	}
}

// Ask answers a question. It returns ErrNotReady when the index is
// empty; all other failures degrade into a well-formed response rather
// than an error.
func (e *Engine) Ask(ctx context.Context, question string) (resp common.Response, err error) {
	if e.index.Len() == 0 {
		return common.Response{}, ErrNotReady
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Query] Recovered from panic", "panic", r)
			resp = common.Response{
				Answer:   "Something went wrong while answering that question. Please try again.",
				Sources:  []common.Source{},
				Entities: []common.Mention{},
			}
			err = nil
		}
	}()

	ranked := e.index.Rank(question)
	logger.Debug("[Query] Ranked documents",
		"question", question,
		"results", len(ranked),
	)

	return e.synth.Answer(ctx, question, ranked), nil
}

// KnowledgeBase returns all ingested documents in insertion order.
func (e *Engine) KnowledgeBase() []common.Document {
	return e.index.Documents()
}

// GraphSnapshot exports the knowledge graph for visualization.
func (e *Engine) GraphSnapshot() common.GraphSnapshot {
	return e.store.Snapshot()
}
