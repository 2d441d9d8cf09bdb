package graph

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/skyatlas/missionq/pkg/common"
	"github.com/skyatlas/missionq/pkg/extract"
	"github.com/skyatlas/missionq/pkg/logger"
	"github.com/skyatlas/missionq/pkg/relate"
)

// Indexer receives each ingested document together with its extracted
// mentions. The retrieval index implements it.
type Indexer interface {
	Add(doc common.Document, mentions []common.Mention)
}

// Pipeline runs the extraction-graph pipeline over document batches:
// extract mentions, infer relations, merge into the shared store and
// update the retrieval index.
//
// Documents are processed in parallel up to ParallelDocs; merge and
// index updates are serialized so running-mean and frequency invariants
// hold. A Pipeline should be created using NewPipeline.
type Pipeline struct {
	extractor    extract.Extractor
	inferencer   *relate.Inferencer
	store        *Store
	index        Indexer
	parallelDocs int
}

// NewPipelineParams defines the configuration for creating a Pipeline.
// Index may be nil when only the graph is being built.
type NewPipelineParams struct {
	Extractor    extract.Extractor
	Inferencer   *relate.Inferencer
	Store        *Store
	Index        Indexer
	ParallelDocs int
}

// NewPipeline creates a Pipeline configured with the provided parameters.
func NewPipeline(params NewPipelineParams) *Pipeline {
	parallel := params.ParallelDocs
	if parallel <= 0 {
		parallel = 4
	}
	return &Pipeline{
		extractor:    params.Extractor,
		inferencer:   params.Inferencer,
		store:        params.Store,
		index:        params.Index,
		parallelDocs: parallel,
	}
}

// Store returns the knowledge graph the pipeline merges into.
func (p *Pipeline) Store() *Store {
	return p.store
}

// Ingest processes a document batch and seeds domain knowledge once all
// documents have been merged. Extraction never fails a document; a
// document without matches simply contributes nothing. Ingest may be
// called repeatedly to grow the corpus incrementally.
func (p *Pipeline) Ingest(ctx context.Context, docs []common.Document) error {
	logger.Info("[Pipeline] Processing", "total_documents", len(docs))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.parallelDocs)
	mutex := sync.Mutex{}

	for _, doc := range docs {
		d := doc
		eg.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
				mentions := p.extractor.Extract(d.Content)
				candidates := p.inferencer.Infer(mentions, d)

				mutex.Lock()
				defer mutex.Unlock()

				p.store.MergeDocument(candidates, mentions, d)
				if p.index != nil {
					p.index.Add(d, mentions)
				}
				return nil
			}
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	p.store.SeedDomainKnowledge()

	logger.Info("[Pipeline] Batch merged",
		"entities", p.store.EntityCount(),
		"relations", p.store.RelationCount(),
	)
	return nil
}
