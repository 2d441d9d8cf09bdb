package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/common"
	"github.com/skyatlas/missionq/pkg/logger"
)

// Load resolves the document corpus from the CORPUS_SOURCE environment
// variable: "seed" (default) uses the built-in documents, "file" reads
// JSON from CORPUS_PATH, "s3" pulls JSON objects from object storage
// and "none" returns an empty corpus.
func Load(ctx context.Context) ([]common.Document, error) {
	source := util.GetEnvString("CORPUS_SOURCE", "seed")

	switch source {
	case "seed":
		return SeedDocuments(), nil
	case "file":
		path := util.GetEnv("CORPUS_PATH")
		if path == "" {
			return nil, fmt.Errorf("CORPUS_SOURCE=file requires CORPUS_PATH")
		}
		return LoadFile(path)
	case "s3":
		client := NewS3Client(ctx)
		if client == nil {
			return nil, fmt.Errorf("failed to initialize object storage client")
		}
		return LoadS3(ctx, client, util.GetEnvString("CORPUS_PREFIX", "corpus/"))
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown corpus source: %s", source)
	}
}

// LoadFile reads a JSON array of documents from disk.
func LoadFile(path string) ([]common.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var docs []common.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}

	docs, err = Normalize(docs)
	if err != nil {
		return nil, err
	}

	logger.Info("[Corpus] Loaded documents from file", "path", path, "count", len(docs))
	return docs, nil
}

// Normalize validates loaded documents and assigns IDs where missing.
// Documents without content are rejected.
func Normalize(docs []common.Document) ([]common.Document, error) {
	out := make([]common.Document, 0, len(docs))
	for i, doc := range docs {
		if doc.Content == "" {
			return nil, fmt.Errorf("document %d has no content", i)
		}
		if doc.ID == "" {
			id, err := gonanoid.New()
			if err != nil {
				return nil, err
			}
			doc.ID = id
		}
		out = append(out, doc)
	}
	return out, nil
}
