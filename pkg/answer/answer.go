package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/ai"
	"github.com/skyatlas/missionq/pkg/common"
	"github.com/skyatlas/missionq/pkg/extract"
	"github.com/skyatlas/missionq/pkg/logger"
)

const (
	// Generation attempts below this confidence are treated as unusable
	// and replaced by the fallback chain.
	minConfidence = 0.4

	defaultTimeout       = 20 * time.Second
	defaultContextBudget = 3000

	snippetLen = 160
)

// Synthesizer turns ranked documents into a cited answer. The
// completion client is optional; with a nil client every question is
// answered through the deterministic fallback chain.
type Synthesizer struct {
	client    ai.CompletionClient
	extractor extract.Extractor

	timeout       time.Duration
	contextBudget int
	encoder       *tiktoken.Tiktoken
}

// NewSynthesizerParams contains configuration options for creating a
// new Synthesizer.
type NewSynthesizerParams struct {
	Client    ai.CompletionClient
	Extractor extract.Extractor

	// Timeout bounds a single generation attempt. Zero means the
	// default of 20 seconds.
	Timeout time.Duration

	// ContextBudget is the token allowance for retrieved excerpts.
	// Zero means the default of 3000 tokens.
	ContextBudget int
}

// NewSynthesizer creates a Synthesizer. It returns an error only when
// the token encoder cannot be initialized.
func NewSynthesizer(params NewSynthesizerParams) (*Synthesizer, error) {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to load token encoder: %w", err)
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	budget := params.ContextBudget
	if budget <= 0 {
		budget = defaultContextBudget
	}

	extractor := params.Extractor
	if extractor == nil {
		extractor = extract.NewRuleExtractor()
	}

	return &Synthesizer{
		client:    params.Client,
		extractor: extractor,

		timeout:       timeout,
		contextBudget: budget,
		encoder:       enc,
	}, nil
}

// completionResult is the structured output requested from the
// completion service.
type completionResult struct {
	Answer     string  `json:"answer" jsonschema_description:"Answer to the question, grounded in the provided excerpts"`
	Confidence float64 `json:"confidence" jsonschema_description:"Self-rated confidence between 0.0 and 1.0"`
}

// Answer produces a response for the question from the ranked
// documents. It never returns an error: generation failures, timeouts
// and low-confidence output all degrade into the fallback chain.
func (s *Synthesizer) Answer(
	ctx context.Context,
	question string,
	ranked []common.ScoredDocument,
) common.Response {
	contextText := s.buildContext(ranked)

	answerText := s.generate(ctx, question, contextText, ranked)

	return common.Response{
		Answer:   answerText,
		Sources:  buildSources(ranked),
		Entities: s.questionEntities(question, contextText),
	}
}

// generate runs the completion path and falls back on any failure.
func (s *Synthesizer) generate(
	ctx context.Context,
	question string,
	contextText string,
	ranked []common.ScoredDocument,
) string {
	if s.client == nil || len(ranked) == 0 {
		return s.fallbackAnswer(question, ranked)
	}

	prompt := fmt.Sprintf(ai.AnswerPrompt, contextText) +
		"\n# Question\n" + question

	s.client.ResetMetrics()

	var result completionResult
	err := s.complete(ctx, prompt, &result)

	metrics := s.client.GetMetrics()
	logger.Debug(
		"[Answer] Model usage",
		"inputTokens", metrics.InputTokens,
		"outputTokens", metrics.OutputTokens,
		"totalTokens", metrics.TotalTokens,
		"durationMs", metrics.DurationMs,
	)

	if err != nil {
		logger.Warn("[Answer] Generation failed, using fallback", "error", err)
		return s.fallbackAnswer(question, ranked)
	}

	answerText := strings.TrimSpace(result.Answer)
	if answerText == "" || result.Confidence < minConfidence {
		logger.Info(
			"[Answer] Discarding low-confidence generation",
			"confidence", result.Confidence,
		)
		return s.fallbackAnswer(question, ranked)
	}

	return answerText
}

// complete issues the structured completion with one retry for
// transient failures. Permanent client errors fail immediately.
func (s *Synthesizer) complete(ctx context.Context, prompt string, out *completionResult) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.client.GenerateCompletionWithFormat(
			attemptCtx,
			"mission_answer",
			"Answer with confidence for a mission documentation question",
			prompt,
			out,
			ai.WithTemperature(0.1),
		)
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err

		if ai.IsPermanent(err) {
			return err
		}
		if ctx.Err() != nil {
			return errors.Join(lastErr, ctx.Err())
		}
	}
	return lastErr
}

// buildContext concatenates the ranked documents into the prompt
// context, truncating once the token budget is spent.
func (s *Synthesizer) buildContext(ranked []common.ScoredDocument) string {
	var sb strings.Builder
	used := 0

	for _, sd := range ranked {
		block := fmt.Sprintf(
			"## %s\n%s\nSource: %s\n\n",
			sd.Document.Title,
			sd.Document.Content,
			sd.Document.URL,
		)

		cost := len(s.encoder.Encode(block, nil, nil))
		if used+cost > s.contextBudget {
			remaining := s.contextBudget - used
			if remaining <= 0 {
				break
			}
			tokens := s.encoder.Encode(block, nil, nil)
			block = s.encoder.Decode(tokens[:remaining])
			sb.WriteString(block)
			break
		}

		sb.WriteString(block)
		used += cost
	}

	return sb.String()
}

// questionEntities extracts deduplicated mentions from the question
// and the retrieved context so callers can see what the query touched.
func (s *Synthesizer) questionEntities(question, contextText string) []common.Mention {
	mentions := s.extractor.Extract(question + "\n" + contextText)
	return extract.DedupeMentions(mentions)
}

// buildSources converts ranked documents into cited sources. Retrieval
// scores map onto a 0..1 confidence, saturating at a score of 10.
func buildSources(ranked []common.ScoredDocument) []common.Source {
	sources := make([]common.Source, 0, len(ranked))
	for _, sd := range ranked {
		confidence := sd.Score / 10
		if confidence > 1 {
			confidence = 1
		}
		sources = append(sources, common.Source{
			Title:      sd.Document.Title,
			URL:        sd.Document.URL,
			Snippet:    util.Snippet(sd.Document.Content, snippetLen),
			Confidence: confidence,
		})
	}
	return sources
}
