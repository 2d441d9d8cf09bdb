package openai

import (
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/skyatlas/missionq/pkg/ai"
)

// CompletionOpenAIClient implements ai.CompletionClient against any
// OpenAI-compatible chat completion endpoint.
//
// A CompletionOpenAIClient should be created using NewCompletionOpenAIClient.
type CompletionOpenAIClient struct {
	answerModel string

	baseURL string
	apiKey  string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewCompletionOpenAIClientParams defines the configuration parameters
// for creating a new CompletionOpenAIClient.
//
// AnswerModel specifies the chat model used for answer synthesis.
// BaseURL and APIKey configure the endpoint; an empty BaseURL targets
// the public OpenAI API.
type NewCompletionOpenAIClientParams struct {
	AnswerModel string
	BaseURL     string
	APIKey      string
}

// NewCompletionOpenAIClient creates and returns a new client configured
// with the provided parameters. A missing API key yields a client with
// no transport; callers treat that as the completion service being
// unavailable.
func NewCompletionOpenAIClient(
	params NewCompletionOpenAIClientParams,
) *CompletionOpenAIClient {
	return &CompletionOpenAIClient{
		answerModel: params.AnswerModel,

		baseURL: params.BaseURL,
		apiKey:  params.APIKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.BaseURL, params.APIKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
