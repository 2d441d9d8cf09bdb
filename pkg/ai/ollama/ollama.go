package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/ollama/ollama/api"

	"github.com/skyatlas/missionq/pkg/ai"
)

// CompletionOllamaClient implements ai.CompletionClient against a
// locally-hosted Ollama server.
type CompletionOllamaClient struct {
	answerModel string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewCompletionOllamaClientParams contains configuration options for
// creating a new CompletionOllamaClient.
type NewCompletionOllamaClientParams struct {
	AnswerModel string

	BaseURL string
	APIKey  string
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewCompletionOllamaClient creates a new Ollama-backed completion
// client. It connects to the server at BaseURL (or the default if
// empty) and uses AnswerModel for all generation.
func NewCompletionOllamaClient(
	params NewCompletionOllamaClientParams,
) (*CompletionOllamaClient, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.APIKey,
			},
			rt: http.DefaultTransport,
		},
	}

	cli := api.NewClient(u, httpClient)

	return &CompletionOllamaClient{
		answerModel: params.AnswerModel,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		baseURL:    u,
		apiKey:     params.APIKey,
		httpClient: httpClient,

		Client: cli,
	}, nil
}
