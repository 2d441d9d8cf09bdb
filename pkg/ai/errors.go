package ai

import (
	"errors"

	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// IsPermanent reports whether a completion error will not succeed on
// retry: a 4xx response such as an auth or request-shape problem.
// Timeouts and rate limits stay retryable.
func IsPermanent(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return clientError(apiErr.StatusCode)
	}

	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return clientError(statusErr.StatusCode)
	}

	return false
}

func clientError(status int) bool {
	if status == 408 || status == 429 {
		return false
	}
	return status >= 400 && status < 500
}
