package server

import (
	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/ai"
	oai "github.com/skyatlas/missionq/pkg/ai/ollama"
	gai "github.com/skyatlas/missionq/pkg/ai/openai"
	"github.com/skyatlas/missionq/pkg/logger"
)

// NewAIClient builds the completion client selected by AI_ADAPTER:
// "ollama", "openai" or "none". With "none" (the default) answer
// synthesis runs on the deterministic fallback chain.
func NewAIClient() ai.CompletionClient {
	adapter := util.GetEnvString("AI_ADAPTER", "none")

	switch adapter {
	case "ollama":
		client, err := oai.NewCompletionOllamaClient(oai.NewCompletionOllamaClientParams{
			AnswerModel: util.GetEnv("AI_ANSWER_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			APIKey:  util.GetEnv("AI_CHAT_KEY"),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	case "openai":
		return gai.NewCompletionOpenAIClient(gai.NewCompletionOpenAIClientParams{
			AnswerModel: util.GetEnv("AI_ANSWER_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			APIKey:  util.GetEnv("AI_CHAT_KEY"),
		})
	default:
		logger.Info("No AI adapter configured, using fallback answers")
		return nil
	}
}
