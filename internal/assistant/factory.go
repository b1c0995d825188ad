package assistant

import (
	"fmt"

	"tingnect-api/internal/config"
)

func NewProvider(cfg config.Config) (Provider, error) {
	switch cfg.AssistantProvider {
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIAssistantID), nil
	case "stub":
		return NewStub(), nil
	default:
		return nil, fmt.Errorf("unknown assistant provider: %s", cfg.AssistantProvider)
	}
}
