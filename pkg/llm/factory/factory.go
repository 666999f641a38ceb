package factory

import (
	"fmt"

	"mentorlink-be/pkg/llm"
	"mentorlink-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured LLM backend.
func NewLLMProvider(provider, model, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama", "":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
