package factory

import (
	"fmt"

	"parts-assist-be/pkg/llm"
	"parts-assist-be/pkg/llm/ollama"
	"parts-assist-be/pkg/llm/openaicompat"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "deepseek":
		if baseURL == "" {
			baseURL = "https://api.deepseek.com"
		}
		return openaicompat.NewProvider(baseURL, apiKey, modelName), nil
	case "openai":
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		return openaicompat.NewProvider(baseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
