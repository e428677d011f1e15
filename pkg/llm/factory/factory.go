package factory

import (
	"fmt"
	"time"

	"ai-style-review-be/pkg/llm"
	"ai-style-review-be/pkg/llm/anthropic"
	"ai-style-review-be/pkg/llm/gemini"
	"ai-style-review-be/pkg/llm/huggingface"
	"ai-style-review-be/pkg/llm/ollama"
)

const (
	ProviderNone        = "none"
	ProviderOllama      = "ollama"
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderAnthropic   = "anthropic"
)

// Params select and configure an LLM backend.
type Params struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// NewLLMProvider returns nil, nil for ProviderNone or an empty provider, which
// disables remote generation.
func NewLLMProvider(p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderOllama:
		return ollama.NewOllamaProvider(p.BaseURL, p.Model, p.Timeout), nil
	case ProviderHuggingFace:
		return huggingface.NewHuggingFaceProvider(p.APIKey, p.BaseURL, p.Model, p.Timeout), nil
	case ProviderGemini:
		if p.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(p.APIKey, p.BaseURL, p.Model, p.Timeout), nil
	case ProviderAnthropic:
		if p.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an api key")
		}
		if p.Model == "" {
			return nil, fmt.Errorf("anthropic provider requires a model")
		}
		return anthropic.NewAnthropicProvider(p.APIKey, p.BaseURL, p.Model, p.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
