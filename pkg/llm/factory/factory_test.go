package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-style-review-be/pkg/llm/anthropic"
	"ai-style-review-be/pkg/llm/gemini"
	"ai-style-review-be/pkg/llm/huggingface"
	"ai-style-review-be/pkg/llm/ollama"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		want    any
		wantErr bool
	}{
		{name: "disabled", params: Params{Provider: ProviderNone}},
		{name: "empty means disabled", params: Params{}},
		{name: "ollama", params: Params{Provider: ProviderOllama, Model: "llama3"}, want: &ollama.OllamaProvider{}},
		{name: "huggingface", params: Params{Provider: ProviderHuggingFace, Model: "m"}, want: &huggingface.HuggingFaceProvider{}},
		{name: "gemini", params: Params{Provider: ProviderGemini, APIKey: "k"}, want: &gemini.GeminiProvider{}},
		{name: "gemini without key", params: Params{Provider: ProviderGemini}, wantErr: true},
		{name: "anthropic", params: Params{Provider: ProviderAnthropic, APIKey: "k", Model: "m", Timeout: time.Second}, want: &anthropic.AnthropicProvider{}},
		{name: "anthropic without model", params: Params{Provider: ProviderAnthropic, APIKey: "k"}, wantErr: true},
		{name: "unknown", params: Params{Provider: "openai"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, p)
				return
			}
			assert.IsType(t, tt.want, p)
		})
	}
}
