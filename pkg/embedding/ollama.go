package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-style-review-be/pkg/httpclient"
)

// OllamaProvider implements EmbeddingProvider for local Ollama models (e.g., nomic-embed-text)
type OllamaProvider struct {
	BaseURL string
	Model   string
	client  *http.Client
}

func NewOllamaProvider(baseURL, model string, timeout time.Duration) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	return &OllamaProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (p *OllamaProvider) Generate(ctx context.Context, text string, _ Task) ([]float32, error) {
	var resp ollamaResponse
	if err := httpclient.PostJSON(ctx, p.client, p.BaseURL+"/api/embeddings", nil, ollamaRequest{Model: p.Model, Prompt: text}, &resp); err != nil {
		return nil, fmt.Errorf("ollama embedding: %w", err)
	}
	if len(resp.Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}
	values := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		values[i] = float32(v)
	}
	return Normalize(values), nil
}
