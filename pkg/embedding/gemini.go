package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-style-review-be/pkg/httpclient"
)

type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGeminiProvider(apiKey, baseURL, model string, timeout time.Duration) *GeminiProvider {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1"
	}
	if model == "" {
		model = "text-embedding-004"
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiRequest struct {
	Model   string `json:"model"`
	Content struct {
		Parts []geminiPart `json:"parts"`
	} `json:"content"`
	TaskType string `json:"task_type,omitempty"`
}

type geminiResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, task Task) ([]float32, error) {
	req := geminiRequest{Model: p.model, TaskType: string(task)}
	req.Content.Parts = []geminiPart{{Text: text}}

	url := fmt.Sprintf("%s/models/%s:embedContent", p.baseURL, p.model)
	var resp geminiResponse
	if err := httpclient.PostJSON(ctx, p.client, url, map[string]string{"x-goog-api-key": p.apiKey}, req, &resp); err != nil {
		return nil, fmt.Errorf("gemini embedding: %w", err)
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return resp.Embedding.Values, nil
}
