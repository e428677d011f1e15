package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ai-style-review-be/pkg/httpclient"
)

// JinaProvider uses jina-embeddings-v2-base-en, which has 768 dimensions.
type JinaProvider struct {
	apiKey string
	url    string
	model  string
	client *http.Client
}

func NewJinaProvider(apiKey, url, model string, timeout time.Duration) *JinaProvider {
	if url == "" {
		url = "https://api.jina.ai/v1/embeddings"
	}
	if model == "" {
		model = "jina-embeddings-v2-base-en"
	}
	return &JinaProvider{apiKey: apiKey, url: url, model: model, client: &http.Client{Timeout: timeout}}
}

type jinaRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type jinaResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *JinaProvider) Generate(ctx context.Context, text string, _ Task) ([]float32, error) {
	var resp jinaResponse
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}
	if err := httpclient.PostJSON(ctx, p.client, p.url, headers, jinaRequest{Model: p.model, Input: []string{text}}, &resp); err != nil {
		return nil, fmt.Errorf("jina embedding: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("jina api returned error: %s", resp.Error.Message)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return resp.Data[0].Embedding, nil
}
