package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-style-review-be/pkg/httpclient"
	"ai-style-review-be/pkg/llm"
)

const DefaultBaseURL = "http://localhost:11434"

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string, timeout time.Duration) *OllamaProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OllamaProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		Client:    &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *modelOptions `json:"options,omitempty"`
}

type modelOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message llm.Message `json:"message"`
	Done    bool        `json:"done"`
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	cfg := llm.Apply(llm.Options{Model: o.ModelName, Temperature: 0.2}, opts...)

	req := chatRequest{
		Model:    cfg.Model,
		Messages: history,
		Options:  &modelOptions{Temperature: cfg.Temperature, NumPredict: cfg.MaxTokens},
	}

	var resp chatResponse
	if err := httpclient.PostJSON(ctx, o.Client, o.BaseURL+"/api/chat", nil, req, &resp); err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if strings.TrimSpace(resp.Message.Content) == "" {
		return "", llm.ErrEmptyResponse
	}
	return resp.Message.Content, nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return o.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
