package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-style-review-be/pkg/httpclient"
	"ai-style-review-be/pkg/llm"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"

	roleModel = "model"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, baseURL, model string, timeout time.Duration) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Apply(llm.Options{Model: p.model, Temperature: 0.2}, options...)
	system, rest := llm.SplitSystem(history)

	req := generateRequest{
		GenerationConfig: &generationConfig{Temperature: opts.Temperature, MaxOutputTokens: opts.MaxTokens},
	}
	if system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	for _, m := range rest {
		role := m.Role
		if role == llm.RoleAssistant {
			role = roleModel
		}
		req.Contents = append(req.Contents, content{Parts: []part{{Text: m.Content}}, Role: role})
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, opts.Model)
	var resp generateResponse
	if err := httpclient.PostJSON(ctx, p.client, url, map[string]string{"x-goog-api-key": p.apiKey}, req, &resp); err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 {
		for _, pt := range resp.Candidates[0].Content.Parts {
			sb.WriteString(pt.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", llm.ErrEmptyResponse
	}
	return sb.String(), nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}
