package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Task hints how the embedding will be used; only Gemini acts on it.
type Task string

const (
	TaskDocument Task = "RETRIEVAL_DOCUMENT"
	TaskQuery    Task = "RETRIEVAL_QUERY"
)

// Dimensions of the reference_examples.embedding column.
const Dimensions = 768

var ErrEmptyEmbedding = errors.New("embedding provider returned no values")

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, task Task) ([]float32, error)
}

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderJina   = "jina"
)

type Params struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

func NewEmbeddingProvider(p Params) (EmbeddingProvider, error) {
	switch p.Provider {
	case ProviderOllama:
		return NewOllamaProvider(p.BaseURL, p.Model, p.Timeout), nil
	case ProviderGemini:
		if p.APIKey == "" {
			return nil, fmt.Errorf("gemini embeddings require an api key")
		}
		return NewGeminiProvider(p.APIKey, p.BaseURL, p.Model, p.Timeout), nil
	case ProviderJina:
		if p.APIKey == "" {
			return nil, fmt.Errorf("jina embeddings require an api key")
		}
		return NewJinaProvider(p.APIKey, p.BaseURL, p.Model, p.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", p.Provider)
	}
}

// Normalize scales vec to unit length so pgvector cosine distance is
// meaningful across providers.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / magnitude)
	}
	return out
}
