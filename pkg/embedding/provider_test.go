package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	out := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, out[0], 1e-6)
	assert.InDelta(t, 0.8, out[1], 1e-6)

	zero := []float32{0, 0}
	assert.Equal(t, zero, Normalize(zero))
}

func TestOllamaProviderNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		_, _ = w.Write([]byte(`{"embedding":[0,2,0]}`))
	}))
	defer srv.Close()

	vec, err := NewOllamaProvider(srv.URL, "", time.Second).Generate(context.Background(), "text", TaskQuery)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 0}, vec)
}

func TestGeminiProviderSendsTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-embedding-004:embedContent", r.URL.Path)
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, string(TaskDocument), req.TaskType)
		_, _ = w.Write([]byte(`{"embedding":{"values":[0.5,0.5]}}`))
	}))
	defer srv.Close()

	vec, err := NewGeminiProvider("key", srv.URL, "", time.Second).Generate(context.Background(), "text", TaskDocument)
	require.NoError(t, err)
	assert.Len(t, vec, 2)
}

func TestJinaProviderEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := NewJinaProvider("key", srv.URL, "", time.Second).Generate(context.Background(), "text", TaskQuery)
	assert.ErrorIs(t, err, ErrEmptyEmbedding)
}

func TestNewEmbeddingProvider(t *testing.T) {
	p, err := NewEmbeddingProvider(Params{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.IsType(t, &OllamaProvider{}, p)

	_, err = NewEmbeddingProvider(Params{Provider: ProviderJina})
	assert.Error(t, err)

	_, err = NewEmbeddingProvider(Params{Provider: "word2vec"})
	assert.Error(t, err)
}
