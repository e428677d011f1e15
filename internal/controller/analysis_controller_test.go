package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/internal/pkg/serverutils"
	"ai-style-review-be/internal/service"
	"ai-style-review-be/pkg/quota"
	"ai-style-review-be/pkg/rules"
	"ai-style-review-be/pkg/segmenter"
	"ai-style-review-be/pkg/suggestion"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.NewNopLogger()
	registry, err := rules.NewRegistryFromConfig(nil, rules.Settings{})
	require.NoError(t, err)
	engine := rules.NewEngine(registry, log, nil)

	tracker := quota.NewMemoryTracker(3, nil)
	ps := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ps.Close() })

	analysis := service.NewAnalysisService(segmenter.New(segmenter.Options{}), engine, nil, log, 2)
	suggestions := service.NewSuggestionService(
		suggestion.NewResolver(suggestion.Options{Quota: tracker}),
		tracker,
		service.NewPublisherService("ACCEPTED", ps),
		nil,
		log,
	)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewAnalysisController(analysis, suggestions).RegisterRoutes(app.Group("/api"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestAnalysisController_Analyze(t *testing.T) {
	app := newTestApp(t)

	code, env := do(t, app, "POST", "/api/analysis/v1", map[string]any{
		"blocks": []map[string]string{
			{"id": "b1", "content": "Use <strong>Autostart</strong> mode by enabling it. It works well."},
		},
	})

	require.Equal(t, 200, code)
	assert.True(t, env.Success)
	var data struct {
		Sentences []segmenter.Sentence `json:"sentences"`
		Issues    []rules.Issue        `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Sentences, 2)
	assert.Equal(t, "Use Autostart mode by enabling it.", data.Sentences[0].PlainText)
	assert.Equal(t, "It works well.", data.Sentences[1].PlainText)
	assert.NotNil(t, data.Issues)
}

func TestAnalysisController_AnalyzeRejects(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body any
	}{
		{"no blocks", map[string]any{"blocks": []any{}}},
		{"blank content", map[string]any{"blocks": []map[string]string{{"content": "   "}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, app, "POST", "/api/analysis/v1", tt.body)
			assert.Equal(t, 400, code)
			assert.False(t, env.Success)
		})
	}
}

func TestAnalysisController_Suggest(t *testing.T) {
	app := newTestApp(t)

	code, env := do(t, app, "POST", "/api/analysis/v1/suggestion", map[string]any{
		"sentence": map[string]any{"index": 0, "plain_text": "The report was written by the team."},
		"issue": map[string]any{
			"sentence_index": 0,
			"rule_id":        rules.PassiveVoiceID,
			"message":        rules.PassiveVoiceMessage("was written"),
		},
	})

	require.Equal(t, 200, code)
	var s suggestion.Suggestion
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, suggestion.MethodRuleBased, s.Method)
	assert.Contains(t, s.RewrittenText, "team wrote")
}

func TestAnalysisController_SuggestValidation(t *testing.T) {
	app := newTestApp(t)

	code, env := do(t, app, "POST", "/api/analysis/v1/suggestion", map[string]any{
		"sentence": map[string]any{"plain_text": ""},
		"issue":    map[string]any{"rule_id": "x"},
	})

	assert.Equal(t, 400, code)
	assert.Contains(t, env.Message, "Validation failed")
}

func TestAnalysisController_Accept(t *testing.T) {
	app := newTestApp(t)

	code, _ := do(t, app, "POST", "/api/analysis/v1/suggestion/accept", map[string]any{
		"category": "wordiness",
		"original": "We met in order to plan.",
		"revised":  "We met to plan.",
	})
	assert.Equal(t, 202, code)

	code, _ = do(t, app, "POST", "/api/analysis/v1/suggestion/accept", map[string]any{
		"category": "spelling",
		"original": "teh",
		"revised":  "the",
	})
	assert.Equal(t, 400, code)
}

func TestAnalysisController_QuotaAndRules(t *testing.T) {
	app := newTestApp(t)

	code, env := do(t, app, "GET", "/api/analysis/v1/quota", nil)
	require.Equal(t, 200, code)
	var state quota.State
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, 3, state.Capacity)
	assert.Equal(t, 0, state.Used)

	code, env = do(t, app, "GET", "/api/analysis/v1/rules", nil)
	require.Equal(t, 200, code)
	var ids struct {
		Rules []string `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ids))
	assert.Equal(t, rules.DefaultRuleIDs, ids.Rules)
}
