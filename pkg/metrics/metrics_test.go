package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := New("test")

	m.Suggestion("rule_based")
	m.Suggestion("rule_based")
	m.QuotaDenied()
	m.RuleFailed("passive_voice", errors.New("boom"))
	m.SentencesAnalyzed(4)
	m.CacheHit()
	m.Tier("remote_ai", "error", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.suggestions.WithLabelValues("rule_based")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quotaDenials))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ruleFailures.WithLabelValues("passive_voice")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.sentences))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_suggestions_total{method="rule_based"} 2`)
	assert.Contains(t, rec.Body.String(), "test_suggestion_tier_duration_seconds_bucket")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Suggestion("rule_based")
		m.QuotaDenied()
		m.RuleFailed("x", nil)
		m.SentencesAnalyzed(1)
		m.CacheHit()
		m.Tier("retrieval", "hit", time.Millisecond)
	})
}
