package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "none", cfg.Ai.LLMProvider)
	assert.Equal(t, 5*time.Second, cfg.Ai.Timeout)
	assert.Equal(t, "memory", cfg.Quota.Backend)
	assert.Equal(t, 25, cfg.Rules.MaxSentenceWords)
	assert.Nil(t, cfg.Rules.Enabled)
	assert.False(t, cfg.Auth.Required)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("RULES_ENABLED", " passive_voice, ,long_sentence ")
	t.Setenv("LLM_TIMEOUT", "750ms")
	t.Setenv("QUOTA_DAILY_CAPACITY", "12")
	t.Setenv("RETRIEVAL_MIN_SCORE", "0.65")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("RULES_MAX_SENTENCE_WORDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, []string{"passive_voice", "long_sentence"}, cfg.Rules.Enabled)
	assert.Equal(t, 750*time.Millisecond, cfg.Ai.Timeout)
	assert.Equal(t, 12, cfg.Quota.DailyCapacity)
	assert.InDelta(t, 0.65, cfg.Retrieval.MinScore, 1e-9)
	assert.True(t, cfg.Auth.Required)
	assert.Equal(t, 25, cfg.Rules.MaxSentenceWords)
}
