package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/segmenter"
)

func okRule(id string) Rule {
	return RuleFunc{RuleID: id, Fn: func(text string) ([]Finding, error) {
		return []Finding{{Message: id + ": " + text}}, nil
	}}
}

func TestEngineIsolatesFailingRules(t *testing.T) {
	tests := []struct {
		name    string
		failing Rule
	}{
		{
			name: "panicking rule",
			failing: RuleFunc{RuleID: "boom", Fn: func(string) ([]Finding, error) {
				panic("index out of range")
			}},
		},
		{
			name: "erroring rule",
			failing: RuleFunc{RuleID: "boom", Fn: func(string) ([]Finding, error) {
				return []Finding{{Message: "partial"}}, errors.New("dictionary unavailable")
			}},
		},
	}

	sentences := []segmenter.Sentence{
		{Index: 0, PlainText: "First."},
		{Index: 1, PlainText: "Second."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			require.NoError(t, reg.Register(okRule("before")))
			require.NoError(t, reg.Register(tt.failing))
			require.NoError(t, reg.Register(okRule("after")))

			var failed []string
			engine := NewEngine(reg, logger.NewNopLogger(), func(id string, err error) {
				assert.Error(t, err)
				failed = append(failed, id)
			})

			issues := engine.Check(sentences)

			assert.Equal(t, []string{"boom", "boom"}, failed)
			require.Len(t, issues, 4)
			assert.Equal(t, Issue{SentenceIndex: 0, RuleID: "before", Message: "before: First.", Severity: SeverityInfo}, issues[0])
			assert.Equal(t, "after", issues[1].RuleID)
			assert.Equal(t, 1, issues[2].SentenceIndex)
			assert.Equal(t, "before", issues[2].RuleID)
			assert.Equal(t, "after: Second.", issues[3].Message)
		})
	}
}

func TestEngineWithBuiltinRules(t *testing.T) {
	reg, err := NewRegistryFromConfig(nil, Settings{})
	require.NoError(t, err)
	engine := NewEngine(reg, logger.NewNopLogger(), nil)

	issues := engine.Check([]segmenter.Sentence{
		{Index: 0, PlainText: "The report was written by the team."},
		{Index: 1, PlainText: "Everything looks fine."},
	})

	require.Len(t, issues, 1)
	assert.Equal(t, 0, issues[0].SentenceIndex)
	assert.Equal(t, PassiveVoiceID, issues[0].RuleID)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, DefaultRuleIDs, engine.RuleIDs())
}

func TestRegistryRejectsBadRegistrations(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(okRule("a")))
	assert.Error(t, reg.Register(okRule("a")))
	assert.Error(t, reg.Register(okRule("")))
	assert.Error(t, reg.Register(nil))
	assert.Equal(t, []string{"a"}, reg.IDs())
}
