package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-style-review-be/internal/dto"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/metrics"
	"ai-style-review-be/pkg/rules"
	"ai-style-review-be/pkg/segmenter"
)

func newAnalysisService(t *testing.T, extra ...rules.Rule) (IAnalysisService, *metrics.Metrics) {
	t.Helper()
	registry, err := rules.NewRegistryFromConfig(nil, rules.Settings{})
	require.NoError(t, err)
	for _, r := range extra {
		require.NoError(t, registry.Register(r))
	}
	m := metrics.New("test")
	log := logger.NewNopLogger()
	engine := rules.NewEngine(registry, log, m.RuleFailed)
	return NewAnalysisService(segmenter.New(segmenter.Options{}), engine, m, log, 4), m
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	svc, _ := newAnalysisService(t)

	tests := []struct {
		name   string
		blocks []dto.BlockRequest
	}{
		{"no blocks", nil},
		{"blank blocks", []dto.BlockRequest{{Content: "  "}, {Content: "\n"}}},
		{"markup only", []dto.BlockRequest{{Content: "<p><img src=\"a.png\"></p>"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Blocks: tt.blocks})
			assert.ErrorIs(t, err, ErrEmptyDocument)
		})
	}
}

func TestAnalyze_NumbersSentencesAcrossBlocks(t *testing.T) {
	svc, _ := newAnalysisService(t)

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Blocks: []dto.BlockRequest{
		{Id: "intro", Content: "Use <strong>Autostart</strong> mode by enabling it. It works well."},
		{Id: "body", Content: "<p>The report was written by the team.</p>"},
	}})
	require.NoError(t, err)

	require.Len(t, res.Sentences, 3)
	for i, s := range res.Sentences {
		assert.Equal(t, i, s.Index)
	}
	assert.Equal(t, "Use Autostart mode by enabling it.", res.Sentences[0].PlainText)
	assert.Contains(t, res.Sentences[0].FormattedText, "<strong>Autostart</strong>")
	assert.Equal(t, "It works well.", res.Sentences[1].PlainText)
	assert.Contains(t, res.Sentences[1].SourceBlockID, "intro")
	assert.Contains(t, res.Sentences[2].SourceBlockID, "body")

	require.NotEmpty(t, res.Issues)
	passive := res.Issues[len(res.Issues)-1]
	assert.Equal(t, 2, passive.SentenceIndex)
	assert.Equal(t, rules.PassiveVoiceID, passive.RuleID)
	for i := 1; i < len(res.Issues); i++ {
		assert.LessOrEqual(t, res.Issues[i-1].SentenceIndex, res.Issues[i].SentenceIndex)
	}
}

func TestAnalyze_AssignsMissingBlockIds(t *testing.T) {
	svc, _ := newAnalysisService(t)

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Blocks: []dto.BlockRequest{
		{Content: "First. Second."},
	}})
	require.NoError(t, err)

	require.Len(t, res.Sentences, 2)
	assert.NotEmpty(t, res.Sentences[0].SourceBlockID)
	assert.Equal(t, res.Sentences[0].SourceBlockID, res.Sentences[1].SourceBlockID)
}

func TestAnalyze_FailingRuleIsIsolated(t *testing.T) {
	broken := rules.RuleFunc{RuleID: "broken", Fn: func(string) ([]rules.Finding, error) {
		return nil, errors.New("boom")
	}}
	svc, _ := newAnalysisService(t, broken)

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Blocks: []dto.BlockRequest{
		{Content: "The report was written by the team."},
	}})
	require.NoError(t, err)

	var ids []string
	for _, is := range res.Issues {
		ids = append(ids, is.RuleID)
	}
	assert.Contains(t, ids, rules.PassiveVoiceID)
	assert.NotContains(t, ids, "broken")
	assert.Contains(t, svc.RuleIDs(), "broken")
}

func TestAnalyze_CancelledContext(t *testing.T) {
	svc, _ := newAnalysisService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, &dto.AnalyzeRequest{Blocks: []dto.BlockRequest{{Content: "Hello there."}}})
	assert.ErrorIs(t, err, context.Canceled)
}
