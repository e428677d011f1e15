package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/suggestion"
)

type fakePublisher struct {
	events []Event
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event Event) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	p.events = append(p.events, event)
	return p.err
}

func TestSuggestionNotifier_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	n := NewSuggestionNotifier(pub, logger.NewNopLogger())
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return at }

	n.SuggestionResolved(context.Background(), suggestion.Suggestion{
		Issue:         suggestion.IssueRef{RuleID: "passive_voice", Message: `Passive voice: "was written"`},
		OriginalText:  "The report was written by the team.",
		RewrittenText: "The team wrote the report.",
		Method:        suggestion.MethodRuleBased,
		Confidence:    suggestion.ConfidenceMedium,
	})

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, TypeSuggestionResolved, ev.EventType())
	assert.Equal(t, at, ev.Timestamp())
	assert.Equal(t, "passive_voice", ev.Payload()["rule_id"])
	assert.Equal(t, "rule_based", ev.Payload()["method"])
	assert.Equal(t, true, ev.Payload()["changed"])
	assert.Equal(t, "2024-05-01T12:00:00Z", ev.Payload()["occurred_at"])
	assert.NotContains(t, ev.Payload(), "original")
}

func TestSuggestionNotifier_SwallowsPublishErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("nats: no responders")}
	n := NewSuggestionNotifier(pub, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		n.SuggestionResolved(context.Background(), suggestion.Suggestion{Method: suggestion.MethodUnavailable})
	})
	assert.Len(t, pub.events, 1)
}

func TestSuggestionAcceptedEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ev := SuggestionAcceptedEvent("wordiness", "in order to", "to", "Drop filler.", at)

	assert.Equal(t, TypeSuggestionAccepted, ev.EventType())
	assert.Equal(t, "wordiness", ev.Payload()["category"])
	assert.Equal(t, "to", ev.Payload()["revised"])
}
