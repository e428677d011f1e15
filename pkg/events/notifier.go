package events

import (
	"context"
	"time"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/suggestion"
)

const publishTimeout = 3 * time.Second

// Publisher sends an event to a bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// SuggestionNotifier forwards resolved suggestions to a Publisher. Delivery
// is best effort: failures are logged and dropped.
type SuggestionNotifier struct {
	publisher Publisher
	logger    logger.ILogger
	now       func() time.Time
}

func NewSuggestionNotifier(publisher Publisher, log logger.ILogger) *SuggestionNotifier {
	return &SuggestionNotifier{publisher: publisher, logger: log, now: time.Now}
}

func (n *SuggestionNotifier) SuggestionResolved(ctx context.Context, s suggestion.Suggestion) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	event := SuggestionResolvedEvent(s, n.now())
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("EVENTS", "Failed to publish suggestion event", map[string]interface{}{
			"rule_id": s.Issue.RuleID,
			"error":   err.Error(),
		})
	}
}

// SuggestionResolvedEvent carries the labels of a suggestion, not the
// document text.
func SuggestionResolvedEvent(s suggestion.Suggestion, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeSuggestionResolved,
		Data: map[string]interface{}{
			"rule_id":     s.Issue.RuleID,
			"message":     s.Issue.Message,
			"method":      string(s.Method),
			"confidence":  string(s.Confidence),
			"changed":     s.RewrittenText != s.OriginalText,
			"occurred_at": at.UTC().Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}

// SuggestionAcceptedEvent records a rewrite the user kept.
func SuggestionAcceptedEvent(category, original, revised, guidance string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeSuggestionAccepted,
		Data: map[string]interface{}{
			"category":    category,
			"original":    original,
			"revised":     revised,
			"guidance":    guidance,
			"occurred_at": at.UTC().Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}
