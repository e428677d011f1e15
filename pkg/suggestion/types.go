package suggestion

import (
	"context"

	"ai-style-review-be/pkg/rules"
)

// Method records which tier produced a suggestion.
type Method string

const (
	MethodRemoteAI    Method = "remote_ai"
	MethodRetrieval   Method = "retrieval_augmented"
	MethodRuleBased   Method = "rule_based"
	MethodUnavailable Method = "unavailable"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// IssueRef identifies the issue a suggestion answers.
type IssueRef struct {
	SentenceIndex int    `json:"sentence_index"`
	RuleID        string `json:"rule_id"`
	Message       string `json:"message"`
}

func RefOf(issue rules.Issue) IssueRef {
	return IssueRef{SentenceIndex: issue.SentenceIndex, RuleID: issue.RuleID, Message: issue.Message}
}

type Suggestion struct {
	Issue         IssueRef   `json:"issue"`
	OriginalText  string     `json:"original_text"`
	RewrittenText string     `json:"rewritten_text"`
	Method        Method     `json:"method"`
	Confidence    Confidence `json:"confidence"`
	Rationale     string     `json:"rationale"`
}

// Notifier hears about every freshly resolved suggestion; cache hits are
// not reported.
type Notifier interface {
	SuggestionResolved(ctx context.Context, s Suggestion)
}
