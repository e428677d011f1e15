package dto

import (
	"ai-style-review-be/pkg/quota"
	"ai-style-review-be/pkg/rules"
	"ai-style-review-be/pkg/segmenter"
	"ai-style-review-be/pkg/suggestion"
)

type BlockRequest struct {
	Id      string `json:"id"`
	Content string `json:"content"`
}

type AnalyzeRequest struct {
	Blocks []BlockRequest `json:"blocks" validate:"required,min=1,max=500"`
}

type AnalyzeResponse struct {
	Sentences []segmenter.Sentence `json:"sentences"`
	Issues    []rules.Issue        `json:"issues"`
}

type SentenceRequest struct {
	Index         int    `json:"index" validate:"gte=0"`
	PlainText     string `json:"plain_text" validate:"required"`
	FormattedText string `json:"formatted_text"`
	SourceBlockId string `json:"source_block_id"`
}

func (s SentenceRequest) ToSentence() segmenter.Sentence {
	return segmenter.Sentence{
		Index:         s.Index,
		PlainText:     s.PlainText,
		FormattedText: s.FormattedText,
		SourceBlockID: s.SourceBlockId,
	}
}

func SentenceRequestOf(s segmenter.Sentence) SentenceRequest {
	return SentenceRequest{
		Index:         s.Index,
		PlainText:     s.PlainText,
		FormattedText: s.FormattedText,
		SourceBlockId: s.SourceBlockID,
	}
}

type IssueRequest struct {
	SentenceIndex int    `json:"sentence_index" validate:"gte=0"`
	RuleId        string `json:"rule_id" validate:"required"`
	Message       string `json:"message" validate:"required"`
	Severity      string `json:"severity"`
}

func (i IssueRequest) ToIssue() rules.Issue {
	return rules.Issue{
		SentenceIndex: i.SentenceIndex,
		RuleID:        i.RuleId,
		Message:       i.Message,
		Severity:      rules.Severity(i.Severity),
	}
}

func IssueRequestOf(i rules.Issue) IssueRequest {
	return IssueRequest{
		SentenceIndex: i.SentenceIndex,
		RuleId:        i.RuleID,
		Message:       i.Message,
		Severity:      string(i.Severity),
	}
}

type SuggestionRequest struct {
	Sentence SentenceRequest `json:"sentence" validate:"required"`
	Issue    IssueRequest    `json:"issue" validate:"required"`
}

type SuggestionResponse = suggestion.Suggestion

// AcceptSuggestionRequest feeds a rewrite the user kept back into the
// reference store.
type AcceptSuggestionRequest struct {
	Category string `json:"category" validate:"required,oneof=passive_voice long_sentence wordiness terminology punctuation formatting"`
	Original string `json:"original" validate:"required"`
	Revised  string `json:"revised" validate:"required,nefield=Original"`
	Guidance string `json:"guidance" validate:"max=500"`
}

// PublishAcceptedSuggestionMessage is the bus payload for an accepted
// suggestion.
type PublishAcceptedSuggestionMessage struct {
	Category string `json:"category"`
	Original string `json:"original"`
	Revised  string `json:"revised"`
	Guidance string `json:"guidance"`
}

type QuotaResponse = quota.State

type RulesResponse struct {
	Rules []string `json:"rules"`
}
