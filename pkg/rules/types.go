package rules

// Severity of an issue.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Span is a byte range [Start, End) inside a sentence's plain text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Finding is what a rule reports for one sentence.
type Finding struct {
	Message  string
	Severity Severity
	Span     *Span
}

// Issue is a finding attributed to a sentence by the engine.
type Issue struct {
	SentenceIndex int      `json:"sentence_index"`
	RuleID        string   `json:"rule_id"`
	Message       string   `json:"message"`
	Severity      Severity `json:"severity"`
	Span          *Span    `json:"span,omitempty"`
}
