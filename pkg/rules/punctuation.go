package rules

import (
	"regexp"
	"strings"
)

const (
	PunctuationID = "punctuation"

	// Shorter sentences are usually headings or list items.
	minWordsForTerminal = 6
)

var (
	repeatedMarks    = regexp.MustCompile(`[,;:!?]{2,}|\.{4,}|(?:^|[^.])(\.\.)(?:[^.]|$)`)
	spaceBeforeMarks = regexp.MustCompile(`\s+([,;:!?])`)
)

// Punctuation flags repeated marks, spaces before marks and missing
// terminal punctuation.
type Punctuation struct{}

func (Punctuation) ID() string { return PunctuationID }

func (Punctuation) Check(text string) ([]Finding, error) {
	var findings []Finding
	for _, loc := range repeatedMarks.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if loc[2] >= 0 {
			start, end = loc[2], loc[3]
		}
		findings = append(findings, Finding{
			Message:  RepeatedPunctuationMessage(text[start:end]),
			Severity: SeverityInfo,
			Span:     &Span{Start: start, End: end},
		})
	}
	for _, loc := range spaceBeforeMarks.FindAllStringSubmatchIndex(text, -1) {
		findings = append(findings, Finding{
			Message:  SpaceBeforePunctuationMessage(text[loc[2]:loc[3]]),
			Severity: SeverityInfo,
			Span:     &Span{Start: loc[0], End: loc[1]},
		})
	}
	if NeedsTerminal(text) {
		findings = append(findings, Finding{Message: MsgMissingTerminal, Severity: SeverityInfo})
	}
	return findings, nil
}

// NeedsTerminal reports whether text is long enough to need terminal
// punctuation and lacks it.
func NeedsTerminal(text string) bool {
	return len(Words(text)) >= minWordsForTerminal && !hasTerminal(text)
}

func hasTerminal(text string) bool {
	t := strings.TrimRight(strings.TrimSpace(text), `"')]”’`)
	return strings.HasSuffix(t, ".") || strings.HasSuffix(t, "!") ||
		strings.HasSuffix(t, "?") || strings.HasSuffix(t, ":") || strings.HasSuffix(t, "…")
}
