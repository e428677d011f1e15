package rules

import (
	"unicode"
	"unicode/utf8"
)

const (
	FormattingID = "formatting"

	minAllCapsLetters = 5
)

// Formatting flags a lowercase sentence start and shouted words.
type Formatting struct{}

func (Formatting) ID() string { return FormattingID }

func (Formatting) Check(text string) ([]Finding, error) {
	var findings []Finding
	words := Words(text)
	if len(words) > 0 && startsLowercase(words[0].Text) && words[0].Start == firstNonSpace(text) {
		findings = append(findings, Finding{
			Message:  MsgLowercaseStart,
			Severity: SeverityInfo,
			Span:     &Span{Start: words[0].Start, End: words[0].End},
		})
	}
	for _, w := range words {
		if isShouted(w.Text) {
			findings = append(findings, Finding{
				Message:  AllCapsMessage(w.Text),
				Severity: SeverityInfo,
				Span:     &Span{Start: w.Start, End: w.End},
			})
		}
	}
	return findings, nil
}

// startsLowercase ignores camel-cased brand names such as "iPhone".
func startsLowercase(word string) bool {
	first, size := utf8.DecodeRuneInString(word)
	if !unicode.IsLower(first) {
		return false
	}
	second, _ := utf8.DecodeRuneInString(word[size:])
	return !unicode.IsUpper(second)
}

func firstNonSpace(text string) int {
	for i, r := range text {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return len(text)
}

func isShouted(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			letters++
		}
	}
	return letters >= minAllCapsLetters
}
