package rewrite

import (
	"sort"
	"strings"
	"unicode"

	"ai-style-review-be/pkg/rules"
)

func lowerAll(word string) string {
	if strings.IndexFunc(word, unicode.IsLower) >= 0 {
		// mixed-case words keep their inner capitals
		return word
	}
	return strings.ToLower(word)
}

func firstWordStart(s string) int {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	})
}

// fixFormatting repairs every span the formatting rule reports.
func fixFormatting(sentence string) (string, bool) {
	findings, err := rules.Formatting{}.Check(sentence)
	if err != nil || len(findings) == 0 {
		return "", false
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Span.Start > findings[j].Span.Start
	})
	out := sentence
	lastStart := -1
	for _, f := range findings {
		span := f.Span
		if span == nil || span.Start == lastStart {
			continue
		}
		lastStart = span.Start
		word := out[span.Start:span.End]
		fixed := rules.UpperFirst(lowerAll(word))
		if span.Start > firstWordStart(out) {
			fixed = lowerAll(word)
		}
		out = out[:span.Start] + fixed + out[span.End:]
	}
	return out, out != sentence
}
