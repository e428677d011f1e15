package rewrite

import (
	"regexp"

	"ai-style-review-be/pkg/rules"
)

var (
	repeatedRun = regexp.MustCompile(`([,;:!?])[,;:!?]+`)
	manyDots    = regexp.MustCompile(`\.{4,}`)
	doubleDot   = regexp.MustCompile(`(^|[^.])\.\.([^.]|$)`)
	spaceBefore = regexp.MustCompile(`\s+([,;:!?])`)
)

func fixPunctuation(sentence string) (string, bool) {
	out := repeatedRun.ReplaceAllString(sentence, "$1")
	out = manyDots.ReplaceAllString(out, "...")
	for {
		next := doubleDot.ReplaceAllString(out, "$1.$2")
		if next == out {
			break
		}
		out = next
	}
	out = spaceBefore.ReplaceAllString(out, "$1")
	if rules.NeedsTerminal(out) {
		out += "."
	}
	return out, out != sentence
}
