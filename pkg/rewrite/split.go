package rewrite

import (
	"strings"

	"ai-style-review-be/pkg/rules"
)

const minClauseWords = 3

var splitPoints = []struct {
	sep  string
	lead string
}{
	{", and ", ""},
	{", but ", "However, "},
	{", so ", "As a result, "},
	{", or ", "Alternatively, "},
	{", yet ", "Still, "},
	{"; ", ""},
}

func splitLong(sentence string) (string, bool) {
	mid := len(sentence) / 2
	best, bestSep, bestLead := -1, "", ""
	for _, sp := range splitPoints {
		for off := 0; ; {
			idx := strings.Index(sentence[off:], sp.sep)
			if idx < 0 {
				break
			}
			pos := off + idx
			if best < 0 || distance(pos, mid) < distance(best, mid) {
				best, bestSep, bestLead = pos, sp.sep, sp.lead
			}
			off = pos + len(sp.sep)
		}
	}
	if best < 0 {
		return "", false
	}

	first := strings.TrimSpace(sentence[:best])
	second := strings.TrimSpace(sentence[best+len(bestSep):])
	if len(rules.Words(first)) < minClauseWords || len(rules.Words(second)) < minClauseWords {
		return "", false
	}
	first = strings.TrimRight(first, ",;:") + "."
	if bestLead != "" {
		second = bestLead + second
	} else {
		second = rules.UpperFirst(second)
	}
	if !strings.ContainsAny(second[len(second)-1:], ".!?") {
		second += "."
	}
	return first + " " + second, true
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
