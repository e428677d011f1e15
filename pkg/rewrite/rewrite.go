// Package rewrite holds the deterministic sentence rewrites used when neither
// a generator nor a reference example produced a suggestion. Every rewrite is
// a pure function of the sentence and the issue message.
package rewrite

import "ai-style-review-be/pkg/rules"

// Result of a deterministic rewrite.
type Result struct {
	Text      string
	Category  rules.Category
	Rationale string
}

type rewriter struct {
	fn        func(sentence, message string) (string, bool)
	rationale string
}

var byCategory = map[rules.Category]rewriter{
	rules.CategoryPassiveVoice: {
		fn:        func(s, _ string) (string, bool) { return passiveToActive(s) },
		rationale: "Rewrote the passive construction in active voice.",
	},
	rules.CategoryLongSentence: {
		fn:        func(s, _ string) (string, bool) { return splitLong(s) },
		rationale: "Split the sentence at the conjunction closest to its middle.",
	},
	rules.CategoryWordiness: {
		fn:        replaceWordy,
		rationale: "Replaced the wordy phrase with a concise form.",
	},
	rules.CategoryTerminology: {
		fn:        replaceTerm,
		rationale: "Used the preferred glossary term.",
	},
	rules.CategoryPunctuation: {
		fn:        func(s, _ string) (string, bool) { return fixPunctuation(s) },
		rationale: "Normalized punctuation.",
	},
	rules.CategoryFormatting: {
		fn:        func(s, _ string) (string, bool) { return fixFormatting(s) },
		rationale: "Fixed capitalization.",
	},
}

// Apply tries the categories of message in precedence order and returns the
// first rewrite that changes the sentence.
func Apply(sentence, message string) (Result, bool) {
	for _, c := range rules.Classify(message) {
		if r, ok := ForCategory(c, sentence, message); ok {
			return r, true
		}
	}
	return Result{}, false
}

// ForCategory applies the rewrite of one category.
func ForCategory(c rules.Category, sentence, message string) (Result, bool) {
	rw, ok := byCategory[c]
	if !ok {
		return Result{}, false
	}
	out, ok := rw.fn(sentence, message)
	if !ok || out == "" || out == sentence {
		return Result{}, false
	}
	return Result{Text: out, Category: c, Rationale: rw.rationale}, true
}
