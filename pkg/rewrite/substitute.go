package rewrite

import "ai-style-review-be/pkg/rules"

// replacePhrase swaps the first word-bounded occurrence of phrase, keeping
// the capitalisation of its first letter.
func replacePhrase(sentence, phrase, replacement string) (string, bool) {
	start, end, ok := rules.FindPhrase(sentence, phrase)
	if !ok {
		return "", false
	}
	return sentence[:start] + rules.MatchCase(sentence[start:end], replacement) + sentence[end:], true
}

// replaceWordy uses the pair named in the message, or every known wordy
// phrase when the message does not name one.
func replaceWordy(sentence, message string) (string, bool) {
	if args := rules.QuotedArgs(message); len(args) == 2 {
		return replacePhrase(sentence, args[0], args[1])
	}
	out, changed := sentence, false
	for _, wp := range rules.WordyPhrases {
		if next, ok := replacePhrase(out, wp.Phrase, wp.Replacement); ok {
			out, changed = next, true
		}
	}
	return out, changed
}

// replaceTerm expects `use "<preferred>" instead of "<found>"`.
func replaceTerm(sentence, message string) (string, bool) {
	args := rules.QuotedArgs(message)
	if len(args) != 2 {
		return "", false
	}
	return replacePhrase(sentence, args[1], args[0])
}
