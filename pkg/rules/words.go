package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’-][\p{L}\p{N}]+)*`)

// Word is a token of a sentence with its byte offsets.
type Word struct {
	Text  string
	Start int
	End   int
}

func (w Word) Lower() string { return strings.ToLower(w.Text) }

// Words tokenizes text into letter/digit words, keeping inner apostrophes
// and hyphens.
func Words(text string) []Word {
	locs := wordPattern.FindAllStringIndex(text, -1)
	out := make([]Word, len(locs))
	for i, loc := range locs {
		out[i] = Word{Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]}
	}
	return out
}

// FindPhrase returns the byte range of the first case-insensitive,
// word-bounded occurrence of phrase in text.
func FindPhrase(text, phrase string) (int, int, bool) {
	if phrase == "" {
		return 0, 0, false
	}
	re, err := regexp.Compile(`(?i)(^|[^\p{L}\p{N}])(` + regexp.QuoteMeta(phrase) + `)($|[^\p{L}\p{N}])`)
	if err != nil {
		return 0, 0, false
	}
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[4], loc[5], true
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// MatchCase gives replacement the capitalisation of the first letter of
// original.
func MatchCase(original, replacement string) string {
	r, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(r) {
		return UpperFirst(replacement)
	}
	return replacement
}
