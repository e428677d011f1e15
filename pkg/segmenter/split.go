package segmenter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Titles that take a period but never end a sentence.
var titleAbbreviations = map[string]bool{
	"Mr": true, "Mrs": true, "Ms": true, "Dr": true, "Prof": true,
	"St": true, "Sr": true, "Jr": true,
}

func isTerminal(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '»':
		return true
	}
	return false
}

func isOpening(r rune) bool {
	switch r {
	case '"', '\'', '(', '[', '“', '‘', '«':
		return true
	}
	return false
}

// splitRanges returns the [start, end) byte ranges of the sentences in text.
// text is expected to be whitespace-collapsed. A boundary is a run of
// terminal punctuation (plus closing quotes) followed by a space and an
// uppercase letter, or by the end of the text.
func splitRanges(text string) [][2]int {
	var out [][2]int
	n := len(text)
	start := 0

	for i := 0; i < n; {
		if !isTerminal(text[i]) {
			i++
			continue
		}
		j := i
		for j < n && isTerminal(text[j]) {
			j++
		}
		end := j
		for end < n {
			r, size := utf8.DecodeRuneInString(text[end:])
			if !isClosing(r) {
				break
			}
			end += size
		}

		if end == n {
			out = append(out, [2]int{start, n})
			start = n
			break
		}
		if text[end] == ' ' && startsSentence(text[end+1:]) && !isTitle(text, i, j) {
			out = append(out, [2]int{start, end})
			start = end + 1
		}
		i = end
	}
	if start < n {
		out = append(out, [2]int{start, n})
	}

	for k := range out {
		out[k] = trimRange(text, out[k])
	}
	return out
}

// startsSentence reports whether s begins with an uppercase letter,
// optionally preceded by opening quotes or brackets.
func startsSentence(s string) bool {
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		if isOpening(r) {
			s = s[size:]
			continue
		}
		return unicode.IsUpper(r)
	}
	return false
}

// isTitle reports whether the single period at text[i:j] closes a title
// abbreviation such as "Dr.".
func isTitle(text string, i, j int) bool {
	if j-i != 1 || text[i] != '.' {
		return false
	}
	ws := strings.LastIndexByte(text[:i], ' ') + 1
	return titleAbbreviations[strings.TrimLeftFunc(text[ws:i], isOpening)]
}

func trimRange(text string, r [2]int) [2]int {
	s, e := r[0], r[1]
	for s < e && text[s] == ' ' {
		s++
	}
	for e > s && text[e-1] == ' ' {
		e--
	}
	return [2]int{s, e}
}

// keepFragment rejects fragments that are pure punctuation or formatting
// leftovers.
func keepFragment(s string, minLen int) bool {
	if utf8.RuneCountInString(s) < minLen {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}
