package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue messages are matched downstream (suggestion categories, cache keys),
// so their wording must not drift.
const (
	MsgMissingTerminal = "Punctuation: missing terminal punctuation"
	MsgLowercaseStart  = "Formatting: sentence starts with a lowercase letter"
	msgPassiveFormat   = `Passive voice: "%s"`
	msgLongFormat      = "Sentence exceeds %d words (%d words)"
	msgTermFormat      = `Terminology: use "%s" instead of "%s"`
	msgRepeatedFormat  = `Punctuation: repeated "%s"`
	msgSpaceBeforeFmt  = `Punctuation: space before "%s"`
	msgAllCapsFormat   = `Formatting: all-caps word "%s"`
	msgWordyFormat     = `Wordy phrase: "%s"; consider "%s"`
)

var quoted = regexp.MustCompile(`"([^"]*)"`)

// QuotedArgs returns the quoted phrases of a message in order.
func QuotedArgs(message string) []string {
	var out []string
	for _, m := range quoted.FindAllStringSubmatch(message, -1) {
		out = append(out, m[1])
	}
	return out
}

func PassiveVoiceMessage(phrase string) string { return fmt.Sprintf(msgPassiveFormat, phrase) }

func LongSentenceMessage(limit, words int) string { return fmt.Sprintf(msgLongFormat, limit, words) }

func TerminologyMessage(preferred, found string) string {
	return fmt.Sprintf(msgTermFormat, preferred, found)
}

func RepeatedPunctuationMessage(run string) string { return fmt.Sprintf(msgRepeatedFormat, run) }

func SpaceBeforePunctuationMessage(mark string) string { return fmt.Sprintf(msgSpaceBeforeFmt, mark) }

func AllCapsMessage(word string) string { return fmt.Sprintf(msgAllCapsFormat, word) }

func WordyPhraseMessage(phrase, replacement string) string {
	return fmt.Sprintf(msgWordyFormat, phrase, replacement)
}

// Category groups messages that share a rewrite strategy.
type Category string

const (
	CategoryPassiveVoice Category = "passive_voice"
	CategoryLongSentence Category = "long_sentence"
	CategoryWordiness    Category = "wordiness"
	CategoryTerminology  Category = "terminology"
	CategoryPunctuation  Category = "punctuation"
	CategoryFormatting   Category = "formatting"
	CategoryUnknown      Category = "unknown"
)

var categoryMarkers = []struct {
	category Category
	markers  []string
}{
	{CategoryPassiveVoice, []string{"passive voice"}},
	{CategoryLongSentence, []string{"sentence exceeds", "long sentence"}},
	{CategoryWordiness, []string{"wordy phrase", "wordiness"}},
	{CategoryTerminology, []string{"terminology"}},
	{CategoryPunctuation, []string{"punctuation"}},
	{CategoryFormatting, []string{"formatting", "all-caps"}},
}

// Classify returns every category whose marker appears in message, in
// precedence order: passive voice, long sentence, wordiness, terminology,
// punctuation, formatting.
func Classify(message string) []Category {
	lower := strings.ToLower(message)
	var out []Category
	for _, cm := range categoryMarkers {
		for _, m := range cm.markers {
			if strings.Contains(lower, m) {
				out = append(out, cm.category)
				break
			}
		}
	}
	return out
}

// PrimaryCategory is the highest-precedence category of message.
func PrimaryCategory(message string) Category {
	if cats := Classify(message); len(cats) > 0 {
		return cats[0]
	}
	return CategoryUnknown
}
