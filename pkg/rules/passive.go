package rules

import "strings"

const PassiveVoiceID = "passive_voice"

// PassiveVoice flags a form of "to be" followed, optionally after one -ly
// adverb, by a past participle.
type PassiveVoice struct{}

func (PassiveVoice) ID() string { return PassiveVoiceID }

func (PassiveVoice) Check(text string) ([]Finding, error) {
	words := Words(text)
	var findings []Finding
	for i := 0; i < len(words); i++ {
		if !BeAuxiliaries[words[i].Lower()] {
			continue
		}
		j := i + 1
		if j < len(words) && isAdverb(words[j].Lower()) {
			j++
		}
		if j >= len(words) {
			break
		}
		if _, ok := Participle(words[j].Text); !ok {
			continue
		}
		span := &Span{Start: words[i].Start, End: words[j].End}
		phrase := words[i].Text + " " + words[j].Text
		findings = append(findings, Finding{
			Message:  PassiveVoiceMessage(phrase),
			Severity: SeverityWarning,
			Span:     span,
		})
		i = j
	}
	return findings, nil
}

func isAdverb(w string) bool {
	return len(w) > 4 && strings.HasSuffix(w, "ly")
}
