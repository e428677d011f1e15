package rules

import (
	"fmt"
	"strings"
)

// Settings parameterise the built-in rules.
type Settings struct {
	MaxSentenceWords int
	Glossary         *Glossary
}

// Factory builds a rule from settings.
type Factory func(Settings) Rule

var Builtin = map[string]Factory{
	PassiveVoiceID: func(Settings) Rule { return PassiveVoice{} },
	LongSentenceID: func(s Settings) Rule { return LongSentence{MaxWords: s.MaxSentenceWords} },
	TerminologyID:  func(s Settings) Rule { return NewTerminology(s.Glossary) },
	PunctuationID:  func(Settings) Rule { return Punctuation{} },
	FormattingID:   func(Settings) Rule { return Formatting{} },
	WordinessID:    func(Settings) Rule { return Wordiness{} },
}

// DefaultRuleIDs is the registration order used when no rule list is configured.
var DefaultRuleIDs = []string{
	PassiveVoiceID,
	LongSentenceID,
	WordinessID,
	TerminologyID,
	PunctuationID,
	FormattingID,
}

// NewRegistryFromConfig registers the built-in rules named by ids, in order.
func NewRegistryFromConfig(ids []string, s Settings) (*Registry, error) {
	if len(ids) == 0 {
		ids = DefaultRuleIDs
	}
	reg := NewRegistry()
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		factory, ok := Builtin[id]
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
		if err := reg.Register(factory(s)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
