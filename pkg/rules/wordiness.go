package rules

const WordinessID = "wordiness"

// WordyPhrase pairs a wordy phrase with its concise form.
type WordyPhrase struct {
	Phrase      string
	Replacement string
}

// WordyPhrases are checked in order; longer phrases come before the
// shorter ones they contain.
var WordyPhrases = []WordyPhrase{
	{"due to the fact that", "because"},
	{"at this point in time", "now"},
	{"in the event that", "if"},
	{"in close proximity to", "near"},
	{"for the purpose of", "for"},
	{"has the ability to", "can"},
	{"a large number of", "many"},
	{"with regard to", "about"},
	{"in order to", "to"},
	{"is able to", "can"},
	{"are able to", "can"},
	{"make use of", "use"},
	{"prior to", "before"},
}

// Wordiness flags phrases from WordyPhrases.
type Wordiness struct{}

func (Wordiness) ID() string { return WordinessID }

func (Wordiness) Check(text string) ([]Finding, error) {
	var findings []Finding
	var taken []Span
	for _, wp := range WordyPhrases {
		start, end, ok := FindPhrase(text, wp.Phrase)
		if !ok || overlaps(taken, start, end) {
			continue
		}
		taken = append(taken, Span{Start: start, End: end})
		findings = append(findings, Finding{
			Message:  WordyPhraseMessage(text[start:end], wp.Replacement),
			Severity: SeverityInfo,
			Span:     &Span{Start: start, End: end},
		})
	}
	return findings, nil
}

func overlaps(spans []Span, start, end int) bool {
	for _, s := range spans {
		if start < s.End && s.Start < end {
			return true
		}
	}
	return false
}
