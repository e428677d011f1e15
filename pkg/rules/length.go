package rules

const (
	LongSentenceID          = "long_sentence"
	DefaultMaxSentenceWords = 25
)

// LongSentence flags sentences with more than MaxWords words.
type LongSentence struct {
	MaxWords int
}

func (LongSentence) ID() string { return LongSentenceID }

func (r LongSentence) Check(text string) ([]Finding, error) {
	limit := r.MaxWords
	if limit <= 0 {
		limit = DefaultMaxSentenceWords
	}
	n := len(Words(text))
	if n <= limit {
		return nil, nil
	}
	return []Finding{{Message: LongSentenceMessage(limit, n), Severity: SeverityInfo}}, nil
}
