// Package retrieval finds reference rewrites similar to a flagged sentence.
package retrieval

import (
	"context"
	"errors"
	"strings"

	"ai-style-review-be/pkg/rules"
)

const DefaultTopK = 3

var ErrInvalidExample = errors.New("reference example needs a category and a pattern or guidance")

// Query asks for references of one category that resemble Text.
type Query struct {
	Category rules.Category
	Text     string
	TopK     int
}

// Snippet is a ranked reference, best first.
type Snippet struct {
	Category    rules.Category `json:"category"`
	Pattern     string         `json:"pattern"`
	Replacement string         `json:"replacement"`
	Example     string         `json:"example"`
	Guidance    string         `json:"guidance"`
	Score       float64        `json:"score"`
}

// Example is a reference to be indexed.
type Example struct {
	Category    rules.Category `yaml:"category" json:"category"`
	Pattern     string         `yaml:"pattern" json:"pattern"`
	Replacement string         `yaml:"replacement" json:"replacement"`
	Example     string         `yaml:"example" json:"example"`
	Guidance    string         `yaml:"guidance" json:"guidance"`
}

func (e Example) Validate() error {
	if e.Category == "" || (strings.TrimSpace(e.Pattern) == "" && strings.TrimSpace(e.Guidance) == "") {
		return ErrInvalidExample
	}
	return nil
}

// document is the text an example is matched on.
func (e Example) document() string {
	return strings.TrimSpace(e.Pattern + " " + e.Example)
}

type Retriever interface {
	Retrieve(ctx context.Context, q Query) ([]Snippet, error)
}

type Indexer interface {
	Index(ctx context.Context, ex Example) error
}

// Store both serves and accepts references.
type Store interface {
	Retriever
	Indexer
}

func topK(q Query) int {
	if q.TopK <= 0 {
		return DefaultTopK
	}
	return q.TopK
}
