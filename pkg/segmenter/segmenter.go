// Package segmenter splits marked-up text into sentences while keeping the
// inline formatting of each sentence intact.
package segmenter

import (
	"html"
	"iter"
	"slices"
)

// Options configures a Segmenter.
type Options struct {
	// MinSentenceLength is the minimum rune count of an emitted sentence.
	// Zero means DefaultMinSentenceLength.
	MinSentenceLength int
}

// Segmenter is stateless and safe for concurrent use.
type Segmenter struct {
	minLen int
}

func New(opts Options) *Segmenter {
	minLen := opts.MinSentenceLength
	if minLen <= 0 {
		minLen = DefaultMinSentenceLength
	}
	return &Segmenter{minLen: minLen}
}

// Sentences returns the sentences of markup in document order. The sequence
// is computed from scratch every time it is ranged over.
func (s *Segmenter) Sentences(sourceID, markup string) iter.Seq[Sentence] {
	return func(yield func(Sentence) bool) {
		index := 0
		for _, b := range flatten(sourceID, markup) {
			for _, sent := range s.segmentBlock(b) {
				sent.Index = index
				index++
				if !yield(sent) {
					return
				}
			}
		}
	}
}

// Segment collects Sentences into a slice.
func (s *Segmenter) Segment(sourceID, markup string) []Sentence {
	return slices.Collect(s.Sentences(sourceID, markup))
}

func (s *Segmenter) segmentBlock(b block) []Sentence {
	var ranges [][2]int
	for _, r := range splitRanges(b.Text) {
		if keepFragment(b.Text[r[0]:r[1]], s.minLen) {
			ranges = append(ranges, r)
		}
	}
	if len(ranges) == 0 {
		return nil
	}

	out := make([]Sentence, 0, len(ranges))
	if b.Malformed {
		// Best effort: unbalanced markup is dropped and the block is
		// rendered as plain text.
		for _, r := range ranges {
			plain := b.Text[r[0]:r[1]]
			out = append(out, Sentence{
				PlainText:     plain,
				FormattedText: html.EscapeString(plain),
				SourceBlockID: b.ID,
			})
		}
		return out
	}

	voids := assignVoids(b.Spans, ranges)
	for i, r := range ranges {
		out = append(out, Sentence{
			PlainText:     b.Text[r[0]:r[1]],
			FormattedText: render(b, r[0], r[1], voids[i]),
			SourceBlockID: b.ID,
		})
	}
	return out
}

// assignVoids gives every zero-width span to the last sentence starting at
// or before its offset, or to the first sentence when it precedes them all.
func assignVoids(spans []Span, ranges [][2]int) [][]Span {
	out := make([][]Span, len(ranges))
	for _, sp := range spans {
		if !sp.Void {
			continue
		}
		idx := 0
		for i, r := range ranges {
			if r[0] <= sp.Start {
				idx = i
			}
		}
		out[idx] = append(out[idx], sp)
	}
	return out
}
