package segmenter

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// blockBuilder accumulates the flat text and spans of the block being read.
type blockBuilder struct {
	buf       []byte
	spans     []Span
	open      []int // indices into spans, innermost last
	malformed bool
	id        string
}

// appendText writes s to the buffer, collapsing every whitespace run
// (including runs that straddle formatting tags) to a single space.
func (b *blockBuilder) appendText(s string) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			if len(b.buf) > 0 && b.buf[len(b.buf)-1] != ' ' {
				b.buf = append(b.buf, ' ')
			}
			continue
		}
		b.buf = utf8.AppendRune(b.buf, r)
	}
}

func (b *blockBuilder) openInline(kind string, attrs []html.Attribute) {
	b.spans = append(b.spans, Span{
		Start: len(b.buf),
		End:   -1,
		Kind:  kind,
		Attrs: attrs,
		Depth: len(b.open),
	})
	b.open = append(b.open, len(b.spans)-1)
}

func (b *blockBuilder) closeInline(kind string) {
	for i := len(b.open) - 1; i >= 0; i-- {
		idx := b.open[i]
		if b.spans[idx].Kind != kind {
			continue
		}
		if i != len(b.open)-1 {
			// Closing an outer tag while inner ones are still open.
			b.malformed = true
		}
		for _, inner := range b.open[i:] {
			b.spans[inner].End = len(b.buf)
		}
		b.open = b.open[:i]
		return
	}
	// Stray closing tag.
	b.malformed = true
}

func (b *blockBuilder) void(kind string, attrs []html.Attribute) {
	b.spans = append(b.spans, Span{
		Start: len(b.buf),
		End:   len(b.buf),
		Kind:  kind,
		Attrs: attrs,
		Depth: len(b.open),
		Void:  true,
	})
}

// finish trims the trailing space, closes dangling spans and clips every
// span to the final buffer length.
func (b *blockBuilder) finish() block {
	if len(b.open) > 0 {
		b.malformed = true
		for _, idx := range b.open {
			b.spans[idx].End = len(b.buf)
		}
		b.open = nil
	}
	if n := len(b.buf); n > 0 && b.buf[n-1] == ' ' {
		b.buf = b.buf[:n-1]
	}
	n := len(b.buf)
	spans := make([]Span, 0, len(b.spans))
	for _, sp := range b.spans {
		sp.Start = min(sp.Start, n)
		sp.End = min(sp.End, n)
		if !sp.Void && sp.Start >= sp.End {
			continue
		}
		spans = append(spans, sp)
	}
	return block{
		ID:        b.id,
		Text:      string(b.buf),
		Spans:     spans,
		Malformed: b.malformed,
	}
}

type flattener struct {
	sourceID  string
	blocks    []block
	cur       *blockBuilder
	skipDepth int
}

func newFlattener(sourceID string) *flattener {
	if sourceID == "" {
		sourceID = "block"
	}
	return &flattener{sourceID: sourceID, cur: &blockBuilder{}}
}

// flush emits the current block if it holds text. An empty block keeps its
// pending id so a wrapping element's id reaches the text inside it.
func (f *flattener) flush() {
	if len(f.cur.buf) == 0 {
		f.cur.spans = f.cur.spans[:0]
		f.cur.open = f.cur.open[:0]
		f.cur.malformed = false
		return
	}
	b := f.cur.finish()
	if b.Text != "" {
		if b.ID == "" {
			b.ID = fmt.Sprintf("%s:%d", f.sourceID, len(f.blocks))
		}
		f.blocks = append(f.blocks, b)
	}
	f.cur = &blockBuilder{}
}

// flatten turns markup into blocks of flat text annotated with formatting
// spans. It never fails: a tokenizer error ends the input and marks every
// collected block as malformed so it is rendered unformatted.
func flatten(sourceID, markup string) []block {
	f := newFlattener(sourceID)
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			f.flush()
			if z.Err() != io.EOF {
				for i := range f.blocks {
					f.blocks[i].Malformed = true
				}
			}
			return f.blocks

		case html.TextToken:
			if f.skipDepth == 0 {
				f.cur.appendText(string(z.Text()))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, attrs := readTag(z)
			selfClosing := tt == html.SelfClosingTagToken
			f.handleStart(name, attrs, selfClosing)

		case html.EndTagToken:
			name, _ := z.TagName()
			f.handleEnd(string(name))
		}
	}
}

func (f *flattener) handleStart(name string, attrs []html.Attribute, selfClosing bool) {
	switch {
	case skipTags[name]:
		if !selfClosing {
			f.skipDepth++
		}
	case f.skipDepth > 0:
	case blockTags[name]:
		f.flush()
		if id := attrValue(attrs, "id"); id != "" {
			f.cur.id = id
		}
		if name == "hr" {
			f.flush()
		}
	case name == "br":
		f.cur.appendText(" ")
	case voidInlineTags[name]:
		f.cur.void(name, keepAttrs(attrs))
	case inlineTags[name]:
		if !selfClosing {
			f.cur.openInline(name, keepAttrs(attrs))
		}
	}
}

func (f *flattener) handleEnd(name string) {
	switch {
	case skipTags[name]:
		if f.skipDepth > 0 {
			f.skipDepth--
		}
	case f.skipDepth > 0:
	case blockTags[name]:
		f.flush()
		f.cur.id = ""
	case inlineTags[name]:
		f.cur.closeInline(name)
	}
}

func readTag(z *html.Tokenizer) (string, []html.Attribute) {
	name, hasAttr := z.TagName()
	var attrs []html.Attribute
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return string(name), attrs
}

func attrValue(attrs []html.Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func keepAttrs(attrs []html.Attribute) []html.Attribute {
	var out []html.Attribute
	for _, a := range attrs {
		if !keptAttrs[a.Key] {
			continue
		}
		if urlAttrs[a.Key] && !safeURL(a.Val) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// safeURL rejects script-bearing schemes. Browsers skip whitespace and
// control characters inside a scheme, so those are removed before the check.
func safeURL(v string) bool {
	v = strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, v))
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(v, scheme) {
			return false
		}
	}
	return true
}

// StripMarkup returns the text content of markup with tags removed and
// entities unescaped. Whitespace is left untouched.
func StripMarkup(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
