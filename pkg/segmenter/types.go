package segmenter

import "golang.org/x/net/html"

// Sentence is one segmented unit of a block.
// PlainText carries no markup; FormattedText keeps the inline markup that
// wraps the sentence, clipped to the sentence range.
type Sentence struct {
	Index         int    `json:"index"`
	PlainText     string `json:"plain_text"`
	FormattedText string `json:"formatted_text"`
	SourceBlockID string `json:"source_block_id"`
}

// Span marks a formatted byte range [Start, End) over the flat text of a block.
// Void spans (inline images) are zero width: Start == End.
type Span struct {
	Start int
	End   int
	Kind  string // tag name, e.g. "strong", "a", "img"
	Attrs []html.Attribute
	Depth int
	Void  bool
}

// block is a flattened block-level element: one text buffer plus the
// formatting spans recorded over it.
type block struct {
	ID        string
	Text      string
	Spans     []Span
	Malformed bool
}

// DefaultMinSentenceLength is the minimum number of runes a fragment needs
// before it is emitted as a sentence.
const DefaultMinSentenceLength = 2

// Inline tags whose content is flattened into the surrounding text.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "cite": true, "code": true,
	"del": true, "em": true, "font": true, "i": true, "ins": true,
	"kbd": true, "mark": true, "q": true, "s": true, "samp": true,
	"small": true, "span": true, "strike": true, "strong": true,
	"sub": true, "sup": true, "time": true, "u": true, "var": true,
}

// Inline elements without content. They survive as zero-width spans.
var voidInlineTags = map[string]bool{
	"img": true,
}

// Block-level tags. Opening or closing one ends the current block.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "caption": true, "dd": true, "details": true, "div": true,
	"dl": true, "dt": true, "figcaption": true, "figure": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "html": true, "li": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"summary": true, "table": true, "tbody": true, "td": true, "tfoot": true,
	"th": true, "thead": true, "tr": true, "ul": true,
}

// Tags whose content never reaches the text stream.
var skipTags = map[string]bool{
	"head": true, "noscript": true, "script": true, "style": true,
	"template": true, "title": true,
}

// Attributes kept when formatting tags are rebuilt.
var keptAttrs = map[string]bool{
	"alt": true, "class": true, "dir": true, "href": true, "lang": true,
	"rel": true, "src": true, "target": true, "title": true,
}

var urlAttrs = map[string]bool{"href": true, "src": true}

var unsafeSchemes = []string{"javascript:", "vbscript:", "data:"}
