package segmenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainTexts(sents []Sentence) []string {
	out := make([]string, len(sents))
	for i, s := range sents {
		out[i] = s.PlainText
	}
	return out
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name          string
		markup        string
		wantPlain     []string
		wantFormatted []string
	}{
		{
			name:          "inline bold does not split",
			markup:        "This has <b>bold</b> text in the middle.",
			wantPlain:     []string{"This has bold text in the middle."},
			wantFormatted: []string{"This has <b>bold</b> text in the middle."},
		},
		{
			name:          "terminal punctuation splits",
			markup:        "First. Second.",
			wantPlain:     []string{"First.", "Second."},
			wantFormatted: []string{"First.", "Second."},
		},
		{
			name:      "formatting kept only where it belongs",
			markup:    "Use <strong>Autostart</strong> mode by enabling it. It works well.",
			wantPlain: []string{"Use Autostart mode by enabling it.", "It works well."},
			wantFormatted: []string{
				"Use <strong>Autostart</strong> mode by enabling it.",
				"It works well.",
			},
		},
		{
			name:          "consecutive spans without punctuation",
			markup:        "word <b>bold</b> <i>italic</i> <a href=\"https://x.test\">link</a> word.",
			wantPlain:     []string{"word bold italic link word."},
			wantFormatted: []string{"word <b>bold</b> <i>italic</i> <a href=\"https://x.test\">link</a> word."},
		},
		{
			name:          "punctuation inside markup still splits",
			markup:        "<b>Stop here.</b> Go on.",
			wantPlain:     []string{"Stop here.", "Go on."},
			wantFormatted: []string{"<b>Stop here.</b>", "Go on."},
		},
		{
			name:          "span crossing a boundary is clipped",
			markup:        "<em>One thing. Two</em> things.",
			wantPlain:     []string{"One thing.", "Two things."},
			wantFormatted: []string{"<em>One thing.</em>", "<em>Two</em> things."},
		},
		{
			name:          "lowercase continuation does not split",
			markup:        "Use a tool, e.g. a hammer. Then stop.",
			wantPlain:     []string{"Use a tool, e.g. a hammer.", "Then stop."},
			wantFormatted: []string{"Use a tool, e.g. a hammer.", "Then stop."},
		},
		{
			name:          "title abbreviation does not split",
			markup:        "Ask Dr. Smith about it. He knows.",
			wantPlain:     []string{"Ask Dr. Smith about it.", "He knows."},
			wantFormatted: []string{"Ask Dr. Smith about it.", "He knows."},
		},
		{
			name:          "title inside brackets does not split",
			markup:        "Is it (Dr. Who)? Sure.",
			wantPlain:     []string{"Is it (Dr. Who)?", "Sure."},
			wantFormatted: []string{"Is it (Dr. Who)?", "Sure."},
		},
		{
			name:          "script links and inline styles are dropped",
			markup:        `See <a href=" JavaScript:alert(1)">this</a> and <span style="color:red">that</span>. Click <img src="data:image/png;base64,AA" alt="gear"> to open.`,
			wantPlain:     []string{"See this and that.", "Click to open."},
			wantFormatted: []string{"See <a>this</a> and <span>that</span>.", `Click <img alt="gear">to open.`},
		},
		{
			name:          "whitespace around tags collapses",
			markup:        "Spaces  <b>\n  around </b>\ttags.",
			wantPlain:     []string{"Spaces around tags."},
			wantFormatted: []string{"Spaces <b>around </b>tags."},
		},
		{
			name:          "nested spans",
			markup:        "<b>Very <i>nested</i> text.</b> Plain.",
			wantPlain:     []string{"Very nested text.", "Plain."},
			wantFormatted: []string{"<b>Very <i>nested</i> text.</b>", "Plain."},
		},
		{
			name:          "inline image stays with its sentence",
			markup:        "Click <img src=\"icon.png\" alt=\"gear\"> to open. Done.",
			wantPlain:     []string{"Click to open.", "Done."},
			wantFormatted: []string{"Click <img src=\"icon.png\" alt=\"gear\">to open.", "Done."},
		},
		{
			name:          "entities are escaped in formatted text",
			markup:        "Use a &lt; b &amp; c. Next one.",
			wantPlain:     []string{"Use a < b & c.", "Next one."},
			wantFormatted: []string{"Use a &lt; b &amp; c.", "Next one."},
		},
		{
			name:          "pure punctuation fragments are dropped",
			markup:        "<p>Real sentence.</p><p>...</p><p><b>!</b></p>",
			wantPlain:     []string{"Real sentence."},
			wantFormatted: []string{"Real sentence."},
		},
		{
			name:          "closing quote stays with sentence",
			markup:        "He said \"Go.\" Then left.",
			wantPlain:     []string{"He said \"Go.\"", "Then left."},
			wantFormatted: []string{"He said &#34;Go.&#34;", "Then left."},
		},
	}

	seg := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Segment("doc", tt.markup)
			assert.Equal(t, tt.wantPlain, plainTexts(got))
			formatted := make([]string, len(got))
			for i, s := range got {
				formatted[i] = s.FormattedText
			}
			assert.Equal(t, tt.wantFormatted, formatted)
		})
	}
}

func TestSegmentBlocks(t *testing.T) {
	markup := `<h1>Setup guide</h1>
<p id="intro">Install the tool. Run it</p>
<ul><li>First item without stop</li><li>Second item.</li></ul>`

	got := New(Options{}).Segment("doc", markup)
	require.Len(t, got, 5)

	assert.Equal(t, []string{
		"Setup guide",
		"Install the tool.",
		"Run it",
		"First item without stop",
		"Second item.",
	}, plainTexts(got))

	assert.Equal(t, "doc:0", got[0].SourceBlockID)
	assert.Equal(t, "intro", got[1].SourceBlockID)
	assert.Equal(t, "intro", got[2].SourceBlockID)
	assert.Equal(t, "doc:2", got[3].SourceBlockID)
	assert.Equal(t, "doc:3", got[4].SourceBlockID)

	for i, s := range got {
		assert.Equal(t, i, s.Index)
	}
}

func TestSegmentMalformedMarkup(t *testing.T) {
	tests := []struct {
		name      string
		markup    string
		wantPlain []string
	}{
		{"unclosed tag", "Start <b>bold never closes. Next sentence.", []string{"Start bold never closes.", "Next sentence."}},
		{"stray closing tag", "Text</i> here. More text.", []string{"Text here.", "More text."}},
		{"crossed tags", "<b>One <i>two</b> three</i>. Four.", []string{"One two three.", "Four."}},
		{"stray angle bracket", "If a < b then stop. Okay.", []string{"If a < b then stop.", "Okay."}},
	}

	seg := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Sentence
			assert.NotPanics(t, func() { got = seg.Segment("doc", tt.markup) })
			assert.Equal(t, tt.wantPlain, plainTexts(got))
			for _, s := range got {
				assert.Equal(t, s.PlainText, StripMarkup(s.FormattedText))
				assert.NotContains(t, s.FormattedText, "<b>")
			}
		})
	}
}

func TestFormattingPreservationInvariant(t *testing.T) {
	inputs := []string{
		"This has <b>bold</b> text in the middle.",
		"<p>Alpha <a href=\"/a?x=1&amp;y=2\">link. Beta</a> gamma! Delta?</p><p>Epsilon.</p>",
		"<b><i>Deep. Nesting</i> here.</b> Tail <code>x = 1</code>.",
		"<ul><li>One.</li><li>Two <u>under</u>.</li></ul>",
		"Broken <b>markup. Still works.",
		"Emoji 🙂 ok. Ünïcödé Text. <span class=\"x\">Done</span>.",
	}

	seg := New(Options{})
	for _, in := range inputs {
		got := seg.Segment("doc", in)
		require.NotEmpty(t, got, in)

		var formatted, plain strings.Builder
		for _, s := range got {
			assert.Equal(t, s.PlainText, StripMarkup(s.FormattedText), in)
			formatted.WriteString(s.FormattedText)
			plain.WriteString(s.PlainText)
		}
		assert.Equal(t, plain.String(), StripMarkup(formatted.String()), in)
	}
}

func TestPlainTextReproducesBlockText(t *testing.T) {
	in := "<p>One  two. <b>Three</b>\nfour! Five?</p>"
	got := New(Options{}).Segment("doc", in)

	joined := strings.Join(plainTexts(got), " ")
	want := strings.Join(strings.Fields(StripMarkup(in)), " ")
	assert.Equal(t, want, joined)
}

func TestSentencesIsRecomputedPerRange(t *testing.T) {
	seq := New(Options{}).Sentences("doc", "One here. Two here. Three here.")

	var first, second []string
	for s := range seq {
		first = append(first, s.PlainText)
		if len(first) == 2 {
			break
		}
	}
	for s := range seq {
		second = append(second, s.PlainText)
	}
	assert.Equal(t, []string{"One here.", "Two here."}, first)
	assert.Equal(t, []string{"One here.", "Two here.", "Three here."}, second)
}

func TestMinSentenceLength(t *testing.T) {
	got := New(Options{MinSentenceLength: 6}).Segment("doc", "Hi. Longer sentence.")
	assert.Equal(t, []string{"Longer sentence."}, plainTexts(got))
}
