package segmenter

import (
	"html"
	"sort"
	"strings"

	nethtml "golang.org/x/net/html"
)

type eventKind int

const (
	eventClose eventKind = iota
	eventVoid
	eventOpen
)

type tagEvent struct {
	pos   int
	kind  eventKind
	depth int
	order int
	span  *Span
}

// render rebuilds the formatted text of text[s:e]. Spans crossing the range
// are clipped to it; voids are placed at their offset clamped into the range.
func render(b block, s, e int, voids []Span) string {
	var events []tagEvent
	for i := range b.Spans {
		sp := &b.Spans[i]
		if sp.Void {
			continue
		}
		from, to := max(sp.Start, s), min(sp.End, e)
		if from >= to {
			continue
		}
		events = append(events,
			tagEvent{pos: from, kind: eventOpen, depth: sp.Depth, order: i, span: sp},
			tagEvent{pos: to, kind: eventClose, depth: sp.Depth, order: i, span: sp},
		)
	}
	for i := range voids {
		v := &voids[i]
		pos := min(max(v.Start, s), e)
		events = append(events, tagEvent{pos: pos, kind: eventVoid, depth: v.Depth, order: i, span: v})
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, c := events[i], events[j]
		if a.pos != c.pos {
			return a.pos < c.pos
		}
		if a.kind != c.kind {
			return a.kind < c.kind
		}
		switch a.kind {
		case eventClose:
			return a.depth > c.depth
		case eventOpen:
			if a.depth != c.depth {
				return a.depth < c.depth
			}
		}
		return a.order < c.order
	})

	var sb strings.Builder
	cursor := s
	for _, ev := range events {
		sb.WriteString(html.EscapeString(b.Text[cursor:ev.pos]))
		cursor = ev.pos
		switch ev.kind {
		case eventOpen, eventVoid:
			writeOpenTag(&sb, ev.span.Kind, ev.span.Attrs)
		case eventClose:
			sb.WriteString("</" + ev.span.Kind + ">")
		}
	}
	sb.WriteString(html.EscapeString(b.Text[cursor:e]))
	return sb.String()
}

func writeOpenTag(sb *strings.Builder, kind string, attrs []nethtml.Attribute) {
	sb.WriteString("<" + kind)
	for _, a := range attrs {
		sb.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
	}
	sb.WriteString(">")
}
