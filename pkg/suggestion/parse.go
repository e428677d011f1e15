package suggestion

import (
	"encoding/json"
	"strings"
)

var answerPrefixes = []string{"rewritten sentence:", "rewritten:", "suggestion:", "revised:"}

// ParseRewrite extracts the rewritten sentence from a model reply. It accepts
// bare text, fenced blocks, labelled answers and {"rewritten": "..."}.
func ParseRewrite(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			// drop the language tag line
			text = text[nl+1:]
		}
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
	}

	if strings.HasPrefix(text, "{") {
		var payload struct {
			Rewritten string `json:"rewritten"`
		}
		if err := json.Unmarshal([]byte(text), &payload); err == nil {
			text = payload.Rewritten
		}
	}

	var line string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}

	lower := strings.ToLower(line)
	for _, p := range answerPrefixes {
		if strings.HasPrefix(lower, p) {
			line = strings.TrimSpace(line[len(p):])
			break
		}
	}
	line = trimQuotes(line)
	return line, line != ""
}

func trimQuotes(s string) string {
	pairs := [][2]string{{`"`, `"`}, {"“", "”"}, {"'", "'"}, {"`", "`"}}
	for _, p := range pairs {
		if len(s) >= len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			return strings.TrimSpace(s[len(p[0]) : len(s)-len(p[1])])
		}
	}
	return s
}
