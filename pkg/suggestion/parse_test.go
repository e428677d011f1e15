package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRewrite(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"bare", "The team wrote the report.", "The team wrote the report.", true},
		{"surrounding whitespace", "\n  The team wrote it.  \n", "The team wrote it.", true},
		{"quoted", `"The team wrote it."`, "The team wrote it.", true},
		{"curly quoted", "“The team wrote it.”", "The team wrote it.", true},
		{"labelled", "Rewritten sentence: The team wrote it.", "The team wrote it.", true},
		{"labelled and quoted", `Suggestion: "The team wrote it."`, "The team wrote it.", true},
		{"first line only", "The team wrote it.\n\nThis uses active voice.", "The team wrote it.", true},
		{"fenced", "```text\nThe team wrote it.\n```", "The team wrote it.", true},
		{"json", `{"rewritten": "The team wrote it."}`, "The team wrote it.", true},
		{"fenced json", "```json\n{\"rewritten\": \"The team wrote it.\"}\n```", "The team wrote it.", true},
		{"empty", "", "", false},
		{"only whitespace", " \n\t ", "", false},
		{"empty json field", `{"rewritten": ""}`, "", false},
		{"only label", "Rewritten:", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRewrite(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
