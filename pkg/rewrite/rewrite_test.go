package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-style-review-be/pkg/rules"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name         string
		sentence     string
		message      string
		want         string
		wantCategory rules.Category
	}{
		{
			name:         "simple past passive",
			sentence:     "The report was written by the team.",
			message:      rules.PassiveVoiceMessage("was written"),
			want:         "The team wrote the report.",
			wantCategory: rules.CategoryPassiveVoice,
		},
		{
			name:         "present passive with plural agent",
			sentence:     "The bug is fixed by our tests.",
			message:      rules.PassiveVoiceMessage("is fixed"),
			want:         "Our tests fix the bug.",
			wantCategory: rules.CategoryPassiveVoice,
		},
		{
			name:         "modal passive",
			sentence:     "The files will be deleted by the cleanup job.",
			message:      rules.PassiveVoiceMessage("be deleted"),
			want:         "The cleanup job will delete the files.",
			wantCategory: rules.CategoryPassiveVoice,
		},
		{
			name:         "perfect passive",
			sentence:     "The issue has been resolved by support.",
			message:      rules.PassiveVoiceMessage("been resolved"),
			want:         "Support has resolved the issue.",
			wantCategory: rules.CategoryPassiveVoice,
		},
		{
			name:         "pronoun agent keeps tail",
			sentence:     "The cake was eaten by them yesterday.",
			message:      rules.PassiveVoiceMessage("was eaten"),
			want:         "They ate the cake yesterday.",
			wantCategory: rules.CategoryPassiveVoice,
		},
		{
			name:         "split at contrast",
			sentence:     "The service restarts automatically after a failure, but the queue keeps every pending message until a worker picks it up again.",
			message:      rules.LongSentenceMessage(20, 22),
			want:         "The service restarts automatically after a failure. However, the queue keeps every pending message until a worker picks it up again.",
			wantCategory: rules.CategoryLongSentence,
		},
		{
			name:         "split at semicolon",
			sentence:     "We ship weekly; releases follow the calendar.",
			message:      rules.LongSentenceMessage(5, 7),
			want:         "We ship weekly. Releases follow the calendar.",
			wantCategory: rules.CategoryLongSentence,
		},
		{
			name:         "wordy phrase",
			sentence:     "We met in order to plan.",
			message:      rules.WordyPhraseMessage("in order to", "to"),
			want:         "We met to plan.",
			wantCategory: rules.CategoryWordiness,
		},
		{
			name:         "wordy phrase at sentence start",
			sentence:     "Due to the fact that it rained, we stayed.",
			message:      rules.WordyPhraseMessage("Due to the fact that", "because"),
			want:         "Because it rained, we stayed.",
			wantCategory: rules.CategoryWordiness,
		},
		{
			name:         "terminology",
			sentence:     "Send an e-mail to support.",
			message:      rules.TerminologyMessage("email", "e-mail"),
			want:         "Send an email to support.",
			wantCategory: rules.CategoryTerminology,
		},
		{
			name:         "repeated marks",
			sentence:     "Wait!! Really??",
			message:      rules.RepeatedPunctuationMessage("!!"),
			want:         "Wait! Really?",
			wantCategory: rules.CategoryPunctuation,
		},
		{
			name:         "space before comma",
			sentence:     "Hello , world.",
			message:      rules.SpaceBeforePunctuationMessage(","),
			want:         "Hello, world.",
			wantCategory: rules.CategoryPunctuation,
		},
		{
			name:         "missing terminal",
			sentence:     "This sentence has six words total",
			message:      rules.MsgMissingTerminal,
			want:         "This sentence has six words total.",
			wantCategory: rules.CategoryPunctuation,
		},
		{
			name:         "lowercase start",
			sentence:     "this starts lowercase.",
			message:      rules.MsgLowercaseStart,
			want:         "This starts lowercase.",
			wantCategory: rules.CategoryFormatting,
		},
		{
			name:         "shouted word mid sentence",
			sentence:     "Please REVIEW the manual.",
			message:      rules.AllCapsMessage("REVIEW"),
			want:         "Please review the manual.",
			wantCategory: rules.CategoryFormatting,
		},
		{
			name:         "shouted first word",
			sentence:     "WARNING the disk is full.",
			message:      rules.AllCapsMessage("WARNING"),
			want:         "Warning the disk is full.",
			wantCategory: rules.CategoryFormatting,
		},
		{
			name:         "falls through to next category",
			sentence:     "The report was written yesterday , again.",
			message:      `Passive voice: "was written"; Punctuation: space before ","`,
			want:         "The report was written yesterday, again.",
			wantCategory: rules.CategoryPunctuation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Apply(tt.sentence, tt.message)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.NotEmpty(t, got.Rationale)
		})
	}
}

func TestApplyWithoutRewrite(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		message  string
	}{
		{"passive without agent", "The report was written yesterday.", rules.PassiveVoiceMessage("was written")},
		{"no split point", "Short and simple sentence here.", rules.LongSentenceMessage(3, 5)},
		{"unknown message", "Teh cat sat.", "Spelling: teh"},
		{"phrase not present", "We met to plan.", rules.WordyPhraseMessage("in order to", "to")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Apply(tt.sentence, tt.message)
			assert.False(t, ok)
		})
	}
}

func TestPassiveRewriteClearsPassiveFinding(t *testing.T) {
	got, ok := Apply("The report was written by the team.", rules.PassiveVoiceMessage("was written"))
	require.True(t, ok)
	assert.Contains(t, got.Text, "team wrote")

	findings, err := rules.PassiveVoice{}.Check(got.Text)
	require.NoError(t, err)
	assert.Empty(t, findings)
}
