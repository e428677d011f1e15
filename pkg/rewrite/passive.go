package rewrite

import (
	"strings"

	"ai-style-review-be/pkg/rules"
)

var (
	determiners = map[string]bool{
		"the": true, "a": true, "an": true, "this": true, "that": true, "these": true,
		"those": true, "our": true, "their": true, "his": true, "her": true, "its": true,
		"my": true, "your": true, "each": true, "every": true, "some": true, "all": true,
		"any": true, "no": true,
	}
	pronounSubjects = map[string]string{
		"me": "I", "us": "We", "you": "You", "him": "He", "her": "She", "it": "It", "them": "They",
	}
	pluralSubjects = map[string]bool{"I": true, "We": true, "You": true, "They": true}
	modals         = map[string]bool{
		"will": true, "would": true, "can": true, "could": true, "shall": true,
		"should": true, "may": true, "might": true, "must": true,
	}
	perfectAux = map[string]bool{"has": true, "have": true, "had": true}
	// Words that end an agent noun phrase.
	agentStops = map[string]bool{
		"in": true, "on": true, "at": true, "for": true, "with": true, "during": true,
		"after": true, "before": true, "last": true, "every": true, "and": true, "to": true,
		"because": true, "when": true, "while": true, "since": true, "using": true,
		"yesterday": true, "today": true, "tomorrow": true, "from": true, "into": true,
		"that": true, "which": true, "who": true,
	}
)

const maxAgentWords = 3

// passiveToActive turns "<subject> <aux> <participle> by <agent><tail>" into
// "<Agent> <verb> <subject><tail>".
func passiveToActive(sentence string) (string, bool) {
	words := rules.Words(sentence)
	for i := 0; i < len(words); i++ {
		aux := words[i].Lower()
		if !rules.BeAuxiliaries[aux] || aux == "being" {
			continue
		}
		j := i + 1
		if j < len(words) && strings.HasSuffix(words[j].Lower(), "ly") && len(words[j].Text) > 4 {
			j++
		}
		if j+2 >= len(words) {
			break
		}
		forms, ok := rules.Participle(words[j].Text)
		if !ok || words[j+1].Lower() != "by" {
			continue
		}
		if out, ok := buildActive(sentence, words, i, j, forms); ok {
			return out, true
		}
	}
	return "", false
}

func buildActive(sentence string, words []rules.Word, auxIdx, partIdx int, forms rules.VerbForms) (string, bool) {
	// helper verbs in front of "be"/"been": will be, has been
	start := auxIdx
	var helper string
	if start > 0 {
		prev := words[start-1].Lower()
		aux := words[auxIdx].Lower()
		if (aux == "be" && modals[prev]) || (aux == "been" && perfectAux[prev]) {
			start--
			helper = prev
		}
	}
	if helper == "" && (words[auxIdx].Lower() == "be" || words[auxIdx].Lower() == "been") {
		return "", false
	}

	subject := strings.TrimSpace(sentence[:words[start].Start])
	if subject == "" || strings.ContainsAny(subject, ",;:") {
		return "", false
	}

	agentFirst := partIdx + 2
	agentEnd := agentFirst + 1
	if determiners[words[agentFirst].Lower()] {
		for agentEnd < len(words) && agentEnd-agentFirst < maxAgentWords {
			w := words[agentEnd]
			if agentStops[w.Lower()] || !adjacent(sentence, words[agentEnd-1], w) {
				break
			}
			agentEnd++
		}
	}
	agent := sentence[words[agentFirst].Start:words[agentEnd-1].End]
	tail := sentence[words[agentEnd-1].End:]

	agent, plural := activeSubject(agent)
	verb := activeVerb(words[auxIdx].Lower(), helper, forms, plural)

	return agent + " " + verb + " " + objectForm(subject) + tail, true
}

// adjacent reports whether b follows a separated only by spaces.
func adjacent(sentence string, a, b rules.Word) bool {
	return strings.TrimSpace(sentence[a.End:b.Start]) == ""
}

func activeSubject(agent string) (string, bool) {
	if p, ok := pronounSubjects[strings.ToLower(agent)]; ok {
		return p, pluralSubjects[p]
	}
	fields := strings.Fields(agent)
	last := strings.ToLower(fields[len(fields)-1])
	plural := strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss")
	return rules.UpperFirst(agent), plural
}

func activeVerb(aux, helper string, forms rules.VerbForms, plural bool) string {
	switch {
	case modals[helper]:
		return helper + " " + forms.Base
	case helper == "had":
		return "had " + forms.Participle
	case helper != "":
		if plural {
			return "have " + forms.Participle
		}
		return "has " + forms.Participle
	case aux == "was" || aux == "were":
		return forms.Past
	case plural:
		return forms.Base
	}
	return rules.ThirdPerson(forms.Base)
}

// objectForm lower-cases a leading determiner or pronoun so the former
// subject reads naturally mid-sentence.
func objectForm(subject string) string {
	first := strings.Fields(subject)[0]
	lower := strings.ToLower(first)
	if objects := map[string]string{"i": "me", "we": "us", "he": "him", "she": "her", "they": "them"}; objects[lower] != "" {
		return objects[lower] + subject[len(first):]
	}
	if determiners[lower] || lower == "it" || lower == "you" {
		return rules.LowerFirst(subject)
	}
	return subject
}
