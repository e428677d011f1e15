package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TermOracle decides whether a matched term is allowed as written.
type TermOracle interface {
	IsWhitelisted(term string) bool
}

// GlossaryTerm maps a discouraged term to the preferred one.
type GlossaryTerm struct {
	Avoid string `yaml:"avoid"`
	Use   string `yaml:"use"`
}

// Glossary is the terminology list loaded from YAML:
//
//	terms:
//	  - avoid: e-mail
//	    use: email
//	whitelist:
//	  - E-Mail
type Glossary struct {
	Terms     []GlossaryTerm `yaml:"terms"`
	Whitelist []string       `yaml:"whitelist"`

	allowed map[string]bool
}

func DefaultGlossary() *Glossary {
	g := &Glossary{Terms: []GlossaryTerm{
		{Avoid: "e-mail", Use: "email"},
		{Avoid: "utilize", Use: "use"},
		{Avoid: "login to", Use: "log in to"},
		{Avoid: "web site", Use: "website"},
		{Avoid: "click on", Use: "click"},
	}}
	g.index()
	return g
}

func LoadGlossary(path string) (*Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	return ParseGlossary(data)
}

func ParseGlossary(data []byte) (*Glossary, error) {
	var g Glossary
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse glossary: %w", err)
	}
	for i, t := range g.Terms {
		if strings.TrimSpace(t.Avoid) == "" || strings.TrimSpace(t.Use) == "" {
			return nil, fmt.Errorf("glossary term %d: avoid and use are required", i)
		}
	}
	g.index()
	return &g, nil
}

func (g *Glossary) index() {
	g.allowed = make(map[string]bool, len(g.Whitelist))
	for _, w := range g.Whitelist {
		g.allowed[w] = true
	}
}

// IsWhitelisted matches the whitelist case-sensitively, so "E-Mail" can be
// allowed while "e-mail" is still flagged.
func (g *Glossary) IsWhitelisted(term string) bool {
	return g.allowed[term]
}

const TerminologyID = "terminology"

// Terminology flags glossary terms that should be replaced.
type Terminology struct {
	Glossary *Glossary
	Oracle   TermOracle
}

func NewTerminology(g *Glossary) Terminology {
	if g == nil {
		g = DefaultGlossary()
	}
	return Terminology{Glossary: g, Oracle: g}
}

func (Terminology) ID() string { return TerminologyID }

func (r Terminology) Check(text string) ([]Finding, error) {
	if r.Glossary == nil {
		return nil, fmt.Errorf("terminology rule has no glossary")
	}
	var findings []Finding
	for _, term := range r.Glossary.Terms {
		start, end, ok := FindPhrase(text, term.Avoid)
		if !ok {
			continue
		}
		found := text[start:end]
		if r.Oracle != nil && r.Oracle.IsWhitelisted(found) {
			continue
		}
		findings = append(findings, Finding{
			Message:  TerminologyMessage(term.Use, found),
			Severity: SeverityWarning,
			Span:     &Span{Start: start, End: end},
		})
	}
	return findings, nil
}
