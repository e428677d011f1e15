package rules

import (
	"fmt"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/segmenter"
)

// FailureHook is told about every rule invocation that failed.
type FailureHook func(ruleID string, err error)

// Engine runs every registered rule against every sentence.
type Engine struct {
	registry  *Registry
	logger    logger.ILogger
	onFailure FailureHook
}

func NewEngine(registry *Registry, log logger.ILogger, onFailure FailureHook) *Engine {
	return &Engine{
		registry:  registry,
		logger:    log,
		onFailure: onFailure,
	}
}

// Check returns the issues of all sentences ordered by sentence, then by
// rule registration order. A failing rule only loses its own findings for
// that sentence.
func (e *Engine) Check(sentences []segmenter.Sentence) []Issue {
	rules := e.registry.Rules()
	var issues []Issue
	for _, s := range sentences {
		for _, rule := range rules {
			findings, err := e.run(rule, s.PlainText)
			if err != nil {
				e.logger.Debug("RULES", "Rule failed", map[string]interface{}{
					"rule_id":        rule.ID(),
					"sentence_index": s.Index,
					"error":          err.Error(),
				})
				if e.onFailure != nil {
					e.onFailure(rule.ID(), err)
				}
				continue
			}
			for _, f := range findings {
				sev := f.Severity
				if sev == "" {
					sev = SeverityInfo
				}
				issues = append(issues, Issue{
					SentenceIndex: s.Index,
					RuleID:        rule.ID(),
					Message:       f.Message,
					Severity:      sev,
					Span:          f.Span,
				})
			}
		}
	}
	return issues
}

func (e *Engine) run(rule Rule, text string) (findings []Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("rule %s panicked: %v", rule.ID(), r)
		}
	}()
	return rule.Check(text)
}

// RuleIDs lists the active rules.
func (e *Engine) RuleIDs() []string {
	return e.registry.IDs()
}
