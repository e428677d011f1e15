package rules

import (
	"fmt"
	"sync"
)

// Rule checks one sentence of plain text. Implementations must be pure:
// no shared mutable state, no clock, no randomness.
type Rule interface {
	ID() string
	Check(text string) ([]Finding, error)
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc struct {
	RuleID string
	Fn     func(text string) ([]Finding, error)
}

func (r RuleFunc) ID() string { return r.RuleID }

func (r RuleFunc) Check(text string) ([]Finding, error) { return r.Fn(text) }

// Registry holds the active rules in registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
	ids   map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

// Register adds rule; ids must be unique.
func (r *Registry) Register(rule Rule) error {
	if rule == nil || rule.ID() == "" {
		return fmt.Errorf("rule must have an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ids[rule.ID()]; exists {
		return fmt.Errorf("rule %q already registered", rule.ID())
	}
	r.ids[rule.ID()] = struct{}{}
	r.rules = append(r.rules, rule)
	return nil
}

// Rules returns a snapshot of the registered rules.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.rules))
	for i, rule := range r.rules {
		out[i] = rule.ID()
	}
	return out
}
