package rewrite

import (
	"github.com/yaklabco/relint/pkg/checker"
)

// Engine applies an ordered rule table to file content.
//
// One call is one single pass over the table: each rule runs exactly once,
// in order, and later rules see the output of earlier rules. Fixpoint
// iteration across passes belongs to the repair loop, which calls Apply
// again after re-measuring.
type Engine struct {
	rules []Rule
}

// NewEngine creates an Engine with the given ordered rules.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's rule table in application order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Apply runs the rule table once over content.
// It reports whether any rule changed anything. Applying the result again
// with the same diagnostics yields changed = false: every rule's output is
// outside its own match set.
func (e *Engine) Apply(content []byte, diags []checker.Diagnostic) ([]byte, bool) {
	changed := false
	for _, rule := range e.rules {
		var ruleChanged bool
		content, ruleChanged = rule.Apply(content, diags)
		if ruleChanged {
			changed = true
		}
	}
	return content, changed
}

// Filter returns a new Engine without the rules named in disabled.
func (e *Engine) Filter(disabled []string) *Engine {
	if len(disabled) == 0 {
		return e
	}

	drop := make(map[string]struct{}, len(disabled))
	for _, id := range disabled {
		drop[id] = struct{}{}
	}

	var kept []Rule
	for _, rule := range e.rules {
		if _, ok := drop[rule.ID()]; !ok {
			kept = append(kept, rule)
		}
	}
	return NewEngine(kept)
}
