// Package rewrite applies heuristic textual repairs to file content,
// driven by the diagnostics the external checker reported. Rules are pure
// text transforms; the package never parses the target language, so a rule
// can legally introduce new problems. Catching that is the repair loop's
// job, not this package's.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/yaklabco/relint/pkg/checker"
)

// Rule is a single entry in the ordered rewrite table.
type Rule interface {
	// ID returns the unique identifier for this rule.
	ID() string

	// Description returns a short description of what the rule repairs.
	Description() string

	// Apply rewrites content given the file's current diagnostics.
	// It must be a pure function of its inputs and idempotent: applying
	// it to its own output with no new diagnostics yields no change.
	Apply(content []byte, diags []checker.Diagnostic) ([]byte, bool)
}

// PatternRule rewrites every occurrence of a regular expression anywhere
// in the content, regardless of diagnostic positions.
type PatternRule struct {
	RuleID      string
	Summary     string
	Pattern     *regexp.Regexp
	Replacement string
}

// NewPatternRule creates a PatternRule from a pattern source string.
func NewPatternRule(id, summary, pattern, replacement string) *PatternRule {
	return &PatternRule{
		RuleID:      id,
		Summary:     summary,
		Pattern:     regexp.MustCompile(pattern),
		Replacement: replacement,
	}
}

func (r *PatternRule) ID() string          { return r.RuleID }
func (r *PatternRule) Description() string { return r.Summary }

// Apply implements Rule. Pattern rules ignore the diagnostics and rewrite
// all matches in one pass.
func (r *PatternRule) Apply(content []byte, _ []checker.Diagnostic) ([]byte, bool) {
	out := r.Pattern.ReplaceAll(content, []byte(r.Replacement))
	if string(out) == string(content) {
		return content, false
	}
	return out, true
}

// LineRule rewrites only the lines named by matching parse-failure
// diagnostics. The diagnostic message routes the rule: it fires when the
// message contains MessageContains and the diagnostic is a parse error.
type LineRule struct {
	RuleID          string
	Summary         string
	MessageContains string

	// Rewrite transforms one diagnosed line. It returns the new line and
	// whether anything changed.
	Rewrite func(line string) (string, bool)
}

func (r *LineRule) ID() string          { return r.RuleID }
func (r *LineRule) Description() string { return r.Summary }

// Apply implements Rule.
func (r *LineRule) Apply(content []byte, diags []checker.Diagnostic) ([]byte, bool) {
	lines := strings.Split(string(content), "\n")
	changed := false

	for _, diag := range diags {
		if !diag.IsParseError() {
			continue
		}
		if !strings.Contains(diag.Message, r.MessageContains) {
			continue
		}

		idx := diag.Line - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}

		if newLine, ok := r.Rewrite(lines[idx]); ok && newLine != lines[idx] {
			lines[idx] = newLine
			changed = true
		}
	}

	if !changed {
		return content, false
	}
	return []byte(strings.Join(lines, "\n")), true
}
