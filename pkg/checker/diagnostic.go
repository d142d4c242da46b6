// Package checker invokes the external lint checker as a subprocess and
// normalizes its output into diagnostics. It understands the checker's JSON
// report format and falls back to tolerant free-text parsing when the
// output is not structured.
package checker

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// UnknownRuleID is used when the checker does not attribute a diagnostic
// to a rule.
const UnknownRuleID = "unknown"

// parseErrorMarker is the message phrase that routes a diagnostic to
// parse-failure handling instead of generic style handling.
const parseErrorMarker = "Parsing error"

// Diagnostic represents a single problem reported by the external checker.
type Diagnostic struct {
	// FilePath is the path to the file containing the issue.
	FilePath string `json:"filePath"`

	// Line is the 1-based line number of the issue.
	Line int `json:"line"`

	// Column is the 1-based column number, or 0 when unknown.
	Column int `json:"column"`

	// RuleID identifies the diagnostic category, or "unknown".
	RuleID string `json:"ruleId"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Severity indicates the importance of the diagnostic.
	Severity Severity `json:"severity"`
}

// IsParseError reports whether the diagnostic describes a syntax failure
// in the checked file rather than a style or type issue.
func (d Diagnostic) IsParseError() bool {
	return strings.Contains(d.Message, parseErrorMarker)
}

// String renders the diagnostic in path:line:col form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d - %s", d.FilePath, d.Line, d.Column, d.Message)
}

// Measurement is the result of one checker invocation.
type Measurement struct {
	// Diagnostics are the parsed problems, possibly empty.
	Diagnostics []Diagnostic

	// Total is the problem count for the measured scope. It equals
	// len(Diagnostics) unless the checker reported a larger summary total
	// that the parser could not attribute to individual diagnostics.
	Total int
}

// Count returns the effective diagnostic count of the measurement.
func (m *Measurement) Count() int {
	if m == nil {
		return 0
	}
	if m.Total > len(m.Diagnostics) {
		return m.Total
	}
	return len(m.Diagnostics)
}

// ParseErrors returns the subset of diagnostics that are parse failures.
func (m *Measurement) ParseErrors() []Diagnostic {
	if m == nil {
		return nil
	}
	var out []Diagnostic
	for _, d := range m.Diagnostics {
		if d.IsParseError() {
			out = append(out, d)
		}
	}
	return out
}

// ByFile groups the diagnostics by file path, preserving order within a file.
func (m *Measurement) ByFile() map[string][]Diagnostic {
	if m == nil {
		return nil
	}
	grouped := make(map[string][]Diagnostic)
	for _, d := range m.Diagnostics {
		grouped[d.FilePath] = append(grouped[d.FilePath], d)
	}
	return grouped
}
