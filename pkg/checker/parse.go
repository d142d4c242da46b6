package checker

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// jsonFileResult mirrors one entry of the checker's JSON report format
// (an array of per-file results, each with a list of messages).
type jsonFileResult struct {
	FilePath string        `json:"filePath"`
	Messages []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	RuleID   string `json:"ruleId"`
	Message  string `json:"message"`
	Severity int    `json:"severity"`
}

// jsonErrorSeverity is the numeric severity the checker uses for errors.
const jsonErrorSeverity = 2

var (
	// textDiagnosticRe matches free-text diagnostic lines of the form
	// "  123:45  error  Message text  rule-id".
	textDiagnosticRe = regexp.MustCompile(`^\s*(\d+):(\d+)\s+(error|warning)\s+(.+)$`)

	// trailingRuleRe captures a trailing rule identifier on a message line.
	trailingRuleRe = regexp.MustCompile(`\s{2,}([\w@/-]+)$`)

	// totalProblemsRe matches the checker's summary total.
	totalProblemsRe = regexp.MustCompile(`(\d+) problems?`)
)

// Parse builds a Measurement from the checker's stdout and stderr.
// It first tries the structured JSON report on stdout; failing that it
// falls back to line-by-line free-text parsing over both streams. Output
// that matches neither produces an empty measurement.
func Parse(stdout, stderr []byte) *Measurement {
	if diags, ok := parseJSON(stdout); ok {
		return &Measurement{Diagnostics: diags, Total: len(diags)}
	}

	combined := string(stdout) + "\n" + string(stderr)
	diags := parseText(combined)

	total := len(diags)
	if reported := parseTotal(combined); reported > total {
		total = reported
	}

	return &Measurement{Diagnostics: diags, Total: total}
}

// parseJSON parses the structured JSON report format.
// Returns false if the data is not a well-formed report.
func parseJSON(data []byte) ([]Diagnostic, bool) {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}

	var results []jsonFileResult
	if err := json.Unmarshal([]byte(trimmed), &results); err != nil {
		return nil, false
	}

	var diags []Diagnostic
	for _, file := range results {
		for _, msg := range file.Messages {
			ruleID := msg.RuleID
			if ruleID == "" {
				ruleID = UnknownRuleID
			}
			severity := SeverityWarning
			if msg.Severity == jsonErrorSeverity {
				severity = SeverityError
			}
			diags = append(diags, Diagnostic{
				FilePath: file.FilePath,
				Line:     msg.Line,
				Column:   msg.Column,
				RuleID:   ruleID,
				Message:  msg.Message,
				Severity: severity,
			})
		}
	}

	return diags, true
}

// parseText parses the checker's human-readable output. The format
// interleaves non-indented file path lines with indented diagnostic lines:
//
//	src/lib/service.ts
//	  12:5  error  Unexpected any  no-explicit-any
func parseText(output string) []Diagnostic {
	var diags []Diagnostic
	var currentFile string

	for _, line := range strings.Split(output, "\n") {
		if match := textDiagnosticRe.FindStringSubmatch(line); match != nil && currentFile != "" {
			lineNum, _ := strconv.Atoi(match[1])
			colNum, _ := strconv.Atoi(match[2])
			severity := Severity(match[3])
			message := strings.TrimSpace(match[4])

			ruleID := UnknownRuleID
			if ruleMatch := trailingRuleRe.FindStringSubmatch(message); ruleMatch != nil {
				ruleID = ruleMatch[1]
				message = strings.TrimSpace(strings.TrimSuffix(message, ruleMatch[0]))
			}

			diags = append(diags, Diagnostic{
				FilePath: currentFile,
				Line:     lineNum,
				Column:   colNum,
				RuleID:   ruleID,
				Message:  message,
				Severity: severity,
			})
			continue
		}

		if file, ok := filePathLine(line); ok {
			currentFile = file
		}
	}

	return diags
}

// filePathLine reports whether a line introduces a new file section.
// File lines are non-indented single tokens that look like paths.
func filePathLine(line string) (string, bool) {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return "", false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t") {
		return "", false
	}
	if !strings.ContainsRune(trimmed, '/') && !strings.ContainsRune(trimmed, '.') {
		return "", false
	}
	return trimmed, true
}

// parseTotal extracts the "N problems" summary count, or 0 if absent.
func parseTotal(output string) int {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "problem") {
			continue
		}
		if match := totalProblemsRe.FindStringSubmatch(line); match != nil {
			total, err := strconv.Atoi(match[1])
			if err == nil {
				return total
			}
		}
	}
	return 0
}
