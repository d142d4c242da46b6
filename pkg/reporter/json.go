package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/relint/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's repair session.
type JSONFileResult struct {
	Path         string `json:"path"`
	InitialCount int    `json:"initialCount"`
	FinalCount   int    `json:"finalCount"`
	Iterations   int    `json:"iterations"`
	Outcome      string `json:"outcome,omitempty"`
	Error        string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered   int            `json:"filesDiscovered"`
	FilesProcessed    int            `json:"filesProcessed"`
	FilesModified     int            `json:"filesModified"`
	FilesErrored      int            `json:"filesErrored"`
	DiagnosticsBefore int            `json:"diagnosticsBefore"`
	DiagnosticsAfter  int            `json:"diagnosticsAfter"`
	DiagnosticsFixed  int            `json:"diagnosticsFixed"`
	ByOutcome         map[string]int `json:"byOutcome"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByOutcome: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path: displayPath(file.Path, r.opts.WorkingDir),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if file.Session != nil {
			fileResult.InitialCount = file.Session.InitialCount
			fileResult.FinalCount = file.Session.FinalCount
			fileResult.Iterations = file.Session.Iterations
			fileResult.Outcome = string(file.Session.Outcome)
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesProcessed = stats.FilesProcessed
	output.Summary.FilesModified = stats.FilesModified
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.DiagnosticsBefore = stats.DiagnosticsBefore
	output.Summary.DiagnosticsAfter = stats.DiagnosticsAfter
	output.Summary.DiagnosticsFixed = stats.DiagnosticsFixed
	for outcome, count := range stats.ByOutcome {
		output.Summary.ByOutcome[string(outcome)] = count
	}

	return output
}
