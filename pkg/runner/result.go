package runner

import "github.com/yaklabco/relint/pkg/repair"

// FileOutcome wraps one file's repair session with error metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Session contains the repair session record.
	// Nil if the file errored before a session could complete.
	Session *repair.Session

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of completed sessions.
	FilesProcessed int

	// FilesErrored is the number of files whose session failed.
	FilesErrored int

	// ByOutcome maps terminal outcomes to file counts.
	ByOutcome map[repair.Outcome]int

	// DiagnosticsBefore sums the initial diagnostic counts of all sessions.
	DiagnosticsBefore int

	// DiagnosticsAfter sums the final diagnostic counts of all sessions.
	DiagnosticsAfter int

	// DiagnosticsFixed is the net reduction across all sessions.
	DiagnosticsFixed int

	// FilesModified is the number of files whose content changed.
	FilesModified int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in the order
	// the files were processed.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// newStats creates a Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ByOutcome: make(map[repair.Outcome]int),
	}
}

// HasRemainingIssues reports whether any diagnostics survived the run.
func (r *Result) HasRemainingIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsAfter > 0
}

// HasErrors reports whether any file's session failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	session := outcome.Session
	if session == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.ByOutcome[session.Outcome]++
	r.Stats.DiagnosticsBefore += session.InitialCount
	r.Stats.DiagnosticsAfter += session.FinalCount
	r.Stats.DiagnosticsFixed += session.Reduction()

	if session.ChangedFile() {
		r.Stats.FilesModified++
	}
}
