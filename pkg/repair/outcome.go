// Package repair implements the per-file convergence loop: measure,
// snapshot, rewrite, re-measure, and commit or revert until the file is
// clean, the rules stop matching, a regression forces a revert, or the
// iteration budget runs out.
package repair

// Outcome is the terminal state of a repair session.
type Outcome string

const (
	// OutcomeClean means the file ended with zero diagnostics. Files that
	// start clean terminate immediately with this outcome and are never
	// snapshotted or written.
	OutcomeClean Outcome = "clean"

	// OutcomeImproved means the rules stopped matching with the
	// diagnostic count reduced but not zero. The improvement is kept.
	OutcomeImproved Outcome = "improved"

	// OutcomeUnchanged means no rule produced any change and the count
	// never moved. The file is left as found.
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeReverted means an iteration made things worse and the file
	// was restored from its snapshot. Reverted sessions report their
	// initial count as the final count: a discarded attempt earns no
	// credit and shows no regression.
	OutcomeReverted Outcome = "reverted"

	// OutcomeExhausted means the iteration budget ran out before any
	// other terminal condition. Accumulated improvement is kept.
	OutcomeExhausted Outcome = "exhausted"
)

// Session is the record of one file's pass through the repair loop.
type Session struct {
	// Path is the file the session repaired.
	Path string

	// InitialCount is the diagnostic count at session start.
	InitialCount int

	// FinalCount is the diagnostic count at termination. For reverted
	// sessions this equals InitialCount by contract.
	FinalCount int

	// Iterations is the number of loop iterations performed.
	Iterations int

	// Outcome is the terminal state.
	Outcome Outcome

	// SnapshotCreated is true if a sidecar snapshot was taken.
	SnapshotCreated bool
}

// Reduction returns the net diagnostic reduction of the session.
func (s *Session) Reduction() int {
	if s == nil {
		return 0
	}
	return s.InitialCount - s.FinalCount
}

// ChangedFile reports whether the session left the file different from
// how it was found.
func (s *Session) ChangedFile() bool {
	if s == nil {
		return false
	}
	switch s.Outcome {
	case OutcomeImproved, OutcomeExhausted:
		return true
	case OutcomeClean:
		return s.Iterations > 0
	default:
		return false
	}
}
