package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/relint/pkg/repair"
	"github.com/yaklabco/relint/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// outcomeOrder fixes the display order of outcome tallies.
//
//nolint:gochecknoglobals // Package-level display order is intentional
var outcomeOrder = []repair.Outcome{
	repair.OutcomeClean,
	repair.OutcomeImproved,
	repair.OutcomeUnchanged,
	repair.OutcomeReverted,
	repair.OutcomeExhausted,
}

// FormatSessionLine renders one repaired file as a single line.
// Example: "src/lib/service.ts: 5 → 0 (clean)".
func (s *Styles) FormatSessionLine(session *repair.Session) string {
	arrow := fmt.Sprintf("%d → %d", session.InitialCount, session.FinalCount)

	var outcome string
	switch session.Outcome {
	case repair.OutcomeClean:
		outcome = s.Success.Render(string(session.Outcome))
	case repair.OutcomeImproved:
		outcome = s.Improved.Render(string(session.Outcome))
	case repair.OutcomeReverted, repair.OutcomeExhausted:
		outcome = s.Reverted.Render(string(session.Outcome))
	default:
		outcome = s.Dim.Render(string(session.Outcome))
	}

	return fmt.Sprintf("%s: %s (%s)", s.FilePath.Render(session.Path), arrow, outcome)
}

// FormatRunSummaryOneLine formats run statistics as a single line.
// Example: "34 → 7 diagnostics in 12 files, 5 clean, 3 improved, 1 reverted".
func (s *Styles) FormatRunSummaryOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 {
		return s.Success.Render("No files to repair.") + "\n"
	}

	fileWord := wordFiles
	if stats.FilesProcessed == 1 {
		fileWord = wordFile
	}

	parts := []string{
		fmt.Sprintf("%d → %d diagnostics in %d %s",
			stats.DiagnosticsBefore, stats.DiagnosticsAfter, stats.FilesProcessed, fileWord),
	}

	for _, outcome := range outcomeOrder {
		if count := stats.ByOutcome[outcome]; count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", count, outcome))
		}
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatRunSummary formats run statistics as a summary block.
func (s *Styles) FormatRunSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")

	fmt.Fprintf(&builder, "  Files discovered:  %d\n", stats.FilesDiscovered)
	fmt.Fprintf(&builder, "  Files processed:   %d\n", stats.FilesProcessed)
	fmt.Fprintf(&builder, "  Files modified:    %d\n", stats.FilesModified)
	fmt.Fprintf(&builder, "  Diagnostics:       %d → %d (-%d)\n",
		stats.DiagnosticsBefore, stats.DiagnosticsAfter, stats.DiagnosticsFixed)

	for _, outcome := range outcomeOrder {
		if count := stats.ByOutcome[outcome]; count > 0 {
			fmt.Fprintf(&builder, "  %-18s %d\n", string(outcome)+":", count)
		}
	}

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render(fmt.Sprintf("  errored:           %d", stats.FilesErrored)))
		builder.WriteString("\n")
	}

	if stats.DiagnosticsAfter == 0 && stats.FilesProcessed > 0 {
		builder.WriteString(s.Success.Render("  All repaired files are clean."))
		builder.WriteString("\n")
	}

	return builder.String()
}
