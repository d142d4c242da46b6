package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/relint/pkg/repair"
	"github.com/yaklabco/relint/pkg/reporter"
	"github.com/yaklabco/relint/pkg/runner"
)

func sampleResult() *runner.Result {
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/project/src/app.ts",
				Session: &repair.Session{
					Path:         "/project/src/app.ts",
					InitialCount: 5,
					FinalCount:   0,
					Iterations:   2,
					Outcome:      repair.OutcomeClean,
				},
			},
			{
				Path: "/project/src/util.ts",
				Session: &repair.Session{
					Path:         "/project/src/util.ts",
					InitialCount: 3,
					FinalCount:   3,
					Iterations:   1,
					Outcome:      repair.OutcomeReverted,
				},
			},
			{
				Path:  "/project/src/broken.ts",
				Error: errors.New("checker crashed"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:   4,
			FilesProcessed:    2,
			FilesErrored:      1,
			FilesModified:     1,
			DiagnosticsBefore: 8,
			DiagnosticsAfter:  3,
			DiagnosticsFixed:  5,
			ByOutcome: map[repair.Outcome]int{
				repair.OutcomeClean:    1,
				repair.OutcomeReverted: 1,
			},
		},
	}
	return result
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"text", "json", "summary"} {
		format, err := reporter.ParseFormat(valid)
		require.NoError(t, err)
		assert.True(t, format.IsValid())
	}

	_, err := reporter.ParseFormat("sarif")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("selects implementation by format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON})
		require.NoError(t, err)
		assert.IsType(t, &reporter.JSONReporter{}, rep)

		rep, err = reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSummary})
		require.NoError(t, err)
		assert.IsType(t, &reporter.SummaryReporter{}, rep)

		rep, err = reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatText})
		require.NoError(t, err)
		assert.IsType(t, &reporter.TextReporter{}, rep)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := reporter.New(reporter.Options{Format: "sarif"})
		assert.Error(t, err)
	})
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	t.Run("renders session lines and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rep := reporter.NewTextReporter(reporter.Options{
			Writer:      &buf,
			Color:       "never",
			ShowSummary: true,
			WorkingDir:  "/project",
		})

		require.NoError(t, rep.Report(context.Background(), sampleResult()))

		out := buf.String()
		assert.Contains(t, out, "src/app.ts: 5 → 0 (clean)")
		assert.Contains(t, out, "src/util.ts: 3 → 3 (reverted)")
		assert.Contains(t, out, "src/broken.ts: error: checker crashed")
		assert.Contains(t, out, "8 → 3 diagnostics in 2 files")
	})

	t.Run("empty result prints nothing to repair", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rep := reporter.NewTextReporter(reporter.Options{
			Writer:      &buf,
			Color:       "never",
			ShowSummary: true,
		})

		require.NoError(t, rep.Report(context.Background(), &runner.Result{}))
		assert.Contains(t, buf.String(), "No files to repair.")
	})
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{
		Writer:     &buf,
		WorkingDir: "/project",
	})

	require.NoError(t, rep.Report(context.Background(), sampleResult()))

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 3)
	assert.Equal(t, "src/app.ts", output.Files[0].Path)
	assert.Equal(t, 5, output.Files[0].InitialCount)
	assert.Equal(t, 0, output.Files[0].FinalCount)
	assert.Equal(t, "clean", output.Files[0].Outcome)

	assert.Equal(t, "reverted", output.Files[1].Outcome)
	assert.Equal(t, output.Files[1].InitialCount, output.Files[1].FinalCount)

	assert.Equal(t, "checker crashed", output.Files[2].Error)
	assert.Empty(t, output.Files[2].Outcome)

	assert.Equal(t, 4, output.Summary.FilesDiscovered)
	assert.Equal(t, 1, output.Summary.FilesErrored)
	assert.Equal(t, 8, output.Summary.DiagnosticsBefore)
	assert.Equal(t, 3, output.Summary.DiagnosticsAfter)
	assert.Equal(t, 1, output.Summary.ByOutcome["clean"])
	assert.Equal(t, 1, output.Summary.ByOutcome["reverted"])
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{
		Writer: &buf,
		Color:  "never",
	})

	require.NoError(t, rep.Report(context.Background(), sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files discovered:  4")
	assert.Contains(t, out, "Diagnostics:       8 → 3 (-5)")
	assert.Contains(t, out, "reverted:")
}
