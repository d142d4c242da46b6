package repair_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/relint/pkg/checker"
	"github.com/yaklabco/relint/pkg/fsutil"
	"github.com/yaklabco/relint/pkg/repair"
)

// scriptedMeasurer returns a fixed sequence of diagnostic counts, one per
// Measure call. A negative count injects a measurement error.
type scriptedMeasurer struct {
	counts []int
	calls  int
}

var errMeasureFailed = errors.New("measure failed")

func (m *scriptedMeasurer) Measure(_ context.Context, _ string) (*checker.Measurement, error) {
	if m.calls >= len(m.counts) {
		return nil, errors.New("unexpected Measure call")
	}
	count := m.counts[m.calls]
	m.calls++
	if count < 0 {
		return nil, errMeasureFailed
	}
	return &checker.Measurement{Total: count}, nil
}

// funcRewriter adapts a function to the Rewriter interface.
type funcRewriter func(content []byte) ([]byte, bool)

func (f funcRewriter) Apply(content []byte, _ []checker.Diagnostic) ([]byte, bool) {
	return f(content)
}

// appendRewriter marks content as repaired once; it leaves already
// repaired content alone.
func appendRewriter() repair.Rewriter {
	return funcRewriter(func(content []byte) ([]byte, bool) {
		if len(content) > 0 && content[len(content)-1] == '!' {
			return content, false
		}
		return append(content, '!'), true
	})
}

// noopRewriter never changes anything.
func noopRewriter() repair.Rewriter {
	return funcRewriter(func(content []byte) ([]byte, bool) {
		return content, false
	})
}

// churnRewriter always reports a change, flipping content between two forms.
func churnRewriter() repair.Rewriter {
	return funcRewriter(func(content []byte) ([]byte, bool) {
		if len(content) > 0 && content[len(content)-1] == 'a' {
			return append(content[:len(content)-1], 'b'), true
		}
		return append(content, 'a'), true
	})
}

func writeTarget(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.ts")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func readTarget(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	return string(content)
}

func TestRepairFileCleanStart(t *testing.T) {
	t.Parallel()

	path := writeTarget(t, "already fine\n")
	measurer := &scriptedMeasurer{counts: []int{0}}
	ctrl := repair.New(measurer, appendRewriter())

	session, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if session.Outcome != repair.OutcomeClean {
		t.Errorf("Outcome = %q, want clean", session.Outcome)
	}
	if session.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0", session.Iterations)
	}
	if session.SnapshotCreated {
		t.Error("SnapshotCreated = true for a clean start")
	}
	if fsutil.SnapshotExists(path) {
		t.Error("snapshot file exists for a clean start")
	}
	if got := readTarget(t, path); got != "already fine\n" {
		t.Errorf("file content changed: %q", got)
	}
}

func TestRepairFileConvergesToClean(t *testing.T) {
	t.Parallel()

	path := writeTarget(t, "broken\n")
	// initial=2; post-rewrite=0; re-measure=0 terminates.
	measurer := &scriptedMeasurer{counts: []int{2, 0, 0}}
	ctrl := repair.New(measurer, appendRewriter())

	session, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if session.Outcome != repair.OutcomeClean {
		t.Errorf("Outcome = %q, want clean", session.Outcome)
	}
	if session.InitialCount != 2 || session.FinalCount != 0 {
		t.Errorf("counts = (%d, %d), want (2, 0)", session.InitialCount, session.FinalCount)
	}
	if session.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", session.Iterations)
	}
	if got := readTarget(t, path); got != "broken\n!" {
		t.Errorf("file content = %q, want the rewrite committed", got)
	}
	if fsutil.SnapshotExists(path) {
		t.Error("snapshot survived a completed session")
	}
}

func TestRepairFileImprovedOnStall(t *testing.T) {
	t.Parallel()

	path := writeTarget(t, "partly broken\n")
	// initial=3; post-rewrite=1; re-measure=1; rules stall.
	measurer := &scriptedMeasurer{counts: []int{3, 1, 1}}
	ctrl := repair.New(measurer, appendRewriter())

	session, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if session.Outcome != repair.OutcomeImproved {
		t.Errorf("Outcome = %q, want improved", session.Outcome)
	}
	if session.FinalCount != 1 {
		t.Errorf("FinalCount = %d, want 1", session.FinalCount)
	}
	if session.Reduction() != 2 {
		t.Errorf("Reduction() = %d, want 2", session.Reduction())
	}
	if got := readTarget(t, path); got != "partly broken\n!" {
		t.Errorf("file content = %q, improvement not kept", got)
	}
}

func TestRepairFileUnchanged(t *testing.T) {
	t.Parallel()

	original := "nothing we can fix\n"
	path := writeTarget(t, original)
	measurer := &scriptedMeasurer{counts: []int{2}}
	ctrl := repair.New(measurer, noopRewriter())

	session, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if session.Outcome != repair.OutcomeUnchanged {
		t.Errorf("Outcome = %q, want unchanged", session.Outcome)
	}
	if session.FinalCount != session.InitialCount {
		t.Errorf("FinalCount = %d, want InitialCount %d", session.FinalCount, session.InitialCount)
	}
	if got := readTarget(t, path); got != original {
		t.Errorf("file content = %q, want byte-identical original", got)
	}
	if fsutil.SnapshotExists(path) {
		t.Error("snapshot survived an unchanged session")
	}
}

func TestRepairFileRevertsOnPostRewriteRegression(t *testing.T) {
	t.Parallel()

	original := "fragile content\n"
	path := writeTarget(t, original)
	// initial=1; the rewrite makes it worse: post=3.
	measurer := &scriptedMeasurer{counts: []int{1, 3}}
	ctrl := repair.New(measurer, appendRewriter())

	session, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if session.Outcome != repair.OutcomeReverted {
		t.Errorf("Outcome = %q, want reverted", session.Outcome)
	}
	if session.FinalCount != session.InitialCount {
		t.Errorf("FinalCount = %d, want InitialCount %d", session.FinalCount, session.InitialCount)
	}
	if got := readTarget(t, path); got != original {
		t.Errorf("file content = %q, want byte-identical original after revert", got)
	}
	if fsutil.SnapshotExists(path) {
		t.Error("snapshot survived a reverted session")
	}
}

func TestRepairFileRevertIgnoresStaleSnapshot(t *testing.T) {
	t.Parallel()

	original := "current session content\n"
	path := writeTarget(t, original)
	// Sidecar left behind by a run that was killed mid-session. It must
	// be replaced at session start, not used as the revert target.
	stale := []byte("content from a killed run\n")
	if err := os.WriteFile(fsutil.SnapshotPath(path), stale, 0644); err != nil {
		t.Fatalf("setup stale sidecar: %v", err)
	}

	// initial=1; the rewrite makes it worse: post=3, forcing a revert.
	measurer := &scriptedMeasurer{counts: []int{1, 3}}
	ctrl := repair.New(measurer, appendRewriter())

	session, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if session.Outcome != repair.OutcomeReverted {
		t.Errorf("Outcome = %q, want reverted", session.Outcome)
	}
	if got := readTarget(t, path); got != original {
		t.Errorf("file content = %q, want pre-session content %q", got, original)
	}
}

func TestRepairFileRevertsOnCumulativeRegression(t *testing.T) {
	t.Parallel()

	original := "drifting content\n"
	path := writeTarget(t, original)
	// initial=2; post=2 is tolerated; the next re-measure says 3,
	// worse than session start, so the whole session rolls back.
	measurer := &scriptedMeasurer{counts: []int{2, 2, 3}}
	ctrl := repair.New(measurer, churnRewriter())

	session, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if session.Outcome != repair.OutcomeReverted {
		t.Errorf("Outcome = %q, want reverted", session.Outcome)
	}
	if got := readTarget(t, path); got != original {
		t.Errorf("file content = %q, want original restored", got)
	}
}

func TestRepairFileExhaustsIterations(t *testing.T) {
	t.Parallel()

	path := writeTarget(t, "stubborn\n")
	// Counts: initial, then post + re-measure per iteration, then the
	// final measurement after the budget runs out.
	measurer := &scriptedMeasurer{counts: []int{2, 2, 2, 2, 2}}
	ctrl := repair.New(measurer, churnRewriter())

	session, err := ctrl.RepairFile(context.Background(), path, repair.Options{MaxIterations: 2})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if session.Outcome != repair.OutcomeExhausted {
		t.Errorf("Outcome = %q, want exhausted", session.Outcome)
	}
	if session.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", session.Iterations)
	}
	if session.FinalCount != 2 {
		t.Errorf("FinalCount = %d, want 2", session.FinalCount)
	}
}

func TestRepairFileKeepsSnapshotWhenConfigured(t *testing.T) {
	t.Parallel()

	original := "keep my backup\n"
	path := writeTarget(t, original)
	measurer := &scriptedMeasurer{counts: []int{1, 0, 0}}
	ctrl := repair.New(measurer, appendRewriter())

	_, err := ctrl.RepairFile(context.Background(), path, repair.Options{KeepSnapshots: true})

	if err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if !fsutil.SnapshotExists(path) {
		t.Fatal("snapshot missing despite KeepSnapshots")
	}

	snapContent, err := os.ReadFile(fsutil.SnapshotPath(path))
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(snapContent) != original {
		t.Errorf("snapshot content = %q, want pre-session original", snapContent)
	}
}

func TestRepairFileInitialMeasureErrorLeavesFileAlone(t *testing.T) {
	t.Parallel()

	original := "untouched\n"
	path := writeTarget(t, original)
	measurer := &scriptedMeasurer{counts: []int{-1}}
	ctrl := repair.New(measurer, appendRewriter())

	_, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if !errors.Is(err, errMeasureFailed) {
		t.Fatalf("error = %v, want the measurement failure", err)
	}
	if got := readTarget(t, path); got != original {
		t.Errorf("file content = %q, want untouched", got)
	}
	if fsutil.SnapshotExists(path) {
		t.Error("snapshot exists after a pre-mutation failure")
	}
}

func TestRepairFileMidSessionErrorRestoresOriginal(t *testing.T) {
	t.Parallel()

	original := "recover me\n"
	path := writeTarget(t, original)
	// initial=2; the post-rewrite measurement fails after the candidate
	// was already written.
	measurer := &scriptedMeasurer{counts: []int{2, -1}}
	ctrl := repair.New(measurer, appendRewriter())

	_, err := ctrl.RepairFile(context.Background(), path, repair.Options{})

	if !errors.Is(err, errMeasureFailed) {
		t.Fatalf("error = %v, want the measurement failure", err)
	}
	if got := readTarget(t, path); got != original {
		t.Errorf("file content = %q, want original restored", got)
	}
	if fsutil.SnapshotExists(path) {
		t.Error("snapshot left behind after restore")
	}
}

func TestRepairFileMidSessionErrorKeepsSnapshotWhenConfigured(t *testing.T) {
	t.Parallel()

	original := "recover me\n"
	path := writeTarget(t, original)
	measurer := &scriptedMeasurer{counts: []int{2, -1}}
	ctrl := repair.New(measurer, appendRewriter())

	_, err := ctrl.RepairFile(context.Background(), path, repair.Options{KeepSnapshots: true})

	if !errors.Is(err, errMeasureFailed) {
		t.Fatalf("error = %v, want the measurement failure", err)
	}
	if got := readTarget(t, path); got != original {
		t.Errorf("file content = %q, want original restored", got)
	}
	if !fsutil.SnapshotExists(path) {
		t.Fatal("snapshot missing despite KeepSnapshots")
	}

	snapContent, err := os.ReadFile(fsutil.SnapshotPath(path))
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(snapContent) != original {
		t.Errorf("snapshot content = %q, want pre-session original", snapContent)
	}
}

func TestRepairFileSnapshotTakenBeforeFirstWrite(t *testing.T) {
	t.Parallel()

	original := "before any mutation\n"
	path := writeTarget(t, original)
	measurer := &scriptedMeasurer{counts: []int{1, 1, 1}}

	var snapshotSeen bool
	rewriter := funcRewriter(func(content []byte) ([]byte, bool) {
		if len(content) > 0 && content[len(content)-1] == '!' {
			return content, false
		}
		snapshotSeen = fsutil.SnapshotExists(path)
		return append(content, '!'), true
	})

	ctrl := repair.New(measurer, rewriter)

	if _, err := ctrl.RepairFile(context.Background(), path, repair.Options{}); err != nil {
		t.Fatalf("RepairFile() error = %v", err)
	}
	if !snapshotSeen {
		t.Error("snapshot was not on disk before the first rewrite")
	}
}
