package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/relint/pkg/checker"
	"github.com/yaklabco/relint/pkg/repair"
)

// Runner orchestrates repair sessions across many files.
type Runner struct {
	// Controller runs the per-file repair loop.
	Controller *repair.Controller

	// Measurer performs the project-wide measurement that seeds
	// problem-file selection.
	Measurer repair.Measurer
}

// New creates a Runner with the given controller and measurer.
func New(controller *repair.Controller, measurer repair.Measurer) *Runner {
	return &Runner{Controller: controller, Measurer: measurer}
}

// Run discovers files under opts.Paths and repairs them one at a time.
//
// Sessions are sequential by design: the checker is a shared, expensive
// resource, and a session runs to a terminal outcome without interruption.
// Cancellation is honored only between sessions. A checker that cannot be
// started aborts the whole run; any other per-file failure is recorded and
// the run continues, preserving earlier files' progress.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	if opts.OnlyProblemFiles {
		files, err = r.selectProblemFiles(ctx, files, opts)
		if err != nil {
			return nil, err
		}
	}

	for _, path := range files {
		// Cancellation point between sessions only.
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("run cancelled: %w", ctx.Err())
		default:
		}

		outcome := FileOutcome{Path: path}

		session, err := r.Controller.RepairFile(ctx, path, opts.Repair)
		if err != nil {
			if errors.Is(err, checker.ErrCheckerUnavailable) {
				// Nothing was mutated; the whole run is pointless.
				return result, err
			}
			outcome.Error = err
		} else {
			outcome.Session = session
		}

		result.accumulate(outcome)
	}

	return result, nil
}

// selectProblemFiles narrows the discovered set to files the checker
// already flags, using a single project-wide measurement. Discovery order
// is preserved.
func (r *Runner) selectProblemFiles(ctx context.Context, files []string, opts Options) ([]string, error) {
	measurement, err := r.Measurer.Measure(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("project measurement: %w", err)
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	flagged := make(map[string]struct{})
	for path := range measurement.ByFile() {
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		flagged[filepath.Clean(path)] = struct{}{}
	}

	var selected []string
	for _, path := range files {
		if _, ok := flagged[path]; ok {
			selected = append(selected, path)
		}
	}

	return selected, nil
}
