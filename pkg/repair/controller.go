package repair

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/relint/pkg/checker"
	"github.com/yaklabco/relint/pkg/fsutil"
)

// Measurer measures diagnostics for a single file or the whole project.
type Measurer interface {
	Measure(ctx context.Context, target string) (*checker.Measurement, error)
}

// Rewriter applies one pass of an ordered rule table to content.
type Rewriter interface {
	Apply(content []byte, diags []checker.Diagnostic) ([]byte, bool)
}

// Controller runs repair sessions. It owns the snapshot/revert safety
// mechanism and the termination policy; measurement and rewriting are
// delegated to the given collaborators.
type Controller struct {
	measurer Measurer
	rewriter Rewriter
}

// New creates a Controller with the given measurer and rewriter.
func New(measurer Measurer, rewriter Rewriter) *Controller {
	return &Controller{measurer: measurer, rewriter: rewriter}
}

// RepairFile runs one repair session for path.
//
// The session terminates with one of the Outcome values. The file is
// guaranteed to end in one of three states: original content (clean start,
// unchanged, or reverted), strictly improved content, or, if the process
// dies mid-session, original content recoverable from the sidecar
// snapshot.
//
// Errors returned before the first mutation (including a measurer whose
// checker cannot start) leave the file untouched. Errors after the first
// mutation restore the snapshot before propagating.
func (c *Controller) RepairFile(ctx context.Context, path string, opts Options) (*Session, error) {
	session := &Session{Path: path}

	// Initial measurement. Nothing has been written yet, so a failure
	// here is fatal with nothing to revert.
	initial, err := c.measurer.Measure(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("measure %s: %w", path, err)
	}

	session.InitialCount = initial.Count()
	if session.InitialCount == 0 {
		session.Outcome = OutcomeClean
		return session, nil
	}

	// First sign of work: snapshot exactly once, before any mutation.
	// This replaces any stale sidecar from an interrupted earlier run, so
	// a later revert restores this session's pre-mutation content.
	if err := fsutil.CreateSnapshot(ctx, path); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	session.SnapshotCreated = true

	current := initial
	maxIterations := opts.effectiveMaxIterations()

	for iteration := 1; iteration <= maxIterations; iteration++ {
		session.Iterations = iteration

		// Re-measure. The first iteration reuses the session-start
		// measurement; later iterations ask the checker again.
		if iteration > 1 {
			current, err = c.measurer.Measure(ctx, path)
			if err != nil {
				return nil, c.failSession(path, opts, fmt.Errorf("measure %s: %w", path, err))
			}
		}
		count := current.Count()

		// Regression check against the session start: a previous
		// iteration made things worse overall.
		if count > session.InitialCount {
			return c.revert(ctx, session, opts)
		}

		if count == 0 {
			session.Outcome = OutcomeClean
			session.FinalCount = 0
			return session, c.finishSnapshot(path, opts)
		}

		content, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return nil, c.failSession(path, opts, err)
		}

		newContent, changed := c.rewriter.Apply(content, current.Diagnostics)
		if !changed {
			// No rule matched anything; further looping cannot help.
			session.FinalCount = count
			if count < session.InitialCount {
				session.Outcome = OutcomeImproved
			} else {
				session.Outcome = OutcomeUnchanged
			}
			return session, c.finishSnapshot(path, opts)
		}

		// Commit the candidate so the checker can see it.
		if err := fsutil.WriteAtomic(ctx, path, newContent, info.Mode); err != nil {
			return nil, c.failSession(path, opts, err)
		}

		// Verify the rewrite did not itself introduce new problems.
		post, err := c.measurer.Measure(ctx, path)
		if err != nil {
			return nil, c.failSession(path, opts, fmt.Errorf("measure %s: %w", path, err))
		}
		if post.Count() > count {
			return c.revert(ctx, session, opts)
		}
	}

	// Iteration budget exhausted; keep whatever improvement accumulated.
	final, err := c.measurer.Measure(ctx, path)
	if err != nil {
		return nil, c.failSession(path, opts, fmt.Errorf("measure %s: %w", path, err))
	}
	session.FinalCount = final.Count()
	session.Outcome = OutcomeExhausted
	return session, c.finishSnapshot(path, opts)
}

// revert restores the snapshot and terminates the session as Reverted.
// Reverted sessions report (initial, initial): no credit for a discarded
// attempt, and never a regression.
func (c *Controller) revert(ctx context.Context, session *Session, opts Options) (*Session, error) {
	// Restoring must proceed even if the surrounding run is being
	// cancelled; a half-repaired file is worse than a slow shutdown.
	restoreCtx := context.WithoutCancel(ctx)

	if _, err := fsutil.RestoreSnapshot(restoreCtx, session.Path); err != nil {
		// The snapshot stays on disk as a manual recovery point.
		return nil, fmt.Errorf("revert %s: %w", session.Path, err)
	}

	session.Outcome = OutcomeReverted
	session.FinalCount = session.InitialCount
	return session, c.finishSnapshot(session.Path, opts)
}

// failSession restores the snapshot before propagating an internal fault,
// so the file is never left half-written because of an error of ours.
func (c *Controller) failSession(path string, opts Options, cause error) error {
	restored, restoreErr := fsutil.RestoreSnapshot(context.WithoutCancel(context.Background()), path)
	if restoreErr != nil {
		return errors.Join(cause, fmt.Errorf("restore snapshot %s: %w", path, restoreErr))
	}
	if restored && !opts.KeepSnapshots {
		if _, err := fsutil.RemoveSnapshot(path); err != nil {
			return errors.Join(cause, err)
		}
	}
	return cause
}

// finishSnapshot removes the session's snapshot on completion, unless
// configured to keep it.
func (c *Controller) finishSnapshot(path string, opts Options) error {
	if opts.KeepSnapshots {
		return nil
	}
	if _, err := fsutil.RemoveSnapshot(path); err != nil {
		return fmt.Errorf("remove snapshot %s: %w", path, err)
	}
	return nil
}
