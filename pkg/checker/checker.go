package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrCheckerUnavailable indicates the external checker process could not be
// started at all (missing executable, permission error). A checker that runs
// and reports problems exits non-zero; that is the normal case, not this error.
var ErrCheckerUnavailable = errors.New("checker unavailable")

// ErrEmptyCommand indicates no checker command was configured.
var ErrEmptyCommand = errors.New("empty checker command")

// Checker runs an external lint command and parses its output.
type Checker struct {
	// Command is the checker argv, e.g. ["npx", "eslint", "--format", "json"].
	Command []string

	// WorkDir is the directory the checker runs in.
	WorkDir string
}

// New creates a Checker for the given command argv, run from workDir.
func New(command []string, workDir string) *Checker {
	return &Checker{Command: command, WorkDir: workDir}
}

// Measure invokes the checker scoped to target and parses the result.
// An empty target measures the whole project.
//
// The checker's exit code is ignored: linters exit non-zero whenever
// problems exist. Output that cannot be parsed at all yields an empty
// measurement, not an error; continued mutation without parseable evidence
// of a problem is never justified, so absence of evidence reads as zero.
func (c *Checker) Measure(ctx context.Context, target string) (*Measurement, error) {
	if len(c.Command) == 0 {
		return nil, ErrEmptyCommand
	}

	args := make([]string, len(c.Command)-1, len(c.Command))
	copy(args, c.Command[1:])
	if target != "" {
		args = append(args, target)
	}

	cmd := exec.CommandContext(ctx, c.Command[0], args...)
	cmd.Dir = c.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never ran: missing binary, permission failure,
			// or cancellation before start.
			return nil, fmt.Errorf("%w: %q: %w", ErrCheckerUnavailable, c.Command[0], err)
		}
		// Non-zero exit with output is the normal "problems found" case.
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("measure %s: %w", target, ctx.Err())
	}

	return Parse(stdout.Bytes(), stderr.Bytes()), nil
}
