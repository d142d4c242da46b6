package cli

import (
	"errors"

	"github.com/yaklabco/relint/internal/configloader"
	"github.com/yaklabco/relint/pkg/runner"
)

// Exit codes for relint.
const (
	// ExitSuccess indicates every session ended with a clean report.
	ExitSuccess = 0

	// ExitIssuesRemain indicates the run completed but diagnostics survived.
	ExitIssuesRemain = 1

	// ExitSessionErrors indicates one or more file sessions failed.
	ExitSessionErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code from a run result.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitSessionErrors
	}

	if result.HasRemainingIssues() {
		return ExitIssuesRemain
	}

	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesRemain):
		return ExitIssuesRemain
	case errors.Is(err, ErrSessionsFailed):
		return ExitSessionErrors
	case errors.Is(err, configloader.ErrInvalidConfig):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}
