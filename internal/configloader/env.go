package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/relint/pkg/config"
)

// Environment variable names recognized by the loader.
const (
	// EnvChecker overrides the checker command (whitespace-separated argv).
	EnvChecker = "RELINT_CHECKER"

	// EnvMaxIterations overrides the per-file iteration budget.
	EnvMaxIterations = "RELINT_MAX_ITERATIONS"

	// EnvKeepBackups enables keeping sidecar snapshots ("1", "true").
	EnvKeepBackups = "RELINT_KEEP_BACKUPS"
)

// applyEnv overlays RELINT_* environment variables onto cfg.
// It returns warnings for values it could not interpret.
func applyEnv(cfg *config.Config) []string {
	var warnings []string

	if value := os.Getenv(EnvChecker); value != "" {
		cfg.Checker = strings.Fields(value)
	}

	if value := os.Getenv(EnvMaxIterations); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: not an integer", EnvMaxIterations, value))
		} else {
			cfg.MaxIterations = n
		}
	}

	if value := os.Getenv(EnvKeepBackups); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: not a boolean", EnvKeepBackups, value))
		} else {
			cfg.KeepBackups = enabled
		}
	}

	return warnings
}
