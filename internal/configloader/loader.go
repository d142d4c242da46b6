// Package configloader resolves the final relint configuration by merging
// project config files, environment variables, and CLI flags.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/relint/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreEnv skips RELINT_* environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// LoadedFrom lists the files that were actually loaded.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// ErrInvalidConfig indicates the resolved configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (RELINT_*)
//  3. Project config file (.relint.yml, discovered upward)
//  4. Built-in defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config: %w", ctx.Err())
	default:
	}

	result := &LoadResult{Config: config.Default()}

	path := opts.ExplicitPath
	if path == "" {
		workDir := opts.WorkingDir
		if workDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("get working directory: %w", err)
			}
			workDir = wd
		}
		path = DiscoverProjectConfig(workDir)
	}

	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			if opts.ExplicitPath != "" {
				return nil, err
			}
			// A broken discovered config degrades to defaults with a warning.
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			mergeFile(result.Config, fileCfg)
			result.LoadedFrom = append(result.LoadedFrom, path)
		}
	}

	if !opts.IgnoreEnv {
		result.Warnings = append(result.Warnings, applyEnv(result.Config)...)
	}

	if opts.CLIConfig != nil {
		mergeCLI(result.Config, opts.CLIConfig)
	}

	if err := validate(result.Config); err != nil {
		return nil, err
	}

	return result, nil
}

// loadFile reads and parses one config file.
func loadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// mergeFile overlays non-zero file values onto the base config.
func mergeFile(base, file *config.Config) {
	if len(file.Checker) > 0 {
		base.Checker = file.Checker
	}
	if len(file.Extensions) > 0 {
		base.Extensions = file.Extensions
	}
	if len(file.Ignore) > 0 {
		base.Ignore = file.Ignore
	}
	if file.MaxIterations > 0 {
		base.MaxIterations = file.MaxIterations
	}
	if file.KeepBackups {
		base.KeepBackups = true
	}
	if len(file.DisableRules) > 0 {
		base.DisableRules = file.DisableRules
	}
}

// mergeCLI overlays CLI flag values onto the base config.
// CLI booleans only turn features on; absence never turns them off.
func mergeCLI(base, cli *config.Config) {
	if len(cli.Checker) > 0 {
		base.Checker = cli.Checker
	}
	if len(cli.Extensions) > 0 {
		base.Extensions = cli.Extensions
	}
	if len(cli.Ignore) > 0 {
		base.Ignore = append(base.Ignore, cli.Ignore...)
	}
	if cli.MaxIterations > 0 {
		base.MaxIterations = cli.MaxIterations
	}
	if cli.KeepBackups {
		base.KeepBackups = true
	}
	if len(cli.DisableRules) > 0 {
		base.DisableRules = append(base.DisableRules, cli.DisableRules...)
	}
	if cli.DryRun {
		base.DryRun = true
	}
	if cli.AllFiles {
		base.AllFiles = true
	}
	if cli.Format != "" {
		base.Format = cli.Format
	}
}

// validate checks the resolved configuration for usable values.
func validate(cfg *config.Config) error {
	if len(cfg.Checker) == 0 {
		return fmt.Errorf("%w: checker command is empty", ErrInvalidConfig)
	}
	if cfg.MaxIterations < 1 || cfg.MaxIterations > config.MaxIterationsCeiling {
		return fmt.Errorf("%w: max_iterations %d out of range 1..%d",
			ErrInvalidConfig, cfg.MaxIterations, config.MaxIterationsCeiling)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, cfg.Format)
	}
	return nil
}
