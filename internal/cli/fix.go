package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/relint/internal/configloader"
	"github.com/yaklabco/relint/internal/logging"
	"github.com/yaklabco/relint/internal/ui/pretty"
	"github.com/yaklabco/relint/pkg/checker"
	"github.com/yaklabco/relint/pkg/config"
	"github.com/yaklabco/relint/pkg/fsutil"
	"github.com/yaklabco/relint/pkg/repair"
	"github.com/yaklabco/relint/pkg/reporter"
	"github.com/yaklabco/relint/pkg/rewrite"
	"github.com/yaklabco/relint/pkg/runner"
)

// ErrIssuesRemain is returned when diagnostics survive the run.
var ErrIssuesRemain = errors.New("issues remain after repair")

// ErrSessionsFailed is returned when one or more file sessions errored.
var ErrSessionsFailed = errors.New("file sessions failed")

type fixFlags struct {
	checker       string
	format        string
	ignore        []string
	disable       []string
	maxIterations int
	keepBackups   bool
	dryRun        bool
	allFiles      bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Repair files until the checker report converges",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	addFixFlags(cmd, flags)

	return cmd
}

const fixLongDescription = `Repair source files until the external checker's report converges.

Each file goes through its own session: measure, snapshot, apply the
rewrite rule table, write, re-measure. Rewrites that reduce the
diagnostic count are kept; a rewrite that makes the count worse rolls
the file back to its snapshot. A file is never left worse than it
started.

By default only files the checker already flags are repaired, seeded
from one project-wide measurement. Use --all to run a session for every
discovered file instead.

Examples:
  relint fix                       # Repair flagged files under the cwd
  relint fix src/                  # Repair flagged files under src/
  relint fix src/app.ts            # Repair a single file
  relint fix --all                 # Session for every discovered file
  relint fix --dry-run             # Preview rewrites as a unified diff
  relint fix --format json         # Machine-readable report for CI
  relint fix --checker "eslint --format json"`

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	finalCfg, err := loadConfig(ctx, cmd, workDir, fixCLIConfig(cmd, flags))
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldChecker, strings.Join(finalCfg.Checker, " "),
		logging.FieldMaxIterations, finalCfg.MaxIterations,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldKeepBackups, finalCfg.KeepBackups,
	)

	chk := checker.New(finalCfg.Checker, workDir)
	engine := rewrite.DefaultEngine().Filter(finalCfg.DisableRules)

	runOpts := runner.Options{
		Paths:            args,
		WorkingDir:       workDir,
		Extensions:       finalCfg.Extensions,
		ExcludeGlobs:     finalCfg.Ignore,
		OnlyProblemFiles: !finalCfg.AllFiles,
		Repair: repair.Options{
			MaxIterations: finalCfg.MaxIterations,
			KeepSnapshots: finalCfg.KeepBackups,
		},
	}

	if finalCfg.DryRun {
		return runDryRun(ctx, cmd, chk, engine, runOpts)
	}

	repairRunner := runner.New(repair.New(chk, engine), chk)

	logger.Debug("starting repair run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := repairRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("repair run failed"), err)
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldDiagnosticsBefore, result.Stats.DiagnosticsBefore,
		logging.FieldDiagnosticsAfter, result.Stats.DiagnosticsAfter,
	)

	if err := reportResult(cmd, finalCfg, result, workDir); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitSessionErrors:
		return ErrSessionsFailed
	case ExitIssuesRemain:
		return ErrIssuesRemain
	}

	return nil
}

// runDryRun previews one engine pass per file as a unified diff.
// Nothing is written and the repair loop never starts.
func runDryRun(
	ctx context.Context,
	cmd *cobra.Command,
	chk *checker.Checker,
	engine *rewrite.Engine,
	opts runner.Options,
) error {
	files, err := runner.Discover(ctx, opts)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	changed := 0

	for _, path := range files {
		measurement, err := chk.Measure(ctx, path)
		if err != nil {
			return fmt.Errorf("measure %s: %w", path, err)
		}
		if measurement.Count() == 0 {
			continue
		}

		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rewritten, didChange := engine.Apply(content, measurement.Diagnostics)
		if !didChange {
			continue
		}

		changed++
		diff := rewrite.GenerateDiff(path, content, rewritten)
		fmt.Fprint(out, styles.FormatDiff(diff.String()))
	}

	if changed == 0 {
		fmt.Fprintln(out, "no rewrites to preview")
	}

	return nil
}

// fixCLIConfig maps explicitly-set flags onto a CLI-layer config.
// Unset flags stay at zero values so lower-precedence sources win.
func fixCLIConfig(cmd *cobra.Command, flags *fixFlags) *config.Config {
	cfg := &config.Config{
		Ignore:       flags.ignore,
		DisableRules: flags.disable,
		DryRun:       flags.dryRun,
		AllFiles:     flags.allFiles,
		Format:       config.OutputFormat(flags.format),
	}

	if cmd.Flags().Changed("checker") {
		cfg.Checker = strings.Fields(flags.checker)
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterations = flags.maxIterations
	}
	if cmd.Flags().Changed("keep-backups") {
		cfg.KeepBackups = flags.keepBackups
	}

	return cfg
}

// loadConfig resolves the final configuration for a command invocation.
func loadConfig(
	ctx context.Context,
	cmd *cobra.Command,
	workDir string,
	cliCfg *config.Config,
) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// reportResult writes a run result with the configured format.
func reportResult(
	cmd *cobra.Command,
	cfg *config.Config,
	result *runner.Result,
	workDir string,
) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return rep.Report(ctx, result)
}

func addFixFlags(cmd *cobra.Command, flags *fixFlags) {
	cmd.Flags().StringVar(&flags.checker, "checker", "",
		"checker command line, target path is appended")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, summary")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rewrite rule IDs to disable")
	cmd.Flags().IntVar(&flags.maxIterations, "max-iterations", config.DefaultMaxIterations,
		"per-file iteration budget")
	cmd.Flags().BoolVar(&flags.keepBackups, "keep-backups", false,
		"keep sidecar snapshots after sessions complete")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show rewrites as a diff without applying them")
	cmd.Flags().BoolVar(&flags.allFiles, "all", false, "repair every discovered file, not only flagged ones")
}
