package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/relint/internal/logging"
	"github.com/yaklabco/relint/internal/ui/pretty"
	"github.com/yaklabco/relint/pkg/checker"
	"github.com/yaklabco/relint/pkg/config"
)

type checkFlags struct {
	checker string
	format  string
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Run the checker and print its diagnostics",
		Long: `Run the external checker over the given paths and print the parsed
diagnostics without modifying anything. This is the measurement half of
the repair loop on its own, useful for verifying that relint and the
checker agree on what needs fixing.

Examples:
  relint check                  # Check the current directory
  relint check src/             # Check a directory
  relint check src/app.ts       # Check a single file
  relint check --format json    # Machine-readable diagnostics`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.checker, "checker", "",
		"checker command line, target path is appended")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cliCfg := &config.Config{Format: config.OutputFormat(flags.format)}
	if cmd.Flags().Changed("checker") {
		cliCfg.Checker = strings.Fields(flags.checker)
	}

	finalCfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("measuring",
		logging.FieldChecker, strings.Join(finalCfg.Checker, " "))

	chk := checker.New(finalCfg.Checker, workDir)

	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}

	var diags []checker.Diagnostic
	total := 0
	for _, target := range targets {
		measurement, err := chk.Measure(ctx, target)
		if err != nil {
			return fmt.Errorf("measure %s: %w", target, err)
		}
		diags = append(diags, measurement.Diagnostics...)
		total += measurement.Count()
	}

	if finalCfg.Format == config.FormatJSON {
		return printDiagnosticsJSON(cmd, diags, total)
	}

	printDiagnosticsText(cmd, diags, total)

	if total > 0 {
		return ErrIssuesRemain
	}
	return nil
}

func printDiagnosticsText(cmd *cobra.Command, diags []checker.Diagnostic, total int) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	byFile := make(map[string][]checker.Diagnostic)
	var files []string
	for _, diag := range diags {
		if _, seen := byFile[diag.FilePath]; !seen {
			files = append(files, diag.FilePath)
		}
		byFile[diag.FilePath] = append(byFile[diag.FilePath], diag)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Fprintln(out, styles.FilePath.Render(file))
		for _, diag := range byFile[file] {
			fmt.Fprintf(out, "  %s  %s  %s  %s\n",
				styles.Location.Render(fmt.Sprintf("%d:%d", diag.Line, diag.Column)),
				renderSeverity(styles, diag.Severity),
				styles.Message.Render(diag.Message),
				styles.RuleID.Render(diag.RuleID),
			)
		}
	}

	switch {
	case total == 0:
		fmt.Fprintln(out, styles.Success.Render("no problems found"))
	case total == 1:
		fmt.Fprintln(out, styles.Failure.Render("1 problem found"))
	default:
		fmt.Fprintln(out, styles.Failure.Render(fmt.Sprintf("%d problems found", total)))
	}
}

func renderSeverity(styles *pretty.Styles, severity checker.Severity) string {
	if severity == checker.SeverityError {
		return styles.Error.Render(string(severity))
	}
	return styles.Warning.Render(string(severity))
}

func printDiagnosticsJSON(cmd *cobra.Command, diags []checker.Diagnostic, total int) error {
	if diags == nil {
		diags = []checker.Diagnostic{}
	}

	payload := struct {
		Diagnostics []checker.Diagnostic `json:"diagnostics"`
		Total       int                  `json:"total"`
	}{Diagnostics: diags, Total: total}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}

	if total > 0 {
		return ErrIssuesRemain
	}
	return nil
}
