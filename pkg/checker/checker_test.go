package checker_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/relint/pkg/checker"
)

func TestMeasure(t *testing.T) {
	t.Parallel()

	t.Run("parses the report from stdout", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		fixture := filepath.Join(dir, "report.json")
		if err := os.WriteFile(fixture, []byte(jsonReport), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		chk := checker.New([]string{"cat", fixture}, dir)
		m, err := chk.Measure(context.Background(), "")

		if err != nil {
			t.Fatalf("Measure() error = %v", err)
		}
		if m.Count() != 2 {
			t.Errorf("Count() = %d, want 2", m.Count())
		}
	})

	t.Run("appends the target to the command", func(t *testing.T) {
		t.Parallel()

		script := `printf '[{"filePath":"%s","messages":[{"line":1,"column":1,"ruleId":"r","message":"m","severity":2}]}]' "$0"`
		chk := checker.New([]string{"sh", "-c", script}, t.TempDir())

		m, err := chk.Measure(context.Background(), "src/app.ts")

		if err != nil {
			t.Fatalf("Measure() error = %v", err)
		}
		if len(m.Diagnostics) != 1 {
			t.Fatalf("len(Diagnostics) = %d, want 1", len(m.Diagnostics))
		}
		if m.Diagnostics[0].FilePath != "src/app.ts" {
			t.Errorf("FilePath = %q, want the target path", m.Diagnostics[0].FilePath)
		}
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		t.Parallel()

		script := `echo '[]'; exit 1`
		chk := checker.New([]string{"sh", "-c", script}, t.TempDir())

		m, err := chk.Measure(context.Background(), "")

		if err != nil {
			t.Fatalf("Measure() error = %v", err)
		}
		if m.Count() != 0 {
			t.Errorf("Count() = %d, want 0", m.Count())
		}
	})

	t.Run("missing binary reports checker unavailable", func(t *testing.T) {
		t.Parallel()

		chk := checker.New([]string{"/nonexistent/relint-test-checker"}, t.TempDir())

		_, err := chk.Measure(context.Background(), "")

		if !errors.Is(err, checker.ErrCheckerUnavailable) {
			t.Errorf("error = %v, want ErrCheckerUnavailable", err)
		}
	})

	t.Run("empty command is rejected", func(t *testing.T) {
		t.Parallel()

		chk := checker.New(nil, t.TempDir())

		_, err := chk.Measure(context.Background(), "")

		if !errors.Is(err, checker.ErrEmptyCommand) {
			t.Errorf("error = %v, want ErrEmptyCommand", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		chk := checker.New([]string{"sh", "-c", "echo '[]'"}, t.TempDir())

		if _, err := chk.Measure(ctx, ""); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestMeasurement(t *testing.T) {
	t.Parallel()

	t.Run("count is the larger of total and diagnostics", func(t *testing.T) {
		t.Parallel()

		m := &checker.Measurement{
			Diagnostics: []checker.Diagnostic{{FilePath: "a.ts"}},
			Total:       5,
		}
		if m.Count() != 5 {
			t.Errorf("Count() = %d, want 5", m.Count())
		}

		m = &checker.Measurement{
			Diagnostics: []checker.Diagnostic{{FilePath: "a.ts"}, {FilePath: "b.ts"}},
			Total:       0,
		}
		if m.Count() != 2 {
			t.Errorf("Count() = %d, want 2", m.Count())
		}
	})

	t.Run("groups diagnostics by file", func(t *testing.T) {
		t.Parallel()

		m := &checker.Measurement{
			Diagnostics: []checker.Diagnostic{
				{FilePath: "a.ts", Line: 1},
				{FilePath: "b.ts", Line: 2},
				{FilePath: "a.ts", Line: 3},
			},
		}

		byFile := m.ByFile()
		if len(byFile) != 2 {
			t.Fatalf("len(ByFile()) = %d, want 2", len(byFile))
		}
		if len(byFile["a.ts"]) != 2 {
			t.Errorf("a.ts diagnostics = %d, want 2", len(byFile["a.ts"]))
		}
	})

	t.Run("filters parse errors", func(t *testing.T) {
		t.Parallel()

		m := &checker.Measurement{
			Diagnostics: []checker.Diagnostic{
				{Message: "Parsing error: '=>' expected.", Line: 4},
				{Message: "Unexpected any.", Line: 9},
			},
		}

		parseErrs := m.ParseErrors()
		if len(parseErrs) != 1 {
			t.Fatalf("len(ParseErrors()) = %d, want 1", len(parseErrs))
		}
		if parseErrs[0].Line != 4 {
			t.Errorf("Line = %d, want 4", parseErrs[0].Line)
		}
	})
}
