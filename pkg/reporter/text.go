package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/relint/internal/ui/pretty"
	"github.com/yaklabco/relint/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to repair."))
		}
		return nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Session == nil {
			continue
		}

		session := *file.Session
		session.Path = displayPath(session.Path, r.opts.WorkingDir)
		fmt.Fprintln(r.bw, r.styles.FormatSessionLine(&session))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatRunSummaryOneLine(result.Stats))
	}

	return nil
}
