package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/tagforest/internal/ui/pretty"
	"github.com/yaklabco/tagforest/pkg/runner"
)

// TreeReporter prints each file's run forest followed by its diagnostics.
type TreeReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TreeReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || file.Result.Document == nil {
			continue
		}

		doc := file.Result.Document
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Result.Diagnostics)))
		fmt.Fprint(r.bw, r.styles.FormatForest(doc.Forest, r.width))

		if open := doc.OpenTags(); len(open) > 0 {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("open at end: "+strings.Join(open, " > ")))
		}

		for idx := range file.Result.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, &file.Result.Diagnostics[idx], false, ""))
		}
		total += len(file.Result.Diagnostics)

		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
