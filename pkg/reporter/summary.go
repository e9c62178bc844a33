package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/tagforest/internal/ui/pretty"
	"github.com/yaklabco/tagforest/pkg/config"
	"github.com/yaklabco/tagforest/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 80
	kindColWidth      = 28
	fileColWidth      = 50
	numColWidth       = 7
	warnColWidth      = 9
	maxFilePathLength = 48
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// tally counts diagnostics by severity for one table row.
type tally struct {
	name     string
	issues   int
	errors   int
	warnings int
	infos    int
}

func (t *tally) add(sev config.Severity) {
	t.issues++
	switch sev {
	case config.SeverityError:
		t.errors++
	case config.SeverityWarning:
		t.warnings++
	case config.SeverityInfo:
		t.infos++
	}
}

// SummaryReporter formats results as aggregated tables by kind and by file.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || result.Stats.DiagnosticsTotal == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No issues found"))
		return 0, nil
	}

	byKind, byFile := r.aggregate(result)

	r.renderTable("Kinds Summary", "Kind", kindColWidth, byKind)
	fmt.Fprintln(r.bw)
	r.renderTable("Files Summary", "File", fileColWidth, byFile)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return result.Stats.DiagnosticsTotal, nil
}

// aggregate returns rows sorted by descending issue count, then name.
func (r *SummaryReporter) aggregate(result *runner.Result) ([]tally, []tally) {
	kinds := make(map[string]*tally)
	var files []tally

	for _, file := range result.Files {
		if file.Result == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}
		row := tally{name: r.opts.displayPath(file.Path)}
		for _, diag := range file.Result.Diagnostics {
			row.add(diag.Severity)

			kind, ok := kinds[string(diag.Kind)]
			if !ok {
				kind = &tally{name: string(diag.Kind)}
				kinds[string(diag.Kind)] = kind
			}
			kind.add(diag.Severity)
		}
		files = append(files, row)
	}

	byKind := make([]tally, 0, len(kinds))
	for _, kind := range kinds {
		byKind = append(byKind, *kind)
	}

	order := func(a, b tally) int {
		if a.issues != b.issues {
			return b.issues - a.issues
		}
		return strings.Compare(a.name, b.name)
	}
	slices.SortFunc(byKind, order)
	slices.SortFunc(files, order)

	return byKind, files
}

func (r *SummaryReporter) renderTable(title, column string, width int, rows []tally) {
	if len(rows) == 0 {
		return
	}

	separator := r.styles.Dim.Render(strings.Repeat("─", tableWidth))

	fmt.Fprintln(r.bw, r.styles.Bold.Render(title))
	fmt.Fprintln(r.bw, separator)
	fmt.Fprintf(r.bw, "%s %s %s %s %s\n",
		r.styles.Bold.Render(padRight(column, width)),
		r.styles.Bold.Render(padLeft("Count", numColWidth)),
		r.styles.Bold.Render(padLeft("Errors", numColWidth)),
		r.styles.Bold.Render(padLeft("Warnings", warnColWidth)),
		r.styles.Bold.Render(padLeft("Info", numColWidth)),
	)
	fmt.Fprintln(r.bw, separator)

	for _, row := range rows {
		name := row.name
		if len(name) > maxFilePathLength {
			name = "…" + name[len(name)-(maxFilePathLength-1):]
		}

		// Pad first, then style
		padded := padRight(name, width)
		switch {
		case row.errors > 0:
			padded = r.styles.Error.Render(padded)
		case row.warnings > 0:
			padded = r.styles.Warning.Render(padded)
		}

		fmt.Fprintf(r.bw, "%s %s %s %s %s\n",
			padded,
			padLeft(strconv.Itoa(row.issues), numColWidth),
			padLeft(strconv.Itoa(row.errors), numColWidth),
			padLeft(strconv.Itoa(row.warnings), warnColWidth),
			padLeft(strconv.Itoa(row.infos), numColWidth),
		)
	}
}
