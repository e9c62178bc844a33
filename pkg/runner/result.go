package runner

import (
	"github.com/yaklabco/tagforest/pkg/config"
	"github.com/yaklabco/tagforest/pkg/fsutil"
	"github.com/yaklabco/tagforest/pkg/markup"
)

// Diagnostic is a markup diagnostic with its configured severity applied.
type Diagnostic struct {
	Kind     markup.ErrorKind
	Severity config.Severity
	Line     int
	Column   int
	Offset   int
	Tag      string
	Message  string
}

// FileResult is the analysis of one file.
type FileResult struct {
	Info        *fsutil.FileInfo
	Document    *markup.Document
	Diagnostics []Diagnostic
}

// FileOutcome wraps a FileResult with its path.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file could not be read.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int

	// Nodes is the total number of forest nodes across all files.
	Nodes int

	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int

	// DiagnosticsByKind maps diagnostic kinds to counts.
	DiagnosticsByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any diagnostic with error severity occurred
// or any file could not be read.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0 || r.Stats.FilesErrored > 0
}

// HasWarnings reports whether any diagnostic with warning severity occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		DiagnosticsByKind:     make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if doc := outcome.Result.Document; doc != nil {
		for idx := range doc.Forest.Runs {
			r.Stats.Nodes += len(doc.Forest.Runs[idx].Nodes)
		}
	}

	diags := outcome.Result.Diagnostics
	r.Stats.DiagnosticsTotal += len(diags)
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range diags {
		r.Stats.DiagnosticsBySeverity[string(diag.Severity)]++
		r.Stats.DiagnosticsByKind[string(diag.Kind)]++
	}
}
