package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/yaklabco/tagforest/internal/logging"
	"github.com/yaklabco/tagforest/pkg/config"
	"github.com/yaklabco/tagforest/pkg/fsutil"
	"github.com/yaklabco/tagforest/pkg/markup"
)

// Analyzer parses single files and applies the configured diagnostic overrides.
type Analyzer struct {
	// Config supplies the recovery policy and per-kind overrides. May be nil.
	Config *config.Config

	// MaxFileSize limits file size; zero means fsutil.DefaultMaxSize.
	MaxFileSize int64
}

// NewAnalyzer creates an Analyzer for cfg.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{Config: cfg}
}

// AnalyzeFile reads and parses one file.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileResult, error) {
	content, info, err := fsutil.ReadSource(ctx, path, a.MaxFileSize)
	if err != nil {
		return nil, err
	}

	result := a.AnalyzeBytes(content)
	result.Info = info

	logging.FromContext(ctx).Debug("analyzed file",
		logging.FieldPath, path,
		logging.FieldRuns, result.Document.Forest.Len(),
		logging.FieldDiagnosticsTotal, len(result.Diagnostics),
	)

	return result, nil
}

// AnalyzeBytes parses content, which is normalized in place.
func (a *Analyzer) AnalyzeBytes(content []byte) *FileResult {
	opts := markup.Options{}
	if a.Config != nil {
		opts.Recovery = markup.RecoveryPolicy(a.Config.Recovery)
	}

	doc := markup.AnalyzeWith(content, opts)

	return &FileResult{
		Document:    doc,
		Diagnostics: a.resolve(doc.Diagnostics),
	}
}

func (a *Analyzer) resolve(diags []markup.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, diag := range diags {
		severity, enabled := a.Config.Resolve(string(diag.Kind), config.Severity(diag.Severity))
		if !enabled {
			continue
		}
		out = append(out, Diagnostic{
			Kind:     diag.Kind,
			Severity: severity,
			Line:     diag.Position.Line,
			Column:   diag.Position.Column,
			Offset:   diag.Position.Offset,
			Tag:      diag.Tag,
			Message:  diag.Message,
		})
	}
	return out
}

// Runner orchestrates multi-file analysis.
type Runner struct {
	Analyzer *Analyzer
}

// New creates a new Runner with the given analyzer.
func New(analyzer *Analyzer) *Runner {
	return &Runner{Analyzer: analyzer}
}

// Run discovers files under opts.Paths and analyzes them concurrently.
// Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logging.FromContext(ctx).Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// RunReader analyzes a single stream, such as standard input, under the given
// display name.
func (r *Runner) RunReader(ctx context.Context, name string, rd io.Reader) (*Result, error) {
	limit := r.Analyzer.MaxFileSize
	if limit <= 0 {
		limit = fsutil.DefaultMaxSize
	}

	content, err := io.ReadAll(io.LimitReader(rd, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("read %s: %w", name, fsutil.ErrTooLarge)
	}

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = 1

	fr := r.Analyzer.AnalyzeBytes(content)
	fr.Info = &fsutil.FileInfo{Path: name, Size: int64(len(content))}
	result.accumulate(FileOutcome{Path: name, Result: fr})

	logging.FromContext(ctx).Debug("analyzed stream",
		logging.FieldPath, name,
		logging.FieldRuns, fr.Document.Forest.Len(),
		logging.FieldDiagnosticsTotal, len(fr.Diagnostics),
	)

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}

		fr, err := r.Analyzer.AnalyzeFile(ctx, path)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = fr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
