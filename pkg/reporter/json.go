package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/tagforest/pkg/markup"
	"github.com/yaklabco/tagforest/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	OpenTags    []string         `json:"openTags,omitempty"`
	Forest      []JSONRun        `json:"forest,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
	Tag      string `json:"tag,omitempty"`
}

// JSONRun is one run of the forest. Prev and Next are null at the ends of
// the chain.
type JSONRun struct {
	Index int        `json:"index"`
	Depth int        `json:"depth"`
	Prev  *int       `json:"prev"`
	Next  *int       `json:"next"`
	Nodes []JSONNode `json:"nodes"`
}

// JSONNode is a forest node. Tag is set for element starts and complete
// elements, Name for element ends and Text for content.
type JSONNode struct {
	Kind   string   `json:"kind"`
	Offset int      `json:"offset"`
	Tag    *JSONTag `json:"tag,omitempty"`
	Name   string   `json:"name,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// JSONTag describes a tag's name, attributes and decomposed styles.
type JSONTag struct {
	Name   string          `json:"name"`
	Attrs  []JSONAttribute `json:"attrs,omitempty"`
	Styles []JSONStyle     `json:"styles,omitempty"`
}

// JSONAttribute is a key with an optional value.
type JSONAttribute struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`
}

// JSONStyle is one property of a style attribute.
type JSONStyle struct {
	Property string  `json:"property"`
	Value    *string `json:"value,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	Nodes           int            `json:"nodes"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByKind          map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
			ByKind:     make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        r.opts.displayPath(file.Path),
			Diagnostics: make([]JSONDiagnostic, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil {
			for _, diag := range file.Result.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
					Kind:     string(diag.Kind),
					Severity: string(diag.Severity),
					Message:  diag.Message,
					Line:     diag.Line,
					Column:   diag.Column,
					Offset:   diag.Offset,
					Tag:      diag.Tag,
				})
				output.Summary.TotalIssues++
				output.Summary.BySeverity[string(diag.Severity)]++
				output.Summary.ByKind[string(diag.Kind)]++
			}

			if doc := file.Result.Document; doc != nil {
				fileResult.OpenTags = doc.OpenTags()
				if r.opts.IncludeForest {
					fileResult.Forest = encodeForest(doc.Forest)
				}
				for idx := range doc.Forest.Len() {
					output.Summary.Nodes += len(doc.Forest.Run(idx).Nodes)
				}
			}
		}

		if len(fileResult.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}

func encodeForest(forest *markup.Forest) []JSONRun {
	runs := make([]JSONRun, 0, forest.Len())
	for idx := range forest.Len() {
		run := forest.Run(idx)
		encoded := JSONRun{
			Index: run.Index,
			Depth: run.Depth,
			Prev:  runIndex(run.Prev),
			Next:  runIndex(run.Next),
			Nodes: make([]JSONNode, 0, len(run.Nodes)),
		}
		for _, node := range run.Nodes {
			encoded.Nodes = append(encoded.Nodes, encodeNode(node))
		}
		runs = append(runs, encoded)
	}
	return runs
}

func runIndex(index int) *int {
	if index == markup.NoRun {
		return nil
	}
	return &index
}

func encodeNode(node markup.Node) JSONNode {
	out := JSONNode{Kind: node.Kind().String(), Offset: node.Pos()}
	switch n := node.(type) {
	case *markup.ElementStart:
		out.Tag = encodeTag(&n.Tag)
	case *markup.ElementComplete:
		out.Tag = encodeTag(&n.Tag)
	case *markup.ElementEnd:
		out.Name = n.Name
	case *markup.Content:
		out.Text = n.Text
	}
	return out
}

func encodeTag(tag *markup.TagDescriptor) *JSONTag {
	out := &JSONTag{Name: tag.Name}
	for _, attr := range tag.Attrs {
		encoded := JSONAttribute{Key: attr.Key}
		if attr.HasValue {
			encoded.Value = &attr.Value
		}
		out.Attrs = append(out.Attrs, encoded)
	}
	for _, style := range tag.Styles {
		encoded := JSONStyle{Property: style.Property}
		if style.HasValue {
			encoded.Value = &style.Value
		}
		out.Styles = append(out.Styles, encoded)
	}
	return out
}
