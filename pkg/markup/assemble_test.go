package markup_test

import (
	"math"
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tagforest/pkg/markup"
)

func kinds(diags []markup.Diagnostic) []markup.ErrorKind {
	out := make([]markup.ErrorKind, 0, len(diags))
	for _, diag := range diags {
		out = append(out, diag.Kind)
	}
	return out
}

func TestAnalyze_NestedForest(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString(`<div class="a">hello <b>world</b><br/></div>`)

	want := &markup.Forest{Runs: []markup.Run{
		{Index: 0, Depth: 0, Prev: markup.NoRun, Next: 1, Nodes: []markup.Node{
			&markup.ElementStart{Offset: 0, Tag: markup.TagDescriptor{
				Name:  "div",
				Attrs: []markup.Attribute{{Key: "class", Value: "a", HasValue: true, Offset: 5}},
			}},
		}},
		{Index: 1, Depth: 1, Prev: 0, Next: 2, Nodes: []markup.Node{
			&markup.Content{Text: "hello", Offset: 15},
			&markup.ElementStart{Offset: 21, Tag: markup.TagDescriptor{Name: "b"}},
		}},
		{Index: 2, Depth: 2, Prev: 1, Next: 3, Nodes: []markup.Node{
			&markup.Content{Text: "world", Offset: 24},
			&markup.ElementEnd{Name: "b", Offset: 29},
		}},
		{Index: 3, Depth: 1, Prev: 2, Next: markup.NoRun, Nodes: []markup.Node{
			&markup.ElementComplete{Offset: 33, Tag: markup.TagDescriptor{Name: "br"}},
			&markup.ElementEnd{Name: "div", Offset: 38},
		}},
	}}

	if diff := cmp.Diff(want, doc.Forest); diff != "" {
		t.Errorf("forest mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, doc.HasIssues())
	assert.Empty(t, doc.OpenTags())
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\n\n\t"} {
		doc := markup.AnalyzeString(input)
		assert.Equal(t, 0, doc.Forest.Len(), "input %q", input)
		assert.Nil(t, doc.Forest.First())
		assert.Empty(t, doc.Diagnostics)
	}
}

func TestAnalyze_NormalizesNewlinesInPlace(t *testing.T) {
	t.Parallel()

	buf := []byte("<p>\nfirst\nsecond</p>\n")
	doc := markup.Analyze(buf)

	assert.Equal(t, "<p> first second</p> ", string(buf))
	assert.Equal(t, string(buf), doc.Source)

	first := doc.Forest.Run(1)
	require.NotNil(t, first)
	content, ok := first.Nodes[0].(*markup.Content)
	require.True(t, ok)
	assert.Equal(t, "first second", content.Text)

	pos := doc.Position(content.Offset)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestAnalyze_SpansShareSource(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString(`<a href="x">link text</a>`)
	base := uintptr(unsafe.Pointer(unsafe.StringData(doc.Source)))
	limit := base + uintptr(len(doc.Source))

	inSource := func(s string) bool {
		ptr := uintptr(unsafe.Pointer(unsafe.StringData(s)))
		return ptr >= base && ptr < limit
	}

	err := doc.Forest.Walk(func(_ *markup.Run, node markup.Node) error {
		switch n := node.(type) {
		case *markup.ElementStart:
			assert.True(t, inSource(n.Tag.Name))
			for _, attr := range n.Tag.Attrs {
				assert.True(t, inSource(attr.Key))
				assert.True(t, inSource(attr.Value))
			}
		case *markup.ElementEnd:
			assert.True(t, inSource(n.Name))
		case *markup.Content:
			assert.True(t, inSource(n.Text))
		}
		return nil
	})
	require.NoError(t, err)
}

func TestAnalyze_PopUntilMatch(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString("<div><span></div>")

	require.Equal(t, []markup.ErrorKind{markup.ImplicitlyClosed}, kinds(doc.Diagnostics))
	assert.True(t, doc.HasIssues())
	diag := doc.Diagnostics[0]
	assert.Equal(t, "span", diag.Tag)
	assert.Equal(t, markup.SeverityInfo, diag.Severity)
	assert.Equal(t, 6, diag.Position.Column)
	assert.Empty(t, doc.OpenTags())

	last := doc.Forest.Last()
	require.NotNil(t, last)
	assert.Equal(t, 2, last.Depth)
	end, ok := last.Nodes[0].(*markup.ElementEnd)
	require.True(t, ok)
	assert.Equal(t, "div", end.Name)
}

func TestAnalyze_UnterminatedDocument(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString("<div><span>text</span>")

	assert.Equal(t, []string{"div"}, doc.OpenTags())
	require.Equal(t, []markup.ErrorKind{markup.UnterminatedDocument}, kinds(doc.Diagnostics))
	assert.Equal(t, "div", doc.Diagnostics[0].Tag)
	assert.Equal(t, markup.SeverityWarning, doc.Diagnostics[0].Severity)
	assert.True(t, doc.HasDiagnostic(markup.UnterminatedDocument))
	assert.False(t, doc.HasDiagnostic(markup.UnmatchedEndTag))

	// The partial forest is still returned.
	assert.Equal(t, 1, doc.Forest.Count(markup.NodeContent))
	assert.Equal(t, 2, doc.Forest.Count(markup.NodeElementStart))
	assert.Equal(t, 1, doc.Forest.Count(markup.NodeElementEnd))
}

func TestAnalyze_UnmatchedEndTagEmptiesStack(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString("<p>a</q>b")

	assert.Equal(t, []markup.ErrorKind{markup.ImplicitlyClosed, markup.UnmatchedEndTag},
		kinds(doc.Diagnostics))
	assert.Empty(t, doc.OpenTags())

	last := doc.Forest.Last()
	require.NotNil(t, last)
	assert.Equal(t, 0, last.Depth)
	assert.Equal(t, "b", last.Nodes[0].(*markup.Content).Text)
}

func TestAnalyze_EndTagOnEmptyStack(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString("</p>")

	assert.Equal(t, []markup.ErrorKind{markup.UnmatchedEndTag}, kinds(doc.Diagnostics))
	assert.Equal(t, 1, doc.Forest.Count(markup.NodeElementEnd))
}

func TestAnalyze_EndTagIsCaseSensitive(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString("<DIV></div>")

	assert.Equal(t, []markup.ErrorKind{markup.ImplicitlyClosed, markup.UnmatchedEndTag},
		kinds(doc.Diagnostics))
}

func TestAnalyzeWith_Reject(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeWith([]byte("<div><span></div>"), markup.Options{Recovery: markup.RecoverReject})

	assert.Equal(t, []markup.ErrorKind{
		markup.UnmatchedEndTag,
		markup.UnterminatedDocument,
		markup.UnterminatedDocument,
	}, kinds(doc.Diagnostics))
	assert.Equal(t, []string{"div", "span"}, doc.OpenTags())
}

func TestAnalyzeWith_RejectMatchingTop(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeWith([]byte("<a><b></b></a>"), markup.Options{Recovery: markup.RecoverReject})

	assert.Empty(t, doc.Diagnostics)
	assert.Empty(t, doc.OpenTags())
}

func TestAnalyze_SelfClosingDoesNotNest(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString("<br/><hr />text")

	require.Equal(t, 1, doc.Forest.Len())
	run := doc.Forest.First()
	assert.Equal(t, 0, run.Depth)
	require.Len(t, run.Nodes, 3)
	assert.Equal(t, markup.NodeElementComplete, run.Nodes[0].Kind())
	assert.Equal(t, markup.NodeElementComplete, run.Nodes[1].Kind())
	assert.Equal(t, markup.NodeContent, run.Nodes[2].Kind())
	assert.Empty(t, doc.OpenTags())
}

func TestAnalyze_MalformedFallsBackToContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contents []string
		kinds    []markup.ErrorKind
	}{
		{
			name:     "bare lt in text",
			input:    "a < b",
			contents: []string{"a", "< b"},
			kinds:    []markup.ErrorKind{markup.EmptyTagName},
		},
		{
			name:     "lone lt",
			input:    "<",
			contents: []string{"<"},
			kinds:    []markup.ErrorKind{markup.EmptyTagName},
		},
		{
			name:     "unterminated tag",
			input:    "<div id=1",
			contents: []string{"<div id=1"},
			kinds:    []markup.ErrorKind{markup.MalformedTag},
		},
		{
			name:     "unterminated quote",
			input:    `<a title="x>y`,
			contents: []string{`<a title="x>y`},
			kinds:    []markup.ErrorKind{markup.UnterminatedQuotedValue},
		},
		{
			name:     "end tag with attributes",
			input:    "</div x>",
			contents: []string{"</div x>"},
			kinds:    []markup.ErrorKind{markup.MalformedTag},
		},
		{
			name:     "end tag without name",
			input:    "</>",
			contents: []string{"</>"},
			kinds:    []markup.ErrorKind{markup.MalformedTag},
		},
		{
			name:     "repeated lt",
			input:    "<<",
			contents: []string{"<", "<"},
			kinds:    []markup.ErrorKind{markup.MalformedTag, markup.EmptyTagName},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := markup.AnalyzeString(testCase.input)

			var contents []string
			err := doc.Forest.Walk(func(_ *markup.Run, node markup.Node) error {
				if content, ok := node.(*markup.Content); ok {
					contents = append(contents, content.Text)
				}
				return nil
			})
			require.NoError(t, err)

			assert.Equal(t, testCase.contents, contents)
			assert.Equal(t, testCase.kinds, kinds(doc.Diagnostics))
		})
	}
}

func TestAnalyze_EndTagAllowsTrailingSpace(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString("<p>x</p  >")

	assert.Empty(t, doc.Diagnostics)
	assert.Equal(t, 1, doc.Forest.Count(markup.NodeElementEnd))
}

func TestAnalyze_Terminates(t *testing.T) {
	t.Parallel()

	inputs := []string{
		strings.Repeat("<", 500),
		strings.Repeat("=", 500),
		strings.Repeat(`"`, 500),
		strings.Repeat("</", 250),
		strings.Repeat("<a b='", 100),
		strings.Repeat("<a/", 100),
		"<a b=\"\\",
		"< / > = ' \"",
	}

	for _, input := range inputs {
		doc := markup.AnalyzeString(input)
		require.NotNil(t, doc)
		assert.LessOrEqual(t, doc.Forest.Count(markup.NodeContent), len(input))
	}
}

// Runs alone so that timings are not skewed by parallel tests.
func TestAnalyze_ScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	inputs := map[string]func(n int) string{
		"unterminated attributes": func(n int) string { return strings.Repeat("<a ", n) },
		"bare angles":             func(n int) string { return strings.Repeat("<", 3*n) },
		"long key":                func(n int) string { return " <a " + strings.Repeat("<", 3*n) },
		"alternating quotes":      func(n int) string { return strings.Repeat("<a x=' ", n) },
		"quoted angles":           func(n int) string { return `<a x="` + strings.Repeat("<b y ", n) },
	}

	elapsed := func(input string) time.Duration {
		best := time.Duration(math.MaxInt64)
		for range 3 {
			start := time.Now()
			markup.AnalyzeString(input)
			best = min(best, time.Since(start))
		}
		return best
	}

	const base = 2000
	for name, build := range inputs {
		small := elapsed(build(base))
		large := elapsed(build(8 * base))
		assert.Less(t, large, 32*small+50*time.Millisecond,
			"%s: %v for %d units, %v for %d units", name, small, base, large, 8*base)
	}
}

func TestAnalyzeWith_UnknownPolicyPopsUntilMatch(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeWith([]byte("<div><span></div>"), markup.Options{Recovery: "sometimes"})

	assert.Equal(t, []markup.ErrorKind{markup.ImplicitlyClosed}, kinds(doc.Diagnostics))
	assert.Empty(t, doc.OpenTags())
}

func TestDocument_Line(t *testing.T) {
	t.Parallel()

	doc := markup.AnalyzeString("<p>\r\n  one\ntwo</p>\n")

	assert.Equal(t, "<p>", doc.Line(1))
	assert.Equal(t, "  one", doc.Line(2))
	assert.Equal(t, "two</p>", doc.Line(3))
	assert.Empty(t, doc.Line(4))
	assert.Empty(t, doc.Line(0))
	assert.Empty(t, doc.Line(5))
}
