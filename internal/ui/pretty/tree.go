package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/tagforest/pkg/markup"
)

const (
	treeIndent = "  "
	ellipsis   = "..."
)

// FormatForest renders every run of a forest, one node per line, indented by
// run depth. Content previews are cut to fit width columns.
func (s *Styles) FormatForest(forest *markup.Forest, width int) string {
	var builder strings.Builder

	for idx := range forest.Len() {
		run := forest.Run(idx)
		indent := strings.Repeat(treeIndent, run.Depth)

		header := fmt.Sprintf("run %d  depth %d  prev %s  next %s",
			run.Index, run.Depth, runLink(run.Prev), runLink(run.Next))
		builder.WriteString(indent + s.RunHeader.Render(header) + "\n")

		for _, node := range run.Nodes {
			prefix := indent + treeIndent
			builder.WriteString(prefix + s.FormatNode(node, width-len(prefix)) + "\n")
		}
	}

	return builder.String()
}

func runLink(index int) string {
	if index == markup.NoRun {
		return "-"
	}
	return strconv.Itoa(index)
}

// FormatNode renders a single node. Content is quoted and truncated to
// width columns.
func (s *Styles) FormatNode(node markup.Node, width int) string {
	switch n := node.(type) {
	case *markup.ElementStart:
		return s.formatTag(&n.Tag, markup.TerminatorOpen)
	case *markup.ElementComplete:
		return s.formatTag(&n.Tag, markup.TerminatorSelfClosing)
	case *markup.ElementEnd:
		return s.Dim.Render("</") + s.TagName.Render(n.Name) + s.Dim.Render(">")
	case *markup.Content:
		return s.Text.Render(truncate(strconv.Quote(n.Text), width))
	default:
		return node.Kind().String()
	}
}

func (s *Styles) formatTag(tag *markup.TagDescriptor, terminator markup.Terminator) string {
	var builder strings.Builder

	builder.WriteString(s.Dim.Render("<") + s.TagName.Render(tag.Name))
	for _, attr := range tag.Attrs {
		builder.WriteString(" " + s.AttrKey.Render(attr.Key))
		if attr.HasValue {
			builder.WriteString("=" + s.AttrValue.Render(strconv.Quote(attr.Value)))
		}
	}
	builder.WriteString(s.Dim.Render(terminator.String()))

	return builder.String()
}

// truncate shortens text to at most width bytes, marking the cut with an
// ellipsis. Widths too small to hold the ellipsis leave text unchanged.
func truncate(text string, width int) string {
	if width <= len(ellipsis) || len(text) <= width {
		return text
	}
	cut := width - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + ellipsis
}
