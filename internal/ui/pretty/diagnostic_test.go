package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tagforest/internal/ui/pretty"
	"github.com/yaklabco/tagforest/pkg/config"
	"github.com/yaklabco/tagforest/pkg/markup"
	"github.com/yaklabco/tagforest/pkg/runner"
)

func TestFormatDiagnostic_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &runner.Diagnostic{
		Kind:     markup.UnmatchedEndTag,
		Severity: config.SeverityWarning,
		Line:     3,
		Column:   7,
		Tag:      "span",
		Message:  "end tag does not match any open element",
	}

	result := styles.FormatDiagnostic("index.html", diag, false, "")

	assert.Equal(t,
		"  index.html:3:7  warning  end tag does not match any open element <span>  (unmatched-end-tag)\n",
		result)
}

func TestFormatDiagnostic_NoTag(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &runner.Diagnostic{
		Kind:     markup.MalformedTag,
		Severity: config.SeverityError,
		Line:     1,
		Column:   1,
		Message:  "bad tag",
	}

	result := styles.FormatDiagnostic("a.html", diag, false, "")
	assert.NotContains(t, result, "<")
	assert.Contains(t, result, "error")
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &runner.Diagnostic{
		Kind:     markup.UnterminatedQuotedValue,
		Severity: config.SeverityWarning,
		Line:     1,
		Column:   4,
		Message:  "unterminated quoted value",
	}

	result := styles.FormatDiagnostic("a.html", diag, true, `<a href="x>`)
	lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, `        <a href="x>`, lines[1])
	assert.Equal(t, "           ^", lines[2])
}

func TestFormatSeverity(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "custom", styles.FormatSeverity(config.Severity("custom")))
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.html", styles.FormatFileHeader("a.html", 0))
	assert.Equal(t, "a.html (1 issue)", styles.FormatFileHeader("a.html", 1))
	assert.Equal(t, "a.html (4 issues)", styles.FormatFileHeader("a.html", 4))
}
