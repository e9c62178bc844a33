package config

import (
	"bytes"
	"fmt"
	"strings"
)

// KindInfo describes a diagnostic kind for template generation.
type KindInfo struct {
	Kind        string
	Description string
	Severity    Severity
}

// GenerateTemplate creates a commented configuration file listing every
// diagnostic kind with its default severity.
func GenerateTemplate(kinds []KindInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString("# tagforest configuration\n")
	buf.WriteString("# Place this file at .tagforest.yml in your project root.\n\n")

	buf.WriteString("# File extensions analyzed when walking directories.\n")
	buf.WriteString("extensions:\n")
	for _, ext := range DefaultExtensions() {
		fmt.Fprintf(&buf, "  - %q\n", ext)
	}
	buf.WriteByte('\n')

	buf.WriteString("# Glob patterns excluded from discovery.\n")
	buf.WriteString("ignore: []\n\n")

	buf.WriteString("# How end tags that do not close the innermost element are handled:\n")
	buf.WriteString("# pop-until-match closes intervening elements, reject leaves them open.\n")
	buf.WriteString("recovery: pop-until-match\n\n")

	buf.WriteString("# Per-kind overrides. Set enabled: false to drop a kind,\n")
	buf.WriteString("# or severity: error|warning|info to change how it is reported.\n")
	buf.WriteString("diagnostics:\n")
	for _, info := range kinds {
		fmt.Fprintf(&buf, "  # %s\n", strings.TrimSuffix(info.Description, "."))
		fmt.Fprintf(&buf, "  %s:\n", info.Kind)
		fmt.Fprintf(&buf, "    enabled: true\n")
		fmt.Fprintf(&buf, "    severity: %s\n", info.Severity)
	}

	return buf.Bytes()
}
