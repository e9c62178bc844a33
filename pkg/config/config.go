// Package config defines core configuration types for tagforest.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// Severity represents the severity level of a reported diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is known.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// DiagnosticConfig overrides how one diagnostic kind is reported.
type DiagnosticConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty"`
}

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatTree    OutputFormat = "tree"
	FormatSummary OutputFormat = "summary"
)

// Config is the root configuration structure for tagforest.
type Config struct {
	// Extensions lists the file extensions analyzed when walking directories.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// Recovery selects how mismatched end tags are handled
	// ("pop-until-match" or "reject").
	Recovery string `yaml:"recovery"`

	// Diagnostics contains per-kind overrides keyed by diagnostic kind.
	Diagnostics map[string]DiagnosticConfig `yaml:"diagnostics"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict makes warnings fail the run.
	Strict bool `yaml:"-"`
}

// DefaultExtensions returns the extensions analyzed by default.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Extensions:  DefaultExtensions(),
		Recovery:    "pop-until-match",
		Diagnostics: make(map[string]DiagnosticConfig),
		Format:      FormatText,
		Jobs:        0, // 0 means use GOMAXPROCS
	}
}

// Resolve applies the override for kind, if any, to a default severity.
// It reports false when the kind is disabled.
func (c *Config) Resolve(kind string, def Severity) (Severity, bool) {
	if c == nil {
		return def, true
	}

	override, ok := c.Diagnostics[kind]
	if !ok {
		return def, true
	}
	if override.Enabled != nil && !*override.Enabled {
		return def, false
	}
	if override.Severity != nil {
		return Severity(*override.Severity), true
	}
	return def, true
}
