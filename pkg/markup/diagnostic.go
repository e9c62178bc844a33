package markup

// Severity ranks diagnostics. It uses the same strings as the configuration
// package so reports can override it per kind.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultSeverity returns the severity a diagnostic of kind is recorded with.
func DefaultSeverity(kind ErrorKind) Severity {
	if kind == ImplicitlyClosed {
		return SeverityInfo
	}
	return SeverityWarning
}

// Diagnostic is a non-fatal issue found while assembling a document.
type Diagnostic struct {
	Kind     ErrorKind
	Severity Severity
	Position Position

	// Tag is the element name involved, if any.
	Tag string

	Message string
}
