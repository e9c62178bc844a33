package markup

import (
	"errors"
	"fmt"
)

// ErrorKind classifies grammar failures and assembly diagnostics.
type ErrorKind string

// Error and diagnostic kinds.
const (
	EmptyTagName            ErrorKind = "empty-tag-name"
	MalformedTag            ErrorKind = "malformed-tag"
	UnterminatedQuotedValue ErrorKind = "unterminated-quoted-value"
	UnmatchedEndTag         ErrorKind = "unmatched-end-tag"
	ImplicitlyClosed        ErrorKind = "implicitly-closed"
	UnterminatedDocument    ErrorKind = "unterminated-document"
)

// Kinds returns every known kind in a stable order.
func Kinds() []ErrorKind {
	return []ErrorKind{
		EmptyTagName,
		MalformedTag,
		UnterminatedQuotedValue,
		UnmatchedEndTag,
		ImplicitlyClosed,
		UnterminatedDocument,
	}
}

// IsValid reports whether k is a known kind.
func (k ErrorKind) IsValid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Description returns a one-line human-readable explanation of the kind.
func (k ErrorKind) Description() string {
	switch k {
	case EmptyTagName:
		return "A '<' is not followed by a tag name"
	case MalformedTag:
		return "A tag is not terminated by '>' or '/>', or an end tag carries extra text"
	case UnterminatedQuotedValue:
		return "A quoted attribute value has no closing quote or contains an invalid escape"
	case UnmatchedEndTag:
		return "An end tag has no matching open element"
	case ImplicitlyClosed:
		return "An open element was closed by the end tag of an enclosing element"
	case UnterminatedDocument:
		return "An element is still open at the end of the input"
	default:
		return ""
	}
}

// Sentinel errors for errors.Is matching of *ParseError values.
var (
	// ErrNoMatch indicates the input does not begin with the construct being parsed.
	ErrNoMatch = errors.New("no match")

	// ErrEmptyTagName indicates a '<' with no tag name after it.
	ErrEmptyTagName = errors.New("empty tag name")

	// ErrMalformedTag indicates a tag missing its '>' or '/>' terminator.
	ErrMalformedTag = errors.New("malformed tag")

	// ErrUnterminatedQuotedValue indicates a quoted value without its closing quote.
	ErrUnterminatedQuotedValue = errors.New("unterminated quoted value")
)

// ParseError describes a grammar-level failure at a byte offset of the input.
type ParseError struct {
	Kind    ErrorKind
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

// Unwrap maps the kind to its sentinel error.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case EmptyTagName:
		return ErrEmptyTagName
	case MalformedTag:
		return ErrMalformedTag
	case UnterminatedQuotedValue:
		return ErrUnterminatedQuotedValue
	default:
		return nil
	}
}

func newParseError(kind ErrorKind, offset int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Message: fmt.Sprintf(format, args...)}
}
