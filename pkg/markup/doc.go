// Package markup tokenizes and parses an HTML-like markup subset into a
// forest of tag, attribute and content nodes.
//
// The grammar is deliberately small: elements with bare or quoted attribute
// values, self-closing tags, end tags and literal text. Entities, comments,
// DOCTYPE and raw-text elements are not recognized. Every text span in the
// result is a substring of the normalized source held by the Document, so
// parsing never copies element names, attribute keys or content.
//
// Malformed input never aborts a parse. Grammar failures are returned as
// *ParseError values to the caller of the single-tag entry points, and are
// recorded as Diagnostic values when they occur during document assembly.
package markup
