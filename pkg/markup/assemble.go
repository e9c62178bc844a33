package markup

import (
	"errors"
	"fmt"
	"strings"
)

// RecoveryPolicy selects how an end tag that does not match the innermost
// open element is handled.
type RecoveryPolicy string

const (
	// RecoverPopUntilMatch pops open elements until one with the same name is
	// found, recording every skipped element as implicitly closed. When no
	// open element matches, the stack is left empty and the end tag is
	// reported as unmatched.
	RecoverPopUntilMatch RecoveryPolicy = "pop-until-match"

	// RecoverReject reports any end tag that does not close the innermost
	// open element as unmatched and leaves the open elements untouched.
	RecoverReject RecoveryPolicy = "reject"
)

// IsValid reports whether p is a known policy. The empty policy is valid and
// means RecoverPopUntilMatch.
func (p RecoveryPolicy) IsValid() bool {
	switch p {
	case "", RecoverPopUntilMatch, RecoverReject:
		return true
	default:
		return false
	}
}

// Options configures document assembly.
type Options struct {
	// Recovery defaults to RecoverPopUntilMatch. Policies that fail IsValid
	// are also treated as RecoverPopUntilMatch.
	Recovery RecoveryPolicy
}

// Document is the result of analyzing one buffer.
type Document struct {
	// Source is the normalized input. Every text span in Forest is a
	// substring of it.
	Source string

	Forest      *Forest
	Diagnostics []Diagnostic

	lineStarts []int
	open       []openTag
}

// Position converts a byte offset of Source to a line and column of the
// original, unnormalized input.
func (d *Document) Position(offset int) Position {
	return positionAt(d.lineStarts, offset)
}

// Line returns the text of the 1-based line n, without its terminator, or
// "" when n is out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lineStarts) {
		return ""
	}
	start := d.lineStarts[n-1]
	end := len(d.Source)
	if n < len(d.lineStarts) {
		// lineStarts[n] follows the normalized newline.
		end = d.lineStarts[n] - 1
	}
	return strings.TrimSuffix(d.Source[start:end], "\r")
}

// OpenTags returns the names of elements still open at the end of input,
// outermost first.
func (d *Document) OpenTags() []string {
	names := make([]string, 0, len(d.open))
	for _, tag := range d.open {
		names = append(names, tag.name)
	}
	return names
}

// HasIssues reports whether any diagnostic was recorded.
func (d *Document) HasIssues() bool {
	return len(d.Diagnostics) > 0
}

// HasDiagnostic reports whether a diagnostic of kind was recorded.
func (d *Document) HasDiagnostic(kind ErrorKind) bool {
	for _, diag := range d.Diagnostics {
		if diag.Kind == kind {
			return true
		}
	}
	return false
}

type openTag struct {
	name   string
	offset int
}

// Analyze parses buf with default options.
//
// Every '\n' in buf is replaced by a space in place before scanning. The
// replacement is one byte for one byte, so offsets in the result are also
// offsets into buf.
func Analyze(buf []byte) *Document {
	return AnalyzeWith(buf, Options{})
}

// AnalyzeString parses a copy of s with default options.
func AnalyzeString(s string) *Document {
	return Analyze([]byte(s))
}

// AnalyzeWith parses buf with the given options. See Analyze.
func AnalyzeWith(buf []byte, opts Options) *Document {
	lineStarts := buildLineStarts(buf)
	for idx, char := range buf {
		if char == '\n' {
			buf[idx] = ' '
		}
	}

	policy := opts.Recovery
	if policy != RecoverReject {
		policy = RecoverPopUntilMatch
	}

	asm := &assembler{
		doc:     &Document{Source: string(buf), lineStarts: lineStarts},
		policy:  policy,
		builder: newForestBuilder(),
	}
	asm.src = asm.doc.Source
	asm.parser = newElementParser(asm.src)

	asm.run()

	asm.doc.Forest = asm.builder.forest
	asm.doc.open = asm.stack
	return asm.doc
}

// assembler drives the scan and owns the open-element stack.
type assembler struct {
	doc     *Document
	src     string
	pos     int
	stack   []openTag
	policy  RecoveryPolicy
	builder *forestBuilder
	parser  *elementParser
}

func (a *assembler) run() {
	for a.pos < len(a.src) {
		before := a.pos
		a.step()
		if a.pos <= before {
			panic(fmt.Sprintf("markup: scan position stuck at offset %d", before))
		}
	}

	for _, tag := range a.stack {
		a.report(UnterminatedDocument, tag.offset, tag.name,
			fmt.Sprintf("element <%s> is never closed", tag.name))
	}
}

func (a *assembler) step() {
	start, elem, end, err := a.parser.classify(a.pos)
	if start >= len(a.src) {
		a.pos = start
		return
	}

	if err == nil {
		a.element(elem, start)
		a.pos = end
		return
	}

	if strings.HasPrefix(a.src[start:], "</") {
		if a.endTag(start) {
			return
		}
	} else {
		a.reportParseError(err)
	}

	a.content(start)
}

func (a *assembler) element(elem Element, offset int) {
	if elem.Terminator == TerminatorSelfClosing {
		a.builder.append(&ElementComplete{Tag: elem.Tag, Offset: offset})
		return
	}

	a.builder.append(&ElementStart{Tag: elem.Tag, Offset: offset})
	a.stack = append(a.stack, openTag{name: elem.Tag.Name, offset: offset})
	a.builder.moveTo(len(a.stack))
}

// endTag parses "</name>" at start. It reports false, after recording a
// diagnostic, when the end tag is malformed and must be treated as content.
func (a *assembler) endTag(start int) bool {
	nameStart := start + len("</")
	nameEnd, ok := a.parser.name(nameStart)
	if !ok {
		a.report(MalformedTag, start, "", "end tag has no name")
		return false
	}

	name := a.src[nameStart:nameEnd]
	closeIdx := skipSpace(a.src, nameEnd)
	if closeIdx >= len(a.src) || a.src[closeIdx] != '>' {
		a.report(MalformedTag, start, name,
			fmt.Sprintf("end tag </%s> must be closed by '>' and cannot carry attributes", name))
		return false
	}

	a.builder.append(&ElementEnd{Name: name, Offset: start})
	a.close(name, start)
	a.builder.moveTo(len(a.stack))
	a.pos = closeIdx + 1
	return true
}

// close pops the open-element stack for an end tag according to the policy.
func (a *assembler) close(name string, offset int) {
	if a.policy == RecoverReject {
		if top := len(a.stack) - 1; top >= 0 && a.stack[top].name == name {
			a.stack = a.stack[:top]
			return
		}
		a.report(UnmatchedEndTag, offset, name,
			fmt.Sprintf("end tag </%s> does not close the innermost open element", name))
		return
	}

	for len(a.stack) > 0 {
		top := a.stack[len(a.stack)-1]
		a.stack = a.stack[:len(a.stack)-1]
		if top.name == name {
			return
		}
		a.report(ImplicitlyClosed, top.offset, top.name,
			fmt.Sprintf("element <%s> implicitly closed by </%s>", top.name, name))
	}

	a.report(UnmatchedEndTag, offset, name,
		fmt.Sprintf("end tag </%s> has no matching open element", name))
}

// content records the text from start up to the next '<'. A '<' at start
// belongs to the text since it failed to parse as a tag.
func (a *assembler) content(start int) {
	end := len(a.src)
	if idx := strings.IndexByte(a.src[start+1:], '<'); idx >= 0 {
		end = start + 1 + idx
	}

	a.builder.append(&Content{Text: trimSpaceRight(a.src[start:end]), Offset: start})
	a.pos = end
}

func (a *assembler) reportParseError(err error) {
	var perr *ParseError
	if !errors.As(err, &perr) {
		return
	}
	a.report(perr.Kind, perr.Offset, "", perr.Message)
}

func (a *assembler) report(kind ErrorKind, offset int, tag, message string) {
	a.doc.Diagnostics = append(a.doc.Diagnostics, Diagnostic{
		Kind:     kind,
		Severity: DefaultSeverity(kind),
		Position: a.doc.Position(offset),
		Tag:      tag,
		Message:  message,
	})
}
