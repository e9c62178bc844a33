package markup

import (
	"errors"
	"slices"
)

// Terminator records how a start tag was closed.
type Terminator uint8

const (
	// TerminatorOpen is a plain '>' that opens an element.
	TerminatorOpen Terminator = iota

	// TerminatorSelfClosing is '/>' and produces a complete element.
	TerminatorSelfClosing
)

func (t Terminator) String() string {
	if t == TerminatorSelfClosing {
		return "/>"
	}
	return ">"
}

// StyleProperty is one "property: value" declaration taken from a style
// attribute. Values are raw text and are never validated.
type StyleProperty struct {
	Property string
	Value    string
	HasValue bool
}

// TagDescriptor describes a start or self-closing tag. Attributes keep their
// source order and duplicates are preserved.
type TagDescriptor struct {
	Name   string
	Attrs  []Attribute
	Styles []StyleProperty
}

// Attr returns the first attribute with the given key.
func (t *TagDescriptor) Attr(key string) (Attribute, bool) {
	for _, attr := range t.Attrs {
		if attr.Key == key {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Style returns the first style declaration for the given property.
func (t *TagDescriptor) Style(property string) (StyleProperty, bool) {
	for _, style := range t.Styles {
		if style.Property == property {
			return style, true
		}
	}
	return StyleProperty{}, false
}

// Element is the result of parsing one tag.
type Element struct {
	Tag        TagDescriptor
	Terminator Terminator
}

const unterminatedTagFormat = "tag <%s> is not terminated by '>' or '/>'"

// parseElement parses "<name attr* (/>|>)" starting at pos.
func parseElement(src string, pos int) (Element, int, error) {
	return newElementParser(src).parse(pos)
}

// failedAttrs records an attribute list that ended in a failure. The
// attribute list parsed from any of its offsets is the same list from then
// on, so a later tag resuming at one of them fails with the same error.
type failedAttrs struct {
	offsets []int // ascending
	err     ParseError
}

// errorFor returns the failure as seen from a tag named name.
func (f *failedAttrs) errorFor(name string) *ParseError {
	if f.err.Kind == MalformedTag {
		return newParseError(MalformedTag, f.err.Offset, unterminatedTagFormat, name)
	}
	err := f.err
	return &err
}

// elementParser parses tags out of one source string. It is meant to be
// called at ascending positions, as the assembler does, and remembers failed
// attribute lists so that input like "<a <a <a ..." is read once rather
// than once per '<'.
type elementParser struct {
	scanner

	attrs   []Attribute
	offsets []int
	failed  []failedAttrs
}

func newElementParser(src string) *elementParser {
	return &elementParser{scanner: scanner{src: src}}
}

func (p *elementParser) parse(pos int) (Element, int, error) {
	src := p.src
	if pos >= len(src) || src[pos] != '<' {
		return Element{}, pos, ErrNoMatch
	}

	nameEnd, ok := p.name(pos + 1)
	if !ok {
		return Element{}, pos, newParseError(EmptyTagName, pos+1, "expected a tag name after '<'")
	}
	name := src[pos+1 : nameEnd]

	p.forget(pos)
	p.attrs = p.attrs[:0]
	p.offsets = p.offsets[:0]

	cur := nameEnd
	for {
		if known := p.lookup(cur); known != nil {
			err := known.errorFor(name)
			p.remember(known.err)
			return Element{}, pos, err
		}
		p.offsets = append(p.offsets, cur)

		attr, next, err := p.attribute(cur)
		if errors.Is(err, ErrNoMatch) {
			break
		}
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				p.remember(*perr)
			}
			return Element{}, pos, err
		}
		p.attrs = append(p.attrs, attr)
		cur = next
	}

	cur = skipSpace(src, cur)
	elem := Element{Tag: TagDescriptor{Name: name}}
	switch {
	case cur+1 < len(src) && src[cur] == '/' && src[cur+1] == '>':
		elem.Terminator = TerminatorSelfClosing
		cur += 2
	case cur < len(src) && src[cur] == '>':
		elem.Terminator = TerminatorOpen
		cur++
	default:
		err := newParseError(MalformedTag, cur, unterminatedTagFormat, name)
		p.remember(*err)
		return Element{}, pos, err
	}

	if len(p.attrs) > 0 {
		elem.Tag.Attrs = slices.Clone(p.attrs)
	}
	elem.Tag.Styles = decomposeStyles(elem.Tag.Attrs)

	return elem, cur, nil
}

// remember records the offsets of the current attempt as failing with err.
func (p *elementParser) remember(err ParseError) {
	if len(p.offsets) == 0 {
		return
	}
	p.failed = append(p.failed, failedAttrs{offsets: slices.Clone(p.offsets), err: err})
}

// lookup returns the failed list passing through offset, newest first.
func (p *elementParser) lookup(offset int) *failedAttrs {
	for idx := len(p.failed) - 1; idx >= 0; idx-- {
		if _, found := slices.BinarySearch(p.failed[idx].offsets, offset); found {
			return &p.failed[idx]
		}
	}
	return nil
}

// forget drops failed lists that end before pos; no later attempt can
// reach them.
func (p *elementParser) forget(pos int) {
	p.failed = slices.DeleteFunc(p.failed, func(f failedAttrs) bool {
		return f.offsets[len(f.offsets)-1] < pos
	})
}

// ParseElement parses a single tag from the start of input and returns it
// together with the unconsumed remainder of input.
func ParseElement(input string) (Element, string, error) {
	elem, end, err := parseElement(input, 0)
	if err != nil {
		return Element{}, input, err
	}
	return elem, input[end:], nil
}
