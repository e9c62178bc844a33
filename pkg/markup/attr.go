package markup

import "errors"

// Attribute is one key[=value] pair of a tag. HasValue distinguishes a
// key-only attribute such as "disabled" from an explicitly empty value.
type Attribute struct {
	Key      string
	Value    string
	HasValue bool

	// Offset is the byte offset of Key in the parsed input.
	Offset int
}

// parseAttribute parses one attribute at pos. At least one whitespace byte
// must separate it from whatever precedes it. On ErrNoMatch nothing is
// consumed, which ends the attribute list of the enclosing element.
func parseAttribute(src string, pos int) (Attribute, int, error) {
	return (&scanner{src: src}).attribute(pos)
}

func (s *scanner) attribute(pos int) (Attribute, int, error) {
	src := s.src
	keyStart := skipSpace(src, pos)
	if keyStart == pos {
		return Attribute{}, pos, ErrNoMatch
	}

	keyEnd, ok := s.name(keyStart)
	if !ok {
		return Attribute{}, pos, ErrNoMatch
	}

	attr := Attribute{Key: src[keyStart:keyEnd], Offset: keyStart}

	value, end, err := s.value(keyEnd)
	switch {
	case err == nil:
		attr.Value = value
		attr.HasValue = true
		return attr, end, nil
	case errors.Is(err, ErrNoMatch):
		return attr, keyEnd, nil
	default:
		return Attribute{}, pos, err
	}
}

// ParseAttribute parses a single attribute, including its leading
// whitespace, from the start of input. It returns the attribute and the
// unconsumed remainder of input.
func ParseAttribute(input string) (Attribute, string, error) {
	attr, end, err := parseAttribute(input, 0)
	if err != nil {
		return Attribute{}, input, err
	}
	return attr, input[end:], nil
}
