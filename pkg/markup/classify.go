package markup

// classify skips whitespace at pos and attempts to parse an element there.
// It returns the offset the attempt started from, the element, and the
// offset after it. Repeating an attempt at the same position always yields
// the same result.
func classify(src string, pos int) (int, Element, int, error) {
	return newElementParser(src).classify(pos)
}

func (p *elementParser) classify(pos int) (int, Element, int, error) {
	start := skipSpace(p.src, pos)
	elem, end, err := p.parse(start)
	return start, elem, end, err
}
