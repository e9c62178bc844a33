package markup

// isSpace reports whether c is ASCII whitespace: space, tab, newline,
// carriage return or form feed.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

// isBoundary reports whether c ends a tag name, attribute key or bare value.
func isBoundary(c byte) bool {
	return isSpace(c) || c == '>' || c == '=' || c == '/'
}

// scanName returns the end of the longest run of non-boundary bytes starting
// at pos. It reports false when the run would be empty.
//
// Multi-byte UTF-8 sequences never contain boundary bytes, so the run always
// ends on a rune boundary.
func scanName(src string, pos int) (int, bool) {
	end := pos
	for end < len(src) && !isBoundary(src[end]) {
		end++
	}
	return end, end > pos
}

// scanner scans names out of one source string and remembers the last run
// it scanned. Every byte of src[lo:hi] is a name byte and hi ends the run, so
// a later scan starting anywhere inside it ends at hi without rereading.
type scanner struct {
	src    string
	lo, hi int
}

func (s *scanner) name(pos int) (int, bool) {
	if pos >= s.lo && pos < s.hi {
		return s.hi, true
	}
	end, ok := scanName(s.src, pos)
	if ok {
		s.lo, s.hi = pos, end
	}
	return end, ok
}

// skipSpace returns the first offset at or after pos that is not whitespace.
func skipSpace(src string, pos int) int {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	return pos
}

// trimSpaceRight strips trailing ASCII whitespace, returning a substring of s.
func trimSpaceRight(s string) string {
	end := len(s)
	for end > 0 && isSpace(s[end-1]) {
		end--
	}
	return s[:end]
}

// trimSpace strips leading and trailing ASCII whitespace.
func trimSpace(s string) string {
	return trimSpaceRight(s[skipSpace(s, 0):])
}
