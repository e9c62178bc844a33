package markup

// parseValue parses the "= value" part of an attribute starting at pos, which
// is the offset immediately after the attribute key.
//
// A missing '=' or an empty bare value yields ErrNoMatch. Quoted values run up
// to the next unescaped matching quote; the returned span keeps escape
// markers verbatim. An escape is a backslash followed by the opening quote
// character or by another backslash; any other backslash sequence and a
// missing closing quote both fail with UnterminatedQuotedValue.
func parseValue(src string, pos int) (string, int, error) {
	return (&scanner{src: src}).value(pos)
}

func (s *scanner) value(pos int) (string, int, error) {
	src := s.src
	cur := skipSpace(src, pos)
	if cur >= len(src) || src[cur] != '=' {
		return "", pos, ErrNoMatch
	}
	cur = skipSpace(src, cur+1)
	if cur >= len(src) {
		return "", pos, ErrNoMatch
	}

	quote := src[cur]
	if quote != '"' && quote != '\'' {
		end, ok := s.name(cur)
		if !ok {
			return "", pos, ErrNoMatch
		}
		return src[cur:end], end, nil
	}

	start := cur + 1
	for idx := start; idx < len(src); idx++ {
		switch src[idx] {
		case quote:
			return src[start:idx], idx + 1, nil
		case '\\':
			if idx+1 < len(src) && (src[idx+1] == quote || src[idx+1] == '\\') {
				idx++
				continue
			}
			return "", pos, newParseError(UnterminatedQuotedValue, idx,
				"invalid escape sequence in quoted value")
		}
	}

	return "", pos, newParseError(UnterminatedQuotedValue, cur,
		"quoted value starting with %c is never closed", quote)
}
