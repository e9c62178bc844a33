package markup

import "sort"

// Position is a 1-based line and column for a byte offset. Column counts
// bytes, not runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// buildLineStarts records the offset of the first byte of every line.
// It must run before newline normalization.
func buildLineStarts(content []byte) []int {
	starts := []int{0}
	for idx, char := range content {
		if char == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return starts
}

func positionAt(lineStarts []int, offset int) Position {
	if offset < 0 || len(lineStarts) == 0 {
		return Position{Offset: offset}
	}

	// Index of the first line that starts after offset.
	lineIdx := sort.Search(len(lineStarts), func(i int) bool {
		return lineStarts[i] > offset
	}) - 1

	return Position{
		Offset: offset,
		Line:   lineIdx + 1,
		Column: offset - lineStarts[lineIdx] + 1,
	}
}
