package buffer

import "slices"

// Line is a cached view of one line of text.
type Line struct {
	// Data holds the runes of the line without its terminating newline.
	Data []rune
	// Num is the zero-based index of the line in the buffer.
	Num int
}

// Len returns the length of the line in runes.
func (l Line) Len() int {
	return len(l.Data)
}

// String returns the line content.
func (l Line) String() string {
	return string(l.Data)
}

// IsEmpty returns true if the line has no content.
func (l Line) IsEmpty() bool {
	return len(l.Data) == 0
}

func (l Line) clone() Line {
	return Line{Data: slices.Clone(l.Data), Num: l.Num}
}

// splitRunes splits data at offset into fresh prefix and suffix slices.
func splitRunes(data []rune, offset int) (prefix, suffix []rune) {
	prefix = slices.Clone(data[:offset])
	suffix = slices.Clone(data[offset:])
	return prefix, suffix
}
