package buffer

import "slices"

// lineIndex records the offset at which each line starts.
//
// starts[0] is always 0 and starts[i] is one past the i-th newline, so the
// slice is strictly increasing and has one entry per line. Lookups are
// binary searches; edits adjust the entries after the edited line.
type lineIndex struct {
	starts []int
}

func newLineIndex() lineIndex {
	return lineIndex{starts: []int{0}}
}

// computeLineIndex builds an index by scanning runes.
func computeLineIndex(text []rune) lineIndex {
	idx := newLineIndex()
	for i, r := range text {
		if r == '\n' {
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

// count returns the number of lines.
func (idx *lineIndex) count() int {
	return len(idx.starts)
}

// start returns the offset of the first rune of line.
// Returns -1 if the line does not exist.
func (idx *lineIndex) start(line int) int {
	if line < 0 || line >= len(idx.starts) {
		return -1
	}
	return idx.starts[line]
}

// lineOf returns the line containing offset, i.e. the number of newlines
// before it. Offsets past the last line start resolve to the last line.
func (idx *lineIndex) lineOf(offset int) int {
	i, found := slices.BinarySearch(idx.starts, offset)
	if found {
		return i
	}
	return i - 1
}

// shiftAfter adds delta to the start of every line after line.
func (idx *lineIndex) shiftAfter(line, delta int) {
	for i := line + 1; i < len(idx.starts); i++ {
		idx.starts[i] += delta
	}
}

// insertBreak records a newline inserted at offset pos inside line.
func (idx *lineIndex) insertBreak(line, pos int) {
	idx.shiftAfter(line, 1)
	idx.starts = slices.Insert(idx.starts, line+1, pos+1)
}

// removeBreak records that the newline ending line was removed together
// with extra runes that followed it.
func (idx *lineIndex) removeBreak(line, extra int) {
	idx.starts = slices.Delete(idx.starts, line+1, line+2)
	idx.shiftAfter(line, -(1 + extra))
}

func (idx *lineIndex) equal(other lineIndex) bool {
	return slices.Equal(idx.starts, other.starts)
}
