package gapbuffer

import (
	"errors"
	"strings"
)

// ErrIndexOutOfRange is returned when a position lies outside the sequence.
var ErrIndexOutOfRange = errors.New("index out of range")

// minGap is the smallest gap allocated when the buffer grows.
const minGap = 64

// GapBuffer is a mutable sequence of runes with a movable gap.
//
// Runes live in data[:gapStart] and data[gapEnd:]; data[gapStart:gapEnd]
// is unused.
type GapBuffer struct {
	data     []rune
	gapStart int
	gapEnd   int
}

// New creates an empty gap buffer.
func New() *GapBuffer {
	return &GapBuffer{
		data:   make([]rune, minGap),
		gapEnd: minGap,
	}
}

// FromString creates a gap buffer holding the runes of s.
func FromString(s string) *GapBuffer {
	return FromRunes([]rune(s))
}

// FromRunes creates a gap buffer holding a copy of rs.
// The gap is placed at the end of the content.
func FromRunes(rs []rune) *GapBuffer {
	data := make([]rune, len(rs)+minGap)
	copy(data, rs)
	return &GapBuffer{
		data:     data,
		gapStart: len(rs),
		gapEnd:   len(data),
	}
}

// Len returns the number of runes in the sequence.
func (g *GapBuffer) Len() int {
	return len(g.data) - g.gapLen()
}

// IsEmpty returns true if the sequence holds no runes.
func (g *GapBuffer) IsEmpty() bool {
	return g.Len() == 0
}

func (g *GapBuffer) gapLen() int {
	return g.gapEnd - g.gapStart
}

// physical maps a logical index to its slot in data.
func (g *GapBuffer) physical(i int) int {
	if i < g.gapStart {
		return i
	}
	return i + g.gapLen()
}

// At returns the rune at index i.
// Returns false if i is out of range.
func (g *GapBuffer) At(i int) (rune, bool) {
	if i < 0 || i >= g.Len() {
		return 0, false
	}
	return g.data[g.physical(i)], true
}

// Insert inserts runes at index pos, shifting later runes right.
// pos may equal Len to append.
func (g *GapBuffer) Insert(pos int, rs ...rune) error {
	if pos < 0 || pos > g.Len() {
		return ErrIndexOutOfRange
	}
	if len(rs) == 0 {
		return nil
	}

	g.moveGap(pos)
	g.ensureGap(len(rs))
	copy(g.data[g.gapStart:], rs)
	g.gapStart += len(rs)
	return nil
}

// Remove deletes the rune at index pos and returns it.
func (g *GapBuffer) Remove(pos int) (rune, error) {
	if pos < 0 || pos >= g.Len() {
		return 0, ErrIndexOutOfRange
	}

	g.moveGap(pos)
	r := g.data[g.gapEnd]
	g.gapEnd++
	return r, nil
}

// Delete removes the runes in [start, end).
func (g *GapBuffer) Delete(start, end int) error {
	if start < 0 || start > end || end > g.Len() {
		return ErrIndexOutOfRange
	}
	if start == end {
		return nil
	}

	g.moveGap(start)
	g.gapEnd += end - start
	return nil
}

// Slice returns a copy of the runes in [start, end).
// The range is clamped to the sequence bounds.
func (g *GapBuffer) Slice(start, end int) []rune {
	n := g.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return []rune{}
	}

	out := make([]rune, 0, end-start)
	if start < g.gapStart {
		out = append(out, g.data[start:min(end, g.gapStart)]...)
	}
	if end > g.gapStart {
		from := max(start, g.gapStart) + g.gapLen()
		out = append(out, g.data[from:end+g.gapLen()]...)
	}
	return out
}

// Runes returns a copy of the entire sequence.
func (g *GapBuffer) Runes() []rune {
	return g.Slice(0, g.Len())
}

// String returns the sequence as a string.
func (g *GapBuffer) String() string {
	var sb strings.Builder
	sb.Grow(g.Len())
	for _, r := range g.data[:g.gapStart] {
		sb.WriteRune(r)
	}
	for _, r := range g.data[g.gapEnd:] {
		sb.WriteRune(r)
	}
	return sb.String()
}

// Count returns how many times r occurs in [start, end).
// The range is clamped to the sequence bounds.
func (g *GapBuffer) Count(r rune, start, end int) int {
	n := 0
	for _, c := range g.Range(start, end) {
		if c == r {
			n++
		}
	}
	return n
}

// LastIndexBefore returns the index of the last r strictly before end, or -1.
func (g *GapBuffer) LastIndexBefore(r rune, end int) int {
	for i, c := range g.Backward(end) {
		if c == r {
			return i
		}
	}
	return -1
}

// moveGap relocates the gap so that it starts at logical index pos.
func (g *GapBuffer) moveGap(pos int) {
	switch {
	case pos < g.gapStart:
		// Shift data[pos:gapStart] to the end of the gap.
		n := g.gapStart - pos
		copy(g.data[g.gapEnd-n:g.gapEnd], g.data[pos:g.gapStart])
		g.gapStart = pos
		g.gapEnd -= n
	case pos > g.gapStart:
		// Shift the runes after the gap down to close it at pos.
		n := pos - g.gapStart
		copy(g.data[g.gapStart:g.gapStart+n], g.data[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

// ensureGap grows the backing slice so the gap holds at least n runes.
func (g *GapBuffer) ensureGap(n int) {
	if g.gapLen() >= n {
		return
	}

	grow := max(n, len(g.data), minGap)
	data := make([]rune, len(g.data)+grow)
	copy(data, g.data[:g.gapStart])
	tail := len(g.data) - g.gapEnd
	copy(data[len(data)-tail:], g.data[g.gapEnd:])

	g.gapEnd = len(data) - tail
	g.data = data
}
