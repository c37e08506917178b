package gapbuffer

import "iter"

// All returns an iterator over (index, rune) pairs from the start.
func (g *GapBuffer) All() iter.Seq2[int, rune] {
	return g.Range(0, g.Len())
}

// Range returns an iterator over (index, rune) pairs in [start, end).
// The range is clamped to the sequence bounds.
func (g *GapBuffer) Range(start, end int) iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		start := max(start, 0)
		end := min(end, g.Len())
		for i := start; i < end; i++ {
			if !yield(i, g.data[g.physical(i)]) {
				return
			}
		}
	}
}

// Backward returns an iterator over (index, rune) pairs walking from
// end-1 down to 0.
func (g *GapBuffer) Backward(end int) iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for i := min(end, g.Len()) - 1; i >= 0; i-- {
			if !yield(i, g.data[g.physical(i)]) {
				return
			}
		}
	}
}
