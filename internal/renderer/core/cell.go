package core

import "github.com/mattn/go-runewidth"

// Cell represents a single terminal cell.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// IsContinuation reports whether c is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// ContinuationCell returns the placeholder drawn after a wide rune.
func ContinuationCell() Cell {
	return Cell{Style: DefaultStyle()}
}

// RuneWidth returns the number of columns r occupies. Control
// characters occupy none.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the number of columns s occupies.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// Truncate shortens s to at most width columns.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}
