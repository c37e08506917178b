package buffer

import "fmt"

// Direction selects a neighbor relative to the cursor.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// IsHorizontal returns true for Left and Right.
func (d Direction) IsHorizontal() bool {
	return d == Left || d == Right
}

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column counts runes.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}
