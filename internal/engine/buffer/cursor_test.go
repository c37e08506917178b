package buffer

import (
	"math/rand"
	"testing"
)

func TestMoveCursor(t *testing.T) {
	b := NewFromString("hello")

	b.MoveCursor(3)
	if b.Cursor() != 3 {
		t.Fatalf("expected cursor 3, got %d", b.Cursor())
	}

	b.MoveCursor(2)
	if b.Cursor() != 5 {
		t.Fatalf("expected cursor 5 (end of text), got %d", b.Cursor())
	}

	tests := []struct {
		name  string
		delta int
	}{
		{"past end", 1},
		{"far past end", 100},
		{"before start", -6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.MoveCursor(tt.delta)
			if b.Cursor() != 5 {
				t.Errorf("out-of-range move changed cursor to %d", b.Cursor())
			}
		})
	}

	b.MoveCursor(-5)
	if b.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", b.Cursor())
	}
}

func TestSetCursor(t *testing.T) {
	b := NewFromString("abc")

	if err := b.SetCursor(3); err != nil {
		t.Fatalf("SetCursor(3) failed: %v", err)
	}
	if err := b.SetCursor(4); err == nil {
		t.Error("SetCursor(4) should fail")
	}
	if b.Cursor() != 3 {
		t.Errorf("failed SetCursor moved cursor to %d", b.Cursor())
	}
}

func TestShiftCursorHorizontal(t *testing.T) {
	b := NewFromString("ab\ncd")

	tests := []struct {
		name   string
		start  int
		dir    Direction
		expect int
	}{
		{"left at start of text", 0, Left, 0},
		{"left inside line", 2, Left, 1},
		{"left at line start stays", 3, Left, 3},
		{"right inside line", 0, Right, 1},
		{"right before newline stays", 2, Right, 2},
		{"right at end of text", 5, Right, 5},
		{"right on second line", 3, Right, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.SetCursor(tt.start); err != nil {
				t.Fatal(err)
			}
			b.ShiftCursor(tt.dir)
			if b.Cursor() != tt.expect {
				t.Errorf("expected cursor %d, got %d", tt.expect, b.Cursor())
			}
		})
	}
}

func TestShiftCursorVertical(t *testing.T) {
	b := NewFromString("first\n\nthird line\nlast")
	// starts: 0, 6, 7, 18

	tests := []struct {
		name   string
		start  int
		dir    Direction
		expect int
	}{
		{"up from first line", 3, Up, 3},
		{"down from first line onto empty line", 3, Down, 6},
		{"down from empty line", 6, Down, 8},
		{"down to last line", 10, Down, 19},
		{"down from last line", 20, Down, 20},
		{"down from end of text", 22, Down, 22},
		{"up from last line", 20, Up, 8},
		{"up from empty line", 6, Up, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.SetCursor(tt.start); err != nil {
				t.Fatal(err)
			}
			b.ShiftCursor(tt.dir)
			if b.Cursor() != tt.expect {
				t.Errorf("expected cursor %d, got %d", tt.expect, b.Cursor())
			}
		})
	}
}

func TestShiftCursorColumnMemory(t *testing.T) {
	b := NewFromString("abcdef\nxy\nlonger line", WithColumnMemory(true))
	_ = b.SetCursor(5)

	b.ShiftCursor(Down)
	if got := b.CursorPosition(); got != (Point{Line: 1, Column: 2}) {
		t.Fatalf("expected clamp to (1:2), got %s", got)
	}

	b.ShiftCursor(Down)
	if got := b.CursorPosition(); got != (Point{Line: 2, Column: 5}) {
		t.Fatalf("expected remembered column (2:5), got %s", got)
	}

	b.ShiftCursor(Left)
	b.ShiftCursor(Up)
	if got := b.CursorPosition(); got != (Point{Line: 1, Column: 2}) {
		t.Fatalf("expected (1:2) after horizontal move reset, got %s", got)
	}
}

func TestCursorScreenOffset(t *testing.T) {
	b := NewFromString("hello\nworld")

	tests := []struct {
		cursor int
		expect int
	}{
		{0, 0},
		{3, 3},
		{5, 5},
		{6, 0},
		{9, 3},
		{11, 5},
	}

	for _, tt := range tests {
		_ = b.SetCursor(tt.cursor)
		if got := b.CursorScreenOffset(); got != tt.expect {
			t.Errorf("cursor %d: expected offset %d, got %d", tt.cursor, tt.expect, got)
		}
	}
}

func TestLineStartEnd(t *testing.T) {
	b := NewFromString("abc\ndefg")
	_ = b.SetCursor(6)

	b.MoveToLineEnd()
	if b.Cursor() != 8 {
		t.Errorf("expected 8, got %d", b.Cursor())
	}
	b.MoveToLineStart()
	if b.Cursor() != 4 {
		t.Errorf("expected 4, got %d", b.Cursor())
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewFromString("one\n\ntwo three\nfour\n")
	dirs := []Direction{Up, Down, Left, Right}

	for i := 0; i < 5000; i++ {
		if rng.Intn(2) == 0 {
			b.MoveCursor(rng.Intn(11) - 5)
		} else {
			b.ShiftCursor(dirs[rng.Intn(len(dirs))])
		}
		if c := b.Cursor(); c < 0 || c > b.Len() {
			t.Fatalf("step %d: cursor %d outside [0, %d]", i, c, b.Len())
		}
	}
}
