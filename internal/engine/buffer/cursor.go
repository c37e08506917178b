package buffer

// Cursor returns the cursor offset in runes.
// 0 is before the first rune and Len is after the last.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor to offset.
// Returns ErrOffsetOutOfRange and leaves the cursor alone if offset is
// outside [0, Len].
func (b *Buffer) SetCursor(offset int) error {
	if offset < 0 || offset > b.text.Len() {
		return ErrOffsetOutOfRange
	}
	b.cursor = offset
	b.desiredCol = -1
	return nil
}

// MoveCursor moves the cursor by delta runes.
// A move that would leave [0, Len] does nothing.
func (b *Buffer) MoveCursor(delta int) {
	idx := b.cursor + delta
	if idx >= 0 && idx <= b.text.Len() {
		b.cursor = idx
		b.desiredCol = -1
	}
}

// ShiftCursor moves the cursor one step in dir.
//
// Left and Right stop at line boundaries: they never step over a newline.
// Up and Down move to the adjacent line if there is one.
func (b *Buffer) ShiftCursor(dir Direction) {
	switch dir {
	case Up:
		b.moveLine(-1)
	case Down:
		b.moveLine(1)
	case Left:
		if b.cursor > 0 {
			if r, _ := b.text.At(b.cursor - 1); r != '\n' {
				b.cursor--
				b.desiredCol = -1
			}
		}
	case Right:
		if b.cursor < b.text.Len() {
			if r, _ := b.text.At(b.cursor); r != '\n' {
				b.cursor++
				b.desiredCol = -1
			}
		}
	}
}

// moveLine moves the cursor delta lines up or down.
func (b *Buffer) moveLine(delta int) {
	line := b.index.lineOf(b.cursor)
	target := line + delta
	if target < 0 || target >= b.index.count() {
		return
	}

	start := b.index.start(target)
	length := b.lines[target].Len()

	if !b.columnMemory {
		// Land one rune into the target line, or on its start when empty.
		b.cursor = start + min(1, length)
		return
	}

	if b.desiredCol < 0 {
		b.desiredCol = b.cursor - b.index.start(line)
	}
	b.cursor = start + min(b.desiredCol, length)
}

// MoveToLineStart moves the cursor to the first rune of its line.
func (b *Buffer) MoveToLineStart() {
	b.cursor = b.index.start(b.index.lineOf(b.cursor))
	b.desiredCol = -1
}

// MoveToLineEnd moves the cursor past the last rune of its line.
func (b *Buffer) MoveToLineEnd() {
	line := b.index.lineOf(b.cursor)
	b.cursor = b.index.start(line) + b.lines[line].Len()
	b.desiredCol = -1
}

// CursorScreenOffset returns the cursor's column on its line: the number of
// runes between the cursor and the preceding newline or the start of text.
func (b *Buffer) CursorScreenOffset() int {
	return b.cursor - (b.text.LastIndexBefore('\n', b.cursor) + 1)
}

// CursorPosition returns the cursor as a line and column.
func (b *Buffer) CursorPosition() Point {
	line := b.index.lineOf(b.cursor)
	return Point{Line: line, Column: b.cursor - b.index.start(line)}
}
