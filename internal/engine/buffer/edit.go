package buffer

import (
	"fmt"
	"slices"
)

// InsertChar inserts ch at the cursor and advances the cursor past it.
// Inserting '\n' splits the current line in two. '\r' is stored as '\n',
// the same way text read from a file is normalized.
func (b *Buffer) InsertChar(ch rune) error {
	if ch == '\r' {
		ch = '\n'
	}
	line, col, err := b.locate("insert char", b.cursor)
	if err != nil {
		return err
	}

	pos := b.cursor
	if err := b.text.Insert(pos, ch); err != nil {
		return fmt.Errorf("insert char at %d: %w", pos, err)
	}

	if ch == '\n' {
		b.breakLine(line, col, pos)
	} else {
		b.lines[line].Data = slices.Insert(b.lines[line].Data, col, ch)
		b.index.shiftAfter(line, 1)
	}

	b.cursor++
	b.desiredCol = -1
	return nil
}

// InsertString inserts s at the cursor one rune at a time.
// CRLF and CR are inserted as single newlines.
func (b *Buffer) InsertString(s string) error {
	for _, r := range normalizeLineEndings(s) {
		if err := b.InsertChar(r); err != nil {
			return err
		}
	}
	return nil
}

// DeleteChar removes the rune next to the cursor.
//
// Left removes the rune before the cursor and moves the cursor back; it does
// nothing at offset 0. Right removes the rune under the cursor and leaves
// the cursor in place; it does nothing at the end of the text. Removing a
// newline joins the two lines it separated. Up and Down are rejected with
// ErrInvalidDirection.
func (b *Buffer) DeleteChar(dir Direction) error {
	if !dir.IsHorizontal() {
		return fmt.Errorf("delete char %s: %w", dir, ErrInvalidDirection)
	}

	pos := b.cursor
	if dir == Left {
		if b.cursor == 0 {
			return nil
		}
		pos = b.cursor - 1
	} else if b.cursor >= b.text.Len() {
		return nil
	}

	if err := b.removeAt(pos); err != nil {
		return err
	}
	if dir == Left {
		b.cursor--
	}
	b.desiredCol = -1
	return nil
}

// removeAt removes the rune at pos from the text and the line cache.
func (b *Buffer) removeAt(pos int) error {
	const op = "delete char"

	line, col, err := b.locate(op, pos)
	if err != nil {
		return err
	}
	r, ok := b.text.At(pos)
	if !ok {
		return fmt.Errorf("%s at %d: %w", op, pos, ErrOffsetOutOfRange)
	}

	if r == '\n' {
		if col != b.lines[line].Len() {
			return invariantErr(op, "newline at line end", "newline at column %d of line %d with length %d", col, line, b.lines[line].Len())
		}
		if line+1 >= len(b.lines) {
			return invariantErr(op, "line after newline", "no line follows line %d", line)
		}
	}

	if _, err := b.text.Remove(pos); err != nil {
		return fmt.Errorf("%s at %d: %w", op, pos, err)
	}

	if r == '\n' {
		b.joinLines(line, 0)
		return nil
	}
	b.lines[line].Data = slices.Delete(b.lines[line].Data, col, col+1)
	b.index.shiftAfter(line, -1)
	return nil
}

// locate resolves offset to a line and column and checks that the line
// cache agrees with the index.
func (b *Buffer) locate(op string, offset int) (line, col int, err error) {
	if offset < 0 || offset > b.text.Len() {
		return 0, 0, fmt.Errorf("%s at %d: %w", op, offset, ErrOffsetOutOfRange)
	}

	line = b.index.lineOf(offset)
	if line < 0 || line >= len(b.lines) {
		return 0, 0, invariantErr(op, "line cache covers text", "offset %d maps to line %d of %d", offset, line, len(b.lines))
	}

	col = offset - b.index.start(line)
	if col > b.lines[line].Len() {
		return 0, 0, invariantErr(op, "line cache matches text", "column %d past end of line %d (length %d)", col, line, b.lines[line].Len())
	}
	return line, col, nil
}
