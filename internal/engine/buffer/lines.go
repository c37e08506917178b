package buffer

import (
	"fmt"
	"slices"
	"strings"
)

// InsertLine splits line lineNum at rune offset. The prefix stays at
// lineNum and the suffix becomes a new line right after it; later lines
// are renumbered. The matching newline is inserted into the text, and a
// cursor beyond the split point moves with the text after it.
func (b *Buffer) InsertLine(lineNum, offset int) error {
	const op = "insert line"

	if err := b.checkLineOffset(op, lineNum, offset); err != nil {
		return err
	}

	pos := b.index.start(lineNum) + offset
	if err := b.text.Insert(pos, '\n'); err != nil {
		return fmt.Errorf("%s %d: %w", op, lineNum, err)
	}
	b.breakLine(lineNum, offset, pos)

	if b.cursor > pos {
		b.cursor++
	}
	b.desiredCol = -1
	return nil
}

// SplitLine returns the two halves line lineNum would be split into at
// rune offset. The buffer is not modified.
func (b *Buffer) SplitLine(lineNum, offset int) (prefix, suffix string, err error) {
	if err := b.checkLineOffset("split line", lineNum, offset); err != nil {
		return "", "", err
	}
	data := b.lines[lineNum].Data
	return string(data[:offset]), string(data[offset:]), nil
}

// JoinLineWithPrevious appends line lineNum, starting at rune offset, to the
// line before it and removes line lineNum. The newline between them and the
// first offset runes of line lineNum are removed from the text.
//
// It returns the column at which the lines were joined, which is the length
// the previous line had. With no previous line, or no line lineNum, it does
// nothing and returns 0.
func (b *Buffer) JoinLineWithPrevious(lineNum, offset int) (int, error) {
	const op = "join line"

	if lineNum <= 0 || lineNum >= len(b.lines) {
		return 0, nil
	}
	if offset < 0 || offset > b.lines[lineNum].Len() {
		return 0, fmt.Errorf("%s %d offset %d: %w", op, lineNum, offset, ErrOffsetOutOfRange)
	}

	prev := lineNum - 1
	col := b.lines[prev].Len()
	nl := b.index.start(lineNum) - 1
	if r, _ := b.text.At(nl); r != '\n' {
		return 0, invariantErr(op, "line start follows newline", "rune at %d is %q", nl, r)
	}

	removed := 1 + offset
	if err := b.text.Delete(nl, nl+removed); err != nil {
		return 0, fmt.Errorf("%s %d: %w", op, lineNum, err)
	}
	b.joinLines(prev, offset)

	switch {
	case b.cursor >= nl+removed:
		b.cursor -= removed
	case b.cursor > nl:
		b.cursor = nl
	}
	b.desiredCol = -1
	return col, nil
}

// SetLineData replaces the content of line lineNum with data and updates
// the text to match. A cursor inside the line is clamped to its new end.
func (b *Buffer) SetLineData(lineNum int, data string) error {
	const op = "set line"

	if lineNum < 0 || lineNum >= len(b.lines) {
		return fmt.Errorf("%s %d: %w", op, lineNum, ErrLineNotFound)
	}
	if strings.ContainsAny(data, "\r\n") {
		return fmt.Errorf("%s %d: %w", op, lineNum, ErrNewlineInLine)
	}

	start := b.index.start(lineNum)
	oldLen := b.lines[lineNum].Len()
	runes := []rune(data)

	if err := b.text.Delete(start, start+oldLen); err != nil {
		return fmt.Errorf("%s %d: %w", op, lineNum, err)
	}
	if err := b.text.Insert(start, runes...); err != nil {
		return fmt.Errorf("%s %d: %w", op, lineNum, err)
	}

	b.lines[lineNum].Data = runes
	delta := len(runes) - oldLen
	b.index.shiftAfter(lineNum, delta)

	switch {
	case b.cursor > start+oldLen:
		b.cursor += delta
	case b.cursor > start+len(runes):
		b.cursor = start + len(runes)
	}
	b.desiredCol = -1
	return nil
}

// breakLine splits the cached line at col after a newline was inserted into
// the text at pos.
func (b *Buffer) breakLine(line, col, pos int) {
	prefix, suffix := splitRunes(b.lines[line].Data, col)
	b.lines[line].Data = prefix
	b.lines = slices.Insert(b.lines, line+1, Line{Data: suffix})
	b.renumber(line + 1)
	b.index.insertBreak(line, pos)
}

// joinLines merges the cached line after line into it, dropping the first
// extra runes of the merged line. The text must already reflect the join.
func (b *Buffer) joinLines(line, extra int) {
	next := b.lines[line+1]
	b.lines[line].Data = append(b.lines[line].Data, next.Data[extra:]...)
	b.lines = slices.Delete(b.lines, line+1, line+2)
	b.renumber(line + 1)
	b.index.removeBreak(line, extra)
}

// renumber assigns sequential line numbers from line from onward.
func (b *Buffer) renumber(from int) {
	for i := from; i < len(b.lines); i++ {
		b.lines[i].Num = i
	}
}

func (b *Buffer) checkLineOffset(op string, lineNum, offset int) error {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return fmt.Errorf("%s %d: %w", op, lineNum, ErrLineNotFound)
	}
	if offset < 0 || offset > b.lines[lineNum].Len() {
		return fmt.Errorf("%s %d offset %d: %w", op, lineNum, offset, ErrOffsetOutOfRange)
	}
	return nil
}
