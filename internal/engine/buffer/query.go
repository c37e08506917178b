package buffer

import (
	"fmt"
	"unicode/utf8"
)

// untitledName is shown in place of a path for buffers without one.
const untitledName = "untitled"

// StatusText returns "<path>, lines: <N>", with "untitled" standing in for
// the path of an unsaved buffer.
func (b *Buffer) StatusText() string {
	name := b.path
	if name == "" {
		name = untitledName
	}
	return fmt.Sprintf("%s, lines: %d", name, len(b.lines))
}

// LineAt returns a copy of line lineNum.
// Returns false if the line does not exist.
func (b *Buffer) LineAt(lineNum int) (Line, bool) {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return Line{}, false
	}
	return b.lines[lineNum].clone(), true
}

// LineText returns the content of line lineNum, or "" if it does not exist.
func (b *Buffer) LineText(lineNum int) string {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return ""
	}
	return string(b.lines[lineNum].Data)
}

// LineOf returns the number of the line containing charOffset, which is the
// count of newlines before it. Returns false if charOffset is negative or
// not before the end of the text.
func (b *Buffer) LineOf(charOffset int) (int, bool) {
	if charOffset < 0 || charOffset >= b.text.Len() {
		return 0, false
	}
	return b.index.lineOf(charOffset), true
}

// LineStart returns the offset of the first rune of line lineNum.
// Returns false if lineNum is negative or greater than the number of
// newlines in the text.
func (b *Buffer) LineStart(lineNum int) (int, bool) {
	start := b.index.start(lineNum)
	if start < 0 {
		return 0, false
	}
	return start, true
}

// ByteSize returns the number of bytes WriteTo would produce: the UTF-8
// length of every line plus one line-ending sequence between lines.
func (b *Buffer) ByteSize() int64 {
	var n int64
	for _, l := range b.lines {
		for _, r := range l.Data {
			n += int64(utf8.RuneLen(r))
		}
	}
	n += int64(len(b.lines)-1) * int64(len(b.lineEnding.Sequence()))
	return n
}
