package buffer

import (
	"slices"
	"strings"
)

// Validate recomputes the buffer's derived state from the text and compares
// it with what the buffer holds. It returns an *InvariantError describing
// the first mismatch, or nil.
func (b *Buffer) Validate() error {
	const op = "validate"

	if b.cursor < 0 || b.cursor > b.text.Len() {
		return invariantErr(op, "cursor within text", "cursor %d, length %d", b.cursor, b.text.Len())
	}
	if len(b.lines) == 0 {
		return invariantErr(op, "at least one line", "line cache is empty")
	}

	if breaks := b.text.Count('\n', 0, b.text.Len()); breaks+1 != len(b.lines) {
		return invariantErr(op, "one line per newline", "%d newlines, %d lines", breaks, len(b.lines))
	}

	for i, l := range b.lines {
		if l.Num != i {
			return invariantErr(op, "sequential line numbers", "line %d numbered %d", i, l.Num)
		}
		if slices.Contains(l.Data, '\n') {
			return invariantErr(op, "lines exclude newlines", "line %d contains a newline", i)
		}
	}

	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l.Data)
	}
	if joined, text := strings.Join(parts, "\n"), b.text.String(); joined != text {
		return invariantErr(op, "lines reconstruct text", "lines give %q, text is %q", joined, text)
	}

	if want := computeLineIndex(b.text.Runes()); !b.index.equal(want) {
		return invariantErr(op, "line index matches text", "index %v, want %v", b.index.starts, want.starts)
	}
	return nil
}
