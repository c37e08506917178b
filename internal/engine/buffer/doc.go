// Package buffer provides the editor's text buffer: a gap-buffer backed
// rune sequence, an absolute cursor offset and a line cache derived from
// the text.
//
// The buffer package provides:
//
//   - Cursor navigation that never leaves the text bounds
//   - Character-level edits at the cursor
//   - Line-level edits that operate on the line cache and re-derive the text
//   - An index of line-start offsets for logarithmic line lookup
//   - Line ending detection on load and restoration on save
//
// Basic usage:
//
//	buf := buffer.NewFromString("hello\nworld")
//
//	buf.ShiftCursor(buffer.Down)   // cursor lands inside "world"
//	_ = buf.InsertChar('!')        // "hello\nw!orld"
//	_ = buf.DeleteChar(buffer.Left) // "hello\nworld"
//
//	line, ok := buf.LineAt(1)      // Line{Data: "world", Num: 1}
//	fmt.Println(buf.StatusText())  // "untitled, lines: 2"
//
// Consistency:
//
// Every mutator updates the text, the line cache and the line-start index
// before returning. Joining the lines with "\n" always reproduces the text,
// and Line.Num always equals the line's index. Validate re-checks these
// properties from scratch and reports a breach as an *InvariantError.
//
// Thread Safety:
//
// A Buffer is owned by a single editor session and is not safe for
// concurrent use.
package buffer
