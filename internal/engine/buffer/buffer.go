package buffer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/dshills/quill/internal/engine/gapbuffer"
)

// Buffer holds a document's text, a cursor offset into it and a cache of
// its lines. The text is the source of truth; the line cache and line-start
// index are kept in step by every mutator.
type Buffer struct {
	text   *gapbuffer.GapBuffer
	lines  []Line
	index  lineIndex
	cursor int
	path   string

	lineEnding   LineEnding
	columnMemory bool
	desiredCol   int // -1 when no vertical motion is in progress
}

// New creates a new empty buffer holding a single empty line.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		text:       gapbuffer.New(),
		lines:      []Line{{Data: []rune{}, Num: 0}},
		index:      newLineIndex(),
		lineEnding: LineEndingLF,
		desiredCol: -1,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer with initial content.
// CRLF and CR line endings are converted to LF.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.load(normalizeLineEndings(s))
	return b
}

// NewFromReader creates a buffer from everything r yields.
// The dominant line ending of the input is remembered for saving unless
// an option overrides it. Input that is not valid UTF-8 is rejected with
// ErrInvalidEncoding, since saving it back would rewrite the bad bytes.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read all content first so CRLF pairs split across reads are seen whole.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	text := string(data)
	opts = append([]Option{WithLineEnding(DetectLineEnding(text))}, opts...)
	b := New(opts...)
	b.load(normalizeLineEndings(text))
	return b, nil
}

// NewFromFile creates a buffer from the file at path and records the path.
// If the file cannot be opened or read, an empty buffer with no path is
// returned instead, even when opts include WithPath.
func NewFromFile(path string, opts ...Option) *Buffer {
	b, err := OpenFile(path, opts...)
	if err != nil {
		b = New(opts...)
		b.path = ""
	}
	return b
}

// OpenFile is NewFromFile for callers that need to know why a file could
// not be loaded. Errors wrap the os error or ErrInvalidEncoding.
func OpenFile(path string, opts ...Option) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := NewFromReader(bufio.NewReader(f), opts...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	b.path = path
	return b, nil
}

// load replaces the text and rebuilds the line cache from it.
func (b *Buffer) load(s string) {
	runes := []rune(s)
	b.text = gapbuffer.FromRunes(runes)
	b.index = computeLineIndex(runes)
	b.lines = b.lines[:0]
	for i, start := range b.index.starts {
		end := len(runes)
		if i+1 < len(b.index.starts) {
			end = b.index.starts[i+1] - 1
		}
		b.lines = append(b.lines, Line{Data: slices.Clone(runes[start:end]), Num: i})
	}
	b.cursor = 0
	b.desiredCol = -1
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.text.String()
}

// Len returns the length of the text in runes.
func (b *Buffer) Len() int {
	return b.text.Len()
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.text.IsEmpty()
}

// RuneAt returns the rune at offset.
// Returns false if offset is out of range.
func (b *Buffer) RuneAt(offset int) (rune, bool) {
	return b.text.At(offset)
}

// LineCount returns the number of lines. It is at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Lines returns a copy of the line cache.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.clone()
	}
	return out
}

// Path returns the backing file path, or "" for an untitled buffer.
func (b *Buffer) Path() string {
	return b.path
}

// SetPath sets the backing file path.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// LineEnding returns the line ending used when saving.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// SetLineEnding sets the line ending used when saving.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
}

// Persistence

// WriteTo writes the text to w, translating each newline to the buffer's
// line ending.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	sep := b.lineEnding.Sequence()
	bw := bufio.NewWriter(w)
	var n int64
	for i, l := range b.lines {
		if i > 0 {
			m, err := bw.WriteString(sep)
			n += int64(m)
			if err != nil {
				return n, err
			}
		}
		m, err := bw.WriteString(string(l.Data))
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Save writes the text to the backing file.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoPath
	}
	return b.SaveAs(b.path)
}

// SaveAs writes the text to path and makes it the backing file.
// The content goes to a temporary file in the same directory that is then
// renamed over path.
func (b *Buffer) SaveAs(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".quill-*")
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	tmpName := tmp.Name()

	// Keep the permissions of a file being overwritten.
	if info, err := os.Stat(path); err == nil {
		_ = tmp.Chmod(info.Mode().Perm())
	}

	if _, err := b.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}

	b.path = path
	return nil
}
