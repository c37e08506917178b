package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupBuffer returns a buffer with the lines "test", "", "text file" and
// "content".
func setupBuffer() *Buffer {
	return NewFromString("test\n\ntext file\ncontent", WithPath("/some/file.txt"))
}

func lineStrings(b *Buffer) []string {
	out := make([]string, 0, b.LineCount())
	for _, l := range b.Lines() {
		out = append(out, l.String())
	}
	return out
}

func mustValidate(t *testing.T, b *Buffer) {
	t.Helper()
	if err := b.Validate(); err != nil {
		t.Fatalf("invalid buffer: %v", err)
	}
}

func TestNew(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	line, ok := b.LineAt(0)
	if !ok || !line.IsEmpty() || line.Num != 0 {
		t.Errorf("expected one empty line numbered 0, got %+v, %v", line, ok)
	}
	if b.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", b.Cursor())
	}
	mustValidate(t, b)
}

func TestNewFromStringMultiline(t *testing.T) {
	b := NewFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	for i, want := range []string{"line1", "line2", "line3"} {
		if got := b.LineText(i); got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
	mustValidate(t, b)
}

func TestNewFromStringTrailingNewline(t *testing.T) {
	b := NewFromString("a\n")

	if got := lineStrings(b); strings.Join(got, "|") != "a|" {
		t.Errorf("expected lines [a, \"\"], got %q", got)
	}
	mustValidate(t, b)
}

func TestNewFromReaderDetectsLineEnding(t *testing.T) {
	b, err := NewFromReader(strings.NewReader("one\r\ntwo\r\nthree"))
	if err != nil {
		t.Fatalf("NewFromReader failed: %v", err)
	}

	if b.Text() != "one\ntwo\nthree" {
		t.Errorf("expected normalized text, got %q", b.Text())
	}
	if b.LineEnding() != LineEndingCRLF {
		t.Errorf("expected CRLF, got %s", b.LineEnding())
	}

	var sb strings.Builder
	if _, err := b.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if sb.String() != "one\r\ntwo\r\nthree" {
		t.Errorf("expected CRLF round trip, got %q", sb.String())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestNewFromReaderError(t *testing.T) {
	if _, err := NewFromReader(failingReader{}); err == nil {
		t.Error("expected read error")
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("hello\nworld\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewFromFile(path)
	if b.Path() != path {
		t.Errorf("expected path %q, got %q", path, b.Path())
	}
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	mustValidate(t, b)
}

func TestNewFromFileMissingFallsBack(t *testing.T) {
	b := NewFromFile(filepath.Join(t.TempDir(), "missing.txt"))

	if b.Path() != "" {
		t.Errorf("expected no path, got %q", b.Path())
	}
	if !b.IsEmpty() || b.LineCount() != 1 {
		t.Errorf("expected empty buffer, got %q with %d lines", b.Text(), b.LineCount())
	}
	if b.StatusText() != "untitled, lines: 1" {
		t.Errorf("unexpected status %q", b.StatusText())
	}
}

func TestNewFromFileFallbackDropsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	b := NewFromFile(path, WithPath(path))

	if b.Path() != "" {
		t.Errorf("expected no path after a failed open, got %q", b.Path())
	}
}

func TestOpenFileInvalidEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	original := []byte("caf\xe9\nline two\n")
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenFile(path); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("OpenFile error = %v, want ErrInvalidEncoding", err)
	}
	if _, err := NewFromReader(strings.NewReader(string(original))); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("NewFromReader error = %v, want ErrInvalidEncoding", err)
	}

	b := NewFromFile(path)
	if b.Path() != "" {
		t.Errorf("expected no path, got %q", b.Path())
	}
	if err := b.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save error = %v, want ErrNoPath", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(original) {
		t.Errorf("file changed on disk: %q", data)
	}
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenFile error = %v, want os.ErrNotExist", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := NewFromString("abc\ndef")
	if err := b.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}

	if err := b.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	if b.Path() != path {
		t.Errorf("SaveAs should set the path, got %q", b.Path())
	}

	_ = b.InsertChar('X')
	if err := b.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Xabc\ndef" {
		t.Errorf("saved %q", data)
	}
}

func TestStatusText(t *testing.T) {
	b := setupBuffer()
	if got := b.StatusText(); got != "/some/file.txt, lines: 4" {
		t.Errorf("expected %q, got %q", "/some/file.txt, lines: 4", got)
	}

	b.SetPath("")
	if got := b.StatusText(); got != "untitled, lines: 4" {
		t.Errorf("expected %q, got %q", "untitled, lines: 4", got)
	}
}

func TestByteSize(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []Option
		want int64
	}{
		{"empty", "", nil, 0},
		{"ascii", "test\n\ntext file\ncontent", nil, 23},
		{"multibyte", "héllo", nil, 6},
		{"crlf", "a\nb\nc", []Option{WithLineEnding(LineEndingCRLF)}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.text, tt.opts...)
			if got := b.ByteSize(); got != tt.want {
				t.Errorf("ByteSize() = %d, want %d", got, tt.want)
			}

			var sb strings.Builder
			n, err := b.WriteTo(&sb)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.want {
				t.Errorf("WriteTo wrote %d bytes, ByteSize() = %d", n, tt.want)
			}
		})
	}
}

func TestLineAt(t *testing.T) {
	b := setupBuffer()

	line, ok := b.LineAt(2)
	if !ok {
		t.Fatal("expected line 2")
	}
	if line.String() != "text file" || line.Num != 2 || line.Len() != 9 {
		t.Errorf("unexpected line %+v", line)
	}

	// The returned line is a copy.
	line.Data[0] = 'X'
	if b.LineText(2) != "text file" {
		t.Error("mutating LineAt result changed the buffer")
	}

	for _, n := range []int{-1, 4, 100} {
		if _, ok := b.LineAt(n); ok {
			t.Errorf("LineAt(%d) should not be found", n)
		}
	}
}

func TestLineOf(t *testing.T) {
	b := setupBuffer() // "test\n\ntext file\ncontent"

	tests := []struct {
		offset int
		line   int
		ok     bool
	}{
		{0, 0, true},
		{3, 0, true},
		{4, 0, true}, // the newline itself belongs to line 0
		{5, 1, true},
		{6, 2, true},
		{16, 3, true},
		{22, 3, true},
		{23, 0, false}, // Len
		{-1, 0, false},
	}

	for _, tt := range tests {
		line, ok := b.LineOf(tt.offset)
		if ok != tt.ok || (ok && line != tt.line) {
			t.Errorf("LineOf(%d) = %d, %v; want %d, %v", tt.offset, line, ok, tt.line, tt.ok)
		}
	}
}

func TestLineStart(t *testing.T) {
	b := setupBuffer()

	tests := []struct {
		line  int
		start int
		ok    bool
	}{
		{0, 0, true},
		{1, 5, true},
		{2, 6, true},
		{3, 16, true},
		{4, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		start, ok := b.LineStart(tt.line)
		if ok != tt.ok || (ok && start != tt.start) {
			t.Errorf("LineStart(%d) = %d, %v; want %d, %v", tt.line, start, ok, tt.start, tt.ok)
		}
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb", LineEndingLF},
		{"a\r\nb\r\nc\n", LineEndingCRLF},
		{"a\rb\rc", LineEndingCR},
	}

	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestParseLineEnding(t *testing.T) {
	if le, ok := ParseLineEnding("CRLF"); !ok || le != LineEndingCRLF {
		t.Errorf("ParseLineEnding(CRLF) = %s, %v", le, ok)
	}
	if _, ok := ParseLineEnding("bogus"); ok {
		t.Error("ParseLineEnding(bogus) should fail")
	}
}

func TestInvariantErrorIs(t *testing.T) {
	err := error(invariantErr("op", "thing", "detail %d", 1))

	if !errors.Is(err, ErrInvariant) {
		t.Error("InvariantError should match ErrInvariant")
	}
	var ie *InvariantError
	if !errors.As(err, &ie) || ie.Op != "op" {
		t.Errorf("errors.As failed: %v", err)
	}
	if !strings.Contains(err.Error(), "detail 1") {
		t.Errorf("message missing detail: %s", err)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	b := setupBuffer()
	b.lines[2].Num = 7

	err := b.Validate()
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}

	b = setupBuffer()
	b.lines = b.lines[:3]
	if err := b.Validate(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected invariant error for missing line, got %v", err)
	}

	b = setupBuffer()
	b.lines[0].Data = []rune("tost")
	if err := b.Validate(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected invariant error for diverged text, got %v", err)
	}
}

func TestEditOnCorruptCacheReportsError(t *testing.T) {
	b := setupBuffer()
	// Drop the last line from the cache so the index points past it.
	b.lines = b.lines[:3]
	_ = b.SetCursor(18)

	err := b.InsertChar('x')
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
	if b.Text() != "test\n\ntext file\ncontent" {
		t.Errorf("text changed despite error: %q", b.Text())
	}
}
