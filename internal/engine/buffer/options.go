package buffer

import "strings"

// LineEnding specifies the line ending written when the buffer is saved.
// The text itself always uses "\n".
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ParseLineEnding maps "lf", "crlf" and "cr" to a LineEnding.
// Anything else yields LineEndingLF and false.
func ParseLineEnding(s string) (LineEnding, bool) {
	switch strings.ToLower(s) {
	case "lf":
		return LineEndingLF, true
	case "crlf":
		return LineEndingCRLF, true
	case "cr":
		return LineEndingCR, true
	default:
		return LineEndingLF, false
	}
}

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the line ending used by WriteTo and Save.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithColumnMemory makes vertical cursor motion keep the column the
// cursor had before the first Up or Down, clamped to each line's length.
// Without it, vertical motion lands one rune into the target line.
func WithColumnMemory(enabled bool) Option {
	return func(b *Buffer) {
		b.columnMemory = enabled
	}
}

// WithPath sets the backing file path.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n' {
			crlfCount++
			i += 2
		} else if text[i] == '\r' {
			crCount++
			i++
		} else if text[i] == '\n' {
			lfCount++
			i++
		} else {
			i++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount >= lfCount && crCount >= crlfCount {
		return LineEndingCR
	}
	return LineEndingLF
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
