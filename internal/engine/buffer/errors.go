package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset outside the text or line.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrLineNotFound indicates a line number past the line cache.
	ErrLineNotFound = errors.New("line not found")

	// ErrInvalidDirection indicates a direction that the operation does not accept.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrNewlineInLine indicates line data that would contain a line break.
	ErrNewlineInLine = errors.New("line data contains a newline")

	// ErrInvalidEncoding indicates input that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("text is not valid UTF-8")

	// ErrNoPath indicates a save was attempted on an untitled buffer.
	ErrNoPath = errors.New("buffer has no file path")

	// ErrInvariant is matched by every *InvariantError.
	ErrInvariant = errors.New("buffer invariant violated")
)

// InvariantError reports that the text and the line cache disagree.
// The buffer is left as it was before the failing operation.
type InvariantError struct {
	Op        string // Operation that detected the breach
	Invariant string // Short name of the broken property
	Detail    string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, ErrInvariant, e.Invariant)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", e.Op, ErrInvariant, e.Invariant, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func invariantErr(op, invariant, format string, args ...any) *InvariantError {
	return &InvariantError{
		Op:        op,
		Invariant: invariant,
		Detail:    fmt.Sprintf(format, args...),
	}
}
