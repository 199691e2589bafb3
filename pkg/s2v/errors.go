package s2v

import (
	"errors"
	"fmt"

	"github.com/ukaji3/s2v-go/pkg/s2v/parser"
	"github.com/ukaji3/s2v-go/pkg/s2v/storage"
)

// ErrInvalidCoordinate indicates a malformed coordinate token such as "1A".
var ErrInvalidCoordinate = parser.ErrInvalidCoordinate

// ErrOutOfRange indicates a coordinate or region outside the sheet.
var ErrOutOfRange = storage.ErrOutOfRange

// ErrFormat indicates S2V text that cannot be read back, or content that
// cannot be written as S2V.
var ErrFormat = errors.New("s2v format error")

// ErrIO indicates that an underlying file could not be opened, read or written.
var ErrIO = errors.New("s2v i/o failure")

// FormatError describes where S2V text failed to parse.
type FormatError struct {
	Line   int // 1-based line number, 0 when not tied to a line
	Column int // 1-based token index, 0 when not tied to a token
	Token  string
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("s2v: line %d, column %d (%q): %s", e.Line, e.Column, e.Token, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("s2v: line %d: %s", e.Line, e.Reason)
	default:
		return "s2v: " + e.Reason
	}
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// NewFormatError creates a new FormatError.
func NewFormatError(line, column int, token, reason string) *FormatError {
	return &FormatError{
		Line:   line,
		Column: column,
		Token:  token,
		Reason: reason,
	}
}

// IOError wraps a file system failure during save or load.
type IOError struct {
	Op   string // "open", "read", "write", "rename", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("s2v: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both ErrIO and the underlying error, so errors.Is works
// against either.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// NewIOError creates a new IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
