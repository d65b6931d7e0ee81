// Package diag provides the diagnostic errors reported by shaders, programs
// and windows.
package diag

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Status errors. Every *Error wraps exactly one of them.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrRuntime         = errors.New("runtime error")
	ErrInternal        = errors.New("internal error")
	ErrNotInitialized  = errors.New("not initialized")
)

// MaxMessageLen is the maximum length of a message in bytes.
const MaxMessageLen = 8192

// BackendPrefix starts every message of a Backend error.
const BackendPrefix = "OpenGL error: "

// Kind distinguishes generic diagnostics from ones raised by the graphics API.
type Kind uint8

// Error kinds.
const (
	Generic Kind = iota
	Backend
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Generic:
		return "generic"
	case Backend:
		return "backend"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Error is a diagnostic with a bounded, human readable message.
type Error struct {
	kind   Kind
	status error
	msg    string
}

// New creates a Generic error with the given status and formatted message.
func New(status error, format string, args ...any) *Error {
	e := &Error{kind: Generic, status: status}
	e.Printf(format, args...)
	return e
}

// NewBackend creates a Backend error; its message carries BackendPrefix.
func NewBackend(status error, format string, args ...any) *Error {
	e := &Error{kind: Backend, status: status}
	e.Printf(format, args...)
	return e
}

// SetMessage replaces the message.
func (e *Error) SetMessage(msg string) {
	if e.kind == Backend {
		msg = BackendPrefix + msg
	}
	e.msg = truncate(msg, MaxMessageLen)
}

// Printf replaces the message with a formatted one.
func (e *Error) Printf(format string, args ...any) {
	e.SetMessage(fmt.Sprintf(format, args...))
}

// Message returns the rendered message.
func (e *Error) Message() string { return e.msg }

// Kind returns the error kind.
func (e *Error) Kind() Kind { return e.kind }

// Status returns the status error (one of the Err* variables).
func (e *Error) Status() error { return e.status }

// Error implements the error interface.
func (e *Error) Error() string { return e.msg }

// Unwrap exposes the status to errors.Is.
func (e *Error) Unwrap() error { return e.status }

// IsBackend reports whether err carries a Backend diagnostic.
func IsBackend(err error) bool {
	var d *Error
	return errors.As(err, &d) && d.kind == Backend
}

// StatusOf returns the status of the first diagnostic in err's chain, or nil.
func StatusOf(err error) error {
	var d *Error
	if errors.As(err, &d) {
		return d.status
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
