package dom

import (
	"fmt"
	"runtime"
)

// Error is the opaque failure value produced by editing operations.
// It records only the call site that created it; there is no
// structured error kind, so callers can detect failure but not cause.
type Error struct {
	file string
	line int
}

// NewError creates an editor error recording the caller's location.
func NewError() *Error {
	e := &Error{}
	if _, file, line, ok := runtime.Caller(1); ok {
		e.file = file
		e.line = line
	}
	return e
}

func (e *Error) Error() string {
	return "unexpected error in HTML editor"
}

// Location returns the file and line where the error was created.
func (e *Error) Location() (file string, line int) {
	return e.file, e.line
}

// GoString formats the error with its originating location for
// diagnostic output.
func (e *Error) GoString() string {
	return fmt.Sprintf("dom.Error{%s:%d}", e.file, e.line)
}
