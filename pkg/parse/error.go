package parse

import "fmt"

// Error is a fatal parse failure. It carries the one-based line number of
// the offending region so callers can point at the source.
type Error struct {
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// errorf creates an Error at the given line.
func errorf(line int, format string, args ...any) *Error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}
