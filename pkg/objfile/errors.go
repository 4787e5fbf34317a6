package objfile

import (
	"errors"
	"fmt"
)

// OBJ parse errors.
var (
	ErrSyntax      = errors.New("malformed record")
	ErrNumber      = errors.New("malformed number")
	ErrNumberRange = errors.New("number out of float32 range")
	ErrZeroIndex   = errors.New("index 0 is not valid")
	ErrIndexRange  = errors.New("index out of range")
)

// ParseError reports a failure to read or parse an OBJ file.
// Line is 0 when the failure is not tied to a line (e.g. open failed).
type ParseError struct {
	Path   string
	Line   int
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
