package mesh

import (
	"errors"
	"fmt"
)

// Mesh build failure reasons. A *BuildError wraps exactly one of these.
var (
	ErrNoFaces          = errors.New("geometry has no faces")
	ErrMissingPosition  = errors.New("face corner has no position index")
	ErrMissingAttribute = errors.New("face corner omits an attribute other corners supply")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNotTriangle      = errors.New("face is not a triangle")
)

// BuildError reports why a mesh could not be built from parsed geometry.
type BuildError struct {
	Reason error
	Face   int // zero-based index into the parsed faces, -1 if not face specific
	Line   int // source line of the face, 0 if unknown
	Detail string
}

func (e *BuildError) Error() string {
	msg := "mesh: " + e.Reason.Error()
	if e.Face >= 0 {
		msg += fmt.Sprintf(" (face %d", e.Face)
		if e.Line > 0 {
			msg += fmt.Sprintf(", line %d", e.Line)
		}
		msg += ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Reason
}
