package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no backend handles.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")

	// ErrInvalidFace is returned for faces with fewer than three corners.
	ErrInvalidFace = errors.New("face needs at least three corners")

	// ErrInvalidIndex is returned for zero or out-of-range vertex and normal references.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrNoFaces is returned when a file holds no triangles at all.
	ErrNoFaces = errors.New("mesh has no faces")
)

// ParseError locates a failure inside a mesh file.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
