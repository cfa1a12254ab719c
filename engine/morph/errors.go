package morph

import (
	"errors"
	"fmt"
)

var (
	// ErrTopologyMismatch is returned when the base mesh and the poses disagree in shape.
	ErrTopologyMismatch = errors.New("morph: topology mismatch")

	// ErrIndexOutOfRange is returned when a face index points past a vertex or normal list.
	ErrIndexOutOfRange = errors.New("morph: index out of range")
)

// TopologyError describes which list of which pose disagrees with the base mesh.
type TopologyError struct {
	Pose  string // "poseA" or "poseB"
	List  string // "vertices", "normals", "faces" or "face"
	Base  int    // base count, or face number when List is "face"
	Other int    // the pose's count, unused when List is "face"
}

func (e *TopologyError) Error() string {
	if e.List == "face" {
		return fmt.Sprintf("morph: topology mismatch: %s face %d differs from base", e.Pose, e.Base)
	}
	return fmt.Sprintf("morph: topology mismatch: %s has %d %s, base has %d", e.Pose, e.Other, e.List, e.Base)
}

func (e *TopologyError) Unwrap() error {
	return ErrTopologyMismatch
}

// IndexError pinpoints the face corner whose index could not be resolved.
type IndexError struct {
	Mesh   string // "base", "poseA" or "poseB"
	Kind   string // "vertex" or "normal"
	Face   int
	Corner int
	Index  uint32
	Len    int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("morph: index out of range: face %d corner %d %s index %d, %s has %d",
		e.Face, e.Corner, e.Kind, e.Index, e.Mesh, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
