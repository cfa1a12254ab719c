package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a perspective projection matrix for WebGPU clip space, where depth maps
// to [0, 1] instead of the [-1, 1] produced by mgl32.Perspective.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// PutFloats writes float32 values little-endian into buf starting at offset and returns the
// offset just past the last value. buf must be large enough.
//
// Parameters:
//   - buf: destination byte buffer
//   - offset: byte offset of the first value
//   - values: the floats to write
//
// Returns:
//   - int: the offset following the written values
func PutFloats(buf []byte, offset int, values ...float32) int {
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
		offset += 4
	}
	return offset
}
