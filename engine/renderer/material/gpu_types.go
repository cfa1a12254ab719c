package material

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-morph/common"
)

// GPUMaterialSource is the canonical WGSL definition of the Material struct.
// Matches GPUMaterial layout exactly (48 bytes).
//
//go:embed assets/material.wgsl
var GPUMaterialSource string

// GPUMaterial is the GPU-aligned uniform for the Phong fragment shader.
// Each term is the base colour already scaled by its coefficient.
// Size: 48 bytes.
type GPUMaterial struct {
	Ambient  [4]float32 // offset  0: colour * Ka, w unused
	Diffuse  [4]float32 // offset 16: colour * Kd, w unused
	Specular [4]float32 // offset 32: colour * Ks, w = shininess
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloats(buf, 0, g.Ambient[:]...)
	off = common.PutFloats(buf, off, g.Diffuse[:]...)
	common.PutFloats(buf, off, g.Specular[:]...)
	return buf
}
