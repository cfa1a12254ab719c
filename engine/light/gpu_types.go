package light

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-morph/common"
)

// GPULightSource is the canonical WGSL definition of the Light struct.
// Matches GPULight layout exactly (64 bytes).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of the point light.
// Matches the WGSL Light struct layout exactly (see GPULightSource).
// Size: 64 bytes.
type GPULight struct {
	Position [4]float32 // offset  0: eye-space position, w = 1
	Ambient  [4]float32 // offset 16: La, w unused
	Diffuse  [4]float32 // offset 32: Ld, w unused
	Specular [4]float32 // offset 48: Ls, w unused
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloats(buf, 0, g.Position[:]...)
	off = common.PutFloats(buf, off, g.Ambient[:]...)
	off = common.PutFloats(buf, off, g.Diffuse[:]...)
	common.PutFloats(buf, off, g.Specular[:]...)
	return buf
}
