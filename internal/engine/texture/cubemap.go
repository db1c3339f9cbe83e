package texture

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/gpu"
)

// Cubemap is a six-faced GL texture sampled by direction, used for sky
// rendering.
type Cubemap struct {
	id uint32
}

// CubemapFromImages uploads the six face images in GL face order:
// +X, -X, +Y, -Y, +Z, -Z. All faces must be square and the same size.
func CubemapFromImages(faces [6]image.Image) (*Cubemap, error) {
	c := &Cubemap{}
	gpu.Ignore()
	gl.GenTextures(1, &c.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)

	size := -1
	for i, face := range faces {
		rgba := toRGBA(face)
		w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
		if w != h {
			c.Release()
			return nil, fmt.Errorf("texture: cubemap face %d is %dx%d, must be square", i, w, h)
		}
		if size == -1 {
			size = w
		} else if w != size {
			c.Release()
			return nil, fmt.Errorf("texture: cubemap face %d is %d texels, others are %d", i, w, size)
		}
		// Cube faces keep decoder row order; GL samples them top-down.
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	// Face size beyond the driver's cubemap limit surfaces here.
	if err := gpu.Check(); err != nil {
		c.Release()
		return nil, fmt.Errorf("texture: cubemap upload %dx%d: %w", size, size, err)
	}
	return c, nil
}

// LoadCubemap reads six image files in GL face order and uploads them.
func LoadCubemap(paths [6]string) (*Cubemap, error) {
	var faces [6]image.Image
	for i, path := range paths {
		t, err := decodeFile(path)
		if err != nil {
			return nil, err
		}
		faces[i] = t
	}
	return CubemapFromImages(faces)
}

// ID returns the GL texture name.
func (c *Cubemap) ID() uint32 { return c.id }

// Bind makes the cubemap current on the given texture unit.
func (c *Cubemap) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)
}

// Release frees the GL texture.
func (c *Cubemap) Release() {
	if c.id != 0 {
		gl.DeleteTextures(1, &c.id)
		c.id = 0
	}
}
