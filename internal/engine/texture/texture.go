// Package texture decodes images and uploads them as GL textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"

	"github.com/Faultbox/prism/internal/engine/gpu"
)

// Filter selects the sampling mode applied when the texture is minified
// or magnified.
type Filter int32

const (
	Nearest Filter = gl.NEAREST
	Linear  Filter = gl.LINEAR
	// Trilinear uses a mipmap chain for minification. Mipmaps are
	// generated at upload time when this filter is chosen.
	Trilinear Filter = gl.LINEAR_MIPMAP_LINEAR
)

// Wrap selects how coordinates outside [0,1] sample the texture.
type Wrap int32

const (
	Repeat      Wrap = gl.REPEAT
	ClampToEdge Wrap = gl.CLAMP_TO_EDGE
	Mirrored    Wrap = gl.MIRRORED_REPEAT
)

// Texture is a 2D GL texture.
type Texture struct {
	id     uint32
	width  int32
	height int32
}

// FromImage converts img to RGBA, flips it to GL's bottom-up row order
// and uploads it.
func FromImage(img image.Image, min, mag Filter, wrap Wrap) *Texture {
	rgba := toRGBA(img)
	flipVertical(rgba)
	return fromRGBA(rgba, min, mag, wrap)
}

// Load reads and decodes an image file, then uploads it.
func Load(path string, min, mag Filter, wrap Wrap) (*Texture, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img, min, mag, wrap), nil
}

// decodeFile decodes an image file. PNG and JPEG decode through the
// standard registry; TGA is dispatched by extension since the format has
// no magic bytes to sniff.
func decodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// White returns a 1x1 opaque white texture, the sampler bound for
// untextured draws so shaders need no texturing branch.
func White() *Texture {
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Pix[0], rgba.Pix[1], rgba.Pix[2], rgba.Pix[3] = 255, 255, 255, 255
	return fromRGBA(rgba, Nearest, Nearest, Repeat)
}

func fromRGBA(rgba *image.RGBA, min, mag Filter, wrap Wrap) *Texture {
	t := &Texture{
		width:  int32(rgba.Bounds().Dx()),
		height: int32(rgba.Bounds().Dy()),
	}

	// Stale errors from earlier GL traffic would be misattributed to
	// this upload.
	gpu.Ignore()

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, t.width, t.height, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int32(min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int32(mag))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int32(wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int32(wrap))
	if min == Trilinear {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gpu.Verify()

	return t
}

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (int32, int32) { return t.width, t.height }

// Bind makes the texture current on the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Release frees the GL texture. The Texture must not be used afterwards.
func (t *Texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// toRGBA converts any decoded image to tightly packed RGBA, scaling
// nothing. Images that already are *image.RGBA pass through.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// flipVertical reverses the row order in place. Image decoders put row 0
// at the top while GL's texture origin is bottom-left.
func flipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bot := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}
