package texture

import (
	"image"
	"image/color"
	"testing"
)

// buildTGA assembles a minimal bottom-up true-color TGA.
func buildTGA(imageType byte, width, height, bpp int, pixels []byte) []byte {
	header := make([]byte, 18)
	header[2] = imageType
	header[12] = byte(width)
	header[13] = byte(width >> 8)
	header[14] = byte(height)
	header[15] = byte(height >> 8)
	header[16] = byte(bpp)
	return append(header, pixels...)
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2, 24bpp, BGR order, bottom-up: first stored row is the image's
	// bottom row.
	pixels := []byte{
		255, 0, 0, 0, 255, 0, // bottom row: blue, green
		0, 0, 255, 255, 255, 255, // top row: red, white
	}
	img, err := DecodeTGA(buildTGA(tgaTrueColor, 2, 2, 24, pixels))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	rgba := img.(*image.RGBA)
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("top-left = %v, want red", got)
	}
	if got := rgba.RGBAAt(0, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("bottom-left = %v, want blue", got)
	}
	if got := rgba.RGBAAt(1, 1); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("bottom-right = %v, want green", got)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// One RLE packet repeating a single 32bpp pixel across all four
	// positions of a 2x2 image.
	pixels := []byte{0x83, 0, 0, 255, 128}
	img, err := DecodeTGA(buildTGA(tgaTrueColorRLE, 2, 2, 32, pixels))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	rgba := img.(*image.RGBA)
	want := color.RGBA{R: 255, A: 128}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := rgba.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDecodeTGARejectsUnsupported(t *testing.T) {
	if _, err := DecodeTGA(nil); err == nil {
		t.Error("empty input should fail")
	}
	if _, err := DecodeTGA(buildTGA(1, 1, 1, 24, make([]byte, 3))); err == nil {
		t.Error("color-mapped type should fail")
	}
	if _, err := DecodeTGA(buildTGA(tgaTrueColor, 1, 1, 16, make([]byte, 2))); err == nil {
		t.Error("16bpp should fail")
	}
	if _, err := DecodeTGA(buildTGA(tgaTrueColor, 4, 4, 24, make([]byte, 3))); err == nil {
		t.Error("truncated pixel data should fail")
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 2, A: 255})
	img.SetRGBA(0, 2, color.RGBA{R: 3, A: 255})

	flipVertical(img)

	if img.RGBAAt(0, 0).R != 3 || img.RGBAAt(0, 1).R != 2 || img.RGBAAt(0, 2).R != 1 {
		t.Errorf("rows not reversed: %v %v %v",
			img.RGBAAt(0, 0), img.RGBAAt(0, 1), img.RGBAAt(0, 2))
	}
}

func TestToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(2, 2, 4, 4))
	gray.SetGray(2, 2, color.Gray{Y: 200})

	rgba := toRGBA(gray)
	if rgba.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("bounds = %v, want origin-normalized 2x2", rgba.Bounds())
	}
	got := rgba.RGBAAt(0, 0)
	if got.R != 200 || got.G != 200 || got.B != 200 || got.A != 255 {
		t.Errorf("converted pixel = %v, want gray 200", got)
	}

	// RGBA input passes through untouched
	direct := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if toRGBA(direct) != direct {
		t.Error("*image.RGBA should pass through without copying")
	}
}
