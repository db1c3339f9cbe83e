package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

// DecodeTGA decodes uncompressed and RLE-compressed true-color TGA data.
// Color-mapped and grayscale variants are rejected.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header truncated")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("tga: id field truncated")
	}
	pixels := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	perPixel := bpp / 8
	// Bit 5 of the descriptor flips row order to top-to-bottom.
	topDown := descriptor&0x20 != 0

	if imageType == tgaTrueColor {
		if len(pixels) < width*height*perPixel {
			return nil, fmt.Errorf("tga: pixel data truncated")
		}
		for y := 0; y < height; y++ {
			destY := y
			if !topDown {
				destY = height - 1 - y
			}
			for x := 0; x < width; x++ {
				img.SetRGBA(x, destY, readBGRA(pixels[(y*width+x)*perPixel:], perPixel))
			}
		}
		return img, nil
	}

	if err := decodeRLE(img, pixels, width, height, perPixel, topDown); err != nil {
		return nil, err
	}
	return img, nil
}

func decodeRLE(img *image.RGBA, pixels []byte, width, height, perPixel int, topDown bool) error {
	total := width * height
	pix, src := 0, 0

	set := func(c color.RGBA) {
		x, y := pix%width, pix/width
		if !topDown {
			y = height - 1 - y
		}
		img.SetRGBA(x, y, c)
		pix++
	}

	for pix < total {
		if src >= len(pixels) {
			return fmt.Errorf("tga: rle stream truncated")
		}
		packet := pixels[src]
		src++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if src+perPixel > len(pixels) {
				return fmt.Errorf("tga: rle run truncated")
			}
			c := readBGRA(pixels[src:], perPixel)
			src += perPixel
			for i := 0; i < count && pix < total; i++ {
				set(c)
			}
			continue
		}

		for i := 0; i < count && pix < total; i++ {
			if src+perPixel > len(pixels) {
				return fmt.Errorf("tga: raw run truncated")
			}
			set(readBGRA(pixels[src:], perPixel))
			src += perPixel
		}
	}
	return nil
}

func readBGRA(p []byte, perPixel int) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if perPixel == 4 {
		c.A = p[3]
	}
	return c
}
