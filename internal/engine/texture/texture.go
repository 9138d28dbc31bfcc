// Package texture loads images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// Texture errors.
var (
	ErrOpenTexture = errors.New("cannot open texture")
	ErrDecode      = errors.New("cannot decode texture")
	ErrEmptyImage  = errors.New("texture has no pixels")
)

// RGBImage is a tightly packed 8-bit RGB image, top row first.
type RGBImage struct {
	Width  int
	Height int
	Pix    []byte
}

// At returns the color of the pixel at (x, y).
func (img *RGBImage) At(x, y int) [3]byte {
	i := (y*img.Width + x) * 3
	return [3]byte{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}
}

// FromImage converts any image to packed RGB. Alpha is dropped.
func FromImage(src image.Image) *RGBImage {
	b := src.Bounds()
	img := &RGBImage{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]byte, b.Dx()*b.Dy()*3),
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			i += 3
		}
	}
	return img
}

// Decode reads any registered image format (JPEG, PNG, GIF, BMP, TIFF, WebP)
// and returns it as RGB along with the format name.
func Decode(r io.Reader) (*RGBImage, string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	img := FromImage(src)
	if img.Width == 0 || img.Height == 0 {
		return nil, format, ErrEmptyImage
	}
	return img, format, nil
}

// Load reads an image file. TGA files, which carry no signature, are
// recognized by extension.
func Load(path string) (*RGBImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenTexture, path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return img, nil
	}

	img, _, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
