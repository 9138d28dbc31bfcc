// Package screenshot writes rendered frames to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"
)

// PixelReader returns the current frame as bottom-up RGBA rows.
type PixelReader func() (pixels []byte, width, height int, err error)

// Capture saves frames to <dir>/<prefix>_<timestamp>.png.
type Capture struct {
	dir    string
	prefix string
	read   PixelReader
	now    func() time.Time
	create func(path string) (io.WriteCloser, error)
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// New creates a capture that pulls frames from read. read may be nil when
// only FromPixels is used.
func New(dir, prefix string, read PixelReader) *Capture {
	return &Capture{
		dir:    dir,
		prefix: prefix,
		read:   read,
		now:    time.Now,
		create: createFile,
	}
}

// Capture reads the current frame and saves it.
func (c *Capture) Capture() (string, error) {
	if c.read == nil {
		return "", fmt.Errorf("no pixel source")
	}
	pixels, width, height, err := c.read()
	if err != nil {
		return "", fmt.Errorf("reading pixels: %w", err)
	}
	return c.FromPixels(pixels, width, height)
}

// FromPixels saves width*height RGBA pixels. Rows are flipped since OpenGL
// has its origin at the bottom left.
func (c *Capture) FromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	path := c.Filename()
	file, err := c.create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	// A partial file is removed so it is never mistaken for a capture.
	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// Filename returns the path the next capture would be written to.
// Milliseconds keep rapid captures apart.
func (c *Capture) Filename() string {
	timestamp := c.now().Format("2006-01-02_15-04-05.000")
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.png", c.prefix, timestamp))
}
