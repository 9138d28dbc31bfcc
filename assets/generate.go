//go:build ignore

// This program writes the default cube texture, a two-tone checkerboard
// with a dark border on every face.
// Run with: go run generate.go
package main

import (
	"flag"
	"image"
	"image/color"
	"image/jpeg"
	"os"
)

func main() {
	out := flag.String("out", "texture.jpg", "output path")
	size := flag.Int("size", 256, "texture size in pixels")
	cells := flag.Int("cells", 8, "checker cells per side")
	flag.Parse()

	light := color.RGBA{R: 230, G: 200, B: 150, A: 255}
	dark := color.RGBA{R: 150, G: 90, B: 50, A: 255}
	border := color.RGBA{R: 40, G: 25, B: 15, A: 255}

	n := *size
	cell := n / *cells
	edge := n / 32

	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			if x < edge || y < edge || x >= n-edge || y >= n-edge {
				c = border
			}
			img.SetRGBA(x, y, c)
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		panic(err)
	}
}
