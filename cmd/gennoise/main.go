// Command gennoise writes a small animated PNG of random noise frames,
// exercising both the palette and truecolor encoding paths.
package main

import (
	"log"
	"math/rand/v2"

	"github.com/pngraster/rasterpng"
)

const (
	frameCount = 30
	width      = 600
	height     = 200
)

func main() {
	paletted := rasterpng.AnimOptions{
		Options:  rasterpng.Options{UsePalette: true},
		DelayNum: []uint16{7},
		DelayDen: []uint16{100},
	}
	if err := rasterpng.SaveAPNG("noise-paletted.png", generatePalettedFrames(), paletted); err != nil {
		log.Fatalf("gennoise: paletted: %v", err)
	}
	if err := rasterpng.SaveUniform("noise-rgba.png", generateRGBAFrames(), 7); err != nil {
		log.Fatalf("gennoise: rgba: %v", err)
	}
}

var palette = [][3]uint16{
	{0, 0, 0},
	{255, 255, 255},
	{255, 0, 255},
}

func generatePalettedFrames() []rasterpng.Raster {
	frames := make([]rasterpng.Raster, frameCount)
	for i := range frames {
		pix := make([]uint16, height*width*3)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := palette[rand.IntN(len(palette))]
				off := (y*width + x) * 3
				pix[off], pix[off+1], pix[off+2] = c[0], c[1], c[2]
			}
		}
		frames[i] = rasterpng.NewMultiChannel(height, width, 3, 8, pix)
	}
	return frames
}

func generateRGBAFrames() []rasterpng.Raster {
	frames := make([]rasterpng.Raster, frameCount)
	for i := range frames {
		pix := make([]uint16, height*width*4)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := palette[rand.IntN(len(palette))]
				off := (y*width + x) * 4
				pix[off], pix[off+1], pix[off+2], pix[off+3] = c[0], c[1], c[2], 255
			}
		}
		frames[i] = rasterpng.NewMultiChannel(height, width, 4, 8, pix)
	}
	return frames
}
