// Package raster renders a QR Grid to a standard image.Image, the
// matrix-to-image adapter spec.md's external interfaces section calls
// for. It has no image-to-Grid direction; reading images back is done
// by the decoder.
package raster

import (
	"image"
	"image/color"

	"github.com/jalphad/qrcodec/internal/matrix"
)

// Options controls how a Grid is rasterized.
type Options struct {
	ModuleSize int // pixels per module, default 1 if zero
	QuietZone  int // modules of white border; zero means no border, negative is treated as zero
}

func (o Options) normalized() Options {
	if o.ModuleSize <= 0 {
		o.ModuleSize = 1
	}
	if o.QuietZone < 0 {
		o.QuietZone = 0
	}
	return o
}

// Render draws grid as a black-on-white image.Gray.
func Render(grid *matrix.Grid, opts Options) *image.Gray {
	opts = opts.normalized()
	modules := grid.Size + 2*opts.QuietZone
	side := modules * opts.ModuleSize
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			if grid.At(r, c) != matrix.Black {
				continue
			}
			px0 := (c + opts.QuietZone) * opts.ModuleSize
			py0 := (r + opts.QuietZone) * opts.ModuleSize
			for dy := 0; dy < opts.ModuleSize; dy++ {
				for dx := 0; dx < opts.ModuleSize; dx++ {
					img.SetGray(px0+dx, py0+dy, color.Gray{Y: 0})
				}
			}
		}
	}
	return img
}
