package imaging

import (
	"fmt"
	"image"
)

// Bitmap is a binarized pixel grid: true means a dark (ink) module,
// false means light (background). Row-major, (0,0) at the top-left.
type Bitmap struct {
	Width, Height int
	bits          []bool
}

func newBitmap(w, h int) *Bitmap {
	return &Bitmap{Width: w, Height: h, bits: make([]bool, w*h)}
}

// At reports whether pixel (x, y) is dark. Out-of-range coordinates
// read as light, which lets callers scan windows near an edge without
// a separate bounds check.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.bits[y*b.Width+x]
}

func (b *Bitmap) set(x, y int, dark bool) {
	b.bits[y*b.Width+x] = dark
}

// Binarize converts img to grayscale using the same integer-weighted
// formula libjpeg and most QR readers use (gray = (30R+59G+11B)/100),
// then thresholds the whole image against a single global cutoff
// derived from the luminance histogram: the midpoint between the
// darkest and lightest populated bins. A photograph with fewer than
// two populated bins (e.g. a blank or saturated frame) carries no
// separable foreground and is rejected outright.
func Binarize(img image.Image) (*Bitmap, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("imaging: empty image")
	}

	gray := make([]int, w*h)
	var histogram [256]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit-scaled channels; reduce to 8-bit
			// before applying the weighted luminance formula.
			r8, g8, b8 := r>>8, g>>8, b>>8
			v := int(30*r8+59*g8+11*b8) / 100
			if v > 255 {
				v = 255
			}
			gray[y*w+x] = v
			histogram[v]++
		}
	}

	first, last := -1, -1
	for v := 0; v < 256; v++ {
		if histogram[v] == 0 {
			continue
		}
		if first == -1 {
			first = v
		}
		last = v
	}
	if first == -1 || first == last {
		return nil, fmt.Errorf("imaging: image has no separable luminance range")
	}

	cutoff := (first + last + 1) / 2
	bmp := newBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bmp.set(x, y, gray[y*w+x] < cutoff)
		}
	}
	return bmp, nil
}
