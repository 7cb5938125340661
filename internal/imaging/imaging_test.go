package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalphad/qrcodec/internal/bitstream"
	"github.com/jalphad/qrcodec/internal/blocks"
	"github.com/jalphad/qrcodec/internal/matrix"
	"github.com/jalphad/qrcodec/internal/tables"
	"github.com/jalphad/qrcodec/qrcode/raster"
)

func TestBinarizeRejectsFlatImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	_, err := Binarize(img)
	assert.Error(t, err)
}

func TestBinarizeThresholdsBlackAndWhite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.Black)
		img.Set(x, 1, color.Black)
	}
	for x := 2; x < 4; x++ {
		img.Set(x, 0, color.White)
		img.Set(x, 1, color.White)
	}
	bmp, err := Binarize(img)
	require.NoError(t, err)
	assert.True(t, bmp.At(0, 0))
	assert.True(t, bmp.At(1, 1))
	assert.False(t, bmp.At(3, 0))
	assert.False(t, bmp.At(2, 1))
}

func TestFindFindersLocatesSyntheticFinderPattern(t *testing.T) {
	const modulePx = 4
	width, height := 200, 200
	bmp := newBitmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bmp.set(x, y, false)
		}
	}

	draw := func(originX, originY int) {
		outer := image.Rect(originX, originY, originX+7*modulePx, originY+7*modulePx)
		lightRing := image.Rect(originX+modulePx, originY+modulePx, originX+6*modulePx, originY+6*modulePx)
		core := image.Rect(originX+2*modulePx, originY+2*modulePx, originX+5*modulePx, originY+5*modulePx)
		for y := outer.Min.Y; y < outer.Max.Y; y++ {
			for x := outer.Min.X; x < outer.Max.X; x++ {
				dark := true
				if (image.Point{X: x, Y: y}.In(lightRing)) {
					dark = false
				}
				if (image.Point{X: x, Y: y}.In(core)) {
					dark = true
				}
				bmp.set(x, y, dark)
			}
		}
	}
	draw(20, 20)
	draw(20+16*modulePx, 20)
	draw(20, 20+16*modulePx)

	finders := FindFinders(bmp)
	require.GreaterOrEqual(t, len(finders), 3)

	corners := AssembleCorners(finders)
	require.NotEmpty(t, corners)
}

func TestGaussianSolveIdentity(t *testing.T) {
	aug := [][]float64{
		{1, 0, 0, 5},
		{0, 1, 0, 7},
		{0, 0, 1, 9},
	}
	sol, ok := gaussianSolve(aug)
	require.True(t, ok)
	assert.Equal(t, []float64{5, 7, 9}, sol)
}

func TestAffineTransformMapsAnchorsExactly(t *testing.T) {
	module := [3]point{{X: 3, Y: 3}, {X: 17, Y: 3}, {X: 3, Y: 17}}
	pixel := [3]point{{X: 100, Y: 100}, {X: 400, Y: 110}, {X: 110, Y: 400}}
	aff, err := solveAffine(module, pixel)
	require.NoError(t, err)
	for i, m := range module {
		px, py := aff.Forward(m.X, m.Y)
		assert.InDelta(t, pixel[i].X, px, 1e-6)
		assert.InDelta(t, pixel[i].Y, py, 1e-6)
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1, roundHalfAwayFromZero(0.5))
	assert.Equal(t, -1, roundHalfAwayFromZero(-0.5))
	assert.Equal(t, 2, roundHalfAwayFromZero(1.5))
	assert.Equal(t, 0, roundHalfAwayFromZero(0.4))
}

// TestLocateAllRoundTripsRenderedGrid builds a real encoded symbol,
// renders it through qrcode/raster, and confirms LocateAll recovers a
// grid that reads back the identical codewords and mask.
func TestLocateAllRoundTripsRenderedGrid(t *testing.T) {
	segs := bitstream.SegmentText("IMAGING ROUND TRIP")
	level := tables.Quartile
	version := 3
	capacityBytes := tables.DataCodewords(version, level)

	w := &bitstream.Writer{}
	for _, s := range segs {
		require.NoError(t, s.Write(w, version))
	}
	w.Push(0, 4)
	w.PadToByte()
	data := w.Bytes()
	padBytes := [2]byte{0xEC, 0x11}
	for i := 0; len(data) < capacityBytes; i++ {
		data = append(data, padBytes[i%2])
	}
	data = data[:capacityBytes]

	layout := tables.Blocks(version, level)
	dataBlocks := blocks.Partition(data, layout)
	interleaved := blocks.EncodeInterleaved(dataBlocks, layout.ECLen)

	g := matrix.NewGrid(version)
	g.PlaceData(interleaved)
	mask, masked := matrix.ChooseMask(g)
	masked.StampFormat(tables.EncodeFormat((level.FormatBits() << 3) | uint32(mask)))

	img := raster.Render(masked, raster.Options{ModuleSize: 6, QuietZone: 4})

	located, err := Locate(img)
	require.NoError(t, err)
	assert.Equal(t, version, located.Grid.Version)
	assert.Equal(t, level, located.Level)
	assert.Equal(t, mask, located.Mask)
	assert.Equal(t, masked.ReadData(mask), located.Grid.ReadData(located.Mask))
}
