package imaging

import "math"

// alignmentSignatureUnits is the 1:1:1:1:1 ratio an alignment pattern's
// concentric dark/light/dark/light/dark rings present along any line
// through its center, as opposed to a finder's 1:1:3:1:1.
var alignmentSignatureUnits = [5]float64{1, 1, 1, 1, 1}

func matchAlignmentSignature(runs []run, i int) (moduleSize float64, ok bool) {
	if i+5 > len(runs) || !runs[i].dark {
		return 0, false
	}
	total := 0
	for k := 0; k < 5; k++ {
		total += runs[i+k].length
	}
	moduleSize = float64(total) / 5
	if moduleSize < 1 {
		return 0, false
	}
	tolerance := SignatureMaxDeviation * moduleSize
	for k := 0; k < 5; k++ {
		expected := alignmentSignatureUnits[k] * moduleSize
		if math.Abs(float64(runs[i+k].length)-expected) > tolerance {
			return 0, false
		}
	}
	return moduleSize, true
}

// searchAlignment scans a pixel-space square of the given half-side
// centered on (cx, cy) for an alignment-pattern signature, first along
// rows then confirming with a column scan at the best row hit's
// column, mirroring the finder scan's horizontal-then-vertical shape
// at a smaller scale.
func searchAlignment(bmp *Bitmap, cx, cy, half float64) (candidate, bool) {
	minX := int(math.Floor(cx - half))
	maxX := int(math.Ceil(cx + half))
	minY := int(math.Floor(cy - half))
	maxY := int(math.Ceil(cy + half))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= bmp.Width {
		maxX = bmp.Width - 1
	}
	if maxY >= bmp.Height {
		maxY = bmp.Height - 1
	}
	if maxX <= minX || maxY <= minY {
		return candidate{}, false
	}
	width := maxX - minX + 1

	var hHits []candidate
	for y := minY; y <= maxY; y++ {
		runs := scanRuns(func(i int) bool { return bmp.At(minX+i, y) }, width)
		for i := 0; i+5 <= len(runs); i++ {
			moduleSize, ok := matchAlignmentSignature(runs, i)
			if !ok {
				continue
			}
			center := runs[i+2]
			hHits = append(hHits, candidate{
				X:          float64(minX) + float64(center.start) + float64(center.length)/2,
				Y:          float64(y),
				ModuleSize: moduleSize,
			})
		}
	}
	if len(hHits) == 0 {
		return candidate{}, false
	}

	// Keep the row hit closest to the search center; confirm it with
	// a vertical scan of its column.
	best := hHits[0]
	bestDist := math.Hypot(best.X-cx, best.Y-cy)
	for _, h := range hHits[1:] {
		d := math.Hypot(h.X-cx, h.Y-cy)
		if d < bestDist {
			best, bestDist = h, d
		}
	}

	col := int(math.Round(best.X))
	height := maxY - minY + 1
	runs := scanRuns(func(i int) bool { return bmp.At(col, minY+i) }, height)
	for i := 0; i+5 <= len(runs); i++ {
		moduleSize, ok := matchAlignmentSignature(runs, i)
		if !ok {
			continue
		}
		center := runs[i+2]
		vy := float64(minY) + float64(center.start) + float64(center.length)/2
		return candidate{X: best.X, Y: (best.Y + vy) / 2, ModuleSize: (best.ModuleSize + moduleSize) / 2}, true
	}
	return candidate{}, false
}

// AlignmentWidenFactor and AlignmentWidenAttempts implement the
// widen-and-retry behavior spec.md leaves as an open question: a
// failed alignment search is retried with its square widened by this
// factor, up to this many additional times, before the decoder falls
// back to the uncorrected affine transform for module sampling.
const (
	AlignmentWidenFactor   = 1.5
	AlignmentWidenAttempts = 2
)

// refineAlignment estimates the bottom-right alignment pattern's pixel
// center from the provisional affine transform, then searches for it
// in a square of side 0.3*(top+left legs), widening the square and
// retrying on failure up to AlignmentWidenAttempts times.
func refineAlignment(bmp *Bitmap, affine *affineTransform, corner Corner, dimension int) (candidate, bool) {
	moduleCol, moduleRow := float64(dimension-7), float64(dimension-7)
	cx, cy := affine.Forward(moduleCol, moduleRow)

	legTR := distance(corner.TopLeft, corner.TopRight)
	legBL := distance(corner.TopLeft, corner.BottomLeft)
	half := 0.3 * (legTR + legBL) / 2

	for attempt := 0; attempt <= AlignmentWidenAttempts; attempt++ {
		if found, ok := searchAlignment(bmp, cx, cy, half); ok {
			return found, true
		}
		half *= AlignmentWidenFactor
	}
	return candidate{}, false
}
