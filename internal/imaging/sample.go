package imaging

import (
	"math"

	"github.com/jalphad/qrcodec/internal/matrix"
	"github.com/jalphad/qrcodec/internal/tables"
)

// roundHalfAwayFromZero implements the rounding rule spec.md specifies
// for module sampling: exact .5 values round away from zero, the same
// rule Go's math.Round uses (unlike the half-to-even math.RoundToEven),
// spelled out here so the sampling rule is visible at its call sites.
func roundHalfAwayFromZero(v float64) int {
	if v >= 0 {
		return int(math.Floor(v + 0.5))
	}
	return -int(math.Floor(-v + 0.5))
}

// moduleSampler samples a module grid back through a pixel transform,
// feeding matrix.Grid's own bit-import plumbing (ImportBit,
// ImportFormatAndVersion) the sampled bits one module at a time.
type moduleSampler struct {
	bmp       *Bitmap
	transform Transform
}

// Get satisfies the bitSource interface matrix.Grid.ImportFormatAndVersion
// expects: (x, y) are module column/row, matching the convention the
// affine and perspective transforms both use.
func (s moduleSampler) Get(x, y int) bool {
	px, py := s.transform.Forward(float64(x), float64(y))
	return s.bmp.At(roundHalfAwayFromZero(px), roundHalfAwayFromZero(py))
}

// estimateDimension infers the symbol's module dimension from a
// corner's finder spacing and average module size, then snaps it to
// the nearest legal QR dimension (21 + 4k). The affine transform
// itself needs a dimension before it can be solved, since its module
// anchors are expressed in terms of D; this estimate is what makes
// that solvable without already knowing the version.
func estimateDimension(corner Corner) int {
	moduleSize := (corner.TopLeft.ModuleSize + corner.TopRight.ModuleSize + corner.BottomLeft.ModuleSize) / 3
	if moduleSize <= 0 {
		return tables.Dimension(tables.MinVersion)
	}
	legTR := distance(corner.TopLeft, corner.TopRight)
	legBL := distance(corner.TopLeft, corner.BottomLeft)
	// Finder centers sit at module column/row 3 and D-4, so the
	// distance between adjacent centers is D-7 modules.
	modulesBetweenCenters := (legTR + legBL) / 2 / moduleSize
	estimatedDimension := modulesBetweenCenters + 7

	version := math.Round((estimatedDimension - 17) / 4)
	if version < tables.MinVersion {
		version = tables.MinVersion
	}
	if version > tables.MaxVersion {
		version = tables.MaxVersion
	}
	return tables.Dimension(int(version))
}

// sampleFormatAndVersion populates a grid's reserved format/version
// strips from the transform and decodes them, preferring the primary
// copy and falling back to the mirrored secondary copy spec.md calls
// for ("sample two ... regions").
func sampleFormatAndVersion(g *matrix.Grid, sampler moduleSampler) (tables.Level, int, bool) {
	g.ImportFormatAndVersion(sampler)

	level, mask, ok := tables.DecodeFormat(g.ReadFormatBits())
	if !ok {
		level, mask, ok = tables.DecodeFormat(readFormatSecondary(g))
	}
	if !ok {
		return 0, 0, false
	}

	if g.Version >= 7 {
		if decoded, vOK := tables.DecodeVersion(g.ReadVersionBits()); !vOK || decoded != g.Version {
			if decoded, vOK = tables.DecodeVersion(readVersionSecondary(g)); !vOK || decoded != g.Version {
				return 0, 0, false
			}
		}
	}
	return level, mask, true
}

// readFormatSecondary mirrors matrix.Grid.StampFormat's second-copy
// write locations, since ReadFormatBits only ever looks at the
// primary copy near the top-left finder.
func readFormatSecondary(g *matrix.Grid) uint32 {
	var v uint32
	for i := 0; i < 8; i++ {
		if g.At(g.Size-1-i, 8) == matrix.Black {
			v |= 1 << uint(i)
		}
	}
	for i := 8; i < 15; i++ {
		if g.At(8, g.Size-15+i) == matrix.Black {
			v |= 1 << uint(i)
		}
	}
	return v
}

// readVersionSecondary mirrors matrix.Grid.StampVersion's second
// (transposed) version block.
func readVersionSecondary(g *matrix.Grid) uint32 {
	var v uint32
	for i := 0; i < 18; i++ {
		r, c := i/3, i%3
		if g.At(g.Size-11+c, r) == matrix.Black {
			v |= 1 << uint(i)
		}
	}
	return v
}

// recoverableFraction is the approximate share of codewords each EC
// level can repair, per tables.Level's own doc comments. It bounds how
// much fixed-module mismatch (see verifyFixedModules) a corner may
// carry before it is treated as a bad localization rather than a
// noisy-but-readable photograph.
func recoverableFraction(level tables.Level) float64 {
	switch level {
	case tables.Low:
		return 0.07
	case tables.Medium:
		return 0.15
	case tables.Quartile:
		return 0.25
	case tables.High:
		return 0.30
	default:
		return 0.07
	}
}

// verifyFixedModules re-samples every function cell that is not part
// of the per-symbol format/version strips (finders, separators,
// timing, alignment, dark module) and reports the fraction that
// disagree with the grid's known, constructed value. A corner whose
// rectification is off produces many mismatches here well before the
// Reed-Solomon stage would notice anything wrong.
func verifyFixedModules(g *matrix.Grid, sampler moduleSampler) float64 {
	mismatches, total := 0, 0
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if !g.IsFunction(r, c) || isFormatOrVersionCell(g, r, c) {
				continue
			}
			total++
			want := g.At(r, c) == matrix.Black
			if sampler.Get(c, r) != want {
				mismatches++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(mismatches) / float64(total)
}

func isFormatOrVersionCell(g *matrix.Grid, r, c int) bool {
	size := g.Size
	if r == 8 && c <= 8 && c != 6 {
		return true
	}
	if c == 8 && r <= 8 && r != 6 {
		return true
	}
	if r == 8 && c >= size-8 {
		return true
	}
	if c == 8 && r >= size-7 && r <= size-1 {
		return true
	}
	if g.Version >= 7 {
		if r < 6 && c >= size-11 && c < size-8 {
			return true
		}
		if c < 6 && r >= size-11 && r < size-8 {
			return true
		}
	}
	return false
}
