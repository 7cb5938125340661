// Package imaging locates and rectifies QR symbols inside a
// photograph or scan: grayscale reduction and global binarization,
// horizontal/vertical finder-pattern scanning, three-finder corner
// assembly, an affine transform refined by a perspective solve around
// the alignment pattern, and module-by-module sampling back through
// the inverse of that transform. Every stage is this module's own
// code; no part of the localization algorithm is delegated to an
// image-processing library (see DESIGN.md on why no pack repo could
// be used to ground this specific algorithm).
package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/jalphad/qrcodec/internal/matrix"
	"github.com/jalphad/qrcodec/internal/tables"
)

// ErrLocalization reports that no QR symbol could be found and
// rectified anywhere in the image. LocateAll returns it only when every
// candidate finder-triple failed; a failure at one particular triple is
// not surfaced, LocateAll simply moves on to the next candidate.
type ErrLocalization struct {
	Cause error
}

func (e *ErrLocalization) Error() string {
	return fmt.Sprintf("imaging: failed to localize QR symbol: %v", e.Cause)
}

func (e *ErrLocalization) Unwrap() error { return e.Cause }

// Located is a rectified QR grid plus the format/version metadata
// sampled from its fixed patterns, ready for matrix-level decoding.
type Located struct {
	Grid  *matrix.Grid
	Level tables.Level
	Mask  int
}

// LocateAll finds every QR symbol in img. Each surviving finder
// corner that rectifies cleanly (readable format/version information,
// fixed-module mismatch within its EC level's recoverable share)
// contributes one Located value; a photograph with no readable symbol
// yields a nil slice and a non-nil error, but a photograph with one
// bad corner alongside one good one returns the good one without
// error, since a multi-symbol image (spec.md's concrete scenario of
// two symbols side by side) must not fail just because some 3-subset
// of the finders it found didn't assemble into a real symbol.
func LocateAll(img image.Image) ([]*Located, error) {
	bmp, err := Binarize(img)
	if err != nil {
		return nil, &ErrLocalization{Cause: err}
	}

	finders := FindFinders(bmp)
	corners := AssembleCorners(finders)
	if len(corners) == 0 {
		return nil, &ErrLocalization{Cause: fmt.Errorf("no finder corner assembled")}
	}

	var results []*Located
	var claimed []Corner
	var lastErr error
	for _, corner := range corners {
		if isDuplicate(claimed, corner) {
			continue
		}
		located, err := locateOne(bmp, corner)
		if err != nil {
			lastErr = err
			continue
		}
		results = append(results, located)
		claimed = append(claimed, corner)
	}

	if len(results) == 0 {
		if lastErr == nil {
			lastErr = fmt.Errorf("no corner rectified to a readable symbol")
		}
		return nil, &ErrLocalization{Cause: lastErr}
	}
	return results, nil
}

// Locate is a convenience wrapper over LocateAll for callers that know
// an image carries exactly one symbol. It returns the first located
// result.
func Locate(img image.Image) (*Located, error) {
	all, err := LocateAll(img)
	if err != nil {
		return nil, err
	}
	return all[0], nil
}

// locateOne runs one finder corner through the rest of the per-corner
// state machine: affine fit, optional alignment-guided perspective
// refinement, format/version sampling, full-grid sampling, and
// fixed-module verification. Any stage failing here means "try the
// next corner" to the caller, never a hard error for the whole image.
func locateOne(bmp *Bitmap, corner Corner) (*Located, error) {
	dimension := estimateDimension(corner)
	version := (dimension - 17) / 4
	if version < tables.MinVersion || version > tables.MaxVersion {
		return nil, fmt.Errorf("unsupported estimated dimension %d", dimension)
	}

	moduleAnchors := [3]point{
		{X: 3, Y: 3},
		{X: float64(dimension - 4), Y: 3},
		{X: 3, Y: float64(dimension - 4)},
	}
	pixelAnchors := [3]point{
		{X: corner.TopLeft.X, Y: corner.TopLeft.Y},
		{X: corner.TopRight.X, Y: corner.TopRight.Y},
		{X: corner.BottomLeft.X, Y: corner.BottomLeft.Y},
	}
	affine, err := solveAffine(moduleAnchors, pixelAnchors)
	if err != nil {
		return nil, err
	}

	var transform Transform = affine
	if version >= 2 {
		if alignment, ok := refineAlignment(bmp, affine, corner, dimension); ok {
			perspective, err := solvePerspective(
				[4]point{moduleAnchors[0], moduleAnchors[1], moduleAnchors[2], {X: float64(dimension - 7), Y: float64(dimension - 7)}},
				[4]point{pixelAnchors[0], pixelAnchors[1], pixelAnchors[2], {X: alignment.X, Y: alignment.Y}},
			)
			if err == nil {
				transform = perspective
			}
		}
	}

	g := matrix.NewGrid(version)
	sampler := moduleSampler{bmp: bmp, transform: transform}

	level, mask, ok := sampleFormatAndVersion(g, sampler)
	if !ok {
		return nil, fmt.Errorf("unreadable format/version information")
	}

	for r := 0; r < dimension; r++ {
		for c := 0; c < dimension; c++ {
			if !g.IsFunction(r, c) {
				g.ImportBit(r, c, sampler.Get(c, r))
			}
		}
	}

	if mismatch := verifyFixedModules(g, sampler); mismatch > recoverableFraction(level) {
		return nil, fmt.Errorf("fixed-module mismatch %.2f exceeds %s's recoverable share", mismatch, level)
	}

	return &Located{Grid: g, Level: level, Mask: mask}, nil
}

// isDuplicate reports whether corner shares all three finders (within
// a few modules) with a corner already claimed by an earlier,
// successfully rectified corner — the same physical symbol can
// assemble into more than one valid-looking 3-subset when several
// finders sit close together, and a second read of the same symbol is
// not a second symbol.
func isDuplicate(claimed []Corner, corner Corner) bool {
	near := func(a, b candidate) bool {
		threshold := 3 * math.Max(a.ModuleSize, b.ModuleSize)
		return distance(a, b) < threshold
	}
	for _, c := range claimed {
		if near(c.TopLeft, corner.TopLeft) && near(c.TopRight, corner.TopRight) && near(c.BottomLeft, corner.BottomLeft) {
			return true
		}
	}
	return false
}
