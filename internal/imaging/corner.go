package imaging

import "math"

// CornerSideLengthDev is the maximum fractional difference allowed
// between a corner triple's two legs (top-left→top-right and
// top-left→bottom-left) before the triple is rejected. spec.md names
// the check but leaves the tolerance to the implementation; 0.18
// tracks the same generosity the finder signature test itself uses
// (SignatureMaxDeviation) since both absorb lens and perspective
// distortion.
const CornerSideLengthDev = 0.18

// CornerRightAngleDev is the maximum deviation, in radians, of the
// angle between a corner triple's two legs from a true right angle.
const CornerRightAngleDev = 0.3

// Corner is three finder-pattern candidates canonicalized into the
// roles the QR symbol assigns them.
type Corner struct {
	TopLeft, TopRight, BottomLeft candidate
}

func distance(a, b candidate) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}

// triangleAngle returns the interior angle, in radians, of the
// triangle a-b-c at vertex a.
func triangleAngle(a, b, c candidate) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	acx, acy := c.X-a.X, c.Y-a.Y
	dot := abx*acx + aby*acy
	magAB := math.Hypot(abx, aby)
	magAC := math.Hypot(acx, acy)
	if magAB == 0 || magAC == 0 {
		return 0
	}
	cos := dot / (magAB * magAC)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}

// AssembleCorners enumerates every 3-subset of cands and keeps those
// that pass the side-length and right-angle checks, canonicalizing
// each survivor's roles by enclosed angle (top-left) and leg slope
// (top-right vs. bottom-left).
func AssembleCorners(cands []candidate) []Corner {
	var out []Corner
	n := len(cands)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if c, ok := tryCorner(cands[i], cands[j], cands[k]); ok {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func tryCorner(a, b, c candidate) (Corner, bool) {
	angleA := triangleAngle(a, b, c)
	angleB := triangleAngle(b, a, c)
	angleC := triangleAngle(c, a, b)

	var topLeft, p, q candidate
	switch {
	case angleA >= angleB && angleA >= angleC:
		topLeft, p, q = a, b, c
	case angleB >= angleA && angleB >= angleC:
		topLeft, p, q = b, a, c
	default:
		topLeft, p, q = c, a, b
	}

	// The leg closer to horizontal (smaller |dy/dx|) runs to
	// top-right; the other runs to bottom-left.
	slope := func(v candidate) float64 {
		dx := v.X - topLeft.X
		dy := v.Y - topLeft.Y
		if dx == 0 {
			return math.Inf(1)
		}
		return math.Abs(dy / dx)
	}
	topRight, bottomLeft := p, q
	if slope(q) < slope(p) {
		topRight, bottomLeft = q, p
	}

	legTR := distance(topLeft, topRight)
	legBL := distance(topLeft, bottomLeft)
	if legTR == 0 || legBL == 0 {
		return Corner{}, false
	}
	avgLeg := (legTR + legBL) / 2
	if math.Abs(legTR-legBL)/avgLeg > CornerSideLengthDev {
		return Corner{}, false
	}

	angle := triangleAngle(topLeft, topRight, bottomLeft)
	if math.Abs(angle-math.Pi/2) > CornerRightAngleDev {
		return Corner{}, false
	}

	return Corner{TopLeft: topLeft, TopRight: topRight, BottomLeft: bottomLeft}, true
}
