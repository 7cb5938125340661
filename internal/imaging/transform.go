package imaging

import "fmt"

// point is a generic 2D coordinate, used for both module-space
// (column, row) and pixel-space (x, y) values.
type point struct{ X, Y float64 }

// Transform maps module-space coordinates (column, row — fractional,
// centered on a module) to pixel-space coordinates in the source
// image.
type Transform interface {
	Forward(col, row float64) (px, py float64)
}

// affineTransform implements the 6-coefficient mapping spec.md
// describes: px = a*col + c*row + e, py = b*col + d*row + f.
type affineTransform struct {
	a, b, c, d, e, f float64
}

func (t *affineTransform) Forward(col, row float64) (px, py float64) {
	px = t.a*col + t.c*row + t.e
	py = t.b*col + t.d*row + t.f
	return
}

// solveAffine fits the coefficients of an affineTransform from three
// module-space/pixel-space correspondences by solving two independent
// 3x3 linear systems (one for a,c,e; one for b,d,f) that share the
// same coefficient matrix.
func solveAffine(module, pixel [3]point) (*affineTransform, error) {
	row := func(p point) []float64 { return []float64{p.X, p.Y, 1} }

	augX := [][]float64{
		append(row(module[0]), pixel[0].X),
		append(row(module[1]), pixel[1].X),
		append(row(module[2]), pixel[2].X),
	}
	xCoef, ok := gaussianSolve(augX)
	if !ok {
		return nil, fmt.Errorf("imaging: degenerate finder triple (x system)")
	}

	augY := [][]float64{
		append(row(module[0]), pixel[0].Y),
		append(row(module[1]), pixel[1].Y),
		append(row(module[2]), pixel[2].Y),
	}
	yCoef, ok := gaussianSolve(augY)
	if !ok {
		return nil, fmt.Errorf("imaging: degenerate finder triple (y system)")
	}

	return &affineTransform{
		a: xCoef[0], c: xCoef[1], e: xCoef[2],
		b: yCoef[0], d: yCoef[1], f: yCoef[2],
	}, nil
}

// perspectiveTransform implements the 8-coefficient projective
// mapping spec.md describes, with denominator g*col + h*row + 1.
type perspectiveTransform struct {
	a, b, c, d, e, f, g, h float64
}

func (t *perspectiveTransform) Forward(col, row float64) (px, py float64) {
	denom := t.g*col + t.h*row + 1
	if denom == 0 {
		denom = 1e-9
	}
	px = (t.a*col + t.b*row + t.c) / denom
	py = (t.d*col + t.e*row + t.f) / denom
	return
}

// solvePerspective fits the 8 coefficients of a perspectiveTransform
// from four module-space/pixel-space correspondences, producing the
// 8x9 augmented system described in spec.md and solving it by
// Gaussian elimination.
func solvePerspective(module, pixel [4]point) (*perspectiveTransform, error) {
	aug := make([][]float64, 8)
	for i := 0; i < 4; i++ {
		col, row := module[i].X, module[i].Y
		px, py := pixel[i].X, pixel[i].Y
		aug[2*i] = []float64{col, row, 1, 0, 0, 0, -col * px, -row * px, px}
		aug[2*i+1] = []float64{0, 0, 0, col, row, 1, -col * py, -row * py, py}
	}
	coef, ok := gaussianSolve(aug)
	if !ok {
		return nil, fmt.Errorf("imaging: degenerate alignment quadruple")
	}
	return &perspectiveTransform{
		a: coef[0], b: coef[1], c: coef[2],
		d: coef[3], e: coef[4], f: coef[5],
		g: coef[6], h: coef[7],
	}, nil
}

// gaussianSolve solves the n x (n+1) augmented linear system aug via
// Gaussian elimination with partial pivoting. It reports false if the
// system is singular to within floating-point tolerance.
func gaussianSolve(aug [][]float64) ([]float64, bool) {
	n := len(aug)
	for col := 0; col < n; col++ {
		pivot := col
		best := abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := abs(aug[r][col]); v > best {
				pivot, best = r, v
			}
		}
		if best < 1e-9 {
			return nil, false
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col] / aug[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	out := make([]float64, n)
	for r := 0; r < n; r++ {
		out[r] = aug[r][n] / aug[r][r]
	}
	return out, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
