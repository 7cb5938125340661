package rs

import (
	"errors"

	"github.com/jalphad/qrcodec/internal/gf"
)

// ErrUncorrectable is returned when a received block carries more errors
// than its error-correction codewords can repair.
var ErrUncorrectable = errors.New("rs: uncorrectable block")

// ascPoly is a polynomial with index i holding the coefficient of x^i
// (ascending degree), the natural representation for the Berlekamp-Massey
// recurrence and for Forney's formula. This is the opposite convention
// from gf.Poly (which is highest-degree-first, matching codeword byte
// order) used elsewhere in this package.
type ascPoly []byte

// Decode corrects up to floor(eccLen/2) byte errors in a received block
// (data codewords followed by eccLen EC codewords, as produced by Encode)
// and returns the corrected data codewords plus the number of errors
// found. If the block is undamaged, it is returned unchanged with zero
// errors.
func Decode(received []byte, eccLen int) (corrected []byte, numErrors int, err error) {
	dataLen := len(received) - eccLen

	syn := syndromes(received, eccLen)
	if allZero(syn) {
		out := make([]byte, dataLen)
		copy(out, received[:dataLen])
		return out, 0, nil
	}

	sigma, ok := berlekampMassey(syn)
	if !ok {
		return nil, 0, ErrUncorrectable
	}
	errDegree := polyDegree(sigma)

	positions := chienSearch(sigma, len(received))
	if len(positions) != errDegree {
		return nil, 0, ErrUncorrectable
	}

	omega := computeOmega(syn, sigma, eccLen)
	sigmaPrime := formalDerivative(sigma)

	fixed := make([]byte, len(received))
	copy(fixed, received)

	for _, ascPos := range positions {
		xInv := gf.Pow(2, -ascPos)
		num := evalAsc(omega, xInv)
		den := evalAsc(sigmaPrime, xInv)
		if den == 0 {
			return nil, 0, ErrUncorrectable
		}
		// With generator roots starting at alpha^0, Forney's formula
		// carries an extra factor X_k = alpha^ascPos.
		magnitude := gf.Mul(gf.Div(num, den), gf.Pow(2, ascPos))

		// ascending position i (coefficient of x^i) maps to the
		// descending byte-array index n-1-i.
		idx := len(received) - 1 - ascPos
		fixed[idx] ^= magnitude
	}

	if verify := syndromes(fixed, eccLen); !allZero(verify) {
		return nil, 0, ErrUncorrectable
	}

	out := make([]byte, dataLen)
	copy(out, fixed[:dataLen])
	return out, len(positions), nil
}

// syndromes computes S_j = R(alpha^j) for j = 0..eccLen-1 by evaluating
// the received codeword (highest-degree-first) with Horner's method.
func syndromes(received []byte, eccLen int) []byte {
	s := make([]byte, eccLen)
	for j := 0; j < eccLen; j++ {
		alphaJ := gf.Pow(2, j)
		s[j] = gf.PolyEval(gf.Poly(received), alphaJ)
	}
	return s
}

func allZero(s []byte) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// berlekampMassey finds the minimal-degree error-locator polynomial
// sigma(x) satisfying the key equation for the syndrome sequence. L
// tracks sigma's current degree; uncorrectable if it ever needs to grow
// past eccLen/2.
func berlekampMassey(s []byte) (sigma ascPoly, ok bool) {
	eccLen := len(s)
	sigma = ascPoly{1}
	b := ascPoly{1}
	l := 0
	m := 1
	bCoef := byte(1)

	for n := 0; n < eccLen; n++ {
		d := s[n]
		for i := 1; i <= l && i < len(sigma); i++ {
			d ^= gf.Mul(sigma[i], s[n-i])
		}

		if d == 0 {
			m++
			continue
		}

		coef := gf.Div(d, bCoef)
		next := shiftedSub(sigma, b, coef, m)

		if 2*l <= n {
			t := make(ascPoly, len(sigma))
			copy(t, sigma)
			sigma = next
			l = n + 1 - l
			b = t
			bCoef = d
			m = 1
		} else {
			sigma = next
			m++
		}
	}

	if l > eccLen/2 {
		return nil, false
	}
	return sigma, true
}

// shiftedSub returns sigma XOR (coef * x^m * b).
func shiftedSub(sigma, b ascPoly, coef byte, m int) ascPoly {
	n := len(sigma)
	if need := len(b) + m; need > n {
		n = need
	}
	res := make(ascPoly, n)
	copy(res, sigma)
	for i, bc := range b {
		if bc != 0 {
			res[i+m] ^= gf.Mul(bc, coef)
		}
	}
	return res
}

func polyDegree(p ascPoly) int {
	for i := len(p) - 1; i > 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return 0
}

// chienSearch evaluates sigma at alpha^-i for every codeword position i
// in [0,n) and returns the ascending positions where it has a root.
func chienSearch(sigma ascPoly, n int) []int {
	var positions []int
	for i := 0; i < n; i++ {
		x := gf.Pow(2, -i)
		if evalAsc(sigma, x) == 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

// computeOmega returns [S(x) * sigma(x)] mod x^eccLen, the error
// evaluator polynomial from the key equation.
func computeOmega(s []byte, sigma ascPoly, eccLen int) ascPoly {
	product := make(ascPoly, len(s)+len(sigma)-1)
	for i, sc := range s {
		if sc == 0 {
			continue
		}
		for j, lc := range sigma {
			if lc == 0 {
				continue
			}
			product[i+j] ^= gf.Mul(sc, lc)
		}
	}
	if len(product) > eccLen {
		product = product[:eccLen]
	}
	return product
}

// formalDerivative computes sigma'(x) over GF(2^8), which has
// characteristic 2: d/dx x^k = k*x^(k-1) mod 2, so only odd-degree terms
// survive, each with unchanged coefficient.
func formalDerivative(p ascPoly) ascPoly {
	if len(p) <= 1 {
		return ascPoly{0}
	}
	res := make(ascPoly, len(p)-1)
	for k := 1; k < len(p); k++ {
		if k%2 == 1 {
			res[k-1] = p[k]
		}
	}
	return res
}

func evalAsc(p ascPoly, x byte) byte {
	y := byte(0)
	xPow := byte(1)
	for _, c := range p {
		y ^= gf.Mul(c, xPow)
		xPow = gf.Mul(xPow, x)
	}
	return y
}
