// Package gf implements GF(256) arithmetic for the QR code Reed-Solomon
// codec.
//
// QR codes use the field GF(2^8) generated by the primitive polynomial
// x^8 + x^4 + x^3 + x^2 + 1 (0x11D), with primitive element alpha = 2. Every
// non-zero element of the field is some power of alpha, so multiplication
// and division reduce to addition and subtraction of exponents once the
// log/antilog tables are built:
//
//	a*b = exp[log[a] + log[b]]
//	a/b = exp[log[a] - log[b] + 255]
//
// The exp table is built to double length (510 entries) so that the sum
// log[a]+log[b], which can reach 2*254, never needs a modulo reduction.
package gf

// Size is the number of non-zero elements in GF(256).
const Size = 255

var exp [2 * Size]byte
var log [256]byte

func init() {
	const primitive = 0x11D
	x := 1
	for i := 0; i < Size; i++ {
		exp[i] = byte(x)
		log[x] = byte(i)
		x <<= 1
		if x >= 256 {
			x ^= primitive
		}
	}
	for i := Size; i < 2*Size; i++ {
		exp[i] = exp[i-Size]
	}
}

// Exp returns alpha^i, where i is taken modulo 255 implicitly by the
// caller (the table itself only guarantees valid lookups for i in
// [0, 2*Size)).
func Exp(i int) byte {
	return exp[i]
}

// Log returns the discrete logarithm of a non-zero element a, i.e. the i
// such that alpha^i == a. Log(0) is undefined; callers must not invoke it
// with a zero argument.
func Log(a byte) int {
	return int(log[a])
}

// Mul returns a*b in GF(256).
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return exp[int(log[a])+int(log[b])]
}

// Div returns a/b in GF(256). b must be non-zero.
func Div(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return exp[int(log[a])-int(log[b])+Size]
}

// Inverse returns the multiplicative inverse of a non-zero element a.
func Inverse(a byte) byte {
	return exp[Size-int(log[a])]
}

// Pow returns a^n in GF(256); a negative n yields the inverse power of a
// non-zero a.
func Pow(a byte, n int) byte {
	if a == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	e := (int(log[a]) * n) % Size
	if e < 0 {
		e += Size
	}
	return exp[e]
}

// Poly is a polynomial over GF(256), stored highest-degree-coefficient
// first (the convention QR codewords already use: codeword[0] is the
// most significant symbol of the message polynomial).
type Poly []byte

// PolyMul returns the product of two polynomials over GF(256).
func PolyMul(p1, p2 Poly) Poly {
	result := make(Poly, len(p1)+len(p2)-1)
	for i, c1 := range p1 {
		if c1 == 0 {
			continue
		}
		for j, c2 := range p2 {
			if c2 == 0 {
				continue
			}
			result[i+j] ^= exp[int(log[c1])+int(log[c2])]
		}
	}
	return result
}

// PolyScale multiplies every coefficient of p by the scalar a.
func PolyScale(p Poly, a byte) Poly {
	result := make(Poly, len(p))
	for i, c := range p {
		result[i] = Mul(c, a)
	}
	return result
}

// PolyAdd adds (XORs) two polynomials, aligning them on their
// lowest-degree (rightmost) coefficient.
func PolyAdd(p1, p2 Poly) Poly {
	n := len(p1)
	if len(p2) > n {
		n = len(p2)
	}
	result := make(Poly, n)
	copy(result[n-len(p1):], p1)
	for i, c := range p2 {
		result[n-len(p2)+i] ^= c
	}
	return result
}

// PolyEval evaluates p at x using Horner's method, with p[0] the
// highest-degree coefficient.
func PolyEval(p Poly, x byte) byte {
	y := p[0]
	for i := 1; i < len(p); i++ {
		y = Mul(y, x) ^ p[i]
	}
	return y
}

// PolyDivMod divides dividend by divisor and returns (quotient, remainder),
// both over GF(256). divisor must be monic-leading (non-zero leading
// coefficient); it need not be monic in the field-theoretic sense since
// every non-zero element is invertible.
func PolyDivMod(dividend, divisor Poly) (quotient, remainder Poly) {
	remainder = make(Poly, len(dividend))
	copy(remainder, dividend)

	if len(divisor) > len(remainder) {
		return Poly{}, remainder
	}

	qlen := len(remainder) - len(divisor) + 1
	quotient = make(Poly, qlen)

	for i := 0; i < qlen; i++ {
		coef := remainder[i]
		if coef != 0 {
			quotient[i] = Div(coef, divisor[0])
			factor := quotient[i]
			for j, dc := range divisor {
				if dc != 0 {
					remainder[i+j] ^= Mul(dc, factor)
				}
			}
		}
	}
	return quotient, remainder[qlen:]
}
