package rs

import "github.com/jalphad/qrcodec/internal/gf"

// Encode returns the eccLen error-correction codewords for a data block,
// computed as the remainder of dividing data*x^eccLen by the generator
// polynomial of degree eccLen.
func Encode(data []byte, eccLen int) []byte {
	g := generator(eccLen)

	// message(x) * x^eccLen, as a coefficient array highest-degree-first
	padded := make(gf.Poly, len(data)+eccLen)
	copy(padded, data)

	_, remainder := gf.PolyDivMod(padded, g)
	return []byte(remainder)
}
