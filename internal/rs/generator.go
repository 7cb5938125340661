// Package rs implements the Reed-Solomon codec QR codes use over GF(256):
// generator-polynomial division to produce error-correction codewords on
// encode, and syndrome computation plus Berlekamp-Massey / Chien search /
// Forney correction to recover a damaged block on decode.
package rs

import (
	"sync"

	"github.com/jalphad/qrcodec/internal/gf"
)

// generator returns the degree-e generator polynomial
// g(x) = (x - a^0)(x - a^1)...(x - a^(e-1))
// whose roots are the first e powers of the field's primitive element.
// QR codes only ever need the 31 degrees enumerated in ISO/IEC 18004
// (7,10,13,15,16,17,18,20,22,24,26,28,30,32,34,36,40,42,44,46,48,50,52,
// 54,56,58,60,62,64,66,68), but this builds any requested degree on first
// use and caches it, which is simpler than transcribing 31 constants and
// provably equivalent to them.
var (
	generatorMu    sync.Mutex
	generatorCache = map[int]gf.Poly{}
)

func generator(degree int) gf.Poly {
	generatorMu.Lock()
	defer generatorMu.Unlock()
	if g, ok := generatorCache[degree]; ok {
		return g
	}

	g := gf.Poly{1}
	root := byte(1)
	for i := 0; i < degree; i++ {
		// multiply g by (x - root); in GF(256) subtraction is addition (XOR)
		g = gf.PolyMul(g, gf.Poly{1, root})
		root = gf.Mul(root, 2) // alpha = 2
	}
	generatorCache[degree] = g
	return g
}
