package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpLogRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		assert.EqualValues(t, a, Exp(Log(byte(a))), "exp[log[%d]] must equal %d", a, a)
	}
}

func TestExpPeriod255(t *testing.T) {
	for i := 0; i < 255; i++ {
		assert.Equal(t, Exp(i), Exp(i+255), "exp must be periodic with period 255 at i=%d", i)
	}
}

func TestMulDivIdentity(t *testing.T) {
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			got := Div(Mul(byte(a), byte(b)), byte(b))
			assert.EqualValues(t, a, got, "a*b/b must equal a for a=%d b=%d", a, b)
		}
	}
}

func TestMulZero(t *testing.T) {
	assert.Equal(t, byte(0), Mul(0, 42))
	assert.Equal(t, byte(0), Mul(42, 0))
}

func TestExpMultiplicative(t *testing.T) {
	for i := 0; i < 255; i++ {
		for j := 0; j < 255; j++ {
			want := Exp((i + j) % 255)
			got := Mul(Exp(i), Exp(j))
			assert.Equal(t, want, got)
		}
	}
}

func TestInverse(t *testing.T) {
	for a := 1; a < 256; a++ {
		assert.Equal(t, byte(1), Mul(byte(a), Inverse(byte(a))))
	}
}

func TestPolyMulDegree(t *testing.T) {
	p1 := Poly{1, 2, 3}
	p2 := Poly{4, 5}
	got := PolyMul(p1, p2)
	assert.Len(t, got, len(p1)+len(p2)-1)
}

func TestPolyDivModReconstructs(t *testing.T) {
	dividend := Poly{1, 0, 0, 0, 0, 0, 0}
	divisor := Poly{1, 2, 3}
	q, r := PolyDivMod(dividend, divisor)
	reconstructed := PolyAdd(PolyMul(q, divisor), append(make(Poly, len(dividend)-len(r)), r...))
	assert.Equal(t, []byte(dividend), []byte(reconstructed))
}
