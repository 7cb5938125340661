package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridDimension(t *testing.T) {
	g := NewGrid(1)
	assert.Equal(t, 21, g.Size)
	g7 := NewGrid(7)
	assert.Equal(t, 45, g7.Size)
}

func TestFinderPatternsPlaced(t *testing.T) {
	g := NewGrid(1)
	assert.Equal(t, Black, g.At(3, 3)) // finder core
	assert.Equal(t, White, g.At(7, 3)) // separator row
	assert.True(t, g.IsFunction(0, 0))
}

func TestDarkModuleAlwaysBlack(t *testing.T) {
	for v := 1; v <= 10; v++ {
		g := NewGrid(v)
		assert.Equal(t, Black, g.At(4*v+9, 8))
	}
}

func TestMaskPredicatesApplyAndRevert(t *testing.T) {
	g := NewGrid(1)
	g.PlaceData(make([]byte, 50))
	before := g.Copy()
	g.ApplyMask(0)
	g.ApplyMask(0)
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			assert.Equal(t, before.At(r, c), g.At(r, c), "mask double-apply must be an involution at (%d,%d)", r, c)
		}
	}
}

func TestChooseMaskPicksLowestPenalty(t *testing.T) {
	g := NewGrid(2)
	g.PlaceData(make([]byte, 80))
	pattern, masked := ChooseMask(g)
	require.True(t, pattern >= 0 && pattern <= 7)
	score := masked.PenaltyScore()
	for p := 0; p < 8; p++ {
		trial := g.Copy()
		trial.ApplyMask(p)
		assert.True(t, trial.PenaltyScore() >= score)
	}
}

func TestStampFormatAndVersionRoundTrip(t *testing.T) {
	g := NewGrid(7)
	g.StampFormat(0x5412)
	g.StampVersion(0b000111110010010100)
	assert.True(t, g.IsFunction(0, g.Size-9))
	assert.Equal(t, uint32(0x5412), g.ReadFormatBits())
	assert.Equal(t, uint32(0b000111110010010100), g.ReadVersionBits())
}
