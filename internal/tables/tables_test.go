package tables

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimension(t *testing.T) {
	assert.Equal(t, 21, Dimension(1))
	assert.Equal(t, 177, Dimension(40))
}

func TestBlockPartitioningIdentity(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		for _, lvl := range []Level{Low, Medium, Quartile, High} {
			b := Blocks(v, lvl)
			n := TotalCodewords(v)
			k := b.Group1Blocks*b.Group1DataLen + b.Group2Blocks*b.Group2DataLen
			ecTotal := (b.Group1Blocks + b.Group2Blocks) * b.ECLen
			assert.Equal(t, n, k+ecTotal, "v=%d level=%v", v, lvl)
			assert.Equal(t, k, DataCodewords(v, lvl))
		}
	}
}

func TestAlignmentPositionsVersion1Empty(t *testing.T) {
	assert.Empty(t, AlignmentPositions(1))
}

func TestAlignmentPositionsAscending(t *testing.T) {
	for v := 2; v <= MaxVersion; v++ {
		pos := AlignmentPositions(v)
		for i := 1; i < len(pos); i++ {
			assert.Greater(t, pos[i], pos[i-1], "version %d", v)
		}
	}
}

func TestFormatTableMinDistance(t *testing.T) {
	for i := 0; i < 32; i++ {
		for j := i + 1; j < 32; j++ {
			d := bits.OnesCount32(formatTable[i] ^ formatTable[j])
			assert.GreaterOrEqual(t, d, 7, "entries %d,%d", i, j)
		}
	}
}

func TestVersionTableMinDistance(t *testing.T) {
	for i := 0; i < 34; i++ {
		for j := i + 1; j < 34; j++ {
			d := bits.OnesCount32(versionTable[i] ^ versionTable[j])
			assert.GreaterOrEqual(t, d, 8, "entries %d,%d", i, j)
		}
	}
}

func TestFormatDecodeRoundTrip(t *testing.T) {
	for _, lvl := range []Level{Low, Medium, Quartile, High} {
		for mask := 0; mask < 8; mask++ {
			data := (lvl.FormatBits() << 3) | uint32(mask)
			code := EncodeFormat(data)
			gotLevel, gotMask, ok := DecodeFormat(code)
			assert.True(t, ok)
			assert.Equal(t, lvl, gotLevel)
			assert.Equal(t, mask, gotMask)
		}
	}
}

func TestVersionDecodeRoundTrip(t *testing.T) {
	for v := 7; v <= 40; v++ {
		code := EncodeVersion(uint32(v))
		got, ok := DecodeVersion(code)
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestLevelFormatBitsWireIdentity(t *testing.T) {
	levels := []Level{Low, Medium, Quartile, High}
	for _, l := range levels {
		assert.EqualValues(t, l, l.FormatBits()^1)
	}
}
