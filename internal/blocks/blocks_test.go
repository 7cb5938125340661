package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalphad/qrcodec/internal/tables"
)

func TestPartitionAndInterleaveRoundTrip(t *testing.T) {
	layout := tables.Blocks(5, tables.Quartile) // version 5-Q has two groups
	require.Greater(t, layout.Group2Blocks, 0)

	total := layout.Group1Blocks*layout.Group1DataLen + layout.Group2Blocks*layout.Group2DataLen
	data := make([]byte, total)
	for i := range data {
		data[i] = byte(i)
	}

	dataBlocks := Partition(data, layout)
	raw := EncodeInterleaved(dataBlocks, layout.ECLen)

	deblocks := Deinterleave(raw, layout)
	corrected, results, err := CorrectAll(deblocks, layout.ECLen)
	require.NoError(t, err)
	assert.Equal(t, data, corrected)
	for _, r := range results {
		assert.True(t, r.Succeeded)
		assert.Equal(t, 0, r.ErrorsFound)
	}
}

func TestCorrectAllFixesBlockErrors(t *testing.T) {
	layout := tables.Blocks(1, tables.Medium)
	total := layout.Group1Blocks * layout.Group1DataLen
	data := make([]byte, total)
	for i := range data {
		data[i] = byte(i * 3)
	}
	dataBlocks := Partition(data, layout)
	raw := EncodeInterleaved(dataBlocks, layout.ECLen)
	raw[0] ^= 0xFF

	deblocks := Deinterleave(raw, layout)
	corrected, results, err := CorrectAll(deblocks, layout.ECLen)
	require.NoError(t, err)
	assert.Equal(t, data, corrected)
	assert.Equal(t, 1, results[0].ErrorsFound)
}
