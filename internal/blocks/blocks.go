// Package blocks implements QR's codeword block partitioning and
// interleaving: splitting a data stream into group-1/group-2 Reed-Solomon
// blocks, encoding or correcting each independently, and weaving them
// back into the single codeword sequence the matrix is built from.
package blocks

import (
	"fmt"

	"github.com/jalphad/qrcodec/internal/rs"
	"github.com/jalphad/qrcodec/internal/tables"
)

// Partition splits data (already padded to the symbol's data capacity)
// into group1/group2 blocks per tables.Blocks(version, level).
func Partition(data []byte, layout tables.BlockLayout) [][]byte {
	var out [][]byte
	pos := 0
	for i := 0; i < layout.Group1Blocks; i++ {
		out = append(out, data[pos:pos+layout.Group1DataLen])
		pos += layout.Group1DataLen
	}
	for i := 0; i < layout.Group2Blocks; i++ {
		out = append(out, data[pos:pos+layout.Group2DataLen])
		pos += layout.Group2DataLen
	}
	return out
}

// EncodeInterleaved runs RS encoding over each data block and
// interleaves data codewords followed by EC codewords, per ISO/IEC
// 18004 §8.7.
func EncodeInterleaved(dataBlocks [][]byte, ecLen int) []byte {
	ecBlocks := make([][]byte, len(dataBlocks))
	for i, b := range dataBlocks {
		ecBlocks[i] = rs.Encode(b, ecLen)
	}
	return interleave(dataBlocks, ecBlocks)
}

func interleave(dataBlocks, ecBlocks [][]byte) []byte {
	var out []byte
	maxData := 0
	for _, b := range dataBlocks {
		if len(b) > maxData {
			maxData = len(b)
		}
	}
	for i := 0; i < maxData; i++ {
		for _, b := range dataBlocks {
			if i < len(b) {
				out = append(out, b[i])
			}
		}
	}
	ecLen := 0
	if len(ecBlocks) > 0 {
		ecLen = len(ecBlocks[0])
	}
	for i := 0; i < ecLen; i++ {
		for _, b := range ecBlocks {
			out = append(out, b[i])
		}
	}
	return out
}

// BlockResult reports the outcome of correcting one RS block.
type BlockResult struct {
	BlockIndex       int
	NumDataCodewords int
	NumECCodewords   int
	ErrorsFound      int
	Succeeded        bool
}

// Deinterleave reverses EncodeInterleaved's weaving given the block
// layout, returning each block as data-then-EC codewords.
func Deinterleave(raw []byte, layout tables.BlockLayout) [][]byte {
	total := layout.Group1Blocks + layout.Group2Blocks
	blockLens := make([]int, total)
	for i := 0; i < layout.Group1Blocks; i++ {
		blockLens[i] = layout.Group1DataLen + layout.ECLen
	}
	for i := 0; i < layout.Group2Blocks; i++ {
		blockLens[layout.Group1Blocks+i] = layout.Group2DataLen + layout.ECLen
	}

	out := make([][]byte, total)
	for i, l := range blockLens {
		out[i] = make([]byte, l)
	}

	pos := 0
	maxData := layout.Group2DataLen
	if layout.Group1DataLen > maxData {
		maxData = layout.Group1DataLen
	}
	for i := 0; i < maxData; i++ {
		for j, l := range blockLens {
			dataLen := l - layout.ECLen
			if i < dataLen {
				out[j][i] = raw[pos]
				pos++
			}
		}
	}
	for i := 0; i < layout.ECLen; i++ {
		for j, l := range blockLens {
			dataLen := l - layout.ECLen
			out[j][dataLen+i] = raw[pos]
			pos++
		}
	}
	return out
}

// CorrectAll runs Reed-Solomon error correction independently over
// every de-interleaved block and re-assembles the corrected data
// codewords in block order.
func CorrectAll(rawBlocks [][]byte, ecLen int) ([]byte, []BlockResult, error) {
	results := make([]BlockResult, len(rawBlocks))
	var data []byte
	for i, block := range rawBlocks {
		dataLen := len(block) - ecLen
		corrected, numErrors, err := rs.Decode(block, ecLen)
		results[i] = BlockResult{BlockIndex: i, NumDataCodewords: dataLen, NumECCodewords: ecLen, ErrorsFound: numErrors}
		if err != nil {
			results[i].Succeeded = false
			return nil, results, fmt.Errorf("block %d: %w", i, err)
		}
		results[i].Succeeded = true
		data = append(data, corrected...)
	}
	return data, results, nil
}
