package tables

// MinVersion and MaxVersion bound the legal QR code version range.
const (
	MinVersion = 1
	MaxVersion = 40
)

// Dimension returns the side length D = 17 + 4*version of a symbol.
func Dimension(version int) int {
	return 17 + 4*version
}

// eccCodewordsPerBlock[level][version] is the number of error-correction
// codewords present in EVERY block of a symbol at that (version, level).
// Index 0 is unused padding.
var eccCodewordsPerBlock = [4][41]int{
	{0, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	{0, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	{0, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	{0, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// numBlocks[level][version] is the total number of RS blocks (group 1 +
// group 2) a symbol at that (version, level) is split into.
var numBlocks = [4][41]int{
	{0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	{0, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	{0, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	{0, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}

// rawDataModules returns the number of modules available for data and
// error-correction bits (before the per-codeword 8-bit grouping and
// excluding function patterns), including any trailing remainder bits.
func rawDataModules(version int) int {
	v := version
	n := (16*v+128)*v + 64
	if v >= 2 {
		numAlign := v/7 + 2
		n -= (25*numAlign-10)*numAlign - 55
		if v >= 7 {
			n -= 36
		}
	}
	return n
}

// TotalCodewords returns N(version), the number of 8-bit codewords (data
// plus error-correction) a symbol holds, discarding any trailing remainder
// bits that don't fill a whole codeword.
func TotalCodewords(version int) int {
	return rawDataModules(version) / 8
}

// BlockLayout describes how a symbol's codewords split into Reed-Solomon
// blocks: g1 blocks of k1 data codewords, g2 blocks of k1+1 data codewords,
// every block carrying the same number of EC codewords.
type BlockLayout struct {
	Group1Blocks   int
	Group1DataLen  int
	Group2Blocks   int
	Group2DataLen  int
	ECLen          int
}

// Blocks returns the block partitioning for (version, level). It satisfies
// g1*k1 + g2*k2 == K(version,level) and (g1+g2)*e == N(version) - K.
func Blocks(version int, level Level) BlockLayout {
	ecLen := eccCodewordsPerBlock[level][version]
	total := numBlocks[level][version]
	totalData := TotalCodewords(version) - ecLen*total

	k1 := totalData / total
	g2 := totalData % total
	g1 := total - g2

	layout := BlockLayout{
		Group1Blocks:  g1,
		Group1DataLen: k1,
		ECLen:         ecLen,
	}
	if g2 > 0 {
		layout.Group2Blocks = g2
		layout.Group2DataLen = k1 + 1
	}
	return layout
}

// DataCodewords returns K(version, level), the number of data codewords
// (total codewords minus all blocks' EC codewords).
func DataCodewords(version int, level Level) int {
	b := Blocks(version, level)
	return b.Group1Blocks*b.Group1DataLen + b.Group2Blocks*b.Group2DataLen
}

// AlignmentPositions returns the ascending row/column coordinates at which
// alignment pattern centers sit for this version (empty for version 1).
// The same list is used for both axes; the full pattern set is every pair
// in the cross product, minus the three pairs that collide with a finder.
func AlignmentPositions(version int) []int {
	if version == 1 {
		return nil
	}
	numAlign := version/7 + 2
	var step int
	if version == 32 {
		step = 26
	} else {
		step = (version*4 + numAlign*2 + 1) / (numAlign*2 - 2) * 2
	}
	size := Dimension(version)
	positions := make([]int, numAlign)
	for i := 0; i < numAlign-1; i++ {
		positions[i] = size - 7 - i*step
	}
	positions[numAlign-1] = 6

	for i, j := 0, len(positions)-1; i < j; i, j = i+1, j-1 {
		positions[i], positions[j] = positions[j], positions[i]
	}
	return positions
}
