package matrix

// PlaceData writes data bits into every non-function cell in the
// standard QR serpentine order: two-column strips from right to left,
// skipping the vertical timing column, alternating top-to-bottom and
// bottom-to-top within each strip. Bits beyond len(data)*8 are treated
// as zero (the remainder bits ISO 18004 allows after the last
// codeword).
func (g *Grid) PlaceData(data []byte) {
	bitIdx := 0
	nextBit := func() bool {
		if bitIdx/8 >= len(data) {
			bitIdx++
			return false
		}
		b := (data[bitIdx/8] >> uint(7-bitIdx%8)) & 1
		bitIdx++
		return b != 0
	}

	upward := true
	for col := g.Size - 1; col > 0; col -= 2 {
		if col == 6 {
			col--
		}
		if upward {
			for row := g.Size - 1; row >= 0; row-- {
				g.placeDataPair(row, col, nextBit)
			}
		} else {
			for row := 0; row < g.Size; row++ {
				g.placeDataPair(row, col, nextBit)
			}
		}
		upward = !upward
	}
}

func (g *Grid) placeDataPair(row, col int, nextBit func() bool) {
	for _, c := range [2]int{col, col - 1} {
		if g.function[row][c] {
			continue
		}
		g.set(row, c, fromBit(nextBit()), false)
	}
}

// Copy returns a deep copy of the grid, used to trial-apply each mask
// pattern before scoring.
func (g *Grid) Copy() *Grid {
	out := &Grid{Version: g.Version, Size: g.Size, cells: make2D(g.Size), function: make2DBool(g.Size)}
	for r := 0; r < g.Size; r++ {
		copy(out.cells[r], g.cells[r])
		copy(out.function[r], g.function[r])
	}
	return out
}

// ApplyMask XORs the given mask pattern (0-7) into every non-function
// cell.
func (g *Grid) ApplyMask(pattern int) {
	pred := maskPredicates[pattern]
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if g.function[r][c] {
				continue
			}
			if pred(r, c) {
				g.cells[r][c] = fromBit(!g.cells[r][c].bit())
			}
		}
	}
}

// maskPredicates implements the eight mask conditions from ISO/IEC
// 18004 table 10; a cell is flipped when its predicate is true.
var maskPredicates = [8]func(r, c int) bool{
	func(r, c int) bool { return (r+c)%2 == 0 },
	func(r, c int) bool { return r%2 == 0 },
	func(r, c int) bool { return c%3 == 0 },
	func(r, c int) bool { return (r+c)%3 == 0 },
	func(r, c int) bool { return (r/2+c/3)%2 == 0 },
	func(r, c int) bool { return (r*c)%2+(r*c)%3 == 0 },
	func(r, c int) bool { return ((r*c)%2+(r*c)%3)%2 == 0 },
	func(r, c int) bool { return ((r+c)%2+(r*c)%3)%2 == 0 },
}

// PenaltyScore computes the total mask-evaluation penalty (rules N1-N4
// of ISO/IEC 18004 §8.8.2).
func (g *Grid) PenaltyScore() int {
	return g.penaltyN1() + g.penaltyN2() + g.penaltyN3() + g.penaltyN4()
}

func (g *Grid) penaltyN1() int {
	total := 0
	total += runPenalty(g.Size, func(i, j int) Module { return g.cells[i][j] })
	total += runPenalty(g.Size, func(i, j int) Module { return g.cells[j][i] })
	return total
}

func runPenalty(size int, at func(line, pos int) Module) int {
	total := 0
	for line := 0; line < size; line++ {
		runLen := 1
		prev := at(line, 0)
		for pos := 1; pos < size; pos++ {
			cur := at(line, pos)
			if cur == prev {
				runLen++
				continue
			}
			if runLen >= 5 {
				total += runLen - 2
			}
			runLen = 1
			prev = cur
		}
		if runLen >= 5 {
			total += runLen - 2
		}
	}
	return total
}

func (g *Grid) penaltyN2() int {
	total := 0
	for r := 0; r < g.Size-1; r++ {
		for c := 0; c < g.Size-1; c++ {
			v := g.cells[r][c]
			if v == g.cells[r][c+1] && v == g.cells[r+1][c] && v == g.cells[r+1][c+1] {
				total += 3
			}
		}
	}
	return total
}

// finderLikePattern is the 1:1:3:1:1 dark-light signature (as black/white
// module bits) that rule N3 penalizes wherever it appears, padded by
// four light modules on either side.
var finderLikePattern = []bool{true, false, true, true, true, false, true, false, false, false, false}

func (g *Grid) penaltyN3() int {
	total := 0
	total += scanFinderLike(g.Size, func(i, j int) Module { return g.cells[i][j] })
	total += scanFinderLike(g.Size, func(i, j int) Module { return g.cells[j][i] })
	return total
}

func scanFinderLike(size int, at func(line, pos int) Module) int {
	total := 0
	for line := 0; line < size; line++ {
		bits := make([]bool, size)
		for pos := 0; pos < size; pos++ {
			bits[pos] = at(line, pos).bit()
		}
		for start := 0; start+len(finderLikePattern) <= size; start++ {
			if matchesAt(bits, start, finderLikePattern) || matchesAt(bits, start, reversed(finderLikePattern)) {
				total += 40
			}
		}
	}
	return total
}

func matchesAt(bits []bool, start int, pattern []bool) bool {
	for i, want := range pattern {
		if bits[start+i] != want {
			return false
		}
	}
	return true
}

func reversed(p []bool) []bool {
	out := make([]bool, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

func (g *Grid) penaltyN4() int {
	dark := 0
	total := g.Size * g.Size
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if g.cells[r][c].bit() {
				dark++
			}
		}
	}
	percent := dark * 100 / total
	prev := (percent / 5) * 5
	next := prev + 5
	diff1 := abs(prev - 50)
	diff2 := abs(next - 50)
	if diff1 < diff2 {
		return (diff1 / 5) * 10
	}
	return (diff2 / 5) * 10
}

// ChooseMask applies each of the 8 masks to a copy of the unmasked grid
// placed with data, scores each, and returns the pattern with the
// lowest penalty along with the masked grid it produced.
func ChooseMask(placed *Grid) (pattern int, masked *Grid) {
	best := -1
	var bestGrid *Grid
	bestScore := 0
	for p := 0; p < 8; p++ {
		trial := placed.Copy()
		trial.ApplyMask(p)
		score := trial.PenaltyScore()
		if best == -1 || score < bestScore {
			best = p
			bestGrid = trial
			bestScore = score
		}
	}
	return best, bestGrid
}
