// Package matrix builds and reads the QR module grid: finder, separator,
// timing, alignment, and dark-module fixed patterns; serpentine data
// placement; mask application and selection; and format/version BCH
// stamping.
package matrix

import (
	"github.com/jalphad/qrcodec/internal/tables"
)

// Module is the value of one grid cell, distinguishing "no value yet"
// from a concrete black/white bit so reserved regions can be
// distinguished from data-eligible ones during placement.
type Module int

const (
	Unset Module = iota
	White
	Black
)

func (m Module) bit() bool { return m == Black }

func fromBit(b bool) Module {
	if b {
		return Black
	}
	return White
}

// Grid is a square module matrix for one QR symbol version.
type Grid struct {
	Version int
	Size    int
	cells   [][]Module
	// function holds true for every cell that is part of a fixed
	// pattern or reserved region, i.e. never eligible for data bits.
	function [][]bool
}

// NewGrid allocates an empty grid sized for version and stamps its
// fixed patterns (finders, separators, timing, alignment, dark module,
// and reserved format/version regions).
func NewGrid(version int) *Grid {
	size := tables.Dimension(version)
	g := &Grid{
		Version: version,
		Size:    size,
		cells:   make2D(size),
		function: make2DBool(size),
	}
	g.placeFinders()
	g.placeTiming()
	g.placeAlignment()
	g.placeDarkModule()
	g.reserveFormatRegions()
	if version >= 7 {
		g.reserveVersionRegions()
	}
	return g
}

func make2D(size int) [][]Module {
	cells := make([][]Module, size)
	for i := range cells {
		cells[i] = make([]Module, size)
	}
	return cells
}

func make2DBool(size int) [][]bool {
	cells := make([][]bool, size)
	for i := range cells {
		cells[i] = make([]bool, size)
	}
	return cells
}

func (g *Grid) set(r, c int, m Module, isFunction bool) {
	g.cells[r][c] = m
	g.function[r][c] = isFunction
}

func (g *Grid) At(r, c int) Module { return g.cells[r][c] }

func (g *Grid) IsFunction(r, c int) bool { return g.function[r][c] }

func (g *Grid) placeFinders() {
	positions := [][2]int{{0, 0}, {0, g.Size - 7}, {g.Size - 7, 0}}
	for _, p := range positions {
		g.placeFinderAt(p[0], p[1])
	}
}

func (g *Grid) placeFinderAt(top, left int) {
	for dr := -1; dr <= 7; dr++ {
		for dc := -1; dc <= 7; dc++ {
			r, c := top+dr, left+dc
			if r < 0 || r >= g.Size || c < 0 || c >= g.Size {
				continue
			}
			if dr == -1 || dr == 7 || dc == -1 || dc == 7 {
				g.set(r, c, White, true) // separator
				continue
			}
			onRing := dr == 0 || dr == 6 || dc == 0 || dc == 6
			inCore := dr >= 2 && dr <= 4 && dc >= 2 && dc <= 4
			g.set(r, c, fromBit(onRing || inCore), true)
		}
	}
}

func (g *Grid) placeTiming() {
	for i := 8; i < g.Size-8; i++ {
		bit := i%2 == 0
		g.set(6, i, fromBit(bit), true)
		g.set(i, 6, fromBit(bit), true)
	}
}

func (g *Grid) placeAlignment() {
	positions := tables.AlignmentPositions(g.Version)
	for _, r := range positions {
		for _, c := range positions {
			if g.overlapsFinder(r, c) {
				continue
			}
			g.placeAlignmentAt(r, c)
		}
	}
}

func (g *Grid) overlapsFinder(centerR, centerC int) bool {
	corners := [][2]int{{6, 6}, {6, g.Size - 7}, {g.Size - 7, 6}}
	for _, fc := range corners {
		if abs(centerR-fc[0]) <= 4 && abs(centerC-fc[1]) <= 4 {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (g *Grid) placeAlignmentAt(centerR, centerC int) {
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			ring := dr == -2 || dr == 2 || dc == -2 || dc == 2
			g.set(centerR+dr, centerC+dc, fromBit(ring || (dr == 0 && dc == 0)), true)
		}
	}
}

func (g *Grid) placeDarkModule() {
	g.set(4*g.Version+9, 8, Black, true)
}

// reserveFormatRegions marks the two 15-module format-information strips
// as function modules without committing their final bit values; actual
// bits are stamped later by StampFormat once the mask is chosen.
func (g *Grid) reserveFormatRegions() {
	for i := 0; i <= 8; i++ {
		if i != 6 {
			g.set(8, i, White, true)
			g.set(i, 8, White, true)
		}
	}
	for i := 0; i < 8; i++ {
		g.set(8, g.Size-1-i, White, true)
		g.set(g.Size-1-i, 8, White, true)
	}
	g.set(g.Size-8, 8, Black, true)
}

func (g *Grid) reserveVersionRegions() {
	for r := 0; r < 6; r++ {
		for c := 0; c < 3; c++ {
			g.set(r, g.Size-11+c, White, true)
			g.set(g.Size-11+c, r, White, true)
		}
	}
}

// StampFormat writes the 15-bit BCH-encoded format codeword (EC level +
// mask pattern) into both reserved format strips.
func (g *Grid) StampFormat(bits uint32) {
	for i := 0; i <= 5; i++ {
		g.cells[8][i] = fromBit(bitAt(bits, i))
	}
	g.cells[8][7] = fromBit(bitAt(bits, 6))
	g.cells[8][8] = fromBit(bitAt(bits, 7))
	g.cells[7][8] = fromBit(bitAt(bits, 8))
	for i := 9; i < 15; i++ {
		g.cells[14-i][8] = fromBit(bitAt(bits, i))
	}

	for i := 0; i < 8; i++ {
		g.cells[g.Size-1-i][8] = fromBit(bitAt(bits, i))
	}
	for i := 8; i < 15; i++ {
		g.cells[8][g.Size-15+i] = fromBit(bitAt(bits, i))
	}
}

// StampVersion writes the 18-bit BCH-encoded version codeword into both
// reserved version blocks (version 7 and above only).
func (g *Grid) StampVersion(bits uint32) {
	if g.Version < 7 {
		return
	}
	for i := 0; i < 18; i++ {
		r := i / 3
		c := i % 3
		bit := fromBit(bitAt(bits, i))
		g.cells[r][g.Size-11+c] = bit
		g.cells[g.Size-11+c][r] = bit
	}
}

func bitAt(v uint32, i int) bool {
	return (v>>uint(i))&1 != 0
}
