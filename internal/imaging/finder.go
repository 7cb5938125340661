package imaging

import "math"

// SignatureMaxDeviation bounds how far a candidate run's length may
// stray from its expected 1:1:3:1:1 share of the estimated module
// size before the window is rejected, per spec.md's finder-signature
// test.
const SignatureMaxDeviation = 0.35

var signatureUnits = [5]float64{1, 1, 3, 1, 1}

// candidate is a finder-pattern hit: a pixel-space center plus the
// module size the signature that produced it implies.
type candidate struct {
	X, Y       float64
	ModuleSize float64
}

type run struct {
	dark        bool
	start, length int
}

func scanRuns(get func(i int) bool, n int) []run {
	var runs []run
	if n == 0 {
		return runs
	}
	cur := get(0)
	start := 0
	for i := 1; i < n; i++ {
		v := get(i)
		if v != cur {
			runs = append(runs, run{dark: cur, start: start, length: i - start})
			start = i
			cur = v
		}
	}
	runs = append(runs, run{dark: cur, start: start, length: n - start})
	return runs
}

// matchSignature tests five consecutive runs starting at dark against
// the 1:1:3:1:1 finder ratio. It returns the estimated module size and
// true on a match.
func matchSignature(runs []run, i int) (moduleSize float64, ok bool) {
	if i+5 > len(runs) || !runs[i].dark {
		return 0, false
	}
	total := 0
	for k := 0; k < 5; k++ {
		total += runs[i+k].length
	}
	moduleSize = float64(total) / 7
	if moduleSize < 1 {
		return 0, false
	}
	tolerance := SignatureMaxDeviation * moduleSize
	for k := 0; k < 5; k++ {
		expected := signatureUnits[k] * moduleSize
		if math.Abs(float64(runs[i+k].length)-expected) > tolerance {
			return 0, false
		}
	}
	return moduleSize, true
}

// horizontalScan walks every row of bmp collecting monochrome run
// lengths and testing each 5-run window against the finder signature.
// A match emits a candidate centered on the wide middle run.
func horizontalScan(bmp *Bitmap) []candidate {
	var hits []candidate
	for y := 0; y < bmp.Height; y++ {
		runs := scanRuns(func(x int) bool { return bmp.At(x, y) }, bmp.Width)
		for i := 0; i+5 <= len(runs); i++ {
			moduleSize, ok := matchSignature(runs, i)
			if !ok {
				continue
			}
			center := runs[i+2]
			hits = append(hits, candidate{
				X:          float64(center.start) + float64(center.length)/2,
				Y:          float64(y),
				ModuleSize: moduleSize,
			})
		}
	}
	return hits
}

// verticalScan repeats the signature test, but only on columns a
// horizontal candidate already touched, and keeps at most one
// confirmation per horizontal candidate: the vertical hit whose
// center and module size are closest to it.
func verticalScan(bmp *Bitmap, horizontal []candidate) []candidate {
	columns := map[int]bool{}
	for _, h := range horizontal {
		columns[int(math.Round(h.X))] = true
	}

	vHitsByColumn := map[int][]candidate{}
	for x := range columns {
		runs := scanRuns(func(y int) bool { return bmp.At(x, y) }, bmp.Height)
		for i := 0; i+5 <= len(runs); i++ {
			moduleSize, ok := matchSignature(runs, i)
			if !ok {
				continue
			}
			center := runs[i+2]
			vHitsByColumn[x] = append(vHitsByColumn[x], candidate{
				X:          float64(x),
				Y:          float64(center.start) + float64(center.length)/2,
				ModuleSize: moduleSize,
			})
		}
	}

	var confirmed []candidate
	for _, h := range horizontal {
		col := int(math.Round(h.X))
		best := math.Inf(1)
		var bestV candidate
		found := false
		for _, v := range vHitsByColumn[col] {
			dx := v.X - h.X
			dy := v.Y - h.Y
			dm := v.ModuleSize - h.ModuleSize
			dist := dx*dx + dy*dy + dm*dm
			if dist < best {
				best = dist
				bestV = v
				found = true
			}
		}
		if !found {
			continue
		}
		confirmed = append(confirmed, candidate{
			X:          (h.X + bestV.X) / 2,
			Y:          (h.Y + bestV.Y) / 2,
			ModuleSize: (h.ModuleSize + bestV.ModuleSize) / 2,
		})
	}
	return collapseOverlapping(confirmed)
}

// collapseOverlapping merges candidates that both horizontal and
// vertical scans rediscovered across adjacent rows/columns of the
// same physical finder into a single averaged representative.
func collapseOverlapping(cands []candidate) []candidate {
	used := make([]bool, len(cands))
	var out []candidate
	for i, c := range cands {
		if used[i] {
			continue
		}
		group := []candidate{c}
		used[i] = true
		for j := i + 1; j < len(cands); j++ {
			if used[j] {
				continue
			}
			o := cands[j]
			dx := o.X - c.X
			dy := o.Y - c.Y
			threshold := c.ModuleSize + o.ModuleSize
			if dx*dx+dy*dy <= threshold*threshold {
				group = append(group, o)
				used[j] = true
			}
		}
		var sx, sy, sm float64
		for _, g := range group {
			sx += g.X
			sy += g.Y
			sm += g.ModuleSize
		}
		n := float64(len(group))
		out = append(out, candidate{X: sx / n, Y: sy / n, ModuleSize: sm / n})
	}
	return out
}

// FindFinders runs the two-pass (horizontal then vertical) finder
// signature scan over bmp and returns every surviving candidate
// finder-pattern center.
func FindFinders(bmp *Bitmap) []candidate {
	h := horizontalScan(bmp)
	return verticalScan(bmp, h)
}
