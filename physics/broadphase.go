package physics

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"
)

// maxGridSpan is the number of cells a single box may cover before it is
// treated as oversized and checked against everything.
const maxGridSpan = 1024

// maxGridCoord bounds cell coordinates so they fit an int comfortably.
const maxGridCoord = 1 << 30

// candidate is an index pair into the frame's shape list, always i < j.
type candidate struct {
	i, j int
}

func compareCandidates(x, y candidate) int {
	if x.i != y.i {
		return x.i - y.i
	}
	return x.j - y.j
}

// Broadphase narrows the pairs handed to the intersection tests. Results
// are sorted by (i, j) so the event order does not depend on the strategy.
type Broadphase interface {
	Candidates(bounds []cp.BB) []candidate
}

// AllPairs tests every pair. It is the default and fine for the tens to low
// hundreds of entities a scene usually has.
func AllPairs() Broadphase {
	return allPairs{}
}

type allPairs struct{}

func (allPairs) Candidates(bounds []cp.BB) []candidate {
	n := len(bounds)
	if n < 2 {
		return nil
	}
	out := make([]candidate, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, candidate{i: i, j: j})
		}
	}
	return out
}

// Grid buckets bounding boxes in a uniform grid of cellSize and only pairs
// boxes that share a cell and overlap. A non-positive cellSize falls back to
// AllPairs.
func Grid(cellSize float64) Broadphase {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return allPairs{}
	}
	return &grid{cell: cellSize}
}

type cellKey struct {
	x, y int
}

type grid struct {
	cell float64
}

func (g *grid) Candidates(bounds []cp.BB) []candidate {
	if len(bounds) < 2 {
		return nil
	}

	cells := make(map[cellKey][]int)
	var oversized []int
	for i, bb := range bounds {
		x0, y0, x1, y1, ok := g.span(bb)
		if !ok {
			oversized = append(oversized, i)
			continue
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				k := cellKey{x: x, y: y}
				cells[k] = append(cells[k], i)
			}
		}
	}

	seen := make(map[candidate]struct{})
	add := func(a, b int) {
		if a == b {
			return
		}
		if b < a {
			a, b = b, a
		}
		c := candidate{i: a, j: b}
		if _, ok := seen[c]; ok {
			return
		}
		if !bounds[a].Intersects(bounds[b]) {
			return
		}
		seen[c] = struct{}{}
	}

	for _, members := range cells {
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				add(members[x], members[y])
			}
		}
	}
	for _, big := range oversized {
		for other := range bounds {
			add(big, other)
		}
	}

	out := make([]candidate, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	slices.SortFunc(out, compareCandidates)
	return out
}

func (g *grid) span(bb cp.BB) (int, int, int, int, bool) {
	for _, v := range [...]float64{bb.L, bb.B, bb.R, bb.T} {
		if math.IsNaN(v) || math.Abs(v/g.cell) > maxGridCoord {
			return 0, 0, 0, 0, false
		}
	}
	x0 := int(math.Floor(bb.L / g.cell))
	x1 := int(math.Floor(bb.R / g.cell))
	y0 := int(math.Floor(bb.B / g.cell))
	y1 := int(math.Floor(bb.T / g.cell))
	if (x1-x0+1)*(y1-y0+1) > maxGridSpan {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1, y1, true
}
