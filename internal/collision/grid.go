package collision

import (
	"sort"

	"github.com/tomz197/staroids/internal/physics"
)

// gridDetector narrows candidates through a uniform spatial grid before
// the exact torus check. The cell size is the largest possible
// interaction distance, so every true pair lands inside the wrapped 3x3
// neighborhood.
type gridDetector struct {
	grid *physics.SpatialGrid
	hits []int
}

func newGridDetector() *gridDetector {
	return &gridDetector{grid: physics.NewSpatialGrid(1, 1, 1)}
}

func (*gridDetector) Name() string { return "grid" }

// Pairs implements Detector.
func (g *gridDetector) Pairs(dst []Pair, a, b []Circle, w, h float64) []Pair {
	if len(a) == 0 || len(b) == 0 {
		return dst
	}
	g.grid.Reset(w, h, cellSize(maxRadius(a)+maxRadius(b)))
	for j := range b {
		g.grid.Insert(b[j].X, b[j].Y, j)
	}

	for i := range a {
		ai := a[i]
		g.hits = g.hits[:0]
		g.grid.QueryAround(ai.X, ai.Y, func(j int) bool {
			bj := b[j]
			if physics.CirclesOverlapTorus(ai.X, ai.Y, ai.R, bj.X, bj.Y, bj.R, w, h) {
				g.hits = append(g.hits, j)
			}
			return false
		})
		dst = g.appendSorted(dst, i)
	}
	return dst
}

// SelfPairs implements Detector.
func (g *gridDetector) SelfPairs(dst []Pair, group []Circle, w, h float64) []Pair {
	if len(group) < 2 {
		return dst
	}
	g.grid.Reset(w, h, cellSize(2*maxRadius(group)))
	for i := range group {
		g.grid.Insert(group[i].X, group[i].Y, i)
	}

	for i := range group {
		ci := group[i]
		g.hits = g.hits[:0]
		g.grid.QueryAround(ci.X, ci.Y, func(j int) bool {
			if j <= i {
				return false
			}
			cj := group[j]
			if physics.CirclesOverlapTorus(ci.X, ci.Y, ci.R, cj.X, cj.Y, cj.R, w, h) {
				g.hits = append(g.hits, j)
			}
			return false
		})
		dst = g.appendSorted(dst, i)
	}
	return dst
}

// appendSorted flushes the hit buffer for row a in ascending B order.
// Grid queries visit cells, not indices, so the buffer arrives shuffled.
func (g *gridDetector) appendSorted(dst []Pair, a int) []Pair {
	sort.Ints(g.hits)
	for _, j := range g.hits {
		dst = append(dst, Pair{A: a, B: j})
	}
	return dst
}

func maxRadius(group []Circle) float64 {
	r := 0.0
	for _, c := range group {
		if c.R > r {
			r = c.R
		}
	}
	return r
}

// cellSize keeps degenerate populations (all zero radius) from
// producing a zero-sized grid cell.
func cellSize(interaction float64) float64 {
	if interaction <= 0 {
		return 1
	}
	return interaction
}
