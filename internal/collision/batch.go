package collision

import (
	"gonum.org/v1/gonum/floats"

	"github.com/tomz197/staroids/internal/physics"
)

// batchDetector lays one group out as coordinate slabs and tests each
// query circle against the whole slab with gonum's float kernels. The
// wrap step and the final compare stay scalar, so results match the
// reference bit for bit.
type batchDetector struct {
	xs, ys, rs []float64 // loaded group, slab layout
	dx, dy, rr []float64 // per-query scratch
}

func newBatchDetector() *batchDetector { return &batchDetector{} }

func (*batchDetector) Name() string { return "batch" }

// Pairs implements Detector.
func (d *batchDetector) Pairs(dst []Pair, a, b []Circle, w, h float64) []Pair {
	if len(a) == 0 || len(b) == 0 {
		return dst
	}
	d.load(b)
	for i := range a {
		dst = d.sweep(dst, i, a[i], w, h, 0)
	}
	return dst
}

// SelfPairs implements Detector.
func (d *batchDetector) SelfPairs(dst []Pair, group []Circle, w, h float64) []Pair {
	if len(group) < 2 {
		return dst
	}
	d.load(group)
	for i := range group {
		dst = d.sweep(dst, i, group[i], w, h, i+1)
	}
	return dst
}

// load copies a group into the slab layout and sizes the scratch
// buffers to match.
func (d *batchDetector) load(group []Circle) {
	n := len(group)
	d.xs = resize(d.xs, n)
	d.ys = resize(d.ys, n)
	d.rs = resize(d.rs, n)
	for i, c := range group {
		d.xs[i], d.ys[i], d.rs[i] = c.X, c.Y, c.R
	}
	d.dx = resize(d.dx, n)
	d.dy = resize(d.dy, n)
	d.rr = resize(d.rr, n)
}

// sweep appends every overlap between circle c (row a of the output)
// and the loaded slab at indices >= from.
func (d *batchDetector) sweep(dst []Pair, a int, c Circle, w, h float64, from int) []Pair {
	copy(d.dx, d.xs)
	floats.AddConst(-c.X, d.dx)
	copy(d.dy, d.ys)
	floats.AddConst(-c.Y, d.dy)
	for i := range d.dx {
		d.dx[i] = physics.WrapDelta(d.dx[i], w)
		d.dy[i] = physics.WrapDelta(d.dy[i], h)
	}
	floats.Mul(d.dx, d.dx)
	floats.Mul(d.dy, d.dy)
	floats.Add(d.dx, d.dy) // dx now holds squared torus distances

	copy(d.rr, d.rs)
	floats.AddConst(c.R, d.rr)
	floats.Mul(d.rr, d.rr) // rr holds squared combined radii

	for j := from; j < len(d.dx); j++ {
		if d.dx[j] <= d.rr[j] {
			dst = append(dst, Pair{A: a, B: j})
		}
	}
	return dst
}

func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
