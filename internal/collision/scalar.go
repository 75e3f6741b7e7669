package collision

import (
	"github.com/tomz197/staroids/internal/physics"
)

// scalarDetector is the reference strategy: a plain nested sweep with
// the exact torus check. Quadratic, but simple and allocation-free; the
// accelerated strategies are validated against it.
type scalarDetector struct{}

func (scalarDetector) Name() string { return "scalar" }

// Pairs implements Detector.
func (scalarDetector) Pairs(dst []Pair, a, b []Circle, w, h float64) []Pair {
	for i := range a {
		for j := range b {
			if physics.CirclesOverlapTorus(a[i].X, a[i].Y, a[i].R, b[j].X, b[j].Y, b[j].R, w, h) {
				dst = append(dst, Pair{A: i, B: j})
			}
		}
	}
	return dst
}

// SelfPairs implements Detector.
func (scalarDetector) SelfPairs(dst []Pair, group []Circle, w, h float64) []Pair {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if physics.CirclesOverlapTorus(group[i].X, group[i].Y, group[i].R, group[j].X, group[j].Y, group[j].R, w, h) {
				dst = append(dst, Pair{A: i, B: j})
			}
		}
	}
	return dst
}
