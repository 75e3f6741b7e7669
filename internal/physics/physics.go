// Package physics provides vector math, distance utilities, and the
// kinematic helpers shared by every entity: toroidal wrap, velocity
// decay, and the ship thrust curve.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles touch or overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) <= minDist*minDist
}

// WrapDelta reduces a signed separation d to the shortest equivalent
// separation on a wrapped axis of the given span.
func WrapDelta(d, span float64) float64 {
	half := span / 2
	if d > half {
		return d - span
	}
	if d < -half {
		return d + span
	}
	return d
}

// TorusDistanceSquared calculates the squared distance between two points
// on a torus of the given width and height.
func TorusDistanceSquared(x1, y1, x2, y2, w, h float64) float64 {
	dx := WrapDelta(x2-x1, w)
	dy := WrapDelta(y2-y1, h)
	return dx*dx + dy*dy
}

// CirclesOverlapTorus checks if two circles touch or overlap on a torus
// of the given width and height.
func CirclesOverlapTorus(x1, y1, r1, x2, y2, r2, w, h float64) bool {
	minDist := r1 + r2
	return TorusDistanceSquared(x1, y1, x2, y2, w, h) <= minDist*minDist
}

// ThrustMultiplier scales thrust acceleration by the ship's speed ratio
// r = speed/reference. Thrust is boosted below half the reference speed,
// tapers almost to nothing approaching 90% of it, recovers to full
// strength at the reference speed, and holds steady beyond it. The
// taper-then-recover shape is intentional.
func ThrustMultiplier(r float64) float64 {
	switch {
	case r < 0.5:
		return 1.25
	case r < 0.9:
		return 1.0 - (r-0.5)/0.4*0.99
	case r < 1.0:
		return 0.01 + (r-0.9)/0.1*0.99
	default:
		return 1.0
	}
}
