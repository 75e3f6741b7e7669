package physics

import "math"

// Vec is a 2D vector. Methods return new values; a Vec is never mutated
// in place.
type Vec struct {
	X, Y float64
}

// FromAngle returns the unit vector pointing at the given angle in radians.
func FromAngle(rad float64) Vec {
	sin, cos := math.Sincos(rad)
	return Vec{X: cos, Y: sin}
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Mag returns the vector length.
func (v Vec) Mag() float64 { return math.Hypot(v.X, v.Y) }

// MagSq returns the squared length without taking a square root.
func (v Vec) MagSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector in v's direction. The zero vector
// normalizes to itself.
func (v Vec) Normalize() Vec {
	m := v.Mag()
	if m == 0 {
		return Vec{}
	}
	return Vec{v.X / m, v.Y / m}
}

// Rotate returns v rotated counterclockwise by rad radians.
func (v Vec) Rotate(rad float64) Vec {
	sin, cos := math.Sincos(rad)
	return Vec{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Angle returns the direction of v in radians.
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Limit returns v clamped to the given maximum length.
func (v Vec) Limit(max float64) Vec {
	if max <= 0 {
		return Vec{}
	}
	if v.MagSq() <= max*max {
		return v
	}
	return v.Normalize().Scale(max)
}
