package physics

import (
	"math"
	"testing"
)

func vecApproxEq(a, b Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func TestVecBasicOps(t *testing.T) {
	a := Vec{X: 3, Y: 4}
	b := Vec{X: -1, Y: 2}

	if got := a.Add(b); !vecApproxEq(got, Vec{2, 6}, 1e-12) {
		t.Errorf("Add = %+v, want {2 6}", got)
	}
	if got := a.Sub(b); !vecApproxEq(got, Vec{4, 2}, 1e-12) {
		t.Errorf("Sub = %+v, want {4 2}", got)
	}
	if got := a.Scale(2); !vecApproxEq(got, Vec{6, 8}, 1e-12) {
		t.Errorf("Scale = %+v, want {6 8}", got)
	}
	if got := a.Mag(); !approxEq(got, 5, 1e-12) {
		t.Errorf("Mag = %v, want 5", got)
	}
	if got := a.Dot(b); !approxEq(got, 5, 1e-12) {
		t.Errorf("Dot = %v, want 5", got)
	}
}

func TestVecNormalize(t *testing.T) {
	v := Vec{X: 0, Y: -7}.Normalize()
	if !vecApproxEq(v, Vec{0, -1}, 1e-12) {
		t.Fatalf("Normalize = %+v, want {0 -1}", v)
	}

	// The zero vector must not be normalized into NaNs.
	z := Vec{}.Normalize()
	if z.X != 0 || z.Y != 0 {
		t.Fatalf("zero vector normalized to %+v, want zero", z)
	}
}

func TestVecRotate(t *testing.T) {
	tests := []struct {
		name string
		v    Vec
		rad  float64
		want Vec
	}{
		{name: "quarter turn", v: Vec{1, 0}, rad: math.Pi / 2, want: Vec{0, 1}},
		{name: "half turn", v: Vec{1, 0}, rad: math.Pi, want: Vec{-1, 0}},
		{name: "full turn", v: Vec{3, 4}, rad: 2 * math.Pi, want: Vec{3, 4}},
		{name: "negative quarter", v: Vec{0, 1}, rad: -math.Pi / 2, want: Vec{1, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Rotate(tc.rad)
			if !vecApproxEq(got, tc.want, 1e-9) {
				t.Errorf("Rotate(%v) = %+v, want %+v", tc.rad, got, tc.want)
			}
		})
	}
}

func TestVecLimit(t *testing.T) {
	v := Vec{X: 30, Y: 40}
	if got := v.Limit(100); !vecApproxEq(got, v, 1e-12) {
		t.Errorf("Limit under max changed vector: %+v", got)
	}
	limited := v.Limit(5)
	if !approxEq(limited.Mag(), 5, 1e-9) {
		t.Errorf("Limit(5) magnitude = %v, want 5", limited.Mag())
	}
	if !vecApproxEq(limited.Normalize(), v.Normalize(), 1e-9) {
		t.Errorf("Limit changed direction: %+v", limited)
	}
}

func TestFromAngleRoundTrip(t *testing.T) {
	for _, rad := range []float64{0, 0.5, math.Pi / 3, -2.1} {
		v := FromAngle(rad)
		if !approxEq(v.Mag(), 1, 1e-12) {
			t.Fatalf("FromAngle(%v) not unit length: %v", rad, v.Mag())
		}
		if !approxEq(v.Angle(), rad, 1e-9) {
			t.Fatalf("Angle round trip: got %v, want %v", v.Angle(), rad)
		}
	}
}
