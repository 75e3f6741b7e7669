package ai

import (
	"math"
	"testing"

	"github.com/tomz197/staroids/internal/object"
)

func TestAimDirectSpreadWithinBounds(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(600, 375, false)
	u := testCraft(object.Aggressive, 500, 375)
	view := testView(ship)

	// Accuracy 0.75 bounds the spread to 0.25 * 0.5 radians either side
	// of due east.
	sawSpread := false
	for i := 0; i < 200; i++ {
		aim := d.aim(u, view)
		if math.Abs(aim) > 0.125 {
			t.Fatalf("aim = %v, want within the 0.125 spread", aim)
		}
		if math.Abs(aim) > 0.01 {
			sawSpread = true
		}
	}
	if !sawSpread {
		t.Fatalf("200 shots all flew dead straight; spread never applied")
	}
}

func TestAimPredictiveLeadIsExact(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(600, 375, false)
	ship.VY = 300
	u := testCraft(object.Deadly, 500, 375)

	// Flight time 100/200 leads the shot half a second of ship motion
	// ahead, and deadly accuracy adds no spread.
	got := d.aim(u, testView(ship))
	want := math.Atan2(150, 100)
	if got != want {
		t.Fatalf("aim = %v, want %v toward the led position", got, want)
	}
}

func TestAimPerfectAccuracyHoldsSteady(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(600, 375, false)
	u := testCraft(object.Tactical, 500, 375)

	if got := d.aim(u, testView(ship)); got != 0 {
		t.Fatalf("aim = %v, want exactly 0 at a resting target due east", got)
	}
}

func TestAimCrossesTheSeam(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(10, 375, false)
	u := testCraft(object.Deadly, 990, 375)

	if got := d.aim(u, testView(ship)); got != 0 {
		t.Fatalf("aim = %v, want 0 through the seam, not pi around the long way", got)
	}
}
