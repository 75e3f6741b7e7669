package ai

import (
	"math"
	"testing"

	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/physics"
)

func TestSeekVecHuntsLastKnownPosition(t *testing.T) {
	u := testCraft(object.Swarm, 500, 375)
	u.Brain.LastKnownX, u.Brain.LastKnownY = 700, 375

	got := seekVec(u, testView(nil))
	if got.X != 100 || got.Y != 0 {
		t.Fatalf("seek = (%v, %v), want (100, 0)", got.X, got.Y)
	}
}

func TestFleeVecOpposesSeek(t *testing.T) {
	u := testCraft(object.Defensive, 500, 300)
	u.Brain.LastKnownX, u.Brain.LastKnownY = 650, 450
	view := testView(nil)

	seek := seekVec(u, view)
	flee := fleeVec(u, view)
	if flee.X != -seek.X || flee.Y != -seek.Y {
		t.Fatalf("flee = (%v, %v), want the exact opposite of seek (%v, %v)",
			flee.X, flee.Y, seek.X, seek.Y)
	}
}

func TestSeekVecWrapsTheSeam(t *testing.T) {
	u := testCraft(object.Aggressive, 990, 375)
	u.Brain.LastKnownX, u.Brain.LastKnownY = 10, 375

	got := seekVec(u, testView(nil))
	if got.X != 100 || got.Y != 0 {
		t.Fatalf("seek = (%v, %v), want (100, 0) through the seam", got.X, got.Y)
	}
}

func TestInterceptVecLeadsTheTarget(t *testing.T) {
	ship := object.NewShip(600, 375, false)
	ship.VY = 100
	u := testCraft(object.Tactical, 500, 375)

	got := interceptVec(u, testView(ship))
	want := physics.Vec{X: 100, Y: 100}.Normalize().Scale(100)
	if got != want {
		t.Fatalf("intercept = %+v, want %+v aimed one second ahead", got, want)
	}
}

func TestFlankVecSitsBesideTheTarget(t *testing.T) {
	ship := object.NewShip(500, 375, false)
	ship.VX = 100 // heading east, so the flank waypoint sits at +Y
	u := testCraft(object.Tactical, 500, 200)

	got := flankVec(u, testView(ship))
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-100) > 1e-9 {
		t.Fatalf("flank = (%v, %v), want (0, 100) toward the beam waypoint", got.X, got.Y)
	}
}

func TestPatrolVecAccumulatesPhase(t *testing.T) {
	u := testCraft(object.Aggressive, 500, 375)
	u.Brain.PatrolDir = 1

	first := patrolVec(u, 0.25)
	if u.Brain.PatrolPhase != 0.5 {
		t.Fatalf("phase = %v, want 0.5 after a quarter second", u.Brain.PatrolPhase)
	}
	if first.X != 100 {
		t.Fatalf("X = %v, want the full cruise sweep", first.X)
	}
	if first.Y != math.Sin(0.5)*50 {
		t.Fatalf("Y = %v, want %v", first.Y, math.Sin(0.5)*50)
	}

	for i := 0; i < 100; i++ {
		if v := patrolVec(u, 0.1); math.Abs(v.Y) > 50 {
			t.Fatalf("wobble %v exceeded the 50 unit/s lift", v.Y)
		}
	}
}

func TestSwarmVecCohesion(t *testing.T) {
	u := testCraft(object.Swarm, 500, 375)
	other := testCraft(object.Swarm, 700, 375)
	other.VX, other.VY = 0, 0
	view := testView(nil)
	view.UFOs = []*object.UFO{u, other}

	got := swarmVec(u, view)
	if got.X != 50 || got.Y != 0 {
		t.Fatalf("swarm = (%v, %v), want (50, 0) drifting toward the pack", got.X, got.Y)
	}
}

func TestSwarmVecSeparationDominatesWhenCrowded(t *testing.T) {
	u := testCraft(object.Swarm, 500, 375)
	other := testCraft(object.Swarm, 510, 375)
	other.VX, other.VY = 0, 0
	view := testView(nil)
	view.UFOs = []*object.UFO{u, other}

	got := swarmVec(u, view)
	if got.X != -50 || got.Y != 0 {
		t.Fatalf("swarm = (%v, %v), want (-50, 0) pushing out of the crowd", got.X, got.Y)
	}
}

func TestSwarmVecIgnoresDistantCraft(t *testing.T) {
	u := testCraft(object.Swarm, 500, 375)
	other := testCraft(object.Swarm, 900, 375)
	view := testView(nil)
	view.UFOs = []*object.UFO{u, other}

	if got := swarmVec(u, view); got != (physics.Vec{}) {
		t.Fatalf("swarm = %+v, want zero with no neighbors in radius", got)
	}
}

func TestEvadeVecPushesAwayFromShots(t *testing.T) {
	u := testCraft(object.Defensive, 500, 375)
	view := testView(nil)
	view.Shots = []*object.Projectile{{X: 550, Y: 375}}

	got := evadeVec(u, view)
	if got.X != -100 || got.Y != 0 {
		t.Fatalf("evade = (%v, %v), want (-100, 0)", got.X, got.Y)
	}
}

func TestEvadeVecIgnoresFarShots(t *testing.T) {
	u := testCraft(object.Defensive, 500, 375)
	view := testView(nil)
	view.Shots = []*object.Projectile{{X: 600, Y: 375}}

	if got := evadeVec(u, view); got != (physics.Vec{}) {
		t.Fatalf("evade = %+v, want zero at the radius boundary", got)
	}
}

func TestAvoidVecUsesSurfaceGap(t *testing.T) {
	u := testCraft(object.Aggressive, 500, 375)
	view := testView(nil)

	// Center distance 200, but the tier-9 rock leaves a 26 unit gap.
	view.Asteroids = []*object.Asteroid{{X: 700, Y: 375, Radius: 148}}
	got := avoidVec(u, view)
	if got.X != -100 || got.Y != 0 {
		t.Fatalf("avoid = (%v, %v), want (-100, 0) clear of the big rock", got.X, got.Y)
	}

	// Same center distance, small rock: the gap is far outside the
	// avoidance radius.
	view.Asteroids = []*object.Asteroid{{X: 700, Y: 375, Radius: 7}}
	if got := avoidVec(u, view); got != (physics.Vec{}) {
		t.Fatalf("avoid = %+v, want zero for a distant small rock", got)
	}
}

func TestWrapAngleFolds(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{math.Pi, math.Pi},
		{-math.Pi, -math.Pi},
		{2 * math.Pi, 0},
		{-2 * math.Pi, 0},
		{5 * math.Pi / 2, math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tc := range cases {
		if got := wrapAngle(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("wrapAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSteerEasesHeadingTowardCourse(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(500, 600, false)

	u := testCraft(object.Swarm, 500, 500)
	u.Angle = 0
	view := testView(ship)
	view.UFOs = []*object.UFO{u}
	d.Step(u, view, tick)

	want := math.Pi / 2 * 2.5 * tick
	if u.Angle != want {
		t.Fatalf("angle = %v, want %v after one easing step", u.Angle, want)
	}

	// Deep slow motion speeds the easing so the visible turn rate holds.
	u = testCraft(object.Swarm, 500, 500)
	u.Angle = 0
	view.Dilation = 0.05
	view.UFOs = []*object.UFO{u}
	d.Step(u, view, tick)

	want = math.Pi / 2 * (2.5 / 0.1) * tick
	if u.Angle != want {
		t.Fatalf("angle = %v, want %v with the dilation floored at 0.1", u.Angle, want)
	}
}

func TestSteerKeepsVelocityOnZeroBlend(t *testing.T) {
	d := testDriver()
	u := testCraft(object.Aggressive, 500, 375)
	vx, vy := u.VX, u.VY

	d.steer(u, testView(nil), weights{}, tick)

	if u.VX != vx || u.VY != vy {
		t.Fatalf("velocity changed to (%v, %v) on an empty blend", u.VX, u.VY)
	}
}
