package ai

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
)

const tick = 1.0 / 60.0

func testView(ship *object.Ship) View {
	return View{
		Arena:    object.Arena{Width: config.WorldWidth, Height: config.WorldHeight},
		Ship:     ship,
		Dilation: 1.0,
	}
}

func testCraft(p object.Personality, x, y float64) *object.UFO {
	return object.NewUFO(x, y, p, 1, rand.New(rand.NewSource(7)))
}

func testDriver() *Driver {
	return NewDriver(rand.New(rand.NewSource(1)))
}

func TestAggressivePursuesInRange(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(500, 375, false)
	u := testCraft(object.Aggressive, 650, 375)

	cmd := d.Step(u, testView(ship), tick)

	if cmd.Fire {
		t.Fatalf("fresh craft fired before its first cooldown elapsed")
	}
	if u.State != object.StateEngaging {
		t.Fatalf("state = %v, want engaging", u.State)
	}
	if u.VX >= 0 {
		t.Fatalf("VX = %v, want negative toward the ship", u.VX)
	}
}

func TestAggressiveSeeksFromAfar(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(550, 375, false)
	ship.VY = 100
	u := testCraft(object.Aggressive, 100, 375)

	d.Step(u, testView(ship), tick)

	if u.State != object.StateEngaging {
		t.Fatalf("state = %v, want engaging even out of commit range", u.State)
	}
	// Pure seek points dead at the ship; any intercept weight would lift
	// the Y component off zero.
	if u.VX != 100 || u.VY != 0 {
		t.Fatalf("velocity = (%v, %v), want (100, 0) straight at the ship", u.VX, u.VY)
	}
}

func TestAggressiveEvadesUnderConcentratedFire(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(550, 375, false)
	u := testCraft(object.Aggressive, 500, 375)
	view := testView(ship)
	view.Shots = []*object.Projectile{{X: 510, Y: 375}, {X: 520, Y: 375}}

	d.Step(u, view, tick)

	if u.State != object.StateEvading {
		t.Fatalf("state = %v, want evading with two shots inbound point blank", u.State)
	}
	if u.VX >= 0 {
		t.Fatalf("VX = %v, want negative away from the shots", u.VX)
	}
}

func TestDefensiveFleesWhenPressed(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(550, 375, false)
	u := testCraft(object.Defensive, 500, 375)
	view := testView(ship)
	view.Shots = []*object.Projectile{{X: 540, Y: 375}}

	d.Step(u, view, tick)

	if u.State != object.StateEvading {
		t.Fatalf("state = %v, want evading", u.State)
	}
	if u.VX >= 0 {
		t.Fatalf("VX = %v, want negative away from the ship", u.VX)
	}
}

func TestDefensiveFiringDoctrine(t *testing.T) {
	d := testDriver()

	near := object.NewShip(580, 375, false)
	u := testCraft(object.Defensive, 500, 375)
	u.FireTimer = 0
	if cmd := d.Step(u, testView(near), tick); cmd.Fire {
		t.Fatalf("defensive craft fired from inside the danger zone")
	}
	if u.FireBudget != u.FireBudgetMax {
		t.Fatalf("held shot still spent a round: budget %d of %d", u.FireBudget, u.FireBudgetMax)
	}

	far := object.NewShip(650, 375, false)
	u = testCraft(object.Defensive, 500, 375)
	u.FireTimer = 0
	cmd := d.Step(u, testView(far), tick)
	if !cmd.Fire {
		t.Fatalf("defensive craft held fire at safe range")
	}
	if u.State != object.StateFiring {
		t.Fatalf("state = %v, want firing", u.State)
	}
	if u.FireBudget != u.FireBudgetMax-1 {
		t.Fatalf("budget = %d, want one round spent from %d", u.FireBudget, u.FireBudgetMax)
	}
	if u.FireTimer != u.Params.FireInterval {
		t.Fatalf("fire timer = %v, want reset to %v", u.FireTimer, u.Params.FireInterval)
	}
}

func TestAggressiveFiresPointBlank(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(550, 375, false)
	u := testCraft(object.Aggressive, 500, 375)
	u.FireTimer = 0

	cmd := d.Step(u, testView(ship), tick)

	if !cmd.Fire {
		t.Fatalf("aggressive craft held fire at point blank")
	}
	if math.Abs(cmd.Aim) > 0.125 {
		t.Fatalf("aim = %v, want within the accuracy-0.75 spread of due east", cmd.Aim)
	}
	if u.State != object.StateFiring {
		t.Fatalf("state = %v, want firing", u.State)
	}
}

func TestFiringStateIsTransient(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(650, 375, false)
	u := testCraft(object.Aggressive, 500, 375)
	u.FireTimer = 0

	d.Step(u, testView(ship), tick)
	if u.State != object.StateFiring {
		t.Fatalf("state = %v, want firing on the shot tick", u.State)
	}

	d.Step(u, testView(ship), tick)
	if u.State != object.StateEngaging {
		t.Fatalf("state = %v, want back to engaging while the cooldown runs", u.State)
	}
}

func TestTacticalInterceptsRunner(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(500, 375, false)
	ship.VY = 600
	u := testCraft(object.Tactical, 100, 375)

	d.Step(u, testView(ship), tick)

	if u.State != object.StateEngaging {
		t.Fatalf("state = %v, want engaging", u.State)
	}
	// The one-second lead lands past the seam, so the short way to the
	// predicted point runs against the ship's own motion.
	if u.VX <= 0 || u.VY >= 0 {
		t.Fatalf("velocity = (%v, %v), want positive X and negative Y toward the wrapped lead", u.VX, u.VY)
	}
}

func TestTacticalFlanksOpenTarget(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(800, 375, false)
	u := testCraft(object.Tactical, 400, 375)
	view := testView(ship)
	view.Asteroids = []*object.Asteroid{
		{X: 750, Y: 330, Radius: 16},
		{X: 850, Y: 420, Radius: 16},
		{X: 800, Y: 430, Radius: 16},
	}

	d.Step(u, view, tick)

	if u.State != object.StateRepositioning {
		t.Fatalf("state = %v, want repositioning toward a flank", u.State)
	}
	if u.VX <= 0 || u.VY <= 0 {
		t.Fatalf("velocity = (%v, %v), want positive toward the flank waypoint", u.VX, u.VY)
	}
}

func TestSwarmDensityForcesAttack(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(800, 375, false)
	ship.VX = 450 // fast enough to zero the opportunity score
	u := testCraft(object.Swarm, 200, 375)
	view := testView(ship)
	view.UFOs = []*object.UFO{
		u,
		testCraft(object.Swarm, 300, 375),
		testCraft(object.Swarm, 250, 300),
		testCraft(object.Swarm, 150, 450),
	}

	d.Step(u, view, tick)

	if u.State != object.StateEngaging {
		t.Fatalf("state = %v, want engaging forced by pack density", u.State)
	}
}

func TestSwarmPatrolsWithSmallPack(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(800, 375, false)
	ship.VX = 450
	u := testCraft(object.Swarm, 200, 375)
	view := testView(ship)
	view.UFOs = []*object.UFO{u, testCraft(object.Swarm, 300, 375)}

	d.Step(u, view, tick)

	if u.State != object.StateSeeking {
		t.Fatalf("state = %v, want seeking on swarm patrol", u.State)
	}
}

func TestLoneSwarmCraftSeeks(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(500, 375, false)
	u := testCraft(object.Swarm, 200, 375)
	view := testView(ship)
	view.UFOs = []*object.UFO{u}

	d.Step(u, view, tick)

	if u.State != object.StateEngaging {
		t.Fatalf("state = %v, want the engaging fallback", u.State)
	}
	if u.VX != 100 || u.VY != 0 {
		t.Fatalf("velocity = (%v, %v), want (100, 0) straight at the ship", u.VX, u.VY)
	}
}

func TestDeadlyPressesAdvantage(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(800, 375, false)
	u := testCraft(object.Deadly, 300, 375)

	d.Step(u, testView(ship), tick)

	if u.State != object.StateEngaging {
		t.Fatalf("state = %v, want engaging against an idle target", u.State)
	}
}

func TestDeadlyEvadesOnlyUnderExtremePressure(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(580, 375, false)
	ship.VX = 250
	u := testCraft(object.Deadly, 500, 375)
	view := testView(ship)
	view.Shots = []*object.Projectile{{X: 530, Y: 375}}

	d.Step(u, view, tick)

	if u.State != object.StateEvading {
		t.Fatalf("state = %v, want evading under point-blank fire with no opening", u.State)
	}
}

func TestNoTargetPatrols(t *testing.T) {
	d := testDriver()
	u := testCraft(object.Aggressive, 500, 375)

	cmd := d.Step(u, testView(nil), tick)

	if cmd.Fire {
		t.Fatalf("craft fired with no target")
	}
	if u.State != object.StateSeeking {
		t.Fatalf("state = %v, want seeking", u.State)
	}
	if math.Abs(u.VX) != 80 {
		t.Fatalf("VX = %v, want the 0.8-weighted patrol sweep at 80", u.VX)
	}
	if u.Brain.PatrolPhase <= 0 {
		t.Fatalf("patrol phase did not accumulate: %v", u.Brain.PatrolPhase)
	}
}

func TestBrainTracksLastSeenTarget(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(123, 456, false)
	u := testCraft(object.Tactical, 600, 600)

	d.Step(u, testView(ship), tick)

	if u.Brain.LastKnownX != 123 || u.Brain.LastKnownY != 456 {
		t.Fatalf("last known = (%v, %v), want the ship position",
			u.Brain.LastKnownX, u.Brain.LastKnownY)
	}
}

func TestExhaustedBudgetHoldsFire(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(650, 375, false)
	u := testCraft(object.Aggressive, 500, 375)
	u.FireTimer = 0
	u.FireBudget = 0

	if cmd := d.Step(u, testView(ship), tick); cmd.Fire {
		t.Fatalf("craft fired with an exhausted budget")
	}
}

func TestSeekCrossesTheSeam(t *testing.T) {
	d := testDriver()
	ship := object.NewShip(10, 375, false)
	u := testCraft(object.Aggressive, 990, 375)

	d.Step(u, testView(ship), tick)

	if u.VX <= 0 {
		t.Fatalf("VX = %v, want positive through the seam toward the ship", u.VX)
	}
}
