// Package ai drives the enemy craft. A single driver scores every UFO's
// situation each tick, dispatches on its personality, and rewrites its
// velocity, heading, and behavior state. The boss never passes through
// here; its path is closed-form and lives with the entity.
package ai

import (
	"math"
	"math/rand"

	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/physics"
)

// Tuning shared by every personality.
const (
	optimalRange    = 200.0 // preferred combat distance
	dangerZone      = 100.0 // inside this the target is an immediate threat
	engagementRange = 400.0 // aggressive craft commit to the attack inside this
	fastTarget      = 500.0 // units/s; a target above this gets intercepted
	evadeRadius     = 100.0 // react to player shots inside this
	alarmRadius     = 50.0  // shots this close raise the threat sharply
	avoidRadius     = 80.0  // surface gap at which asteroids start to repel
	flankOffset     = 150.0 // waypoint offset beside the target
	interceptLead   = 1.0   // seconds of target motion to lead by
	swarmRadius     = 300.0 // neighbor radius for swarm coordination
	swarmDensity    = 3     // neighbors that force a swarm attack
	swarmSeparation = 50.0  // crowding distance inside a swarm
	swarmDrift      = 0.5   // swarm motion as a fraction of cruise speed
	patrolWobble    = 2.0   // patrol oscillation, radians/s
	patrolLift      = 50.0  // vertical patrol speed amplitude, units/s
	avoidWeight     = 0.3   // asteroid avoidance blend, always on
	rotationRate    = 2.5   // heading easing, radians/s at dilation 1
	aimSpreadMax    = 0.5   // radians of aim spread at zero accuracy
)

// View is the world as one craft sees it for a single tick. The driver
// reads it and keeps nothing past Step.
type View struct {
	Arena     object.Arena
	Ship      *object.Ship // nil while destroyed or respawning
	UFOs      []*object.UFO
	Asteroids []*object.Asteroid
	Shots     []*object.Projectile // live player shots only
	Dilation  float64
}

// Command is the driver's output for one craft and tick. The session
// materializes the projectile; the round is already spent.
type Command struct {
	Fire bool
	Aim  float64 // world heading of the shot when Fire is set
}

// Driver steers every UFO in a session. Per-craft memory lives in the
// UFO's brain; the driver itself holds only the session RNG.
type Driver struct {
	rng *rand.Rand
}

// NewDriver returns a driver drawing aim spread from rng.
func NewDriver(rng *rand.Rand) *Driver {
	return &Driver{rng: rng}
}

// Step scores the situation, picks the craft's maneuver, steers it, and
// decides whether it fires. It runs after collision resolution so the
// craft reacts to settled positions; the commanded velocity takes
// effect on the next integration.
func (d *Driver) Step(u *object.UFO, view View, dt float64) Command {
	if view.Ship != nil {
		u.Brain.LastKnownX, u.Brain.LastKnownY = view.Ship.X, view.Ship.Y
	}

	threat, opportunity := assess(u, view)
	m := chooseManeuver(u, view, threat, opportunity)
	u.SetState(stateFor(m))

	d.steer(u, view, weightsFor(m), dt)

	if view.Ship == nil || !u.CanFire() || !clearToFire(u, view) {
		return Command{}
	}
	aim := d.aim(u, view)
	u.SpendShot()
	u.SetState(object.StateFiring)
	return Command{Fire: true, Aim: aim}
}

// assess scores how threatened the craft is and how exposed the target
// looks, both clamped to [0, 1].
func assess(u *object.UFO, view View) (threat, opportunity float64) {
	if view.Ship == nil {
		return 0, 0
	}
	ship := view.Ship

	distSq := torusDistSq(u.X, u.Y, ship.X, ship.Y, view.Arena)
	switch {
	case distSq < dangerZone*dangerZone:
		threat += 0.4
	case distSq < optimalRange*optimalRange:
		threat += 0.2
	}

	for _, shot := range view.Shots {
		shotSq := torusDistSq(u.X, u.Y, shot.X, shot.Y, view.Arena)
		switch {
		case shotSq < alarmRadius*alarmRadius:
			threat += 0.3
		case shotSq < evadeRadius*evadeRadius:
			threat += 0.1
		}
	}

	speed := ship.Speed()
	switch {
	case speed > 800:
		threat += 0.3
	case speed > 400:
		threat += 0.1
	}

	switch {
	case speed < 200:
		opportunity += 0.4
	case speed < 400:
		opportunity += 0.2
	}
	near := 0
	for _, a := range view.Asteroids {
		if torusDistSq(a.X, a.Y, ship.X, ship.Y, view.Arena) < optimalRange*optimalRange {
			near++
		}
	}
	if near > 2 {
		opportunity += 0.3
	}

	return math.Min(threat, 1), math.Min(opportunity, 1)
}

// maneuver is the steering program the craft flies this tick. Several
// maneuvers can report the same behavior state; their blends differ.
type maneuver uint8

const (
	maneuverSeek maneuver = iota
	maneuverPursue
	maneuverIntercept
	maneuverFlank
	maneuverFlee
	maneuverEvade
	maneuverPatrol
	maneuverSwarmAttack
	maneuverSwarmPatrol
)

// chooseManeuver dispatches on the personality. Every table bottoms out
// in an engaging maneuver; evasion has to be earned by actual pressure.
func chooseManeuver(u *object.UFO, view View, threat, opportunity float64) maneuver {
	if view.Ship == nil {
		return maneuverPatrol
	}
	speed := view.Ship.Speed()

	switch u.Personality {
	case object.Defensive:
		switch {
		case threat > 0.6:
			return maneuverFlee
		case threat > 0.3:
			return maneuverEvade
		case opportunity > 0.6:
			return maneuverIntercept
		default:
			return maneuverSeek
		}
	case object.Tactical:
		switch {
		case speed > fastTarget:
			return maneuverIntercept
		case threat > 0.5:
			return maneuverEvade
		case opportunity > 0.6:
			return maneuverFlank
		default:
			return maneuverSeek
		}
	case object.Swarm:
		n := neighborCount(u, view)
		switch {
		case n >= swarmDensity:
			return maneuverSwarmAttack
		case n > 0 && opportunity > 0.6:
			return maneuverSwarmAttack
		case n > 0:
			return maneuverSwarmPatrol
		default:
			return maneuverSeek
		}
	case object.Deadly:
		switch {
		case opportunity > 0.3 && threat < 0.4:
			return maneuverPursue
		case opportunity > 0.3 && threat < 0.7:
			return maneuverFlank
		case opportunity > 0.3:
			return maneuverIntercept
		case threat < 0.6:
			return maneuverIntercept
		default:
			return maneuverEvade
		}
	default: // Aggressive
		distSq := torusDistSq(u.X, u.Y, view.Ship.X, view.Ship.Y, view.Arena)
		switch {
		case distSq > engagementRange*engagementRange:
			return maneuverSeek
		case threat > 0.7 && opportunity < 0.5:
			return maneuverEvade
		case speed > fastTarget:
			return maneuverIntercept
		default:
			return maneuverPursue
		}
	}
}

// stateFor maps a maneuver onto the behavior state the craft reports.
func stateFor(m maneuver) object.AIState {
	switch m {
	case maneuverPatrol, maneuverSwarmPatrol:
		return object.StateSeeking
	case maneuverFlank:
		return object.StateRepositioning
	case maneuverFlee, maneuverEvade:
		return object.StateEvading
	default:
		return object.StateEngaging
	}
}

// weights is the steering blend for one maneuver. Asteroid avoidance is
// not listed; it always contributes at avoidWeight.
type weights struct {
	seek, flee, flank, swarm, patrol, intercept, evade float64
}

func weightsFor(m maneuver) weights {
	switch m {
	case maneuverPursue:
		return weights{seek: 0.8, intercept: 0.2}
	case maneuverIntercept:
		return weights{intercept: 0.9, seek: 0.1}
	case maneuverFlank:
		return weights{flank: 0.6, seek: 0.4}
	case maneuverFlee:
		return weights{flee: 0.9, evade: 0.1}
	case maneuverEvade:
		return weights{evade: 0.7, flee: 0.3}
	case maneuverPatrol:
		return weights{patrol: 0.8, seek: 0.2}
	case maneuverSwarmAttack:
		return weights{swarm: 0.6, seek: 0.4}
	case maneuverSwarmPatrol:
		return weights{swarm: 0.8, patrol: 0.2}
	default: // maneuverSeek
		return weights{seek: 1}
	}
}

// neighborCount counts other craft inside swarmRadius, any personality.
func neighborCount(u *object.UFO, view View) int {
	n := 0
	for _, o := range view.UFOs {
		if o == u {
			continue
		}
		if torusDistSq(u.X, u.Y, o.X, o.Y, view.Arena) < swarmRadius*swarmRadius {
			n++
		}
	}
	return n
}

// clearToFire applies the personality's firing doctrine. Defensive
// craft hold fire inside the danger zone.
func clearToFire(u *object.UFO, view View) bool {
	if u.Personality != object.Defensive {
		return true
	}
	return torusDistSq(u.X, u.Y, view.Ship.X, view.Ship.Y, view.Arena) > dangerZone*dangerZone
}

func torusDistSq(x1, y1, x2, y2 float64, a object.Arena) float64 {
	return physics.TorusDistanceSquared(x1, y1, x2, y2, a.Width, a.Height)
}
