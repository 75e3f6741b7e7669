package object

import (
	"math"
	"math/rand"
)

// Personality is a UFO's fixed behavior profile. The set is closed; the
// AI driver dispatches on it exhaustively.
type Personality uint8

const (
	Aggressive Personality = iota
	Defensive
	Tactical
	Swarm
	Deadly
)

// String returns a short name for the personality.
func (p Personality) String() string {
	switch p {
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	case Tactical:
		return "tactical"
	case Swarm:
		return "swarm"
	case Deadly:
		return "deadly"
	default:
		return "unknown"
	}
}

// AIState is the behavior state shared by all personalities.
type AIState uint8

const (
	StateSeeking AIState = iota
	StateEngaging
	StateEvading
	StateRepositioning
	StateFiring
)

// String returns a short name for the state.
func (s AIState) String() string {
	switch s {
	case StateSeeking:
		return "seeking"
	case StateEngaging:
		return "engaging"
	case StateEvading:
		return "evading"
	case StateRepositioning:
		return "repositioning"
	case StateFiring:
		return "firing"
	default:
		return "unknown"
	}
}

// UFOParams are the fixed tuning values one personality carries.
type UFOParams struct {
	Speed        float64 // cruise speed, units/s
	MaxSpeed     float64
	Accel        float64
	FireInterval float64
	Accuracy     float64 // 1.0 and above aims true; lower adds spread
	Aggression   float64
	Predictive   bool // leads the target when aiming
}

// Params returns the tuning values for a personality.
func (p Personality) Params() UFOParams {
	switch p {
	case Defensive:
		return UFOParams{Speed: 100, MaxSpeed: 150, Accel: 50, FireInterval: 1.0, Accuracy: 0.75, Aggression: 0.7}
	case Tactical:
		return UFOParams{Speed: 100, MaxSpeed: 150, Accel: 50, FireInterval: 1.0, Accuracy: 1.0, Aggression: 1.0, Predictive: true}
	case Swarm:
		return UFOParams{Speed: 100, MaxSpeed: 150, Accel: 50, FireInterval: 1.0, Accuracy: 1.0, Aggression: 1.2, Predictive: true}
	case Deadly:
		return UFOParams{Speed: 120, MaxSpeed: 180, Accel: 50, FireInterval: 0.7, Accuracy: 1.5, Aggression: 2.0, Predictive: true}
	default: // Aggressive
		return UFOParams{Speed: 100, MaxSpeed: 150, Accel: 50, FireInterval: 1.0, Accuracy: 0.75, Aggression: 1.5}
	}
}

const ufoRadius = 26.0

// UFOBrain is per-UFO AI memory, written only by the behavior driver.
type UFOBrain struct {
	LastKnownX, LastKnownY float64 // target position when last seen
	PatrolDir              float64 // fixed +1 or -1 sweep direction
	PatrolPhase            float64 // oscillation accumulator, radians
}

// UFO is an AI-controlled enemy craft. The behavior driver steers it by
// rewriting velocity and heading after scoring each tick; Update only
// integrates.
type UFO struct {
	X, Y   float64
	VX, VY float64
	Angle  float64
	Radius float64

	Personality Personality
	Params      UFOParams
	State       AIState
	StateTime   float64 // seconds in the current state

	FireTimer     float64 // counts down to the next allowed shot
	FireBudget    int     // rounds remaining this level
	FireBudgetMax int

	Brain UFOBrain
}

// NewUFO creates a UFO of the given personality. The fire budget grows
// with the level; the first shot is held for one full interval.
func NewUFO(x, y float64, p Personality, level int, rng *rand.Rand) *UFO {
	params := p.Params()
	budget := 5 + (level/2)*5

	dir := 1.0
	if rng.Intn(2) == 0 {
		dir = -1.0
	}

	return &UFO{
		X:             x,
		Y:             y,
		VX:            dir * params.Speed,
		Angle:         math.Atan2(0, dir),
		Radius:        ufoRadius,
		Personality:   p,
		Params:        params,
		State:         StateSeeking,
		FireTimer:     params.FireInterval,
		FireBudget:    budget,
		FireBudgetMax: budget,
		Brain: UFOBrain{
			LastKnownX: x,
			LastKnownY: y,
			PatrolDir:  dir,
		},
	}
}

// Kind implements Object.
func (u *UFO) Kind() Kind { return KindUFO }

// Update integrates position and timers and wraps at the arena edges.
func (u *UFO) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	u.X += u.VX * dt
	u.Y += u.VY * dt
	ctx.Arena.WrapPosition(&u.X, &u.Y)

	u.StateTime += dt
	if u.FireTimer > 0 {
		u.FireTimer -= dt
	}

	return false, nil
}

// SetState switches the behavior state and resets its clock.
func (u *UFO) SetState(s AIState) {
	if u.State == s {
		return
	}
	u.State = s
	u.StateTime = 0
}

// CanFire reports whether the cooldown has elapsed and rounds remain.
func (u *UFO) CanFire() bool {
	return u.FireTimer <= 0 && u.FireBudget > 0
}

// SpendShot consumes one round and restarts the cooldown.
func (u *UFO) SpendShot() {
	u.FireBudget--
	u.FireTimer = u.Params.FireInterval
}
