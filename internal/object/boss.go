package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/staroids/internal/loop/config"
)

// Boss is the scripted heavy craft. It is exempt from the toroidal
// wrap: horizontal motion reflects at the arena bounds, and its
// collisions use plain Euclidean distance. It bypasses the behavior
// state machine entirely; the path is closed-form and firing runs on a
// fixed-interval timer.
type Boss struct {
	X, Y   float64
	BaseY  float64
	Dir    float64 // horizontal direction, +1 or -1
	Phase  float64 // sine phase offset, fixed at spawn
	Radius float64

	Hits      int     // projectile hits remaining
	FireTimer float64 // counts down to the next volley

	age float64 // seconds since spawn, drives the sine
}

// NewBoss spawns the boss at a horizontal edge at mid-height, moving
// inward, with a random sine phase.
func NewBoss(arena Arena, rng *rand.Rand) *Boss {
	x := config.BossRadius
	dir := 1.0
	if rng.Intn(2) == 0 {
		x = arena.Width - config.BossRadius
		dir = -1.0
	}

	midY := arena.Height / 2
	return &Boss{
		X:         x,
		Y:         midY,
		BaseY:     midY,
		Dir:       dir,
		Phase:     rng.Float64() * 2 * math.Pi,
		Radius:    config.BossRadius,
		Hits:      config.BossHits,
		FireTimer: config.BossFireInterval,
	}
}

// Kind implements Object.
func (b *Boss) Kind() Kind { return KindBoss }

// Update advances the closed-form path:
// y = baseY + amplitude*sin(2*pi*frequency*t + phase), constant
// horizontal speed, reflecting direction at the arena bounds.
func (b *Boss) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	b.age += dt

	b.X += b.Dir * config.BossSpeed * dt
	if b.X < b.Radius {
		b.X = b.Radius
		b.Dir = 1
	} else if b.X > ctx.Arena.Width-b.Radius {
		b.X = ctx.Arena.Width - b.Radius
		b.Dir = -1
	}

	b.Y = b.BaseY + config.BossAmplitude*math.Sin(2*math.Pi*config.BossFrequency*b.age+b.Phase)
	if b.Y < b.Radius {
		b.Y = b.Radius
	} else if b.Y > ctx.Arena.Height-b.Radius {
		b.Y = ctx.Arena.Height - b.Radius
	}

	if b.FireTimer > 0 {
		b.FireTimer -= dt
	}

	return false, nil
}

// Hit applies projectile damage and reports whether the boss is
// destroyed.
func (b *Boss) Hit(damage int) (destroyed bool) {
	b.Hits -= damage
	return b.Hits <= 0
}

// CanFire reports whether the volley timer has elapsed.
func (b *Boss) CanFire() bool { return b.FireTimer <= 0 }

// SpendShot restarts the volley timer.
func (b *Boss) SpendShot() { b.FireTimer = config.BossFireInterval }
