package object

import (
	"math"

	"github.com/tomz197/staroids/internal/loop/config"
)

// Projectile is a bullet in flight. Player and enemy shots share the
// type; the owner tag decides what it can hit and who gets the score.
type Projectile struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity
	Radius   float64 // Collision radius
	Owner    Owner   // Side that fired it
	Damage   int     // Hits removed from whatever it strikes
	traveled float64 // Distance covered so far
	maxRange float64 // Travel budget before expiring
}

// NewProjectile creates a projectile with a precomputed velocity. Player
// shots expire after ShotMaxRange units of travel, enemy shots after
// EnemyShotMaxRange.
func NewProjectile(x, y, vx, vy float64, owner Owner) *Projectile {
	maxRange := config.ShotMaxRange
	if owner == OwnerEnemy {
		maxRange = config.EnemyShotMaxRange
	}
	return &Projectile{
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Radius:   config.ShotRadius,
		Owner:    owner,
		Damage:   1,
		maxRange: maxRange,
	}
}

// Kind implements Object.
func (p *Projectile) Kind() Kind { return KindProjectile }

// Update moves the projectile and expires it once its travel budget is
// spent. Distance is measured along the flight path, so wrapping does
// not extend the range.
func (p *Projectile) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	dx := p.VX * dt
	dy := p.VY * dt
	p.X += dx
	p.Y += dy
	p.traveled += math.Sqrt(dx*dx + dy*dy)
	if p.traveled >= p.maxRange {
		return true, nil
	}

	ctx.Arena.WrapPosition(&p.X, &p.Y)

	return false, nil
}
