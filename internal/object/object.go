package object

import (
	"math"
	"math/rand"
	"time"
)

// Kind identifies the concrete entity type carried by an Object.
type Kind uint8

const (
	KindShip Kind = iota
	KindAsteroid
	KindUFO
	KindBoss
	KindProjectile
	KindParticle
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindUFO:
		return "ufo"
	case KindBoss:
		return "boss"
	case KindProjectile:
		return "projectile"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Owner tags an entity with the side it belongs to. Every active entity
// carries exactly one owner tag.
type Owner uint8

const (
	OwnerNeutral Owner = iota
	OwnerPlayer
	OwnerEnemy
)

// String returns a short name for the owner tag.
func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// Controls is the abstract per-tick input vector. Device mapping is the
// caller's concern; the simulation only sees these booleans.
type Controls struct {
	Thrust      bool
	Reverse     bool
	TurnLeft    bool
	TurnRight   bool
	StrafeLeft  bool
	StrafeRight bool
	Fire        bool
	Ability     bool
	Pause       bool
	Restart     bool
}

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during
// update. Delta arrives already scaled by the session's time-dilation
// factor.
type UpdateContext struct {
	Delta    time.Duration
	Controls Controls
	Arena    Arena
	Spawner  Spawner
	Rand     *rand.Rand
}

// Arena is the wrapped playfield in world units.
type Arena struct {
	Width  float64
	Height float64
}

// Center returns the arena midpoint.
func (a Arena) Center() (x, y float64) {
	return a.Width / 2, a.Height / 2
}

// WrapPosition wraps x and y coordinates around the arena boundaries
// (Asteroids-style).
func (a Arena) WrapPosition(x, y *float64) {
	if a.Width > 0 {
		*x = math.Mod(*x, a.Width)
		if *x < 0 {
			*x += a.Width
		}
	}
	if a.Height > 0 {
		*y = math.Mod(*y, a.Height)
		if *y < 0 {
			*y += a.Height
		}
	}
}

// Object is an updatable game entity.
type Object interface {
	// Kind identifies the entity type for caps, snapshots, and resolution.
	Kind() Kind

	// Update advances the object by the (already dilated) tick delta.
	// Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
