package object

import (
	"github.com/tomz197/staroids/internal/loop/config"
)

const numKinds = int(KindParticle) + 1

// Caps bounds the live population per entity kind. Zero means no limit.
type Caps struct {
	Asteroids   int
	UFOs        int
	Projectiles int
	Particles   int
}

// DefaultCaps returns the standard population limits.
func DefaultCaps() Caps {
	return Caps{
		Asteroids:   config.MaxAsteroids,
		UFOs:        config.MaxUFOs,
		Projectiles: config.MaxProjectiles,
		Particles:   config.MaxParticles,
	}
}

// CapSpawner wraps a Spawner and refuses spawns that would push a
// kind's live population past its cap. Refused spawns are counted and
// dropped; they are never queued.
//
// The wrapper tracks live counts itself, so the owner must report
// every removal through NoteRemoved.
type CapSpawner struct {
	dst     Spawner
	caps    Caps
	live    [numKinds]int
	refused [numKinds]uint64
}

// NewCapSpawner wraps dst with the given population caps.
func NewCapSpawner(dst Spawner, caps Caps) *CapSpawner {
	return &CapSpawner{dst: dst, caps: caps}
}

// Spawn forwards the object unless its kind is at the cap.
func (s *CapSpawner) Spawn(obj Object) {
	k := obj.Kind()
	if limit := s.capFor(k); limit > 0 && s.live[k] >= limit {
		s.refused[k]++
		ReleaseObject(obj)
		return
	}
	s.live[k]++
	s.dst.Spawn(obj)
}

// NoteRemoved records that an object of the given kind left the world.
func (s *CapSpawner) NoteRemoved(k Kind) {
	if s.live[k] > 0 {
		s.live[k]--
	}
}

// Live returns the tracked live count for a kind.
func (s *CapSpawner) Live(k Kind) int { return s.live[k] }

// Refused returns how many spawns of a kind were dropped at the cap.
func (s *CapSpawner) Refused(k Kind) uint64 { return s.refused[k] }

// Reset clears live counts and refusal counters.
func (s *CapSpawner) Reset() {
	s.live = [numKinds]int{}
	s.refused = [numKinds]uint64{}
}

func (s *CapSpawner) capFor(k Kind) int {
	switch k {
	case KindAsteroid:
		return s.caps.Asteroids
	case KindUFO:
		return s.caps.UFOs
	case KindProjectile:
		return s.caps.Projectiles
	case KindParticle:
		return s.caps.Particles
	default:
		return 0
	}
}
