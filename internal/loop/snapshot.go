package loop

import (
	"github.com/tomz197/staroids/internal/object"
)

// ShipView is the player vessel as the renderer sees it.
type ShipView struct {
	X, Y         float64
	Angle        float64
	Radius       float64
	Alive        bool
	Thrusting    bool
	Invuln       float64 // seconds remaining, drives the respawn blink
	ShieldVisual float64 // seconds the shield ring stays lit after a hit
}

// AsteroidView is one rock. Vertices is shared with the live entity;
// it is immutable after spawn.
type AsteroidView struct {
	X, Y     float64
	Angle    float64
	Radius   float64
	Tier     int
	Vertices []float64
}

// UFOView is one enemy craft.
type UFOView struct {
	X, Y        float64
	Angle       float64
	Radius      float64
	Personality object.Personality
	State       object.AIState
}

// BossView is the heavy craft and its remaining health.
type BossView struct {
	X, Y   float64
	Radius float64
	Hits   int
}

// ShotView is one projectile in flight.
type ShotView struct {
	X, Y  float64
	Owner object.Owner
}

// ParticleView is one effect particle. Faded particles are drawn dim
// or skipped.
type ParticleView struct {
	X, Y   float64
	Symbol rune
	Faded  bool
}

// Snapshot is the read-only result of one tick. The session alternates
// between two internal buffers, so a snapshot stays usable until the
// tick after next; clients that render the latest frame never notice.
type Snapshot struct {
	State GameState
	Tick  uint64
	Level int

	Score          int64
	Multiplier     float64
	Dilation       float64
	Lives          int
	Shield         int
	Charges        int
	ChargeProgress float64

	Ship      ShipView
	Asteroids []AsteroidView
	UFOs      []UFOView
	Boss      BossView
	HasBoss   bool
	Shots     []ShotView
	Particles []ParticleView

	Events []Event
}

// buildSnapshot fills the next buffer from the live state, consumes the
// tick's events, and returns the completed frame.
func (s *Session) buildSnapshot() *Snapshot {
	snap := &s.snaps[s.snapIdx]
	s.snapIdx = (s.snapIdx + 1) % len(s.snaps)

	snap.State = s.state
	snap.Tick = s.tick
	snap.Level = s.level

	snap.Score = s.score.Score
	snap.Multiplier = s.score.Multiplier
	snap.Dilation = s.score.Dilation

	if ship := s.ship; ship != nil {
		snap.Lives = ship.Lives
		snap.Shield = ship.Layers
		snap.Charges = ship.Charges
		snap.ChargeProgress = ship.ChargeProgress()
		snap.Ship = ShipView{
			X:            ship.X,
			Y:            ship.Y,
			Angle:        ship.Angle,
			Radius:       ship.Radius,
			Alive:        ship.Alive,
			Thrusting:    ship.Thrusting,
			Invuln:       ship.Invuln,
			ShieldVisual: ship.ShieldVisual,
		}
	} else {
		snap.Lives = 0
		snap.Shield = 0
		snap.Charges = 0
		snap.ChargeProgress = 0
		snap.Ship = ShipView{}
	}

	snap.Asteroids = snap.Asteroids[:0]
	for _, a := range s.asteroids {
		snap.Asteroids = append(snap.Asteroids, AsteroidView{
			X:        a.X,
			Y:        a.Y,
			Angle:    a.Angle,
			Radius:   a.Radius,
			Tier:     a.Tier,
			Vertices: a.Vertices,
		})
	}

	snap.UFOs = snap.UFOs[:0]
	for _, u := range s.ufos {
		snap.UFOs = append(snap.UFOs, UFOView{
			X:           u.X,
			Y:           u.Y,
			Angle:       u.Angle,
			Radius:      u.Radius,
			Personality: u.Personality,
			State:       u.State,
		})
	}

	snap.HasBoss = s.boss != nil
	if s.boss != nil {
		snap.Boss = BossView{X: s.boss.X, Y: s.boss.Y, Radius: s.boss.Radius, Hits: s.boss.Hits}
	} else {
		snap.Boss = BossView{}
	}

	snap.Shots = snap.Shots[:0]
	for _, p := range s.shots {
		snap.Shots = append(snap.Shots, ShotView{X: p.X, Y: p.Y, Owner: p.Owner})
	}
	for _, p := range s.enemyShots {
		snap.Shots = append(snap.Shots, ShotView{X: p.X, Y: p.Y, Owner: p.Owner})
	}

	snap.Particles = snap.Particles[:0]
	for _, p := range s.particles {
		snap.Particles = append(snap.Particles, ParticleView{X: p.X, Y: p.Y, Symbol: p.Symbol, Faded: p.Faded()})
	}

	snap.Events = append(snap.Events[:0], s.events...)
	s.events = s.events[:0]

	return snap
}
