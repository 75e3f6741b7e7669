package loop

import (
	"math"

	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/score"
)

// activateAbility converts every banked charge into a blast sequence.
// A sequence already in flight absorbs the press.
func (s *Session) activateAbility() {
	if !s.ship.Alive || s.blastsLeft > 0 {
		return
	}
	charges := s.ship.ConsumeCharges()
	if charges == 0 {
		return
	}
	s.blastsLeft = charges * config.AbilityBlastsPerCharge
	s.blastTimer = 0 // first blast lands on this tick's effects phase
	s.pushEvent(Event{Type: EventAbilityFired, X: s.ship.X, Y: s.ship.Y})
}

// tickAbility advances the blast sequence and the motion surge on the
// real clock, so deep slow motion cannot stall either.
func (s *Session) tickAbility(real float64) {
	if s.surgeTimer > 0 {
		s.surgeTimer -= real
	}
	if s.blastsLeft == 0 {
		return
	}
	s.blastTimer -= real
	if s.blastTimer > 0 {
		return
	}
	s.fireBlast()
	s.blastsLeft--
	if s.blastsLeft > 0 {
		spread := config.AbilityStaggerMaxSecs - config.AbilityStaggerMinSecs
		s.blastTimer = config.AbilityStaggerMinSecs + s.rng.Float64()*spread
	}
}

// fireBlast demotes every asteroid one tier, culls a share of the UFO
// population, and surges the motion term so the whole scene lurches
// forward for a beat.
func (s *Session) fireBlast() {
	s.surgeTimer = config.AbilityMotionSurgeSecs

	for _, a := range s.asteroids {
		s.spawner.NoteRemoved(object.KindAsteroid)
		for _, child := range a.Split(s.rng, 0, 0) {
			s.spawner.Spawn(child)
		}
		object.SpawnExplosion(a.X, a.Y, 3+a.Tier/2, 70, 0.6, s.rng, s.spawner)
		s.bankAbilityKill(score.AsteroidPoints(a.Tier), object.KindAsteroid, a.X, a.Y)
	}
	s.asteroids = s.asteroids[:0]

	if n := len(s.ufos); n > 0 {
		cull := int(math.Ceil(float64(n) * config.AbilityUFOKillFraction))
		for i := 0; i < cull; i++ {
			idx := s.rng.Intn(len(s.ufos))
			u := s.ufos[idx]
			s.bankAbilityKill(config.ScoreUFOKill, object.KindUFO, u.X, u.Y)
			object.SpawnExplosion(u.X, u.Y, 10, 130, 0.9, s.rng, s.spawner)
			s.spawner.NoteRemoved(object.KindUFO)
			s.ufos[idx] = s.ufos[len(s.ufos)-1]
			s.ufos = s.ufos[:len(s.ufos)-1]
		}
	}
}
