package loop

import (
	"math"

	"github.com/tomz197/staroids/internal/collision"
	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/physics"
	"github.com/tomz197/staroids/internal/score"
)

// resolveCollisions runs the tick's pair checks in a fixed order and
// applies their outcomes. Each ordered pair resolves at most once; an
// entity killed by an earlier pair stays dead for the rest of the
// tick. The detector covers the group-against-group products; the
// single ship and the non-wrapping boss use direct checks.
func (s *Session) resolveCollisions() {
	w, h := s.arena.Width, s.arena.Height

	s.fillCircles()

	// Player shots against asteroids.
	s.pairs = s.detector.Pairs(s.pairs[:0], s.circShots, s.circAsteroids, w, h)
	for _, pr := range s.pairs {
		if s.deadShots[pr.A] || s.deadAsteroids[pr.B] {
			continue
		}
		s.deadShots[pr.A] = true
		s.deadAsteroids[pr.B] = true
		shot := s.shots[pr.A]
		a := s.asteroids[pr.B]
		s.breakAsteroid(a, shot.VX, shot.VY)
		s.bankKill(score.AsteroidPoints(a.Tier), object.KindAsteroid, a.X, a.Y)
	}

	// Player shots against UFOs.
	s.pairs = s.detector.Pairs(s.pairs[:0], s.circShots, s.circUFOs, w, h)
	for _, pr := range s.pairs {
		if s.deadShots[pr.A] || s.deadUFOs[pr.B] {
			continue
		}
		s.deadShots[pr.A] = true
		s.deadUFOs[pr.B] = true
		u := s.ufos[pr.B]
		object.SpawnExplosion(u.X, u.Y, 12, 140, 0.9, s.rng, s.spawner)
		s.bankKill(config.ScoreUFOKill, object.KindUFO, u.X, u.Y)
	}

	// Player shots against the boss, plain Euclidean.
	if s.boss != nil {
		for i, shot := range s.shots {
			if s.deadShots[i] {
				continue
			}
			if !physics.CirclesOverlap(shot.X, shot.Y, shot.Radius, s.boss.X, s.boss.Y, s.boss.Radius) {
				continue
			}
			s.deadShots[i] = true
			if !s.boss.Hit(shot.Damage) {
				continue
			}
			object.SpawnExplosion(s.boss.X, s.boss.Y, 40, 180, 1.5, s.rng, s.spawner)
			s.bankKill(config.ScoreBossKill, object.KindBoss, s.boss.X, s.boss.Y)
			s.spawner.NoteRemoved(object.KindBoss)
			s.boss = nil
			break
		}
	}

	s.resolveShipContacts()

	// Enemy shots against asteroids. The round always dies; one rock in
	// ten breaks under it, and nobody scores.
	s.pairs = s.detector.Pairs(s.pairs[:0], s.circEnemy, s.circAsteroids, w, h)
	for _, pr := range s.pairs {
		if s.deadEnemy[pr.A] || s.deadAsteroids[pr.B] {
			continue
		}
		s.deadEnemy[pr.A] = true
		if s.rng.Float64() < 0.1 {
			s.deadAsteroids[pr.B] = true
			shot := s.enemyShots[pr.A]
			s.breakAsteroid(s.asteroids[pr.B], shot.VX, shot.VY)
		}
	}

	s.bounceAsteroids()
	s.compactDead()
}

// fillCircles rebuilds the detector inputs and clears the tick's dead
// flags. Indices into the circle slices stay valid through resolution
// because nothing appends to an entity slice before compactDead.
func (s *Session) fillCircles() {
	s.circShots = s.circShots[:0]
	s.deadShots = s.deadShots[:0]
	for _, p := range s.shots {
		s.circShots = append(s.circShots, collision.Circle{X: p.X, Y: p.Y, R: p.Radius})
		s.deadShots = append(s.deadShots, false)
	}

	s.circAsteroids = s.circAsteroids[:0]
	s.deadAsteroids = s.deadAsteroids[:0]
	for _, a := range s.asteroids {
		s.circAsteroids = append(s.circAsteroids, collision.Circle{X: a.X, Y: a.Y, R: a.Radius})
		s.deadAsteroids = append(s.deadAsteroids, false)
	}

	s.circUFOs = s.circUFOs[:0]
	s.deadUFOs = s.deadUFOs[:0]
	for _, u := range s.ufos {
		s.circUFOs = append(s.circUFOs, collision.Circle{X: u.X, Y: u.Y, R: u.Radius})
		s.deadUFOs = append(s.deadUFOs, false)
	}

	s.circEnemy = s.circEnemy[:0]
	s.deadEnemy = s.deadEnemy[:0]
	for _, p := range s.enemyShots {
		s.circEnemy = append(s.circEnemy, collision.Circle{X: p.X, Y: p.Y, R: p.Radius})
		s.deadEnemy = append(s.deadEnemy, false)
	}
}

// resolveShipContacts walks the ship's contact groups in order: rocks,
// craft, boss, enemy rounds. The contact disc is the shield bubble
// while a layer holds and the bare hull after that. Invulnerability
// suspends every ship pair, so everything passes straight through.
func (s *Session) resolveShipContacts() {
	if !s.ship.Alive || s.ship.Invuln > 0 {
		return
	}
	w, h := s.arena.Width, s.arena.Height

	for i, a := range s.asteroids {
		if s.deadAsteroids[i] {
			continue
		}
		if !physics.CirclesOverlapTorus(s.ship.X, s.ship.Y, s.shipContactRadius(), a.X, a.Y, a.Radius, w, h) {
			continue
		}
		// Rammed rocks die outright, no split either way.
		s.deadAsteroids[i] = true
		object.SpawnExplosion(a.X, a.Y, 4+a.Tier, 60+float64(a.Tier)*12, 0.7, s.rng, s.spawner)
		if s.ship.HitShield() {
			s.killShip()
			return
		}
		s.pushEvent(Event{Type: EventShieldHit, X: a.X, Y: a.Y})
		s.bankKill(score.AsteroidPoints(a.Tier), object.KindAsteroid, a.X, a.Y)
	}

	for i, u := range s.ufos {
		if s.deadUFOs[i] {
			continue
		}
		if !physics.CirclesOverlapTorus(s.ship.X, s.ship.Y, s.shipContactRadius(), u.X, u.Y, u.Radius, w, h) {
			continue
		}
		s.deadUFOs[i] = true
		object.SpawnExplosion(u.X, u.Y, 12, 140, 0.9, s.rng, s.spawner)
		if s.ship.HitShield() {
			s.killShip()
			return
		}
		s.pushEvent(Event{Type: EventShieldHit, X: u.X, Y: u.Y})
		s.bankKill(config.ScoreUFORamKill, object.KindUFO, u.X, u.Y)
	}

	if s.boss != nil && physics.CirclesOverlap(s.ship.X, s.ship.Y, s.shipContactRadius(), s.boss.X, s.boss.Y, s.boss.Radius) {
		if s.ship.HitShield() {
			s.killShip()
			return
		}
		s.pushEvent(Event{Type: EventShieldHit, X: s.boss.X, Y: s.boss.Y})
	}

	for i, p := range s.enemyShots {
		if s.deadEnemy[i] {
			continue
		}
		if !physics.CirclesOverlapTorus(s.ship.X, s.ship.Y, s.shipContactRadius(), p.X, p.Y, p.Radius, w, h) {
			continue
		}
		s.deadEnemy[i] = true
		if s.ship.HitShield() {
			s.killShip()
			return
		}
		s.pushEvent(Event{Type: EventShieldHit, X: p.X, Y: p.Y})
	}
}

// shipContactRadius is the shield bubble while a layer holds, the bare
// hull otherwise.
func (s *Session) shipContactRadius() float64 {
	if s.ship.Layers > 0 {
		return config.ShieldCollideRadius
	}
	return s.ship.Radius
}

// breakAsteroid splits the rock under an impact and leaves debris. The
// children enter the world on the next flush, so nothing hits them this
// tick.
func (s *Session) breakAsteroid(a *object.Asteroid, vx, vy float64) {
	for _, child := range a.Split(s.rng, vx, vy) {
		s.spawner.Spawn(child)
	}
	object.SpawnExplosion(a.X, a.Y, 4+a.Tier, 60+float64(a.Tier)*12, 0.7, s.rng, s.spawner)
}

// bounceAsteroids gives surviving rocks an elastic shove apart.
func (s *Session) bounceAsteroids() {
	s.pairs = s.detector.SelfPairs(s.pairs[:0], s.circAsteroids, s.arena.Width, s.arena.Height)
	for _, pr := range s.pairs {
		if s.deadAsteroids[pr.A] || s.deadAsteroids[pr.B] {
			continue
		}
		bounceRocks(s.asteroids[pr.A], s.asteroids[pr.B], s.arena)
	}
}

// bounceRocks applies an elastic impulse between two overlapping rocks.
// Mass follows area, and the pair separates along the contact normal so
// they cannot grind against each other for ticks on end. The normal
// crosses the seam like every other measurement.
func bounceRocks(a1, a2 *object.Asteroid, arena object.Arena) {
	dx := physics.WrapDelta(a2.X-a1.X, arena.Width)
	dy := physics.WrapDelta(a2.Y-a1.Y, arena.Height)
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	nx := dx / dist
	ny := dy / dist

	// Relative velocity along the contact normal.
	dvn := (a1.VX-a2.VX)*nx + (a1.VY-a2.VY)*ny
	if dvn < 0 {
		return // already separating
	}

	m1 := a1.Mass()
	m2 := a2.Mass()
	totalMass := m1 + m2

	impulse := 2 * dvn / totalMass
	a1.VX -= impulse * m2 * nx
	a1.VY -= impulse * m2 * ny
	a2.VX += impulse * m1 * nx
	a2.VY += impulse * m1 * ny

	overlap := (a1.Radius + a2.Radius) - dist
	if overlap > 0 {
		a1.X -= nx * overlap * (m2 / totalMass)
		a1.Y -= ny * overlap * (m2 / totalMass)
		a2.X += nx * overlap * (m1 / totalMass)
		a2.Y += ny * overlap * (m1 / totalMass)
		arena.WrapPosition(&a1.X, &a1.Y)
		arena.WrapPosition(&a2.X, &a2.Y)
	}
}

// compactDead drops everything the tick killed and settles the
// population counters.
func (s *Session) compactDead() {
	s.shots = compactProjectiles(s.shots, s.deadShots, s.spawner)
	s.enemyShots = compactProjectiles(s.enemyShots, s.deadEnemy, s.spawner)

	keptA := s.asteroids[:0]
	for i, a := range s.asteroids {
		if s.deadAsteroids[i] {
			s.spawner.NoteRemoved(object.KindAsteroid)
			continue
		}
		keptA = append(keptA, a)
	}
	s.asteroids = keptA

	keptU := s.ufos[:0]
	for i, u := range s.ufos {
		if s.deadUFOs[i] {
			s.spawner.NoteRemoved(object.KindUFO)
			continue
		}
		keptU = append(keptU, u)
	}
	s.ufos = keptU
}

func compactProjectiles(shots []*object.Projectile, dead []bool, spawner *object.CapSpawner) []*object.Projectile {
	kept := shots[:0]
	for i, p := range shots {
		if dead[i] {
			spawner.NoteRemoved(object.KindProjectile)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
