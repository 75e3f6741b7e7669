package loop

import (
	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
)

// basePersonalities are the four non-Deadly types the level tables draw
// from.
var basePersonalities = [...]object.Personality{
	object.Aggressive,
	object.Defensive,
	object.Tactical,
	object.Swarm,
}

// spawnWave opens level N's asteroid field: one large rock, one medium,
// and max(0, N-2) extras of any tier, all entering at the edges aimed
// loosely at the center.
func (s *Session) spawnWave() {
	s.spawner.Spawn(object.NewAsteroidAtEdge(s.arena, 7+s.rng.Intn(3), s.rng))
	s.spawner.Spawn(object.NewAsteroidAtEdge(s.arena, 1+s.rng.Intn(7), s.rng))
	for i := 2; i < s.level; i++ {
		s.spawner.Spawn(object.NewAsteroidAtEdge(s.arena, 1+s.rng.Intn(object.MaxTier), s.rng))
	}
}

// advanceLevel wipes the combat residue and opens the next wave. The
// extra life keeps pace with the rising difficulty.
func (s *Session) advanceLevel() {
	s.level++
	s.advanceTimer = 0
	s.blastsLeft = 0

	for range s.ufos {
		s.spawner.NoteRemoved(object.KindUFO)
	}
	s.ufos = s.ufos[:0]
	for range s.shots {
		s.spawner.NoteRemoved(object.KindProjectile)
	}
	s.shots = s.shots[:0]
	for range s.enemyShots {
		s.spawner.NoteRemoved(object.KindProjectile)
	}
	s.enemyShots = s.enemyShots[:0]

	cx, cy := s.arena.Center()
	s.ship.Respawn(cx, cy, config.LevelInvulnSeconds)
	s.respawnTimer = 0
	s.ship.AddLife()

	s.spawnWave()
	s.resetUFOPlan()
	if s.level%config.BossLevelInterval == 0 {
		s.spawner.Spawn(object.NewBoss(s.arena, s.rng))
		s.pushEvent(Event{Type: EventBossSpawned, Level: s.level})
	}
	s.flushPending()
}

// resetUFOPlan arms the first-spawn timer for a fresh level.
func (s *Session) resetUFOPlan() {
	s.ufoPlan = ufoSchedule{firstTimer: config.UFOFirstSpawnSeconds}
}

// tickUFOPlan runs the spawn schedule on the dilated clock, the same
// time the craft themselves experience.
func (s *Session) tickUFOPlan(dt float64) {
	plan := &s.ufoPlan
	if !plan.active {
		plan.firstTimer -= dt
		if plan.firstTimer <= 0 {
			s.drawUFOQuota()
		}
		return
	}
	if plan.remaining <= 0 {
		return
	}
	if plan.mass {
		for plan.remaining > 0 {
			s.launchUFO(s.rng.Intn(4), true)
			plan.remaining--
		}
		return
	}
	plan.cadence -= dt
	if plan.cadence > 0 {
		return
	}
	plan.cadence = config.UFOSpawnInterval
	s.launchUFO(plan.corner, false)
	plan.remaining--
}

// drawUFOQuota decides the level's craft count, its spawn corner, and
// whether everything arrives at once. Level 1 is the fixed teaching
// wave, one craft of each personality in order.
func (s *Session) drawUFOQuota() {
	plan := &s.ufoPlan
	plan.active = true
	plan.cadence = config.UFOSpawnInterval
	plan.corner = s.rng.Intn(4)
	plan.mass = s.rng.Float64() < config.UFOMassSpawnChance
	plan.ordered = nil

	switch s.level {
	case 1:
		plan.remaining = 5
		plan.ordered = []object.Personality{
			object.Aggressive,
			object.Defensive,
			object.Tactical,
			object.Swarm,
			object.Deadly,
		}
	case 2:
		plan.remaining = 2 + s.rng.Intn(5)
	case 3:
		plan.remaining = 3 + s.rng.Intn(7)
	case 4:
		plan.remaining = 4 + s.rng.Intn(9)
	case 5:
		plan.remaining = 5 + s.rng.Intn(11)
	default:
		plan.remaining = (1 + s.rng.Intn(3)) * s.level
	}
}

// launchUFO places one craft at a corner. The cadence path pops level
// 1's fixed order with no override; everywhere else a Deadly override
// rolls first and the level table decides the rest.
func (s *Session) launchUFO(corner int, massPath bool) {
	plan := &s.ufoPlan
	var p object.Personality
	switch {
	case !massPath && len(plan.ordered) > 0:
		p = plan.ordered[0]
		plan.ordered = plan.ordered[1:]
	case s.rng.Float64() < config.UFODeadlyChance:
		p = object.Deadly
	case len(plan.ordered) > 0:
		p = plan.ordered[0]
		plan.ordered = plan.ordered[1:]
	default:
		p = s.personalityForLevel()
	}

	x, y := s.cornerXY(corner)
	s.spawner.Spawn(object.NewUFO(x, y, p, s.level, s.rng))
}

func (s *Session) personalityForLevel() object.Personality {
	switch s.level {
	case 2:
		return object.Defensive
	case 3:
		if s.rng.Intn(2) == 0 {
			return object.Aggressive
		}
		return object.Defensive
	case 4:
		return object.Aggressive
	default:
		return basePersonalities[s.rng.Intn(len(basePersonalities))]
	}
}

// cornerXY maps a corner index to world coordinates.
func (s *Session) cornerXY(corner int) (x, y float64) {
	switch corner {
	case 0:
		return 0, 0
	case 1:
		return s.arena.Width, 0
	case 2:
		return 0, s.arena.Height
	default:
		return s.arena.Width, s.arena.Height
	}
}
