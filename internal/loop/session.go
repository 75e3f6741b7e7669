// Package loop runs the simulation: a fixed-tick session owns every
// entity and the score state, resolves collisions, drives the enemy
// craft, and publishes one read-only snapshot per tick. Sessions are
// single-threaded; the serving layer gives each client its own.
package loop

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/staroids/internal/ai"
	"github.com/tomz197/staroids/internal/collision"
	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/score"
)

// GameState is the session's top-level mode.
type GameState uint8

const (
	GameStateWaiting GameState = iota
	GameStatePlaying
	GameStatePaused
	GameStateOver
)

// String returns a short name for the state.
func (g GameState) String() string {
	switch g {
	case GameStateWaiting:
		return "waiting"
	case GameStatePlaying:
		return "playing"
	case GameStatePaused:
		return "paused"
	case GameStateOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Options configure a session.
type Options struct {
	// Collision selects the pair-detection strategy. Empty means auto.
	Collision collision.Mode

	// Caps bounds the live population per entity kind. The zero value
	// means the standard limits.
	Caps object.Caps

	// StrictFaults lets a panic inside Step propagate instead of
	// converting it to a counted restart. Development only.
	StrictFaults bool
}

// Record is the final result of one finished game.
type Record struct {
	Score    int64
	Level    int
	Name     string // filled by the serving layer
	Duration time.Duration
	Seed     int64
}

// ufoSchedule is the per-level spawn plan. The quota is drawn when the
// first-spawn timer expires; the cadence then releases one craft per
// interval, or everything left at once on a mass roll.
type ufoSchedule struct {
	firstTimer float64 // dilated seconds until the quota draw
	cadence    float64 // dilated seconds until the next release
	remaining  int
	ordered    []object.Personality // level-1 fixed order, popped front
	corner     int                  // spawn corner for the level, 0..3
	mass       bool                 // drawn once with the quota
	active     bool                 // quota drawn, cadence running
}

// Session is one independent game. It owns all mutable state and must
// be stepped from a single goroutine.
type Session struct {
	opts     Options
	arena    object.Arena
	rng      *rand.Rand
	seed     int64
	gameSeed int64
	detector collision.Detector
	driver   *ai.Driver
	spawner  *object.CapSpawner

	state GameState
	level int
	tick  uint64

	ship       *object.Ship
	asteroids  []*object.Asteroid
	ufos       []*object.UFO
	boss       *object.Boss
	shots      []*object.Projectile // player rounds
	enemyShots []*object.Projectile
	particles  []*object.Particle

	score   *score.State
	ufoPlan ufoSchedule

	// Real-clock timers in seconds. The UFO schedule above runs on the
	// dilated clock instead.
	respawnTimer float64
	advanceTimer float64
	surgeTimer   float64
	blastsLeft   int
	blastTimer   float64

	prevFire    bool
	prevPause   bool
	prevRestart bool
	prevAbility bool

	games     int
	faults    uint64
	elapsed   time.Duration
	record    Record
	hasRecord bool

	events  []Event
	pending []object.Object

	// Scratch reused across ticks.
	circShots     []collision.Circle
	circAsteroids []collision.Circle
	circUFOs      []collision.Circle
	circEnemy     []collision.Circle
	deadShots     []bool
	deadAsteroids []bool
	deadUFOs      []bool
	deadEnemy     []bool
	pairs         []collision.Pair

	snaps   [2]Snapshot
	snapIdx int
}

// spawnQueue defers spawns to the end of the current phase so an update
// never grows a slice it is iterating.
type spawnQueue struct{ s *Session }

func (q spawnQueue) Spawn(obj object.Object) {
	q.s.pending = append(q.s.pending, obj)
}

// NewSession creates a session on the title screen. The seed fixes
// every random draw the game will make.
func NewSession(opts Options, seed int64) (*Session, error) {
	det, err := collision.New(opts.Collision)
	if err != nil {
		return nil, err
	}
	if opts.Caps == (object.Caps{}) {
		opts.Caps = object.DefaultCaps()
	}

	s := &Session{
		opts:     opts,
		arena:    object.Arena{Width: config.WorldWidth, Height: config.WorldHeight},
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		detector: det,
		state:    GameStateWaiting,
		score:    score.NewState(),
	}
	s.driver = ai.NewDriver(s.rng)
	s.spawner = object.NewCapSpawner(spawnQueue{s}, opts.Caps)
	return s, nil
}

// State returns the session's current mode.
func (s *Session) State() GameState { return s.state }

// Level returns the current level, 0 before the first game starts.
func (s *Session) Level() int { return s.level }

// Faults returns how many ticks ended in a recovered fault.
func (s *Session) Faults() uint64 { return s.faults }

// Refused returns how many spawns of a kind the population cap dropped.
func (s *Session) Refused(k object.Kind) uint64 { return s.spawner.Refused(k) }

// Live returns the tracked live population of a kind.
func (s *Session) Live(k object.Kind) int { return s.spawner.Live(k) }

// Record returns the final result once the session is over.
func (s *Session) Record() (Record, bool) { return s.record, s.hasRecord }

// Pause freezes the session clock until Resume or Restart.
func (s *Session) Pause() {
	if s.state == GameStatePlaying {
		s.state = GameStatePaused
	}
}

// Resume continues a paused session.
func (s *Session) Resume() {
	if s.state == GameStatePaused {
		s.state = GameStatePlaying
	}
}

// Restart discards all entity and score state and begins a fresh game
// at level 1.
func (s *Session) Restart() { s.newGame() }

// Step advances exactly one tick and returns its snapshot. A panic
// inside the tick restarts the session and surfaces as an
// EventSessionFault on the returned frame, unless StrictFaults is set.
func (s *Session) Step(controls object.Controls, dt time.Duration) (snap *Snapshot) {
	if !s.opts.StrictFaults {
		defer func() {
			if r := recover(); r != nil {
				s.faults++
				s.newGame()
				s.pushEvent(Event{Type: EventSessionFault})
				snap = s.buildSnapshot()
			}
		}()
	}

	s.tick++

	fire := controls.Fire && !s.prevFire
	pause := controls.Pause && !s.prevPause
	restart := controls.Restart && !s.prevRestart
	ability := controls.Ability && !s.prevAbility
	s.prevFire = controls.Fire
	s.prevPause = controls.Pause
	s.prevRestart = controls.Restart
	s.prevAbility = controls.Ability

	if restart {
		s.newGame()
		return s.buildSnapshot()
	}

	switch s.state {
	case GameStateWaiting:
		if fire {
			s.newGame()
		}
	case GameStatePaused:
		if pause {
			s.state = GameStatePlaying
		}
	case GameStateOver:
		if fire {
			s.newGame()
			break
		}
		s.driftParticles(dt)
	case GameStatePlaying:
		if pause {
			s.state = GameStatePaused
			break
		}
		s.advance(controls, ability, dt)
	}

	return s.buildSnapshot()
}

// advance runs one playing tick in the fixed order: input, physics,
// collision, scoring and effects, AI, next dilation.
func (s *Session) advance(controls object.Controls, ability bool, dt time.Duration) {
	s.elapsed += dt
	real := dt.Seconds()

	// The factor computed at the end of the previous tick scales this
	// tick's simulation time.
	dilation := s.score.Dilation
	dilated := time.Duration(float64(dt) * dilation)
	dsecs := dilated.Seconds()

	// ===== INPUT =====
	if ability {
		s.activateAbility()
	}

	// ===== PHYSICS =====
	ctx := object.UpdateContext{
		Delta:    dilated,
		Controls: controls,
		Arena:    s.arena,
		Spawner:  s.spawner,
		Rand:     s.rng,
	}
	mustUpdate(s.ship, ctx)
	for _, a := range s.asteroids {
		mustUpdate(a, ctx)
	}
	for _, u := range s.ufos {
		mustUpdate(u, ctx)
	}
	if s.boss != nil {
		mustUpdate(s.boss, ctx)
	}
	s.shots = s.updateProjectiles(s.shots, ctx)
	s.enemyShots = s.updateProjectiles(s.enemyShots, ctx)
	s.updateParticles(ctx)
	s.flushPending()

	// ===== COLLISION =====
	s.resolveCollisions()
	s.flushPending()

	// ===== SCORING / EFFECTS =====
	var recharging *object.Ship
	if s.ship.Alive {
		recharging = s.ship
	}
	s.score.Tick(recharging, dsecs)
	s.tickAbility(real)
	// A blast's demoted children must land before the clear check reads
	// the field.
	s.flushPending()
	s.tickRespawn(real)
	s.tickLevel(real)
	s.tickUFOPlan(dsecs)
	s.flushPending()

	// ===== AI =====
	if s.state == GameStatePlaying {
		s.commandUFOs(dsecs, dilation)
		s.fireBoss()
		s.flushPending()
	}

	// ===== NEXT DILATION =====
	motion := 0.0
	if s.ship.Alive {
		motion = s.ship.Speed() + s.ship.BurstTerm() + score.TurnTerm(s.ship.TurnRate())
	}
	if s.surgeTimer > 0 {
		motion += config.AbilityMotionSurge
	}
	s.score.SetDilation(score.DilationFactor(motion))
}

// mustUpdate advances one object. No entity has a legitimate error
// path; a non-nil error is an invariant breach and feeds the session's
// fault handling.
func mustUpdate(obj object.Object, ctx object.UpdateContext) bool {
	remove, err := obj.Update(ctx)
	if err != nil {
		panic(err)
	}
	return remove
}

// updateProjectiles advances a projectile slice and compacts out the
// rounds that spent their travel budget.
func (s *Session) updateProjectiles(shots []*object.Projectile, ctx object.UpdateContext) []*object.Projectile {
	kept := shots[:0]
	for _, p := range shots {
		if mustUpdate(p, ctx) {
			s.spawner.NoteRemoved(object.KindProjectile)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func (s *Session) updateParticles(ctx object.UpdateContext) {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if mustUpdate(p, ctx) {
			s.spawner.NoteRemoved(object.KindParticle)
			object.ReleaseObject(p)
			continue
		}
		kept = append(kept, p)
	}
	s.particles = kept
}

// driftParticles lets the death debris keep fading over the otherwise
// frozen field on the game-over screen.
func (s *Session) driftParticles(dt time.Duration) {
	s.updateParticles(object.UpdateContext{Delta: dt, Arena: s.arena})
}

// commandUFOs lets the driver steer every craft and materializes the
// shots it orders. The commanded velocities take effect on the next
// integration.
func (s *Session) commandUFOs(dsecs, dilation float64) {
	view := ai.View{
		Arena:     s.arena,
		UFOs:      s.ufos,
		Asteroids: s.asteroids,
		Shots:     s.shots,
		Dilation:  dilation,
	}
	if s.ship.Alive {
		view.Ship = s.ship
	}
	for _, u := range s.ufos {
		cmd := s.driver.Step(u, view, dsecs)
		if !cmd.Fire {
			continue
		}
		vx := math.Cos(cmd.Aim) * config.EnemyShotSpeed
		vy := math.Sin(cmd.Aim) * config.EnemyShotSpeed
		s.spawner.Spawn(object.NewProjectile(u.X, u.Y, vx, vy, object.OwnerEnemy))
	}
}

// fireBoss aims a volley straight at the ship. The boss ignores the
// torus, so the aim is plain Euclidean.
func (s *Session) fireBoss() {
	if s.boss == nil || !s.ship.Alive || !s.boss.CanFire() {
		return
	}
	aim := math.Atan2(s.ship.Y-s.boss.Y, s.ship.X-s.boss.X)
	vx := math.Cos(aim) * config.EnemyShotSpeed
	vy := math.Sin(aim) * config.EnemyShotSpeed
	s.spawner.Spawn(object.NewProjectile(s.boss.X, s.boss.Y, vx, vy, object.OwnerEnemy))
	s.boss.SpendShot()
}

// tickRespawn counts down the respawn delay on the real clock and puts
// the ship back at center with its grace window.
func (s *Session) tickRespawn(real float64) {
	if s.ship.Alive || s.respawnTimer <= 0 {
		return
	}
	s.respawnTimer -= real
	if s.respawnTimer > 0 {
		return
	}
	cx, cy := s.arena.Center()
	s.ship.Respawn(cx, cy, config.RespawnInvulnSeconds)
	s.pushEvent(Event{Type: EventRespawn, X: cx, Y: cy})
}

// tickLevel watches for a cleared field and runs the advance delay on
// the real clock, so deep slow motion cannot stretch the pause.
func (s *Session) tickLevel(real float64) {
	if s.advanceTimer > 0 {
		s.advanceTimer -= real
		if s.advanceTimer <= 0 {
			s.advanceLevel()
		}
		return
	}
	if len(s.asteroids) == 0 && s.boss == nil {
		s.blastsLeft = 0 // a pending transition cancels the rest of the sequence
		s.advanceTimer = config.LevelAdvanceDelaySecs
		s.pushEvent(Event{Type: EventLevelCleared, Level: s.level})
	}
}

// killShip spends a life and decides what follows: a timed respawn or
// the end of the run.
func (s *Session) killShip() {
	ship := s.ship
	object.SpawnExplosion(ship.X, ship.Y, 30, 160, 1.2, s.rng, s.spawner)
	ship.Kill()
	s.pushEvent(Event{Type: EventShipDestroyed, X: ship.X, Y: ship.Y})
	if ship.Lives > 0 {
		s.respawnTimer = config.RespawnDelaySeconds
		return
	}
	s.finishRun()
}

func (s *Session) finishRun() {
	s.state = GameStateOver
	s.blastsLeft = 0
	s.record = Record{
		Score:    s.score.Score,
		Level:    s.level,
		Duration: s.elapsed,
		Seed:     s.gameSeed,
	}
	s.hasRecord = true
	s.pushEvent(Event{Type: EventGameOver, Points: s.score.Score})
}

// newGame resets everything and starts playing at level 1. Each run
// reseeds from its own derived seed, so the one stored in its record
// replays the run from the first wave.
func (s *Session) newGame() {
	s.games++
	s.gameSeed = s.seed + int64(s.games-1)
	s.rng.Seed(s.gameSeed)
	s.level = 1
	s.score = score.NewState()
	s.spawner.Reset()
	s.clearField()

	s.respawnTimer = 0
	s.advanceTimer = 0
	s.surgeTimer = 0
	s.blastsLeft = 0
	s.blastTimer = 0
	s.elapsed = 0
	s.hasRecord = false
	s.events = s.events[:0]

	cx, cy := s.arena.Center()
	s.ship = object.NewShip(cx, cy, true)
	s.ship.Invuln = config.RespawnInvulnSeconds
	s.spawnWave()
	s.resetUFOPlan()
	s.flushPending()

	s.state = GameStatePlaying
}

// clearField drops every entity. Pooled objects go back to their pools;
// the caller is responsible for the spawner's counters.
func (s *Session) clearField() {
	for _, p := range s.particles {
		object.ReleaseObject(p)
	}
	s.asteroids = s.asteroids[:0]
	s.ufos = s.ufos[:0]
	s.shots = s.shots[:0]
	s.enemyShots = s.enemyShots[:0]
	s.particles = s.particles[:0]
	s.pending = s.pending[:0]
	s.boss = nil
}

// flushPending routes queued spawns into their slices.
func (s *Session) flushPending() {
	for i, obj := range s.pending {
		switch o := obj.(type) {
		case *object.Asteroid:
			s.asteroids = append(s.asteroids, o)
		case *object.UFO:
			s.ufos = append(s.ufos, o)
		case *object.Projectile:
			if o.Owner == object.OwnerEnemy {
				s.enemyShots = append(s.enemyShots, o)
			} else {
				s.shots = append(s.shots, o)
			}
		case *object.Particle:
			s.particles = append(s.particles, o)
		case *object.Boss:
			s.boss = o
		}
		s.pending[i] = nil
	}
	s.pending = s.pending[:0]
}

func (s *Session) pushEvent(e Event) {
	s.events = append(s.events, e)
}

// bankKill scores a player-attributed kill and emits the kill event and
// any milestones it crossed.
func (s *Session) bankKill(base int64, kind object.Kind, x, y float64) {
	points, crossed := s.score.AddKill(base, s.ship)
	s.pushEvent(Event{Type: EventKill, X: x, Y: y, Points: points, Kind: kind})
	for _, m := range crossed {
		s.pushEvent(Event{Type: EventMilestone, Milestone: m})
	}
}

// bankAbilityKill scores a blast kill. Points flow, the multiplier does
// not move.
func (s *Session) bankAbilityKill(base int64, kind object.Kind, x, y float64) {
	points, crossed := s.score.AddAbilityKill(base, s.ship)
	s.pushEvent(Event{Type: EventKill, X: x, Y: y, Points: points, Kind: kind})
	for _, m := range crossed {
		s.pushEvent(Event{Type: EventMilestone, Milestone: m})
	}
}
