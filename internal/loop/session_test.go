package loop

import (
	"testing"

	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/score"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(Options{}, seed)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// startGame presses fire on the title screen and returns the first
// frame of the fresh game.
func startGame(t *testing.T, s *Session) *Snapshot {
	t.Helper()
	snap := s.Step(object.Controls{Fire: true}, config.TickTime)
	if snap.State != GameStatePlaying {
		t.Fatalf("state after fire press = %v, want %v", snap.State, GameStatePlaying)
	}
	return snap
}

func stepN(s *Session, n int, c object.Controls) *Snapshot {
	var snap *Snapshot
	for i := 0; i < n; i++ {
		snap = s.Step(c, config.TickTime)
	}
	return snap
}

// clearRocks removes the opening wave so a scenario can lay out its own
// field. Scenarios that must not trip the level-clear watcher inject an
// anchor rock somewhere far from the action.
func clearRocks(s *Session) {
	for range s.asteroids {
		s.spawner.NoteRemoved(object.KindAsteroid)
	}
	s.asteroids = s.asteroids[:0]
}

// injectRock drops a rock with a chosen velocity directly into the
// field, bypassing the usual edge spawn.
func injectRock(s *Session, x, y float64, tier int, vx, vy float64) *object.Asteroid {
	a := object.NewAsteroid(x, y, tier, s.rng)
	a.VX, a.VY = vx, vy
	s.spawner.Spawn(a)
	s.flushPending()
	return a
}

func injectShot(s *Session, x, y, vx, vy float64, owner object.Owner) *object.Projectile {
	p := object.NewProjectile(x, y, vx, vy, owner)
	s.spawner.Spawn(p)
	s.flushPending()
	return p
}

func injectUFO(s *Session, x, y float64, p object.Personality) *object.UFO {
	u := object.NewUFO(x, y, p, s.level, s.rng)
	u.VX, u.VY = 0, 0
	s.spawner.Spawn(u)
	s.flushPending()
	return u
}

func injectBoss(s *Session) *object.Boss {
	b := object.NewBoss(s.arena, s.rng)
	s.spawner.Spawn(b)
	s.flushPending()
	return b
}

func hasEvent(snap *Snapshot, typ EventType) bool {
	for _, e := range snap.Events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestSessionOpensOnTitleScreen(t *testing.T) {
	s := newTestSession(t, 1)
	if s.State() != GameStateWaiting {
		t.Fatalf("fresh session state = %v, want %v", s.State(), GameStateWaiting)
	}
	if s.Level() != 0 {
		t.Fatalf("level before the first game = %d, want 0", s.Level())
	}

	snap := s.Step(object.Controls{}, config.TickTime)
	if snap.State != GameStateWaiting {
		t.Fatalf("idle step left the title screen: %v", snap.State)
	}
	if snap.Tick != 1 {
		t.Fatalf("tick = %d, want 1", snap.Tick)
	}
	if len(snap.Asteroids) != 0 || snap.Lives != 0 {
		t.Fatalf("title screen has entities: %d rocks, %d lives", len(snap.Asteroids), snap.Lives)
	}
}

func TestFirePressStartsTheGame(t *testing.T) {
	s := newTestSession(t, 3)
	snap := startGame(t, s)

	if snap.Level != 1 {
		t.Fatalf("opening level = %d, want 1", snap.Level)
	}
	if snap.Lives != config.InitialLives {
		t.Fatalf("lives = %d, want %d", snap.Lives, config.InitialLives)
	}
	if snap.Shield != config.ShieldLayers {
		t.Fatalf("shield = %d, want %d", snap.Shield, config.ShieldLayers)
	}
	if !snap.Ship.Alive {
		t.Fatalf("ship not alive on the opening frame")
	}
	cx, cy := s.arena.Center()
	if snap.Ship.X != cx || snap.Ship.Y != cy {
		t.Fatalf("ship at (%v, %v), want center (%v, %v)", snap.Ship.X, snap.Ship.Y, cx, cy)
	}
	if snap.Ship.Invuln != config.RespawnInvulnSeconds {
		t.Fatalf("opening grace = %v, want %v", snap.Ship.Invuln, config.RespawnInvulnSeconds)
	}

	if len(snap.Asteroids) != 2 {
		t.Fatalf("opening wave = %d rocks, want 2", len(snap.Asteroids))
	}
	if tier := snap.Asteroids[0].Tier; tier < 7 || tier > 9 {
		t.Fatalf("lead rock tier = %d, want 7..9", tier)
	}
	if tier := snap.Asteroids[1].Tier; tier < 1 || tier > 7 {
		t.Fatalf("second rock tier = %d, want 1..7", tier)
	}
	for i, a := range snap.Asteroids {
		onEdge := a.X == 1 || a.X == s.arena.Width-1 || a.Y == 1 || a.Y == s.arena.Height-1
		if !onEdge {
			t.Fatalf("rock %d spawned at (%v, %v), want an arena edge", i, a.X, a.Y)
		}
	}
}

func TestPauseFreezesTheField(t *testing.T) {
	s := newTestSession(t, 7)
	startGame(t, s)
	stepN(s, 5, object.Controls{})

	snap := s.Step(object.Controls{Pause: true}, config.TickTime)
	if snap.State != GameStatePaused {
		t.Fatalf("state after pause press = %v, want %v", snap.State, GameStatePaused)
	}

	frozen := s.Step(object.Controls{}, config.TickTime)
	type pos struct{ x, y float64 }
	held := make([]pos, len(frozen.Asteroids))
	for i, a := range frozen.Asteroids {
		held[i] = pos{a.X, a.Y}
	}

	later := stepN(s, 30, object.Controls{})
	if later.State != GameStatePaused {
		t.Fatalf("pause did not hold: %v", later.State)
	}
	for i, a := range later.Asteroids {
		if held[i] != (pos{a.X, a.Y}) {
			t.Fatalf("rock %d drifted while paused: %v -> (%v, %v)", i, held[i], a.X, a.Y)
		}
	}

	resumed := s.Step(object.Controls{Pause: true}, config.TickTime)
	if resumed.State != GameStatePlaying {
		t.Fatalf("state after second pause press = %v, want %v", resumed.State, GameStatePlaying)
	}
	moved := s.Step(object.Controls{}, config.TickTime)
	same := 0
	for i, a := range moved.Asteroids {
		if held[i] == (pos{a.X, a.Y}) {
			same++
		}
	}
	if same == len(moved.Asteroids) {
		t.Fatalf("field still frozen after resume")
	}
}

func TestRestartResetsScoreAndLevel(t *testing.T) {
	s := newTestSession(t, 11)
	startGame(t, s)
	s.score.Score = 4200
	s.level = 3

	snap := s.Step(object.Controls{Restart: true}, config.TickTime)
	if snap.State != GameStatePlaying {
		t.Fatalf("state after restart = %v, want %v", snap.State, GameStatePlaying)
	}
	if snap.Score != 0 {
		t.Fatalf("score after restart = %d, want 0", snap.Score)
	}
	if snap.Level != 1 {
		t.Fatalf("level after restart = %d, want 1", snap.Level)
	}
	if len(snap.Asteroids) != 2 {
		t.Fatalf("restart wave = %d rocks, want 2", len(snap.Asteroids))
	}
}

func TestShipDeathSchedulesRespawn(t *testing.T) {
	s := newTestSession(t, 13)
	startGame(t, s)
	clearRocks(s)
	injectRock(s, 40, 40, 3, 0, 0) // anchor keeps the level-clear watcher quiet
	s.ship.Layers = 0
	s.ship.Invuln = 0
	injectRock(s, s.ship.X, s.ship.Y, 4, 0, 0)

	snap := s.Step(object.Controls{}, config.TickTime)
	if snap.Ship.Alive {
		t.Fatalf("ship survived a bare-hull ram")
	}
	if snap.Lives != config.InitialLives-1 {
		t.Fatalf("lives after death = %d, want %d", snap.Lives, config.InitialLives-1)
	}
	if !hasEvent(snap, EventShipDestroyed) {
		t.Fatalf("no ship-destroyed event on the death frame")
	}
	if hasEvent(snap, EventGameOver) {
		t.Fatalf("game over with lives remaining")
	}
	if snap.Score != 0 {
		t.Fatalf("lethal ram scored %d points", snap.Score)
	}
	if len(snap.Asteroids) != 1 {
		t.Fatalf("rammer survived: %d rocks, want 1", len(snap.Asteroids))
	}

	// The respawn delay runs on the real clock; at the resting dilation
	// the dilated clock would need thousands of ticks.
	var back *Snapshot
	for i := 0; i < 70; i++ {
		back = s.Step(object.Controls{}, config.TickTime)
		if back.Ship.Alive {
			break
		}
	}
	if !back.Ship.Alive {
		t.Fatalf("ship did not respawn within 70 ticks")
	}
	if !hasEvent(back, EventRespawn) {
		t.Fatalf("no respawn event on the return frame")
	}
	cx, cy := s.arena.Center()
	if back.Ship.X != cx || back.Ship.Y != cy {
		t.Fatalf("respawned at (%v, %v), want center", back.Ship.X, back.Ship.Y)
	}
	if back.Ship.Invuln != config.RespawnInvulnSeconds {
		t.Fatalf("respawn grace = %v, want %v", back.Ship.Invuln, config.RespawnInvulnSeconds)
	}
	if back.Shield != config.ShieldLayers {
		t.Fatalf("respawn shield = %d, want %d", back.Shield, config.ShieldLayers)
	}
}

func TestLastLifeEndsTheRun(t *testing.T) {
	s := newTestSession(t, 17)
	startGame(t, s)
	clearRocks(s)
	injectRock(s, 40, 40, 3, 30, 0)
	s.ship.Lives = 1
	s.ship.Layers = 0
	s.ship.Invuln = 0
	injectRock(s, s.ship.X, s.ship.Y, 4, 0, 0)

	snap := s.Step(object.Controls{}, config.TickTime)
	if snap.State != GameStateOver {
		t.Fatalf("state after final death = %v, want %v", snap.State, GameStateOver)
	}
	if !hasEvent(snap, EventGameOver) {
		t.Fatalf("no game-over event on the final frame")
	}

	rec, ok := s.Record()
	if !ok {
		t.Fatalf("no record after the run ended")
	}
	if rec.Level != 1 || rec.Seed != 17 {
		t.Fatalf("record = %+v, want level 1 seed 17", rec)
	}
	if rec.Duration != config.TickTime {
		t.Fatalf("record duration = %v, want one tick", rec.Duration)
	}

	// The field freezes; only the death debris keeps fading.
	heldX := snap.Asteroids[0].X
	over := stepN(s, 10, object.Controls{})
	if over.State != GameStateOver {
		t.Fatalf("game-over screen did not hold: %v", over.State)
	}
	if over.Asteroids[0].X != heldX {
		t.Fatalf("rock drifted on the game-over screen")
	}

	fresh := s.Step(object.Controls{Fire: true}, config.TickTime)
	if fresh.State != GameStatePlaying {
		t.Fatalf("fire press did not start a new game: %v", fresh.State)
	}
	if fresh.Lives != config.InitialLives || fresh.Score != 0 {
		t.Fatalf("new game lives=%d score=%d, want %d and 0", fresh.Lives, fresh.Score, config.InitialLives)
	}
}

func TestFaultRestartsTheSession(t *testing.T) {
	s := newTestSession(t, 19)
	startGame(t, s)
	s.score = nil // poisons the next advance

	snap := s.Step(object.Controls{}, config.TickTime)
	if s.Faults() != 1 {
		t.Fatalf("faults = %d, want 1", s.Faults())
	}
	if !hasEvent(snap, EventSessionFault) {
		t.Fatalf("no session-fault event on the recovery frame")
	}
	if snap.State != GameStatePlaying {
		t.Fatalf("state after recovery = %v, want %v", snap.State, GameStatePlaying)
	}
	if snap.Score != 0 || len(snap.Asteroids) != 2 {
		t.Fatalf("recovery did not restart cleanly: score=%d rocks=%d", snap.Score, len(snap.Asteroids))
	}

	// The rebuilt session keeps ticking.
	after := s.Step(object.Controls{}, config.TickTime)
	if after.State != GameStatePlaying || s.Faults() != 1 {
		t.Fatalf("session unstable after recovery: %v, faults %d", after.State, s.Faults())
	}
}

func TestStrictFaultsPropagate(t *testing.T) {
	s, err := NewSession(Options{StrictFaults: true}, 23)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	startGame(t, s)
	s.score = nil

	panicked := func() (p bool) {
		defer func() { p = recover() != nil }()
		s.Step(object.Controls{}, config.TickTime)
		return false
	}()
	if !panicked {
		t.Fatalf("poisoned tick did not panic with strict faults on")
	}
}

func TestDilationTracksMotion(t *testing.T) {
	s := newTestSession(t, 29)
	opening := startGame(t, s)
	if opening.Dilation != score.DilationFactor(0) {
		t.Fatalf("resting dilation = %v, want %v", opening.Dilation, score.DilationFactor(0))
	}

	thrust := stepN(s, 30, object.Controls{Thrust: true})
	if thrust.Dilation <= opening.Dilation {
		t.Fatalf("thrust did not raise the dilation factor: %v", thrust.Dilation)
	}
	if thrust.Dilation > score.DilationPeak {
		t.Fatalf("dilation %v above the peak %v", thrust.Dilation, score.DilationPeak)
	}
}

func TestUFOScheduleRunsOnTheDilatedClock(t *testing.T) {
	s := newTestSession(t, 31)
	startGame(t, s)

	before := s.ufoPlan.firstTimer
	s.Step(object.Controls{}, config.TickTime)
	spent := before - s.ufoPlan.firstTimer

	if spent <= 0 {
		t.Fatalf("first-spawn timer did not run")
	}
	if real := config.TickTime.Seconds(); spent >= real {
		t.Fatalf("first-spawn timer ran on the real clock: spent %v in one %vs tick", spent, real)
	}
}
