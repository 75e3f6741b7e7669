package loop

import (
	"testing"

	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
)

func TestWaveCompositionScalesWithLevel(t *testing.T) {
	cases := []struct {
		level, rocks int
	}{
		{1, 2},
		{2, 2},
		{3, 3},
		{5, 5},
		{8, 8},
	}
	for _, c := range cases {
		s := newTestSession(t, 37)
		startGame(t, s)
		clearRocks(s)
		s.level = c.level

		s.spawnWave()
		s.flushPending()

		if got := len(s.asteroids); got != c.rocks {
			t.Fatalf("level %d wave = %d rocks, want %d", c.level, got, c.rocks)
		}
		if tier := s.asteroids[0].Tier; tier < 7 || tier > 9 {
			t.Fatalf("level %d lead rock tier = %d, want 7..9", c.level, tier)
		}
		if tier := s.asteroids[1].Tier; tier < 1 || tier > 7 {
			t.Fatalf("level %d second rock tier = %d, want 1..7", c.level, tier)
		}
		for i, a := range s.asteroids {
			onEdge := a.X == 1 || a.X == s.arena.Width-1 || a.Y == 1 || a.Y == s.arena.Height-1
			if !onEdge {
				t.Fatalf("level %d rock %d at (%v, %v), want an arena edge", c.level, i, a.X, a.Y)
			}
		}
	}
}

func TestLevelClearAdvancesAfterDelay(t *testing.T) {
	s := newTestSession(t, 41)
	startGame(t, s)
	clearRocks(s)
	injectUFO(s, 900, 700, object.Tactical)
	injectShot(s, 200, 200, 0, 0, object.OwnerEnemy)

	clear := s.Step(object.Controls{}, config.TickTime)
	if !hasEvent(clear, EventLevelCleared) {
		t.Fatalf("empty field did not arm the level transition")
	}
	if clear.Level != 1 {
		t.Fatalf("level advanced before the delay: %d", clear.Level)
	}

	var next *Snapshot
	for i := 0; i < 80; i++ {
		next = s.Step(object.Controls{}, config.TickTime)
		if next.Level == 2 {
			break
		}
	}
	if next.Level != 2 {
		t.Fatalf("level did not advance within 80 ticks")
	}
	if next.Lives != config.InitialLives+1 {
		t.Fatalf("lives after advance = %d, want %d", next.Lives, config.InitialLives+1)
	}
	if len(next.Asteroids) != 2 {
		t.Fatalf("level 2 wave = %d rocks, want 2", len(next.Asteroids))
	}
	if len(next.UFOs) != 0 {
		t.Fatalf("craft survived the level transition: %d", len(next.UFOs))
	}
	if len(next.Shots) != 0 {
		t.Fatalf("rounds survived the level transition: %d", len(next.Shots))
	}
	cx, cy := s.arena.Center()
	if next.Ship.X != cx || next.Ship.Y != cy {
		t.Fatalf("ship at (%v, %v) after advance, want center", next.Ship.X, next.Ship.Y)
	}
	if next.Ship.Invuln != config.LevelInvulnSeconds {
		t.Fatalf("transition grace = %v, want %v", next.Ship.Invuln, config.LevelInvulnSeconds)
	}
}

func TestBossJoinsEveryFifthLevel(t *testing.T) {
	s := newTestSession(t, 43)
	startGame(t, s)
	s.level = 4
	clearRocks(s)

	var snap *Snapshot
	for i := 0; i < 80; i++ {
		snap = s.Step(object.Controls{}, config.TickTime)
		if snap.Level == 5 {
			break
		}
	}
	if snap.Level != 5 {
		t.Fatalf("level did not advance within 80 ticks")
	}
	if !snap.HasBoss {
		t.Fatalf("no boss on level 5")
	}
	if !hasEvent(snap, EventBossSpawned) {
		t.Fatalf("no boss-spawned event on the advance frame")
	}
	if snap.Boss.Hits != config.BossHits {
		t.Fatalf("boss hits = %d, want %d", snap.Boss.Hits, config.BossHits)
	}
	if len(snap.Asteroids) != 5 {
		t.Fatalf("level 5 wave = %d rocks, want 5", len(snap.Asteroids))
	}
}

func TestOpeningUFOWaveIsOnePerPersonality(t *testing.T) {
	s := newTestSession(t, 47)
	startGame(t, s)

	s.tickUFOPlan(config.UFOFirstSpawnSeconds)
	if !s.ufoPlan.active {
		t.Fatalf("quota not drawn after the first-spawn delay")
	}
	if s.ufoPlan.remaining != 5 {
		t.Fatalf("level 1 quota = %d, want 5", s.ufoPlan.remaining)
	}
	s.ufoPlan.mass = false // pin the trickle path regardless of the draw

	for i := 0; i < 5; i++ {
		s.tickUFOPlan(config.UFOSpawnInterval)
		s.flushPending()
	}
	if s.ufoPlan.remaining != 0 {
		t.Fatalf("quota not drained: %d left", s.ufoPlan.remaining)
	}
	if len(s.ufos) != 5 {
		t.Fatalf("launched %d craft, want 5", len(s.ufos))
	}

	want := []object.Personality{
		object.Aggressive,
		object.Defensive,
		object.Tactical,
		object.Swarm,
		object.Deadly,
	}
	cx, cy := s.cornerXY(s.ufoPlan.corner)
	for i, u := range s.ufos {
		if u.Personality != want[i] {
			t.Fatalf("craft %d personality = %v, want %v", i, u.Personality, want[i])
		}
		if u.X != cx || u.Y != cy {
			t.Fatalf("craft %d at (%v, %v), want the level corner (%v, %v)", i, u.X, u.Y, cx, cy)
		}
	}
}

func TestQuotaRangesByLevel(t *testing.T) {
	cases := []struct {
		level, lo, hi int
	}{
		{2, 2, 6},
		{3, 3, 9},
		{4, 4, 12},
		{5, 5, 15},
		{7, 7, 21},
		{10, 10, 30},
	}
	for _, c := range cases {
		for seed := int64(0); seed < 20; seed++ {
			s := newTestSession(t, seed)
			startGame(t, s)
			s.level = c.level

			s.drawUFOQuota()
			if got := s.ufoPlan.remaining; got < c.lo || got > c.hi {
				t.Fatalf("level %d seed %d quota = %d, want %d..%d", c.level, seed, got, c.lo, c.hi)
			}
		}
	}
}

func TestMassRollLaunchesTheWholeQuota(t *testing.T) {
	s := newTestSession(t, 53)
	startGame(t, s)
	s.level = 3

	s.drawUFOQuota()
	s.ufoPlan.mass = true
	quota := s.ufoPlan.remaining

	s.tickUFOPlan(0.001)
	s.flushPending()

	if len(s.ufos) != quota {
		t.Fatalf("mass spawn launched %d of %d craft", len(s.ufos), quota)
	}
	if s.ufoPlan.remaining != 0 {
		t.Fatalf("quota not drained: %d left", s.ufoPlan.remaining)
	}
	for i, u := range s.ufos {
		atCorner := (u.X == 0 || u.X == s.arena.Width) && (u.Y == 0 || u.Y == s.arena.Height)
		if !atCorner {
			t.Fatalf("craft %d at (%v, %v), want a corner", i, u.X, u.Y)
		}
	}
}

func TestPersonalityTableByLevel(t *testing.T) {
	s := newTestSession(t, 59)
	startGame(t, s)

	s.level = 2
	for i := 0; i < 10; i++ {
		if p := s.personalityForLevel(); p != object.Defensive {
			t.Fatalf("level 2 draw = %v, want %v", p, object.Defensive)
		}
	}

	s.level = 4
	for i := 0; i < 10; i++ {
		if p := s.personalityForLevel(); p != object.Aggressive {
			t.Fatalf("level 4 draw = %v, want %v", p, object.Aggressive)
		}
	}

	s.level = 3
	for i := 0; i < 20; i++ {
		p := s.personalityForLevel()
		if p != object.Aggressive && p != object.Defensive {
			t.Fatalf("level 3 draw = %v, want aggressive or defensive", p)
		}
	}

	// The table never hands out Deadly; that only comes from the
	// override roll.
	s.level = 9
	for i := 0; i < 40; i++ {
		if p := s.personalityForLevel(); p == object.Deadly {
			t.Fatalf("level table produced a deadly craft")
		}
	}
}

func TestUFOCapRefusesOverflow(t *testing.T) {
	s := newTestSession(t, 61)
	startGame(t, s)
	s.level = 6
	s.ufoPlan = ufoSchedule{active: true, remaining: config.MaxUFOs + 10, mass: true}

	s.tickUFOPlan(0.001)
	s.flushPending()

	if len(s.ufos) != config.MaxUFOs {
		t.Fatalf("live craft = %d, want the cap %d", len(s.ufos), config.MaxUFOs)
	}
	if got := s.Refused(object.KindUFO); got != 10 {
		t.Fatalf("refused spawns = %d, want 10", got)
	}
	if s.Live(object.KindUFO) != config.MaxUFOs {
		t.Fatalf("tracked live count = %d, want %d", s.Live(object.KindUFO), config.MaxUFOs)
	}
}
