package loop

import (
	"testing"

	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/score"
)

func TestBlastSequenceDemotesTheField(t *testing.T) {
	s := newTestSession(t, 109)
	startGame(t, s)
	clearRocks(s)
	injectRock(s, 200, 200, 5, 0, 0)
	injectRock(s, 700, 600, 1, 0, 0)
	s.ship.Charges = 1

	snap := s.Step(object.Controls{Ability: true}, config.TickTime)

	if !hasEvent(snap, EventAbilityFired) {
		t.Fatalf("no ability event on the activation frame")
	}
	if snap.Charges != 0 {
		t.Fatalf("charges after activation = %d, want 0", snap.Charges)
	}
	if len(snap.Asteroids) != 2 {
		t.Fatalf("first blast left %d rocks, want the tier-5 rock's 2 children", len(snap.Asteroids))
	}
	for i, a := range snap.Asteroids {
		if a.Tier != 4 {
			t.Fatalf("child %d tier = %d, want 4", i, a.Tier)
		}
	}
	if snap.Score != 66 {
		t.Fatalf("first blast score = %d, want 66", snap.Score)
	}
	if snap.Multiplier != 1 {
		t.Fatalf("blast kills moved the multiplier to %v", snap.Multiplier)
	}
	if snap.Dilation != 1 {
		t.Fatalf("motion surge missing: dilation %v, want 1", snap.Dilation)
	}
	if s.blastsLeft != 1 {
		t.Fatalf("blasts left = %d, want 1", s.blastsLeft)
	}

	// The second blast lands after a short stagger on the real clock.
	var after *Snapshot
	for i := 0; i < 30; i++ {
		after = s.Step(object.Controls{}, config.TickTime)
		if s.blastsLeft == 0 {
			break
		}
	}
	if s.blastsLeft != 0 {
		t.Fatalf("second blast never fired")
	}
	if len(after.Asteroids) != 4 {
		t.Fatalf("second blast left %d rocks, want 4 tier-3 children", len(after.Asteroids))
	}
	for i, a := range after.Asteroids {
		if a.Tier != 3 {
			t.Fatalf("rock %d tier = %d, want 3", i, a.Tier)
		}
	}
	if after.Score != 154 {
		t.Fatalf("cascade score = %d, want 154", after.Score)
	}
}

func TestBlastIgnoredWithoutCharge(t *testing.T) {
	s := newTestSession(t, 113)
	startGame(t, s)
	clearRocks(s)
	injectRock(s, 200, 200, 5, 0, 0)

	snap := s.Step(object.Controls{Ability: true}, config.TickTime)

	if hasEvent(snap, EventAbilityFired) {
		t.Fatalf("ability fired with no charge banked")
	}
	if len(snap.Asteroids) != 1 || snap.Asteroids[0].Tier != 5 {
		t.Fatalf("field touched without a charge")
	}
	if snap.Dilation != score.DilationFactor(0) {
		t.Fatalf("surge applied without a blast: dilation %v", snap.Dilation)
	}
}

func TestBlastCullsTheSaucerPack(t *testing.T) {
	s := newTestSession(t, 127)
	startGame(t, s)
	clearRocks(s)
	injectRock(s, 40, 40, 5, 0, 0)
	injectUFO(s, 100, 600, object.Aggressive)
	injectUFO(s, 200, 650, object.Defensive)
	injectUFO(s, 800, 100, object.Tactical)
	injectUFO(s, 900, 650, object.Swarm)
	s.ship.Charges = 1

	snap := s.Step(object.Controls{Ability: true}, config.TickTime)

	if got := 4 - len(snap.UFOs); got != 2 {
		t.Fatalf("blast culled %d craft, want ceil(4*%v) = 2", got, config.AbilityUFOKillFraction)
	}
	if s.Live(object.KindUFO) != 2 {
		t.Fatalf("live craft count = %d, want 2", s.Live(object.KindUFO))
	}
	// The rock demotes for 55 and each culled craft pays the full
	// saucer bounty.
	if want := int64(55 + 2*config.ScoreUFOKill); snap.Score != want {
		t.Fatalf("blast score = %d, want %d", snap.Score, want)
	}
}
