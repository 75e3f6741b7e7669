// Package score is the effects engine: it owns the session scoreboard
// (score, multiplier, milestones), the time-dilation factor, and every
// mutation of the ship's shield, ability, and life state. Other
// components read ScoreState and report kills; nothing else writes.
package score

import (
	"fmt"
	"math"

	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
)

// MilestoneKind names the reward a crossed threshold grants.
type MilestoneKind uint8

const (
	MilestoneShield MilestoneKind = iota // shield recharge
	MilestoneShieldAbility               // shield + ability recharge
	MilestoneExtraLife                   // extra life + full recharge
)

// String returns a short name for the milestone kind.
func (k MilestoneKind) String() string {
	switch k {
	case MilestoneShield:
		return "shield"
	case MilestoneShieldAbility:
		return "shield+ability"
	case MilestoneExtraLife:
		return "extra-life"
	default:
		return "unknown"
	}
}

// Milestone is one crossed reward threshold.
type Milestone struct {
	Threshold int64
	Kind      MilestoneKind
}

// State is the per-session scoreboard. Create with NewState; the zero
// value has an invalid multiplier.
type State struct {
	Score      int64
	Multiplier float64
	Dilation   float64

	peak       float64 // multiplier at the last kill, the decay ramp's top
	sinceKill  float64 // seconds since the last multiplier-qualifying kill
	milestones uint64  // fired threshold bits
}

// NewState returns a fresh scoreboard for a new game.
func NewState() *State {
	return &State{
		Multiplier: 1,
		Dilation:   DilationFactor(0),
		peak:       1,
		sinceKill:  math.Inf(1),
	}
}

// AsteroidPoints returns the base award for destroying an asteroid of
// the given tier.
func AsteroidPoints(tier int) int64 {
	return int64(tier) * config.ScoreAsteroidPerTier
}

// AddKill banks a player-attributed kill: base points scaled by the
// current multiplier (floored), a multiplier bump, and a decay reset.
// Returns the points banked and any milestones crossed; rewards are
// applied to the ship before returning.
func (s *State) AddKill(base int64, ship *object.Ship) (int64, []Milestone) {
	awarded := s.bank(base)
	s.Multiplier = math.Min(s.Multiplier+config.MultiplierStep, config.MultiplierCap)
	s.peak = s.Multiplier
	s.sinceKill = 0
	return awarded, s.applyMilestones(ship)
}

// AddAbilityKill banks points for a kill made by an ability blast.
// Blast kills score but never feed the multiplier.
func (s *State) AddAbilityKill(base int64, ship *object.Ship) (int64, []Milestone) {
	awarded := s.bank(base)
	return awarded, s.applyMilestones(ship)
}

func (s *State) bank(base int64) int64 {
	if base < 0 {
		panic(fmt.Sprintf("score: negative kill value %d", base))
	}
	awarded := int64(math.Floor(float64(base) * s.Multiplier))
	s.Score += awarded
	return awarded
}

// Tick advances multiplier decay and the ship's shield and ability
// recharge clocks. dt is the dilated tick delta, the same time the
// entities experienced.
func (s *State) Tick(ship *object.Ship, dt float64) {
	s.sinceKill += dt
	if s.sinceKill > config.MultiplierGraceSecs {
		progress := (s.sinceKill - config.MultiplierGraceSecs) / config.MultiplierDecaySecs
		if progress > 1 {
			progress = 1
		}
		s.Multiplier = s.peak - (s.peak-1)*progress
	}

	if ship != nil {
		ship.AdvanceShieldRecharge(dt)
		ship.AdvanceAbilityCharge(dt)
	}
}

// SetDilation stores the factor computed for the next tick.
func (s *State) SetDilation(factor float64) {
	s.Dilation = factor
}

// applyMilestones fires every threshold the score has crossed that has
// not fired before, applying its reward to the ship. Thresholds fire in
// ascending order even when one kill crosses several.
func (s *State) applyMilestones(ship *object.Ship) []Milestone {
	var crossed []Milestone

	if s.Score >= config.MilestoneShieldScore && !s.fired(0) {
		s.mark(0)
		if ship != nil {
			ship.RechargeShield()
		}
		crossed = append(crossed, Milestone{Threshold: config.MilestoneShieldScore, Kind: MilestoneShield})
	}
	if s.Score >= config.MilestoneAbilityScore && !s.fired(1) {
		s.mark(1)
		if ship != nil {
			ship.RechargeShield()
			ship.RechargeAbility()
		}
		crossed = append(crossed, Milestone{Threshold: config.MilestoneAbilityScore, Kind: MilestoneShieldAbility})
	}

	// Repeating life thresholds: 250k, 500k, 750k, ... The bitmap has
	// 62 bits left for them, far beyond any reachable score.
	for k := 0; k < 62; k++ {
		threshold := int64(config.MilestoneLifeStride) * int64(k+1)
		if s.Score < threshold {
			break
		}
		bit := uint(2 + k)
		if s.fired(bit) {
			continue
		}
		s.mark(bit)
		if ship != nil {
			ship.AddLife()
			ship.RechargeShield()
			ship.RechargeAbility()
		}
		crossed = append(crossed, Milestone{Threshold: threshold, Kind: MilestoneExtraLife})
	}
	return crossed
}

func (s *State) fired(bit uint) bool { return s.milestones&(1<<bit) != 0 }
func (s *State) mark(bit uint)       { s.milestones |= 1 << bit }
