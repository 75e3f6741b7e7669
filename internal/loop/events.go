package loop

import (
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/score"
)

// EventType tags one occurrence inside a tick.
type EventType uint8

const (
	EventKill EventType = iota
	EventMilestone
	EventShieldHit
	EventLevelCleared
	EventShipDestroyed
	EventRespawn
	EventBossSpawned
	EventAbilityFired
	EventGameOver
	EventSessionFault
)

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventKill:
		return "kill"
	case EventMilestone:
		return "milestone"
	case EventShieldHit:
		return "shield-hit"
	case EventLevelCleared:
		return "level-cleared"
	case EventShipDestroyed:
		return "ship-destroyed"
	case EventRespawn:
		return "respawn"
	case EventBossSpawned:
		return "boss-spawned"
	case EventAbilityFired:
		return "ability-fired"
	case EventGameOver:
		return "game-over"
	case EventSessionFault:
		return "session-fault"
	default:
		return "unknown"
	}
}

// Event is one occurrence from the tick that produced the snapshot.
// Fields beyond Type are set only where they carry meaning: kills have
// a position, points, and the kind that died; milestones the crossed
// threshold; level events the level number.
type Event struct {
	Type      EventType
	X, Y      float64
	Points    int64
	Kind      object.Kind
	Milestone score.Milestone
	Level     int
}
