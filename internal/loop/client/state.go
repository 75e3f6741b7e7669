package client

import (
	"time"

	"github.com/tomz197/staroids/internal/loop"
	"github.com/tomz197/staroids/internal/loop/config"
)

// Minimap geometry. The width-to-subrow ratio matches the 4:3 world so
// the map doesn't distort; half-block cells give two sub-rows per
// terminal row.
const (
	minimapWidth   = 24
	minimapHeight  = 9
	minimapSubRows = minimapHeight * 2
)

// Minimap cell markers. Higher values win when entities share a cell.
const (
	minimapEmpty byte = iota
	minimapRock
	minimapHostile
	minimapShip
)

// viewState is everything the client tracks between frames: the camera,
// the last layout drawn (for transition clears), and the client-side
// countdowns. Authoritative game state lives in the snapshots.
type viewState struct {
	camX, camY float64

	running   bool
	delta     time.Duration
	prevState loop.GameState

	shutdown      bool
	wasShutdown   bool
	shutdownTimer float64

	inactive    bool
	wasInactive bool

	minimapGrid [minimapSubRows][minimapWidth]byte
}

func newViewState() *viewState {
	return &viewState{
		running:   true,
		prevState: loop.GameStateWaiting,
		camX:      config.WorldWidth / 2,
		camY:      config.WorldHeight / 2,
	}
}
