package client

import (
	"github.com/tomz197/staroids/internal/draw"
	"github.com/tomz197/staroids/internal/loop/config"
)

// camera is the view window center in world units.
type camera struct {
	x, y float64
}

// viewPositions holds up to 4 view positions for one world-wrapped
// entity. A fixed array avoids allocations in the hot rendering path.
type viewPositions struct {
	pts   [4]draw.Point
	count int
}

// Admits shapes whose center sits outside the window; sized for the
// largest asteroid tier.
const viewMargin = 150.0

// worldToView converts a world position to view coordinates relative to
// the camera. Returns every position where the entity should be drawn,
// since entities near a world seam show up on both sides of it.
func worldToView(worldX, worldY float64, cam camera) viewPositions {
	var result viewPositions

	camLeft := cam.x - config.ViewWorldWidth/2
	camTop := cam.y - config.ViewWorldHeight/2

	viewX := worldX - camLeft
	viewY := worldY - camTop

	// Check all possible wrap positions (original + wrapped copies)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			sx := viewX + float64(dx)*config.WorldWidth
			sy := viewY + float64(dy)*config.WorldHeight

			if sx >= -viewMargin && sx <= config.ViewWorldWidth+viewMargin &&
				sy >= -viewMargin && sy <= config.ViewWorldHeight+viewMargin {
				if result.count < len(result.pts) {
					result.pts[result.count] = draw.Point{X: sx, Y: sy}
					result.count++
				}
			}
		}
	}

	return result
}

// renderBlink reports whether a blinking object is visible this frame.
// Objects with no remaining timer are always visible.
func renderBlink(remaining, frequency float64) bool {
	if remaining <= 0 {
		return true
	}
	phase := int(remaining * frequency)
	return phase%2 != 0
}
