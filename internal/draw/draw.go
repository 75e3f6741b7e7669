// Package draw renders to ANSI terminals. The Canvas rasterizes shapes
// at double vertical resolution using half-block characters and emits
// only the cells that changed since the previous frame; the ChunkWriter
// batches escape codes into network-friendly writes.
package draw

// Point is a 2D coordinate in logical canvas space.
type Point struct {
	X, Y float64
}

// Shades orders fill characters from empty to solid.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty)
// and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	return Shades[int(intensity*float64(len(Shades)-1))]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// SGR color sequences for HUD and minimap accents.
const (
	ColorReset      = "\033[0m"
	ColorDim        = "\033[2m"
	ColorRed        = "\033[31m"
	ColorGreen      = "\033[32m"
	ColorYellow     = "\033[33m"
	ColorBrightCyan = "\033[96m"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
