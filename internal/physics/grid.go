package physics

// SpatialGrid is a uniform grid for broad-phase collision detection in a
// wrapping world. Objects are inserted by position and index, then nearby
// objects can be queried via a 3x3 neighborhood lookup.
//
// Cells tile the world exactly: the column and row counts are rounded
// down so that every cell is at least cellSize wide and tall. Two points
// within cellSize of each other on the torus are therefore never more
// than one wrapped cell apart, and the 3x3 neighborhood always contains
// every candidate.
type SpatialGrid struct {
	invCellW float64 // columns per world unit
	invCellH float64 // rows per world unit
	cols     int
	rows     int
	cells    []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given world dimensions.
// cellSize should be >= the maximum collision distance for the objects
// being inserted.
func NewSpatialGrid(worldW, worldH, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{}
	g.Reset(worldW, worldH, cellSize)
	return g
}

// Reset reconfigures the grid for new dimensions or a new cell size and
// clears all items. Cell storage is reused where possible, so a grid can
// be resized every frame without allocating.
func (g *SpatialGrid) Reset(worldW, worldH, cellSize float64) {
	if worldW <= 0 {
		worldW = 1
	}
	if worldH <= 0 {
		worldH = 1
	}

	cols, rows := 1, 1
	if cellSize > 0 {
		cols = int(worldW / cellSize)
		rows = int(worldH / cellSize)
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	need := cols * rows
	if cap(g.cells) < need {
		cells := make([]gridCell, need)
		copy(cells, g.cells)
		g.cells = cells
	}
	g.cells = g.cells[:need]

	g.invCellW = float64(cols) / worldW
	g.invCellH = float64(rows) / worldH
	g.cols = cols
	g.rows = rows
	g.Clear()
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given world position. Handles wrapping at world edges.
// If fn returns true, iteration stops early (useful for "find first"
// queries). Each cell is visited at most once, so callers never see the
// same index twice from a single query.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	// A grid narrower than 3 cells on either axis would alias wrapped
	// neighbors onto the same cell; scan every cell once instead.
	if g.cols < 3 || g.rows < 3 {
		for i := range g.cells {
			for _, itemIdx := range g.cells[i].items {
				if fn(itemIdx) {
					return
				}
			}
		}
		return
	}

	col, row := g.posToCell(x, y)

	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 {
			r += g.rows
		} else if r >= g.rows {
			r -= g.rows
		}

		rowOffset := r * g.cols

		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 {
				c += g.cols
			} else if c >= g.cols {
				c -= g.cols
			}

			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts world coordinates to grid cell coordinates.
// Clamps to valid range to handle edge cases with floating point.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(x * g.invCellW)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(y * g.invCellH)
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
