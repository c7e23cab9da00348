package engine

// Position is the grid offset of a shape's top-left corner.
type Position struct {
	Col int
	Row int
}

// Grid is the arena: a fixed-size matrix of locked cells.
// Rows are indexed top to bottom, columns left to right.
type Grid struct {
	width  int
	height int
	cells  [][]Kind
}

// NewGrid creates an empty grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([][]Kind, height),
	}
	for y := range g.cells {
		g.cells[y] = make([]Kind, width)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		clear(row)
	}
}

// At returns the cell at (col, row), or KindNone when out of range.
func (g *Grid) At(col, row int) Kind {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return KindNone
	}
	return g.cells[row][col]
}

// Set writes a cell. Out-of-range writes are ignored.
func (g *Grid) Set(col, row int, k Kind) {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return
	}
	g.cells[row][col] = k
}

// Cells returns a deep copy of the occupancy matrix for rendering.
func (g *Grid) Cells() [][]Kind {
	out := make([][]Kind, g.height)
	for y, row := range g.cells {
		out[y] = make([]Kind, g.width)
		copy(out[y], row)
	}
	return out
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	c.copyFrom(g)
	return c
}

// copyFrom overwrites g with src's cells. Dimensions must match.
func (g *Grid) copyFrom(src *Grid) {
	for y := range g.cells {
		copy(g.cells[y], src.cells[y])
	}
}

// Collides reports whether shape placed at pos overlaps a locked cell or
// leaves the grid. Cells left or right of the grid and below the floor
// collide; cells above the top edge do not.
func (g *Grid) Collides(shape Shape, pos Position) bool {
	for y, row := range shape {
		for x, v := range row {
			if v == KindNone {
				continue
			}
			col, r := pos.Col+x, pos.Row+y
			if col < 0 || col >= g.width || r >= g.height {
				return true
			}
			if r < 0 {
				continue
			}
			if g.cells[r][col] != KindNone {
				return true
			}
		}
	}
	return false
}

// Merge writes the shape's non-empty cells into the grid.
// The caller must have checked Collides first; cells outside the grid are
// skipped.
func (g *Grid) Merge(shape Shape, pos Position) {
	g.paint(shape, pos, false)
}

// Unmerge clears every cell Merge would have written for the same
// arguments.
func (g *Grid) Unmerge(shape Shape, pos Position) {
	g.paint(shape, pos, true)
}

func (g *Grid) paint(shape Shape, pos Position, erase bool) {
	for y, row := range shape {
		for x, v := range row {
			if v == KindNone {
				continue
			}
			if erase {
				v = KindNone
			}
			g.Set(pos.Col+x, pos.Row+y, v)
		}
	}
}

// SweepRows removes every complete row and returns the score it earned.
// The n-th row removed within one call is worth n*10 points.
func (g *Grid) SweepRows() int {
	_, score := g.sweep()
	return score
}

// sweep scans bottom to top. A removed row is recycled as the new empty top
// row and the same index is examined again, since the row that slid into it
// may be complete too.
func (g *Grid) sweep() (lines, score int) {
	for y := g.height - 1; y >= 0; y-- {
		if !g.rowFull(y) {
			continue
		}
		removed := g.cells[y]
		copy(g.cells[1:y+1], g.cells[:y])
		clear(removed)
		g.cells[0] = removed

		lines++
		score += lines * 10
		y++
	}
	return lines, score
}

func (g *Grid) rowFull(y int) bool {
	for _, v := range g.cells[y] {
		if v == KindNone {
			return false
		}
	}
	return true
}

// Empty reports whether no cell is occupied.
func (g *Grid) Empty() bool {
	for _, row := range g.cells {
		for _, v := range row {
			if v != KindNone {
				return false
			}
		}
	}
	return true
}

// Metrics describes the board surface, used to rank autoplay placements.
type Metrics struct {
	PileHeight int // rows from the floor up to the highest occupied cell
	Holes      int // empty cells with an occupied cell above them
	Bumpiness  int // summed height difference of adjacent columns
}

// Measure computes board metrics over the whole grid.
func (g *Grid) Measure() Metrics {
	var m Metrics
	prev := 0
	for x := 0; x < g.width; x++ {
		h := 0
		covered := false
		for y := 0; y < g.height; y++ {
			if g.cells[y][x] != KindNone {
				if !covered {
					covered = true
					h = g.height - y
				}
				continue
			}
			if covered {
				m.Holes++
			}
		}
		if h > m.PileHeight {
			m.PileHeight = h
		}
		if x > 0 {
			m.Bumpiness += abs(h - prev)
		}
		prev = h
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
