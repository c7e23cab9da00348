package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow occupies every cell of row y.
func fillRow(g *Grid, y int, k Kind) {
	for x := 0; x < g.Width(); x++ {
		g.Set(x, y, k)
	}
}

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(12, 20)

	assert.Equal(t, 12, g.Width())
	assert.Equal(t, 20, g.Height())
	assert.True(t, g.Empty())

	cells := g.Cells()
	require.Len(t, cells, 20)
	for _, row := range cells {
		assert.Len(t, row, 12)
	}
}

func TestCollidesInsideAndEdges(t *testing.T) {
	g := NewGrid(12, 20)
	shape := NewShape(KindO)

	assert.False(t, g.Collides(shape, Position{Col: 5, Row: 5}), "free placement")
	assert.False(t, g.Collides(shape, Position{Col: 0, Row: 0}), "top-left corner")
	assert.False(t, g.Collides(shape, Position{Col: 10, Row: 18}), "bottom-right corner")

	assert.True(t, g.Collides(shape, Position{Col: -1, Row: 5}), "past left edge")
	assert.True(t, g.Collides(shape, Position{Col: 11, Row: 5}), "past right edge")
	assert.True(t, g.Collides(shape, Position{Col: 5, Row: 19}), "past floor")
}

func TestCollidesAboveTopIsFree(t *testing.T) {
	g := NewGrid(12, 20)
	shape := NewShape(KindO)

	assert.False(t, g.Collides(shape, Position{Col: 4, Row: -1}))
	assert.False(t, g.Collides(shape, Position{Col: 4, Row: -5}))
	// Columns are still checked when above the top.
	assert.True(t, g.Collides(shape, Position{Col: -3, Row: -1}))
}

func TestCollidesWithLockedCell(t *testing.T) {
	g := NewGrid(12, 20)
	g.Set(6, 6, KindT)
	shape := NewShape(KindO)

	assert.True(t, g.Collides(shape, Position{Col: 5, Row: 5}))
	assert.False(t, g.Collides(shape, Position{Col: 7, Row: 5}))
}

func TestCollidesIgnoresTransparentCells(t *testing.T) {
	g := NewGrid(4, 4)
	// I piece occupies only column 1 of its 4x4 matrix.
	shape := NewShape(KindI)

	assert.False(t, g.Collides(shape, Position{Col: -1, Row: 0}))
	assert.False(t, g.Collides(shape, Position{Col: 2, Row: 0}))
	assert.True(t, g.Collides(shape, Position{Col: 3, Row: 0}))
}

func TestMergeUnmergeRoundTrip(t *testing.T) {
	g := NewGrid(12, 20)
	g.Set(0, 19, KindZ)
	g.Set(11, 19, KindS)
	g.Set(3, 10, KindL)
	before := g.Cells()

	shape := NewShape(KindT)
	pos := Position{Col: 5, Row: 15}
	require.False(t, g.Collides(shape, pos))

	g.Merge(shape, pos)
	assert.Equal(t, KindT, g.At(5, 16))
	assert.Equal(t, KindT, g.At(6, 17))

	g.Unmerge(shape, pos)
	assert.Equal(t, before, g.Cells())
}

func TestMergeSkipsOutOfRange(t *testing.T) {
	g := NewGrid(4, 4)
	shape := NewShape(KindO)

	assert.NotPanics(t, func() {
		g.Merge(shape, Position{Col: 3, Row: -1})
	})
	assert.Equal(t, KindO, g.At(3, 0))
}

func TestSweepRowsTwoBottomRows(t *testing.T) {
	g := NewGrid(12, 20)
	fillRow(g, 19, KindI)
	fillRow(g, 18, KindJ)

	score := g.SweepRows()

	assert.Equal(t, 30, score)
	assert.True(t, g.Empty())
	for y := 0; y < 2; y++ {
		for x := 0; x < 12; x++ {
			assert.Equal(t, KindNone, g.At(x, y))
		}
	}
}

func TestSweepRowsFourLines(t *testing.T) {
	g := NewGrid(10, 20)
	for y := 16; y < 20; y++ {
		fillRow(g, y, KindI)
	}

	assert.Equal(t, 10+20+30+40, g.SweepRows())
}

func TestSweepRowsRechecksShiftedRow(t *testing.T) {
	g := NewGrid(5, 6)
	fillRow(g, 5, KindT)
	fillRow(g, 4, KindS)
	g.Set(2, 3, KindL)

	score := g.SweepRows()

	assert.Equal(t, 30, score)
	assert.Equal(t, KindL, g.At(2, 5), "partial row slides to the floor")
	assert.Equal(t, KindNone, g.At(2, 3))
}

func TestSweepRowsNonAdjacent(t *testing.T) {
	g := NewGrid(4, 5)
	fillRow(g, 4, KindI)
	g.Set(0, 3, KindO)
	fillRow(g, 2, KindI)

	assert.Equal(t, 30, g.SweepRows())
	assert.Equal(t, KindO, g.At(0, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, KindNone, g.At(x, y))
		}
	}
}

func TestSweepRowsNothingComplete(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(0, 3, KindI)
	before := g.Cells()

	assert.Equal(t, 0, g.SweepRows())
	assert.Equal(t, before, g.Cells())
}

func TestClear(t *testing.T) {
	g := NewGrid(6, 6)
	fillRow(g, 2, KindZ)
	g.Clear()

	assert.True(t, g.Empty())
	assert.Equal(t, 6, g.Width())
	assert.Equal(t, 6, g.Height())
}

func TestMeasureEmptyGrid(t *testing.T) {
	g := NewGrid(12, 20)
	assert.Equal(t, Metrics{}, g.Measure())
}

func TestMeasure(t *testing.T) {
	// . . .
	// X . .
	// . . X
	// X X X
	g := NewGrid(3, 4)
	g.Set(0, 1, KindI)
	g.Set(2, 2, KindI)
	fillRow(g, 3, KindI)

	m := g.Measure()

	assert.Equal(t, 3, m.PileHeight)
	assert.Equal(t, 1, m.Holes)
	assert.Equal(t, 3, m.Bumpiness)
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(1, 1, KindJ)

	c := g.Clone()
	c.Set(2, 2, KindS)

	assert.Equal(t, KindJ, c.At(1, 1))
	assert.Equal(t, KindNone, g.At(2, 2))
}
