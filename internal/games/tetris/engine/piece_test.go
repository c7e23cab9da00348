package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShapeTagsCells(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			shape := NewShape(kind)
			require.NotNil(t, shape)
			assert.Len(t, shape, shape.Width(), "shape must be square")

			filled := 0
			for _, row := range shape {
				for _, v := range row {
					if v != KindNone {
						assert.Equal(t, kind, v)
						filled++
					}
				}
			}
			assert.Equal(t, 4, filled)
			assert.Equal(t, kind, shape.Kind())
		})
	}
}

func TestNewShapeReturnsIndependentCopies(t *testing.T) {
	a := NewShape(KindT)
	b := NewShape(KindT)

	a[1][1] = KindNone
	RotateShape(a, 1)

	assert.Equal(t, KindT, b[1][1])
	assert.True(t, b.Equal(NewShape(KindT)))
}

func TestNewShapeUnknownKind(t *testing.T) {
	assert.Nil(t, NewShape(KindNone))
	assert.Nil(t, NewShape(Kind(42)))
}

func TestRandomKindInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := make(map[Kind]bool)
	for i := 0; i < 500; i++ {
		k := RandomKind(rng)
		assert.GreaterOrEqual(t, k, KindI)
		assert.LessOrEqual(t, k, KindT)
		seen[k] = true
	}
	assert.Len(t, seen, KindCount)
}

func TestRotateShapeClockwise(t *testing.T) {
	shape := NewShape(KindT)
	RotateShape(shape, 1)

	want := Shape{
		{0, KindT, 0},
		{KindT, KindT, 0},
		{0, KindT, 0},
	}
	assert.Equal(t, want, shape)
}

func TestRotateShapeCounterClockwise(t *testing.T) {
	shape := NewShape(KindT)
	RotateShape(shape, -1)

	want := Shape{
		{0, KindT, 0},
		{0, KindT, KindT},
		{0, KindT, 0},
	}
	assert.Equal(t, want, shape)
}

func TestRotateShapeFourTimesIsIdentity(t *testing.T) {
	for _, kind := range Kinds {
		for _, dir := range []int{1, -1} {
			shape := NewShape(kind)
			for i := 0; i < 4; i++ {
				RotateShape(shape, dir)
			}
			assert.True(t, shape.Equal(NewShape(kind)), "kind %s dir %d", kind, dir)
		}
	}
}

func TestRotateShapeOppositeUndoes(t *testing.T) {
	shape := NewShape(KindL)
	RotateShape(shape, 1)
	RotateShape(shape, -1)
	assert.True(t, shape.Equal(NewShape(KindL)))
}

func TestRotateKicksOffWall(t *testing.T) {
	g := NewGrid(10, 20)
	// Vertical I hugging the right wall: its filled column sits at x=9.
	p := Piece{Shape: NewShape(KindI), Pos: Position{Col: 8, Row: 5}}
	require.False(t, g.Collides(p.Shape, p.Pos))

	ok := rotate(g, &p, 1)

	// Columns 8, 9, 7 and 10 all overhang the wall; 6 is the first fit.
	require.True(t, ok)
	assert.False(t, g.Collides(p.Shape, p.Pos))
	assert.Equal(t, 6, p.Pos.Col)
}

func TestRotateKickOrder(t *testing.T) {
	// A vertical I at column 4 turns into a horizontal bar on row 6 covering
	// columns 4-7. Blocked cells on that row decide which kick fits.
	tests := []struct {
		name    string
		blocked []int
		wantOK  bool
		wantCol int
	}{
		{"fits in place", nil, true, 4},
		{"plus one", []int{4}, true, 5},
		{"minus one", []int{7}, true, 3},
		{"plus two", []int{5}, true, 6},
		{"minus two", []int{6}, true, 2},
		// +3 would fit at columns 7-10, but a step of 5 is wider than the bar.
		{"gives up past shape width", []int{5, 6}, false, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(12, 20)
			for _, x := range tt.blocked {
				g.Set(x, 6, KindO)
			}
			p := Piece{Shape: NewShape(KindI), Pos: Position{Col: 4, Row: 5}}

			ok := rotate(g, &p, 1)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCol, p.Pos.Col)
			assert.Equal(t, 5, p.Pos.Row)
			if ok {
				assert.False(t, g.Collides(p.Shape, p.Pos))
			} else {
				assert.True(t, p.Shape.Equal(NewShape(KindI)), "rotation undone")
			}
		})
	}
}

func TestRotateRejectedRestoresState(t *testing.T) {
	g := NewGrid(12, 20)
	// Vertical I in a one-wide shaft: column 5 free, rows 0-3 filled elsewhere.
	for y := 0; y < 4; y++ {
		for x := 0; x < 12; x++ {
			if x != 5 {
				g.Set(x, y, KindO)
			}
		}
	}
	p := Piece{Shape: NewShape(KindI), Pos: Position{Col: 4, Row: 0}}
	require.False(t, g.Collides(p.Shape, p.Pos))
	before := p.Clone()

	ok := rotate(g, &p, 1)

	assert.False(t, ok)
	assert.Equal(t, before.Pos, p.Pos)
	assert.True(t, before.Shape.Equal(p.Shape))
}
