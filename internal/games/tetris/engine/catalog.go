// Package engine implements the falling-block rules: the arena grid, the
// player-controlled piece, rotation with kicks and the autoplay policy.
// It has no dependencies on the platform layer and never schedules itself;
// callers drive it through Player.Update.
package engine

import "math/rand"

// Kind identifies a tetromino. The numeric value doubles as the color index
// stored in grid cells; KindNone marks an empty cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindL
	KindJ
	KindO
	KindZ
	KindS
	KindT
)

// KindCount is the number of real piece kinds.
const KindCount = 7

// Kinds lists every piece kind in spawn-table order.
var Kinds = [KindCount]Kind{KindI, KindL, KindJ, KindO, KindZ, KindS, KindT}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindO:
		return "O"
	case KindZ:
		return "Z"
	case KindS:
		return "S"
	case KindT:
		return "T"
	default:
		return "."
	}
}

// Shape is a square matrix of cells. Zero cells are transparent.
type Shape [][]Kind

// templates holds the canonical orientation of each piece, as a 0/1 mask.
var templates = map[Kind][][]uint8{
	KindI: {
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 0},
	},
	KindL: {
		{0, 1, 0},
		{0, 1, 0},
		{0, 1, 1},
	},
	KindJ: {
		{0, 1, 0},
		{0, 1, 0},
		{1, 1, 0},
	},
	KindO: {
		{1, 1},
		{1, 1},
	},
	KindZ: {
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	},
	KindS: {
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	},
	KindT: {
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0},
	},
}

// NewShape returns a freshly allocated shape for kind in its spawn
// orientation. Every call returns an independent copy.
// Unknown kinds yield nil.
func NewShape(kind Kind) Shape {
	mask, ok := templates[kind]
	if !ok {
		return nil
	}
	shape := make(Shape, len(mask))
	for y, row := range mask {
		shape[y] = make([]Kind, len(row))
		for x, v := range row {
			if v != 0 {
				shape[y][x] = kind
			}
		}
	}
	return shape
}

// RandomKind picks a kind uniformly at random.
func RandomKind(rng *rand.Rand) Kind {
	return Kinds[rng.Intn(KindCount)]
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = make([]Kind, len(row))
		copy(out[y], row)
	}
	return out
}

// Width returns the column count of the shape's first row.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Kind returns the kind tagged on the shape's non-empty cells.
func (s Shape) Kind() Kind {
	for _, row := range s {
		for _, v := range row {
			if v != KindNone {
				return v
			}
		}
	}
	return KindNone
}

// Equal reports whether both shapes have identical cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}
