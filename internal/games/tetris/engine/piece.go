package engine

// Piece is a shape placed on the grid.
type Piece struct {
	Shape Shape
	Pos   Position
}

// Kind returns the piece's identity.
func (p Piece) Kind() Kind {
	return p.Shape.Kind()
}

// Clone returns a copy that shares no cells with p.
func (p Piece) Clone() Piece {
	return Piece{Shape: p.Shape.Clone(), Pos: p.Pos}
}

// RotateShape rotates a square shape 90 degrees in place: clockwise for
// dir > 0, counter-clockwise otherwise.
func RotateShape(s Shape, dir int) {
	for y := range s {
		for x := 0; x < y; x++ {
			s[x][y], s[y][x] = s[y][x], s[x][y]
		}
	}
	if dir > 0 {
		for _, row := range s {
			for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
				row[i], row[j] = row[j], row[i]
			}
		}
		return
	}
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// rotate turns p on g and kicks it sideways until it fits. The probe steps
// +1, -2, +3, -4, ... columns, so the piece visits +1, -1, +2, -2, ...
// relative to where it started. Once a step would be wider than the shape
// the rotation is undone and the original column restored.
func rotate(g *Grid, p *Piece, dir int) bool {
	col := p.Pos.Col
	RotateShape(p.Shape, dir)

	offset := 1
	for g.Collides(p.Shape, p.Pos) {
		if abs(offset) > p.Shape.Width() {
			RotateShape(p.Shape, -dir)
			p.Pos.Col = col
			return false
		}
		p.Pos.Col += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -(offset - 1)
		}
	}
	return true
}
