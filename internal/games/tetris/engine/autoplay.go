package engine

import "math"

// Policy ranks a simulated placement from the lines it cleared and the
// resulting board metrics. Higher is better.
type Policy interface {
	Score(lines int, m Metrics) int
}

// Weights configures WeightedPolicy.
type Weights struct {
	Lines     int
	Height    int
	Holes     int
	Bumpiness int
}

// DefaultWeights are the stock coefficients for WeightedPolicy.
var DefaultWeights = Weights{Lines: 1000, Height: 40, Holes: 100, Bumpiness: 20}

// WeightedPolicy rewards cleared lines and penalizes height, holes and an
// uneven surface.
type WeightedPolicy struct {
	Weights Weights
}

// Score implements Policy.
func (p WeightedPolicy) Score(lines int, m Metrics) int {
	w := p.Weights
	return lines*w.Lines - m.PileHeight*w.Height - m.Holes*w.Holes - m.Bumpiness*w.Bumpiness
}

// SimplePolicy only looks at cleared lines and pile height.
type SimplePolicy struct{}

// Score implements Policy.
func (SimplePolicy) Score(lines int, m Metrics) int {
	return lines*100 - m.PileHeight
}

// Placement is a candidate final resting spot for a piece.
type Placement struct {
	Rotation int // clockwise quarter turns from the spawn orientation
	Shape    Shape
	Pos      Position
	Score    int
}

// Evaluate simulates locking shape at pos on scratch and returns the lines
// it clears and the resulting metrics. scratch must hold the same cells as
// the board being evaluated; if no lines were cleared it is restored before
// returning, otherwise the caller has to refresh it. The second return
// reports whether scratch is still clean.
func Evaluate(scratch *Grid, shape Shape, pos Position) (lines int, m Metrics, clean bool) {
	scratch.Merge(shape, pos)
	lines, _ = scratch.sweep()
	m = scratch.Measure()
	if lines > 0 {
		return lines, m, false
	}
	scratch.Unmerge(shape, pos)
	return lines, m, true
}

// Planner searches placements for an autoplay player. It keeps a scratch
// grid so the live board is never touched during the search.
type Planner struct {
	policy  Policy
	scratch *Grid
}

// NewPlanner creates a planner using policy. A nil policy selects
// WeightedPolicy with DefaultWeights.
func NewPlanner(policy Policy) *Planner {
	if policy == nil {
		policy = WeightedPolicy{Weights: DefaultWeights}
	}
	return &Planner{policy: policy}
}

// Policy returns the ranking policy in use.
func (pl *Planner) Policy() Policy {
	return pl.policy
}

// Best enumerates four rotations times every column for piece on g and
// returns the highest-scoring landing placement. Ties keep the first
// candidate found. ok is false when every candidate collides at the
// piece's current row.
func (pl *Planner) Best(g *Grid, piece Piece) (best Placement, ok bool) {
	if pl.scratch == nil || pl.scratch.width != g.width || pl.scratch.height != g.height {
		pl.scratch = NewGrid(g.width, g.height)
	}
	pl.scratch.copyFrom(g)

	best.Score = math.MinInt
	shape := piece.Shape.Clone()
	for rot := 0; rot < 4; rot++ {
		if rot > 0 {
			RotateShape(shape, 1)
		}
		for col := -shape.Width() / 2; col < g.width; col++ {
			pos := Position{Col: col, Row: piece.Pos.Row}
			if g.Collides(shape, pos) {
				continue
			}
			pos.Row = landingRow(g, shape, pos)

			lines, m, clean := Evaluate(pl.scratch, shape, pos)
			if !clean {
				pl.scratch.copyFrom(g)
			}
			score := pl.policy.Score(lines, m)
			if !ok || score > best.Score {
				best = Placement{Rotation: rot, Shape: shape.Clone(), Pos: pos, Score: score}
				ok = true
			}
		}
	}
	return best, ok
}

// landingRow drops shape straight down from pos and returns the last row
// at which it does not collide.
func landingRow(g *Grid, shape Shape, pos Position) int {
	for !g.Collides(shape, Position{Col: pos.Col, Row: pos.Row + 1}) {
		pos.Row++
	}
	return pos.Row
}
