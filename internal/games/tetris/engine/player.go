package engine

import (
	"math/rand"
	"time"

	"github.com/kamstrup/intmap"
)

// Default fall intervals.
const (
	DropSlow = 1000 * time.Millisecond
	DropFast = 50 * time.Millisecond
)

// PlayerOptions configures a Player.
type PlayerOptions struct {
	DropSlow time.Duration // zero means DropSlow
	DropFast time.Duration // zero means DropFast

	// Planner turns the player into a computer-controlled one.
	Planner *Planner

	// OnScore is called whenever the score changes, including the reset
	// to zero after a top-out.
	OnScore func(score int)

	// OnTopOut is called with the score held right before a spawn
	// collision wiped the board.
	OnTopOut func(finalScore int)
}

// Stats counts what happened on a player's board since construction.
type Stats struct {
	Pieces  int
	Lines   int
	TopOuts int
}

// Player owns the falling piece on a grid: spawning, moving, rotating,
// gravity and locking.
type Player struct {
	grid *Grid
	rng  *rand.Rand

	current Piece
	next    Shape

	score        int
	dropCounter  time.Duration
	dropInterval time.Duration
	dropSlow     time.Duration
	dropFast     time.Duration
	fast         bool

	planner  *Planner
	onScore  func(int)
	onTopOut func(int)

	stats  Stats
	spawns *intmap.Map[Kind, int]
}

// NewPlayer creates a player on grid and spawns its first piece.
func NewPlayer(grid *Grid, rng *rand.Rand, opts PlayerOptions) *Player {
	if opts.DropSlow <= 0 {
		opts.DropSlow = DropSlow
	}
	if opts.DropFast <= 0 {
		opts.DropFast = DropFast
	}
	p := &Player{
		grid:         grid,
		rng:          rng,
		dropSlow:     opts.DropSlow,
		dropFast:     opts.DropFast,
		dropInterval: opts.DropSlow,
		planner:      opts.Planner,
		onScore:      opts.OnScore,
		onTopOut:     opts.OnTopOut,
		spawns:       intmap.New[Kind, int](KindCount),
	}
	p.Spawn()
	return p
}

// Grid returns the arena the player drops pieces into.
func (p *Player) Grid() *Grid {
	return p.grid
}

// Piece returns a copy of the falling piece.
func (p *Player) Piece() Piece {
	return p.current.Clone()
}

// Next returns a copy of the lookahead shape.
func (p *Player) Next() Shape {
	return p.next.Clone()
}

// Score returns the current score.
func (p *Player) Score() int {
	return p.score
}

// Stats returns the running counters.
func (p *Player) Stats() Stats {
	return p.stats
}

// Spawned returns how many pieces of kind have been spawned.
func (p *Player) Spawned(kind Kind) int {
	n, _ := p.spawns.Get(kind)
	return n
}

// SpawnCounts returns the spawn count of every kind, in Kinds order.
func (p *Player) SpawnCounts() [KindCount]int {
	var out [KindCount]int
	for i, k := range Kinds {
		out[i] = p.Spawned(k)
	}
	return out
}

// IsCPU reports whether the player is driven by a planner.
func (p *Player) IsCPU() bool {
	return p.planner != nil
}

// DropInterval returns the fall interval currently in effect.
func (p *Player) DropInterval() time.Duration {
	return p.dropInterval
}

// SetDropIntervals replaces the slow and fast fall intervals, keeping the
// current fast-drop toggle.
func (p *Player) SetDropIntervals(slow, fast time.Duration) {
	if slow > 0 {
		p.dropSlow = slow
	}
	if fast > 0 {
		p.dropFast = fast
	}
	p.SetFastDrop(p.fast)
}

// SetFastDrop switches between the slow and fast fall interval.
func (p *Player) SetFastDrop(on bool) {
	p.fast = on
	if on {
		p.dropInterval = p.dropFast
	} else {
		p.dropInterval = p.dropSlow
	}
}

// FastDrop reports whether the fast interval is active.
func (p *Player) FastDrop() bool {
	return p.fast
}

// Spawn promotes the lookahead piece, draws a new lookahead and centers the
// piece on the top row. If the fresh piece already collides the board has
// topped out: it is cleared and the score reset.
func (p *Player) Spawn() {
	shape := p.next
	if shape == nil {
		shape = NewShape(RandomKind(p.rng))
	}
	p.next = NewShape(RandomKind(p.rng))

	p.current = Piece{
		Shape: shape,
		Pos: Position{
			Col: p.grid.Width()/2 - shape.Width()/2,
			Row: 0,
		},
	}
	kind := shape.Kind()
	n, _ := p.spawns.Get(kind)
	p.spawns.Put(kind, n+1)

	if p.grid.Collides(p.current.Shape, p.current.Pos) {
		p.topOut()
	}
}

func (p *Player) topOut() {
	final := p.score
	p.stats.TopOuts++
	p.grid.Clear()
	p.score = 0
	if p.onTopOut != nil {
		p.onTopOut(final)
	}
	p.notify()
}

func (p *Player) notify() {
	if p.onScore != nil {
		p.onScore(p.score)
	}
}

// Move shifts the piece one column left (-1) or right (+1). A blocked move
// does nothing.
func (p *Player) Move(dir int) {
	p.current.Pos.Col += dir
	if p.grid.Collides(p.current.Shape, p.current.Pos) {
		p.current.Pos.Col -= dir
	}
}

// Rotate turns the piece clockwise (+1) or counter-clockwise (-1). If no
// kick offset fits, the piece is left exactly as it was.
func (p *Player) Rotate(dir int) bool {
	return rotate(p.grid, &p.current, dir)
}

// Drop moves the piece down one row, locking it if it cannot fall.
// It returns true when the piece locked.
func (p *Player) Drop() bool {
	defer func() { p.dropCounter = 0 }()

	p.current.Pos.Row++
	if !p.grid.Collides(p.current.Shape, p.current.Pos) {
		return false
	}
	p.current.Pos.Row--
	p.lock()
	return true
}

// HardDrop drops the piece straight to its landing row and locks it.
func (p *Player) HardDrop() {
	for !p.Drop() {
	}
}

// lock merges the piece, sweeps rows, scores and spawns the next piece.
func (p *Player) lock() {
	p.grid.Merge(p.current.Shape, p.current.Pos)
	lines, gained := p.grid.sweep()

	p.stats.Pieces++
	p.stats.Lines += lines
	if gained > 0 {
		p.score += gained
		p.notify()
	}
	p.Spawn()
}

// GhostRow returns the row the piece would land on if dropped now.
func (p *Player) GhostRow() int {
	return landingRow(p.grid, p.current.Shape, p.current.Pos)
}

// Update advances the player by elapsed time. Human players fall one row
// whenever the accumulated time exceeds the drop interval; computer
// players place a piece on every call.
func (p *Player) Update(elapsed time.Duration) {
	if p.planner != nil {
		p.PerformBestMove()
		return
	}
	p.dropCounter += elapsed
	if p.dropCounter > p.dropInterval {
		p.Drop()
	}
}

// PerformBestMove asks the planner for the best placement and locks the
// piece there. Without a fitting candidate the piece is dropped where it
// is.
func (p *Player) PerformBestMove() {
	planner := p.planner
	if planner == nil {
		planner = NewPlanner(nil)
	}
	best, ok := planner.Best(p.grid, p.current)
	if !ok {
		p.HardDrop()
		return
	}
	p.current.Shape = best.Shape
	p.current.Pos = best.Pos
	p.dropCounter = 0
	p.lock()
}
