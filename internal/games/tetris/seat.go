package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// seat is one board and whoever controls it.
type seat struct {
	id     core.PlayerID
	cpu    bool
	player *engine.Player

	slow          time.Duration // slow interval last pushed to the player
	softDropUntil time.Duration // game clock at which a held soft drop lapses
	cpuTimer      time.Duration
	roundLines    int // stats.Lines at the start of the current round
	seenLines     int // stats.Lines at the last score change
}

func (g *Game) newSeat(id core.PlayerID, cpu bool, seed int64, planner *engine.Planner) *seat {
	s := &seat{id: id, cpu: cpu, slow: g.cfg.Timing.DropSlow()}

	opts := engine.PlayerOptions{
		DropSlow: g.cfg.Timing.DropSlow(),
		DropFast: g.cfg.Timing.DropFast(),
		OnScore:  func(score int) { g.onScore(s, score) },
		OnTopOut: func(final int) { g.onTopOut(s, final) },
	}
	if cpu {
		opts.Planner = planner
	}

	grid := engine.NewGrid(g.cfg.Arena.Width, g.cfg.Arena.Height)
	s.player = engine.NewPlayer(grid, rand.New(rand.NewSource(seed)), opts)
	return s
}
