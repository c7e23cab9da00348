package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// SeatSnapshot captures one board.
type SeatSnapshot struct {
	Player   core.PlayerID
	CPU      bool
	Cells    [][]engine.Kind
	Piece    engine.Piece
	Next     engine.Kind
	GhostRow int
	Score    int
	Stats    engine.Stats
	Spawns   [engine.KindCount]int // indexed like engine.Kinds
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick  uint64
	Mode  string
	State GameStateType
	Seats []SeatSnapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	seats := make([]SeatSnapshot, 0, len(g.seats))
	for _, s := range g.seats {
		p := s.player
		seats = append(seats, SeatSnapshot{
			Player:   s.id,
			CPU:      s.cpu,
			Cells:    p.Grid().Cells(),
			Piece:    p.Piece(),
			Next:     p.Next().Kind(),
			GhostRow: p.GhostRow(),
			Score:    p.Score(),
			Stats:    p.Stats(),
			Spawns:   p.SpawnCounts(),
		})
	}

	return Snapshot{
		Tick:  g.tick,
		Mode:  string(g.mode),
		State: state,
		Seats: seats,
	}
}
