package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickRateOrDefault returns TickRate, falling back to 60 when unset.
func (c RuntimeConfig) TickRateOrDefault() int {
	if c.TickRate <= 0 {
		return 60
	}
	return c.TickRate
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Score of the local (first) player
	Lines    int  // Lines cleared by the local player
	GameOver bool // Whether the session has ended and the score is final
	Paused   bool // Whether the game is paused
}

// ScoreResult is a final score produced during a tick, for example when a
// player's board tops out. The platform stores each one as a high score.
type ScoreResult struct {
	Player PlayerID
	Score  int
	Lines  int
}

// SeatSummary holds one seat's totals for a whole session.
type SeatSummary struct {
	Player  PlayerID
	CPU     bool
	Score   int // score on the board when the session ended
	Lines   int
	Pieces  int
	TopOuts int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Results []ScoreResult // scores that became final during this tick
}
