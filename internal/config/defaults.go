package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It matches the
// embedded YAML and is used when that fails to parse.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Arena: ArenaConfig{
			Width:  12,
			Height: 20,
		},
		Timing: TimingConfig{
			DropSlowMs:     1000,
			DropFastMs:     50,
			SoftDropHoldMs: 400,
			CPUMoveDelayMs: 250,
		},
		Autoplay: AutoplayConfig{
			Policy: PolicyWeighted,
			Weights: AutoplayWeight{
				Lines:     1000,
				Height:    40,
				Holes:     100,
				Bumpiness: 20,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
				MinDropMs:       100,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
