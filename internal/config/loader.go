package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads the tetris configuration.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may set only the keys it
// cares about. The result is validated; values that would stall the game
// are replaced by their defaults.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultTetrisConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	// Try user config directory, then the local configs directory.
	for _, path := range []string{userConfigPath("tetris.yaml"), filepath.Join("configs", "tetris.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultTetrisConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate.normalized(), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.normalized(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// normalized replaces unusable values with defaults.
func (c TetrisConfig) normalized() TetrisConfig {
	def := DefaultTetrisConfig()

	// The widest piece is 4 cells.
	if c.Arena.Width < 4 {
		c.Arena.Width = def.Arena.Width
	}
	if c.Arena.Height < 4 {
		c.Arena.Height = def.Arena.Height
	}
	if c.Timing.DropSlowMs <= 0 {
		c.Timing.DropSlowMs = def.Timing.DropSlowMs
	}
	if c.Timing.DropFastMs <= 0 {
		c.Timing.DropFastMs = def.Timing.DropFastMs
	}
	if c.Timing.SoftDropHoldMs < 0 {
		c.Timing.SoftDropHoldMs = def.Timing.SoftDropHoldMs
	}
	if c.Timing.CPUMoveDelayMs < 0 {
		c.Timing.CPUMoveDelayMs = def.Timing.CPUMoveDelayMs
	}
	switch c.Autoplay.Policy {
	case PolicyWeighted, PolicySimple:
	default:
		c.Autoplay.Policy = def.Autoplay.Policy
	}
	return c
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Easy games also fall slower to begin with.
	switch preset {
	case DifficultyEasy:
		cfg.Timing.DropSlowMs = cfg.Timing.DropSlowMs * 3 / 2
		cfg.Timing.CPUMoveDelayMs = cfg.Timing.CPUMoveDelayMs * 2
	case DifficultyHard:
		cfg.Timing.CPUMoveDelayMs = cfg.Timing.CPUMoveDelayMs / 2
	}
}
