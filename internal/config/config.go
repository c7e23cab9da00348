// Package config provides YAML-based configuration loading and
// difficulty management for the tetris modes.
package config

import "time"

// TetrisConfig contains all tunables for the tetris modes.
type TetrisConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Timing     TimingConfig     `yaml:"timing"`
	Autoplay   AutoplayConfig   `yaml:"autoplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig sets the grid size every player gets.
type ArenaConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig holds the gravity and input timings, in milliseconds.
type TimingConfig struct {
	DropSlowMs     int `yaml:"drop_slow_ms"`
	DropFastMs     int `yaml:"drop_fast_ms"`
	SoftDropHoldMs int `yaml:"soft_drop_hold_ms"` // how long a soft-drop key counts as held
	CPUMoveDelayMs int `yaml:"cpu_move_delay_ms"` // pause between CPU placements
}

// DropSlow returns the normal gravity interval.
func (t TimingConfig) DropSlow() time.Duration {
	return time.Duration(t.DropSlowMs) * time.Millisecond
}

// DropFast returns the soft-drop gravity interval.
func (t TimingConfig) DropFast() time.Duration {
	return time.Duration(t.DropFastMs) * time.Millisecond
}

// SoftDropHold returns how long a soft-drop key press is treated as held.
func (t TimingConfig) SoftDropHold() time.Duration {
	return time.Duration(t.SoftDropHoldMs) * time.Millisecond
}

// CPUMoveDelay returns the minimum time between CPU placements.
func (t TimingConfig) CPUMoveDelay() time.Duration {
	return time.Duration(t.CPUMoveDelayMs) * time.Millisecond
}

// AutoplayConfig selects the placement scoring used by CPU players.
type AutoplayConfig struct {
	Policy  string         `yaml:"policy"` // "weighted" or "simple"
	Weights AutoplayWeight `yaml:"weights"`
}

// AutoplayWeight holds the coefficients of the weighted policy.
type AutoplayWeight struct {
	Lines     int `yaml:"lines"`
	Height    int `yaml:"height"`
	Holes     int `yaml:"holes"`
	Bumpiness int `yaml:"bumpiness"`
}

// Autoplay policy names.
const (
	PolicyWeighted = "weighted"
	PolicySimple   = "simple"
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // gravity speed-up at max difficulty
	MinDropMs       int     `yaml:"min_drop_ms"`      // floor for the slow interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
// The empty string means "keep the file's settings".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
