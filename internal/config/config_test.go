package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrisConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("tetris"), &cfg))

	assert.Equal(t, DefaultTetrisConfig(), cfg)
	assert.Nil(t, GetDefaultYAML("flappy"))
}

func TestLoadTetrisFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadTetris("")

	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisPartialOverride(t *testing.T) {
	path := writeConfig(t, "arena:\n  width: 10\ntiming:\n  drop_fast_ms: 30\n")

	cfg, err := LoadTetris(path)

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Arena.Width)
	assert.Equal(t, 20, cfg.Arena.Height, "unset keys keep their defaults")
	assert.Equal(t, 30*time.Millisecond, cfg.Timing.DropFast())
	assert.Equal(t, time.Second, cfg.Timing.DropSlow())
}

func TestLoadTetrisNormalizesBadValues(t *testing.T) {
	path := writeConfig(t, `
arena:
  width: 2
timing:
  drop_slow_ms: 0
  cpu_move_delay_ms: -5
autoplay:
  policy: genetic
`)

	cfg, err := LoadTetris(path)

	require.NoError(t, err)
	def := DefaultTetrisConfig()
	assert.Equal(t, def.Arena.Width, cfg.Arena.Width)
	assert.Equal(t, def.Timing.DropSlowMs, cfg.Timing.DropSlowMs)
	assert.Equal(t, def.Timing.CPUMoveDelayMs, cfg.Timing.CPUMoveDelayMs)
	assert.Equal(t, PolicyWeighted, cfg.Autoplay.Policy)
}

func TestLoadTetrisErrors(t *testing.T) {
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := writeConfig(t, "arena: [unclosed")
	cfg, err := LoadTetris(bad)
	assert.ErrorContains(t, err, "failed to parse config")
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
		dropSlowMs   int
		cpuDelayMs   int
	}{
		{"", true, 0.0, 1000, 250},
		{DifficultyEasy, true, 0.0, 1500, 500},
		{DifficultyNormal, true, 0.3, 1000, 250},
		{DifficultyHard, true, 0.7, 1000, 125},
		{DifficultyFixed, false, 0.0, 1000, 250},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tt.preset)

			assert.Equal(t, tt.enabled, cfg.Difficulty.Enabled)
			assert.InDelta(t, tt.initialLevel, cfg.Difficulty.InitialLevel, 1e-9)
			assert.Equal(t, tt.dropSlowMs, cfg.Timing.DropSlowMs)
			assert.Equal(t, tt.cpuDelayMs, cfg.Timing.CPUMoveDelayMs)
		})
	}
}

func TestParsePreset(t *testing.T) {
	p, ok := ParsePreset("hard")
	assert.True(t, ok)
	assert.Equal(t, DifficultyHard, p)

	_, ok = ParsePreset("nightmare")
	assert.False(t, ok)

	p, ok = ParsePreset("")
	assert.True(t, ok)
	assert.Equal(t, DifficultyPreset(""), p)
}
