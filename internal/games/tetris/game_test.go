package tetris

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// testConfig is the default config with progression off, so gravity stays
// at the base interval.
func testConfig() config.TetrisConfig {
	cfg := config.DefaultTetrisConfig()
	cfg.Difficulty.Enabled = false
	return cfg
}

// newTestGame starts a session at 10 ticks per second (100ms per tick).
func newTestGame(t *testing.T, mode Mode, cfg config.TetrisConfig) *Game {
	t.Helper()
	g := NewWithConfig(mode, cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 42})
	require.False(t, g.State().Paused, "test screen must fit the layout")
	return g
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestModesRegistered(t *testing.T) {
	tests := []struct {
		id     string
		humans int
		scored bool
	}{
		{"tetris", 1, true},
		{"tetris_cpu", 1, true},
		{"tetris_duo", 2, true},
		{"tetris_demo", 0, false},
	}
	for _, tt := range tests {
		info, ok := registry.Info(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.humans, info.Humans, tt.id)
		assert.Equal(t, tt.scored, info.Scored, tt.id)

		g, err := registry.Create(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.id, g.ID())
		_, multi := g.(registry.MultiPlayerGame)
		assert.True(t, multi)
	}
}

func TestMoveInput(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())
	start := g.seats[0].player.Piece().Pos.Col

	g.Step(input(core.ActionLeft, core.ActionLeft))

	assert.Equal(t, start-2, g.seats[0].player.Piece().Pos.Col)
}

func TestGravityFollowsTickClock(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, 0, g.seats[0].player.Piece().Pos.Row, "1000ms must be exceeded")

	g.Step(core.NewInputFrame())
	assert.Equal(t, 1, g.seats[0].player.Piece().Pos.Row)
}

func TestSoftDropHeldUntilRepeatsStop(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())
	p := g.seats[0].player

	g.Step(input(core.ActionSoftDrop))
	assert.True(t, p.FastDrop())
	assert.Positive(t, p.Piece().Pos.Row)

	for i := 0; i < 3; i++ {
		g.Step(core.NewInputFrame())
		assert.True(t, p.FastDrop(), "tick %d is inside the hold window", i)
	}

	g.Step(core.NewInputFrame())
	assert.False(t, p.FastDrop())
	assert.Equal(t, config.DefaultTetrisConfig().Timing.DropSlow(), p.DropInterval())
}

func TestHardDropClearsLine(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())
	p := g.seats[0].player
	grid := p.Grid()

	// Fill the floor everywhere the falling piece will not land.
	piece := p.Piece()
	ghost := p.GhostRow()
	covered := map[int]bool{}
	eachCell(piece.Shape, engine.Position{Col: piece.Pos.Col, Row: ghost}, func(col, row int, _ engine.Kind) {
		if row == grid.Height()-1 {
			covered[col] = true
		}
	})
	for col := 0; col < grid.Width(); col++ {
		if !covered[col] {
			grid.Set(col, grid.Height()-1, engine.KindT)
		}
	}

	res := g.Step(input(core.ActionHardDrop))

	assert.Equal(t, 10, res.State.Score)
	assert.Equal(t, 1, res.State.Lines)
	assert.Empty(t, res.Results)
	assert.False(t, res.State.GameOver)
}

func TestSoloTopOutEndsSession(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())

	var results []core.ScoreResult
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		res := g.Step(input(core.ActionHardDrop))
		results = append(results, res.Results...)
	}

	require.True(t, g.State().GameOver)
	require.Len(t, results, 1)
	assert.Equal(t, core.Player1, results[0].Player)
	assert.Equal(t, StateGameOver, g.Snapshot().State)

	// Further ticks do nothing until the platform resets.
	before := g.Snapshot()
	g.Step(input(core.ActionHardDrop))
	after := g.Snapshot()
	assert.Equal(t, before.Seats, after.Seats)

	summary := g.Summary()
	require.Len(t, summary, 1)
	assert.Equal(t, 1, summary[0].TopOuts)
	assert.Positive(t, summary[0].Pieces)
}

func TestVersusTopOutIsEndless(t *testing.T) {
	g := newTestGame(t, ModeVersusCPU, testConfig())

	var results []core.ScoreResult
	for i := 0; i < 200; i++ {
		res := g.Step(input(core.ActionHardDrop))
		results = append(results, res.Results...)
	}

	assert.False(t, g.State().GameOver)
	assert.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, core.Player1, r.Player, "CPU rounds are not scored")
	}
	assert.Equal(t, len(results), g.Summary()[0].TopOuts)
}

func TestCPUMoveDelay(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.CPUMoveDelayMs = 250
	g := newTestGame(t, ModeVersusCPU, cfg)

	for i := 0; i < 9; i++ {
		g.Step(core.NewInputFrame())
	}

	summary := g.Summary()
	require.Len(t, summary, 2)
	assert.False(t, summary[0].CPU)
	assert.True(t, summary[1].CPU)
	assert.Equal(t, 3, summary[1].Pieces)
	assert.Equal(t, 0, summary[0].Pieces)
}

func TestDuoRoutesInputPerPlayer(t *testing.T) {
	g := newTestGame(t, ModeDuo, testConfig())
	c1 := g.seats[0].player.Piece().Pos.Col
	c2 := g.seats[1].player.Piece().Pos.Col

	in := core.NewMultiInputFrame()
	in.Set(core.Player1, core.ActionLeft)
	in.Set(core.Player2, core.ActionRight)
	g.StepMulti(in)

	assert.Equal(t, c1-1, g.seats[0].player.Piece().Pos.Col)
	assert.Equal(t, c2+1, g.seats[1].player.Piece().Pos.Col)
}

func TestDemoIsDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.CPUMoveDelayMs = 0

	a := newTestGame(t, ModeDemo, cfg)
	b := newTestGame(t, ModeDemo, cfg)
	for i := 0; i < 150; i++ {
		a.Step(core.NewInputFrame())
		b.Step(core.NewInputFrame())
	}

	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.Equal(t, 150, a.Summary()[0].Pieces)
	assert.Positive(t, a.Summary()[0].Lines, "the planner should clear rows")
}

func TestPauseStopsTheClock(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())

	res := g.Step(input(core.ActionPause))
	require.True(t, res.State.Paused)

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, 0, g.seats[0].player.Piece().Pos.Row)
	assert.Equal(t, StatePaused, g.Snapshot().State)

	res = g.Step(input(core.ActionPause))
	assert.False(t, res.State.Paused)
}

func TestDifficultyShortensGravity(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Difficulty = config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: "time", MaxAt: 10},
		Scaling:     config.ScalingConfig{SpeedMultiplier: 1, MinDropMs: 100},
	}
	g := newTestGame(t, ModeSolo, cfg)

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}

	assert.Equal(t, 500*time.Millisecond, g.seats[0].player.DropInterval())
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, engine.SimplePolicy{}, policyFor(config.AutoplayConfig{Policy: config.PolicySimple}))

	weighted := policyFor(config.DefaultTetrisConfig().Autoplay)
	assert.Equal(t, engine.WeightedPolicy{Weights: engine.DefaultWeights}, weighted)
}

func TestTooSmallScreen(t *testing.T) {
	g := NewWithConfig(ModeVersusCPU, testConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 24, TickRate: 10, Seed: 1})

	assert.True(t, g.State().Paused)
	assert.Equal(t, StatePausedSmall, g.Snapshot().State)

	screen := core.NewScreen(40, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
	assert.Contains(t, screen.String(), "Need 78x24")
}

func TestResizeKeepsBoards(t *testing.T) {
	g := newTestGame(t, ModeVersusCPU, testConfig())
	g.StepMulti(core.NewMultiInputFrame())
	pieces := g.seats[0].player.Stats().Pieces

	g.Resize(40, 24)
	assert.True(t, g.State().Paused)

	g.Resize(100, 30)
	assert.False(t, g.State().Paused)
	assert.Equal(t, pieces, g.seats[0].player.Stats().Pieces)
}

func TestRenderSolo(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Tetris")
	assert.Contains(t, out, "NEXT")
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "1000ms")
	assert.Contains(t, out, string(BlockGlyph))
	assert.Contains(t, out, string(GhostGlyph))

	kind := g.seats[0].player.Piece().Kind()
	found := false
	for y := 0; y < screen.Height() && !found; y++ {
		for x := 0; x < screen.Width(); x++ {
			if c := screen.GetCell(x, y); c.Rune == BlockGlyph && c.Color == KindColor(kind) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "falling piece drawn in its kind color")
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(input(core.ActionHardDrop))
	}
	require.True(t, g.State().GameOver)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	assert.Contains(t, screen.String(), "GAME OVER")
	assert.True(t, strings.Contains(screen.String(), "Press R to restart"))
}

func TestRenderVersusLabels(t *testing.T) {
	g := newTestGame(t, ModeVersusCPU, testConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	assert.Contains(t, screen.String(), "PLAYER")
	assert.Contains(t, screen.String(), "CPU")
}

// cellText reads n runes of screen starting at (x, y).
func cellText(screen *core.Screen, x, y, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(screen.GetCell(x+i, y).Rune)
	}
	return b.String()
}

func TestRenderSpawnTable(t *testing.T) {
	g := newTestGame(t, ModeSolo, testConfig())
	for i := 0; i < 3; i++ {
		g.Step(input(core.ActionHardDrop))
	}
	require.False(t, g.State().GameOver)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hx, hy := -1, -1
	for y := 0; y < screen.Height() && hx < 0; y++ {
		for x := 0; x+6 <= screen.Width(); x++ {
			if cellText(screen, x, y, 6) == "SPAWNS" {
				hx, hy = x, y
				break
			}
		}
	}
	require.GreaterOrEqual(t, hx, 0, "spawn table header drawn")

	p := g.seats[0].player
	for i, k := range engine.Kinds {
		x, y := hx+(i%2)*6, hy+1+i/2
		cell := screen.GetCell(x, y)
		assert.Equal(t, []rune(k.String())[0], cell.Rune, "kind %s", k)
		assert.Equal(t, KindColor(k), cell.Color, "kind %s", k)
		assert.Equal(t, strconv.Itoa(p.Spawned(k)), strings.TrimSpace(cellText(screen, x+1, y, 4)), "kind %s", k)
	}
	assert.Equal(t, p.SpawnCounts(), g.Snapshot().Seats[0].Spawns)
}
