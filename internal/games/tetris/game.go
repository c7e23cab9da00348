// Package tetris hosts the falling-block modes: solo, player versus CPU,
// two players on one keyboard and a CPU-only demo. The rules live in the
// engine subpackage; this package maps input to engine calls, runs the
// clock, applies difficulty and draws the arenas.
package tetris

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects who sits at each board.
type Mode string

const (
	ModeSolo      Mode = "solo"
	ModeVersusCPU Mode = "versus_cpu"
	ModeDuo       Mode = "duo"
	ModeDemo      Mode = "demo"
)

// modeInfo lists the registered modes in menu order.
var modeInfo = []struct {
	id    string
	title string
	mode  Mode
	seats []bool // true marks a CPU seat
}{
	{"tetris", "Tetris", ModeSolo, []bool{false}},
	{"tetris_cpu", "Tetris vs CPU", ModeVersusCPU, []bool{false, true}},
	{"tetris_duo", "Tetris Duo", ModeDuo, []bool{false, false}},
	{"tetris_demo", "Tetris Demo (CPU vs CPU)", ModeDemo, []bool{true, true}},
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by new sessions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game runs one tetris session of a given mode.
type Game struct {
	id    string
	title string
	mode  Mode
	cpu   []bool

	cfg        config.TetrisConfig
	cfgFixed   bool
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	log        *log.Logger

	tickDur time.Duration
	tick    uint64
	clock   time.Duration

	seats    []*seat
	pending  []core.ScoreResult
	final    core.ScoreResult
	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a game for the given mode. Unknown modes fall back to solo.
func New(mode Mode) *Game {
	g := &Game{}
	info := modeInfo[0]
	for _, m := range modeInfo {
		if m.mode == mode {
			info = m
			break
		}
	}
	g.id, g.title, g.mode, g.cpu = info.id, info.title, info.mode, info.seats
	return g
}

// NewWithConfig creates a game that ignores config files and presets.
func NewWithConfig(mode Mode, cfg config.TetrisConfig) *Game {
	g := New(mode)
	g.cfg = cfg
	g.cfgFixed = true
	return g
}

func init() {
	for _, m := range modeInfo {
		mode := m.mode
		registry.Register(m.id, func() registry.Game {
			return New(mode)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Mode returns the seating mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// HumanSeats returns how many keyboard players the mode seats.
func (g *Game) HumanSeats() int {
	n := 0
	for _, cpu := range g.cpu {
		if !cpu {
			n++
		}
	}
	return n
}

// Scored reports whether results belong in the high score table.
// The demo has no human player.
func (g *Game) Scored() bool {
	return g.HumanSeats() > 0
}

// Reset starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.log = logger.With("mode", g.id)

	if !g.cfgFixed {
		cfg, err := config.LoadTetris(configPath)
		if err != nil {
			g.log.Warn("using default config", "err", err)
			cfg = config.DefaultTetrisConfig()
		}
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.runtime = runtime
	g.tickDur = time.Second / time.Duration(runtime.TickRateOrDefault())
	g.tick = 0
	g.clock = 0
	g.pending = nil
	g.final = core.ScoreResult{}
	g.gameOver = false
	g.paused = false

	planner := engine.NewPlanner(policyFor(g.cfg.Autoplay))
	g.seats = g.seats[:0]
	for i, cpu := range g.cpu {
		g.seats = append(g.seats, g.newSeat(core.PlayerID(i+1), cpu, runtime.Seed+int64(i), planner))
	}

	g.checkScreenSize()
	g.log.Debug("session started", "seed", runtime.Seed, "arena", g.cfg.Arena, "policy", g.cfg.Autoplay.Policy)
}

// policyFor builds the autoplay policy named in the config.
func policyFor(cfg config.AutoplayConfig) engine.Policy {
	if cfg.Policy == config.PolicySimple {
		return engine.SimplePolicy{}
	}
	return engine.WeightedPolicy{Weights: engine.Weights{
		Lines:     cfg.Weights.Lines,
		Height:    cfg.Weights.Height,
		Holes:     cfg.Weights.Holes,
		Bumpiness: cfg.Weights.Bumpiness,
	}}
}

// checkScreenSize checks if the screen is large enough for every arena.
func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.runtime.ScreenW < w || g.runtime.ScreenH < h
}

// Resize follows a terminal resize. A window that no longer fits every
// arena pauses the session until it grows back.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick with player 1's input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	multi := core.NewMultiInputFrame()
	multi.ByPlayer[core.Player1] = in
	return g.StepMulti(multi)
}

// StepMulti advances the game by one tick with input from every seat.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.tick++
	g.pending = nil

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Player1().Has(core.ActionPause) || in.Player2().Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.clock += g.tickDur
	for _, s := range g.seats {
		g.applyDifficulty(s)
		if s.cpu {
			g.updateCPU(s)
		} else {
			g.updateHuman(s, in.Player(s.id))
		}
		if g.gameOver {
			break
		}
	}

	return core.StepResult{State: g.State(), Results: g.pending}
}

// applyDifficulty shortens the seat's gravity as its score grows.
func (g *Game) applyDifficulty(s *seat) {
	slow := g.difficulty.DropInterval(g.cfg.Timing.DropSlow(), s.player.Score(), int(g.tick))
	if slow != s.slow {
		s.player.SetDropIntervals(slow, g.cfg.Timing.DropFast())
		s.slow = slow
	}
}

// updateHuman applies one tick of keyboard input, then gravity.
func (g *Game) updateHuman(s *seat, in core.InputFrame) {
	p := s.player

	for range in.Count(core.ActionLeft) {
		p.Move(-1)
	}
	for range in.Count(core.ActionRight) {
		p.Move(1)
	}
	for range in.Count(core.ActionRotateCCW) {
		p.Rotate(-1)
	}
	for range in.Count(core.ActionRotateCW) {
		p.Rotate(1)
	}
	if in.Has(core.ActionHardDrop) {
		p.HardDrop()
		if g.gameOver {
			return
		}
	}

	// Terminals report key repeats but no key release, so soft drop stays
	// held until repeats stop arriving.
	if in.Has(core.ActionSoftDrop) {
		s.softDropUntil = g.clock + g.cfg.Timing.SoftDropHold()
		if !p.FastDrop() {
			p.Drop()
			p.SetFastDrop(true)
			if g.gameOver {
				return
			}
		}
	} else if p.FastDrop() && g.clock >= s.softDropUntil {
		p.SetFastDrop(false)
	}

	p.Update(g.tickDur)
}

// updateCPU lets a computer seat place a piece once its move delay passed.
func (g *Game) updateCPU(s *seat) {
	s.cpuTimer += g.tickDur
	if s.cpuTimer < g.cfg.Timing.CPUMoveDelay() {
		return
	}
	s.cpuTimer = 0
	s.player.Update(g.tickDur)
}

// onScore logs clears of two or more rows.
func (g *Game) onScore(s *seat, score int) {
	lines := s.player.Stats().Lines
	if n := lines - s.seenLines; n >= 2 {
		g.log.Debug("multi-line clear", "player", s.id, "cpu", s.cpu, "lines", n, "score", score)
	}
	s.seenLines = lines
}

// onTopOut records a finished round. In solo mode it also ends the session.
func (g *Game) onTopOut(s *seat, final int) {
	stats := s.player.Stats()
	lines := stats.Lines - s.roundLines
	s.roundLines = stats.Lines

	g.log.Debug("top out", "player", s.id, "cpu", s.cpu, "score", final, "lines", lines, "top_outs", stats.TopOuts)

	result := core.ScoreResult{Player: s.id, Score: final, Lines: lines}
	if !s.cpu {
		g.pending = append(g.pending, result)
	}
	if g.mode == ModeSolo {
		g.final = result
		g.gameOver = true
	}
}

// State returns the state of the first seat.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
	switch {
	case g.gameOver:
		st.Score, st.Lines = g.final.Score, g.final.Lines
	case len(g.seats) > 0:
		s := g.seats[0]
		st.Score = s.player.Score()
		st.Lines = s.player.Stats().Lines - s.roundLines
	}
	return st
}

// Summary returns per-seat totals for the session so far.
func (g *Game) Summary() []core.SeatSummary {
	out := make([]core.SeatSummary, 0, len(g.seats))
	for _, s := range g.seats {
		stats := s.player.Stats()
		score := s.player.Score()
		if g.gameOver && s.id == g.final.Player {
			score = g.final.Score
		}
		out = append(out, core.SeatSummary{
			Player:  s.id,
			CPU:     s.cpu,
			Score:   score,
			Lines:   stats.Lines,
			Pieces:  stats.Pieces,
			TopOuts: stats.TopOuts,
		})
	}
	return out
}
