package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// GameModel is the Bubble Tea model that runs one mode.
// It routes keys to the seats, ticks the game and stores results.
type GameModel struct {
	game       registry.Game
	multi      registry.MultiPlayerGame // nil for single seat games
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	logger     *log.Logger
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	tickID     int64
	scored     bool
	started    time.Time
	embedded   bool // true when a SessionModel owns the program
	quitting   bool
	backToMenu bool

	// sessionSaved is shared between copies of the model so a session is
	// written once even though Bubble Tea passes the model by value.
	sessionSaved *bool
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:         game,
		screen:       core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:        store,
		config:       cfg,
		logger:       log.New(io.Discard),
		inputFrame:   core.NewMultiInputFrame(),
		tickID:       newTickLoop(),
		scored:       true,
		started:      time.Now(),
		sessionSaved: new(bool),
	}

	if mg, ok := game.(registry.MultiPlayerGame); ok {
		m.multi = mg
	}
	humans := 1
	if s, ok := game.(registry.Seater); ok {
		humans = s.HumanSeats()
	}
	m.keyMapper = NewKeyMapperFor(LayoutFor(humans))
	if s, ok := game.(registry.Scorer); ok {
		m.scored = s.Scored()
	}

	return m
}

// WithLogger returns a copy of the model that logs to l.
func (m GameModel) WithLogger(l *log.Logger) GameModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToMultiFrame(msg, &m.inputFrame) {
		m.saveSession()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only from the pause or game over screen
	p1 := m.inputFrame.Player1()
	if p1.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.saveSession()
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Modes that can adapt keep their boards; others start over.
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	p1 := m.inputFrame.Player1()
	if p1.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.tickID, m.config.TickRate)
	}

	var result core.StepResult
	if m.multi != nil {
		result = m.multi.StepMulti(m.inputFrame)
	} else {
		result = m.game.Step(p1)
	}
	m.gameState = result.State

	m.saveResults(result.Results)
	if m.gameState.GameOver {
		m.saveSession()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// restart starts a new session with a fresh seed.
func (m *GameModel) restart() {
	m.saveSession()

	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.started = time.Now()
	m.sessionSaved = new(bool)
	m.inputFrame.Clear()
}

// saveResults stores scores that became final this tick.
func (m *GameModel) saveResults(results []core.ScoreResult) {
	if m.store == nil || !m.scored {
		return
	}
	for _, r := range results {
		if r.Score <= 0 {
			continue
		}
		if _, err := m.store.SaveScoreWithLines(m.game.ID(), r.Score, r.Lines); err != nil {
			m.logger.Warn("could not save score", "game", m.game.ID(), "player", r.Player, "error", err)
		}
	}
}

// saveSession stores per-seat totals once per session.
// Sessions where no piece was placed are skipped.
func (m *GameModel) saveSession() {
	if *m.sessionSaved {
		return
	}
	*m.sessionSaved = true

	reporter, ok := m.game.(registry.SessionReporter)
	if !ok || m.store == nil || !m.scored {
		return
	}

	summary := reporter.Summary()
	played := false
	for _, s := range summary {
		if s.Pieces > 0 {
			played = true
		}
	}
	if !played {
		return
	}

	secs := int(time.Since(m.started).Seconds())
	for _, s := range summary {
		rec := storage.SessionRecord{
			GameID:   m.game.ID(),
			Player:   int(s.Player),
			CPU:      s.CPU,
			Score:    s.Score,
			Lines:    s.Lines,
			Pieces:   s.Pieces,
			TopOuts:  s.TopOuts,
			Duration: secs,
		}
		if _, err := m.store.SaveSession(rec); err != nil {
			m.logger.Warn("could not save session", "game", m.game.ID(), "error", err)
			return
		}
	}
	m.logger.Debug("session saved", "game", m.game.ID(), "seats", len(summary), "secs", secs)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg).WithLogger(logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
