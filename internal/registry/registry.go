// Package registry keeps the table of playable modes.
// Each mode registers a factory in init(), so the front end can list and
// start modes without importing them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is what the front end drives once per tick.
// Implementations hold no terminal state; the platform maps keys to
// actions, owns the clock and paints the screen buffer.
type Game interface {
	// ID is the stable mode identifier used by the CLI and score storage.
	ID() string

	// Title is the name shown in menus.
	Title() string

	// Reset starts a fresh session with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the session by one fixed tick using player 1's input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the session into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, cleared lines, pause and game-over flags.
	State() core.GameState
}

// MultiPlayerGame is a Game that seats two players on one keyboard.
// The platform calls StepMulti instead of Step for these.
type MultiPlayerGame interface {
	Game

	StepMulti(in core.MultiInputFrame) core.StepResult
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID     string
	Title  string
	Humans int  // local players sharing the keyboard
	Scored bool // whether results go to the high score table
}

// Factory creates a new, unstarted session of a mode.
type Factory func() Game

// SessionReporter is implemented by modes that keep per-seat totals.
// The platform stores the summary when the session ends.
type SessionReporter interface {
	Summary() []core.SeatSummary
}

// Seater is implemented by modes that seat more than one human player.
type Seater interface {
	HumanSeats() int
}

// Resizer is implemented by modes that can follow a terminal resize
// without starting over.
type Resizer interface {
	Resize(width, height int)
}

// Scorer is implemented by modes whose results go to the high score table.
type Scorer interface {
	Scored() bool
}

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a mode factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title(), Humans: 1, Scored: true}
	if s, ok := g.(Seater); ok {
		info.Humans = s.HumanSeats()
	}
	if s, ok := g.(Scorer); ok {
		info.Scored = s.Scored()
	}
	infos[id] = info
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns the metadata for one mode.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a mode by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists reports whether a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
