package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: tetris).

Modes:
  tetris       - Solo, the session ends when the stack tops out
  tetris_cpu   - You against a CPU opponent, endless
  tetris_duo   - Two players on one keyboard, endless
  tetris_demo  - CPU against CPU

Controls:
  Left/Right, A/D  - Move
  Up/X/W           - Rotate clockwise
  Z                - Rotate counter-clockwise
  Down/S           - Soft drop (held while the key repeats)
  Space            - Hard drop
  P/Esc            - Pause
  B                - Back (while paused or after game over)
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Two player controls:
  Player 1: A/D move, Q/E rotate, S soft drop, W hard drop
  Player 2: H/K move, Y/I rotate, J soft drop, U hard drop
  Ctrl+C quits.

Difficulty options:
  easy   - Slower gravity and a slower CPU, speeds up with score
  normal - Default gravity, speeds up with score
  hard   - Starts faster with a quicker CPU
  fixed  - No speed-up

Examples:
  tetris play
  tetris play tetris_cpu --difficulty hard
  tetris play tetris_duo
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// validateDifficulty exits when --difficulty names an unknown preset.
func validateDifficulty() {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (want easy, normal, hard or fixed)\n", flagDifficulty)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}
	validateDifficulty()

	logger, closer := gameLogger()
	defer closer.Close()
	applyGameFlags(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// The game still works without storage
	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig(), logger)

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("could not close scores database", "error", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
