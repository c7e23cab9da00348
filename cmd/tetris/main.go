// tetris is a falling-block game for the terminal, played solo, against a
// CPU opponent or two players on one keyboard.
//
// Usage:
//
//	tetris list              - List available modes
//	tetris play [mode]       - Play a mode (default: tetris)
//	tetris menu              - Start menu to pick modes interactively
//	tetris serve             - Start SSH server for remote play
//	tetris scores [mode]     - Show high scores and session stats
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tetris/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: warn)
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `A falling-block game for the terminal with solo, versus CPU,
two player and demo modes.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and session stats

Examples:
  tetris list
  tetris play
  tetris play tetris_cpu --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris scores tetris`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// logLevel parses --log-level, falling back to warn.
func logLevel() log.Level {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using warn\n", flagLogLevel)
		return log.WarnLevel
	}
	return level
}

// newLogger creates the CLI logger. Without --log-file it writes to stderr.
// The returned closer must be called before exit.
func newLogger(prefix string) (*log.Logger, io.Closer) {
	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			out = f
			closer = f
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel(),
	})
	return logger, closer
}

// gameLogger returns the logger handed to games while the terminal UI runs.
// Logs only go to a file; stderr would draw over the game.
func gameLogger() (*log.Logger, io.Closer) {
	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	return newLogger("tetris")
}

// applyGameFlags hands CLI settings to the tetris package before a session
// is created.
func applyGameFlags(logger *log.Logger) {
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
	tetris.SetLogger(logger)
}
