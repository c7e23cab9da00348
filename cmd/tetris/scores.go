package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and session stats",
	Long: `Display the top high scores and recent sessions for a mode.
Without a mode, prints a summary of every mode that has been played.

Examples:
  tetris scores
  tetris scores tetris
  tetris scores tetris_cpu --limit 20
  tetris scores tetris --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and sessions of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return
	}

	if err := printMode(store, info); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

// printMode prints the score table, stats and recent sessions of one mode.
func printMode(store *storage.Store, info registry.GameInfo) error {
	scores, err := store.TopScores(info.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		if info.Scored {
			fmt.Printf("Play 'tetris play %s' to set the first high score!\n", info.ID)
		}
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Lines", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.Lines, dateStr)
	}

	stats, err := store.GetGameStats(info.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Average: %.0f  Games: %d  Best lines: %d\n",
		stats.HighScore, stats.AvgScore, stats.GamesCount, stats.BestLines)

	sessions, err := store.RecentSessions(info.ID, 5)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent sessions:")
	for _, s := range sessions {
		who := fmt.Sprintf("P%d", s.Player)
		if s.CPU {
			who = "CPU"
		}
		fmt.Printf("  %-16s  %-3s  score %-6d  lines %-4d  pieces %-4d  top outs %-3d  %ds\n",
			s.CreatedAt.Format("2006-01-02 15:04"), who, s.Score, s.Lines, s.Pieces, s.TopOuts, s.Duration)
	}
	return nil
}

// printSummary prints one line per played mode.
func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %-6s  %-8s  %-8s  %s\n", "Mode", "Games", "Best", "Lines", "Last played")
	fmt.Printf("  %-12s  %-6s  %-8s  %-8s  %s\n", "----", "-----", "----", "-----", "-----------")
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-6d  %-8d  %-8d  %s\n",
			g.ID, st.GamesCount, st.HighScore, st.TotalLines, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
