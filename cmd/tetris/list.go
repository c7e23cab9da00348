package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows a list of all registered modes.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Players", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-------", "-----")

	for _, g := range games {
		players := fmt.Sprintf("%d", g.Humans)
		if !g.Scored {
			players += "*"
		}
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, g.ID, players, g.Title)
	}

	fmt.Println()
	fmt.Println("* not scored")
	fmt.Println("Run 'tetris play <id>' to play a mode.")
}
