package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/platform/tui"
)

var (
	flagInteractive bool
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard, best score first.

Examples:
  bubblepop scores
  bubblepop scores -i        # Browse scores and recent rounds
  bubblepop scores --clear   # Empty the leaderboard`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table view")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Remove all leaderboard entries")
}

func runScores(_ *cobra.Command, _ []string) {
	a, err := openApp(true)
	if err != nil {
		fatal("opening scores database: %v", err)
	}
	defer a.Close()

	if flagClearScores {
		if err := a.board.Clear(); err != nil {
			a.Close()
			fatal("clearing leaderboard: %v", err)
		}
		fmt.Println("Leaderboard cleared.")
		return
	}

	if flagInteractive {
		term := terminalConfig()
		if err := tui.RunScoreboard(a.board, a.historySource(), term.ScreenW, term.ScreenH); err != nil {
			a.Close()
			fatal("running scoreboard: %v", err)
		}
		return
	}

	entries := a.board.Entries()

	fmt.Println("High Scores - Bubble Pop")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubblepop play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Score")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "-----")

	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %d\n", i+1, e.Name, e.Score)
	}
}
