package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/storage"
)

var (
	flagHistoryLimit  int
	flagHistoryPlayer string
	flagClearHistory  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rounds and statistics",
	Long: `Display recently finished rounds and overall statistics.

Every finished round is recorded, including rounds that did not make
the leaderboard and rounds ended early.

Examples:
  bubblepop history
  bubblepop history --player ann
  bubblepop history --limit 50`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of rounds to show")
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only show rounds by this player")
	historyCmd.Flags().BoolVar(&flagClearHistory, "clear", false, "Remove all recorded rounds")
}

func runHistory(_ *cobra.Command, _ []string) {
	a, err := openApp(true)
	if err != nil {
		fatal("opening scores database: %v", err)
	}
	defer a.Close()

	if flagClearHistory {
		if err := a.store.ClearRounds(); err != nil {
			a.Close()
			fatal("clearing history: %v", err)
		}
		fmt.Println("History cleared.")
		return
	}

	var rounds []storage.RoundRecord
	if flagHistoryPlayer != "" {
		rounds, err = a.store.PlayerRounds(flagHistoryPlayer, flagHistoryLimit)
	} else {
		rounds, err = a.store.RecentRounds(flagHistoryLimit)
	}
	if err != nil {
		a.Close()
		fatal("retrieving rounds: %v", err)
	}

	fmt.Println("Recent Rounds - Bubble Pop")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-16s  %6s  %4s  %6s  %s\n", "Date", "Player", "Score", "Pops", "Streak", "Length")
	fmt.Printf("  %-16s  %-16s  %6s  %4s  %6s  %s\n", "----", "------", "-----", "----", "------", "------")

	for _, r := range rounds {
		length := fmt.Sprintf("%ds", r.Duration)
		if r.EndedEarly {
			length += " (ended early)"
		}
		fmt.Printf("  %-16s  %-16s  %6d  %4d  %6d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.PlayerName, r.Score, r.Pops, r.BestStreak, length)
	}

	stats, err := a.store.GetStats()
	if err != nil {
		a.logger.Warn("cannot load statistics", "error", err)
		return
	}

	fmt.Println()
	fmt.Printf("Rounds played: %d\n", stats.RoundsCount)
	fmt.Printf("Best:          %d\n", stats.HighScore)
	fmt.Printf("Average:       %.1f\n", stats.AvgScore)
	fmt.Printf("Total pops:    %d\n", stats.TotalPops)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played:   %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
