// bubblepop is a timed bubble-popping arcade game for the terminal.
//
// Usage:
//
//	bubblepop play             - Play in this terminal
//	bubblepop scores           - Show the leaderboard
//	bubblepop history          - Show recent rounds and statistics
//	bubblepop settings         - Show or change round settings
//	bubblepop serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Custom YAML configuration
//	--db <path>         - Database path (default: ~/.bubblepop/bubblepop.db)
//	--seed <value>      - RNG seed for reproducible bubble layouts
//	--difficulty <name> - Preset: easy, normal, hard
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagSeed       int64
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubblepop",
	Short: "Bubble Pop - a timed bubble-popping game for your terminal",
	Long: `Bubble Pop fills the screen with colored bubbles. Pop as many as you
can before the clock runs out. Popping the same color in a row builds
a combo that multiplies your points.

Available commands:
  play      - Play a round in this terminal
  scores    - View the leaderboard
  history   - View recent rounds and statistics
  settings  - Show, change or save round settings
  serve     - Start SSH server for remote play

Examples:
  bubblepop play
  bubblepop play --name ann --difficulty hard
  bubblepop scores
  bubblepop settings set --duration 30 --max-bubbles 8
  bubblepop serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}
