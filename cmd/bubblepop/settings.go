package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/settings"
)

var (
	flagSetDuration   int
	flagSetMaxBubbles int
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change round settings",
	Long: `Show the saved round settings, or change them.

Valid ranges:
  duration     1-60 seconds
  max-bubbles  0-15

Examples:
  bubblepop settings
  bubblepop settings set --duration 30
  bubblepop settings set --duration 20 --max-bubbles 5
  bubblepop settings reset`,
	Args: cobra.NoArgs,
	Run:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change and save round settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the configured default settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsReset,
}

func init() {
	settingsSetCmd.Flags().IntVar(&flagSetDuration, "duration", 0, "Round length in seconds")
	settingsSetCmd.Flags().IntVar(&flagSetMaxBubbles, "max-bubbles", 0, "Maximum bubbles on the field")

	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) {
	a, err := openApp(false)
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	printSettings(a.settings.Load())
}

func runSettingsSet(cmd *cobra.Command, _ []string) {
	a, err := openApp(true)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer a.Close()

	next := a.settings.Load()
	changed := false
	if cmd.Flags().Changed("duration") {
		next.GameDuration = flagSetDuration
		changed = true
	}
	if cmd.Flags().Changed("max-bubbles") {
		next.MaxBubbles = flagSetMaxBubbles
		changed = true
	}
	if !changed {
		a.Close()
		fatal("nothing to change, pass --duration and/or --max-bubbles")
	}

	if err := a.settings.Save(next); err != nil {
		a.Close()
		fatal("%v", err)
	}
	fmt.Println("Settings saved.")
	printSettings(next)
}

func runSettingsReset(_ *cobra.Command, _ []string) {
	a, err := openApp(true)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer a.Close()

	defaults := a.settings.Fallback()
	if err := a.settings.Save(defaults); err != nil {
		a.Close()
		fatal("%v", err)
	}
	fmt.Println("Settings reset.")
	printSettings(defaults)
}

func printSettings(s settings.Settings) {
	fmt.Printf("Round length:  %d s\n", s.GameDuration)
	fmt.Printf("Max bubbles:   %d\n", s.MaxBubbles)
}
