package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/config"
	"github.com/vovakirdan/bubble-pop/internal/platform/tui"
)

var (
	flagName        string
	flagScreenshots bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start Bubble Pop in the current terminal.

Controls:
  a-o          - Pop the bubble with that letter
  Mouse click  - Pop the bubble under the pointer
  Esc          - End the round early (score is kept)
  R            - Play again (after the round)
  N            - Change player (after the round)
  Tab          - Scores (after the round)
  Ctrl+S       - Save a screenshot (with --screenshots)
  Ctrl+C       - Quit

Difficulty options:
  easy   - 60 second rounds, up to 15 bubbles
  normal - 45 second rounds, up to 10 bubbles
  hard   - 20 second rounds, up to 5 bubbles, no countdown

Examples:
  bubblepop play
  bubblepop play --name ann
  bubblepop play --difficulty hard --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name to prefill")
	playCmd.Flags().BoolVar(&flagScreenshots, "screenshots", false, "Enable Ctrl+S screenshots in ~/.bubblepop/screenshots")
}

func runPlay(_ *cobra.Command, _ []string) {
	a, err := openApp(false)
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	term := terminalConfig()
	a.logger.Debug("starting local session", "width", term.ScreenW, "height", term.ScreenH, "seed", term.Seed)

	opts := tui.Options{
		NewController: a.newController,
		Board:         a.board,
		History:       a.historySource(),
		TickInterval:  a.cfg.Round.TickInterval,
		PlayerName:    flagName,
		Width:         term.ScreenW,
		Height:        term.ScreenH,
		Logger:        a.logger,
	}
	if flagScreenshots {
		opts.ScreenshotDir = filepath.Join(config.DataDir(), "screenshots")
	}

	if err := tui.Run(opts); err != nil {
		a.Close()
		fatal("running game: %v", err)
	}
}
