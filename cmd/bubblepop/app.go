package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/bubble-pop/internal/config"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/leaderboard"
	"github.com/vovakirdan/bubble-pop/internal/platform/tui"
	"github.com/vovakirdan/bubble-pop/internal/round"
	"github.com/vovakirdan/bubble-pop/internal/settings"
	"github.com/vovakirdan/bubble-pop/internal/storage"
)

// app holds everything a command needs, built from config and flags.
type app struct {
	cfg      config.Config
	preset   config.DifficultyPreset
	store    *storage.Store // nil when the database could not be opened
	settings *settings.Store
	board    *leaderboard.Board
	logger   *log.Logger
}

// newLogger creates the stderr logger for the selected level.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bubblepop",
		Level:           level,
	}), nil
}

// openApp loads configuration and opens storage. If the database cannot be
// opened and requireStore is false, scores and settings live in memory for
// this run only.
func openApp(requireStore bool) (*app, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}

	a := &app{cfg: cfg, preset: preset, logger: logger}

	var kv core.KV = storage.NewMemory()
	store, err := storage.Open(cfg.Storage.DBPath)
	switch {
	case err == nil:
		a.store = store
		kv = store
	case requireStore:
		return nil, err
	default:
		logger.Warn("could not open database, scores will not be kept", "path", cfg.Storage.DBPath, "error", err)
	}

	a.settings = settings.NewStore(kv, cfg.Settings.GameSettings(), logger)
	a.board = leaderboard.New(kv, cfg.Leaderboard.Size, logger)
	a.board.LoadOnce()

	return a, nil
}

// Close releases the database.
func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("cannot close database", "error", err)
	}
}

// history returns the sink that records finished rounds, or nil without
// a database.
func (a *app) history() round.HistoryFunc {
	if a.store == nil {
		return nil
	}
	return func(s round.Summary) error {
		_, err := a.store.SaveRound(storage.RoundRecord{
			PlayerName: s.PlayerName,
			Score:      s.Score,
			Duration:   s.Duration,
			MaxBubbles: s.MaxBubbles,
			Pops:       s.Pops,
			BestStreak: s.BestStreak,
			EndedEarly: s.EndedEarly,
			CreatedAt:  time.Now(),
		})
		return err
	}
}

// historySource returns the round history for the scores screen, or nil
// without a database.
func (a *app) historySource() tui.HistorySource {
	if a.store == nil {
		return nil
	}
	return a.store
}

// newController builds a controller sharing the app's leaderboard and
// settings store. A difficulty preset gets an in-memory settings store
// seeded with the preset, so saves from the settings screen last for the
// session only.
func (a *app) newController(ticker round.TickSource) *round.Controller {
	store := a.settings
	if a.preset != config.DifficultyCustom {
		store = settings.NewStore(storage.NewMemory(), a.cfg.Settings.GameSettings(), a.logger)
	}

	return round.New(round.Config{
		SettingsStore:     store,
		FieldSize:         core.Size{W: a.cfg.Field.Width, H: a.cfg.Field.Height},
		Diameter:          a.cfg.Field.Diameter,
		PlacementAttempts: a.cfg.Field.PlacementAttempts,
		CountdownSeconds:  a.cfg.Round.CountdownSeconds,
		Seed:              flagSeed,
		Ticker:            ticker,
		Leaderboard:       a.board,
		History:           a.history(),
		Logger:            a.logger,
	})
}

// terminalConfig reports the terminal size and seed for local play.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
