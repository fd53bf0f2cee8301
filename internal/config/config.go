// Package config provides YAML-based configuration loading for Bubble Pop.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/bubble-pop/internal/settings"
)

// ErrInvalid is returned by Validate for unusable configuration values.
var ErrInvalid = errors.New("config: invalid value")

// Config contains all application configuration.
type Config struct {
	Settings    SettingsConfig    `yaml:"settings"`
	Field       FieldConfig       `yaml:"field"`
	Round       RoundConfig       `yaml:"round"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
}

// SettingsConfig holds the settings used until the player saves their own.
type SettingsConfig struct {
	GameDuration int `yaml:"game_duration"`
	MaxBubbles   int `yaml:"max_bubbles"`
}

// FieldConfig defines the play surface and bubble placement.
type FieldConfig struct {
	Diameter          float64 `yaml:"diameter"`
	PlacementAttempts int     `yaml:"placement_attempts"`
	Width             float64 `yaml:"width"`  // Headless field width
	Height            float64 `yaml:"height"` // Headless field height
}

// RoundConfig defines round pacing.
type RoundConfig struct {
	CountdownSeconds int           `yaml:"countdown_seconds"`
	TickInterval     time.Duration `yaml:"tick_interval"`
}

// LeaderboardConfig defines the high score table.
type LeaderboardConfig struct {
	Size int `yaml:"size"`
}

// StorageConfig defines where scores and settings are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // Empty means ~/.bubblepop/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// GameSettings converts the configured defaults into game settings.
func (c SettingsConfig) GameSettings() settings.Settings {
	return settings.Settings{
		GameDuration: c.GameDuration,
		MaxBubbles:   c.MaxBubbles,
	}
}

// Validate checks the values the game cannot run without.
func (c Config) Validate() error {
	if err := c.Settings.GameSettings().Validate(); err != nil {
		return fmt.Errorf("%w: settings: %w", ErrInvalid, err)
	}
	if c.Field.Diameter <= 0 {
		return fmt.Errorf("%w: field.diameter must be positive, got %v", ErrInvalid, c.Field.Diameter)
	}
	if c.Field.PlacementAttempts < 1 {
		return fmt.Errorf("%w: field.placement_attempts must be at least 1, got %d", ErrInvalid, c.Field.PlacementAttempts)
	}
	if c.Field.Width < 0 || c.Field.Height < 0 {
		return fmt.Errorf("%w: field size must not be negative", ErrInvalid)
	}
	if c.Round.CountdownSeconds < 0 {
		return fmt.Errorf("%w: round.countdown_seconds must not be negative, got %d", ErrInvalid, c.Round.CountdownSeconds)
	}
	if c.Round.TickInterval <= 0 {
		return fmt.Errorf("%w: round.tick_interval must be positive, got %v", ErrInvalid, c.Round.TickInterval)
	}
	if c.Leaderboard.Size < 1 {
		return fmt.Errorf("%w: leaderboard.size must be at least 1, got %d", ErrInvalid, c.Leaderboard.Size)
	}
	return nil
}
