package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bubblepop.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults file.
func Default() Config {
	return Config{
		Settings: SettingsConfig{
			GameDuration: 60,
			MaxBubbles:   15,
		},
		Field: FieldConfig{
			Diameter:          4,
			PlacementAttempts: 50,
			Width:             60,
			Height:            20,
		},
		Round: RoundConfig{
			CountdownSeconds: 3,
			TickInterval:     time.Second,
		},
		Leaderboard: LeaderboardConfig{
			Size: 10,
		},
		Storage: StorageConfig{
			DBPath: "~/.bubblepop/bubblepop.db",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
