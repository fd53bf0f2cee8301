package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named set of round settings.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyCustom DifficultyPreset = "custom" // Keep configured settings
)

// ParseDifficulty converts a flag value to a preset.
// An empty string selects DifficultyCustom.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyCustom, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyCustom:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or custom)", ErrInvalid, s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Harder presets shorten rounds and keep fewer bubbles on the field.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Settings = SettingsConfig{GameDuration: 60, MaxBubbles: 15}
		cfg.Round.CountdownSeconds = 3
	case DifficultyNormal:
		cfg.Settings = SettingsConfig{GameDuration: 45, MaxBubbles: 10}
	case DifficultyHard:
		cfg.Settings = SettingsConfig{GameDuration: 20, MaxBubbles: 5}
		cfg.Round.CountdownSeconds = 0
	}
}
