package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults = %+v\nhardcoded = %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
settings:
  game_duration: 30
round:
  countdown_seconds: 0
  tick_interval: 500ms
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Settings.GameDuration != 30 {
		t.Errorf("GameDuration = %d, want 30", cfg.Settings.GameDuration)
	}
	if cfg.Settings.MaxBubbles != 15 {
		t.Errorf("MaxBubbles = %d, want default 15", cfg.Settings.MaxBubbles)
	}
	if cfg.Round.CountdownSeconds != 0 {
		t.Errorf("CountdownSeconds = %d, want 0", cfg.Round.CountdownSeconds)
	}
	if cfg.Round.TickInterval != 500*time.Millisecond {
		t.Errorf("TickInterval = %v, want 500ms", cfg.Round.TickInterval)
	}
	if cfg.Field != Default().Field {
		t.Errorf("Field = %+v, want defaults", cfg.Field)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("settings: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	outOfRange := filepath.Join(dir, "range.yaml")
	if err := os.WriteFile(outOfRange, []byte("settings:\n  max_bubbles: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		invalid bool
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), false},
		{"bad yaml", broken, false},
		{"out of range", outOfRange, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalid) {
				t.Errorf("error = %v, want ErrInvalid", err)
			}
			if cfg != Default() {
				t.Errorf("failed Load returned %+v, want defaults", cfg)
			}
		})
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	write := func(path string, duration int) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		data, err := yaml.Marshal(map[string]any{
			"settings": map[string]int{"game_duration": duration, "max_bubbles": 5},
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write(filepath.Join(work, "configs", FileName), 20)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Settings.GameDuration != 20 {
		t.Errorf("GameDuration = %d, want 20 from ./configs", cfg.Settings.GameDuration)
	}

	write(filepath.Join(home, ".bubblepop", "config.yaml"), 10)
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Settings.GameDuration != 10 {
		t.Errorf("GameDuration = %d, want 10 from the user config", cfg.Settings.GameDuration)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"duration", func(c *Config) { c.Settings.GameDuration = 0 }},
		{"max bubbles", func(c *Config) { c.Settings.MaxBubbles = 16 }},
		{"diameter", func(c *Config) { c.Field.Diameter = 0 }},
		{"attempts", func(c *Config) { c.Field.PlacementAttempts = 0 }},
		{"field size", func(c *Config) { c.Field.Width = -1 }},
		{"countdown", func(c *Config) { c.Round.CountdownSeconds = -1 }},
		{"tick interval", func(c *Config) { c.Round.TickInterval = 0 }},
		{"leaderboard", func(c *Config) { c.Leaderboard.Size = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		input string
		want  DifficultyPreset
	}{
		{"", DifficultyCustom},
		{"easy", DifficultyEasy},
		{" Normal ", DifficultyNormal},
		{"HARD", DifficultyHard},
		{"custom", DifficultyCustom},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
	if _, err := ParseDifficulty("nightmare"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseDifficulty(nightmare) error = %v, want ErrInvalid", err)
	}

	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		cfg := Default()
		ApplyPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produces invalid config: %v", p, err)
		}
	}

	cfg := Default()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Settings.GameDuration >= Default().Settings.GameDuration {
		t.Errorf("hard preset did not shorten rounds")
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyCustom)
	if cfg != Default() {
		t.Errorf("custom preset changed the config")
	}
}
