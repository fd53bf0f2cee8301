// Package settings holds the player-editable game settings and their
// persistence through a key-value store.
package settings

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/bubble-pop/internal/core"
)

// Key is the store key settings are persisted under.
const Key = "gameSettings"

// Valid ranges for each setting.
const (
	MinDuration   = 1
	MaxDuration   = 60
	MinMaxBubbles = 0
	MaxMaxBubbles = 15
)

// ErrOutOfRange is returned when a setting falls outside its valid range.
var ErrOutOfRange = errors.New("settings: value out of range")

// Settings are the round parameters a player can change.
type Settings struct {
	GameDuration int `yaml:"gameDuration"` // Round length in seconds
	MaxBubbles   int `yaml:"maxBubbles"`   // Upper bound on live bubbles
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		GameDuration: 60,
		MaxBubbles:   15,
	}
}

// Validate checks that every field is within range.
func (s Settings) Validate() error {
	if s.GameDuration < MinDuration || s.GameDuration > MaxDuration {
		return fmt.Errorf("%w: gameDuration %d not in [%d, %d]", ErrOutOfRange, s.GameDuration, MinDuration, MaxDuration)
	}
	if s.MaxBubbles < MinMaxBubbles || s.MaxBubbles > MaxMaxBubbles {
		return fmt.Errorf("%w: maxBubbles %d not in [%d, %d]", ErrOutOfRange, s.MaxBubbles, MinMaxBubbles, MaxMaxBubbles)
	}
	return nil
}

// Clamped returns a copy with every field forced into range.
func (s Settings) Clamped() Settings {
	return Settings{
		GameDuration: core.Clamp(s.GameDuration, MinDuration, MaxDuration),
		MaxBubbles:   core.Clamp(s.MaxBubbles, MinMaxBubbles, MaxMaxBubbles),
	}
}

// Store loads and saves Settings through a key-value store.
// A nil KV makes every load return the fallback and every save a no-op.
type Store struct {
	kv       core.KV
	fallback Settings
	logger   *log.Logger
}

// NewStore creates a settings store. fallback is returned whenever nothing
// valid is persisted; it is clamped into range first.
func NewStore(kv core.KV, fallback Settings, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		kv:       kv,
		fallback: fallback.Clamped(),
		logger:   logger,
	}
}

// Fallback returns the settings used when nothing valid is stored.
func (s *Store) Fallback() Settings {
	return s.fallback
}

// Load returns the persisted settings. Missing, unreadable, corrupt or
// out-of-range data all yield the fallback.
func (s *Store) Load() Settings {
	if s.kv == nil {
		return s.fallback
	}

	data, ok, err := s.kv.Get(Key)
	if err != nil {
		s.logger.Warn("cannot load settings, using defaults", "error", err)
		return s.fallback
	}
	if !ok {
		return s.fallback
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("stored settings are corrupt, using defaults", "error", err)
		return s.fallback
	}
	if err := loaded.Validate(); err != nil {
		s.logger.Warn("stored settings are invalid, using defaults", "error", err)
		return s.fallback
	}
	return loaded
}

// Save persists settings. Invalid settings are rejected before writing.
func (s *Store) Save(cfg Settings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.kv == nil {
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("settings: cannot encode: %w", err)
	}
	if err := s.kv.Set(Key, data); err != nil {
		return fmt.Errorf("settings: cannot save: %w", err)
	}
	return nil
}
