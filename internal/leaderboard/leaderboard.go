// Package leaderboard keeps the bounded, sorted list of top scores and
// persists it through a key-value store.
package leaderboard

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/bubble-pop/internal/core"
)

// Key is the store key the leaderboard is persisted under.
const Key = "highScores"

// DefaultCapacity is how many entries the board keeps.
const DefaultCapacity = 10

// Entry is one ranked result.
type Entry struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
}

// Board is the in-memory leaderboard. It is authoritative for the session;
// persistence failures are logged and otherwise ignored.
type Board struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	kv       core.KV
	logger   *log.Logger
	loaded   sync.Once
}

// New creates an empty board backed by kv (which may be nil).
// A capacity <= 0 selects DefaultCapacity.
func New(kv core.KV, capacity int, logger *log.Logger) *Board {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Board{
		capacity: capacity,
		kv:       kv,
		logger:   logger,
	}
}

// Capacity returns the maximum number of entries kept.
func (b *Board) Capacity() int {
	return b.capacity
}

// Entries returns a copy of the current entries, best first.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.entries)
}

// Load replaces the in-memory entries with the persisted ones and returns
// them. Missing or corrupt data yields an empty board.
func (b *Board) Load() []Entry {
	entries := b.read()

	b.mu.Lock()
	b.entries = rank(entries, b.capacity)
	out := slices.Clone(b.entries)
	b.mu.Unlock()

	return out
}

// LoadOnce loads the persisted entries the first time it is called.
// Boards shared between controllers use it so a late joiner cannot drop
// entries that are inserted but not yet saved.
func (b *Board) LoadOnce() {
	b.loaded.Do(func() { b.Load() })
}

func (b *Board) read() []Entry {
	if b.kv == nil {
		return nil
	}

	data, ok, err := b.kv.Get(Key)
	if err != nil {
		b.logger.Warn("cannot load leaderboard", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		b.logger.Warn("stored leaderboard is corrupt, starting empty", "error", err)
		return nil
	}
	return entries
}

// Record adds an entry, keeps the board sorted and bounded, and persists
// it. It returns the 0-based rank the entry landed at, or -1 if it did not
// make the board.
func (b *Board) Record(e Entry) int {
	pos := b.Insert(e)
	//nolint:errcheck // Best-effort save, the in-memory board stays authoritative
	b.Save()
	return pos
}

// Insert is Record without persisting. Callers that must not block on
// storage insert first and Save later.
func (b *Board) Insert(e Entry) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, e)
	sortEntries(b.entries)

	// Stable sorting leaves the new entry after every equal one.
	pos := -1
	for i := len(b.entries) - 1; i >= 0; i-- {
		if b.entries[i] == e {
			pos = i
			break
		}
	}
	if pos >= b.capacity {
		pos = -1
	}
	b.entries = truncate(b.entries, b.capacity)
	return pos
}

// Save persists the current entries. Failures are logged and returned.
func (b *Board) Save() error {
	if b.kv == nil {
		return nil
	}

	b.mu.RLock()
	entries := slices.Clone(b.entries)
	b.mu.RUnlock()
	if entries == nil {
		entries = []Entry{}
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		b.logger.Warn("cannot encode leaderboard", "error", err)
		return fmt.Errorf("leaderboard: cannot encode: %w", err)
	}
	if err := b.kv.Set(Key, data); err != nil {
		b.logger.Warn("cannot save leaderboard", "error", err)
		return fmt.Errorf("leaderboard: cannot save: %w", err)
	}
	return nil
}

// Clear removes every entry and persists the empty board.
func (b *Board) Clear() error {
	b.mu.Lock()
	b.entries = nil
	b.mu.Unlock()
	return b.Save()
}

// Qualifies reports whether a score would make it onto the board.
func (b *Board) Qualifies(score int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.entries) < b.capacity {
		return true
	}
	return score > b.entries[len(b.entries)-1].Score
}

// rank sorts entries and truncates them to capacity.
func rank(entries []Entry, capacity int) []Entry {
	sortEntries(entries)
	return truncate(entries, capacity)
}

// sortEntries orders by score descending, keeping insertion order for ties.
func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Score - a.Score
	})
}

func truncate(entries []Entry, capacity int) []Entry {
	if len(entries) > capacity {
		return entries[:capacity]
	}
	return entries
}
