package round

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-pop/internal/bubble"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/leaderboard"
	"github.com/vovakirdan/bubble-pop/internal/scoring"
	"github.com/vovakirdan/bubble-pop/internal/settings"
)

// Field defaults, in play-surface units.
const (
	DefaultDiameter = 4.0
	DefaultWidth    = 60.0
	DefaultHeight   = 20.0
)

// Config wires a controller to its collaborators. Zero values select
// in-memory or no-op defaults.
type Config struct {
	// Settings are used when SettingsStore is nil.
	Settings settings.Settings

	// SettingsStore loads the initial settings and persists SaveSettings.
	SettingsStore *settings.Store

	FieldSize         core.Size
	Diameter          float64
	PlacementAttempts int

	// CountdownSeconds before a started round becomes active. 0 skips it.
	CountdownSeconds int

	// RNG drives placement and colors. When nil a generator seeded with
	// Seed is created.
	RNG  core.RNG
	Seed int64

	Ticker      TickSource
	Leaderboard *leaderboard.Board
	History     HistoryFunc
	Logger      *log.Logger
}

// Controller owns one player's rounds. All methods are safe for concurrent
// use; listeners run after the internal lock is released.
type Controller struct {
	mu sync.Mutex

	state      State
	name       string
	score      int
	remaining  int
	countdown  int
	pops       int
	bestStreak int
	rank       int
	combo      scoring.Combo
	lastPop    *scoring.Result
	played     settings.Settings // Settings of the running or last round
	round      int               // Incremented by every StartRound

	settings      settings.Settings
	size          core.Size
	diameter      float64
	countdownSecs int

	field         *bubble.Field
	ticker        TickSource
	board         *leaderboard.Board
	settingsStore *settings.Store
	history       HistoryFunc
	logger        *log.Logger

	lmu       sync.Mutex
	listeners map[int]func(Snapshot)
	nextID    int
}

// New creates an idle controller. Stored settings and leaderboard entries
// are loaded immediately.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rng := cfg.RNG
	if rng == nil {
		rng = core.NewRNG(cfg.Seed)
	}

	ticker := cfg.Ticker
	if ticker == nil {
		ticker = NewManualTicker()
	}

	board := cfg.Leaderboard
	if board == nil {
		board = leaderboard.New(nil, leaderboard.DefaultCapacity, logger)
	}
	board.LoadOnce()

	current := cfg.Settings
	if cfg.SettingsStore != nil {
		current = cfg.SettingsStore.Load()
	} else if current == (settings.Settings{}) {
		current = settings.Default()
	}
	current = current.Clamped()

	size := cfg.FieldSize
	if size == (core.Size{}) {
		size = core.Size{W: DefaultWidth, H: DefaultHeight}
	}
	diameter := cfg.Diameter
	if diameter <= 0 {
		diameter = DefaultDiameter
	}

	c := &Controller{
		state:         StateIdle,
		remaining:     current.GameDuration,
		rank:          -1,
		played:        current,
		settings:      current,
		size:          size,
		diameter:      diameter,
		countdownSecs: max(cfg.CountdownSeconds, 0),
		field:         bubble.NewField(rng, bubble.WithPlacementAttempts(cfg.PlacementAttempts)),
		ticker:        ticker,
		board:         board,
		settingsStore: cfg.SettingsStore,
		history:       cfg.History,
		logger:        logger,
		listeners:     make(map[int]func(Snapshot)),
	}
	return c
}

// StartRound begins a round for the named player.
func (c *Controller) StartRound(name string) (Snapshot, error) {
	name = strings.TrimSpace(name)

	c.mu.Lock()
	if name == "" {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("%w: player name is empty", ErrInvalidInput)
	}
	if c.state == StateCountdown || c.state == StateActive {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("%w: round already %s", ErrInvalidState, c.state)
	}

	c.resetLocked()
	c.name = name
	c.played = c.settings
	c.remaining = c.settings.GameDuration
	c.countdown = c.countdownSecs

	if c.countdown > 0 {
		c.state = StateCountdown
	} else {
		c.activateLocked()
	}
	c.round++
	round := c.round
	c.ticker.Start(func() { c.tick(round) })

	c.logger.Info("round started",
		"player", name,
		"duration", c.played.GameDuration,
		"maxBubbles", c.played.MaxBubbles,
		"countdown", c.countdown)

	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap, nil
}

// Tick advances the clock by one second. Ticks outside Countdown and Active
// change nothing and notify nobody.
func (c *Controller) Tick() Snapshot {
	return c.tick(-1)
}

// tick advances the clock. A non-negative round drops ticks left over from
// an earlier round's tick source.
func (c *Controller) tick(round int) Snapshot {
	c.mu.Lock()
	if round >= 0 && round != c.round {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	var ended bool
	switch c.state {
	case StateCountdown:
		c.countdown--
		if c.countdown <= 0 {
			c.countdown = 0
			c.activateLocked()
		}
	case StateActive:
		c.remaining--
		if c.remaining <= 0 {
			c.remaining = 0
			c.endLocked()
			ended = true
		} else {
			c.refreshLocked()
		}
	default:
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	var entry leaderboard.Entry
	var summary Summary
	if ended {
		entry, summary = c.resultLocked(false)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if ended {
		c.persist(entry, summary)
	}
	c.notify(snap)
	return snap
}

// Pop removes the bubble at index and scores it.
func (c *Controller) Pop(index int) (Snapshot, error) {
	c.mu.Lock()
	_, err := c.popLocked(index)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		return snap, err
	}
	c.notify(snap)
	return snap, nil
}

// PopAt pops the topmost bubble covering p.
func (c *Controller) PopAt(p core.Point) (Snapshot, error) {
	c.mu.Lock()
	var err error
	if c.state != StateActive {
		err = fmt.Errorf("%w: cannot pop while %s", ErrInvalidState, c.state)
	} else if i := c.field.HitTest(p); i < 0 {
		err = fmt.Errorf("%w: no bubble at (%.1f, %.1f)", ErrInvalidInput, p.X, p.Y)
	} else {
		_, err = c.popLocked(i)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		return snap, err
	}
	c.notify(snap)
	return snap, nil
}

func (c *Controller) popLocked(index int) (scoring.Result, error) {
	if c.state != StateActive {
		return scoring.Result{}, fmt.Errorf("%w: cannot pop while %s", ErrInvalidState, c.state)
	}
	b, err := c.field.At(index)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	res := c.combo.Apply(b.Color)
	//nolint:errcheck // Index was checked above
	c.field.RemoveAt(index)

	c.score += res.Points
	c.pops++
	c.bestStreak = max(c.bestStreak, res.Streak)
	c.lastPop = &res

	c.logger.Debug("bubble popped",
		"color", res.Color,
		"points", res.Points,
		"combo", res.Combo,
		"score", c.score)
	return res, nil
}

// Preview returns the points popping the bubble at index would award now.
func (c *Controller) Preview(index int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.field.At(index)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return c.combo.Preview(b.Color), nil
}

// EndRound ends a running round early. The result is recorded as if time
// had run out.
func (c *Controller) EndRound() (Snapshot, error) {
	c.mu.Lock()
	if c.state != StateCountdown && c.state != StateActive {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("%w: no round running", ErrInvalidState)
	}

	c.endLocked()
	entry, summary := c.resultLocked(true)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(entry, summary)
	c.notify(snap)
	return snap, nil
}

// Reset returns a finished round to Idle. Calling it while idle is a no-op.
func (c *Controller) Reset() (Snapshot, error) {
	c.mu.Lock()
	switch c.state {
	case StateIdle:
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	case StateCountdown, StateActive:
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("%w: cannot reset while %s", ErrInvalidState, c.state)
	}

	c.resetLocked()
	c.state = StateIdle
	c.remaining = c.settings.GameDuration
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap, nil
}

// UpdateSettings changes the settings used by the next round.
func (c *Controller) UpdateSettings(duration, maxBubbles int) (Snapshot, error) {
	next := settings.Settings{GameDuration: duration, MaxBubbles: maxBubbles}

	c.mu.Lock()
	if c.state == StateCountdown || c.state == StateActive {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("%w: cannot change settings while %s", ErrInvalidState, c.state)
	}
	if err := next.Validate(); err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	c.settings = next
	if c.state == StateIdle {
		c.remaining = next.GameDuration
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap, nil
}

// SaveSettings persists the current settings. A controller without a
// settings store has nothing to save.
func (c *Controller) SaveSettings() error {
	c.mu.Lock()
	cfg := c.settings
	c.mu.Unlock()

	if c.settingsStore == nil {
		return nil
	}
	if err := c.settingsStore.Save(cfg); err != nil {
		c.logger.Warn("failed to save settings", "error", err)
		return err
	}
	return nil
}

// Resize sets the play surface used for future placements. Live bubbles
// are not moved.
func (c *Controller) Resize(w, h float64) Snapshot {
	c.mu.Lock()
	c.size = core.Size{W: max(w, 0), H: max(h, 0)}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.lmu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.lmu.Lock()
			delete(c.listeners, id)
			c.lmu.Unlock()
		})
	}
}

func (c *Controller) notify(snap Snapshot) {
	c.lmu.Lock()
	fns := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.lmu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (c *Controller) resetLocked() {
	c.name = ""
	c.score = 0
	c.countdown = 0
	c.pops = 0
	c.bestStreak = 0
	c.rank = -1
	c.lastPop = nil
	c.combo.Reset()
	c.field.Clear()
}

func (c *Controller) activateLocked() {
	c.state = StateActive
	c.refreshLocked()
}

func (c *Controller) refreshLocked() {
	res := c.field.Refresh(c.played.MaxBubbles, c.size, c.diameter)
	c.logger.Debug("field refreshed",
		"culled", res.Culled,
		"target", res.Target,
		"added", res.Added,
		"skipped", res.Skipped)
}

// endLocked flips the round to Over and ranks the result in memory.
// Persistence runs after the lock is released.
func (c *Controller) endLocked() {
	c.state = StateOver
	c.ticker.Stop()
	c.rank = c.board.Insert(leaderboard.Entry{Name: c.name, Score: c.score})

	c.logger.Info("round over",
		"player", c.name,
		"score", c.score,
		"rank", c.rank,
		"pops", c.pops)
}

func (c *Controller) resultLocked(early bool) (leaderboard.Entry, Summary) {
	entry := leaderboard.Entry{Name: c.name, Score: c.score}
	summary := Summary{
		PlayerName: c.name,
		Score:      c.score,
		Duration:   c.played.GameDuration,
		MaxBubbles: c.played.MaxBubbles,
		Pops:       c.pops,
		BestStreak: c.bestStreak,
		EndedEarly: early,
	}
	return entry, summary
}

func (c *Controller) persist(entry leaderboard.Entry, summary Summary) {
	// Board.Save logs its own failures.
	//nolint:errcheck
	c.board.Save()

	if c.history == nil {
		return
	}
	if err := c.history(summary); err != nil {
		c.logger.Warn("failed to record round history", "player", entry.Name, "error", err)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:           c.state,
		PlayerName:      c.name,
		Bubbles:         c.field.Bubbles(),
		Score:           c.score,
		TimeRemaining:   c.remaining,
		Countdown:       c.countdown,
		ComboStreak:     c.combo.Streak(),
		LastPoppedColor: c.combo.Last(),
		Rank:            c.rank,
		Leaderboard:     c.board.Entries(),
		Settings:        c.settings,
		FieldSize:       c.size,
		Diameter:        c.diameter,
		Pops:            c.pops,
		BestStreak:      c.bestStreak,
	}
	if c.lastPop != nil {
		lp := *c.lastPop
		snap.LastPop = &lp
	}
	return snap
}
