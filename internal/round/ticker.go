package round

import (
	"sync"
	"time"
)

// TickSource delivers the once-per-second clock to a controller.
// Start replaces any previous callback; Stop must not block and must be
// safe to call from inside the callback.
type TickSource interface {
	Start(fn func())
	Stop()
}

// ManualTicker fires only when told to. Tests use it to step rounds
// deterministically and the TUI fires it from its own tick messages.
type ManualTicker struct {
	mu      sync.Mutex
	fn      func()
	running bool
}

// NewManualTicker creates a stopped manual ticker.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{}
}

// Start arms the ticker with fn.
func (t *ManualTicker) Start(fn func()) {
	t.mu.Lock()
	t.fn = fn
	t.running = true
	t.mu.Unlock()
}

// Stop disarms the ticker.
func (t *ManualTicker) Stop() {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
}

// Running reports whether the ticker is armed.
func (t *ManualTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Fire invokes the callback once if the ticker is running.
// Returns whether a tick was delivered.
func (t *ManualTicker) Fire() bool {
	t.mu.Lock()
	fn, running := t.fn, t.running
	t.mu.Unlock()

	if !running || fn == nil {
		return false
	}
	fn()
	return true
}

// ClockTicker fires on a wall-clock interval from its own goroutine.
type ClockTicker struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewClockTicker creates a ticker with the given interval.
// A non-positive interval selects one second.
func NewClockTicker(interval time.Duration) *ClockTicker {
	if interval <= 0 {
		interval = time.Second
	}
	return &ClockTicker{interval: interval}
}

// Start begins delivering ticks to fn, stopping any previous run.
func (t *ClockTicker) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Stop may have raced with the ticker; prefer stopping.
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()
}

// Stop ends tick delivery. It does not wait for the goroutine to exit.
func (t *ClockTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
