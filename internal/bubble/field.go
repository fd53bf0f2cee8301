package bubble

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/vovakirdan/bubble-pop/internal/core"
)

// DefaultPlacementAttempts is how many candidate positions are tried per
// new bubble before the addition is skipped.
const DefaultPlacementAttempts = 50

// ErrIndexOutOfRange is returned when a bubble index does not exist.
var ErrIndexOutOfRange = errors.New("bubble: index out of range")

// RefreshResult reports what a single Refresh did to the field.
type RefreshResult struct {
	Culled  int // Bubbles removed from the front of the field
	Target  int // Total the refill aimed for
	Added   int // Bubbles successfully placed
	Skipped int // Additions dropped because placement failed
}

// Field holds the live bubbles in creation order, oldest first.
type Field struct {
	bubbles  []Bubble
	rng      core.RNG
	newID    func() uuid.UUID
	attempts int
}

// Option configures a Field.
type Option func(*Field)

// WithPlacementAttempts overrides the per-bubble placement attempt budget.
func WithPlacementAttempts(n int) Option {
	return func(f *Field) {
		if n > 0 {
			f.attempts = n
		}
	}
}

// WithIDSource overrides how bubble IDs are generated.
func WithIDSource(fn func() uuid.UUID) Option {
	return func(f *Field) {
		if fn != nil {
			f.newID = fn
		}
	}
}

// NewField creates an empty field drawing randomness from rng.
func NewField(rng core.RNG, opts ...Option) *Field {
	f := &Field{
		bubbles:  make([]Bubble, 0, 16),
		rng:      rng,
		attempts: DefaultPlacementAttempts,
	}
	f.newID = idSource(rng)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// idSource derives bubble IDs from the RNG when it can act as a byte
// source (math/rand.Rand does), so seeded fields are fully reproducible.
func idSource(rng core.RNG) func() uuid.UUID {
	r, ok := rng.(io.Reader)
	if !ok {
		return uuid.New
	}
	return func() uuid.UUID {
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return uuid.New()
		}
		return id
	}
}

// Len returns the number of live bubbles.
func (f *Field) Len() int {
	return len(f.bubbles)
}

// At returns the bubble at index i.
func (f *Field) At(i int) (Bubble, error) {
	if i < 0 || i >= len(f.bubbles) {
		return Bubble{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(f.bubbles))
	}
	return f.bubbles[i], nil
}

// Bubbles returns a copy of the live bubbles in field order.
func (f *Field) Bubbles() []Bubble {
	out := make([]Bubble, len(f.bubbles))
	copy(out, f.bubbles)
	return out
}

// Clear removes every bubble.
func (f *Field) Clear() {
	f.bubbles = f.bubbles[:0]
}

// RemoveAt removes and returns the bubble at index i.
func (f *Field) RemoveAt(i int) (Bubble, error) {
	b, err := f.At(i)
	if err != nil {
		return Bubble{}, err
	}
	f.bubbles = append(f.bubbles[:i], f.bubbles[i+1:]...)
	return b, nil
}

// Refresh culls a random number of the oldest bubbles and then refills the
// field toward a random target no larger than maxBubbles.
//
// The cull count is drawn from [0, n/2] and taken from the front of the
// field. The target is drawn from [n', maxBubbles] where n' is the count
// after culling; if maxBubbles is below n' nothing is added.
func (f *Field) Refresh(maxBubbles int, size core.Size, diameter float64) RefreshResult {
	var res RefreshResult

	res.Culled = core.IntBetween(f.rng, 0, len(f.bubbles)/2)
	if res.Culled > 0 {
		f.bubbles = append(f.bubbles[:0], f.bubbles[res.Culled:]...)
	}

	current := len(f.bubbles)
	res.Target = core.IntBetween(f.rng, current, maxBubbles)

	for i := current; i < res.Target; i++ {
		pos, ok := f.findPosition(size, diameter)
		if !ok {
			res.Skipped++
			continue
		}
		f.bubbles = append(f.bubbles, Bubble{
			ID:       f.newID(),
			Pos:      pos,
			Color:    RandomColor(f.rng),
			Diameter: diameter,
		})
		res.Added++
	}

	return res
}

// findPosition searches for a spot where a bubble of the given diameter
// does not overlap any live bubble. Returns false once the attempt budget
// is spent or if the field cannot hold a bubble at all.
func (f *Field) findPosition(size core.Size, diameter float64) (core.Point, bool) {
	if !size.Fits(diameter) {
		return core.Point{}, false
	}

	margin := diameter / 2
	for range f.attempts {
		p := core.Point{
			X: core.FloatBetween(f.rng, margin, size.W-margin),
			Y: core.FloatBetween(f.rng, margin, size.H-margin),
		}
		if f.isFree(p, diameter) {
			return p, true
		}
	}
	return core.Point{}, false
}

func (f *Field) isFree(p core.Point, diameter float64) bool {
	for _, b := range f.bubbles {
		if b.Overlaps(p, diameter) {
			return false
		}
	}
	return true
}

// HitTest returns the index of the bubble containing p, or -1.
// Newer bubbles win when circles touch.
func (f *Field) HitTest(p core.Point) int {
	for i := len(f.bubbles) - 1; i >= 0; i-- {
		if f.bubbles[i].Contains(p) {
			return i
		}
	}
	return -1
}
