package round

import (
	"github.com/vovakirdan/bubble-pop/internal/bubble"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/leaderboard"
	"github.com/vovakirdan/bubble-pop/internal/scoring"
	"github.com/vovakirdan/bubble-pop/internal/settings"
)

// Snapshot is an immutable copy of the round state, taken after every
// mutating call. Slices and pointers are private copies.
type Snapshot struct {
	State         State
	PlayerName    string
	Bubbles       []bubble.Bubble
	Score         int
	TimeRemaining int // Seconds left in the round
	Countdown     int // Seconds left before play begins
	ComboStreak   int

	// LastPoppedColor is nil until the first pop of the round.
	LastPoppedColor *bubble.Color

	// LastPop describes the most recent pop, nil if none this round.
	LastPop *scoring.Result

	// Rank is the leaderboard position of the finished round, -1 if it
	// did not place. Only meaningful in StateOver.
	Rank int

	Leaderboard []leaderboard.Entry
	Settings    settings.Settings
	FieldSize   core.Size
	Diameter    float64
	Pops        int
	BestStreak  int
}

// Active reports whether bubbles can currently be popped.
func (s Snapshot) Active() bool {
	return s.State == StateActive
}

// Summary is what the controller hands to the history sink when a round ends.
type Summary struct {
	PlayerName string
	Score      int
	Duration   int
	MaxBubbles int
	Pops       int
	BestStreak int
	EndedEarly bool
}

// HistoryFunc receives every finished round. Errors are logged.
type HistoryFunc func(Summary) error
