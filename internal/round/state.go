// Package round runs the game: it owns the round lifecycle, drives the
// bubble field once per tick, applies scoring to pops and records results
// on the leaderboard.
package round

import "errors"

// State is a phase of the round lifecycle.
type State int

const (
	StateIdle      State = iota // No round running
	StateCountdown              // Round started, waiting for play to begin
	StateActive                 // Bubbles can be popped, clock is running
	StateOver                   // Round finished and recorded
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StateActive:
		return "active"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Error kinds reported by the controller. Use errors.Is to test for them.
var (
	// ErrInvalidInput covers empty player names, bad bubble indices and
	// out-of-range settings.
	ErrInvalidInput = errors.New("round: invalid input")

	// ErrInvalidState covers operations attempted in the wrong phase.
	ErrInvalidState = errors.New("round: invalid state")
)
