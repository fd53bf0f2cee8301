// Package scoring computes points for popped bubbles and tracks the
// same-color combo.
package scoring

import "github.com/vovakirdan/bubble-pop/internal/bubble"

// ComboMultiplier is applied when a bubble matches the previous pop's color.
const ComboMultiplier = 1.5

// PointsFor returns the points a bubble of color c is worth given the color
// of the previous pop. last is nil when nothing has been popped this round.
// The combo product is floored so scores stay whole.
func PointsFor(c bubble.Color, last *bubble.Color) int {
	base := c.Points()
	if last == nil || *last != c {
		return base
	}
	// base*3/2 is floor(1.5*base) for non-negative base without float error.
	return base * 3 / 2
}

// Result describes a committed pop.
type Result struct {
	Color  bubble.Color
	Base   int  // Color value before any multiplier
	Points int  // Points actually awarded
	Combo  bool // Whether the multiplier applied
	Streak int  // Streak counter after this pop
}

// Combo tracks the last popped color and the current streak.
// The zero value is a fresh combo with no previous pop.
type Combo struct {
	last    bubble.Color
	hasLast bool
	streak  int
}

// Last returns the last popped color, or nil if none.
func (c *Combo) Last() *bubble.Color {
	if !c.hasLast {
		return nil
	}
	last := c.last
	return &last
}

// Streak returns the number of consecutive same-color pops after the first.
func (c *Combo) Streak() int {
	return c.streak
}

// Preview returns the points a pop of color col would earn now, without
// changing any state.
func (c *Combo) Preview(col bubble.Color) int {
	return PointsFor(col, c.Last())
}

// Apply commits a pop of color col: it computes the points with the same
// rule as Preview, then updates the streak and the last color.
func (c *Combo) Apply(col bubble.Color) Result {
	res := Result{
		Color:  col,
		Base:   col.Points(),
		Points: c.Preview(col),
	}

	if c.hasLast && c.last == col {
		res.Combo = true
		c.streak++
	} else {
		c.streak = 0
	}

	c.last = col
	c.hasLast = true
	res.Streak = c.streak
	return res
}

// Reset clears the last color and the streak.
func (c *Combo) Reset() {
	*c = Combo{}
}
