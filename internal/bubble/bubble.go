// Package bubble owns the live bubble set and its spatial packing.
package bubble

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/bubble-pop/internal/core"
)

// Bubble is a single poppable bubble on the field.
type Bubble struct {
	ID       uuid.UUID
	Pos      core.Point
	Color    Color
	Diameter float64
}

// Points returns the base point value of the bubble.
func (b Bubble) Points() int {
	return b.Color.Points()
}

// Contains reports whether p lies within the bubble's circle.
func (b Bubble) Contains(p core.Point) bool {
	return b.Pos.Dist(p) <= b.Diameter/2
}

// Overlaps reports whether a bubble of the given diameter centered at p
// would overlap b. Bubbles may touch but not intersect.
func (b Bubble) Overlaps(p core.Point, diameter float64) bool {
	minDist := b.Diameter
	if diameter > minDist {
		minDist = diameter
	}
	return b.Pos.Dist(p) < minDist
}
