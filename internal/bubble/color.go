package bubble

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/bubble-pop/internal/core"
)

// Color is one of the fixed bubble palette entries.
type Color int

const (
	Red Color = iota
	Pink
	Green
	Blue
	Black
)

// Palette lists every color in spawn-table order.
var Palette = []Color{Red, Pink, Green, Blue, Black}

// colorInfo holds the per-color constants.
type colorInfo struct {
	name       string
	points     int
	cumulative float64 // upper bound of this color's slice of [0, 1)
	screen     core.Color
}

var colorTable = [...]colorInfo{
	Red:   {"red", 1, 0.40, core.ColorRed},
	Pink:  {"pink", 2, 0.70, core.ColorPink},
	Green: {"green", 5, 0.85, core.ColorGreen},
	Blue:  {"blue", 8, 0.95, core.ColorBlue},
	Black: {"black", 10, 1.00, core.ColorBlack},
}

// Valid reports whether c is a palette color.
func (c Color) Valid() bool {
	return c >= Red && c <= Black
}

// String returns the color name.
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorTable[c].name
}

// Points returns the base point value of a bubble of this color.
func (c Color) Points() int {
	if !c.Valid() {
		return 0
	}
	return colorTable[c].points
}

// Probability returns the spawn probability of this color.
func (c Color) Probability() float64 {
	if !c.Valid() {
		return 0
	}
	lower := 0.0
	if c > Red {
		lower = colorTable[c-1].cumulative
	}
	return colorTable[c].cumulative - lower
}

// ScreenColor returns the terminal color used to draw this bubble.
func (c Color) ScreenColor() core.Color {
	if !c.Valid() {
		return core.ColorDefault
	}
	return colorTable[c].screen
}

// ColorFor maps a uniform draw u in [0, 1) onto the palette using the
// cumulative spawn bounds. Values outside the range are clamped.
func ColorFor(u float64) Color {
	for _, c := range Palette {
		if u < colorTable[c].cumulative {
			return c
		}
	}
	return Black
}

// RandomColor draws a single uniform value and maps it to a color.
func RandomColor(rng core.RNG) Color {
	return ColorFor(rng.Float64())
}

// ParseColor converts a color name back to a Color.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Palette {
		if colorTable[c].name == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("bubble: unknown color %q", s)
}
