package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubble-pop/internal/bubble"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/round"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorPink:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBlack:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
}

// Play screen layout: two HUD rows, a framed field and a footer row.
const (
	hudRows    = 2
	footerRows = 1
	cellHeight = 2.0 // Field units per terminal row; cells are about twice as tall as wide
)

// fieldArea returns the screen cells bubbles are drawn into, inside the frame.
func fieldArea(width, height int) core.Rect {
	return core.NewRect(1, hudRows+1, max(width-2, 0), max(height-hudRows-footerRows-2, 0))
}

// fieldSize converts a field area to play-surface units.
func fieldSize(area core.Rect) core.Size {
	return core.Size{W: float64(area.W), H: float64(area.H) * cellHeight}
}

// cellToField returns the play-surface point at the center of a screen cell,
// and whether the cell lies inside the field area.
func cellToField(area core.Rect, x, y int) (core.Point, bool) {
	if !area.Contains(x, y) {
		return core.Point{}, false
	}
	return core.Point{
		X: float64(x-area.X) + 0.5,
		Y: (float64(y-area.Y) + 0.5) * cellHeight,
	}, true
}

// drawBubbles paints every bubble into the field area. The center cell of
// each bubble shows the key that pops it; the hovered bubble is shaded.
func drawBubbles(s *core.Screen, area core.Rect, bubbles []bubble.Bubble, hover int) {
	for i, b := range bubbles {
		r := b.Diameter / 2
		minCol := int(math.Floor(b.Pos.X - r))
		maxCol := int(math.Ceil(b.Pos.X + r))
		minRow := int(math.Floor((b.Pos.Y - r) / cellHeight))
		maxRow := int(math.Ceil((b.Pos.Y + r) / cellHeight))

		fill := '█'
		if i == hover {
			fill = '▓'
		}
		color := b.Color.ScreenColor()

		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				p, ok := cellToField(area, area.X+col, area.Y+row)
				if !ok || !b.Contains(p) {
					continue
				}
				s.Set(area.X+col, area.Y+row, fill, color)
			}
		}

		cx := area.X + int(b.Pos.X)
		cy := area.Y + int(b.Pos.Y/cellHeight)
		if area.Contains(cx, cy) {
			s.Set(cx, cy, BubbleLabel(i), core.ColorWhite)
		}
	}
}

// drawPlay renders the countdown, active and game-over views of a round.
func drawPlay(s *core.Screen, snap round.Snapshot, hover, preview int) {
	s.Clear()
	w, h := s.Width(), s.Height()
	area := fieldArea(w, h)

	hud := fmt.Sprintf(" %s   Score: %d   Time: %ds", snap.PlayerName, snap.Score, snap.TimeRemaining)
	if len(snap.Leaderboard) > 0 {
		hud += fmt.Sprintf("   Best: %d", snap.Leaderboard[0].Score)
	}
	s.DrawText(0, 0, hud, core.ColorWhite)
	if snap.ComboStreak > 0 && snap.LastPoppedColor != nil {
		combo := fmt.Sprintf("Combo x%d %s ", snap.ComboStreak, *snap.LastPoppedColor)
		s.DrawText(w-len(combo), 0, combo, snap.LastPoppedColor.ScreenColor())
	}
	if lp := snap.LastPop; lp != nil {
		text := fmt.Sprintf(" +%d %s", lp.Points, lp.Color)
		if lp.Combo {
			text += "  COMBO!"
		}
		s.DrawText(0, 1, text, lp.Color.ScreenColor())
	}
	if hover >= 0 {
		s.DrawText(w/2, 1, fmt.Sprintf("[%c] worth %d", BubbleLabel(hover), preview), core.ColorGray)
	}

	s.DrawBox(core.NewRect(0, hudRows, w, h-hudRows-footerRows), core.ColorGray)

	switch snap.State {
	case round.StateCountdown:
		s.DrawTextCentered(area.Y+area.H/2, fmt.Sprintf("Get ready... %d", snap.Countdown), core.ColorYellow)
		s.DrawTextCentered(h-1, "esc: give up", core.ColorGray)
	case round.StateActive:
		drawBubbles(s, area, snap.Bubbles, hover)
		s.DrawTextCentered(h-1, "a-o or click: pop   esc: end round   ctrl+c: quit", core.ColorGray)
	case round.StateOver:
		drawGameOver(s, area, snap)
		s.DrawTextCentered(h-1, "r: play again   n: new player   tab: scores   ctrl+c: quit", core.ColorGray)
	}
}

func drawGameOver(s *core.Screen, area core.Rect, snap round.Snapshot) {
	y := area.Y + 1
	s.DrawTextCentered(y, "GAME OVER", core.ColorRed)
	y += 2
	s.DrawTextCentered(y, fmt.Sprintf("%s scored %d", snap.PlayerName, snap.Score), core.ColorWhite)
	y++
	s.DrawTextCentered(y, fmt.Sprintf("%d pops, best streak %d", snap.Pops, snap.BestStreak), core.ColorGray)
	y++
	if snap.Rank >= 0 {
		s.DrawTextCentered(y, fmt.Sprintf("New high score! Rank #%d", snap.Rank+1), core.ColorYellow)
	}
	y += 2

	s.DrawTextCentered(y, "HIGH SCORES", core.ColorCyan)
	y++
	for i, e := range snap.Leaderboard {
		if y >= area.Bottom() {
			break
		}
		color := core.ColorDefault
		if i == snap.Rank {
			color = core.ColorYellow
		}
		s.DrawTextCentered(y, fmt.Sprintf("%2d. %-16s %6d", i+1, e.Name, e.Score), color)
		y++
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
