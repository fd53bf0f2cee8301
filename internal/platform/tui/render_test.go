package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bubble-pop/internal/bubble"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/leaderboard"
	"github.com/vovakirdan/bubble-pop/internal/round"
)

func TestFieldArea(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want core.Rect
	}{
		{"standard terminal", 80, 24, core.NewRect(1, 3, 78, 19)},
		{"tiny terminal", 1, 2, core.NewRect(1, 3, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fieldArea(tt.w, tt.h); got != tt.want {
				t.Errorf("fieldArea(%d, %d) = %+v, want %+v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestFieldSizeUsesCellAspect(t *testing.T) {
	got := fieldSize(core.NewRect(1, 3, 78, 19))
	want := core.Size{W: 78, H: 38}
	if got != want {
		t.Errorf("fieldSize() = %+v, want %+v", got, want)
	}
}

func TestCellToField(t *testing.T) {
	area := core.NewRect(1, 3, 10, 5)

	tests := []struct {
		name   string
		x, y   int
		want   core.Point
		wantOK bool
	}{
		{"top left", 1, 3, core.Point{X: 0.5, Y: 1}, true},
		{"bottom right", 10, 7, core.Point{X: 9.5, Y: 9}, true},
		{"left of field", 0, 3, core.Point{}, false},
		{"in the HUD", 5, 2, core.Point{}, false},
		{"below field", 5, 8, core.Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cellToField(area, tt.x, tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("cellToField(%d, %d) = (%+v, %v), want (%+v, %v)", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDrawBubbles(t *testing.T) {
	s := core.NewScreen(80, 24)
	area := fieldArea(80, 24)
	bubbles := []bubble.Bubble{
		{Pos: core.Point{X: 10.5, Y: 9}, Color: bubble.Blue, Diameter: 4},
		{Pos: core.Point{X: 30.5, Y: 9}, Color: bubble.Red, Diameter: 4},
	}

	drawBubbles(s, area, bubbles, 1)

	label := s.GetCell(area.X+10, area.Y+4)
	if label.Rune != 'a' || label.Color != core.ColorWhite {
		t.Errorf("first label = %+v, want white 'a'", label)
	}
	if got := s.GetCell(area.X+11, area.Y+4); got.Rune != '█' || got.Color != core.ColorBlue {
		t.Errorf("first body = %+v, want blue fill", got)
	}
	if got := s.GetCell(area.X+31, area.Y+4); got.Rune != '▓' || got.Color != core.ColorRed {
		t.Errorf("hovered body = %+v, want red shade", got)
	}
	if got := s.Get(area.X+20, area.Y+4); got != ' ' {
		t.Errorf("gap between bubbles = %q, want blank", got)
	}
}

func TestDrawPlayStates(t *testing.T) {
	tests := []struct {
		name string
		snap round.Snapshot
		want []string
	}{
		{
			name: "countdown",
			snap: round.Snapshot{State: round.StateCountdown, PlayerName: "ann", Countdown: 3, TimeRemaining: 10, Rank: -1},
			want: []string{"ann", "Time: 10s", "Get ready... 3"},
		},
		{
			name: "active with best score",
			snap: round.Snapshot{
				State:         round.StateActive,
				PlayerName:    "ann",
				Score:         7,
				TimeRemaining: 9,
				Rank:          -1,
				Leaderboard:   []leaderboard.Entry{{Name: "bob", Score: 42}, {Name: "cy", Score: 10}},
			},
			want: []string{"Score: 7", "Best: 42"},
		},
		{
			name: "game over with rank",
			snap: round.Snapshot{
				State:       round.StateOver,
				PlayerName:  "bob",
				Score:       42,
				Rank:        0,
				Leaderboard: []leaderboard.Entry{{Name: "bob", Score: 42}},
			},
			want: []string{"GAME OVER", "bob scored 42", "New high score! Rank #1", "HIGH SCORES"},
		},
		{
			name: "game over unranked",
			snap: round.Snapshot{State: round.StateOver, PlayerName: "cy", Rank: -1},
			want: []string{"GAME OVER", "cy scored 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewScreen(80, 24)
			drawPlay(s, tt.snap, -1, 0)
			out := s.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("screen missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestDrawPlayUnrankedHasNoHighScoreBanner(t *testing.T) {
	s := core.NewScreen(80, 24)
	drawPlay(s, round.Snapshot{State: round.StateOver, PlayerName: "cy", Rank: -1}, -1, 0)
	if strings.Contains(s.String(), "New high score") {
		t.Error("unranked round shows a high score banner")
	}
}

func TestDrawPlayEmptyLeaderboardHasNoBest(t *testing.T) {
	s := core.NewScreen(80, 24)
	drawPlay(s, round.Snapshot{State: round.StateActive, PlayerName: "ann", TimeRemaining: 9, Rank: -1}, -1, 0)
	if strings.Contains(s.String(), "Best:") {
		t.Error("empty leaderboard shows a best score")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText() = %q, want %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText() = %q, want unchanged", got)
	}
}
