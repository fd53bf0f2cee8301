package scoring

import (
	"math"
	"testing"

	"github.com/vovakirdan/bubble-pop/internal/bubble"
)

func colorPtr(c bubble.Color) *bubble.Color {
	return &c
}

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name  string
		color bubble.Color
		last  *bubble.Color
		want  int
	}{
		{"first pop red", bubble.Red, nil, 1},
		{"first pop black", bubble.Black, nil, 10},
		{"red after red floors 1.5", bubble.Red, colorPtr(bubble.Red), 1},
		{"pink after pink", bubble.Pink, colorPtr(bubble.Pink), 3},
		{"green after green floors 7.5", bubble.Green, colorPtr(bubble.Green), 7},
		{"blue after blue", bubble.Blue, colorPtr(bubble.Blue), 12},
		{"black after black", bubble.Black, colorPtr(bubble.Black), 15},
		{"blue after green", bubble.Blue, colorPtr(bubble.Green), 8},
		{"red after black", bubble.Red, colorPtr(bubble.Black), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointsFor(tt.color, tt.last); got != tt.want {
				t.Errorf("PointsFor(%s) = %d, want %d", tt.color, got, tt.want)
			}
		})
	}
}

func TestPointsForMatchesFlooredMultiplier(t *testing.T) {
	for _, c := range bubble.Palette {
		want := int(math.Floor(ComboMultiplier * float64(c.Points())))
		if got := PointsFor(c, colorPtr(c)); got != want {
			t.Errorf("combo %s = %d, want floor(1.5*%d) = %d", c, got, c.Points(), want)
		}
	}
}

func TestComboSequence(t *testing.T) {
	var combo Combo

	steps := []struct {
		color      bubble.Color
		wantPoints int
		wantCombo  bool
		wantStreak int
	}{
		{bubble.Green, 5, false, 0},
		{bubble.Green, 7, true, 1},
		{bubble.Green, 7, true, 2},
		{bubble.Red, 1, false, 0},
		{bubble.Black, 10, false, 0},
		{bubble.Black, 15, true, 1},
	}

	for i, s := range steps {
		res := combo.Apply(s.color)
		if res.Points != s.wantPoints || res.Combo != s.wantCombo || res.Streak != s.wantStreak {
			t.Errorf("step %d (%s): got %+v, want points=%d combo=%v streak=%d",
				i, s.color, res, s.wantPoints, s.wantCombo, s.wantStreak)
		}
		if last := combo.Last(); last == nil || *last != s.color {
			t.Errorf("step %d: last color not updated", i)
		}
	}
}

func TestPreviewMatchesApply(t *testing.T) {
	sequence := []bubble.Color{
		bubble.Red, bubble.Red, bubble.Pink, bubble.Blue, bubble.Blue,
		bubble.Blue, bubble.Green, bubble.Black, bubble.Black, bubble.Red,
	}

	var combo Combo
	for i, c := range sequence {
		preview := combo.Preview(c)
		streak := combo.Streak()
		if again := combo.Preview(c); again != preview || combo.Streak() != streak {
			t.Fatalf("step %d: Preview changed state", i)
		}
		if res := combo.Apply(c); res.Points != preview {
			t.Errorf("step %d: preview %d != applied %d", i, preview, res.Points)
		}
	}
}

func TestComboReset(t *testing.T) {
	var combo Combo
	combo.Apply(bubble.Pink)
	combo.Apply(bubble.Pink)

	combo.Reset()

	if combo.Last() != nil {
		t.Error("Reset should clear the last color")
	}
	if combo.Streak() != 0 {
		t.Errorf("Reset should clear the streak, got %d", combo.Streak())
	}
	if res := combo.Apply(bubble.Pink); res.Combo {
		t.Error("first pop after Reset must not be a combo")
	}
}
