package navgrid

import (
	"errors"
	"math"
	"testing"
)

func mustGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return g
}

func TestNewRejectsInvalidSize(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"zero_width", 0, 4},
		{"zero_height", 4, 0},
		{"negative", -1, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := New(c.w, c.h)
			if g != nil {
				t.Fatalf("expected nil grid")
			}
			if !errors.Is(err, ErrInvalidSize) {
				t.Fatalf("expected ErrInvalidSize, got %v", err)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	g := mustGrid(t, 3, 2)
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("expected 3x2, got %dx%d", g.Width(), g.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if !g.IsWalkable(x, y) {
				t.Fatalf("cell (%d,%d) should default to walkable", x, y)
			}
			if g.Cost(x, y) != 1 {
				t.Fatalf("cell (%d,%d) should default to cost 1, got %v", x, y, g.Cost(x, y))
			}
		}
	}
}

func TestOutOfRange(t *testing.T) {
	g := mustGrid(t, 2, 2)
	coords := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {100, 100}}
	for _, c := range coords {
		g.SetWalkable(c[0], c[1], true)
		g.SetCost(c[0], c[1], 7)
		if g.IsWalkable(c[0], c[1]) {
			t.Fatalf("out-of-range (%d,%d) should read unwalkable", c[0], c[1])
		}
		if g.Cost(c[0], c[1]) != 1 {
			t.Fatalf("out-of-range (%d,%d) should read cost 1", c[0], c[1])
		}
	}
}

func TestSetCostKeepsWalkability(t *testing.T) {
	g := mustGrid(t, 4, 4)
	g.SetWalkable(1, 1, false)
	g.SetCost(1, 1, 5)
	if g.IsWalkable(1, 1) {
		t.Fatalf("SetCost must not change walkability")
	}
	if g.Cost(1, 1) != 5 {
		t.Fatalf("expected cost 5, got %v", g.Cost(1, 1))
	}

	for _, bad := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		g.SetCost(2, 2, bad)
		if g.Cost(2, 2) != 1 {
			t.Fatalf("invalid cost %v should be ignored, got %v", bad, g.Cost(2, 2))
		}
	}
}

func TestFillClipsToBounds(t *testing.T) {
	g := mustGrid(t, 5, 5)
	g.FillWalkable(3, 3, 10, 10, false)
	g.FillCost(-2, -2, 4, 4, 3)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			wantBlocked := x >= 3 && y >= 3
			if g.IsWalkable(x, y) == wantBlocked {
				t.Fatalf("cell (%d,%d) walkable=%v, expected %v", x, y, g.IsWalkable(x, y), !wantBlocked)
			}
			wantCost := 1.0
			if x < 2 && y < 2 {
				wantCost = 3
			}
			if g.Cost(x, y) != wantCost {
				t.Fatalf("cell (%d,%d) cost=%v, expected %v", x, y, g.Cost(x, y), wantCost)
			}
		}
	}

	// fully outside and degenerate rectangles are no-ops
	g.FillWalkable(6, 6, 2, 2, false)
	g.FillWalkable(0, 0, 0, 3, false)
	g.FillWalkable(-5, 0, 3, 3, false)
	if !g.IsWalkable(0, 0) {
		t.Fatalf("no-op fill changed (0,0)")
	}
}

func TestClear(t *testing.T) {
	g := mustGrid(t, 3, 3)
	g.FillWalkable(0, 0, 3, 3, false)
	g.FillCost(0, 0, 3, 3, 0.5)
	if g.CostFloor() != 0.5 {
		t.Fatalf("expected floor 0.5, got %v", g.CostFloor())
	}
	g.Clear()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if !g.IsWalkable(x, y) || g.Cost(x, y) != 1 {
				t.Fatalf("cell (%d,%d) not reset", x, y)
			}
		}
	}
	if g.CostFloor() != 1 {
		t.Fatalf("expected floor reset to 1, got %v", g.CostFloor())
	}
}

func TestCostFloorNeverAboveOne(t *testing.T) {
	g := mustGrid(t, 2, 2)
	g.SetCost(0, 0, 9)
	if g.CostFloor() != 1 {
		t.Fatalf("expected floor 1, got %v", g.CostFloor())
	}
	g.SetCost(1, 1, 0.25)
	g.SetCost(1, 1, 4)
	if g.CostFloor() != 0.25 {
		t.Fatalf("floor should stay at the lowest cost seen, got %v", g.CostFloor())
	}
}

func TestDestroy(t *testing.T) {
	g := mustGrid(t, 2, 2)
	g.Destroy()
	if g.Width() != 0 || g.Height() != 0 {
		t.Fatalf("destroyed grid should report 0x0")
	}
	if g.IsWalkable(0, 0) {
		t.Fatalf("destroyed grid should read blocked")
	}
	g.SetWalkable(0, 0, true)
	g.FillCost(0, 0, 2, 2, 3)
}
