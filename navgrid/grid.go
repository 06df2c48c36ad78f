package navgrid

import (
	"errors"
	"math"
)

var ErrInvalidSize = errors.New("navgrid: width and height must be positive")

const defaultCost = 1.0

// Grid holds per-tile walkability and movement cost.
// Cells are addressed by flat index y*width + x.
type Grid struct {
	width    int
	height   int
	walkable []bool
	cost     []float64

	// costFloor is the lowest cost set since the last Clear, capped at 1.
	costFloor float64
}

// New allocates a width x height grid with every cell walkable at cost 1.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	g := &Grid{
		width:    width,
		height:   height,
		walkable: make([]bool, width*height),
		cost:     make([]float64, width*height),
	}
	g.Clear()
	return g, nil
}

func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return g != nil && x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// SetWalkable is a no-op outside the grid.
func (g *Grid) SetWalkable(x, y int, walkable bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.walkable[g.index(x, y)] = walkable
}

// IsWalkable reports false outside the grid.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.walkable[g.index(x, y)]
}

// SetCost sets the cost of entering (x, y). Walkability is unchanged.
// Non-positive or NaN costs and out-of-range cells are ignored.
func (g *Grid) SetCost(x, y int, cost float64) {
	if !g.InBounds(x, y) || !validCost(cost) {
		return
	}
	g.cost[g.index(x, y)] = cost
	g.lowerFloor(cost)
}

// Cost returns the cost of entering (x, y), or 1 outside the grid.
func (g *Grid) Cost(x, y int) float64 {
	if !g.InBounds(x, y) {
		return defaultCost
	}
	return g.cost[g.index(x, y)]
}

// CostFloor is a lower bound on every cell cost, never above 1.
// Costs raised after being lowered do not lift the floor until Clear.
func (g *Grid) CostFloor() float64 {
	if g == nil || g.costFloor <= 0 {
		return defaultCost
	}
	return g.costFloor
}

// FillWalkable sets walkability over the rectangle clipped to the grid.
func (g *Grid) FillWalkable(x, y, w, h int, walkable bool) {
	x0, y0, x1, y1, ok := g.clip(x, y, w, h)
	if !ok {
		return
	}
	for row := y0; row < y1; row++ {
		base := row * g.width
		for col := x0; col < x1; col++ {
			g.walkable[base+col] = walkable
		}
	}
}

// FillCost sets cost over the rectangle clipped to the grid.
func (g *Grid) FillCost(x, y, w, h int, cost float64) {
	if !validCost(cost) {
		return
	}
	x0, y0, x1, y1, ok := g.clip(x, y, w, h)
	if !ok {
		return
	}
	for row := y0; row < y1; row++ {
		base := row * g.width
		for col := x0; col < x1; col++ {
			g.cost[base+col] = cost
		}
	}
	g.lowerFloor(cost)
}

// Clear resets every cell to walkable with cost 1.
func (g *Grid) Clear() {
	if g == nil {
		return
	}
	for i := range g.walkable {
		g.walkable[i] = true
		g.cost[i] = defaultCost
	}
	g.costFloor = defaultCost
}

// Destroy releases the cell buffers. The grid then behaves as 0x0.
func (g *Grid) Destroy() {
	if g == nil {
		return
	}
	g.walkable = nil
	g.cost = nil
	g.width = 0
	g.height = 0
}

func (g *Grid) clip(x, y, w, h int) (x0, y0, x1, y1 int, ok bool) {
	if g == nil || w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	x0, y0 = max(x, 0), max(y, 0)
	x1, y1 = min(x+w, g.width), min(y+h, g.height)
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1, y1, true
}

func (g *Grid) lowerFloor(cost float64) {
	if cost < g.costFloor {
		g.costFloor = cost
	}
}

func validCost(cost float64) bool {
	return cost > 0 && !math.IsNaN(cost) && !math.IsInf(cost, 0)
}
