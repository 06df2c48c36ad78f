package pathfind

import "github.com/milk9111/tilenav/navgrid"

// LineClear walks a Bresenham line from (x0, y0) to (x1, y1), endpoints
// included, and reports false at the first unwalkable cell. Costs are not
// consulted.
func LineClear(g *navgrid.Grid, x0, y0, x1, y1 int) bool {
	if g == nil {
		return false
	}
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := -(y1 - y0)
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	x, y := x0, y0
	for {
		if !g.IsWalkable(x, y) {
			return false
		}
		if x == x1 && y == y1 {
			return true
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}
