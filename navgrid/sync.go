package navgrid

// TileSource exposes tile identifiers of a tile-layer map.
type TileSource interface {
	TileIDAt(layer, x, y int) uint16
}

// CostFunc maps a tile identifier to a movement cost. A result of 0 marks
// the tile blocked. It must depend only on its argument: the order and
// number of calls during a sync are unspecified.
type CostFunc func(tileID uint16) float64

// SyncFromSource marks every cell blocked when its tile identifier is in
// blocked, otherwise walkable with cost 1.
func (g *Grid) SyncFromSource(src TileSource, layer int, blocked []uint16) {
	if g == nil || src == nil {
		return
	}
	set := make(map[uint16]struct{}, len(blocked))
	for _, id := range blocked {
		set[id] = struct{}{}
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			idx := g.index(x, y)
			_, isBlocked := set[src.TileIDAt(layer, x, y)]
			g.walkable[idx] = !isBlocked
			g.cost[idx] = defaultCost
		}
	}
	g.costFloor = defaultCost
}

// SyncWithCost asks costOf for every cell's tile. Zero, negative or NaN
// results block the cell; positive results make it walkable at that cost.
func (g *Grid) SyncWithCost(src TileSource, layer int, costOf CostFunc) {
	if g == nil || src == nil || costOf == nil {
		return
	}
	g.costFloor = defaultCost
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			idx := g.index(x, y)
			c := costOf(src.TileIDAt(layer, x, y))
			if !validCost(c) {
				g.walkable[idx] = false
				g.cost[idx] = defaultCost
				continue
			}
			g.walkable[idx] = true
			g.cost[idx] = c
			g.lowerFloor(c)
		}
	}
}

// NearestWalkable finds the walkable cell closest to (x, y) by breadth-first
// search over 8-connected neighbours. (x, y) itself is returned when walkable.
func (g *Grid) NearestWalkable(x, y int) (int, int, bool) {
	if !g.InBounds(x, y) {
		return 0, 0, false
	}
	start := g.index(x, y)
	if g.walkable[start] {
		return x, y, true
	}
	visited := make([]bool, len(g.walkable))
	visited[start] = true
	queue := []int{start}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if g.walkable[idx] {
			return idx % g.width, idx / g.width, true
		}
		cx, cy := idx%g.width, idx/g.width
		for _, d := range neighbourOffsets {
			nx, ny := cx+d[0], cy+d[1]
			if !g.InBounds(nx, ny) {
				continue
			}
			n := g.index(nx, ny)
			if visited[n] {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return 0, 0, false
}

var neighbourOffsets = [...][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}
