package pathfind

import (
	"container/heap"
	"errors"
	"math"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/navgrid"
)

var ErrNilGrid = errors.New("pathfind: grid is nil")

// ProfileScope names the profiler scope wrapped around Find and FindEx.
const ProfileScope = "pathfinding"

type step struct {
	dx, dy   int
	diagonal bool
}

// Orthogonal steps come first so 4-way searches can slice them off.
var steps = [...]step{
	{dx: 0, dy: -1},
	{dx: 1, dy: 0},
	{dx: 0, dy: 1},
	{dx: -1, dy: 0},
	{dx: 1, dy: -1, diagonal: true},
	{dx: 1, dy: 1, diagonal: true},
	{dx: -1, dy: 1, diagonal: true},
	{dx: -1, dy: -1, diagonal: true},
}

// Pathfinder runs weighted A* over a grid. It keeps no state between
// searches other than the grid, its default options and the profiler.
// It is not safe for concurrent use.
type Pathfinder struct {
	grid     *navgrid.Grid
	options  Options
	profiler Profiler
}

func New(grid *navgrid.Grid) (*Pathfinder, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	return &Pathfinder{grid: grid, options: DefaultOptions()}, nil
}

func (pf *Pathfinder) Grid() *navgrid.Grid {
	if pf == nil {
		return nil
	}
	return pf.grid
}

// Options returns the options used by Find and HasPath.
func (pf *Pathfinder) Options() Options {
	if pf == nil {
		return DefaultOptions()
	}
	return pf.options
}

func (pf *Pathfinder) SetOptions(opts Options) {
	if pf == nil {
		return
	}
	pf.options = opts
}

// SetProfiler installs a profiler around Find and FindEx. nil disables it.
func (pf *Pathfinder) SetProfiler(p Profiler) {
	if pf == nil {
		return
	}
	pf.profiler = p
}

// Find searches with the pathfinder's options. nil means no path.
func (pf *Pathfinder) Find(startX, startY, goalX, goalY int) *Path {
	return pf.FindEx(startX, startY, goalX, goalY, pf.Options())
}

// FindEx searches with explicit options. nil means no path: the goal is
// unreachable, an endpoint is blocked or out of range, or MaxIterations
// ran out.
func (pf *Pathfinder) FindEx(startX, startY, goalX, goalY int, opts Options) *Path {
	if pf == nil {
		return nil
	}
	if pf.profiler != nil {
		pf.profiler.BeginScope(ProfileScope)
		defer pf.profiler.EndScope(ProfileScope)
	}
	path, _ := pf.search(startX, startY, goalX, goalY, opts, true)
	return path
}

// HasPath runs the same search as Find without building the point list.
func (pf *Pathfinder) HasPath(startX, startY, goalX, goalY int) bool {
	return pf.HasPathEx(startX, startY, goalX, goalY, pf.Options())
}

func (pf *Pathfinder) HasPathEx(startX, startY, goalX, goalY int, opts Options) bool {
	if pf == nil {
		return false
	}
	_, ok := pf.search(startX, startY, goalX, goalY, opts, false)
	return ok
}

// LineClear reports whether the Bresenham line between the two cells only
// crosses walkable cells.
func (pf *Pathfinder) LineClear(x0, y0, x1, y1 int) bool {
	if pf == nil {
		return false
	}
	return LineClear(pf.grid, x0, y0, x1, y1)
}

func (pf *Pathfinder) search(sx, sy, gx, gy int, opts Options, build bool) (*Path, bool) {
	opts = opts.normalized()
	opts.Trace.reset()

	g := pf.grid
	if !g.IsWalkable(sx, sy) || !g.IsWalkable(gx, gy) {
		return nil, false
	}
	if sx == gx && sy == gy {
		if !build {
			return nil, true
		}
		return &Path{Points: []common.Point{{X: sx, Y: sy}}}, true
	}

	width := g.Width()
	size := width * g.Height()
	scale := math.Min(1, g.CostFloor())
	heuristic := func(x, y int) float64 {
		if opts.AllowDiagonal {
			return common.Octile(x, y, gx, gy, opts.DiagonalCost) * scale
		}
		return float64(common.Manhattan(x, y, gx, gy)) * scale
	}

	neighbours := steps[:4]
	if opts.AllowDiagonal {
		neighbours = steps[:]
	}

	gScore := make([]float64, size)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	parent := make([]int32, size)
	closed := make([]bool, size)
	inOpen := make([]*openNode, size)

	startIdx := sy*width + sx
	goalIdx := gy*width + gx
	gScore[startIdx] = 0
	parent[startIdx] = -1

	open := &openSet{}
	var seq uint64
	h0 := heuristic(sx, sy)
	first := &openNode{idx: startIdx, h: h0, f: h0, seq: seq}
	heap.Push(open, first)
	inOpen[startIdx] = first

	expanded := 0
	for open.Len() > 0 {
		if opts.MaxIterations > 0 && expanded >= opts.MaxIterations {
			if opts.Trace != nil {
				opts.Trace.Capped = true
			}
			return nil, false
		}

		current := heap.Pop(open).(*openNode)
		inOpen[current.idx] = nil
		closed[current.idx] = true
		expanded++

		cx, cy := current.idx%width, current.idx/width
		opts.Trace.visit(cx, cy)

		if current.idx == goalIdx {
			if !build {
				return nil, true
			}
			return reconstructPath(parent, width, goalIdx, gScore[goalIdx]), true
		}

		for _, s := range neighbours {
			nx, ny := cx+s.dx, cy+s.dy
			if !g.IsWalkable(nx, ny) {
				continue
			}
			if s.diagonal && !opts.CutCorners {
				if !g.IsWalkable(cx+s.dx, cy) || !g.IsWalkable(cx, cy+s.dy) {
					continue
				}
			}
			idx := ny*width + nx
			if closed[idx] {
				continue
			}

			edge := g.Cost(nx, ny)
			if s.diagonal {
				edge *= opts.DiagonalCost
			}
			tentative := current.g + edge
			if tentative >= gScore[idx] {
				continue
			}
			gScore[idx] = tentative
			parent[idx] = int32(current.idx)

			seq++
			if node := inOpen[idx]; node != nil {
				node.g = tentative
				node.f = tentative + node.h
				node.seq = seq
				heap.Fix(open, node.index)
				continue
			}
			h := heuristic(nx, ny)
			node := &openNode{idx: idx, g: tentative, h: h, f: tentative + h, seq: seq}
			heap.Push(open, node)
			inOpen[idx] = node
		}
	}
	return nil, false
}

func reconstructPath(parent []int32, width, goalIdx int, cost float64) *Path {
	points := make([]common.Point, 0, 32)
	for idx := goalIdx; idx >= 0; idx = int(parent[idx]) {
		points = append(points, common.Point{X: idx % width, Y: idx / width})
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return &Path{Points: points, Cost: cost}
}
