package pathfind

import (
	"math"

	"github.com/milk9111/tilenav/common"
)

// Options tunes a single search.
type Options struct {
	AllowDiagonal bool
	// DiagonalCost multiplies the destination cost of a diagonal step.
	// Non-positive values fall back to sqrt(2).
	DiagonalCost float64
	// CutCorners lets a diagonal step pass between two unwalkable orthogonal
	// neighbours. When false, one blocked orthogonal neighbour is enough to
	// reject the step.
	CutCorners bool
	// MaxIterations caps expanded nodes. 0 means unlimited.
	MaxIterations int
	// Trace, when set, is reset and filled by the search.
	Trace *Trace
}

// Trace records what a search did, mostly for debug drawing.
type Trace struct {
	Expanded int
	Visited  []common.Point
	// Capped is set when MaxIterations stopped the search before it finished.
	Capped bool
}

func DefaultOptions() Options {
	return Options{
		AllowDiagonal: true,
		DiagonalCost:  math.Sqrt2,
	}
}

func (o Options) normalized() Options {
	if o.DiagonalCost <= 0 || math.IsNaN(o.DiagonalCost) || math.IsInf(o.DiagonalCost, 0) {
		o.DiagonalCost = math.Sqrt2
	}
	if o.MaxIterations < 0 {
		o.MaxIterations = 0
	}
	return o
}

func (t *Trace) reset() {
	if t == nil {
		return
	}
	t.Expanded = 0
	t.Visited = t.Visited[:0]
	t.Capped = false
}

func (t *Trace) visit(x, y int) {
	if t == nil {
		return
	}
	t.Expanded++
	t.Visited = append(t.Visited, common.Point{X: x, Y: y})
}
