package system

import (
	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/pathfind"
	"github.com/milk9111/tilenav/spatial"
)

// Agent walks a grid path one cell per tick.
type Agent struct {
	ID   spatial.EntityID
	Cell common.Point
	Goal common.Point

	// Path is the last search result, nil when none was found. Step is the
	// index of Cell within Path.Points.
	Path *pathfind.Path
	Step int
	// Waypoints is Path with collinear points removed, for drawing.
	Waypoints *pathfind.Path
	Trace     pathfind.Trace

	FrameCounter int
	LastStart    common.Point
	LastGoal     common.Point
	// Stuck is set while the last search found no path.
	Stuck bool

	dirty bool
}

func (a *Agent) AtGoal() bool {
	return a.Cell == a.Goal
}

// Remaining is the number of cells left to walk on the current path.
func (a *Agent) Remaining() int {
	if a.Path == nil {
		return 0
	}
	return max(0, a.Path.Len()-1-a.Step)
}

func (a *Agent) setPath(p *pathfind.Path) {
	a.Path.Release()
	a.Path = p
	a.Waypoints = pathfind.Simplify(p)
	a.Step = 0
}
