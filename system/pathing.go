package system

import "log"

const defaultPathRepathFrames = 15

// PathingSystem searches for agents and walks them along their paths.
type PathingSystem struct {
	RepathFrames int
}

func NewPathingSystem() *PathingSystem {
	return &PathingSystem{RepathFrames: defaultPathRepathFrames}
}

func (ps *PathingSystem) Update(w *World) {
	if ps == nil || w == nil || w.Finder == nil {
		return
	}
	repath := ps.RepathFrames
	if repath <= 0 {
		repath = defaultPathRepathFrames
	}

	for _, a := range w.Agents.Values() {
		a.FrameCounter++
		if a.AtGoal() && !a.dirty {
			continue
		}
		if a.dirty || a.LastGoal != a.Goal || a.FrameCounter%repath == 0 {
			ps.repath(w, a)
		}
		ps.advance(w, a)
	}
}

func (ps *PathingSystem) repath(w *World, a *Agent) {
	opts := w.Finder.Options()
	opts.Trace = &a.Trace
	path := w.Finder.FindEx(a.Cell.X, a.Cell.Y, a.Goal.X, a.Goal.Y, opts)

	if path == nil && !a.Stuck {
		if a.Trace.Capped {
			log.Printf("pathing: agent=%d gave up after %d expansions to %d,%d", a.ID, a.Trace.Expanded, a.Goal.X, a.Goal.Y)
		} else {
			log.Printf("pathing: agent=%d no path %d,%d -> %d,%d", a.ID, a.Cell.X, a.Cell.Y, a.Goal.X, a.Goal.Y)
		}
	}
	a.Stuck = path == nil
	a.setPath(path)
	a.LastStart = a.Cell
	a.LastGoal = a.Goal
	a.dirty = false
}

// advance moves a one cell along its path. A blocked next cell forces a new
// search on the following tick.
func (ps *PathingSystem) advance(w *World, a *Agent) {
	if a.Path == nil || a.Step+1 >= a.Path.Len() {
		return
	}
	next := a.Path.Points[a.Step+1]
	if !w.Grid.IsWalkable(next.X, next.Y) {
		a.dirty = true
		return
	}
	if !w.placeAgent(a, next) {
		a.dirty = true
		return
	}
	a.Step++
}
