package system

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/levels"
	"github.com/milk9111/tilenav/navgrid"
	"github.com/milk9111/tilenav/pathfind"
	"github.com/milk9111/tilenav/physics"
	"github.com/milk9111/tilenav/profiles"
	"github.com/milk9111/tilenav/spatial"
)

var (
	ErrNoLevel      = errors.New("system: no level loaded")
	ErrUnwalkable   = errors.New("system: no walkable cell nearby")
	ErrUnknownAgent = errors.New("system: unknown agent")
)

const (
	defaultIndexCapacity = 64
	physicsStep          = 1.0 / 60.0
)

type Config struct {
	LevelPath   string
	ProfilePath string
	// Physics routes solid tiles and obstacle entities through a Chipmunk
	// space instead of only the profile's blocked tiles.
	Physics       bool
	IndexCapacity int
}

// World owns the level, its navigation grid, the pathfinder, the spatial
// index and the agents walking it.
type World struct {
	Level   *levels.Level
	Profile *profiles.Profile
	Grid    *navgrid.Grid
	Finder  *pathfind.Pathfinder
	Index   *spatial.Index
	Physics *physics.World
	Agents  SparseSet[*Agent]
	Timer   *pathfind.ScopeTimer

	cfg     Config
	pathing *PathingSystem
	nextID  spatial.EntityID
	tick    int
}

// NewWorld creates a world and loads the configured level and profile.
func NewWorld(cfg Config) (*World, error) {
	if cfg.IndexCapacity <= 0 {
		cfg.IndexCapacity = defaultIndexCapacity
	}
	w := &World{
		cfg:     cfg,
		pathing: NewPathingSystem(),
		Timer:   pathfind.NewScopeTimer(),
	}
	if err := w.Load(cfg.LevelPath, cfg.ProfilePath); err != nil {
		return nil, err
	}
	return w, nil
}

// Load replaces the level and profile, rebuilds the grid and respawns the
// level's agents.
func (w *World) Load(levelPath, profilePath string) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	lvl, err := levels.Load(levelPath)
	if err != nil {
		return err
	}
	return w.install(lvl, levelPath, profilePath)
}

// Restart reloads the current level and profile from scratch.
func (w *World) Restart() error {
	if w == nil || w.Level == nil {
		return ErrNoLevel
	}
	return w.Load(w.cfg.LevelPath, w.cfg.ProfilePath)
}

func (w *World) install(lvl *levels.Level, levelPath, profilePath string) error {
	profile, err := profiles.LoadProfile(profilePath)
	if err != nil {
		return err
	}
	grid, err := navgrid.New(lvl.Width, lvl.Height)
	if err != nil {
		return err
	}
	finder, err := pathfind.New(grid)
	if err != nil {
		return err
	}

	w.Grid.Destroy()
	w.Index.Destroy()

	w.cfg.LevelPath, w.cfg.ProfilePath = levelPath, profilePath
	w.Level = lvl
	w.Profile = profile
	w.Grid = grid
	w.Finder = finder
	w.Finder.SetProfiler(w.Timer)
	w.Index = spatial.New(w.cfg.IndexCapacity)
	w.Agents.Clear()
	w.nextID = 0
	w.Physics = nil
	if w.cfg.Physics {
		w.Physics = physics.NewWorld(lvl)
	}

	remaining := w.spawnObstaclesFromEntities(lvl.Entities)
	if err := w.syncGrid(); err != nil {
		log.Printf("system: sync grid for %s: %v", lvl.Name, err)
	}
	w.spawnAgentsFromEntities(remaining)
	return nil
}

// syncGrid applies the profile to the grid and, with physics on, blocks
// every cell under a solid shape.
func (w *World) syncGrid() error {
	if w.Level == nil {
		return ErrNoLevel
	}
	w.Grid.Clear()
	err := w.Profile.Apply(w.Grid, w.Level)
	if w.Physics != nil {
		w.Physics.BlockGrid(w.Grid)
	}
	w.Finder.SetOptions(w.Profile.Options())
	w.pathing.RepathFrames = w.Profile.RepathFrames
	return err
}

// Reload reacts to a changed file. Profiles and scripts re-sync the grid in
// place. A change to the current level's file reloads everything from it.
func (w *World) Reload(change profiles.Change) error {
	if w == nil || w.Level == nil {
		return ErrNoLevel
	}
	switch change.Kind {
	case profiles.KindProfile, profiles.KindScript:
		profile, err := profiles.LoadProfile(w.cfg.ProfilePath)
		if err != nil {
			return err
		}
		w.Profile = profile
		err = w.syncGrid()
		w.relocateAgents()
		w.resyncIndex()
		return err
	case profiles.KindLevel:
		if !sameFile(change.Path, w.cfg.LevelPath) {
			return nil
		}
		// the edited file on disk, not the embedded copy
		lvl, err := levels.LoadLevel(change.Path)
		if err != nil {
			return err
		}
		return w.install(lvl, w.cfg.LevelPath, w.cfg.ProfilePath)
	}
	return nil
}

func sameFile(a, b string) bool {
	return strings.EqualFold(filepath.Base(a), filepath.Base(b))
}

// relocateAgents moves agents standing on cells that became unwalkable and
// flags every agent for a new search.
func (w *World) relocateAgents() {
	for _, a := range w.Agents.Values() {
		a.dirty = true
		if w.Grid.IsWalkable(a.Cell.X, a.Cell.Y) {
			continue
		}
		x, y, ok := w.Grid.NearestWalkable(a.Cell.X, a.Cell.Y)
		if !ok {
			continue
		}
		w.placeAgent(a, common.Point{X: x, Y: y})
	}
}

// resyncIndex rebuilds the spatial index from the agents. With physics on the
// bodies are the source of truth.
func (w *World) resyncIndex() {
	if w.Physics != nil {
		if n := w.Physics.SyncOccupancy(w.Index); n != w.Agents.Len() {
			log.Printf("system: index holds %d of %d agents after resync", n, w.Agents.Len())
		}
		return
	}
	w.Index.Clear()
	for _, a := range w.Agents.Values() {
		if !w.Index.Add(int32(a.Cell.X), int32(a.Cell.Y), a.ID) {
			log.Printf("system: agent=%d cell %d,%d full after resync", a.ID, a.Cell.X, a.Cell.Y)
		}
	}
}

// SpawnAgent places a new agent on the walkable cell nearest to start.
func (w *World) SpawnAgent(start, goal common.Point) (spatial.EntityID, error) {
	if w == nil || w.Level == nil {
		return spatial.InvalidEntity, ErrNoLevel
	}
	x, y, ok := w.Grid.NearestWalkable(start.X, start.Y)
	if !ok {
		return spatial.InvalidEntity, ErrUnwalkable
	}
	cell := common.Point{X: x, Y: y}

	w.nextID++
	id := w.nextID
	if !w.Index.Add(int32(cell.X), int32(cell.Y), id) {
		w.nextID--
		return spatial.InvalidEntity, fmt.Errorf("system: cell %d,%d is full", cell.X, cell.Y)
	}
	a := &Agent{ID: id, Cell: cell, Goal: cell, dirty: true}
	w.Agents.Set(id, a)
	if w.Physics != nil {
		w.Physics.AddAgent(id, cell)
	}
	if err := w.SetGoal(id, goal); err != nil {
		log.Printf("system: agent=%d goal %d,%d: %v", id, goal.X, goal.Y, err)
	}
	return id, nil
}

func (w *World) RemoveAgent(id spatial.EntityID) {
	a, ok := w.Agents.Get(id)
	if !ok {
		return
	}
	w.Index.Remove(int32(a.Cell.X), int32(a.Cell.Y), id)
	if w.Physics != nil {
		w.Physics.RemoveAgent(id)
	}
	a.Path.Release()
	w.Agents.Remove(id)
}

// SetGoal snaps goal to the nearest walkable cell and schedules a search.
func (w *World) SetGoal(id spatial.EntityID, goal common.Point) error {
	a, ok := w.Agents.Get(id)
	if !ok {
		return ErrUnknownAgent
	}
	x, y, ok := w.Grid.NearestWalkable(goal.X, goal.Y)
	if !ok {
		return ErrUnwalkable
	}
	snapped := common.Point{X: x, Y: y}
	if snapped != a.Goal || a.Path == nil {
		a.Goal = snapped
		a.dirty = true
	}
	return nil
}

// SetGoalAll points every agent at goal.
func (w *World) SetGoalAll(goal common.Point) {
	for _, id := range w.Agents.Entities() {
		if err := w.SetGoal(id, goal); err != nil {
			log.Printf("system: agent=%d goal %d,%d: %v", id, goal.X, goal.Y, err)
		}
	}
}

// ToggleWall flips the walkability of one cell. Agents on it are moved off.
func (w *World) ToggleWall(cell common.Point) {
	if w == nil || w.Grid == nil || !w.Grid.InBounds(cell.X, cell.Y) {
		return
	}
	w.Grid.SetWalkable(cell.X, cell.Y, !w.Grid.IsWalkable(cell.X, cell.Y))
	w.relocateAgents()
}

// AgentsNear lists agents within Chebyshev radius of cell.
func (w *World) AgentsNear(cell common.Point, radius int, out []spatial.Result) int {
	if w == nil || w.Index == nil {
		return 0
	}
	return w.Index.QueryRadius(int32(cell.X), int32(cell.Y), int32(radius), out)
}

// Update runs one tick: searches where needed, one step per agent, then the
// physics step.
func (w *World) Update() {
	if w == nil || w.Level == nil {
		return
	}
	w.tick++
	w.pathing.Update(w)
	if w.Physics != nil {
		w.Physics.Step(physicsStep)
	}
}

func (w *World) Tick() int {
	return w.tick
}

// placeAgent moves a to cell in the index and the physics world. When the
// target cell is full the index drops the agent; it is put back where it was.
func (w *World) placeAgent(a *Agent, cell common.Point) bool {
	if !w.Index.Move(int32(a.Cell.X), int32(a.Cell.Y), int32(cell.X), int32(cell.Y), a.ID) {
		log.Printf("system: agent=%d cell %d,%d full, staying at %d,%d", a.ID, cell.X, cell.Y, a.Cell.X, a.Cell.Y)
		w.Index.Add(int32(a.Cell.X), int32(a.Cell.Y), a.ID)
		return false
	}
	if w.Physics != nil {
		w.Physics.MoveAgent(a.ID, cell)
	}
	a.Cell = cell
	return true
}
