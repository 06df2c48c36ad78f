package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/levels"
	"github.com/milk9111/tilenav/profiles"
	"github.com/milk9111/tilenav/spatial"
	"github.com/milk9111/tilenav/system"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	mapOffsetX = 16
	mapOffsetY = 16
)

type Game struct {
	world   *system.World
	ui      *ebitenui.UI
	panel   *panelUI
	watcher *profiles.Watcher
	rng     *rand.Rand

	selected    spatial.EntityID
	paused      bool
	showTrace   bool
	showPhysics bool
	clipboardOK bool
	status      string
}

func NewGame(world *system.World, extraAgents int, seed int64, watch bool) *Game {
	g := &Game{
		world:     world,
		rng:       rand.New(rand.NewSource(seed)),
		showTrace: true,
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("navviewer: clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if watch {
		w, err := profiles.NewWatcher(profiles.Dir, levels.Dir)
		if err != nil {
			log.Printf("navviewer: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.spawnRandom(extraAgents)
	g.selectNext()
	g.ui, g.panel = newPanelUI(g)
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.drainWatcher()
	g.handleInput()

	if !g.paused {
		g.world.Update()
	}

	g.panel.refresh(g)
	g.ui.Update()
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.world.Reload(change); err != nil {
				log.Printf("navviewer: reload %s (%s): %v", change.Path, change.Kind, err)
				g.status = "reload failed: " + err.Error()
				continue
			}
			g.status = fmt.Sprintf("reloaded %s", change.Path)
			if !g.world.Agents.Has(g.selected) {
				g.selectNext()
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("navviewer: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.showTrace = !g.showTrace
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.showPhysics = !g.showPhysics
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.selectNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyPath()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.spawnRandom(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		g.world.RemoveAgent(g.selected)
		g.selectNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.world.Restart(); err != nil {
			g.status = "reload failed: " + err.Error()
		} else {
			g.selectNext()
		}
	}

	cell, ok := g.cursorCell()
	if !ok {
		return
	}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.world.SetGoalAll(cell)
			return
		}
		if err := g.world.SetGoal(g.selected, cell); err != nil {
			g.status = err.Error()
		}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		g.world.ToggleWall(cell)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		id, err := g.world.SpawnAgent(cell, cell)
		if err != nil {
			g.status = err.Error()
			return
		}
		g.selected = id
	}
}

// cursorCell returns the grid cell under the mouse, if any.
func (g *Game) cursorCell() (common.Point, bool) {
	mx, my := ebiten.CursorPosition()
	cell := common.CellOf(float64(mx-mapOffsetX), float64(my-mapOffsetY))
	if g.world.Grid == nil || !g.world.Grid.InBounds(cell.X, cell.Y) {
		return common.Point{}, false
	}
	return cell, true
}

func (g *Game) togglePause() {
	g.paused = !g.paused
}

// selectNext cycles the selection through agents in set order.
func (g *Game) selectNext() {
	ids := g.world.Agents.Entities()
	if len(ids) == 0 {
		g.selected = spatial.InvalidEntity
		return
	}
	for i, id := range ids {
		if id == g.selected {
			g.selected = ids[(i+1)%len(ids)]
			return
		}
	}
	g.selected = ids[0]
}

func (g *Game) selectedAgent() *system.Agent {
	a, ok := g.world.Agents.Get(g.selected)
	if !ok {
		return nil
	}
	return a
}

// spawnRandom adds n agents on random walkable cells with random goals.
func (g *Game) spawnRandom(n int) {
	grid := g.world.Grid
	if grid == nil {
		return
	}
	for spawned, tries := 0, 0; spawned < n && tries < n*50; tries++ {
		start := common.Point{X: g.rng.Intn(grid.Width()), Y: g.rng.Intn(grid.Height())}
		goal := common.Point{X: g.rng.Intn(grid.Width()), Y: g.rng.Intn(grid.Height())}
		if !grid.IsWalkable(start.X, start.Y) || !grid.IsWalkable(goal.X, goal.Y) {
			continue
		}
		if _, err := g.world.SpawnAgent(start, goal); err != nil {
			log.Printf("navviewer: spawn at %d,%d: %v", start.X, start.Y, err)
			continue
		}
		spawned++
	}
}

// copyPath puts the selected agent's path and waypoints on the clipboard.
func (g *Game) copyPath() {
	a := g.selectedAgent()
	if a == nil {
		return
	}
	if !g.clipboardOK {
		g.status = "clipboard unavailable"
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "agent %d %d,%d -> %d,%d\n", a.ID, a.Cell.X, a.Cell.Y, a.Goal.X, a.Goal.Y)
	fmt.Fprintf(&b, "path: %s\n", a.Path)
	fmt.Fprintf(&b, "waypoints: %s\n", a.Waypoints)
	clipboard.Write(clipboard.FmtText, []byte(b.String()))
	g.status = fmt.Sprintf("copied path of agent %d", a.ID)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWorld(screen)
	g.ui.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
