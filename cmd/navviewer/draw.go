package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/pathfind"
	"github.com/milk9111/tilenav/profiles"
	"github.com/milk9111/tilenav/system"
)

const tile = float32(common.TileSize)

var labelFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func cellRect(x, y int) (float32, float32) {
	return mapOffsetX + float32(x)*tile, mapOffsetY + float32(y)*tile
}

func cellCenter(p common.Point) (float32, float32) {
	cx, cy := common.CellCenter(p.X, p.Y)
	return mapOffsetX + float32(cx), mapOffsetY + float32(cy)
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	w := g.world
	if w.Level == nil || w.Grid == nil {
		return
	}

	g.drawLayers(screen)
	g.drawGrid(screen)
	if g.showTrace {
		if a := g.selectedAgent(); a != nil {
			drawTrace(screen, &a.Trace)
		}
	}
	if g.showPhysics && w.Physics != nil {
		drawPhysics(screen, w.Physics.Space())
	}

	pathColor := w.Profile.PathColor.ColorOr(colornames.Gold)
	for _, a := range w.Agents.Values() {
		drawPath(screen, a, pathColor, a.ID == g.selected)
	}
	for _, a := range w.Agents.Values() {
		drawAgent(screen, a, a.ID == g.selected)
	}
}

// drawLayers fills non-empty tiles of every layer with the layer's color.
func (g *Game) drawLayers(screen *ebiten.Image) {
	lvl := g.world.Level
	for layer := range lvl.Layers {
		fill := color.Color(colornames.Steelblue)
		if layer < len(lvl.LayerMeta) {
			if c, err := profiles.ParseColor(lvl.LayerMeta[layer].Color); err == nil {
				fill = c
			}
		}
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				if lvl.TileIDAt(layer, x, y) == 0 {
					continue
				}
				px, py := cellRect(x, y)
				vector.FillRect(screen, px, py, tile, tile, fill, false)
			}
		}
	}
}

// drawGrid shades blocked cells and cells whose cost differs from 1.
func (g *Game) drawGrid(screen *ebiten.Image) {
	grid := g.world.Grid
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			px, py := cellRect(x, y)
			switch cost := grid.Cost(x, y); {
			case !grid.IsWalkable(x, y):
				vector.FillRect(screen, px, py, tile, tile, withAlpha(colornames.Black, 170), false)
			case cost > 1:
				a := uint8(min(200, 40*cost))
				vector.FillRect(screen, px, py, tile, tile, withAlpha(colornames.Saddlebrown, a), false)
			case cost < 1:
				vector.FillRect(screen, px, py, tile, tile, withAlpha(colornames.Lightgray, 60), false)
			}
			vector.StrokeRect(screen, px, py, tile, tile, 1, withAlpha(colornames.Dimgray, 80), false)
		}
	}
}

func drawTrace(screen *ebiten.Image, trace *pathfind.Trace) {
	fill := withAlpha(colornames.Deepskyblue, 50)
	if trace.Capped {
		fill = withAlpha(colornames.Orange, 60)
	}
	for _, p := range trace.Visited {
		px, py := cellRect(p.X, p.Y)
		vector.FillRect(screen, px+2, py+2, tile-4, tile-4, fill, false)
	}
}

func drawPhysics(screen *ebiten.Image, space *cp.Space) {
	space.EachShape(func(s *cp.Shape) {
		bb := s.BB()
		x, y := mapOffsetX+float32(bb.L), mapOffsetY+float32(bb.B)
		vector.StrokeRect(screen, x, y, float32(bb.R-bb.L), float32(bb.T-bb.B), 1, colornames.Lime, false)
	})
}

func drawPath(screen *ebiten.Image, a *system.Agent, clr color.Color, selected bool) {
	if a.Path == nil {
		return
	}
	width := float32(1)
	if selected {
		width = 3
	}
	pts := a.Path.Points[a.Step:]
	for i := 1; i < len(pts); i++ {
		x0, y0 := cellCenter(pts[i-1])
		x1, y1 := cellCenter(pts[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
	if !selected || a.Waypoints == nil {
		return
	}
	for _, p := range a.Waypoints.Points {
		cx, cy := cellCenter(p)
		vector.FillRect(screen, cx-3, cy-3, 6, 6, colornames.White, false)
	}
}

func drawAgent(screen *ebiten.Image, a *system.Agent, selected bool) {
	fill := colornames.Deepskyblue
	if a.Stuck {
		fill = colornames.Crimson
	}
	size := tile * 0.6
	cx, cy := cellCenter(a.Cell)
	vector.FillRect(screen, cx-size/2, cy-size/2, size, size, fill, false)

	gx, gy := cellCenter(a.Goal)
	vector.StrokeLine(screen, gx-5, gy-5, gx+5, gy+5, 2, fill, true)
	vector.StrokeLine(screen, gx-5, gy+5, gx+5, gy-5, 2, fill, true)

	if !selected {
		return
	}
	vector.StrokeRect(screen, cx-size/2-2, cy-size/2-2, size+4, size+4, 2, colornames.White, false)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(cx+size/2+3), float64(cy-size/2-13))
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, fmt.Sprintf("#%d", a.ID), labelFace, op)
}
