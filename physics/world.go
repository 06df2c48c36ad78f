package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/levels"
	"github.com/milk9111/tilenav/navgrid"
	"github.com/milk9111/tilenav/spatial"
)

type shapeKind int

const (
	kindSolid shapeKind = iota + 1
	kindBounds
	kindAgent
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBounds
	collisionTypeAgent
)

// cellInset keeps a cell query from touching shapes that only share an edge.
const cellInset = 0.01

const agentSize = common.TileSize * 0.6

// World owns a Chipmunk space holding the level's solid tiles, extra
// obstacles and one kinematic body per agent. Positions are in world units,
// common.TileSize per cell.
type World struct {
	space  *cp.Space
	width  int
	height int
	solids int
	agents map[spatial.EntityID]*cp.Body
}

// NewWorld builds static shapes for every physics layer of lvl plus segments
// along the level border.
func NewWorld(lvl *levels.Level) *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	w := &World{
		space:  space,
		agents: make(map[spatial.EntityID]*cp.Body),
	}
	if lvl == nil {
		return w
	}
	w.width, w.height = lvl.Width, lvl.Height
	for _, layer := range lvl.PhysicsLayers() {
		w.processLayerTiles(lvl.Layers[layer])
	}
	w.buildBounds()
	return w
}

func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Solids is the number of static solid shapes, tiles and obstacles together.
func (w *World) Solids() int {
	if w == nil {
		return 0
	}
	return w.solids
}

// AddObstacle adds a static box covering cells [x, x+cw) × [y, y+ch).
func (w *World) AddObstacle(x, y, cw, ch int) *cp.Shape {
	if w == nil || cw <= 0 || ch <= 0 {
		return nil
	}
	x0 := float64(x * common.TileSize)
	y0 := float64(y * common.TileSize)
	bb := cp.BB{L: x0, B: y0, R: x0 + float64(cw*common.TileSize), T: y0 + float64(ch*common.TileSize)}
	return w.addSolid(bb)
}

func (w *World) addSolid(bb cp.BB) *cp.Shape {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.UserData = kindSolid
	w.space.AddShape(shape)
	w.solids++
	return shape
}

// BlockGrid marks every cell overlapped by a solid shape as unwalkable and
// returns how many cells it blocked.
func (w *World) BlockGrid(grid *navgrid.Grid) int {
	if w == nil || grid == nil {
		return 0
	}
	blocked := 0
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if w.cellHasSolid(x, y) {
				if grid.IsWalkable(x, y) {
					blocked++
				}
				grid.SetWalkable(x, y, false)
			}
		}
	}
	return blocked
}

func (w *World) cellHasSolid(x, y int) bool {
	x0 := float64(x * common.TileSize)
	y0 := float64(y * common.TileSize)
	bb := cp.BB{
		L: x0 + cellInset,
		B: y0 + cellInset,
		R: x0 + common.TileSize - cellInset,
		T: y0 + common.TileSize - cellInset,
	}
	hit := false
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if kind, ok := shape.UserData.(shapeKind); ok && kind == kindSolid {
			hit = true
		}
	}, nil)
	return hit
}

// Step advances the simulation.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

func (w *World) buildBounds() {
	worldW := float64(w.width * common.TileSize)
	worldH := float64(w.height * common.TileSize)
	if worldW <= 0 || worldH <= 0 {
		return
	}
	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: worldH}, {X: worldW, Y: worldH}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg[0], seg[1], 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeBounds)
		shape.UserData = kindBounds
		w.space.AddShape(shape)
	}
}

// processLayerTiles merges runs of non-empty tiles into as few boxes as a
// greedy row-then-column sweep finds.
func (w *World) processLayerTiles(layer []int) {
	if len(layer) != w.width*w.height {
		return
	}
	processed := make([]bool, len(layer))
	solid := func(idx int) bool {
		return !processed[idx] && layer[idx] != 0
	}
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			idx := y*w.width + x
			if !solid(idx) {
				processed[idx] = true
				continue
			}

			cw := 1
			for x+cw < w.width && solid(y*w.width+x+cw) {
				cw++
			}

			ch := 1
		heightLoop:
			for y+ch < w.height {
				for xi := x; xi < x+cw; xi++ {
					if !solid((y+ch)*w.width + xi) {
						break heightLoop
					}
				}
				ch++
			}

			w.AddObstacle(x, y, cw, ch)
			for yy := y; yy < y+ch; yy++ {
				for xx := x; xx < x+cw; xx++ {
					processed[yy*w.width+xx] = true
				}
			}
		}
	}
}
