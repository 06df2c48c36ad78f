package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/spatial"
)

// AddAgent creates a kinematic body for id centred on cell. Adding an id
// twice replaces the old body.
func (w *World) AddAgent(id spatial.EntityID, cell common.Point) {
	if w == nil || id == spatial.InvalidEntity {
		return
	}
	w.RemoveAgent(id)

	body := cp.NewKinematicBody()
	body.UserData = id
	cx, cy := common.CellCenter(cell.X, cell.Y)
	body.SetPosition(cp.Vector{X: cx, Y: cy})
	shape := cp.NewBox(body, agentSize, agentSize, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeAgent)
	shape.UserData = kindAgent

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.agents[id] = body
}

// MoveAgent teleports the agent's body to the centre of cell.
func (w *World) MoveAgent(id spatial.EntityID, cell common.Point) bool {
	if w == nil {
		return false
	}
	body, ok := w.agents[id]
	if !ok {
		return false
	}
	cx, cy := common.CellCenter(cell.X, cell.Y)
	body.SetPosition(cp.Vector{X: cx, Y: cy})
	return true
}

func (w *World) RemoveAgent(id spatial.EntityID) {
	if w == nil {
		return
	}
	body, ok := w.agents[id]
	if !ok {
		return
	}
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(body)
	delete(w.agents, id)
}

// AgentCell returns the cell under the agent's body position.
func (w *World) AgentCell(id spatial.EntityID) (common.Point, bool) {
	if w == nil {
		return common.Point{}, false
	}
	body, ok := w.agents[id]
	if !ok {
		return common.Point{}, false
	}
	pos := body.Position()
	return common.CellOf(pos.X, pos.Y), true
}

func (w *World) AgentCount() int {
	if w == nil {
		return 0
	}
	return len(w.agents)
}

// SyncOccupancy rebuilds idx from the agent bodies and returns how many
// agents were stored. Agents landing in a full cell are left out.
func (w *World) SyncOccupancy(idx *spatial.Index) int {
	if w == nil || idx == nil {
		return 0
	}
	idx.Clear()
	added := 0
	w.space.EachBody(func(body *cp.Body) {
		id, ok := body.UserData.(spatial.EntityID)
		if !ok {
			return
		}
		pos := body.Position()
		cell := common.CellOf(pos.X, pos.Y)
		if idx.Add(int32(cell.X), int32(cell.Y), id) {
			added++
		}
	})
	return added
}
