package system

import (
	"log"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/levels"
)

const (
	entityAgent    = "agent"
	entityObstacle = "obstacle"
)

// spawnAgentsFromEntities creates an agent for every "agent" entity and
// returns the entities it did not consume. Goals default to the spawn cell.
func (w *World) spawnAgentsFromEntities(entities []levels.Entity) []levels.Entity {
	if w == nil || len(entities) == 0 {
		return entities
	}

	remaining := make([]levels.Entity, 0, len(entities))
	for _, pe := range entities {
		if pe.Type != entityAgent {
			remaining = append(remaining, pe)
			continue
		}
		start := common.Point{X: pe.X, Y: pe.Y}
		goal := common.Point{X: pe.PropInt("goal_x", pe.X), Y: pe.PropInt("goal_y", pe.Y)}
		if _, err := w.SpawnAgent(start, goal); err != nil {
			log.Printf("system: spawn agent at %d,%d: %v", pe.X, pe.Y, err)
		}
	}
	return remaining
}

// spawnObstaclesFromEntities turns "obstacle" entities into static physics
// boxes. Without a physics world they are left in place.
func (w *World) spawnObstaclesFromEntities(entities []levels.Entity) []levels.Entity {
	if w == nil || w.Physics == nil || len(entities) == 0 {
		return entities
	}

	remaining := make([]levels.Entity, 0, len(entities))
	for _, pe := range entities {
		if pe.Type != entityObstacle {
			remaining = append(remaining, pe)
			continue
		}
		w.Physics.AddObstacle(pe.X, pe.Y, pe.PropInt("w", 1), pe.PropInt("h", 1))
	}
	return remaining
}
