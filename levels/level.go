package levels

import "math"

// Level is a tile map stored as JSON.
type Level struct {
	Name   string `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// Layers holds one flat row-major slice of Width*Height tile IDs per
	// layer. 0 is an empty tile.
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	// HasPhysics marks layers whose non-empty tiles become static bodies.
	HasPhysics bool   `json:"has_physics"`
	Color      string `json:"color"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// TileIDAt returns the tile on layer at (x, y), or 0 when any argument is
// out of range. IDs outside the uint16 range read as 0.
func (l *Level) TileIDAt(layer, x, y int) uint16 {
	if l == nil || layer < 0 || layer >= len(l.Layers) {
		return 0
	}
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0
	}
	id := l.Layers[layer][y*l.Width+x]
	if id < 0 || id > math.MaxUint16 {
		return 0
	}
	return uint16(id)
}

// PhysicsLayers lists the indices of layers with HasPhysics set.
func (l *Level) PhysicsLayers() []int {
	if l == nil {
		return nil
	}
	var out []int
	for i := range l.Layers {
		if i < len(l.LayerMeta) && l.LayerMeta[i].HasPhysics {
			out = append(out, i)
		}
	}
	return out
}

// EntitiesOfType returns the entities whose Type matches, in file order.
func (l *Level) EntitiesOfType(typ string) []Entity {
	if l == nil {
		return nil
	}
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// PropInt reads a numeric prop. JSON numbers decode as float64.
func (e Entity) PropInt(key string, def int) int {
	switch v := e.Props[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}
