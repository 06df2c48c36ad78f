package profiles

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/tilenav/navgrid"
)

var ErrNoCostResult = errors.New("profiles: cost script did not return a number")

// The script defines cost(tile); this runs it for one tile.
const costDispatchScript = `
__result = cost(__tile)
`

// CostScript evaluates a tengo cost(tile) function. Results are cached per
// tile ID, so the script must not depend on anything but its argument.
type CostScript struct {
	name     string
	compiled *tengo.Compiled
	cache    map[uint16]float64
}

func LoadCostScript(name string) (*CostScript, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("profiles: load script %s: %w", name, err)
	}
	return CompileCostScript(name, src)
}

func CompileCostScript(name string, src []byte) (*CostScript, error) {
	body := string(src) + "\n" + costDispatchScript
	script := tengo.NewScript([]byte(body))
	_ = script.Add("__tile", 0)
	_ = script.Add("__result", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("profiles: compile script %s: %w", name, err)
	}
	return &CostScript{
		name:     name,
		compiled: compiled,
		cache:    make(map[uint16]float64),
	}, nil
}

func (s *CostScript) Name() string {
	return s.name
}

// Eval returns the cost of tile id. 0 or less means blocked.
func (s *CostScript) Eval(id uint16) (float64, error) {
	if c, ok := s.cache[id]; ok {
		return c, nil
	}
	if err := s.compiled.Set("__tile", int(id)); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, fmt.Errorf("profiles: script %s tile=%d: %w", s.name, id, err)
	}

	var cost float64
	switch v := s.compiled.Get("__result").Object().(type) {
	case *tengo.Int:
		cost = float64(v.Value)
	case *tengo.Float:
		cost = v.Value
	default:
		return 0, fmt.Errorf("profiles: script %s tile=%d: %w", s.name, id, ErrNoCostResult)
	}
	s.cache[id] = cost
	return cost, nil
}

// Func adapts the script to navgrid.CostFunc. Tiles whose evaluation fails
// are reported blocked.
func (s *CostScript) Func() navgrid.CostFunc {
	return func(id uint16) float64 {
		c, err := s.Eval(id)
		if err != nil {
			return 0
		}
		return c
	}
}
