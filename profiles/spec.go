package profiles

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilenav/navgrid"
	"github.com/milk9111/tilenav/pathfind"
)

const defaultRepathFrames = 15

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("profiles: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("profiles: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Profile describes how a level layer becomes a navigation grid and how
// agents search it.
type Profile struct {
	Name         string             `yaml:"name"`
	Layer        int                `yaml:"layer"`
	Search       SearchSpec         `yaml:"search"`
	BlockedTiles []uint16           `yaml:"blocked_tiles"`
	TileCosts    map[uint16]float64 `yaml:"tile_costs"`
	CostScript   string             `yaml:"cost_script"`
	RepathFrames int                `yaml:"repath_frames"`
	PathColor    *YAMLColor         `yaml:"path_color"`
}

type SearchSpec struct {
	AllowDiagonal bool    `yaml:"allow_diagonal"`
	DiagonalCost  float64 `yaml:"diagonal_cost"`
	CutCorners    bool    `yaml:"cut_corners"`
	MaxIterations int     `yaml:"max_iterations"`
}

func LoadProfile(filename string) (*Profile, error) {
	p, err := LoadSpec[Profile](filename)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	if p.RepathFrames <= 0 {
		p.RepathFrames = defaultRepathFrames
	}
	return &p, nil
}

func (p *Profile) Options() pathfind.Options {
	return pathfind.Options{
		AllowDiagonal: p.Search.AllowDiagonal,
		DiagonalCost:  p.Search.DiagonalCost,
		CutCorners:    p.Search.CutCorners,
		MaxIterations: p.Search.MaxIterations,
	}
}

// Apply syncs grid from the profile's layer of src. Blocked tiles win over
// tile_costs, which win over the cost script; anything else costs 1.
// A script error leaves the affected tiles at cost 1 and is returned after
// the sync completes.
func (p *Profile) Apply(grid *navgrid.Grid, src navgrid.TileSource) error {
	if grid == nil || src == nil {
		return nil
	}
	if p.CostScript == "" && len(p.TileCosts) == 0 {
		grid.SyncFromSource(src, p.Layer, p.BlockedTiles)
		return nil
	}

	var script *CostScript
	if p.CostScript != "" {
		s, err := LoadCostScript(p.CostScript)
		if err != nil {
			return err
		}
		script = s
	}

	blocked := make(map[uint16]struct{}, len(p.BlockedTiles))
	for _, id := range p.BlockedTiles {
		blocked[id] = struct{}{}
	}

	var firstErr error
	grid.SyncWithCost(src, p.Layer, func(id uint16) float64 {
		if _, ok := blocked[id]; ok {
			return 0
		}
		if c, ok := p.TileCosts[id]; ok {
			return c
		}
		if script == nil {
			return 1
		}
		c, err := script.Eval(id)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return 1
		}
		return c
	})
	return firstErr
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor decodes "#rrggbb" or "#rrggbbaa"; the leading '#' is optional.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", s)
	}

	channels := make([]uint8, 0, 4)
	for i := 0; i < len(hex); i += 2 {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color format: %s", s)
		}
		channels = append(channels, uint8(v))
	}
	if len(channels) == 3 {
		channels = append(channels, 255)
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// ColorOr returns the decoded color, or def when none was set.
func (c *YAMLColor) ColorOr(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}
