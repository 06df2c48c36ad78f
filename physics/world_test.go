package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/levels"
	"github.com/milk9111/tilenav/navgrid"
	"github.com/milk9111/tilenav/spatial"
)

func testLevel() *levels.Level {
	return &levels.Level{
		Width:  4,
		Height: 3,
		Layers: [][]int{
			{
				1, 1, 1, 1,
				1, 1, 1, 1,
				1, 1, 1, 1,
			},
			{
				0, 5, 5, 0,
				0, 5, 5, 0,
				0, 0, 0, 5,
			},
		},
		LayerMeta: []levels.LayerMeta{{}, {HasPhysics: true}},
	}
}

func TestNewWorldMergesTiles(t *testing.T) {
	w := NewWorld(testLevel())
	assert.Equal(t, 2, w.Solids(), "2x2 block plus a single tile")
	assert.NotNil(t, w.Space())

	empty := NewWorld(nil)
	assert.Equal(t, 0, empty.Solids())
}

func TestBlockGrid(t *testing.T) {
	w := NewWorld(testLevel())
	grid, err := navgrid.New(4, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, w.BlockGrid(grid))
	want := map[common.Point]bool{
		{X: 1, Y: 0}: true, {X: 2, Y: 0}: true,
		{X: 1, Y: 1}: true, {X: 2, Y: 1}: true,
		{X: 3, Y: 2}: true,
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, !want[common.Point{X: x, Y: y}], grid.IsWalkable(x, y), "cell %d,%d", x, y)
		}
	}

	// already blocked cells are not counted twice
	assert.Equal(t, 0, w.BlockGrid(grid))

	require.NotNil(t, w.AddObstacle(0, 2, 2, 1))
	assert.Equal(t, 2, w.BlockGrid(grid))
	assert.False(t, grid.IsWalkable(0, 2))
	assert.False(t, grid.IsWalkable(1, 2))
	assert.True(t, grid.IsWalkable(2, 2))

	assert.Nil(t, w.AddObstacle(0, 0, 0, 1))
	assert.Equal(t, 0, w.BlockGrid(nil))
}

func TestAgentsIgnoredByBlockGrid(t *testing.T) {
	w := NewWorld(testLevel())
	w.AddAgent(1, common.Point{X: 0, Y: 0})
	w.Step(1.0 / 60)

	grid, err := navgrid.New(4, 3)
	require.NoError(t, err)
	w.BlockGrid(grid)
	assert.True(t, grid.IsWalkable(0, 0))
}

func TestAgentBodies(t *testing.T) {
	w := NewWorld(testLevel())
	w.AddAgent(7, common.Point{X: 0, Y: 2})
	w.AddAgent(8, common.Point{X: 0, Y: 2})
	w.AddAgent(spatial.InvalidEntity, common.Point{})
	assert.Equal(t, 2, w.AgentCount())

	cell, ok := w.AgentCell(7)
	require.True(t, ok)
	assert.Equal(t, common.Point{X: 0, Y: 2}, cell)

	require.True(t, w.MoveAgent(7, common.Point{X: 3, Y: 0}))
	w.Step(1.0 / 60)
	cell, _ = w.AgentCell(7)
	assert.Equal(t, common.Point{X: 3, Y: 0}, cell)
	assert.False(t, w.MoveAgent(99, common.Point{}))

	idx := spatial.New(16)
	require.True(t, idx.Add(2, 2, 50))
	assert.Equal(t, 2, w.SyncOccupancy(idx))
	assert.False(t, idx.Has(2, 2), "sync replaces stale entries")
	assert.True(t, idx.HasEntity(3, 0, 7))
	assert.True(t, idx.HasEntity(0, 2, 8))

	// re-adding replaces the body instead of duplicating it
	w.AddAgent(8, common.Point{X: 1, Y: 2})
	assert.Equal(t, 2, w.AgentCount())
	assert.Equal(t, 2, w.SyncOccupancy(idx))

	w.RemoveAgent(7)
	w.RemoveAgent(7)
	_, ok = w.AgentCell(7)
	assert.False(t, ok)
	assert.Equal(t, 1, w.SyncOccupancy(idx))
	assert.Equal(t, 1, idx.TotalCount())
}
