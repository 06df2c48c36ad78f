package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndQuery(t *testing.T) {
	idx := New(8)

	require.True(t, idx.Add(3, -2, 7))
	require.True(t, idx.Add(3, -2, 9))
	assert.False(t, idx.Add(3, -2, InvalidEntity), "zero id is rejected")

	assert.True(t, idx.Has(3, -2))
	assert.False(t, idx.Has(-2, 3))
	assert.Equal(t, EntityID(7), idx.Query(3, -2))
	assert.Equal(t, InvalidEntity, idx.Query(100, 100))
	assert.Equal(t, 2, idx.CountAt(3, -2))
	assert.True(t, idx.HasEntity(3, -2, 9))
	assert.False(t, idx.HasEntity(3, -2, 8))

	out := make([]EntityID, 4)
	n := idx.QueryAll(3, -2, out)
	assert.Equal(t, []EntityID{7, 9}, out[:n])

	small := make([]EntityID, 1)
	assert.Equal(t, 1, idx.QueryAll(3, -2, small))
	assert.Equal(t, 0, idx.QueryAll(0, 0, out))
}

func TestDuplicatesAreKept(t *testing.T) {
	idx := New(8)
	require.True(t, idx.Add(1, 1, 5))
	require.True(t, idx.Add(1, 1, 5))
	assert.Equal(t, 2, idx.CountAt(1, 1))
	assert.Equal(t, 2, idx.TotalCount())

	require.True(t, idx.Remove(1, 1, 5))
	assert.Equal(t, 1, idx.CountAt(1, 1))
	assert.True(t, idx.HasEntity(1, 1, 5))

	require.True(t, idx.Remove(1, 1, 5))
	assert.Equal(t, 0, idx.CountAt(1, 1))
	assert.False(t, idx.Remove(1, 1, 5))
	assert.Equal(t, 0, idx.OccupiedCells())
}

func TestRemoveKeepsOrder(t *testing.T) {
	idx := New(8)
	for _, id := range []EntityID{1, 2, 3, 2} {
		require.True(t, idx.Add(0, 0, id))
	}
	require.True(t, idx.Remove(0, 0, 2))

	out := make([]EntityID, CellCapacity)
	n := idx.QueryAll(0, 0, out)
	assert.Equal(t, []EntityID{1, 3, 2}, out[:n])
	assert.False(t, idx.Remove(0, 0, 9))
	assert.False(t, idx.Remove(4, 4, 1))
}

func TestCellCapacity(t *testing.T) {
	idx := New(8)
	for i := 1; i <= CellCapacity; i++ {
		require.True(t, idx.Add(2, 2, EntityID(i)))
	}
	assert.False(t, idx.Add(2, 2, 99), "full cell rejects adds")
	assert.Equal(t, CellCapacity, idx.CountAt(2, 2))
	assert.Equal(t, CellCapacity, idx.TotalCount())
}

func TestMove(t *testing.T) {
	idx := New(8)
	require.True(t, idx.Add(0, 0, 1))

	assert.True(t, idx.Move(0, 0, 1, 0, 1))
	assert.False(t, idx.Has(0, 0))
	assert.True(t, idx.HasEntity(1, 0, 1))

	// a missing source is ignored
	assert.True(t, idx.Move(5, 5, 2, 0, 3))
	assert.True(t, idx.HasEntity(2, 0, 3))
}

func TestMoveIntoFullCellDropsEntity(t *testing.T) {
	idx := New(8)
	for i := 1; i <= CellCapacity; i++ {
		require.True(t, idx.Add(9, 9, EntityID(100+i)))
	}
	require.True(t, idx.Add(0, 0, 1))

	assert.False(t, idx.Move(0, 0, 9, 9, 1))
	assert.False(t, idx.HasEntity(0, 0, 1))
	assert.False(t, idx.HasEntity(9, 9, 1))
	assert.Equal(t, CellCapacity, idx.TotalCount())
}

func TestQueryRect(t *testing.T) {
	idx := New(16)
	require.True(t, idx.Add(0, 0, 1))
	require.True(t, idx.Add(2, 1, 2))
	require.True(t, idx.Add(2, 1, 3))
	require.True(t, idx.Add(-1, 2, 4))
	require.True(t, idx.Add(5, 5, 5))

	out := make([]Result, 10)
	n := idx.QueryRect(-1, 0, 2, 2, out)
	require.Equal(t, 4, n)
	assert.ElementsMatch(t, []Result{
		{X: 0, Y: 0, ID: 1},
		{X: 2, Y: 1, ID: 2},
		{X: 2, Y: 1, ID: 3},
		{X: -1, Y: 2, ID: 4},
	}, out[:n])

	assert.Equal(t, 0, idx.QueryRect(2, 2, -1, 0, out), "reversed rectangles are not normalised")

	limited := make([]Result, 2)
	assert.Equal(t, 2, idx.QueryRect(-1, 0, 2, 2, limited))
	assert.Equal(t, 1, idx.QueryRect(5, 5, 5, 5, out))
}

func TestQueryRadiusAndCircle(t *testing.T) {
	idx := New(16)
	require.True(t, idx.Add(10, 10, 1))
	require.True(t, idx.Add(12, 12, 2)) // corner: chebyshev 2, euclidean ~2.83
	require.True(t, idx.Add(10, 12, 3)) // edge: distance 2 both ways
	require.True(t, idx.Add(13, 10, 4))

	out := make([]Result, 8)

	n := idx.QueryRadius(10, 10, 2, out)
	ids := collectIDs(out[:n])
	assert.ElementsMatch(t, []EntityID{1, 2, 3}, ids)

	n = idx.QueryCircle(10, 10, 2, out)
	ids = collectIDs(out[:n])
	assert.ElementsMatch(t, []EntityID{1, 3}, ids)

	assert.Equal(t, 1, idx.QueryRadius(10, 10, 0, out))
	assert.Equal(t, 0, idx.QueryRadius(10, 10, -1, out))
	assert.Equal(t, 0, idx.QueryCircle(10, 10, -1, out))
}

func TestQueryNearInt32Limits(t *testing.T) {
	idx := New(8)
	const maxX = 1<<31 - 1
	require.True(t, idx.Add(maxX, 0, 1))

	out := make([]Result, 4)
	assert.Equal(t, 1, idx.QueryRadius(maxX, 0, 1, out))
	assert.Equal(t, 1, idx.QueryRect(maxX-1, 0, maxX, 0, out))
}

func TestIterator(t *testing.T) {
	idx := New(8)
	for _, id := range []EntityID{4, 5, 6} {
		require.True(t, idx.Add(1, 2, id))
	}

	var got []EntityID
	for it := idx.IterBegin(1, 2); it.Valid(); it.Next() {
		got = append(got, it.Get())
	}
	assert.Equal(t, []EntityID{4, 5, 6}, got)

	empty := idx.IterBegin(7, 7)
	assert.False(t, empty.Valid())
	assert.Equal(t, InvalidEntity, empty.Get())
	empty.Next()
	assert.False(t, empty.Valid())
}

func TestGrowthRehashes(t *testing.T) {
	idx := New(4)
	require.Equal(t, 4, idx.BucketCount())

	for y := int32(0); y < 20; y++ {
		for x := int32(0); x < 20; x++ {
			require.True(t, idx.Add(x, y, EntityID(y*20+x+1)))
		}
	}

	assert.Equal(t, 400, idx.OccupiedCells())
	assert.Equal(t, 400, idx.TotalCount())
	assert.GreaterOrEqual(t, idx.BucketCount()*3, idx.OccupiedCells()*4)
	for y := int32(0); y < 20; y++ {
		for x := int32(0); x < 20; x++ {
			require.Equal(t, EntityID(y*20+x+1), idx.Query(x, y), "cell %d,%d", x, y)
		}
	}
	lf := idx.LoadFactor()
	assert.Greater(t, lf, 0.0)
	assert.LessOrEqual(t, lf, 1.0)
}

func TestNewRoundsCapacity(t *testing.T) {
	assert.Equal(t, 16, New(9).BucketCount())
	assert.Equal(t, 64, New(0).BucketCount())
	assert.Equal(t, 1, New(1).BucketCount())
}

func TestEach(t *testing.T) {
	idx := New(8)
	require.True(t, idx.Add(0, 0, 1))
	require.True(t, idx.Add(0, 1, 2))
	require.True(t, idx.Add(0, 1, 3))

	seen := 0
	idx.Each(func(x, y int32, id EntityID) bool {
		seen++
		return true
	})
	assert.Equal(t, 3, seen)

	seen = 0
	idx.Each(func(x, y int32, id EntityID) bool {
		seen++
		return false
	})
	assert.Equal(t, 1, seen)
}

func TestClearAndDestroy(t *testing.T) {
	idx := New(8)
	require.True(t, idx.Add(1, 1, 1))
	require.True(t, idx.Add(2, 2, 2))
	it := idx.IterBegin(1, 1)

	idx.Clear()
	assert.Equal(t, 0, idx.TotalCount())
	assert.Equal(t, 0, idx.OccupiedCells())
	assert.False(t, idx.Has(1, 1))
	assert.False(t, it.Valid(), "clear invalidates iterators")
	assert.Equal(t, 8, idx.BucketCount())
	assert.True(t, idx.Add(1, 1, 1))

	idx.Destroy()
	assert.False(t, idx.Add(1, 1, 1))
	assert.False(t, idx.Has(1, 1))
	assert.Equal(t, 0, idx.CountAt(1, 1))
	assert.Equal(t, 0, idx.BucketCount())
	assert.Equal(t, 0.0, idx.LoadFactor())
	assert.False(t, idx.Remove(1, 1, 1))

	var none *Index
	assert.False(t, none.Add(0, 0, 1))
	assert.Equal(t, 0, none.TotalCount())
}

func collectIDs(rs []Result) []EntityID {
	ids := make([]EntityID, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}
