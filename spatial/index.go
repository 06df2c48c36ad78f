package spatial

// EntityID identifies an entity stored in the index. 0 is never stored.
type EntityID uint32

const InvalidEntity EntityID = 0

// CellCapacity is the number of IDs one cell can hold. Adds beyond it fail.
const CellCapacity = 16

const defaultBuckets = 64

// cell is a chain node for one occupied grid coordinate.
type cell struct {
	x, y  int32
	count uint8
	ids   [CellCapacity]EntityID
	next  *cell
}

func (c *cell) entities() []EntityID {
	return c.ids[:c.count]
}

// Index maps grid cells to small multisets of entity IDs.
// The same ID may be stored several times in one cell.
// It is not safe for concurrent use.
type Index struct {
	buckets   []*cell
	mask      uint32
	occupied  int
	total     int
	destroyed bool
}

// New creates an index with at least capacity buckets, rounded up to a power
// of two. The bucket array grows as cells are occupied.
func New(capacity int) *Index {
	idx := &Index{}
	idx.allocBuckets(roundPow2(capacity))
	return idx
}

func roundPow2(n int) int {
	if n <= 0 {
		return defaultBuckets
	}
	size := 1
	for size < n && size < 1<<30 {
		size <<= 1
	}
	return size
}

func (idx *Index) allocBuckets(n int) {
	idx.buckets = make([]*cell, n)
	idx.mask = uint32(n - 1)
}

func hash(x, y int32) uint32 {
	return uint32(x)*73856093 ^ uint32(y)*19349663
}

func (idx *Index) lookup(x, y int32) *cell {
	if idx == nil || len(idx.buckets) == 0 {
		return nil
	}
	for c := idx.buckets[hash(x, y)&idx.mask]; c != nil; c = c.next {
		if c.x == x && c.y == y {
			return c
		}
	}
	return nil
}

// Add stores id at (x, y). It fails for InvalidEntity, for a full cell and
// after Destroy.
func (idx *Index) Add(x, y int32, id EntityID) bool {
	if idx == nil || idx.destroyed || id == InvalidEntity {
		return false
	}
	c := idx.lookup(x, y)
	if c == nil {
		c = &cell{x: x, y: y}
		b := hash(x, y) & idx.mask
		c.next = idx.buckets[b]
		idx.buckets[b] = c
		idx.occupied++
		defer idx.maybeGrow()
	}
	if c.count >= CellCapacity {
		return false
	}
	c.ids[c.count] = id
	c.count++
	idx.total++
	return true
}

// Remove drops the first occurrence of id at (x, y). Empty cells are unlinked.
func (idx *Index) Remove(x, y int32, id EntityID) bool {
	if idx == nil || len(idx.buckets) == 0 {
		return false
	}
	b := hash(x, y) & idx.mask
	var prev *cell
	for c := idx.buckets[b]; c != nil; prev, c = c, c.next {
		if c.x != x || c.y != y {
			continue
		}
		for i := uint8(0); i < c.count; i++ {
			if c.ids[i] != id {
				continue
			}
			copy(c.ids[i:c.count], c.ids[i+1:c.count])
			c.count--
			c.ids[c.count] = InvalidEntity
			idx.total--
			if c.count == 0 {
				if prev == nil {
					idx.buckets[b] = c.next
				} else {
					prev.next = c.next
				}
				c.next = nil
				idx.occupied--
			}
			return true
		}
		return false
	}
	return false
}

// Move removes id from the old cell, ignoring a miss, then adds it to the new
// one. When the new cell is full the entity ends up in neither cell and Move
// returns false.
func (idx *Index) Move(oldX, oldY, newX, newY int32, id EntityID) bool {
	idx.Remove(oldX, oldY, id)
	return idx.Add(newX, newY, id)
}

// Has reports whether any entity is stored at (x, y).
func (idx *Index) Has(x, y int32) bool {
	return idx.CountAt(x, y) > 0
}

// Query returns the first entity at (x, y) or InvalidEntity.
func (idx *Index) Query(x, y int32) EntityID {
	if c := idx.lookup(x, y); c != nil && c.count > 0 {
		return c.ids[0]
	}
	return InvalidEntity
}

// QueryAll copies the entities at (x, y) into out and returns how many were
// written.
func (idx *Index) QueryAll(x, y int32, out []EntityID) int {
	c := idx.lookup(x, y)
	if c == nil {
		return 0
	}
	return copy(out, c.entities())
}

func (idx *Index) CountAt(x, y int32) int {
	if c := idx.lookup(x, y); c != nil {
		return int(c.count)
	}
	return 0
}

// HasEntity reports whether id is stored at (x, y) at least once.
func (idx *Index) HasEntity(x, y int32, id EntityID) bool {
	c := idx.lookup(x, y)
	if c == nil {
		return false
	}
	for _, e := range c.entities() {
		if e == id {
			return true
		}
	}
	return false
}

func (idx *Index) maybeGrow() {
	if idx.occupied*4 <= len(idx.buckets)*3 || len(idx.buckets) >= 1<<30 {
		return
	}
	old := idx.buckets
	idx.allocBuckets(len(old) * 2)
	for _, head := range old {
		for c := head; c != nil; {
			next := c.next
			b := hash(c.x, c.y) & idx.mask
			c.next = idx.buckets[b]
			idx.buckets[b] = c
			c = next
		}
	}
}

// Clear drops every entity and keeps the current bucket count.
func (idx *Index) Clear() {
	if idx == nil {
		return
	}
	for b, head := range idx.buckets {
		for c := head; c != nil; {
			next := c.next
			c.count = 0
			c.next = nil
			c = next
		}
		idx.buckets[b] = nil
	}
	idx.occupied = 0
	idx.total = 0
}

// Destroy frees every chain node and the bucket array. The index stays
// queryable as an empty index but rejects further adds.
func (idx *Index) Destroy() {
	if idx == nil {
		return
	}
	idx.Clear()
	idx.buckets = nil
	idx.mask = 0
	idx.destroyed = true
}
