package spatial

// TotalCount is the number of stored IDs, duplicates included.
func (idx *Index) TotalCount() int {
	if idx == nil {
		return 0
	}
	return idx.total
}

// OccupiedCells is the number of cells holding at least one ID.
func (idx *Index) OccupiedCells() int {
	if idx == nil {
		return 0
	}
	return idx.occupied
}

func (idx *Index) BucketCount() int {
	if idx == nil {
		return 0
	}
	return len(idx.buckets)
}

// LoadFactor is the fraction of non-empty buckets. Diagnostic only.
func (idx *Index) LoadFactor() float64 {
	if idx == nil || len(idx.buckets) == 0 {
		return 0
	}
	used := 0
	for _, head := range idx.buckets {
		if head != nil {
			used++
		}
	}
	return float64(used) / float64(len(idx.buckets))
}

// Each calls fn for every stored ID until fn returns false. Order follows
// the bucket layout and is not stable across growth.
func (idx *Index) Each(fn func(x, y int32, id EntityID) bool) {
	if idx == nil {
		return
	}
	for _, head := range idx.buckets {
		for c := head; c != nil; c = c.next {
			for _, id := range c.entities() {
				if !fn(c.x, c.y, id) {
					return
				}
			}
		}
	}
}
