package spatial

// Iter walks the entities of one cell. Any mutation of that cell while
// iterating invalidates it.
type Iter struct {
	c   *cell
	pos int
}

func (idx *Index) IterBegin(x, y int32) Iter {
	return Iter{c: idx.lookup(x, y)}
}

func (it *Iter) Valid() bool {
	return it.c != nil && it.pos < int(it.c.count)
}

// Get returns the current entity, or InvalidEntity past the end.
func (it *Iter) Get() EntityID {
	if !it.Valid() {
		return InvalidEntity
	}
	return it.c.ids[it.pos]
}

func (it *Iter) Next() {
	if it.Valid() {
		it.pos++
	}
}
