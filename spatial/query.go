package spatial

// Result is one entity found by a region query.
type Result struct {
	X, Y int32
	ID   EntityID
}

// QueryRect collects every entity in the inclusive rectangle (x1,y1)-(x2,y2)
// into out and returns the number written. Callers must pass x1 <= x2 and
// y1 <= y2; a reversed rectangle yields nothing.
func (idx *Index) QueryRect(x1, y1, x2, y2 int32, out []Result) int {
	if x1 > x2 || y1 > y2 {
		return 0
	}
	return idx.scan(x1, y1, x2, y2, out, nil)
}

// QueryRadius collects entities within Chebyshev distance radius of (cx, cy).
func (idx *Index) QueryRadius(cx, cy, radius int32, out []Result) int {
	if radius < 0 {
		return 0
	}
	x1, y1, x2, y2 := square(cx, cy, radius)
	return idx.scan(x1, y1, x2, y2, out, nil)
}

// QueryCircle collects entities within Euclidean distance radius of (cx, cy).
func (idx *Index) QueryCircle(cx, cy, radius int32, out []Result) int {
	if radius < 0 {
		return 0
	}
	r2 := int64(radius) * int64(radius)
	inside := func(x, y int64) bool {
		dx, dy := x-int64(cx), y-int64(cy)
		return dx*dx+dy*dy <= r2
	}
	x1, y1, x2, y2 := square(cx, cy, radius)
	return idx.scan(x1, y1, x2, y2, out, inside)
}

func square(cx, cy, radius int32) (x1, y1, x2, y2 int32) {
	return clamp32(int64(cx) - int64(radius)), clamp32(int64(cy) - int64(radius)),
		clamp32(int64(cx) + int64(radius)), clamp32(int64(cy) + int64(radius))
}

func clamp32(v int64) int32 {
	const lo, hi = -1 << 31, 1<<31 - 1
	return int32(min(max(v, lo), hi))
}

// scan visits cells row by row and stops once out is full.
func (idx *Index) scan(x1, y1, x2, y2 int32, out []Result, keep func(x, y int64) bool) int {
	if idx == nil || idx.occupied == 0 || len(out) == 0 {
		return 0
	}
	n := 0
	for y := int64(y1); y <= int64(y2); y++ {
		for x := int64(x1); x <= int64(x2); x++ {
			if keep != nil && !keep(x, y) {
				continue
			}
			c := idx.lookup(int32(x), int32(y))
			if c == nil {
				continue
			}
			for _, id := range c.entities() {
				if n == len(out) {
					return n
				}
				out[n] = Result{X: int32(x), Y: int32(y), ID: id}
				n++
			}
		}
	}
	return n
}
