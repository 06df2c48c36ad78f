package common

import "math"

// Point is an integer grid coordinate.
type Point struct {
	X int
	Y int
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Manhattan returns the axis-aligned distance between two cells.
func Manhattan(x1, y1, x2, y2 int) int {
	return absInt(x1-x2) + absInt(y1-y2)
}

// Chebyshev returns the king-move distance between two cells.
func Chebyshev(x1, y1, x2, y2 int) int {
	dx := absInt(x1 - x2)
	dy := absInt(y1 - y2)
	if dx > dy {
		return dx
	}
	return dy
}

// Euclidean returns the straight-line distance between two cells.
func Euclidean(x1, y1, x2, y2 int) float64 {
	return math.Hypot(float64(x1-x2), float64(y1-y2))
}

// Octile returns the cheapest 8-way distance when a diagonal step costs
// diagonal and an orthogonal step costs 1. Diagonal costs above 2 never
// beat two orthogonal steps, so they collapse to Manhattan. Below 1 a
// zigzag of diagonals beats any orthogonal step, and each step closes at
// most one cell of Chebyshev distance.
func Octile(x1, y1, x2, y2 int, diagonal float64) float64 {
	dx := absInt(x1 - x2)
	dy := absInt(y1 - y2)
	hi, lo := max(dx, dy), min(dx, dy)
	switch {
	case diagonal < 1:
		return diagonal * float64(hi)
	case diagonal > 2:
		diagonal = 2
	}
	return float64(hi-lo) + diagonal*float64(lo)
}
