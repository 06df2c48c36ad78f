package common

import "math"

// TileSize is the edge length of one grid cell in world units.
const TileSize = 32

// CellOf returns the cell containing the world position (wx, wy).
func CellOf(wx, wy float64) Point {
	return Point{
		X: int(math.Floor(wx / TileSize)),
		Y: int(math.Floor(wy / TileSize)),
	}
}

// CellCenter returns the world position of the middle of cell (x, y).
func CellCenter(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * TileSize, (float64(y) + 0.5) * TileSize
}
