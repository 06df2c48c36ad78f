package pathfind

import (
	"strconv"
	"strings"

	"github.com/milk9111/tilenav/common"
)

// Path is an ordered list of cells from start to goal, both inclusive.
// Each search returns a fresh Path owned by the caller.
type Path struct {
	Points []common.Point
	Cost   float64
}

func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Points)
}

func (p *Path) Start() common.Point {
	if p.Len() == 0 {
		return common.Point{}
	}
	return p.Points[0]
}

func (p *Path) Goal() common.Point {
	if p.Len() == 0 {
		return common.Point{}
	}
	return p.Points[len(p.Points)-1]
}

// Release drops the point buffer. The path is empty afterwards.
func (p *Path) Release() {
	if p == nil {
		return
	}
	p.Points = nil
	p.Cost = 0
}

// String formats the path as "x,y x,y ... (cost)".
func (p *Path) String() string {
	if p.Len() == 0 {
		return "<no path>"
	}
	var b strings.Builder
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(pt.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(pt.Y))
	}
	b.WriteString(" (")
	b.WriteString(strconv.FormatFloat(p.Cost, 'f', 3, 64))
	b.WriteByte(')')
	return b.String()
}

// Simplify returns a copy of p keeping only the points where the step
// direction changes, plus start and goal. Cost is unchanged. It only
// removes waypoints between collinear steps, so every cell the original
// path crossed is still crossed.
func Simplify(p *Path) *Path {
	if p == nil {
		return nil
	}
	if len(p.Points) <= 2 {
		return &Path{Points: append([]common.Point(nil), p.Points...), Cost: p.Cost}
	}

	out := make([]common.Point, 0, len(p.Points))
	out = append(out, p.Points[0])
	prevDX, prevDY := direction(p.Points[0], p.Points[1])
	for i := 1; i < len(p.Points)-1; i++ {
		dx, dy := direction(p.Points[i], p.Points[i+1])
		if dx != prevDX || dy != prevDY {
			out = append(out, p.Points[i])
			prevDX, prevDY = dx, dy
		}
	}
	out = append(out, p.Points[len(p.Points)-1])
	return &Path{Points: out, Cost: p.Cost}
}

func direction(a, b common.Point) (int, int) {
	return sign(b.X - a.X), sign(b.Y - a.Y)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
