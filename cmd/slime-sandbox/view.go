package main

import (
	"math"

	"github.com/lixenwraith/slime-launch/vmath"
)

// World units to terminal cells
const (
	colsPerUnit = 2.0
	rowsPerUnit = 1.0
)

// camera maps world positions to cells, centered on focus
type camera struct {
	focus         vmath.Vec2
	width, height int
}

func (c camera) toCell(p vmath.Vec2) (int, int) {
	d := p.Sub(c.focus)
	x := c.width/2 + int(math.Floor(d[0]*colsPerUnit))
	y := c.height/2 - 1 - int(math.Floor(d[1]*rowsPerUnit))
	return x, y
}

// cellRect returns the cell span covered by a world box, inclusive
func (c camera) cellRect(min, max vmath.Vec2) (x0, y0, x1, y1 int) {
	x0, y1 = c.toCell(min)
	x1, y0 = c.toCell(max)
	// max edges are exclusive in world space
	if x1 > x0 && math.Mod((max[0]-c.focus[0])*colsPerUnit, 1) == 0 {
		x1--
	}
	if y1 > y0 && math.Mod((max[1]-c.focus[1])*rowsPerUnit, 1) == 0 {
		y0++
	}
	return
}

func (c camera) visible(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}
