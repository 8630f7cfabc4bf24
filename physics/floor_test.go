package physics

import (
	"math"

	"github.com/lixenwraith/slime-launch/vmath"
)

// flatFloor is an infinite horizontal floor occupying y <= Y on layer Layer
type flatFloor struct {
	Y     float64
	Layer Mask
	casts int
}

func (f *flatFloor) OverlapBox(center, halfExtents vmath.Vec2, mask Mask) bool {
	if !mask.Has(f.Layer) {
		return false
	}
	return center[1]-halfExtents[1] <= f.Y
}

func (f *flatFloor) SegmentCast(from, to vmath.Vec2, mask Mask) (Hit, bool) {
	f.casts++
	if !mask.Has(f.Layer) {
		return Hit{}, false
	}
	if from[1] <= f.Y {
		return Hit{Point: from, Normal: vmath.V2(0, 1)}, true
	}
	if to[1] > f.Y {
		return Hit{}, false
	}
	t := (from[1] - f.Y) / (from[1] - to[1])
	p := from.Add(to.Sub(from).Mul(t))
	return Hit{Point: p, Normal: vmath.V2(0, 1), Distance: p.Sub(from).Len()}, true
}

func (f *flatFloor) ShapeCast(center, halfExtents, delta vmath.Vec2, mask Mask) (Hit, bool) {
	bottom := center.Sub(vmath.V2(0, halfExtents[1]))
	hit, ok := f.SegmentCast(bottom, bottom.Add(delta), mask)
	if ok {
		hit.Point = hit.Point.Add(vmath.V2(0, halfExtents[1]))
	}
	return hit, ok
}

func (f *flatFloor) OverlapCircle(center vmath.Vec2, radius float64, mask Mask) []Collider {
	if !mask.Has(f.Layer) || center[1]-radius > f.Y {
		return nil
	}
	return []Collider{{ID: 1, Layer: f.Layer}}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}
