// Package collision implements physics.CollisionQuery over a chipmunk2d space
package collision

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/physics"
	"github.com/lixenwraith/slime-launch/vmath"
)

// World holds static level geometry and answers collision queries
// Each shape's filter categories carry its layer bit; queries pass the caller's mask
type World struct {
	space     *cp.Space
	colliders map[*cp.Shape]physics.Collider
	shapes    map[int]*cp.Shape
	nextID    int
	log       zerolog.Logger
}

// NewWorld creates an empty world
func NewWorld(log zerolog.Logger) *World {
	return &World{
		space:     cp.NewSpace(),
		colliders: make(map[*cp.Shape]physics.Collider),
		shapes:    make(map[int]*cp.Shape),
		log:       log.With().Str("component", "collision").Logger(),
	}
}

// AddBox adds an axis-aligned static box spanning min..max, returns its collider ID
func (w *World) AddBox(min, max vmath.Vec2, layer physics.Mask, tag string) int {
	bb := cp.BB{L: math.Min(min[0], max[0]), B: math.Min(min[1], max[1]), R: math.Max(min[0], max[0]), T: math.Max(min[1], max[1])}
	return w.add(cp.NewBox2(w.space.StaticBody, bb, 0), layer, tag)
}

// AddSegment adds a static segment with rounded thickness radius
func (w *World) AddSegment(a, b vmath.Vec2, radius float64, layer physics.Mask, tag string) int {
	return w.add(cp.NewSegment(w.space.StaticBody, toCP(a), toCP(b), radius), layer, tag)
}

func (w *World) add(shape *cp.Shape, layer physics.Mask, tag string) int {
	if layer == physics.MaskNone {
		w.log.Warn().Str("tag", tag).Msg("shape added with empty layer, it will never match a query")
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	w.space.AddShape(shape)

	w.nextID++
	c := physics.Collider{ID: w.nextID, Tag: tag, Layer: layer}
	w.colliders[shape] = c
	w.shapes[c.ID] = shape
	return c.ID
}

// Remove deletes the collider with id, reports whether it existed
func (w *World) Remove(id int) bool {
	shape, ok := w.shapes[id]
	if !ok {
		return false
	}
	w.space.RemoveShape(shape)
	delete(w.shapes, id)
	delete(w.colliders, shape)
	return true
}

// Collider returns the collider registered under id
func (w *World) Collider(id int) (physics.Collider, bool) {
	shape, ok := w.shapes[id]
	if !ok {
		return physics.Collider{}, false
	}
	return w.colliders[shape], true
}

// Len returns the number of registered colliders
func (w *World) Len() int {
	return len(w.shapes)
}

// Bounds returns the box of every collider for rendering
func (w *World) Bounds(fn func(c physics.Collider, min, max vmath.Vec2)) {
	ids := make([]int, 0, len(w.shapes))
	for id := range w.shapes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		shape := w.shapes[id]
		bb := shape.BB()
		fn(w.colliders[shape], vmath.V2(bb.L, bb.B), vmath.V2(bb.R, bb.T))
	}
}

// OverlapBox reports whether any collider in mask touches the box
func (w *World) OverlapBox(center, halfExtents vmath.Vec2, mask physics.Mask) bool {
	found := false
	bb := cp.NewBBForExtents(toCP(center), halfExtents[0], halfExtents[1])
	w.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, data interface{}) {
		if _, ok := w.colliders[shape]; ok {
			found = true
		}
	}, nil)
	return found
}

// SegmentCast returns the first hit along from->to
// Segments starting inside a shape do not report that shape
func (w *World) SegmentCast(from, to vmath.Vec2, mask physics.Mask) (physics.Hit, bool) {
	return w.sweep(from, to, 0, mask)
}

// ShapeCast sweeps a circle inscribed in the box along delta
func (w *World) ShapeCast(center, halfExtents, delta vmath.Vec2, mask physics.Mask) (physics.Hit, bool) {
	radius := math.Min(halfExtents[0], halfExtents[1])
	hit, ok := w.sweep(center, center.Add(delta), radius, mask)
	if !ok {
		return hit, false
	}
	// Report the swept center rather than the surface contact
	hit.Point = center.Add(delta.Mul(hit.Distance / delta.Len()))
	return hit, true
}

func (w *World) sweep(from, to vmath.Vec2, radius float64, mask physics.Mask) (physics.Hit, bool) {
	length := to.Sub(from).Len()
	if length == 0 {
		return physics.Hit{}, false
	}

	info := w.space.SegmentQueryFirst(toCP(from), toCP(to), radius, queryFilter(mask))
	if info.Shape == nil {
		return physics.Hit{}, false
	}
	if _, ok := w.colliders[info.Shape]; !ok {
		return physics.Hit{}, false
	}

	return physics.Hit{
		Point:    fromCP(info.Point),
		Normal:   fromCP(info.Normal),
		Distance: info.Alpha * length,
	}, true
}

// OverlapCircle returns colliders within radius of center, nearest first
func (w *World) OverlapCircle(center vmath.Vec2, radius float64, mask physics.Mask) []physics.Collider {
	type candidate struct {
		c    physics.Collider
		dist float64
	}
	var found []candidate
	bb := cp.NewBBForExtents(toCP(center), radius, radius)
	w.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, data interface{}) {
		c, ok := w.colliders[shape]
		if !ok {
			return
		}
		// Box candidates include corners outside the circle
		info := shape.PointQuery(toCP(center))
		if info.Distance <= radius {
			found = append(found, candidate{c: c, dist: info.Distance})
		}
	}, nil)

	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].c.ID < found[j].c.ID
	})

	out := make([]physics.Collider, len(found))
	for i := range found {
		out[i] = found[i].c
	}
	return out
}

func queryFilter(mask physics.Mask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

func toCP(v vmath.Vec2) cp.Vector {
	return cp.Vector{X: v[0], Y: v[1]}
}

func fromCP(v cp.Vector) vmath.Vec2 {
	return vmath.V2(v.X, v.Y)
}

var _ physics.CollisionQuery = (*World)(nil)
