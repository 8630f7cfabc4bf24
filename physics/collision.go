package physics

import "github.com/lixenwraith/slime-launch/vmath"

// Mask is a set of collision layer bits
type Mask uint32

const (
	MaskNone Mask = 0
	// MaskAll matches every layer, used as the permissive fallback for missing table entries
	MaskAll Mask = ^Mask(0)
)

// LayerMask returns the mask with the single bit for layer set
// Layers outside [0, 31] yield MaskNone
func LayerMask(layer int) Mask {
	if layer < 0 || layer > 31 {
		return MaskNone
	}
	return Mask(1) << uint(layer)
}

// Has reports whether any bit of other is set in m
func (m Mask) Has(other Mask) bool {
	return m&other != 0
}

// TagGrabbable marks colliders that TryGrab accepts
const TagGrabbable = "grabbable"

// Hit describes the first contact of a cast
type Hit struct {
	Point    vmath.Vec2
	Normal   vmath.Vec2
	Distance float64 // From the cast origin to Point
}

// Collider identifies a shape returned by area queries
type Collider struct {
	ID    int
	Tag   string
	Layer Mask
}

// CollisionQuery is the collision-query collaborator shared by the ground sensor,
// the grab search and the forecaster; each caller supplies its own mask
type CollisionQuery interface {
	// OverlapBox reports whether any collider in mask overlaps the axis-aligned box
	OverlapBox(center, halfExtents vmath.Vec2, mask Mask) bool

	// SegmentCast returns the first hit along from->to
	SegmentCast(from, to vmath.Vec2, mask Mask) (Hit, bool)

	// ShapeCast sweeps a box of halfExtents centered at center along delta
	// Hit.Point is the swept center at first contact
	ShapeCast(center, halfExtents, delta vmath.Vec2, mask Mask) (Hit, bool)

	// OverlapCircle returns colliders within radius of center
	OverlapCircle(center vmath.Vec2, radius float64, mask Mask) []Collider
}
