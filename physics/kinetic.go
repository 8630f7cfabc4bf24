package physics

import (
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/vmath"
)

// Kinetic is a minimal box body: position, velocity and a collider
// Stands in for an external physics engine's body in the sandbox and tests
type Kinetic struct {
	Pos, Vel    vmath.Vec2
	HalfExtents vmath.Vec2
	Skin        float64
}

// NewKinetic creates a body at pos with the default collider size
func NewKinetic(pos vmath.Vec2) *Kinetic {
	return &Kinetic{
		Pos:         pos,
		HalfExtents: vmath.V2(parameter.BodyHalfWidth, parameter.BodyHalfHeight),
		Skin:        parameter.BodySkin,
	}
}

func (k *Kinetic) Position() vmath.Vec2 { return k.Pos }
func (k *Kinetic) Velocity() vmath.Vec2 { return k.Vel }

// SetVelocity overrides velocity (launch, grab, landing snap)
func (k *Kinetic) SetVelocity(v vmath.Vec2) { k.Vel = v }

// SetPosition teleports the body (respawn)
func (k *Kinetic) SetPosition(p vmath.Vec2) { k.Pos = p }

// Top returns the center of the collider's top edge
func (k *Kinetic) Top() vmath.Vec2 {
	return k.Pos.Add(vmath.V2(0, k.HalfExtents[1]))
}

// Step moves by Vel*dt one axis at a time, casting from the leading edge
// A blocked axis stops at the hit (minus skin) and zeroes that velocity component
// Returns true when any axis was blocked
func (k *Kinetic) Step(dt float64, q CollisionQuery, solid Mask) bool {
	if q == nil {
		k.Pos = Integrate(k.Pos, k.Vel, dt)
		return false
	}

	blocked := false
	for axis := 0; axis < 2; axis++ {
		d := k.Vel[axis] * dt
		if d == 0 {
			continue
		}

		dir := vmath.Zero
		dir[axis] = float64(vmath.Sign(d))

		edge := k.Pos.Add(vmath.V2(dir[0]*k.HalfExtents[0], dir[1]*k.HalfExtents[1]))
		move := dir.Mul(vmath.Abs(d))

		hit, ok := q.SegmentCast(edge, edge.Add(move), solid)
		if !ok {
			k.Pos = k.Pos.Add(move)
			continue
		}

		travel := hit.Distance - k.Skin
		if travel < 0 {
			travel = 0
		}
		k.Pos = k.Pos.Add(dir.Mul(travel))
		k.Vel[axis] = 0
		blocked = true
	}
	return blocked
}
