package motion

import "github.com/lixenwraith/slime-launch/vmath"

// ButtonState is one polled sample of a button
type ButtonState struct {
	Pressed      bool
	JustPressed  bool
	JustReleased bool
}

// InputSource is polled once per presentation tick
// Position is in screen units with +Y up
type InputSource interface {
	Position() vmath.Vec2
	DragButton() ButtonState
	GrabButton() ButtonState
}

// Body is the physics body the controller drives
type Body interface {
	Position() vmath.Vec2
	Velocity() vmath.Vec2
	SetVelocity(v vmath.Vec2)
}
