package behavior

import "github.com/lixenwraith/slime-launch/vmath"

// Frame is the per-tick continuous signal set pushed to presentations
type Frame struct {
	State     State
	Grounded  bool
	Grabbing  bool
	Dragging  bool
	VelocityX float64
	VelocityY float64
	Facing    int
}

// Presentation receives committed transitions and per-tick frames
// The machine never queries it
type Presentation interface {
	OnTransition(prev, next State)
	OnFrame(f Frame)
}

// VelocityWriter is the body slice the machine touches: Landing entry clears downward velocity
type VelocityWriter interface {
	Velocity() vmath.Vec2
	SetVelocity(v vmath.Vec2)
}

// Inputs are the signals sampled once per presentation tick
type Inputs struct {
	Grounded bool
	Dragging bool
	Grabbing bool
	Velocity vmath.Vec2
	Facing   int
}

// PresentationFuncs adapts plain functions to Presentation, nil fields are skipped
type PresentationFuncs struct {
	Transition func(prev, next State)
	Frame      func(f Frame)
}

func (p PresentationFuncs) OnTransition(prev, next State) {
	if p.Transition != nil {
		p.Transition(prev, next)
	}
}

func (p PresentationFuncs) OnFrame(f Frame) {
	if p.Frame != nil {
		p.Frame(f)
	}
}
