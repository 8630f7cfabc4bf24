package physics

import (
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/vmath"
)

// StepMode selects the forecast step interval convention
type StepMode uint8

const (
	// StepFixed uses the physics tick interval, matching real integration
	StepFixed StepMode = iota
	// StepVariable uses the presentation frame delta
	StepVariable
)

func (m StepMode) String() string {
	if m == StepVariable {
		return "variable"
	}
	return "fixed"
}

// Termination tells why a forecast stopped
type Termination uint8

const (
	TerminatedBudget Termination = iota
	TerminatedCollision
)

func (t Termination) String() string {
	if t == TerminatedCollision {
		return "collision"
	}
	return "budget"
}

// Path is a forecast polyline, first point is the start
type Path []vmath.Vec2

// Last returns the final point, zero for an empty path
func (p Path) Last() vmath.Vec2 {
	if len(p) == 0 {
		return vmath.Zero
	}
	return p[len(p)-1]
}

// Forecaster simulates a hypothetical launch for preview
// It never touches real body state; every call builds a fresh path
type Forecaster struct {
	Gravity *GravityProfile // nil disables gravity
	Query   CollisionQuery  // nil means nothing to hit
	Mask    Mask

	MaxSteps       int
	MinHitDistance float64
	Mode           StepMode
	FixedStep      float64

	// Swept collider instead of a thin segment
	UseShapeCast     bool
	ShapeHalfExtents vmath.Vec2

	// StartOffset moves the start off the body, above the collider top by default
	StartOffset vmath.Vec2
}

// NewForecaster creates a forecaster with default budget and step
func NewForecaster(gravity *GravityProfile, query CollisionQuery, mask Mask) *Forecaster {
	return &Forecaster{
		Gravity:        gravity,
		Query:          query,
		Mask:           mask,
		MaxSteps:       parameter.ArcSteps,
		MinHitDistance: parameter.MinHitDistance,
		Mode:           StepFixed,
		FixedStep:      parameter.FixedStep.Seconds(),
	}
}

// StepDuration resolves the step interval for the configured mode
func (f *Forecaster) StepDuration(frameDt float64) float64 {
	if f.Mode == StepVariable {
		return frameDt
	}
	return f.FixedStep
}

// Forecast samples up to MaxSteps points starting at start with velocity vel
// Stops early on the first hit beyond MinHitDistance, appending the hit point
func (f *Forecaster) Forecast(start, vel vmath.Vec2, frameDt float64) (Path, Termination) {
	steps := f.MaxSteps
	if steps < 1 {
		steps = 1
	}

	pos := start.Add(f.StartOffset)
	path := make(Path, 1, steps)
	path[0] = pos

	dt := f.StepDuration(frameDt)
	if dt <= 0 {
		return path, TerminatedBudget
	}

	var fall FallState
	for i := 1; i < steps; i++ {
		vel = StepVelocity(vel, dt, f.Gravity, &fall)
		next := Integrate(pos, vel, dt)

		if hit, ok := f.cast(pos, next); ok {
			path = append(path, hit)
			return path, TerminatedCollision
		}

		pos = next
		path = append(path, pos)
	}

	return path, TerminatedBudget
}

// cast tests prev->next, ignoring hits within MinHitDistance of prev
func (f *Forecaster) cast(prev, next vmath.Vec2) (vmath.Vec2, bool) {
	if f.Query == nil {
		return vmath.Zero, false
	}

	if f.UseShapeCast {
		delta := next.Sub(prev)
		if delta.Len() <= 0 {
			return vmath.Zero, false
		}
		hit, ok := f.Query.ShapeCast(prev, f.ShapeHalfExtents, delta, f.Mask)
		if ok && hit.Distance > f.MinHitDistance {
			return hit.Point, true
		}
		return vmath.Zero, false
	}

	hit, ok := f.Query.SegmentCast(prev, next, f.Mask)
	if ok && vmath.DistanceSq(hit.Point, prev) > f.MinHitDistance*f.MinHitDistance {
		return hit.Point, true
	}
	return vmath.Zero, false
}
