package physics

import (
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/vmath"
)

// GroundProfile defines debounce thresholds for the ground sensor
type GroundProfile struct {
	EnterDebounce    float64 // Contact time before grounded is reported (s)
	ExitDebounce     float64 // No-contact time before airborne is reported (s)
	VelocityOverride float64 // Grounded is vetoed while vy exceeds this
}

// NewGroundProfile builds a profile whose velocity override is threshold plus margin
func NewGroundProfile(enter, exit, threshold, margin float64) GroundProfile {
	return GroundProfile{
		EnterDebounce:    enter,
		ExitDebounce:     exit,
		VelocityOverride: threshold + margin,
	}
}

// DefaultGroundProfile returns the tuned defaults
func DefaultGroundProfile() GroundProfile {
	return NewGroundProfile(parameter.GroundEnterDebounce, parameter.GroundExitDebounce,
		parameter.GroundedThreshold, parameter.GroundedOverrideMargin)
}

// GroundState is the debounced grounded signal and its accumulators
// Only the debounced flag is observable
type GroundState struct {
	grounded    bool
	groundedFor float64
	airborneFor float64
}

// Grounded returns the debounced flag
func (s *GroundState) Grounded() bool {
	return s.grounded
}

// Reset returns to airborne with cleared accumulators
func (s *GroundState) Reset() {
	*s = GroundState{}
}

// GroundProbe is the contact box placed under the feet
type GroundProbe struct {
	Offset      vmath.Vec2
	HalfExtents vmath.Vec2
}

// DefaultGroundProbe returns the tuned probe geometry
func DefaultGroundProbe() GroundProbe {
	return GroundProbe{
		Offset:      vmath.V2(0, parameter.GroundProbeOffsetY),
		HalfExtents: vmath.V2(parameter.GroundProbeWidth/2, parameter.GroundProbeHeight/2),
	}
}

// Contact runs the raw overlap test at pos
func (p GroundProbe) Contact(q CollisionQuery, pos vmath.Vec2, mask Mask) bool {
	if q == nil {
		return false
	}
	return q.OverlapBox(pos.Add(p.Offset), p.HalfExtents, mask)
}

// GroundSensor converts raw per-tick contact into a debounced grounded signal
type GroundSensor struct {
	Profile GroundProfile
}

// NewGroundSensor creates a sensor with the given thresholds
func NewGroundSensor(profile GroundProfile) *GroundSensor {
	return &GroundSensor{Profile: profile}
}

// Sense folds one raw contact sample into s and returns the debounced flag
// vy feeds the upward-velocity override
func (g *GroundSensor) Sense(s *GroundState, rawContact bool, dt, vy float64) bool {
	if rawContact {
		s.groundedFor += dt
		s.airborneFor = 0
		if !s.grounded && s.groundedFor >= g.Profile.EnterDebounce {
			s.grounded = true
		}
	} else {
		s.airborneFor += dt
		s.groundedFor = 0
		if s.grounded && s.airborneFor >= g.Profile.ExitDebounce {
			s.grounded = false
		}
	}

	// Launching upward through a thin contact volume must not read as grounded
	if s.grounded && vy > g.Profile.VelocityOverride {
		s.grounded = false
	}

	return s.grounded
}
