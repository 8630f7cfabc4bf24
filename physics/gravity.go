package physics

import (
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/vmath"
)

// GravityProfile defines the asymmetric custom gravity parameters
type GravityProfile struct {
	Acceleration     float64 // Downward acceleration (units/s²)
	MaxFallSpeed     float64 // Fall speed cap (units/s)
	AscentMultiplier float64 // Gravity scale while ascending, (0,1)
	FallingEpsilon   float64 // vy at or below this takes the descending branch
	LinearDamping    float64 // Damping coefficient (1/s)
	UseDamping       bool
}

// DefaultGravityProfile returns the tuned defaults
func DefaultGravityProfile() GravityProfile {
	return GravityProfile{
		Acceleration:     parameter.GravityAcceleration,
		MaxFallSpeed:     parameter.MaxFallSpeed,
		AscentMultiplier: parameter.AscentGravityMultiplier,
		FallingEpsilon:   parameter.FallingStartEpsilon,
		LinearDamping:    parameter.LinearDamping,
		UseDamping:       parameter.UseLinearDamping,
	}
}

// FallState persists the accumulated fall speed across ticks
// Owned by the character context for real motion, by the forecaster locally for previews
type FallState struct {
	FallSpeed float64
}

// Reset clears the accumulated fall speed
func (s *FallState) Reset() {
	s.FallSpeed = 0
}

// ApplyGravity advances vertical velocity by one step
// Descending: fall speed builds by g*dt up to the cap and replaces vy
// Ascending: reduced gravity g*k*dt, fall speed resets
func ApplyGravity(vy, dt float64, p *GravityProfile, s *FallState) float64 {
	if vy <= p.FallingEpsilon {
		s.FallSpeed += p.Acceleration * dt
		if s.FallSpeed > p.MaxFallSpeed {
			s.FallSpeed = p.MaxFallSpeed
		}
		return -s.FallSpeed
	}

	s.FallSpeed = 0
	return vy - p.Acceleration*p.AscentMultiplier*dt
}

// ApplyDamping scales both axes by 1/(1+damping*dt)
func ApplyDamping(v vmath.Vec2, dt, damping float64) vmath.Vec2 {
	if damping <= 0 {
		return v
	}
	return v.Mul(1 / (1 + damping*dt))
}

// StepVelocity applies gravity then damping, the single velocity rule used by
// both real integration and forecasting
func StepVelocity(v vmath.Vec2, dt float64, p *GravityProfile, s *FallState) vmath.Vec2 {
	if p == nil {
		return v
	}
	v[1] = ApplyGravity(v[1], dt, p, s)
	if p.UseDamping {
		v = ApplyDamping(v, dt, p.LinearDamping)
	}
	return v
}

// Integrate performs position integration: p = p + v*dt
func Integrate(pos, vel vmath.Vec2, dt float64) vmath.Vec2 {
	return pos.Add(vel.Mul(dt))
}
