package parameter

// Custom gravity, mirrored by the trajectory forecaster
const (
	// GravityAcceleration is the downward acceleration in units/s²
	GravityAcceleration = 25.0

	// MaxFallSpeed caps the accumulated fall speed in units/s
	MaxFallSpeed = 15.0

	// AscentGravityMultiplier softens gravity while moving up (0,1)
	AscentGravityMultiplier = 0.3

	// FallingStartEpsilon is the vertical velocity at or below which the body is treated as descending
	FallingStartEpsilon = 0.1

	// LinearDamping is the body's linear damping coefficient, 0 disables
	LinearDamping = 0.0

	// UseLinearDamping toggles damping in both the real and predictive paths
	UseLinearDamping = true
)

// Ground contact debounce
const (
	// GroundEnterDebounce is the contact time required before reporting grounded (seconds)
	GroundEnterDebounce = 0.02

	// GroundExitDebounce is the no-contact time required before reporting airborne (seconds)
	GroundExitDebounce = 0.05

	// GroundedThreshold is the base vertical velocity used by the grounded override
	GroundedThreshold = 0.1

	// GroundedOverrideMargin is added to GroundedThreshold; above the sum a grounded body is forced airborne
	GroundedOverrideMargin = 0.05

	// GroundProbeOffsetY places the contact box under the feet
	GroundProbeOffsetY = -0.5

	// GroundProbeWidth, GroundProbeHeight size the contact box
	GroundProbeWidth  = 0.6
	GroundProbeHeight = 0.1
)

// Kinetic body
const (
	// BodyHalfWidth, BodyHalfHeight describe the character collider
	BodyHalfWidth  = 0.3
	BodyHalfHeight = 0.5

	// BodySkin keeps the body this far off a surface after a blocked move
	BodySkin = 0.001
)
