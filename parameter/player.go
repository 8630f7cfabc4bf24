package parameter

// Launch & grab
const (
	// LaunchPower scales drag displacement into launch velocity
	LaunchPower = 2.0

	// GrabRadius is the radius searched for grabbable colliders
	GrabRadius = 1.5

	// FacingDeadZone is the |vx| below which facing is left unchanged
	FacingDeadZone = 0.05

	// PickupRadius is the radius searched for colour pickups each physics tick
	PickupRadius = 0.5
)

// Behavior thresholds
const (
	FallingThreshold         = -0.1
	JumpingThreshold         = 0.1
	LandingVelocityThreshold = -0.05

	// ForwardEnterVX selects the Forward variants when |vx| is at or above it
	ForwardEnterVX = 0.20

	// ForwardExitRatio scales ForwardEnterVX for demotion JumpingForward -> Jumping
	ForwardExitRatio = 0.5
)

// Behavior timing (seconds, presentation clock)
const (
	StateChangeCooldown = 0.05
	LandingDuration     = 0.5
	InjuredDuration     = 1.0
	RecoveringDuration  = 0.5

	// ActionDuration bounds Spitting and Spiking before they route back
	ActionDuration = 0.4
)
