package parameter

import "time"

// Loop timing
const (
	// FixedStep is the physics tick interval
	FixedStep = 20 * time.Millisecond

	// FrameUpdateInterval is the presentation frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxCatchUpTicks bounds physics ticks run in a single frame, the remainder is dropped
	MaxCatchUpTicks = 5
)

// Trajectory forecast
const (
	// ArcSteps is the maximum number of points in a forecast path
	ArcSteps = 60

	// MinHitDistance ignores hits closer than this to the segment start (self-hits)
	MinHitDistance = 0.0005

	// ArcStartYOffset lifts the forecast start above the collider top
	ArcStartYOffset = 0.03

	// ForecastUseFixedStep selects fixed step over frame delta for forecasting
	ForecastUseFixedStep = true

	// ForecastUseShapeCast sweeps the collider instead of a segment
	ForecastUseShapeCast = false
)
