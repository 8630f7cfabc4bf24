package engine

import (
	"time"

	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/telemetry"
)

// TickFunc receives the tick interval in seconds
type TickFunc func(dt float64)

// Scheduler drives the two update phases of a frame
// Each frame runs 0..maxCatchUp fixed physics ticks, then exactly one presentation tick
// Physics for a frame always completes before that frame's presentation
type Scheduler struct {
	step       time.Duration
	maxCatchUp int
	clock      TimeProvider

	physics      TickFunc
	presentation TickFunc

	lastFrame   time.Time
	accumulator time.Duration

	frames  uint64
	ticks   uint64
	dropped uint64

	metrics *telemetry.Metrics
}

// NewScheduler creates a scheduler, the first Frame measures from construction time
// A non-positive step falls back to parameter.FixedStep
func NewScheduler(step time.Duration, maxCatchUp int, clock TimeProvider, physics, presentation TickFunc, metrics *telemetry.Metrics) *Scheduler {
	if step <= 0 {
		step = parameter.FixedStep
	}
	if maxCatchUp < 1 {
		maxCatchUp = 1
	}
	return &Scheduler{
		step:         step,
		maxCatchUp:   maxCatchUp,
		clock:        clock,
		physics:      physics,
		presentation: presentation,
		lastFrame:    clock.Now(),
		metrics:      metrics,
	}
}

// Frame samples the clock and advances by the elapsed time, returns physics ticks run
func (s *Scheduler) Frame() int {
	now := s.clock.Now()
	elapsed := now.Sub(s.lastFrame)
	s.lastFrame = now
	return s.Advance(elapsed)
}

// Advance runs floor(accumulated/step) physics ticks, bounded by the catch-up limit,
// then one presentation tick with the frame's elapsed time
// Ticks beyond the bound are dropped so a stall cannot spiral
func (s *Scheduler) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	s.accumulator += elapsed

	n := int(s.accumulator / s.step)
	drop := 0
	if n > s.maxCatchUp {
		drop = n - s.maxCatchUp
		n = s.maxCatchUp
		s.accumulator -= time.Duration(drop) * s.step
	}

	dt := s.step.Seconds()
	for i := 0; i < n; i++ {
		if s.physics != nil {
			s.physics(dt)
		}
		s.accumulator -= s.step
	}

	if s.presentation != nil {
		s.presentation(elapsed.Seconds())
	}

	s.frames++
	s.ticks += uint64(n)
	s.dropped += uint64(drop)
	s.metrics.PhysicsTicks(n, drop)
	return n
}

// Alpha is the fraction of a step left in the accumulator, for render interpolation
func (s *Scheduler) Alpha() float64 {
	return float64(s.accumulator) / float64(s.step)
}

// Reset discards accumulated time and restarts frame measurement
func (s *Scheduler) Reset() {
	s.accumulator = 0
	s.lastFrame = s.clock.Now()
}

func (s *Scheduler) Step() time.Duration { return s.step }
func (s *Scheduler) Frames() uint64 { return s.frames }
func (s *Scheduler) Ticks() uint64 { return s.ticks }
func (s *Scheduler) Dropped() uint64 { return s.dropped }
