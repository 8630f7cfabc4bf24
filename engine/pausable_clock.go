package engine

import "time"

// PausableClock derives simulation time from a TimeProvider, frozen while paused
type PausableClock struct {
	source TimeProvider

	realStartTime time.Time

	isPaused        bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a clock running from source
func NewPausableClock(source TimeProvider) *PausableClock {
	return &PausableClock{
		source:        source,
		realStartTime: source.Now(),
	}
}

// Now returns current simulation time (affected by pause)
func (pc *PausableClock) Now() time.Time {
	if pc.isPaused {
		// During pause: return frozen time at pause point
		return pc.realStartTime.Add(pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime)
	}
	realElapsed := pc.source.Now().Sub(pc.realStartTime)
	return pc.realStartTime.Add(realElapsed - pc.totalPausedTime)
}

// Pause stops time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused {
		return
	}
	pc.isPaused = true
	pc.pauseStartTime = pc.source.Now()
}

// Resume continues time advancement
func (pc *PausableClock) Resume() {
	if !pc.isPaused {
		return
	}
	pc.isPaused = false
	pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
}

// Toggle flips the pause state, returns true when now paused
func (pc *PausableClock) Toggle() bool {
	if pc.isPaused {
		pc.Resume()
	} else {
		pc.Pause()
	}
	return pc.isPaused
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused
}

// TotalPauseDuration returns cumulative pause time including the current pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	total := pc.totalPausedTime
	if pc.isPaused {
		total += pc.source.Now().Sub(pc.pauseStartTime)
	}
	return total
}
