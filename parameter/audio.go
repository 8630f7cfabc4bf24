package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer, trades latency for underrun safety
	AudioBufferDuration = 100 * time.Millisecond

	AudioMasterVolume = 0.6
)

// Jump cue: noise whoosh under a rising tone
const (
	JumpSoundDuration = 180 * time.Millisecond
	JumpSoundAttack   = 10 * time.Millisecond
	JumpSoundRelease  = 120 * time.Millisecond
	JumpSoundStartHz  = 220.0
	JumpSoundEndHz    = 660.0
)

// Land cue: short low thud
const (
	LandSoundDuration = 90 * time.Millisecond
	LandSoundAttack   = 2 * time.Millisecond
	LandSoundRelease  = 70 * time.Millisecond
	LandSoundHz       = 70.0
)

// Splat cue: wet noise burst on wall grab
const (
	SplatSoundDuration = 120 * time.Millisecond
	SplatSoundAttack   = 1 * time.Millisecond
	SplatSoundRelease  = 90 * time.Millisecond
)

// Injured cue: harsh saw buzz
const (
	InjuredSoundDuration = 200 * time.Millisecond
	InjuredSoundAttack   = 5 * time.Millisecond
	InjuredSoundRelease  = 60 * time.Millisecond
	InjuredSoundHz       = 110.0
)

// Death cue: falling sweep
const (
	DeathSoundDuration = 700 * time.Millisecond
	DeathSoundAttack   = 10 * time.Millisecond
	DeathSoundRelease  = 300 * time.Millisecond
	DeathSoundStartHz  = 440.0
	DeathSoundEndHz    = 55.0
)

// Action cues: two-note square blips
const (
	BlipNoteDuration = 45 * time.Millisecond
	BlipAttack       = 2 * time.Millisecond
	BlipRelease      = 25 * time.Millisecond

	SpitSoundNote1Hz  = 987.77
	SpitSoundNote2Hz  = 1318.51
	SpikeSoundNote1Hz = 392.0
	SpikeSoundNote2Hz = 261.63
)
