package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/slime-launch/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves, sweeping linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from startFreq to endFreq over duration
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     startFreq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.endFreq != o.freq && o.duration > 0 {
			t := float64(o.position) / float64(o.duration)
			freq = o.freq + (o.endFreq-o.freq)*t
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume applies a linear gain; math.Log2(0) is -Inf so zero gain is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func shaped(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(s, duration, attack, release, rate)
}

// CreateJumpSound mixes a noise whoosh with a rising tone
func CreateJumpSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.JumpSoundDuration

	noise := shaped(NewOscillator(0, d, WaveNoise, rate), d, parameter.JumpSoundAttack, parameter.JumpSoundRelease, rate)
	tone := shaped(NewSweep(parameter.JumpSoundStartHz, parameter.JumpSoundEndHz, d, WaveSine, rate), d, parameter.JumpSoundAttack, parameter.JumpSoundRelease, rate)

	mixed := beep.Mix(newVolume(noise, 0.4), newVolume(tone, 0.6))
	return newVolume(mixed, cfg.volume(CueJump))
}

// CreateLandSound generates a low sine thud
func CreateLandSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.LandSoundDuration

	osc := NewSweep(parameter.LandSoundHz*1.5, parameter.LandSoundHz, d, WaveSine, rate)
	return newVolume(shaped(osc, d, parameter.LandSoundAttack, parameter.LandSoundRelease, rate), cfg.volume(CueLand))
}

// CreateSplatSound generates a short noise burst
func CreateSplatSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.SplatSoundDuration

	noise := NewOscillator(0, d, WaveNoise, rate)
	return newVolume(shaped(noise, d, parameter.SplatSoundAttack, parameter.SplatSoundRelease, rate), cfg.volume(CueSplat))
}

// CreateInjuredSound generates a harsh saw buzz
func CreateInjuredSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.InjuredSoundDuration

	osc := NewOscillator(parameter.InjuredSoundHz, d, WaveSaw, rate)
	return newVolume(shaped(osc, d, parameter.InjuredSoundAttack, parameter.InjuredSoundRelease, rate), cfg.volume(CueInjured))
}

// CreateDeathSound generates a long falling square sweep
func CreateDeathSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.DeathSoundDuration

	osc := NewSweep(parameter.DeathSoundStartHz, parameter.DeathSoundEndHz, d, WaveSquare, rate)
	return newVolume(shaped(osc, d, parameter.DeathSoundAttack, parameter.DeathSoundRelease, rate), cfg.volume(CueDeath))
}

// blip plays two short square notes back to back
func blip(cfg *Config, cue Cue, note1, note2 float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.BlipNoteDuration

	n1 := shaped(NewOscillator(note1, d, WaveSquare, rate), d, parameter.BlipAttack, parameter.BlipRelease, rate)
	n2 := shaped(NewOscillator(note2, d, WaveSquare, rate), d, parameter.BlipAttack, parameter.BlipRelease, rate)

	return newVolume(beep.Seq(n1, n2), cfg.volume(cue))
}

// CreateSpitSound generates a rising two-note blip
func CreateSpitSound(cfg *Config) beep.Streamer {
	return blip(cfg, CueSpit, parameter.SpitSoundNote1Hz, parameter.SpitSoundNote2Hz)
}

// CreateSpikeSound generates a falling two-note blip
func CreateSpikeSound(cfg *Config) beep.Streamer {
	return blip(cfg, CueSpike, parameter.SpikeSoundNote1Hz, parameter.SpikeSoundNote2Hz)
}

// GetCueSound returns a fresh streamer for the cue, nil for an unknown cue
func GetCueSound(cue Cue, cfg *Config) beep.Streamer {
	switch cue {
	case CueJump:
		return CreateJumpSound(cfg)
	case CueLand:
		return CreateLandSound(cfg)
	case CueSplat:
		return CreateSplatSound(cfg)
	case CueInjured:
		return CreateInjuredSound(cfg)
	case CueDeath:
		return CreateDeathSound(cfg)
	case CueSpit:
		return CreateSpitSound(cfg)
	case CueSpike:
		return CreateSpikeSound(cfg)
	default:
		return nil
	}
}

// CueDuration is the nominal length of a cue
func CueDuration(cue Cue) time.Duration {
	switch cue {
	case CueJump:
		return parameter.JumpSoundDuration
	case CueLand:
		return parameter.LandSoundDuration
	case CueSplat:
		return parameter.SplatSoundDuration
	case CueInjured:
		return parameter.InjuredSoundDuration
	case CueDeath:
		return parameter.DeathSoundDuration
	case CueSpit, CueSpike:
		return 2 * parameter.BlipNoteDuration
	default:
		return 0
	}
}
