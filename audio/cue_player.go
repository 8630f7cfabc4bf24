// Package audio synthesizes behavior transition cues with beep
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/behavior"
	"github.com/lixenwraith/slime-launch/parameter"
)

// CuePlayer is a behavior presentation that plays a cue per committed transition
// Until Initialize succeeds it runs silent: cues are counted but not played
type CuePlayer struct {
	mu          sync.Mutex
	config      *Config
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	requested [cueCount]uint64
	played    [cueCount]uint64

	log zerolog.Logger
}

// NewCuePlayer creates a silent player, nil cfg uses the default mix
func NewCuePlayer(cfg *Config, log zerolog.Logger) *CuePlayer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &CuePlayer{
		config: cfg,
		mixer:  &beep.Mixer{},
		muted:  !cfg.Enabled,
		log:    log.With().Str("component", "audio").Logger(),
	}
}

// Initialize opens the speaker and starts the mixer
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := beep.SampleRate(p.config.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Info().Int("sample_rate", p.config.SampleRate).Msg("speaker initialized")
	return nil
}

// Cleanup drops queued cues and returns to silent mode
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker close; an empty mixer streams silence
	p.initialized = false
}

// OnTransition plays the cue mapped to the transition, if any
func (p *CuePlayer) OnTransition(prev, next behavior.State) {
	if cue, ok := CueFor(prev, next); ok {
		p.Play(cue)
	}
}

// OnFrame is unused, cues are transition-driven
func (p *CuePlayer) OnFrame(behavior.Frame) {}

// Play queues a fresh cue streamer, returns false when silent or muted
func (p *CuePlayer) Play(cue Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cue < 0 || cue >= cueCount {
		return false
	}
	p.requested[cue]++

	if !p.initialized || p.muted {
		return false
	}

	s := GetCueSound(cue, p.config)
	if s == nil {
		return false
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()

	p.played[cue]++
	return true
}

// ToggleMute flips mute, returns true if now audible
func (p *CuePlayer) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return !p.muted
}

func (p *CuePlayer) IsMuted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *CuePlayer) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Stats returns how often a cue was requested and actually played
func (p *CuePlayer) Stats(cue Cue) (requested, played uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cue < 0 || cue >= cueCount {
		return 0, 0
	}
	return p.requested[cue], p.played[cue]
}

var _ behavior.Presentation = (*CuePlayer)(nil)
