package audio

import (
	"github.com/lixenwraith/slime-launch/parameter"
)

// Config is the cue mix
type Config struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64
	CueVolumes   [cueCount]float64
}

// DefaultConfig returns the built-in mix
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.AudioMasterVolume,
		CueVolumes: [cueCount]float64{
			CueJump:    0.5,
			CueLand:    0.8,
			CueSplat:   0.6,
			CueInjured: 0.5,
			CueDeath:   0.7,
			CueSpit:    0.4,
			CueSpike:   0.4,
		},
	}
}

// volume is the effective gain for a cue
func (c *Config) volume(cue Cue) float64 {
	if cue < 0 || cue >= cueCount {
		return 0
	}
	return c.CueVolumes[cue] * c.MasterVolume
}
