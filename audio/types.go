package audio

import "github.com/lixenwraith/slime-launch/behavior"

// Cue identifies a synthesized transition sound
type Cue int

const (
	CueJump    Cue = iota // Launch into Jumping or JumpingForward
	CueLand               // Entering Landing
	CueSplat              // Grabbing a wall
	CueInjured            // Taking damage
	CueDeath              // Entering Dead
	CueSpit
	CueSpike
	cueCount
)

var cueNames = [cueCount]string{"jump", "land", "splat", "injured", "death", "spit", "spike"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// CueFor maps a committed transition to its cue
// Jumping <-> JumpingForward promotions and fall variants stay silent
func CueFor(prev, next behavior.State) (Cue, bool) {
	switch next {
	case behavior.Jumping, behavior.JumpingForward:
		if prev == behavior.WindUp || prev == behavior.SplatWall || prev == behavior.Idle {
			return CueJump, true
		}
	case behavior.Landing:
		return CueLand, true
	case behavior.SplatWall:
		return CueSplat, true
	case behavior.Injured:
		return CueInjured, true
	case behavior.Dead:
		return CueDeath, true
	case behavior.Spitting:
		return CueSpit, true
	case behavior.Spiking:
		return CueSpike, true
	}
	return 0, false
}
