package behavior

// State is the discrete behavior state of a character
type State uint8

const (
	Idle State = iota
	WindUp
	Jumping
	JumpingForward
	Falling
	Landing
	Spitting
	SplatWall
	Injured
	Recovering
	Dead
	Spiking
	FallingForward

	StateCount
)

var stateNames = [StateCount]string{
	Idle:           "Idle",
	WindUp:         "WindUp",
	Jumping:        "Jumping",
	JumpingForward: "JumpingForward",
	Falling:        "Falling",
	Landing:        "Landing",
	Spitting:       "Spitting",
	SplatWall:      "SplatWall",
	Injured:        "Injured",
	Recovering:     "Recovering",
	Dead:           "Dead",
	Spiking:        "Spiking",
	FallingForward: "FallingForward",
}

// Animation clip names, several differ from the state name
var animationNames = [StateCount]string{
	Idle:           "Idle",
	WindUp:         "WindUp",
	Jumping:        "Jump",
	JumpingForward: "JumpForward",
	Falling:        "Fall",
	Landing:        "Land",
	Spitting:       "Spit",
	SplatWall:      "SplatWall",
	Injured:        "Injured",
	Recovering:     "Recover",
	Dead:           "Death",
	Spiking:        "Spike",
	FallingForward: "FallForward",
}

func (s State) String() string {
	if s >= StateCount {
		return "Unknown"
	}
	return stateNames[s]
}

// AnimationName returns the clip a presentation should play, Idle for unknown states
func (s State) AnimationName() string {
	if s >= StateCount {
		return animationNames[Idle]
	}
	return animationNames[s]
}

// AllStates lists every state in declaration order
func AllStates() []State {
	out := make([]State, StateCount)
	for i := range out {
		out[i] = State(i)
	}
	return out
}

// Timed reports whether s holds until its duration elapses
func (s State) Timed() bool {
	return s == Landing || s == Injured || s == Recovering
}
