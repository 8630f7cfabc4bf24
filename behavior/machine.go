// Package behavior resolves motion signals into a small set of discrete character states
package behavior

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/config"
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/telemetry"
	"github.com/lixenwraith/slime-launch/vmath"
)

// Settings holds thresholds and durations, times are in presentation seconds
type Settings struct {
	FallingThreshold         float64
	JumpingThreshold         float64
	LandingVelocityThreshold float64
	ForwardThreshold         float64
	ForwardExitRatio         float64

	Cooldown           float64
	LandingDuration    float64
	InjuredDuration    float64
	RecoveringDuration float64
	ActionDuration     float64
}

// DefaultSettings returns the tuned defaults
func DefaultSettings() Settings {
	return Settings{
		FallingThreshold:         parameter.FallingThreshold,
		JumpingThreshold:         parameter.JumpingThreshold,
		LandingVelocityThreshold: parameter.LandingVelocityThreshold,
		ForwardThreshold:         parameter.ForwardEnterVX,
		ForwardExitRatio:         parameter.ForwardExitRatio,
		Cooldown:                 parameter.StateChangeCooldown,
		LandingDuration:          parameter.LandingDuration,
		InjuredDuration:          parameter.InjuredDuration,
		RecoveringDuration:       parameter.RecoveringDuration,
		ActionDuration:           parameter.ActionDuration,
	}
}

// SettingsFromConfig extracts the behavior section
func SettingsFromConfig(cfg *config.Config) Settings {
	b := cfg.Behavior
	return Settings{
		FallingThreshold:         b.FallingThreshold,
		JumpingThreshold:         b.JumpingThreshold,
		LandingVelocityThreshold: b.LandingVelocityThreshold,
		ForwardThreshold:         b.ForwardThreshold,
		ForwardExitRatio:         b.ForwardExitRatio,
		Cooldown:                 b.Cooldown,
		LandingDuration:          b.LandingDuration,
		InjuredDuration:          b.InjuredDuration,
		RecoveringDuration:       b.RecoveringDuration,
		ActionDuration:           b.ActionDuration,
	}
}

// FallVariantLock freezes the fall variant from first fall entry until Landing or Idle
type FallVariantLock struct {
	Locked  bool
	Forward bool
}

// Machine is the behavior state machine of one character
// Update runs once per presentation tick; triggers may be called between ticks
type Machine struct {
	settings Settings
	body     VelocityWriter
	graph    *graph
	sig      signals // Context of the evaluation in progress

	duration    float64 // Lock or action duration of current state, 0 when untimed
	sinceChange float64 // Time since last commit, gates evaluation

	grounded    bool // Grounded as of last evaluation
	wasGrounded bool
	fallLock    FallVariantLock

	observers []Presentation

	log     zerolog.Logger
	metrics *telemetry.Metrics
}

// NewMachine creates a machine in Idle
// body may be nil, then Landing entry leaves velocity alone
func NewMachine(settings Settings, body VelocityWriter, log zerolog.Logger, metrics *telemetry.Metrics) *Machine {
	m := &Machine{
		settings:    settings,
		body:        body,
		sinceChange: settings.Cooldown,
		log:         log.With().Str("component", "behavior").Logger(),
		metrics:     metrics,
	}
	m.graph = newGraph(&m.settings)
	if err := m.graph.Init(m, Idle); err != nil {
		m.log.Error().Err(err).Msg("behavior graph has no Idle state")
	}
	return m
}

// Subscribe registers a presentation, notified after each committed transition
func (m *Machine) Subscribe(p Presentation) {
	if p != nil {
		m.observers = append(m.observers, p)
	}
}

// Update advances timers by dt and evaluates at most one transition
func (m *Machine) Update(dt float64, in Inputs) {
	m.graph.Advance(dt)
	m.sinceChange += dt

	if m.sinceChange >= m.settings.Cooldown {
		m.evaluate(in)
	}

	m.pushFrame(in)
}

func (m *Machine) evaluate(in Inputs) {
	m.wasGrounded = m.grounded
	m.grounded = in.Grounded
	justLanded := !m.wasGrounded && in.Grounded && in.Velocity[1] <= m.settings.LandingVelocityThreshold

	current := m.Current()
	if current.Timed() && m.TimeInState() < m.duration {
		return
	}

	if justLanded && current != Landing && current != Dead {
		m.commit(Landing, "landed")
		return
	}

	m.sig = newSignals(in, m.TimeInState(), m.duration, m.fallLock, &m.settings)
	if _, changed := m.graph.Evaluate(m); changed {
		m.committed()
	}
}

// commit forces a transition outside the rule table
func (m *Machine) commit(target State, rule string) {
	if m.graph.Transition(m, target, rule) {
		m.committed()
	}
}

// committed restarts the cooldown then notifies observers, entry and exit actions have already run
func (m *Machine) committed() {
	m.sinceChange = 0
	prev, next := m.Previous(), m.Current()

	m.log.Debug().
		Stringer("from", prev).
		Stringer("to", next).
		Str("rule", m.LastRule()).
		Msg("transition")
	m.metrics.Transition(prev.String(), next.String())

	for _, o := range m.observers {
		o.OnTransition(prev, next)
	}
}

func (m *Machine) clearDownwardVelocity() {
	if m.body == nil {
		return
	}
	v := m.body.Velocity()
	if v[1] < 0 {
		m.body.SetVelocity(vmath.WithY(v, 0))
	}
}

func (m *Machine) pushFrame(in Inputs) {
	if len(m.observers) == 0 {
		return
	}
	f := Frame{
		State:     m.Current(),
		Grounded:  in.Grounded,
		Grabbing:  in.Grabbing,
		Dragging:  in.Dragging,
		VelocityX: in.Velocity[0],
		VelocityY: in.Velocity[1],
		Facing:    in.Facing,
	}
	for _, o := range m.observers {
		o.OnFrame(f)
	}
}

// --- External triggers, administrative overrides outside the table ---

// TriggerSpit enters Spitting from Idle or Jumping, ignored otherwise
func (m *Machine) TriggerSpit() bool {
	if m.Current() != Idle && m.Current() != Jumping {
		return false
	}
	m.commit(Spitting, "spit")
	return true
}

// TriggerSpike enters Spiking from Idle or Jumping, ignored otherwise
func (m *Machine) TriggerSpike() bool {
	if m.Current() != Idle && m.Current() != Jumping {
		return false
	}
	m.commit(Spiking, "spike")
	return true
}

// TakeDamage enters Injured unless Dead or already Injured
func (m *Machine) TakeDamage() bool {
	if m.Current() == Dead || m.Current() == Injured {
		return false
	}
	m.commit(Injured, "damage")
	return true
}

// Die enters Dead, cancelling any timed countdown
func (m *Machine) Die() {
	m.commit(Dead, "die")
}

// Respawn forces Idle
func (m *Machine) Respawn() {
	m.commit(Idle, "respawn")
}

// --- Accessors ---

func (m *Machine) Current() State { return m.graph.ActiveStateID() }
func (m *Machine) Previous() State { return m.graph.PreviousStateID() }
func (m *Machine) TimeInState() float64 { return m.graph.TimeInState() }
func (m *Machine) Duration() float64 { return m.duration }
func (m *Machine) FallLock() FallVariantLock { return m.fallLock }
func (m *Machine) Grounded() bool { return m.grounded }

// LastRule names the rule of the most recent transition
func (m *Machine) LastRule() string { return m.graph.LastTransition() }

// Validate reports states without a node and guard or action names that did not resolve
func (m *Machine) Validate() error {
	return m.graph.Validate(AllStates()...)
}
