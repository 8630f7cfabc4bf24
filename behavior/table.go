package behavior

import (
	"github.com/lixenwraith/slime-launch/engine/fsm"
	"github.com/lixenwraith/slime-launch/vmath"
)

// signals is the evaluation context of one presentation tick
type signals struct {
	Inputs
	absVx     float64
	timerDone bool
	fallLock  FallVariantLock
	settings  *Settings
}

func (s *signals) vy() float64 { return s.Velocity[1] }

func (s *signals) forward() bool {
	return s.absVx >= s.settings.ForwardThreshold
}

func newSignals(in Inputs, timer, duration float64, lock FallVariantLock, settings *Settings) signals {
	return signals{
		Inputs:    in,
		absVx:     vmath.Abs(in.Velocity[0]),
		timerDone: timer >= duration,
		fallLock:  lock,
		settings:  settings,
	}
}

type graph = fsm.Machine[State, *Machine]

func to(s State) fsm.TargetFunc[State, *Machine] {
	return fsm.Goto[State, *Machine](s)
}

// jumpVariant picks JumpingForward iff |vx| reaches the forward threshold
func jumpVariant(m *Machine) State {
	if m.sig.forward() {
		return JumpingForward
	}
	return Jumping
}

// fallVariant reuses the locked variant while the lock is held
func fallVariant(m *Machine) State {
	lock := m.sig.fallLock
	if lock.Locked {
		if lock.Forward {
			return FallingForward
		}
		return Falling
	}
	if m.sig.forward() {
		return FallingForward
	}
	return Falling
}

// airborneVariant routes by vertical direction: ascending jumps, anything else falls
func airborneVariant(m *Machine) State {
	if m.sig.vy() > m.settings.JumpingThreshold {
		return jumpVariant(m)
	}
	return fallVariant(m)
}

var guards = map[string]fsm.GuardFunc[*Machine]{
	"dragging":          func(m *Machine) bool { return m.sig.Dragging },
	"not_dragging":      func(m *Machine) bool { return !m.sig.Dragging },
	"grabbing":          func(m *Machine) bool { return m.sig.Grabbing },
	"grounded":          func(m *Machine) bool { return m.sig.Grounded },
	"airborne":          func(m *Machine) bool { return !m.sig.Grounded },
	"timer_done":        func(m *Machine) bool { return m.sig.timerDone },
	"released_grounded": func(m *Machine) bool { return !m.sig.Grabbing && m.sig.Grounded },
	"released":          func(m *Machine) bool { return !m.sig.Grabbing },
	"descending":        func(m *Machine) bool { return m.sig.vy() <= m.settings.FallingThreshold },
	"ascending":         func(m *Machine) bool { return m.sig.vy() > m.settings.JumpingThreshold },
	"reached_forward":   func(m *Machine) bool { return m.sig.forward() },
	"dropped_forward": func(m *Machine) bool {
		return m.sig.absVx < m.settings.ForwardThreshold*m.settings.ForwardExitRatio
	},
	"action_done_airborne": func(m *Machine) bool { return m.sig.timerDone && !m.sig.Grounded },
}

var actions = map[string]fsm.ActionFunc[*Machine]{
	"set_duration":   func(m *Machine, args any) { m.duration = args.(float64) },
	"clear_duration": func(m *Machine, _ any) { m.duration = 0 },
	// Freezes the fall variant on first fall entry, args is the forward flag
	"lock_fall_variant": func(m *Machine, args any) {
		if !m.fallLock.Locked {
			m.fallLock = FallVariantLock{Locked: true, Forward: args.(bool)}
		}
	},
	"clear_fall_lock":         func(m *Machine, _ any) { m.fallLock = FallVariantLock{} },
	"clear_downward_velocity": func(m *Machine, _ any) { m.clearDownwardVelocity() },
}

// newGraph builds the per-state rule table and lifecycle actions, every State gets a node
func newGraph(settings *Settings) *graph {
	g := fsm.NewMachine[State, *Machine]()
	for name, fn := range guards {
		g.RegisterGuard(name, fn)
	}
	for name, fn := range actions {
		g.RegisterAction(name, fn)
	}
	for _, s := range AllStates() {
		g.AddState(s, s.String())
	}

	g.AddRule(Idle, "drag", "dragging", to(WindUp))
	g.AddRule(Idle, "airborne", "airborne", airborneVariant)
	g.AddRule(Idle, "grab", "grabbing", to(SplatWall))

	g.AddRule(WindUp, "launch", "not_dragging", to(Jumping))

	g.AddRule(Jumping, "grounded", "grounded", to(Landing))
	g.AddRule(Jumping, "apex", "descending", fallVariant)
	g.AddRule(Jumping, "forward", "reached_forward", to(JumpingForward))

	g.AddRule(JumpingForward, "grounded", "grounded", to(Landing))
	g.AddRule(JumpingForward, "apex", "descending", fallVariant)
	g.AddRule(JumpingForward, "slowed", "dropped_forward", to(Jumping))

	for _, s := range []State{Falling, FallingForward} {
		g.AddRule(s, "grounded", "grounded", to(Landing))
		g.AddRule(s, "rebound", "ascending", jumpVariant)
	}

	g.AddRule(Landing, "settled", "timer_done", to(Idle))

	g.AddRule(SplatWall, "release_grounded", "released_grounded", to(Landing))
	g.AddRule(SplatWall, "release", "released", airborneVariant)

	g.AddRule(Injured, "recover", "timer_done", to(Recovering))
	g.AddRule(Recovering, "recovered", "timer_done", to(Idle))

	for _, s := range []State{Spitting, Spiking} {
		g.AddRule(s, "action_airborne", "action_done_airborne", airborneVariant)
		g.AddRule(s, "action_done", "timer_done", to(Idle))
	}

	// Dead has no rules; only Respawn leaves it

	durations := []struct {
		state    State
		duration float64
	}{
		{Landing, settings.LandingDuration},
		{Injured, settings.InjuredDuration},
		{Recovering, settings.RecoveringDuration},
		{Spitting, settings.ActionDuration},
		{Spiking, settings.ActionDuration},
	}
	for _, d := range durations {
		g.AddEnterAction(d.state, "set_duration", d.duration)
		g.AddExitAction(d.state, "clear_duration", nil)
	}

	g.AddEnterAction(Falling, "lock_fall_variant", false)
	g.AddEnterAction(FallingForward, "lock_fall_variant", true)
	g.AddEnterAction(Landing, "clear_fall_lock", nil)
	g.AddEnterAction(Idle, "clear_fall_lock", nil)
	g.AddEnterAction(Landing, "clear_downward_velocity", nil)

	return g
}
