package behavior

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/vmath"
)

type recorder struct {
	m           *Machine
	transitions [][2]State
	committed   []State // Current() observed inside the callback
	frames      []Frame
}

func (r *recorder) OnTransition(prev, next State) {
	r.transitions = append(r.transitions, [2]State{prev, next})
	r.committed = append(r.committed, r.m.Current())
}

func (r *recorder) OnFrame(f Frame) {
	r.frames = append(r.frames, f)
}

type velocityBox struct {
	v vmath.Vec2
}

func (b *velocityBox) Velocity() vmath.Vec2 { return b.v }
func (b *velocityBox) SetVelocity(v vmath.Vec2) { b.v = v }

func newTestMachine() (*Machine, *recorder, *velocityBox) {
	body := &velocityBox{}
	m := NewMachine(DefaultSettings(), body, zerolog.Nop(), nil)
	r := &recorder{m: m}
	m.Subscribe(r)
	return m, r, body
}

// dt well above the cooldown so every Update evaluates
const tick = 0.125

func air(vx, vy float64) Inputs {
	return Inputs{Velocity: vmath.V2(vx, vy)}
}

func ground(vx, vy float64) Inputs {
	return Inputs{Grounded: true, Velocity: vmath.V2(vx, vy)}
}

func expectState(t *testing.T, m *Machine, want State) {
	t.Helper()
	if m.Current() != want {
		t.Fatalf("Expected %s, got %s (rule %q)", want, m.Current(), m.LastRule())
	}
}

func TestLaunchScenario(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, ground(0, 0))
	expectState(t, m, Idle)

	// Launch velocity from drag (-2,3), power 2, step 0.02
	m.Update(tick, air(-0.08, 0.12))
	expectState(t, m, Jumping)
}

func TestDragThroughWindUp(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, Inputs{Grounded: true, Dragging: true})
	expectState(t, m, WindUp)

	m.Update(tick, Inputs{Grounded: true, Dragging: true})
	expectState(t, m, WindUp)

	// Launch always begins as Jumping, even with forward velocity
	m.Update(tick, air(3, 2))
	expectState(t, m, Jumping)
	m.Update(tick, air(3, 2))
	expectState(t, m, JumpingForward)
}

func TestIdleAirborneVariants(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want State
	}{
		{"ascending", air(0.1, 1), Jumping},
		{"ascending forward", air(0.2, 1), JumpingForward},
		{"descending", air(0, -1), Falling},
		{"descending forward", air(-0.5, -1), FallingForward},
		{"hovering falls", air(0, 0), Falling},
		{"grab on ground", Inputs{Grounded: true, Grabbing: true}, SplatWall},
		{"resting", ground(0, 0), Idle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestMachine()
			m.Update(tick, tt.in)
			expectState(t, m, tt.want)
		})
	}
}

func TestFallVariantHysteresis(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, air(0, 1))
	expectState(t, m, Jumping)

	m.Update(tick, air(0.05, -0.5))
	expectState(t, m, Falling)
	if lock := m.FallLock(); !lock.Locked || lock.Forward {
		t.Fatalf("Expected lock on Falling, got %+v", lock)
	}

	// Large horizontal speed while still descending must not switch variant
	for i := 0; i < 20; i++ {
		m.Update(tick, air(2, -3))
		expectState(t, m, Falling)
	}

	// Rebound then fall again: locked variant is reused
	m.Update(tick, air(2, 1))
	expectState(t, m, JumpingForward)
	m.Update(tick, air(2, -1))
	expectState(t, m, Falling)

	// Landing releases the lock
	m.Update(tick, ground(2, -1))
	expectState(t, m, Landing)
	if m.FallLock().Locked {
		t.Error("Expected lock released on Landing")
	}
}

func TestFallingForwardNeverDemotes(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, air(1, -1))
	expectState(t, m, FallingForward)

	for i := 0; i < 10; i++ {
		m.Update(tick, air(0, -2))
		expectState(t, m, FallingForward)
	}
}

func TestJumpingForwardDemotion(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, air(0.5, 2))
	expectState(t, m, JumpingForward)

	// Between half and full threshold keeps the forward variant
	m.Update(tick, air(0.15, 2))
	expectState(t, m, JumpingForward)

	m.Update(tick, air(0.05, 2))
	expectState(t, m, Jumping)
}

func TestLandingLock(t *testing.T) {
	m, _, body := newTestMachine()

	m.Update(tick, air(0, -1))
	expectState(t, m, Falling)

	body.v = vmath.V2(0.3, -4)
	m.Update(tick, ground(0.3, -4))
	expectState(t, m, Landing)
	if body.v != vmath.V2(0.3, 0) {
		t.Errorf("Expected downward velocity cleared on Landing, got %v", body.v)
	}

	// Grounded flickers within the lock window
	flicker := []Inputs{air(0, -1), ground(0, -1), air(0, 2)}
	for _, in := range flicker {
		m.Update(tick, in)
		expectState(t, m, Landing)
	}

	// Fourth tick reaches the 0.5s duration
	m.Update(tick, ground(0, 0))
	expectState(t, m, Idle)
}

func TestGlobalLandingPreemptsTable(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, air(0, 1))
	expectState(t, m, Jumping)

	// Touchdown while moving down goes to Landing regardless of state rules
	m.Update(tick, Inputs{Grounded: true, Dragging: true, Velocity: vmath.V2(0, -0.5)})
	expectState(t, m, Landing)
	if m.LastRule() != "landed" {
		t.Errorf("Expected global landing rule, got %q", m.LastRule())
	}
}

func TestSoftTouchdownUsesStateRule(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, air(0, -1))
	expectState(t, m, Falling)

	// vy above the landing threshold: not a justLanded edge, Falling's own rule applies
	m.Update(tick, ground(0, 0))
	expectState(t, m, Landing)
	if m.LastRule() != "grounded" {
		t.Errorf("Expected state rule, got %q", m.LastRule())
	}
}

func TestCooldownGatesEvaluation(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, Inputs{Grounded: true, Dragging: true})
	expectState(t, m, WindUp)

	m.Update(0.02, air(0, 1))
	m.Update(0.02, air(0, 1))
	expectState(t, m, WindUp)

	m.Update(0.02, air(0, 1))
	expectState(t, m, Jumping)
}

func TestTriggers(t *testing.T) {
	m, _, _ := newTestMachine()

	if !m.TriggerSpit() {
		t.Fatal("Expected spit from Idle")
	}
	expectState(t, m, Spitting)

	if m.TriggerSpike() {
		t.Error("Expected spike ignored while Spitting")
	}

	m.Respawn()
	m.Update(tick, air(0, 1))
	expectState(t, m, Jumping)
	if !m.TriggerSpike() {
		t.Error("Expected spike from Jumping")
	}
	expectState(t, m, Spiking)

	m.Respawn()
	m.Update(tick, air(0, -1))
	expectState(t, m, Falling)
	if m.TriggerSpit() || m.TriggerSpike() {
		t.Error("Expected actions ignored while Falling")
	}
	expectState(t, m, Falling)
}

func TestActionDuration(t *testing.T) {
	m, _, _ := newTestMachine()
	m.TriggerSpit()

	m.Update(tick, ground(0, 0))
	m.Update(tick, ground(0, 0))
	m.Update(tick, ground(0, 0))
	expectState(t, m, Spitting)

	// 0.5s elapsed, past the 0.4s action
	m.Update(tick, ground(0, 0))
	expectState(t, m, Idle)

	m.TriggerSpike()
	for i := 0; i < 4; i++ {
		m.Update(tick, air(0, -1))
	}
	expectState(t, m, Falling)
}

func TestDamageAndRecovery(t *testing.T) {
	m, _, _ := newTestMachine()

	if !m.TakeDamage() {
		t.Fatal("Expected damage from Idle")
	}
	expectState(t, m, Injured)
	if m.TakeDamage() {
		t.Error("Expected damage ignored while Injured")
	}

	// Injured holds 1.0s even through a touchdown
	for i := 0; i < 7; i++ {
		m.Update(tick, ground(0, -1))
		expectState(t, m, Injured)
	}
	m.Update(tick, ground(0, 0))
	expectState(t, m, Recovering)

	for i := 0; i < 3; i++ {
		m.Update(tick, ground(0, 0))
		expectState(t, m, Recovering)
	}
	m.Update(tick, ground(0, 0))
	expectState(t, m, Idle)
}

func TestDeadIsTerminal(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, air(0, -1))
	m.Die()
	expectState(t, m, Dead)

	inputs := []Inputs{
		ground(0, -5),
		air(3, 3),
		{Dragging: true},
		{Grounded: true, Grabbing: true},
	}
	for _, in := range inputs {
		m.Update(tick, in)
		expectState(t, m, Dead)
	}
	if m.TakeDamage() || m.TriggerSpit() || m.TriggerSpike() {
		t.Error("Expected triggers ignored while Dead")
	}

	m.Respawn()
	expectState(t, m, Idle)
}

func TestDieCancelsLock(t *testing.T) {
	m, _, _ := newTestMachine()

	m.Update(tick, air(0, -1))
	m.Update(tick, ground(0, -1))
	expectState(t, m, Landing)

	m.Die()
	expectState(t, m, Dead)
	if m.Duration() != 0 {
		t.Errorf("Expected no countdown in Dead, got %f", m.Duration())
	}
}

func TestSplatWallRelease(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want State
	}{
		{"holding", Inputs{Grabbing: true}, SplatWall},
		{"release grounded", ground(0, 0), Landing},
		{"release ascending", air(0, 2), Jumping},
		{"release ascending forward", air(1, 2), JumpingForward},
		{"release falling", air(0, -1), Falling},
		{"release falling forward", air(1, -1), FallingForward},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestMachine()
			m.Update(tick, Inputs{Grounded: true, Grabbing: true})
			expectState(t, m, SplatWall)

			// Keep grounded history so release on ground is not a landing edge
			m.Update(tick, tt.in)
			expectState(t, m, tt.want)
		})
	}
}

func TestObserversNotifiedAfterCommit(t *testing.T) {
	m, r, _ := newTestMachine()

	m.Update(tick, air(0, 1))
	m.Update(tick, air(0, -1))

	want := [][2]State{{Idle, Jumping}, {Jumping, Falling}}
	if len(r.transitions) != len(want) {
		t.Fatalf("Expected %d transitions, got %v", len(want), r.transitions)
	}
	for i := range want {
		if r.transitions[i] != want[i] {
			t.Errorf("Transition %d: expected %v, got %v", i, want[i], r.transitions[i])
		}
		if r.committed[i] != want[i][1] {
			t.Errorf("Transition %d: observer saw %s before commit", i, r.committed[i])
		}
	}

	if len(r.frames) != 2 {
		t.Fatalf("Expected one frame per update, got %d", len(r.frames))
	}
	last := r.frames[1]
	if last.State != Falling || last.VelocityY != -1 || last.Grounded {
		t.Errorf("Unexpected frame %+v", last)
	}
	if m.Previous() != Jumping {
		t.Errorf("Expected previous Jumping, got %s", m.Previous())
	}
}

func TestPresentationFuncs(t *testing.T) {
	m := NewMachine(DefaultSettings(), nil, zerolog.Nop(), nil)
	var got []State
	m.Subscribe(PresentationFuncs{Transition: func(prev, next State) { got = append(got, next) }})
	m.Subscribe(nil)

	m.TakeDamage()
	if len(got) != 1 || got[0] != Injured {
		t.Errorf("Expected Injured notification, got %v", got)
	}
}
