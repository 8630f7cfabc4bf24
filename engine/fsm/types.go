// Package fsm provides a flat finite state machine with guarded transitions and lifecycle actions
package fsm

// Machine is the generic finite state machine runtime
// S identifies states, T is the context passed to guards, targets and actions
type Machine[S comparable, T any] struct {
	// Graph data (immutable after build)
	nodes map[S]*Node[S, T]

	// Configuration
	InitialStateID S // Stored during Init

	// Runtime state
	activeStateID   S
	previousStateID S
	timeInState     float64 // Seconds elapsed in current state
	lastTransition  string
	initialized     bool

	// Dependency injection
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]

	// Name resolution failures collected while building, reported by Validate
	buildErrs []error
}

// Node represents a state
type Node[S comparable, T any] struct {
	ID   S
	Name string

	// Lifecycle Actions
	OnEnter []Action[T]
	OnExit  []Action[T]

	// Transitions in evaluation order
	Transitions []Transition[S, T]
}

// Transition defines a guarded link out of a state
type Transition[S comparable, T any] struct {
	Name     string
	TargetID S
	Target   TargetFunc[S, T] // nil = TargetID, otherwise selects the target at evaluation time
	Guard    GuardFunc[T]     // nil = Always true
}

// Action represents a side-effect
type Action[T any] struct {
	Func ActionFunc[T]
	Args any // Pre-compiled payload
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)

// TargetFunc picks the next state once a guard has passed
// Returning the active state makes the transition an identity
type TargetFunc[S comparable, T any] func(ctx T) S
