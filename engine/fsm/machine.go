package fsm

import (
	"errors"
	"fmt"
	"strings"
)

// NewMachine creates a new FSM instance
func NewMachine[S comparable, T any]() *Machine[S, T] {
	return &Machine[S, T]{
		nodes:     make(map[S]*Node[S, T]),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[S, T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[S, T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters initialID, running its OnEnter actions
func (m *Machine[S, T]) Init(ctx T, initialID S) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state %v not found", initialID)
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	m.previousStateID = initialID
	m.timeInState = 0
	m.lastTransition = ""
	m.initialized = true

	for _, action := range node.OnEnter {
		action.Func(ctx, action.Args)
	}
	return nil
}

// Advance adds dt seconds to the time in the active state
func (m *Machine[S, T]) Advance(dt float64) {
	m.timeInState += dt
}

// Next evaluates the transitions of state against ctx without changing the machine
// Returns the first firing transition's target and name, or state and "" when none fires
func (m *Machine[S, T]) Next(state S, ctx T) (S, string) {
	node, ok := m.nodes[state]
	if !ok {
		return state, ""
	}
	for _, trans := range node.Transitions {
		if trans.Guard == nil || trans.Guard(ctx) {
			if trans.Target != nil {
				return trans.Target(ctx), trans.Name
			}
			return trans.TargetID, trans.Name
		}
	}
	return state, ""
}

// Evaluate runs the active state's transitions and performs the first non-identity result
// Returns the transition name and whether the state changed
func (m *Machine[S, T]) Evaluate(ctx T) (string, bool) {
	if !m.initialized {
		return "", false
	}
	target, name := m.Next(m.activeStateID, ctx)
	if !m.Transition(ctx, target, name) {
		return "", false
	}
	return name, true
}

// Transition moves to targetID running OnExit of the active state then OnEnter of the target
// A transition to the active state is a no-op and returns false
func (m *Machine[S, T]) Transition(ctx T, targetID S, name string) bool {
	if targetID == m.activeStateID {
		return false
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state %v", targetID))
	}

	if node, exists := m.nodes[m.activeStateID]; exists {
		for _, action := range node.OnExit {
			action.Func(ctx, action.Args)
		}
	}

	for _, action := range targetNode.OnEnter {
		action.Func(ctx, action.Args)
	}

	m.previousStateID = m.activeStateID
	m.activeStateID = targetID
	m.timeInState = 0
	m.lastTransition = name
	return true
}

// ActiveStateID returns the current state
func (m *Machine[S, T]) ActiveStateID() S { return m.activeStateID }

// PreviousStateID returns the state left by the most recent transition
func (m *Machine[S, T]) PreviousStateID() S { return m.previousStateID }

// TimeInState returns seconds elapsed since the last transition
func (m *Machine[S, T]) TimeInState() float64 { return m.timeInState }

// LastTransition names the most recent transition
func (m *Machine[S, T]) LastTransition() string { return m.lastTransition }

// Has reports whether id is a declared state
func (m *Machine[S, T]) Has(id S) bool {
	_, ok := m.nodes[id]
	return ok
}

// Validate reports undeclared states among required and any name resolution failure from building
func (m *Machine[S, T]) Validate(required ...S) error {
	errs := append([]error(nil), m.buildErrs...)

	var missing []string
	for _, s := range required {
		if !m.Has(s) {
			missing = append(missing, fmt.Sprint(s))
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("no node declared for %s", strings.Join(missing, ", ")))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("fsm: %w", err)
	}
	return nil
}
