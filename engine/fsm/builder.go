package fsm

import "fmt"

// AddState adds a node to the machine, an existing node is returned unchanged
func (m *Machine[S, T]) AddState(id S, name string) *Node[S, T] {
	if node, ok := m.nodes[id]; ok {
		return node
	}
	node := &Node[S, T]{
		ID:          id,
		Name:        name,
		Transitions: make([]Transition[S, T], 0),
		OnEnter:     make([]Action[T], 0),
		OnExit:      make([]Action[T], 0),
	}
	m.nodes[id] = node
	return node
}

// AddTransition appends a transition to a specific node
func (m *Machine[S, T]) AddTransition(sourceID S, t Transition[S, T]) {
	node, ok := m.nodes[sourceID]
	if !ok {
		m.buildErrs = append(m.buildErrs, fmt.Errorf("transition %q from undeclared state %v", t.Name, sourceID))
		return
	}
	node.Transitions = append(node.Transitions, t)
}

// AddRule appends a transition whose guard is resolved from the registry, empty guardName always fires
func (m *Machine[S, T]) AddRule(sourceID S, name, guardName string, target TargetFunc[S, T]) {
	var guard GuardFunc[T]
	if guardName != "" {
		var ok bool
		if guard, ok = m.guardReg[guardName]; !ok {
			m.buildErrs = append(m.buildErrs, fmt.Errorf("transition %q: unknown guard %q", name, guardName))
			return
		}
	}
	m.AddTransition(sourceID, Transition[S, T]{Name: name, Target: target, Guard: guard})
}

// AddEnterAction appends a registered action to a node's entry list
func (m *Machine[S, T]) AddEnterAction(id S, actionName string, args any) {
	if node, action, ok := m.resolveAction(id, actionName, args); ok {
		node.OnEnter = append(node.OnEnter, action)
	}
}

// AddExitAction appends a registered action to a node's exit list
func (m *Machine[S, T]) AddExitAction(id S, actionName string, args any) {
	if node, action, ok := m.resolveAction(id, actionName, args); ok {
		node.OnExit = append(node.OnExit, action)
	}
}

func (m *Machine[S, T]) resolveAction(id S, actionName string, args any) (*Node[S, T], Action[T], bool) {
	node, ok := m.nodes[id]
	if !ok {
		m.buildErrs = append(m.buildErrs, fmt.Errorf("action %q on undeclared state %v", actionName, id))
		return nil, Action[T]{}, false
	}
	fn, ok := m.actionReg[actionName]
	if !ok {
		m.buildErrs = append(m.buildErrs, fmt.Errorf("state %s: unknown action %q", node.Name, actionName))
		return nil, Action[T]{}, false
	}
	return node, Action[T]{Func: fn, Args: args}, true
}

// Goto returns a TargetFunc for a fixed state
func Goto[S comparable, T any](s S) TargetFunc[S, T] {
	return func(T) S { return s }
}
