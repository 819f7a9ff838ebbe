package nfa

import "fmt"

// Builder is an append-only arena of NFA states.
// Appending a state returns its index, and indices are stable for the life
// of the arena even though composition later rewrites some states in place.
type Builder struct {
	states []State
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
	}
}

// AddMatch appends an accepting state and returns its ID
func (b *Builder) AddMatch() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:    id,
		kind:  StateMatch,
		next:  NoState,
		left:  NoState,
		right: NoState,
	})
	return id
}

// AddRange appends a state that transitions to next on any byte in [lo, hi].
// For a single byte, set lo == hi.
func (b *Builder) AddRange(lo, hi byte, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:    id,
		kind:  StateRange,
		lo:    lo,
		hi:    hi,
		next:  next,
		left:  NoState,
		right: NoState,
	})
	return id
}

// AddSplit appends a state with epsilon transitions to up to two states.
// Either arm may be NoState.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:    id,
		kind:  StateSplit,
		next:  NoState,
		left:  left,
		right: right,
	})
	return id
}

// ReplaceSplit overwrites an existing state with a Split in place, keeping
// its ID. Composition uses this to chain a fragment's placeholder end state
// onto its successor.
func (b *Builder) ReplaceSplit(stateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	s.kind = StateSplit
	s.lo = 0
	s.hi = 0
	s.next = NoState
	s.left = left
	s.right = right
	return nil
}

// PatchNext updates a Range state's successor.
// Used by the trivial-fragment short cuts during concatenation and
// alternation.
func (b *Builder) PatchNext(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	if s.kind != StateRange {
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
	s.next = target
	return nil
}

// State returns the state with the given ID, or nil if out of bounds
func (b *Builder) State(id StateID) *State {
	if id == NoState || int(id) >= len(b.states) {
		return nil
	}
	return &b.states[id]
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// validate checks that the NFA is well-formed:
// - The start state is valid
// - All state references are NoState or point to valid states
func (b *Builder) validate(start StateID) error {
	if start == NoState || int(start) >= len(b.states) {
		return &BuildError{
			Message: "start state out of bounds",
			StateID: start,
		}
	}

	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateRange:
			if s.next != NoState && int(s.next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", s.next),
					StateID: id,
				}
			}
		case StateSplit:
			if s.left != NoState && int(s.left) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid left state %d", s.left),
					StateID: id,
				}
			}
			if s.right != NoState && int(s.right) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid right state %d", s.right),
					StateID: id,
				}
			}
		}
	}

	return nil
}

// Build validates and freezes the arena into an immutable NFA with the given
// entry state. The builder must not be used after Build.
func (b *Builder) Build(start StateID) (*NFA, error) {
	if err := b.validate(start); err != nil {
		return nil, err
	}

	return &NFA{
		states: b.states,
		start:  start,
	}, nil
}
