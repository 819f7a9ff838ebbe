package nfa

// Matcher runs anchored matches of one compiled NFA against input strings.
//
// It tracks active states with two index lists, one for the current step and
// one for the next. A separate table, keyed by state ID, records the step at
// which each state was last entered, so membership checks are O(1) without
// clearing a visited set between steps.
//
// All working buffers are allocated at creation, sized to the arena, and
// reused by every Match call; matching itself never allocates and never
// fails.
//
// Thread safety: a Matcher is single-owner mutable state. Concurrent calls
// on one Matcher are a data race; concurrent Matchers sharing one NFA are
// safe because they never mutate it.
type Matcher struct {
	nfa *NFA

	// active holds the two lists of active state IDs
	active [2][]StateID

	// lastActive records the step at which each state was last entered,
	// or -1 if not yet entered in this match
	lastActive []int

	// epsStack drives loop-based epsilon closure in enter
	epsStack []StateID
}

// NewMatcher creates a matcher for the given NFA.
// The NFA must outlive the matcher.
func NewMatcher(n *NFA) *Matcher {
	size := n.States()
	return &Matcher{
		nfa:        n,
		active:     [2][]StateID{make([]StateID, 0, size), make([]StateID, 0, size)},
		lastActive: make([]int, size),
		// Each split is popped at most once per step and pushes two arms
		epsStack: make([]StateID, 0, 2*size+1),
	}
}

// enter adds s and its epsilon closure to list for the given step.
// Split states are expanded eagerly, so the list only ever holds Range and
// Match states. The lastActive table deduplicates within a step.
func (m *Matcher) enter(step int, list []StateID, s StateID) []StateID {
	states := m.nfa.states

	m.epsStack = append(m.epsStack[:0], s)
	for len(m.epsStack) > 0 {
		s = m.epsStack[len(m.epsStack)-1]
		m.epsStack = m.epsStack[:len(m.epsStack)-1]

		if s == NoState || m.lastActive[s] == step {
			continue
		}
		m.lastActive[s] = step

		if st := &states[s]; st.kind == StateSplit {
			m.epsStack = append(m.epsStack, st.right, st.left)
		} else {
			list = append(list, s)
		}
	}

	return list
}

// Match reports whether input as a whole is accepted by the pattern.
// Matching is anchored at both ends; there is no substring search.
func (m *Matcher) Match(input []byte) bool {
	states := m.nfa.states

	// Reset to a consistent initial state
	m.active[0] = m.active[0][:0]
	m.active[1] = m.active[1][:0]
	for i := range m.lastActive {
		m.lastActive[i] = -1
	}

	// Enter the start state and its closure at step 0
	m.active[0] = m.enter(0, m.active[0], m.nfa.start)

	// Advance the active set by one input byte per step
	cur := 0
	for i := 0; i < len(input); i++ {
		c := input[i]
		next := cur ^ 1

		m.active[next] = m.active[next][:0]
		for _, id := range m.active[cur] {
			st := &states[id]
			if st.kind == StateRange && st.lo <= c && c <= st.hi {
				m.active[next] = m.enter(i+1, m.active[next], st.next)
			}
		}

		cur = next
	}

	// The input matches iff the accepting state is active at the end
	for _, id := range m.active[cur] {
		if states[id].kind == StateMatch {
			return true
		}
	}

	return false
}

// MatchString is like Match, for a string input
func (m *Matcher) MatchString(input string) bool {
	return m.Match([]byte(input))
}
