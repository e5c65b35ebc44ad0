package excitation

import "slices"

// State is a basis state of the excitation manifolds: the ascending list of
// excited site indices. Length 0 is the ground state, 1 a single excitation
// and 2 a double excitation. The hard-core-boson constraint forbids repeated
// sites.
type State []int

// Contains reports whether site n is excited in the state.
func (s State) Contains(n int) bool {
	return slices.Contains(s, n)
}

// WithSite returns a new state with site n inserted and the sites re-sorted.
// No hard-core check is applied here: inserting an already excited site
// yields a list with a duplicate, which by construction can never equal a
// valid basis state. TransitionOperator still guards against that case
// explicitly rather than relying on the emergent behavior.
func (s State) WithSite(n int) State {
	out := make(State, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, n)
	slices.Sort(out)
	return out
}

// Equal reports whether two states excite exactly the same sites.
func (s State) Equal(t State) bool {
	return slices.Equal(s, t)
}

// AllStates enumerates the basis states for n sites in the requested
// subspace. The order is canonical and shared by every operator built in
// this package: the empty ground state first (if 'g' is included), then
// single excitations by ascending site (if 'e'), then double excitations
// (i, j) with i < j in lexicographic order (if 'f').
func AllStates(n int, subspace Subspace) []State {
	var states []State
	if subspace.Has('g') {
		states = append(states, State{})
	}
	if subspace.Has('e') {
		for i := 0; i < n; i++ {
			states = append(states, State{i})
		}
	}
	if subspace.Has('f') {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				states = append(states, State{i, j})
			}
		}
	}
	return states
}
