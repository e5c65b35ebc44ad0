// Package excitation implements the operator algebra for multi-pigment
// excitonic networks of two-level sites under the hard-core-boson constraint:
// enumeration of the ground (g), single-excitation (e) and double-excitation
// (f) manifolds, lifting of one-excitation operators into the two-excitation
// manifold, block-diagonal assembly over any combination of manifolds, and
// transition (creation/annihilation) operators on the assembled basis.
//
// AllStates is the single ordering authority for the assembled basis: every
// other function in this package, and the ZOFE engine on top of it, indexes
// operators by the state order AllStates produces.
package excitation

import (
	"errors"
	"fmt"
	"strings"
)

// Subspace names a subset of the excitation manifolds, e.g. "ge" or "gef".
// Input order does not matter; the basis is always laid out in g, e, f order.
type Subspace string

// Canonical label order. All basis layouts follow it.
const labelOrder = "gef"

// Validate reports an error if the subspace is empty or contains a character
// other than 'g', 'e' or 'f'.
func (s Subspace) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("excitation: empty subspace: %w", ErrSubspace)
	}
	for _, r := range string(s) {
		if !strings.ContainsRune(labelOrder, r) {
			return fmt.Errorf("excitation: invalid subspace label %q in %q: %w", r, s, ErrSubspace)
		}
	}
	return nil
}

// Has reports whether the subspace includes the given manifold label.
func (s Subspace) Has(label byte) bool {
	return strings.IndexByte(string(s), label) >= 0
}

// Canonical returns the subspace with labels deduplicated and ordered g, e, f.
func (s Subspace) Canonical() Subspace {
	var b strings.Builder
	for i := 0; i < len(labelOrder); i++ {
		if s.Has(labelOrder[i]) {
			b.WriteByte(labelOrder[i])
		}
	}
	return Subspace(b.String())
}

// ExtractSubspace returns the minimal Hilbert subspace containing a Liouville
// subspace or subspace-mapping string such as "eg->ee" or "gg,eg".
func ExtractSubspace(liouville string) Subspace {
	var b strings.Builder
	for i := 0; i < len(labelOrder); i++ {
		if strings.IndexByte(liouville, labelOrder[i]) >= 0 {
			b.WriteByte(labelOrder[i])
		}
	}
	return Subspace(b.String())
}

// Package sentinel errors. They are wrapped with context by the functions
// that raise them, so errors.Is works against the caller-facing error.
var (
	// ErrSubspace indicates a subspace label that is invalid or absent from
	// the set of included subspaces.
	ErrSubspace = errors.New("excitation: invalid subspace")

	// ErrDimension indicates an operator whose dimensions do not match the
	// basis it is applied to.
	ErrDimension = errors.New("excitation: dimension mismatch")
)

// NExcitations returns the number of 0-, 1- and 2-excitation states for
// nSites sites, each count scaled by the vibrational multiplicity nVib.
func NExcitations(nSites, nVib int) [3]int {
	return [3]int{nVib, nSites * nVib, nSites * (nSites - 1) / 2 * nVib}
}

// NStates returns the dimension of the basis for nSites sites restricted to
// the given subspace, without vibrational structure. It agrees with
// len(AllStates(nSites, subspace)) by construction.
func NStates(nSites int, subspace Subspace) int {
	nExc := NExcitations(nSites, 1)
	total := 0
	for i := 0; i < len(labelOrder); i++ {
		if subspace.Has(labelOrder[i]) {
			total += nExc[i]
		}
	}
	return total
}

// Range is a half-open index interval [Start, End) into the assembled basis.
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

// SubspaceIndex returns the index range that the manifold `label` occupies
// within a basis assembled over `all`, for nSites sites with nVib vibrational
// levels per electronic state (pass 1 for no vibrational structure).
//
// The range is computed from the closed-form manifold sizes, never by
// re-enumerating states, and matches the ordering of AllStates exactly.
//
//	SubspaceIndex("g", "gef", 2, 1) = {0, 1}
//	SubspaceIndex("e", "gef", 2, 1) = {1, 3}
//	SubspaceIndex("f", "gef", 2, 1) = {3, 4}
func SubspaceIndex(label, all Subspace, nSites, nVib int) (Range, error) {
	if err := all.Validate(); err != nil {
		return Range{}, err
	}
	if len(label) != 1 || !all.Has(label[0]) {
		return Range{}, fmt.Errorf("excitation: subspace %q not in set of all subspaces %q: %w",
			label, all, ErrSubspace)
	}
	nExc := NExcitations(nSites, nVib)
	offset := 0
	for i := 0; i < len(labelOrder); i++ {
		if !all.Has(labelOrder[i]) {
			continue
		}
		if labelOrder[i] == label[0] {
			return Range{Start: offset, End: offset + nExc[i]}, nil
		}
		offset += nExc[i]
	}
	// Unreachable: membership was checked above.
	return Range{}, fmt.Errorf("excitation: subspace %q not in %q: %w", label, all, ErrSubspace)
}
