package excitation

import (
	"fmt"
	"strings"

	"github.com/sanonone/zofe/pkg/cmat"
)

// OperatorOneToTwo lifts the matrix representation of a one-body operator
// from the 1-excitation subspace into the 2-excitation subspace.
//
// Given the matrix element A[n,m], the full operator is assumed to be
// sum_{n,m} A[n,m] a†_n a_m with hard-core-boson creation and annihilation
// operators. For pair states (i,j) and (k,l), i<j and k<l, the two-body
// matrix element is
//
//	B[(i,j),(k,l)] = A[j,l]·δ(i,k) + A[j,k]·δ(i,l) + A[i,l]·δ(j,k) + A[i,k]·δ(j,l)
//
// indexed by the pair-state order of AllStates. The identity is exact; this
// runs once per model build, not per time step.
func OperatorOneToTwo(a *cmat.Matrix) (*cmat.Matrix, error) {
	if !a.IsSquare() {
		return nil, fmt.Errorf("excitation: one-excitation operator must be square, got %dx%d: %w",
			a.Rows, a.Cols, ErrDimension)
	}
	pairs := AllStates(a.Rows, "f")
	out := cmat.New(len(pairs), len(pairs))
	for m, pm := range pairs {
		i, j := pm[0], pm[1]
		for n, pn := range pairs {
			k, l := pn[0], pn[1]
			var v complex128
			if i == k {
				v += a.At(j, l)
			}
			if i == l {
				v += a.At(j, k)
			}
			if j == k {
				v += a.At(i, l)
			}
			if j == l {
				v += a.At(i, k)
			}
			out.Set(m, n, v)
		}
	}
	return out, nil
}

// OperatorExtend assembles a one-excitation operator into a block-diagonal
// operator over the requested subspaces: a 1x1 zero block for 'g', the
// operator itself for 'e', and its OperatorOneToTwo lift for 'f', placed at
// consecutive offsets in g, e, f order. All off-block entries are exactly
// zero; callers that need inter-manifold coupling must add it themselves.
func OperatorExtend(a *cmat.Matrix, subspace Subspace) (*cmat.Matrix, error) {
	if err := subspace.Validate(); err != nil {
		return nil, err
	}
	if !a.IsSquare() {
		return nil, fmt.Errorf("excitation: one-excitation operator must be square, got %dx%d: %w",
			a.Rows, a.Cols, ErrDimension)
	}
	var blocks []*cmat.Matrix
	if subspace.Has('g') {
		blocks = append(blocks, cmat.New(1, 1))
	}
	if subspace.Has('e') {
		blocks = append(blocks, a)
	}
	if subspace.Has('f') {
		lifted, err := OperatorOneToTwo(a)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, lifted)
	}

	total := 0
	for _, b := range blocks {
		total += b.Rows
	}
	out := cmat.New(total, total)
	offset := 0
	for _, b := range blocks {
		for i := 0; i < b.Rows; i++ {
			for j := 0; j < b.Cols; j++ {
				out.Set(offset+i, offset+j, b.At(i, j))
			}
		}
		offset += b.Rows
	}
	return out, nil
}

// TransitionOperator builds the operator that creates and/or removes an
// excitation at site n on the basis assembled over the given subspace for
// nSites sites. transitions selects the terms: "+" for creation, "-" for
// annihilation, "+-" (or "-+") for both.
//
// Entry (i,j) is 1 when state j turns into state i by inserting site n
// (creation) or state i turns into state j the same way (annihilation).
// The hard-core constraint is enforced explicitly: a state that already
// excites site n never matches.
func TransitionOperator(n, nSites int, subspace Subspace, transitions string) (*cmat.Matrix, error) {
	if err := subspace.Validate(); err != nil {
		return nil, err
	}
	if n < 0 || n >= nSites {
		return nil, fmt.Errorf("excitation: site %d out of range [0, %d): %w", n, nSites, ErrDimension)
	}
	if transitions == "" || strings.Trim(transitions, "+-") != "" {
		return nil, fmt.Errorf("excitation: transitions must be a non-empty subset of \"+-\", got %q: %w",
			transitions, ErrSubspace)
	}
	create := strings.Contains(transitions, "+")
	annihilate := strings.Contains(transitions, "-")

	states := AllStates(nSites, subspace)
	out := cmat.New(len(states), len(states))
	for i, si := range states {
		for j, sj := range states {
			if create && !sj.Contains(n) && si.Equal(sj.WithSite(n)) {
				out.Set(i, j, 1)
				continue
			}
			if annihilate && !si.Contains(n) && si.WithSite(n).Equal(sj) {
				out.Set(i, j, 1)
			}
		}
	}
	return out, nil
}
