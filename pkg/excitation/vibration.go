package excitation

import (
	"math"

	"github.com/sanonone/zofe/pkg/cmat"
)

// Vibrational-mode helpers. They share the vibrational-multiplicity contract
// of SubspaceIndex: one electronic manifold scaled by the product of the
// per-mode level counts.

// TensorProd returns the Kronecker product of the given operators, left to
// right.
func TensorProd(ops ...*cmat.Matrix) *cmat.Matrix {
	out := cmat.Eye(1)
	for _, op := range ops {
		out = cmat.Kron(out, op)
	}
	return out
}

// VibAnnihilate returns the annihilation operator for a vibrational mode
// with n levels: sqrt(k) on the superdiagonal.
func VibAnnihilate(n int) *cmat.Matrix {
	m := cmat.New(n, n)
	for k := 1; k < n; k++ {
		m.Set(k-1, k, complex(math.Sqrt(float64(k)), 0))
	}
	return m
}

// VibCreate returns the creation operator for a vibrational mode with n
// levels: sqrt(k) on the subdiagonal.
func VibCreate(n int) *cmat.Matrix {
	m := cmat.New(n, n)
	for k := 1; k < n; k++ {
		m.Set(k, k-1, complex(math.Sqrt(float64(k)), 0))
	}
	return m
}

// ExtendVibOperator extends vibOperator, acting on vibrational mode m, into
// an operator on the full vibrational subspace spanned by all modes, by
// tensoring with identities on the other modes.
func ExtendVibOperator(nVibLevels []int, m int, vibOperator *cmat.Matrix) *cmat.Matrix {
	before, after := 1, 1
	for _, n := range nVibLevels[:m] {
		before *= n
	}
	for _, n := range nVibLevels[m+1:] {
		after *= n
	}
	return TensorProd(cmat.Eye(before), vibOperator, cmat.Eye(after))
}
