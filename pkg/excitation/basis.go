package excitation

import (
	"fmt"

	"github.com/sanonone/zofe/pkg/cmat"
)

// UnitVec returns the N-dimensional unit column vector in direction n.
func UnitVec(n, N int) *cmat.Matrix {
	v := cmat.New(N, 1)
	v.Set(n, 0, 1)
	return v
}

// BasisTransform transforms x into the basis given by the unitary matrix u.
// How to apply the transformation is inferred from the dimensions of x,
// with N the dimension of u:
//
//	N x 1    Hilbert-space vector       u†·x
//	N x N    operator                   u†·x·u
//	N² x 1   vectorized operator        (u⊗u)†·x
//	N² x N²  super-operator             (u⊗u)†·x·(u⊗u)
//
// Any other shape is a dimension-mismatch error.
//
// Reference: Havel, Robust procedures for converting among Lindblad, Kraus
// and matrix representations of quantum dynamical semigroups, J. Math. Phys.
// 44, 534 (2003).
func BasisTransform(x, u *cmat.Matrix) (*cmat.Matrix, error) {
	n := u.Rows
	switch {
	case x.Rows == n && x.Cols == 1:
		return cmat.MulConjTransLeft(u, x), nil
	case x.Rows == n && x.Cols == n:
		return cmat.Mul(cmat.MulConjTransLeft(u, x), u), nil
	case x.Rows == n*n && x.Cols == 1:
		return cmat.MulConjTransLeft(cmat.Kron(u, u), x), nil
	case x.Rows == n*n && x.Cols == n*n:
		us := cmat.Kron(u, u)
		return cmat.Mul(cmat.MulConjTransLeft(us, x), us), nil
	}
	return nil, fmt.Errorf("excitation: basis transformation incompatible with %dx%d operator and %dx%d unitary: %w",
		x.Rows, x.Cols, u.Rows, u.Cols, ErrDimension)
}
