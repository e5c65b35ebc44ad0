package zofe

import (
	"errors"
	"fmt"

	"github.com/sanonone/zofe/pkg/cmat"
)

// hermTol is the per-element tolerance used by the optional Hermiticity
// assertion.
const hermTol = 1e-10

// RHS is the signature the external integrator consumes: the time derivative
// of a packed state vector. Implementations returned by EquationOfMotion are
// pure: no cross-call state, safe to call any number of times per output
// step.
type RHS func(t float64, y []complex128) []complex128

// EquationOfMotion builds the ZOFE master equation for this model as a pure
// derivative function over packed state vectors. All operators and bath
// coefficients are computed and dimension-checked here, once; the returned
// closure does no validation beyond the state vector length.
//
// Heisenberg-picture evolution is not supported and fails with
// ErrHeisenberg.
func (m *Model) EquationOfMotion(heisenbergPicture bool) (RHS, error) {
	if heisenbergPicture {
		return nil, ErrHeisenberg
	}

	ham, err := m.ham.H(m.subspace)
	if err != nil {
		return nil, err
	}
	if ham.Rows != m.nStates || ham.Cols != m.nStates {
		return nil, fmt.Errorf("zofe: Hamiltonian %dx%d, want %dx%d: %w",
			ham.Rows, ham.Cols, m.nStates, m.nStates, ErrDimension)
	}

	couplings, err := m.ham.SystemBathCouplings(m.subspace)
	if err != nil {
		return nil, err
	}
	if len(couplings) != m.nSites {
		return nil, fmt.Errorf("zofe: %d coupling operators, want %d: %w",
			len(couplings), m.nSites, ErrDimension)
	}
	// The ZOFE equations are written for L_n = -(coupling operator).
	// Note the minus sign.
	L := make([]*cmat.Matrix, m.nSites)
	for s, c := range couplings {
		if c.Rows != m.nStates || c.Cols != m.nStates {
			return nil, fmt.Errorf("zofe: coupling operator %d is %dx%d, want %dx%d: %w",
				s, c.Rows, c.Cols, m.nStates, m.nStates, ErrDimension)
		}
		L[s] = cmat.Scale(-1, c)
	}

	strength, w := m.pmBath.Coefficients()
	if len(strength) != m.numPM || len(strength[0]) != m.nSites {
		return nil, fmt.Errorf("zofe: bath coefficients %dx%d, want %dx%d: %w",
			len(strength), len(strength[0]), m.numPM, m.nSites, ErrDimension)
	}

	if m.checkHermiticity && m.hamHermitian && !ham.IsHermitian(hermTol) {
		return nil, errors.New("zofe: HamHermitian is set but the Hamiltonian is not Hermitian")
	}

	// The density matrix is only seen at evaluation time, so its optional
	// Hermiticity assertion runs on the first call. The core is
	// single-threaded by contract, so a plain bool is enough.
	rhoChecked := !(m.checkHermiticity && m.rhoHermitian)

	unit := complex(m.unitConvert, 0)
	return func(t float64, y []complex128) []complex128 {
		rho, oop, err := m.StateVecToOperators(y)
		if err != nil {
			// A wrong-length vector is a caller bug, not a numeric
			// condition; fail loudly rather than propagate garbage.
			panic(err)
		}
		if !rhoChecked {
			if !rho.IsHermitian(hermTol) {
				panic("zofe: RhoHermitian is set but the density matrix is not Hermitian")
			}
			rhoChecked = true
		}
		rhodot, oopdot := m.derivative(rho, oop, ham, L, strength, w)
		out := m.OperatorsToStateVec(rhodot, oopdot)
		if unit != 1 {
			for i := range out {
				out[i] *= unit
			}
		}
		return out
	}, nil
}

// derivative evaluates the ZOFE master equation for one decoded state.
//
// With sum_oop the pseudomode-summed auxiliary operator, the density matrix
// evolves as rhodot = d + f where
//
//	a = sum_s L_s†·sum_oop_s
//	b = -i·H - a
//	c = sum_s L_s·rho·sum_oop_s†
//	d = b·rho + c
//
// and f is the adjoint-sector contribution. Four algebraically equivalent
// closed forms for f exist under the configured Hermiticity assumptions; the
// branch is fixed at construction, cheapest first:
//
//	rho and H Hermitian:  f = d†
//	rho Hermitian only:   f = rho·(i·H - a†) + c†
//	H Hermitian only:     f = rho·b† + sum_s sum_oop_s·rho·L_s†
//	neither:              f = rho·(i·H - a†) + sum_s sum_oop_s·rho·L_s†
//
// Each auxiliary slice evolves as
//
//	oopdot[p,s] = strength[p,s]·L_s - w[p,s]·oop[p,s] + [b, oop[p,s]]
//
// with the commutator sharing b across the pseudomode axis.
func (m *Model) derivative(rho *cmat.Matrix, oop *cmat.Tensor4, ham *cmat.Matrix,
	L []*cmat.Matrix, strength, w [][]complex128) (*cmat.Matrix, *cmat.Tensor4) {

	n := m.nStates
	sumOop := oop.SumPM()

	aOp := cmat.New(n, n)
	for s := range L {
		aOp.AddInPlace(cmat.MulConjTransLeft(L[s], sumOop[s]))
	}
	bOp := cmat.Sub(cmat.Scale(-1i, ham), aOp)

	cOp := cmat.New(n, n)
	for s := range L {
		cOp.AddInPlace(cmat.MulConjTransRight(cmat.Mul(L[s], rho), sumOop[s]))
	}
	dOp := cmat.Add(cmat.Mul(bOp, rho), cOp)

	var fOp *cmat.Matrix
	switch {
	case m.rhoHermitian && m.hamHermitian:
		fOp = dOp.ConjTrans()
	case m.rhoHermitian:
		fOp = cmat.Add(
			cmat.Mul(rho, cmat.Sub(cmat.Scale(1i, ham), aOp.ConjTrans())),
			cOp.ConjTrans())
	default:
		big := cmat.New(n, n)
		for s := range L {
			big.AddInPlace(cmat.MulConjTransRight(cmat.Mul(sumOop[s], rho), L[s]))
		}
		if m.hamHermitian {
			fOp = cmat.Add(cmat.MulConjTransRight(rho, bOp), big)
		} else {
			fOp = cmat.Add(
				cmat.Mul(rho, cmat.Sub(cmat.Scale(1i, ham), aOp.ConjTrans())),
				big)
		}
	}
	rhodot := cmat.Add(dOp, fOp)

	oopdot := cmat.NewTensor4(m.numPM, m.nSites, n)
	for p := 0; p < m.numPM; p++ {
		for s := 0; s < m.nSites; s++ {
			o := oop.At(p, s)
			slice := cmat.Sub(cmat.Scale(strength[p][s], L[s]), cmat.Scale(w[p][s], o))
			slice.AddInPlace(cmat.Mul(bOp, o))
			slice.AddInPlace(cmat.Scale(-1, cmat.Mul(o, bOp)))
			oopdot.SetSlice(p, s, slice)
		}
	}
	return rhodot, oopdot
}
