package zofe

import (
	"fmt"

	"github.com/sanonone/zofe/pkg/cmat"
)

// SystemOperator wraps a Hilbert-space operator on the model's subspace and
// exposes the actions a spectroscopy calculation needs on a packed ZOFE
// state: multiplication from either side and expectation values. Left and
// right multiplication act on the density matrix block and propagate
// consistently onto every (pseudomode, site) slice of the auxiliary
// operator.
type SystemOperator struct {
	op    *cmat.Matrix
	model *Model
}

// NewSystemOperator checks the operator against the model's subspace
// dimension and wraps it.
func (m *Model) NewSystemOperator(op *cmat.Matrix) (*SystemOperator, error) {
	if op.Rows != m.nStates || op.Cols != m.nStates {
		return nil, fmt.Errorf("zofe: system operator %dx%d, want %dx%d: %w",
			op.Rows, op.Cols, m.nStates, m.nStates, ErrDimension)
	}
	return &SystemOperator{op: op.Clone(), model: m}, nil
}

// LeftMultiply returns the packed state for (op·rho, op·oop), applying the
// operator from the left to the density matrix and to every auxiliary slice.
func (o *SystemOperator) LeftMultiply(state []complex128) ([]complex128, error) {
	rho, oop, err := o.model.StateVecToOperators(state)
	if err != nil {
		return nil, err
	}
	rho1 := cmat.Mul(o.op, rho)
	oop1 := cmat.NewTensor4(oop.NPM, oop.NSites, oop.N)
	for p := 0; p < oop.NPM; p++ {
		for s := 0; s < oop.NSites; s++ {
			oop1.SetSlice(p, s, cmat.Mul(o.op, oop.At(p, s)))
		}
	}
	return o.model.OperatorsToStateVec(rho1, oop1), nil
}

// RightMultiply returns the packed state for (rho·op, oop·op).
func (o *SystemOperator) RightMultiply(state []complex128) ([]complex128, error) {
	rho, oop, err := o.model.StateVecToOperators(state)
	if err != nil {
		return nil, err
	}
	rho1 := cmat.Mul(rho, o.op)
	oop1 := cmat.NewTensor4(oop.NPM, oop.NSites, oop.N)
	for p := 0; p < oop.NPM; p++ {
		for s := 0; s < oop.NSites; s++ {
			oop1.SetSlice(p, s, cmat.Mul(oop.At(p, s), o.op))
		}
	}
	return o.model.OperatorsToStateVec(rho1, oop1), nil
}

// ExpectationValue returns tr(op·rho) = sum_ij op[i,j]·rho[j,i]. The result
// is complex in general; observables of Hermitian operators on Hermitian
// states have a vanishing imaginary part, but taking the real part is the
// caller's decision.
func (o *SystemOperator) ExpectationValue(state []complex128) (complex128, error) {
	rho, _, err := o.model.StateVecToOperators(state)
	if err != nil {
		return 0, err
	}
	return cmat.TraceProduct(o.op, rho), nil
}
