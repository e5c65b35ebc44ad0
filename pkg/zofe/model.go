// Package zofe implements the ZOFE (zeroth-order functional expansion)
// master equation for excitonic systems coupled to pseudomode baths.
//
// The evolving state is a reduced density matrix plus a four-index auxiliary
// operator that carries the bath memory, packed into one flat complex vector
// so that a generic ODE integrator can drive the dynamics. Model holds the
// fixed configuration, the codec between the flat vector and the operator
// pair, and the equation of motion.
//
// Reference for the one-exciton master equation: Ritschel et al., An
// efficient method to calculate excitation energy transfer in
// light-harvesting systems, New J. Phys. 13 (2011) 113034. The two-exciton
// extension follows the same structure on the assembled g/e/f basis.
package zofe

import (
	"errors"
	"fmt"

	"github.com/sanonone/zofe/pkg/bath"
	"github.com/sanonone/zofe/pkg/cmat"
	"github.com/sanonone/zofe/pkg/excitation"
	"github.com/sanonone/zofe/pkg/system"
)

var (
	// ErrBathType indicates a bath model the ZOFE engine does not support.
	ErrBathType = errors.New("zofe: only implemented for baths of type PseudomodeBath")

	// ErrHeisenberg indicates a request for Heisenberg-picture evolution,
	// which ZOFE does not support.
	ErrHeisenberg = errors.New("zofe: not implemented in the Heisenberg picture")

	// ErrDimension indicates an operator or state vector whose size does not
	// match the configured subspace.
	ErrDimension = errors.New("zofe: dimension mismatch")
)

// Options configures a Model. The zero value is usable: subspace "ge", unit
// conversion 1, no Hermiticity shortcuts.
type Options struct {
	// Subspace selects the Hilbert subspace the dynamics run on
	// (any subset of "gef"). Empty means "ge".
	Subspace excitation.Subspace

	// UnitConvert scales the returned time derivative, converting energy
	// units into the integrator's time units. Zero means 1.
	UnitConvert float64

	// HamHermitian and RhoHermitian enable the cheaper closed-form branches
	// of the equation of motion that are exact when the Hamiltonian and the
	// density matrix are Hermitian. The engine trusts these flags; with
	// mismatched flags the trajectory is silently wrong. Set
	// CheckHermiticity to have them verified.
	HamHermitian bool
	RhoHermitian bool

	// CheckHermiticity verifies the Hermiticity flags against the actual
	// Hamiltonian at construction and against the density matrix on the
	// first derivative evaluation. Intended for debugging; it costs one
	// matrix scan, so it is off by default.
	CheckHermiticity bool
}

// Model is a ZOFE dynamical model: fixed configuration plus the codec
// between flat state vectors and the (rho, oop) operator pair. It is
// immutable after construction; the derivative function it builds is pure.
type Model struct {
	ham    system.Hamiltonian
	pmBath *bath.PseudomodeBath

	subspace excitation.Subspace
	nStates  int
	numPM    int
	nSites   int

	hamHermitian     bool
	rhoHermitian     bool
	checkHermiticity bool
	unitConvert      float64
}

// NewModel validates the configuration and builds a model. The bath attached
// to the Hamiltonian must be a *bath.PseudomodeBath; anything else fails
// with ErrBathType.
func NewModel(h system.Hamiltonian, opts Options) (*Model, error) {
	sub := opts.Subspace
	if sub == "" {
		sub = "ge"
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	pm, ok := h.Bath().(*bath.PseudomodeBath)
	if !ok {
		return nil, fmt.Errorf("zofe: bath type %T: %w", h.Bath(), ErrBathType)
	}
	if pm.NSites() != h.NSites() {
		return nil, fmt.Errorf("zofe: bath covers %d sites, system has %d: %w",
			pm.NSites(), h.NSites(), ErrDimension)
	}
	unit := opts.UnitConvert
	if unit == 0 {
		unit = 1
	}
	return &Model{
		ham:              h,
		pmBath:           pm,
		subspace:         sub.Canonical(),
		nStates:          h.NStates(sub),
		numPM:            pm.NumPseudomodes(),
		nSites:           h.NSites(),
		hamHermitian:     opts.HamHermitian,
		rhoHermitian:     opts.RhoHermitian,
		checkHermiticity: opts.CheckHermiticity,
		unitConvert:      unit,
	}, nil
}

// Subspace returns the canonical Hilbert subspace the model runs on.
func (m *Model) Subspace() excitation.Subspace { return m.subspace }

// NStates returns the Hilbert-space dimension of the model's subspace.
func (m *Model) NStates() int { return m.nStates }

// OopShape returns the auxiliary operator shape
// (pseudomodes, sites, states, states).
func (m *Model) OopShape() [4]int {
	return [4]int{m.numPM, m.nSites, m.nStates, m.nStates}
}

// StateVecLen returns the length of a packed state vector:
// nStates² for the density matrix plus numPM·nSites·nStates² for the
// auxiliary operator.
func (m *Model) StateVecLen() int {
	nsq := m.nStates * m.nStates
	return nsq + m.numPM*m.nSites*nsq
}

// StateVecToOperators unpacks a flat state vector into the density matrix
// and the auxiliary operator. Both are fresh copies; mutating them does not
// touch the input vector. The split point is nStates², and both segments use
// column-major (Fortran) flattening. This layout is the wire contract with
// the external integrator and must match OperatorsToStateVec bit for bit.
func (m *Model) StateVecToOperators(y []complex128) (*cmat.Matrix, *cmat.Tensor4, error) {
	if len(y) != m.StateVecLen() {
		return nil, nil, fmt.Errorf("zofe: state vector length %d, want %d: %w",
			len(y), m.StateVecLen(), ErrDimension)
	}
	nsq := m.nStates * m.nStates
	rho := cmat.UnflattenCM(y[:nsq], m.nStates, m.nStates)
	oop := cmat.UnflattenTensor4CM(y[nsq:], m.numPM, m.nSites, m.nStates)
	return rho, oop, nil
}

// OperatorsToStateVec packs a density matrix and auxiliary operator into a
// fresh flat state vector, the exact inverse of StateVecToOperators.
func (m *Model) OperatorsToStateVec(rho *cmat.Matrix, oop *cmat.Tensor4) []complex128 {
	out := make([]complex128, 0, m.StateVecLen())
	out = rho.FlattenCM(out)
	out = oop.FlattenCM(out)
	return out
}

// DensityMatrixToStateVector builds the initial state vector for a density
// matrix: the auxiliary segment is zero-filled, since the bath starts
// uncorrelated with the system.
func (m *Model) DensityMatrixToStateVector(rho *cmat.Matrix) ([]complex128, error) {
	if rho.Rows != m.nStates || rho.Cols != m.nStates {
		return nil, fmt.Errorf("zofe: density matrix %dx%d, want %dx%d: %w",
			rho.Rows, rho.Cols, m.nStates, m.nStates, ErrDimension)
	}
	out := make([]complex128, 0, m.StateVecLen())
	out = rho.FlattenCM(out)
	return append(out, make([]complex128, m.numPM*m.nSites*m.nStates*m.nStates)...), nil
}

// StateVectorToDensityMatrix turns a trajectory of state vectors into the
// corresponding density matrices, discarding the auxiliary segments.
func (m *Model) StateVectorToDensityMatrix(trajectory [][]complex128) ([]*cmat.Matrix, error) {
	out := make([]*cmat.Matrix, len(trajectory))
	for i, y := range trajectory {
		rho, _, err := m.StateVecToOperators(y)
		if err != nil {
			return nil, fmt.Errorf("zofe: trajectory entry %d: %w", i, err)
		}
		out[i] = rho
	}
	return out, nil
}

// ThermalState returns the system's thermal density matrix on the model
// subspace packed as a state vector with an uncorrelated bath.
func (m *Model) ThermalState() ([]complex128, error) {
	rho, err := m.ham.ThermalState(m.subspace)
	if err != nil {
		return nil, err
	}
	return m.DensityMatrixToStateVector(rho)
}
