// Package system provides the Hamiltonian side of a simulation: the
// interface the dynamical models consume, and a concrete electronic
// Hamiltonian for a network of coupled two-level pigments. Operators are
// assembled over the excitation manifolds with pkg/excitation, so their
// basis order is the one AllStates defines.
package system

import (
	"fmt"
	"math"

	"github.com/sanonone/zofe/pkg/bath"
	"github.com/sanonone/zofe/pkg/cmat"
	"github.com/sanonone/zofe/pkg/excitation"
)

// Hamiltonian is what a dynamical model needs from the system description.
type Hamiltonian interface {
	// NSites returns the number of pigment sites.
	NSites() int
	// NStates returns the dimension of the requested Hilbert subspace.
	NStates(subspace excitation.Subspace) int
	// H returns the Hamiltonian matrix on the requested subspace.
	H(subspace excitation.Subspace) (*cmat.Matrix, error)
	// SystemBathCouplings returns the per-site coupling operators on the
	// requested subspace, in site order.
	SystemBathCouplings(subspace excitation.Subspace) ([]*cmat.Matrix, error)
	// ThermalState returns the thermal density matrix on the requested
	// subspace.
	ThermalState(subspace excitation.Subspace) (*cmat.Matrix, error)
	// Bath returns the bath this system couples to.
	Bath() bath.Bath
}

// ElectronicHamiltonian describes N coupled two-level pigments: site
// energies on the diagonal of the one-excitation matrix, electronic
// couplings off it. Each site couples to the bath through its own
// excitation-number projector.
type ElectronicHamiltonian struct {
	oneExc *cmat.Matrix
	b      bath.Bath
	// KT is the thermal energy used by ThermalState, in the same units as
	// the site energies. Zero means the ground state.
	KT float64
}

// NewElectronic builds an electronic Hamiltonian from its one-excitation
// matrix (site energies and couplings) and the bath it is embedded in.
func NewElectronic(oneExcitation *cmat.Matrix, b bath.Bath, kT float64) (*ElectronicHamiltonian, error) {
	if !oneExcitation.IsSquare() {
		return nil, fmt.Errorf("system: one-excitation Hamiltonian must be square, got %dx%d: %w",
			oneExcitation.Rows, oneExcitation.Cols, excitation.ErrDimension)
	}
	if b != nil && b.NSites() != oneExcitation.Rows {
		return nil, fmt.Errorf("system: bath covers %d sites, Hamiltonian has %d: %w",
			b.NSites(), oneExcitation.Rows, excitation.ErrDimension)
	}
	return &ElectronicHamiltonian{oneExc: oneExcitation.Clone(), b: b, KT: kT}, nil
}

// NSites returns the number of pigment sites.
func (h *ElectronicHamiltonian) NSites() int { return h.oneExc.Rows }

// NStates returns the dimension of the requested subspace.
func (h *ElectronicHamiltonian) NStates(subspace excitation.Subspace) int {
	return excitation.NStates(h.NSites(), subspace)
}

// Bath returns the bath this system couples to.
func (h *ElectronicHamiltonian) Bath() bath.Bath { return h.b }

// H assembles the Hamiltonian on the requested subspace.
func (h *ElectronicHamiltonian) H(subspace excitation.Subspace) (*cmat.Matrix, error) {
	return excitation.OperatorExtend(h.oneExc, subspace)
}

// SystemBathCouplings returns, for each site n, the excitation-number
// projector a†_n a_n assembled over the requested subspace.
func (h *ElectronicHamiltonian) SystemBathCouplings(subspace excitation.Subspace) ([]*cmat.Matrix, error) {
	n := h.NSites()
	out := make([]*cmat.Matrix, n)
	for site := 0; site < n; site++ {
		proj := cmat.New(n, n)
		proj.Set(site, site, 1)
		op, err := excitation.OperatorExtend(proj, subspace)
		if err != nil {
			return nil, err
		}
		out[site] = op
	}
	return out, nil
}

// ThermalState returns the diagonal Boltzmann state over the energies on the
// diagonal of H(subspace), normalized to unit trace. With KT == 0 all weight
// sits on the lowest-energy state (for a subspace including 'g', the
// ground-state projector). Coherences are always zero.
func (h *ElectronicHamiltonian) ThermalState(subspace excitation.Subspace) (*cmat.Matrix, error) {
	ham, err := h.H(subspace)
	if err != nil {
		return nil, err
	}
	n := ham.Rows
	energies := make([]float64, n)
	lowest := 0
	for i := 0; i < n; i++ {
		energies[i] = real(ham.At(i, i))
		if energies[i] < energies[lowest] {
			lowest = i
		}
	}

	rho := cmat.New(n, n)
	if h.KT <= 0 {
		rho.Set(lowest, lowest, 1)
		return rho, nil
	}
	var z float64
	weights := make([]float64, n)
	for i, e := range energies {
		weights[i] = math.Exp(-(e - energies[lowest]) / h.KT)
		z += weights[i]
	}
	for i, wgt := range weights {
		rho.Set(i, i, complex(wgt/z, 0))
	}
	return rho, nil
}
