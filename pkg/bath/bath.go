// Package bath models the environments the excitonic system couples to.
// The only concrete model is the pseudomode bath: a structured spectral
// density represented as a finite set of damped harmonic modes per site,
// each characterized by a frequency, a damping width and a Huang-Rhys
// coupling strength.
package bath

import (
	"errors"
	"fmt"
)

// ErrShape indicates pseudomode parameter arrays with inconsistent shapes.
var ErrShape = errors.New("bath: parameter shape mismatch")

// Bath is the interface the dynamical models see. Evolution engines that
// only support a particular bath model type-assert against the concrete
// type and reject anything else at construction time.
type Bath interface {
	// NSites returns the number of system sites the bath couples to.
	NSites() int
}

// PseudomodeBath is a bath of damped harmonic pseudomodes. All parameter
// arrays are indexed [pseudomode][site] and are treated as immutable once
// the bath is constructed.
type PseudomodeBath struct {
	// Omega holds the pseudomode center frequencies.
	Omega [][]float64
	// Gamma holds the pseudomode damping widths.
	Gamma [][]float64
	// Huang holds the Huang-Rhys coupling strengths.
	Huang [][]float64

	numPM  int
	nSites int
}

// NewPseudomodeBath validates that omega, gamma and huang all have the same
// [pseudomode][site] shape and returns the bath.
func NewPseudomodeBath(omega, gamma, huang [][]float64) (*PseudomodeBath, error) {
	if len(omega) == 0 || len(omega[0]) == 0 {
		return nil, fmt.Errorf("bath: need at least one pseudomode and one site: %w", ErrShape)
	}
	numPM, nSites := len(omega), len(omega[0])
	for name, arr := range map[string][][]float64{"omega": omega, "gamma": gamma, "huang": huang} {
		if len(arr) != numPM {
			return nil, fmt.Errorf("bath: %s has %d pseudomodes, want %d: %w", name, len(arr), numPM, ErrShape)
		}
		for p, row := range arr {
			if len(row) != nSites {
				return nil, fmt.Errorf("bath: %s pseudomode %d has %d sites, want %d: %w",
					name, p, len(row), nSites, ErrShape)
			}
		}
	}
	return &PseudomodeBath{
		Omega: omega, Gamma: gamma, Huang: huang,
		numPM: numPM, nSites: nSites,
	}, nil
}

// NumPseudomodes returns the number of pseudomodes per site.
func (b *PseudomodeBath) NumPseudomodes() int { return b.numPM }

// NSites returns the number of sites the bath parameters cover.
func (b *PseudomodeBath) NSites() int { return b.nSites }

// Coefficients derives the per-(pseudomode, site) spectral coefficients of
// the bath correlation function, a sum of Lorentzians centered at Omega with
// widths Gamma and prefactors Huang:
//
//	strength[p][s] = Omega²·Huang
//	w[p][s]        = i·Omega + Gamma
//
// These are fixed for the lifetime of a simulation; they are not part of the
// evolving state.
func (b *PseudomodeBath) Coefficients() (strength, w [][]complex128) {
	strength = make([][]complex128, b.numPM)
	w = make([][]complex128, b.numPM)
	for p := 0; p < b.numPM; p++ {
		strength[p] = make([]complex128, b.nSites)
		w[p] = make([]complex128, b.nSites)
		for s := 0; s < b.nSites; s++ {
			strength[p][s] = complex(b.Omega[p][s]*b.Omega[p][s]*b.Huang[p][s], 0)
			w[p][s] = complex(b.Gamma[p][s], b.Omega[p][s])
		}
	}
	return strength, w
}
