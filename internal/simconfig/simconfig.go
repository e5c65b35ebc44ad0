// Package simconfig loads the YAML description of a simulation: the
// electronic system, the pseudomode bath and the propagation window.
//
// These structs allow for type-safe parsing of the configuration file.
// Decoding is strict (KnownFields) to prevent silent errors due to typos,
// and environment variables in the file are expanded before parsing.
package simconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sanonone/zofe/pkg/bath"
	"github.com/sanonone/zofe/pkg/cmat"
	"github.com/sanonone/zofe/pkg/excitation"
	"github.com/sanonone/zofe/pkg/system"
	"github.com/sanonone/zofe/pkg/zofe"
)

// Config is the top-level structure of a simulation configuration file.
type Config struct {
	System      SystemConfig      `yaml:"system"`
	Bath        BathConfig        `yaml:"bath"`
	Model       ModelConfig       `yaml:"model"`
	Propagation PropagationConfig `yaml:"propagation"`
}

// SystemConfig describes the electronic Hamiltonian: site energies on the
// diagonal, electronic couplings off it. Couplings may be omitted for
// uncoupled sites; when present it must be a full NxN matrix.
type SystemConfig struct {
	SiteEnergies []float64   `yaml:"site_energies"`
	Couplings    [][]float64 `yaml:"couplings"`
	// KT is the thermal energy for the initial thermal state; 0 selects the
	// ground state.
	KT float64 `yaml:"kt"`
}

// BathConfig holds the pseudomode parameters, each indexed
// [pseudomode][site].
type BathConfig struct {
	Omega [][]float64 `yaml:"omega"`
	Gamma [][]float64 `yaml:"gamma"`
	Huang [][]float64 `yaml:"huang"`
}

// ModelConfig selects the ZOFE model options.
type ModelConfig struct {
	Subspace         string  `yaml:"subspace"` // e.g. "ge", "gef"
	UnitConvert      float64 `yaml:"unit_convert"`
	HamHermitian     bool    `yaml:"ham_hermitian"`
	RhoHermitian     bool    `yaml:"rho_hermitian"`
	CheckHermiticity bool    `yaml:"check_hermiticity"`
}

// PropagationConfig defines the time window, the number of recorded samples
// and the internal integrator step.
type PropagationConfig struct {
	TStart  float64 `yaml:"t_start"`
	TEnd    float64 `yaml:"t_end"`
	Samples int     `yaml:"samples"`
	Step    float64 `yaml:"step"`
}

// Load reads and parses the YAML configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}

	expandedData := os.ExpandEnv(string(data))

	var config Config
	decoder := yaml.NewDecoder(strings.NewReader(expandedData))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}

	return &config, nil
}

// BuildModel assembles the bath, the electronic Hamiltonian and the ZOFE
// model from the configuration.
func (c *Config) BuildModel() (*zofe.Model, error) {
	n := len(c.System.SiteEnergies)
	if n == 0 {
		return nil, fmt.Errorf("simconfig: system.site_energies is empty")
	}
	oneExc := cmat.New(n, n)
	for i, e := range c.System.SiteEnergies {
		oneExc.Set(i, i, complex(e, 0))
	}
	if c.System.Couplings != nil {
		if len(c.System.Couplings) != n {
			return nil, fmt.Errorf("simconfig: couplings has %d rows, want %d", len(c.System.Couplings), n)
		}
		for i, row := range c.System.Couplings {
			if len(row) != n {
				return nil, fmt.Errorf("simconfig: couplings row %d has %d entries, want %d", i, len(row), n)
			}
			for j, v := range row {
				if i != j {
					oneExc.Set(i, j, complex(v, 0))
				}
			}
		}
	}

	b, err := bath.NewPseudomodeBath(c.Bath.Omega, c.Bath.Gamma, c.Bath.Huang)
	if err != nil {
		return nil, err
	}
	h, err := system.NewElectronic(oneExc, b, c.System.KT)
	if err != nil {
		return nil, err
	}
	return zofe.NewModel(h, zofe.Options{
		Subspace:         excitation.Subspace(c.Model.Subspace),
		UnitConvert:      c.Model.UnitConvert,
		HamHermitian:     c.Model.HamHermitian,
		RhoHermitian:     c.Model.RhoHermitian,
		CheckHermiticity: c.Model.CheckHermiticity,
	})
}
