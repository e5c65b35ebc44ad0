package simconfig

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
system:
  site_energies: [1.0, 2.0]
  couplings:
    - [0.0, 0.2]
    - [0.2, 0.0]
  kt: 0.0
bath:
  omega:
    - [1.0, 1.0]
  gamma:
    - [0.1, 0.1]
  huang:
    - [0.3, 0.3]
model:
  subspace: ge
  ham_hermitian: true
  rho_hermitian: true
propagation:
  t_start: 0.0
  t_end: 10.0
  samples: 101
  step: 0.01
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulation.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndBuildModel(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Propagation.Samples != 101 {
		t.Fatalf("samples = %d, want 101", cfg.Propagation.Samples)
	}

	model, err := cfg.BuildModel()
	if err != nil {
		t.Fatal(err)
	}
	// Two sites over "ge": ground + two single excitations.
	if model.NStates() != 3 {
		t.Fatalf("NStates = %d, want 3", model.NStates())
	}
	// The whole pipeline must yield a usable equation of motion.
	if _, err := model.EquationOfMotion(false); err != nil {
		t.Fatalf("EquationOfMotion: %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	// Strict mode: a typo like "side_energies" must fail, not be dropped.
	bad := `
system:
  side_energies: [1.0]
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestBuildModelValidation(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	cfg.System.SiteEnergies = nil
	if _, err := cfg.BuildModel(); err == nil {
		t.Fatal("empty site energies accepted")
	}

	cfg2, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	cfg2.System.Couplings = [][]float64{{0}}
	if _, err := cfg2.BuildModel(); err == nil {
		t.Fatal("wrong-shaped couplings accepted")
	}
}
