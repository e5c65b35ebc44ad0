package excitation

import (
	"math"
	"testing"

	"github.com/sanonone/zofe/pkg/cmat"
)

func TestVibOperators(t *testing.T) {
	a := VibAnnihilate(3)
	// sqrt(1), sqrt(2) on the superdiagonal.
	if a.At(0, 1) != 1 {
		t.Errorf("a[0,1] = %v, want 1", a.At(0, 1))
	}
	if got := real(a.At(1, 2)); math.Abs(got-math.Sqrt2) > 1e-15 {
		t.Errorf("a[1,2] = %v, want sqrt(2)", got)
	}

	// Creation is the transpose of annihilation.
	if !cmat.EqualApprox(VibCreate(3), a.ConjTrans(), 0) {
		t.Error("VibCreate is not the adjoint of VibAnnihilate")
	}

	// The number operator a†·a counts levels.
	num := cmat.Mul(VibCreate(3), a)
	for k := 0; k < 3; k++ {
		if got := real(num.At(k, k)); math.Abs(got-float64(k)) > 1e-14 {
			t.Errorf("number operator level %d: got %v", k, got)
		}
	}
}

func TestExtendVibOperator(t *testing.T) {
	// Three modes with 2, 3, 2 levels; extending an operator on the middle
	// mode gives dimension 2·3·2 and identity action on the outer modes.
	op := VibAnnihilate(3)
	ext := ExtendVibOperator([]int{2, 3, 2}, 1, op)
	if r, c := ext.Dims(); r != 12 || c != 12 {
		t.Fatalf("dimension %dx%d, want 12x12", r, c)
	}
	want := TensorProd(cmat.Eye(2), op, cmat.Eye(2))
	if !cmat.EqualApprox(ext, want, 0) {
		t.Fatal("ExtendVibOperator disagrees with explicit tensor product")
	}
}

func TestBasisTransform(t *testing.T) {
	// Swap unitary on a 2-level system.
	u := cmat.FromRows([][]complex128{
		{0, 1},
		{1, 0},
	})
	op := cmat.Diag([]complex128{1, 2})

	// Operator transform: u†·op·u swaps the diagonal.
	got, err := BasisTransform(op, u)
	if err != nil {
		t.Fatal(err)
	}
	if !cmat.EqualApprox(got, cmat.Diag([]complex128{2, 1}), 1e-14) {
		t.Fatalf("operator transform: got %v", got.Data)
	}

	// Vector transform.
	v, err := BasisTransform(UnitVec(0, 2), u)
	if err != nil {
		t.Fatal(err)
	}
	if !cmat.EqualApprox(v, UnitVec(1, 2), 1e-14) {
		t.Fatalf("vector transform: got %v", v.Data)
	}

	// Super-operator dimension N²xN² is accepted.
	if _, err := BasisTransform(cmat.Eye(4), u); err != nil {
		t.Errorf("super-operator transform failed: %v", err)
	}

	// Anything else is a dimension mismatch.
	if _, err := BasisTransform(cmat.New(3, 2), u); err == nil {
		t.Error("incompatible shape accepted")
	}
}
