package excitation

import (
	"errors"
	"testing"

	"github.com/sanonone/zofe/pkg/cmat"
)

func TestOperatorOneToTwoDiagonal(t *testing.T) {
	// For a diagonal one-body operator the lift collapses to pair sums:
	// diag(1,2,3) on pairs (0,1),(0,2),(1,2) gives diag(3,4,5).
	a := cmat.Diag([]complex128{1, 2, 3})
	got, err := OperatorOneToTwo(a)
	if err != nil {
		t.Fatal(err)
	}
	want := cmat.Diag([]complex128{3, 4, 5})
	if !cmat.EqualApprox(got, want, 0) {
		t.Fatalf("got %v, want %v", got.Data, want.Data)
	}
}

func TestOperatorOneToTwoOffDiagonal(t *testing.T) {
	// One off-diagonal element A[0,1] hops an excitation from site 1 to
	// site 0. On pair states it connects (1,2) -> (0,2), with site 2 as the
	// spectator; (0,1) -> (0,0) is forbidden by the hard-core constraint,
	// so that element never appears.
	a := cmat.New(3, 3)
	a.Set(0, 1, 7)
	got, err := OperatorOneToTwo(a)
	if err != nil {
		t.Fatal(err)
	}
	// Pair order: (0,1), (0,2), (1,2).
	want := cmat.New(3, 3)
	want.Set(1, 2, 7) // <02|A|12>
	if !cmat.EqualApprox(got, want, 0) {
		t.Fatalf("got %v, want %v", got.Data, want.Data)
	}
}

func TestOperatorOneToTwoRequiresSquare(t *testing.T) {
	_, err := OperatorOneToTwo(cmat.New(2, 3))
	if !errors.Is(err, ErrDimension) {
		t.Fatalf("got %v, want ErrDimension", err)
	}
}

func TestOperatorExtendBlockStructure(t *testing.T) {
	a := cmat.FromRows([][]complex128{
		{1, 2i},
		{3, 4},
	})

	got, err := OperatorExtend(a, "ge")
	if err != nil {
		t.Fatal(err)
	}
	// 1. The g block is the 1x1 zero matrix.
	if got.At(0, 0) != 0 {
		t.Errorf("g block: got %v, want 0", got.At(0, 0))
	}
	// 2. The e block is the operator unchanged.
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got.At(1+i, 1+j) != a.At(i, j) {
				t.Errorf("e block (%d,%d): got %v, want %v", i, j, got.At(1+i, 1+j), a.At(i, j))
			}
		}
	}
	// 3. Everything off the blocks is exactly zero.
	for j := 1; j < 3; j++ {
		if got.At(0, j) != 0 || got.At(j, 0) != 0 {
			t.Errorf("inter-subspace coupling leaked at (0,%d)/(%d,0)", j, j)
		}
	}
}

func TestOperatorExtendFullBasis(t *testing.T) {
	// Two sites over gef: dimension 1 + 2 + 1, with the f block the lifted
	// operator (here: the sum of the diagonal).
	a := cmat.Diag([]complex128{1, 2})
	got, err := OperatorExtend(a, "gef")
	if err != nil {
		t.Fatal(err)
	}
	if r, c := got.Dims(); r != 4 || c != 4 {
		t.Fatalf("dimension %dx%d, want 4x4", r, c)
	}
	if got.At(3, 3) != 3 {
		t.Errorf("f block: got %v, want 3", got.At(3, 3))
	}
}

func TestTransitionOperator(t *testing.T) {
	// Two sites over gef; basis order [], [0], [1], [0,1].
	create, err := TransitionOperator(0, 2, "gef", "+")
	if err != nil {
		t.Fatal(err)
	}
	// Creation at site 0: [] -> [0] and [1] -> [0,1].
	wantCreate := cmat.New(4, 4)
	wantCreate.Set(1, 0, 1)
	wantCreate.Set(3, 2, 1)
	if !cmat.EqualApprox(create, wantCreate, 0) {
		t.Errorf("creation operator: got %v, want %v", create.Data, wantCreate.Data)
	}

	annihilate, err := TransitionOperator(0, 2, "gef", "-")
	if err != nil {
		t.Fatal(err)
	}
	// Annihilation is the transpose of creation for these 0/1 matrices.
	if !cmat.EqualApprox(annihilate, create.ConjTrans(), 0) {
		t.Error("annihilation is not the transpose of creation")
	}

	both, err := TransitionOperator(0, 2, "gef", "+-")
	if err != nil {
		t.Fatal(err)
	}
	if !cmat.EqualApprox(both, cmat.Add(create, annihilate), 0) {
		t.Error("combined operator is not the sum of creation and annihilation")
	}
}

func TestTransitionOperatorHardCoreExclusion(t *testing.T) {
	// Creating at a site that is already excited must produce no matrix
	// element: the column of state [0] under creation at site 0 is zero.
	op, err := TransitionOperator(0, 2, "gef", "+")
	if err != nil {
		t.Fatal(err)
	}
	states := AllStates(2, "gef")
	for j, s := range states {
		if !s.Contains(0) {
			continue
		}
		for i := range states {
			if op.At(i, j) != 0 {
				t.Errorf("hard-core violation: creation at excited site, entry (%d,%d) = %v", i, j, op.At(i, j))
			}
		}
	}
}

func TestTransitionOperatorArgumentChecks(t *testing.T) {
	if _, err := TransitionOperator(2, 2, "ge", "+"); !errors.Is(err, ErrDimension) {
		t.Errorf("site out of range: got %v, want ErrDimension", err)
	}
	if _, err := TransitionOperator(0, 2, "ge", ""); !errors.Is(err, ErrSubspace) {
		t.Errorf("empty transitions: got %v, want ErrSubspace", err)
	}
	if _, err := TransitionOperator(0, 2, "ge", "x"); !errors.Is(err, ErrSubspace) {
		t.Errorf("bad transitions: got %v, want ErrSubspace", err)
	}
}
