package excitation

import (
	"errors"
	"testing"
)

func TestAllStatesCountsAndOrder(t *testing.T) {
	testCases := []struct {
		name     string
		n        int
		subspace Subspace
		want     []State
	}{
		{
			name: "ground only", n: 3, subspace: "g",
			want: []State{{}},
		},
		{
			name: "singles", n: 3, subspace: "e",
			want: []State{{0}, {1}, {2}},
		},
		{
			name: "pairs lexicographic", n: 3, subspace: "f",
			want: []State{{0, 1}, {0, 2}, {1, 2}},
		},
		{
			name: "full in g e f order", n: 2, subspace: "gef",
			want: []State{{}, {0}, {1}, {0, 1}},
		},
		{
			name: "input order is irrelevant", n: 2, subspace: "feg",
			want: []State{{}, {0}, {1}, {0, 1}},
		},
		{
			name: "zero sites", n: 0, subspace: "gef",
			want: []State{{}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AllStates(tc.n, tc.subspace)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d states, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if !got[i].Equal(tc.want[i]) {
					t.Errorf("state %d: got %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestAllStatesAgreesWithClosedForm(t *testing.T) {
	// The enumerator and the closed-form counts are two routes to the same
	// number; they must never drift apart.
	for n := 0; n <= 6; n++ {
		for _, sub := range []Subspace{"g", "e", "f", "ge", "gf", "ef", "gef"} {
			if got, want := len(AllStates(n, sub)), NStates(n, sub); got != want {
				t.Errorf("n=%d subspace=%q: enumerated %d states, closed form says %d", n, sub, got, want)
			}
		}
	}
}

func TestAllStatesNoDuplicates(t *testing.T) {
	states := AllStates(5, "gef")
	for i := range states {
		for j := i + 1; j < len(states); j++ {
			if states[i].Equal(states[j]) {
				t.Fatalf("duplicate state %v at positions %d and %d", states[i], i, j)
			}
		}
	}
}

func TestSubspaceIndex(t *testing.T) {
	// The documented example: two sites over the full gef basis.
	testCases := []struct {
		label Subspace
		want  Range
	}{
		{"g", Range{0, 1}},
		{"e", Range{1, 3}},
		{"f", Range{3, 4}},
	}
	for _, tc := range testCases {
		got, err := SubspaceIndex(tc.label, "gef", 2, 1)
		if err != nil {
			t.Fatalf("SubspaceIndex(%q): %v", tc.label, err)
		}
		if got != tc.want {
			t.Errorf("SubspaceIndex(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestSubspaceIndexPartitions(t *testing.T) {
	// For every included label the range length must equal the enumerated
	// state count, and the ranges must tile [0, total) without gaps.
	for n := 1; n <= 5; n++ {
		for _, all := range []Subspace{"g", "ge", "ef", "gef"} {
			offset := 0
			for i := 0; i < len(all); i++ {
				label := Subspace(all[i : i+1])
				r, err := SubspaceIndex(label, all, n, 1)
				if err != nil {
					t.Fatalf("n=%d all=%q label=%q: %v", n, all, label, err)
				}
				if r.Start != offset {
					t.Errorf("n=%d all=%q label=%q: range starts at %d, want %d", n, all, label, r.Start, offset)
				}
				if want := len(AllStates(n, label)); r.Len() != want {
					t.Errorf("n=%d all=%q label=%q: range length %d, want %d", n, all, label, r.Len(), want)
				}
				offset = r.End
			}
			if total := NStates(n, all); offset != total {
				t.Errorf("n=%d all=%q: ranges end at %d, total is %d", n, all, offset, total)
			}
		}
	}
}

func TestSubspaceIndexVibrationalMultiplicity(t *testing.T) {
	// Three vibrational levels triple every manifold.
	r, err := SubspaceIndex("e", "gef", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Range{3, 9}); r != want {
		t.Fatalf("got %v, want %v", r, want)
	}
}

func TestSubspaceIndexMembershipError(t *testing.T) {
	_, err := SubspaceIndex("f", "ge", 3, 1)
	if !errors.Is(err, ErrSubspace) {
		t.Fatalf("requesting an excluded label: got error %v, want ErrSubspace", err)
	}
}

func TestExtractSubspace(t *testing.T) {
	testCases := []struct {
		in   string
		want Subspace
	}{
		{"eg->ee", "ge"},
		{"gg,eg", "ge"},
		{"ef->fe", "ef"},
		{"gg", "g"},
	}
	for _, tc := range testCases {
		if got := ExtractSubspace(tc.in); got != tc.want {
			t.Errorf("ExtractSubspace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSubspaceValidate(t *testing.T) {
	if err := Subspace("ge").Validate(); err != nil {
		t.Errorf("valid subspace rejected: %v", err)
	}
	for _, bad := range []Subspace{"", "x", "gex"} {
		if err := bad.Validate(); !errors.Is(err, ErrSubspace) {
			t.Errorf("Validate(%q): got %v, want ErrSubspace", bad, err)
		}
	}
}
