package cmat

import "fmt"

// Tensor4 is the four-index auxiliary operator of the ZOFE master equation,
// indexed as (pseudomode, site, state, state). It is stored as one n x n
// matrix per (pseudomode, site) pair, so the equation of motion can treat
// every slice with ordinary matrix products.
type Tensor4 struct {
	NPM, NSites, N int
	slices         []*Matrix // len NPM*NSites, index pm*NSites+site
}

// NewTensor4 returns a zero tensor with npm pseudomodes, nSites sites and
// n x n state blocks.
func NewTensor4(npm, nSites, n int) *Tensor4 {
	if npm < 0 || nSites < 0 || n < 0 {
		panic(fmt.Sprintf("cmat: negative tensor dimension (%d,%d,%d,%d)", npm, nSites, n, n))
	}
	t := &Tensor4{NPM: npm, NSites: nSites, N: n, slices: make([]*Matrix, npm*nSites)}
	for i := range t.slices {
		t.slices[i] = New(n, n)
	}
	return t
}

// At returns the n x n slice for the given pseudomode and site.
// The returned matrix aliases the tensor storage.
func (t *Tensor4) At(pm, site int) *Matrix {
	if pm < 0 || pm >= t.NPM || site < 0 || site >= t.NSites {
		panic(fmt.Sprintf("cmat: tensor index (%d,%d) out of range (%d,%d)", pm, site, t.NPM, t.NSites))
	}
	return t.slices[pm*t.NSites+site]
}

// SetSlice replaces the slice for the given pseudomode and site.
func (t *Tensor4) SetSlice(pm, site int, m *Matrix) {
	if m.Rows != t.N || m.Cols != t.N {
		panic(fmt.Sprintf("cmat: tensor slice shape %dx%d, want %dx%d", m.Rows, m.Cols, t.N, t.N))
	}
	t.slices[pm*t.NSites+site] = m
}

// Len returns the total number of scalar elements, NPM·NSites·N².
func (t *Tensor4) Len() int { return t.NPM * t.NSites * t.N * t.N }

// SumPM reduces the pseudomode axis, returning one summed matrix per site.
func (t *Tensor4) SumPM() []*Matrix {
	out := make([]*Matrix, t.NSites)
	for s := 0; s < t.NSites; s++ {
		acc := New(t.N, t.N)
		for p := 0; p < t.NPM; p++ {
			acc.AddInPlace(t.At(p, s))
		}
		out[s] = acc
	}
	return out
}

// FlattenCM appends the tensor to dst in column-major (Fortran) order over
// the shape (NPM, NSites, N, N): the pseudomode index varies fastest, the
// second state index slowest. This mirrors the density matrix layout and is
// the exact inverse of UnflattenTensor4CM.
func (t *Tensor4) FlattenCM(dst []complex128) []complex128 {
	for j := 0; j < t.N; j++ {
		for i := 0; i < t.N; i++ {
			for s := 0; s < t.NSites; s++ {
				for p := 0; p < t.NPM; p++ {
					dst = append(dst, t.At(p, s).At(i, j))
				}
			}
		}
	}
	return dst
}

// UnflattenTensor4CM builds a tensor from data laid out in column-major order
// over the shape (npm, nSites, n, n). The data is copied, not aliased.
func UnflattenTensor4CM(data []complex128, npm, nSites, n int) *Tensor4 {
	t := NewTensor4(npm, nSites, n)
	if len(data) != t.Len() {
		panic(fmt.Sprintf("cmat: unflatten length %d does not match (%d,%d,%d,%d)",
			len(data), npm, nSites, n, n))
	}
	k := 0
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			for s := 0; s < nSites; s++ {
				for p := 0; p < npm; p++ {
					t.At(p, s).Set(i, j, data[k])
					k++
				}
			}
		}
	}
	return t
}
