// Package cmat provides the dense complex linear algebra used by the ZOFE
// engine: complex128 matrices with BLAS-backed products, conjugate transposes,
// Kronecker products and the column-major (Fortran order) flattening that the
// state codec relies on.
//
// Matrix products go through Gonum's cblas128 layer, so they pick up whatever
// BLAS implementation Gonum dispatches to. Everything else is plain Go loops;
// the matrices in this domain are small (tens of rows), the hot cost is the
// number of products per derivative evaluation, not the loop overhead.
//
// Following the convention of gonum/mat, shape mismatches in this package
// panic: they are programming errors, not runtime conditions. The public
// packages built on top of cmat validate dimensions eagerly and return errors
// before any panicking path can be reached.
package cmat

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Matrix is a dense complex matrix in row-major storage.
// The zero value is not usable; construct with New, Zeros, Eye or FromRows.
type Matrix struct {
	Rows, Cols int
	Data       []complex128 // row-major, stride == Cols
}

// New returns an r x c zero matrix.
func New(r, c int) *Matrix {
	if r < 0 || c < 0 {
		panic(fmt.Sprintf("cmat: negative dimension %dx%d", r, c))
	}
	return &Matrix{Rows: r, Cols: c, Data: make([]complex128, r*c)}
}

// Zeros is an alias for New, matching the naming used for square operators.
func Zeros(n int) *Matrix { return New(n, n) }

// Eye returns the n x n identity matrix.
func Eye(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from a slice of equally sized rows.
func FromRows(rows [][]complex128) *Matrix {
	r := len(rows)
	if r == 0 {
		return New(0, 0)
	}
	c := len(rows[0])
	m := New(r, c)
	for i, row := range rows {
		if len(row) != c {
			panic(fmt.Sprintf("cmat: ragged rows, row %d has %d entries, want %d", i, len(row), c))
		}
		copy(m.Data[i*c:(i+1)*c], row)
	}
	return m
}

// Diag returns a square matrix with v on the main diagonal.
func Diag(v []complex128) *Matrix {
	n := len(v)
	m := New(n, n)
	for i, z := range v {
		m.Data[i*n+i] = z
	}
	return m
}

// Dims returns the row and column counts.
func (m *Matrix) Dims() (r, c int) { return m.Rows, m.Cols }

// IsSquare reports whether the matrix is square.
func (m *Matrix) IsSquare() bool { return m.Rows == m.Cols }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) complex128 { return m.Data[i*m.Cols+j] }

// Set assigns the element at row i, column j.
func (m *Matrix) Set(i, j int, v complex128) { m.Data[i*m.Cols+j] = v }

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	out := New(m.Rows, m.Cols)
	copy(out.Data, m.Data)
	return out
}

// general adapts the matrix to the cblas128 storage descriptor.
func (m *Matrix) general() cblas128.General {
	return cblas128.General{Rows: m.Rows, Cols: m.Cols, Stride: m.Cols, Data: m.Data}
}

// opDims returns the effective dimensions of op(m) under a BLAS transpose flag.
func (m *Matrix) opDims(t blas.Transpose) (r, c int) {
	if t == blas.NoTrans {
		return m.Rows, m.Cols
	}
	return m.Cols, m.Rows
}

// gemm computes op(a)·op(b) into a fresh matrix.
func gemm(tA, tB blas.Transpose, a, b *Matrix) *Matrix {
	ar, ac := a.opDims(tA)
	br, bc := b.opDims(tB)
	if ac != br {
		panic(fmt.Sprintf("cmat: product dimension mismatch %dx%d · %dx%d", ar, ac, br, bc))
	}
	out := New(ar, bc)
	if ar == 0 || bc == 0 || ac == 0 {
		return out
	}
	cblas128.Gemm(tA, tB, 1, a.general(), b.general(), 0, out.general())
	return out
}

// Mul returns a·b.
func Mul(a, b *Matrix) *Matrix { return gemm(blas.NoTrans, blas.NoTrans, a, b) }

// MulConjTransLeft returns a†·b.
func MulConjTransLeft(a, b *Matrix) *Matrix { return gemm(blas.ConjTrans, blas.NoTrans, a, b) }

// MulConjTransRight returns a·b†.
func MulConjTransRight(a, b *Matrix) *Matrix { return gemm(blas.NoTrans, blas.ConjTrans, a, b) }

// ConjTrans returns the conjugate transpose a†.
func (m *Matrix) ConjTrans() *Matrix {
	out := New(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[j*m.Rows+i] = cmplx.Conj(m.Data[i*m.Cols+j])
		}
	}
	return out
}

func sameShape(a, b *Matrix) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		panic(fmt.Sprintf("cmat: shape mismatch %dx%d vs %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
}

// Add returns a + b.
func Add(a, b *Matrix) *Matrix {
	sameShape(a, b)
	out := New(a.Rows, a.Cols)
	for i, v := range a.Data {
		out.Data[i] = v + b.Data[i]
	}
	return out
}

// Sub returns a - b.
func Sub(a, b *Matrix) *Matrix {
	sameShape(a, b)
	out := New(a.Rows, a.Cols)
	for i, v := range a.Data {
		out.Data[i] = v - b.Data[i]
	}
	return out
}

// Scale returns alpha·a.
func Scale(alpha complex128, a *Matrix) *Matrix {
	out := New(a.Rows, a.Cols)
	for i, v := range a.Data {
		out.Data[i] = alpha * v
	}
	return out
}

// AddInPlace accumulates b into the receiver. Used for the site sums in the
// equation of motion, where allocating a fresh matrix per addend is wasteful.
func (m *Matrix) AddInPlace(b *Matrix) {
	sameShape(m, b)
	for i, v := range b.Data {
		m.Data[i] += v
	}
}

// Trace returns the sum of the diagonal elements of a square matrix.
func (m *Matrix) Trace() complex128 {
	if !m.IsSquare() {
		panic(fmt.Sprintf("cmat: trace of non-square %dx%d matrix", m.Rows, m.Cols))
	}
	var tr complex128
	for i := 0; i < m.Rows; i++ {
		tr += m.Data[i*m.Cols+i]
	}
	return tr
}

// TraceProduct returns tr(a·b) = sum_ij a[i,j]·b[j,i] without forming the
// product matrix.
func TraceProduct(a, b *Matrix) complex128 {
	if a.Cols != b.Rows || a.Rows != b.Cols {
		panic(fmt.Sprintf("cmat: trace product dimension mismatch %dx%d vs %dx%d",
			a.Rows, a.Cols, b.Rows, b.Cols))
	}
	var tr complex128
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			tr += a.Data[i*a.Cols+j] * b.Data[j*b.Cols+i]
		}
	}
	return tr
}

// Kron returns the Kronecker product a ⊗ b.
func Kron(a, b *Matrix) *Matrix {
	out := New(a.Rows*b.Rows, a.Cols*b.Cols)
	for ia := 0; ia < a.Rows; ia++ {
		for ja := 0; ja < a.Cols; ja++ {
			va := a.Data[ia*a.Cols+ja]
			if va == 0 {
				continue
			}
			for ib := 0; ib < b.Rows; ib++ {
				row := (ia*b.Rows + ib) * out.Cols
				for jb := 0; jb < b.Cols; jb++ {
					out.Data[row+ja*b.Cols+jb] = va * b.Data[ib*b.Cols+jb]
				}
			}
		}
	}
	return out
}

// IsHermitian reports whether the matrix equals its conjugate transpose to
// within tol in absolute value per element.
func (m *Matrix) IsHermitian(tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	for i := 0; i < m.Rows; i++ {
		for j := i; j < m.Cols; j++ {
			if cmplx.Abs(m.At(i, j)-cmplx.Conj(m.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}

// EqualApprox reports whether a and b have the same shape and all elements
// agree to within tol in absolute value.
func EqualApprox(a, b *Matrix, tol float64) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	for i, v := range a.Data {
		if cmplx.Abs(v-b.Data[i]) > tol {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest absolute value of any element. Zero for an
// empty matrix.
func (m *Matrix) MaxAbs() float64 {
	max := 0.0
	for _, v := range m.Data {
		max = math.Max(max, cmplx.Abs(v))
	}
	return max
}

// FlattenCM appends the matrix to dst in column-major (Fortran) order.
// This is the wire layout of the ODE state vector, so it must stay the exact
// inverse of UnflattenCM.
func (m *Matrix) FlattenCM(dst []complex128) []complex128 {
	for j := 0; j < m.Cols; j++ {
		for i := 0; i < m.Rows; i++ {
			dst = append(dst, m.Data[i*m.Cols+j])
		}
	}
	return dst
}

// UnflattenCM builds an r x c matrix from data laid out in column-major order.
// The data is copied, not aliased.
func UnflattenCM(data []complex128, r, c int) *Matrix {
	if len(data) != r*c {
		panic(fmt.Sprintf("cmat: unflatten length %d does not match %dx%d", len(data), r, c))
	}
	m := New(r, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			m.Data[i*c+j] = data[j*r+i]
		}
	}
	return m
}
