// SPDX-License-Identifier: MIT

// Package engine: dense LU factorization for the coarsest level.
//
// The coarsest operator is small by construction (MaxCoarse rows unless
// coarsening stalls), so a dense factor-once/solve-many LU with partial
// pivoting is the simplest robust direct solve. Storage is a flat row-major
// buffer with the explicit offset formula i*n + j.

package engine

import (
	"math"

	"github.com/katalvlaran/amg/sparse"
)

// denseLU holds an in-place LU factorization P·A = L·U with L unit lower
// triangular, plus the row-pivot permutation.
type denseLU struct {
	n   int
	lu  []float64 // row-major; L below the diagonal, U on and above
	piv []int     // piv[k] = pivot row chosen at step k
}

// newDenseLU densifies a and factors it with partial pivoting.
// Returns ErrSingularCoarse when no usable pivot remains.
//
// Complexity: O(n³) factor, O(n²) densify.
func newDenseLU(a *sparse.CSR) (*denseLU, error) {
	n := a.Rows
	f := &denseLU{
		n:   n,
		lu:  make([]float64, n*n),
		piv: make([]int, n),
	}
	for i := 0; i < n; i++ {
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			f.lu[i*n+a.ColInd[p]] = a.Val[p]
		}
	}

	for k := 0; k < n; k++ {
		// Partial pivoting: pick the largest magnitude in column k.
		pivot, maxAbs := k, math.Abs(f.lu[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(f.lu[i*n+k]); v > maxAbs {
				pivot, maxAbs = i, v
			}
		}
		if maxAbs == 0 {
			return nil, ErrSingularCoarse
		}
		f.piv[k] = pivot
		if pivot != k {
			for j := 0; j < n; j++ {
				f.lu[k*n+j], f.lu[pivot*n+j] = f.lu[pivot*n+j], f.lu[k*n+j]
			}
		}
		d := f.lu[k*n+k]
		for i := k + 1; i < n; i++ {
			m := f.lu[i*n+k] / d
			f.lu[i*n+k] = m
			if m == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				f.lu[i*n+j] -= m * f.lu[k*n+j]
			}
		}
	}

	return f, nil
}

// solve writes the solution of A·x = b into x. x and b may alias.
//
// Complexity: O(n²).
func (f *denseLU) solve(x, b []float64) {
	n := f.n
	if &x[0] != &b[0] {
		copy(x, b)
	}
	// Apply the pivot permutation, then forward and back substitution.
	for k := 0; k < n; k++ {
		if p := f.piv[k]; p != k {
			x[k], x[p] = x[p], x[k]
		}
	}
	for i := 1; i < n; i++ {
		s := x[i]
		for j := 0; j < i; j++ {
			s -= f.lu[i*n+j] * x[j]
		}
		x[i] = s
	}
	for i := n - 1; i >= 0; i-- {
		s := x[i]
		for j := i + 1; j < n; j++ {
			s -= f.lu[i*n+j] * x[j]
		}
		x[i] = s / f.lu[i*n+i]
	}
}
