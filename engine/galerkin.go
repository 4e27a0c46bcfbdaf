// SPDX-License-Identifier: MIT

// Package engine: sparse products for the Galerkin coarse operator.

package engine

import (
	"sort"

	"github.com/katalvlaran/amg/sparse"
)

// matMul computes the sparse product C = A·B using a dense scratch row with
// a marker array (the classic SMMP gather/scatter). Column indices of each
// result row are emitted sorted for determinism.
//
// Complexity: O(Σ_i Σ_{j∈row i of A} nnz(row j of B)) plus per-row sorts.
func matMul(a, b *sparse.CSR) *sparse.CSR {
	c := &sparse.CSR{
		Rows:   a.Rows,
		Cols:   b.Cols,
		RowPtr: make([]int, a.Rows+1),
	}

	acc := make([]float64, b.Cols)
	marker := make([]int, b.Cols)
	for j := range marker {
		marker[j] = -1
	}
	var cols []int

	for i := 0; i < a.Rows; i++ {
		c.RowPtr[i] = len(c.Val)
		cols = cols[:0]
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			k := a.ColInd[p]
			av := a.Val[p]
			for q := b.RowPtr[k]; q < b.RowPtr[k+1]; q++ {
				j := b.ColInd[q]
				if marker[j] != i {
					marker[j] = i
					acc[j] = 0
					cols = append(cols, j)
				}
				acc[j] += av * b.Val[q]
			}
		}
		sort.Ints(cols)
		for _, j := range cols {
			if acc[j] != 0 {
				c.ColInd = append(c.ColInd, j)
				c.Val = append(c.Val, acc[j])
			}
		}
	}
	c.RowPtr[a.Rows] = len(c.Val)

	return c
}

// galerkin forms the restriction R = Pᵀ and the coarse operator
// Ac = R·A·P for one level transition.
func galerkin(a, p *sparse.CSR) (r, ac *sparse.CSR) {
	r = p.Transpose()
	ac = matMul(r, matMul(a, p))

	return r, ac
}
