// SPDX-License-Identifier: MIT

// Package sparse: CSC ↔ CSR conversion kernels.
//
// Both directions use the counting/scatter pass of a sparse transpose: count
// entries per target row (column), prefix-sum into the pointer array, then
// scatter indices and values in source order. Walking the source in its
// natural order leaves target indices sorted ascending, so the conversions
// are exact inverses of each other on well-formed input.

package sparse

// ToCSR converts a compressed-column matrix into the equivalent
// compressed-row matrix the engine consumes. Pattern and values are
// preserved exactly; no index-base shift happens here (both layouts are
// 0-based inside this package — base shifts belong to ingestion, see
// NewCSCFromOneBased).
//
// Complexity: O(rows + cols + nnz).
func ToCSR(a *CSC) *CSR {
	r := &CSR{
		Rows:   a.Rows,
		Cols:   a.Cols,
		RowPtr: make([]int, a.Rows+1),
		ColInd: make([]int, a.NNZ()),
		Val:    make([]float64, a.NNZ()),
	}
	for _, i := range a.RowInd {
		r.RowPtr[i+1]++
	}
	for i := 0; i < a.Rows; i++ {
		r.RowPtr[i+1] += r.RowPtr[i]
	}
	next := make([]int, a.Rows)
	copy(next, r.RowPtr[:a.Rows])
	for j := 0; j < a.Cols; j++ {
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			i := a.RowInd[p]
			q := next[i]
			r.ColInd[q] = j
			r.Val[q] = a.Val[p]
			next[i]++
		}
	}

	return r
}

// ToCSC converts a compressed-row matrix back into compressed-column form.
// Exact inverse of ToCSR on well-formed input.
//
// Complexity: O(rows + cols + nnz).
func ToCSC(a *CSR) *CSC {
	c := &CSC{
		Rows:   a.Rows,
		Cols:   a.Cols,
		ColPtr: make([]int, a.Cols+1),
		RowInd: make([]int, a.NNZ()),
		Val:    make([]float64, a.NNZ()),
	}
	for _, j := range a.ColInd {
		c.ColPtr[j+1]++
	}
	for j := 0; j < a.Cols; j++ {
		c.ColPtr[j+1] += c.ColPtr[j]
	}
	next := make([]int, a.Cols)
	copy(next, c.ColPtr[:a.Cols])
	for i := 0; i < a.Rows; i++ {
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			j := a.ColInd[p]
			q := next[j]
			c.RowInd[q] = i
			c.Val[q] = a.Val[p]
			next[j]++
		}
	}

	return c
}
