// SPDX-License-Identifier: MIT

// Package engine: smoothed-aggregation coarsening.

package engine

import "github.com/katalvlaran/amg/sparse"

// aggregate groups the points of the symmetric strength graph into
// aggregates using the standard greedy two-pass scheme:
//
//	pass 1: a point whose strong neighborhood is entirely unaggregated
//	        seeds a new aggregate containing itself and that neighborhood;
//	pass 2: leftover points join the aggregate of any strong neighbor;
//	pass 3: still-unattached points become singleton aggregates.
//
// Returns the aggregate index per point and the aggregate count. Seeds are
// visited in ascending order, so the result is deterministic.
//
// Complexity: O(nnz).
func aggregate(s [][]int) (agg []int, nAgg int) {
	n := len(s)
	agg = make([]int, n)
	for i := range agg {
		agg[i] = -1
	}

	for i := 0; i < n; i++ {
		if agg[i] >= 0 {
			continue
		}
		free := true
		for _, j := range s[i] {
			if agg[j] >= 0 {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		agg[i] = nAgg
		for _, j := range s[i] {
			agg[j] = nAgg
		}
		nAgg++
	}

	for i := 0; i < n; i++ {
		if agg[i] >= 0 {
			continue
		}
		for _, j := range s[i] {
			if agg[j] >= 0 {
				agg[i] = agg[j]
				break
			}
		}
	}

	for i := 0; i < n; i++ {
		if agg[i] < 0 {
			agg[i] = nAgg
			nAgg++
		}
	}

	return agg, nAgg
}

// smoothedAggregationProlongator computes the aggregation-based
// interpolation operator for one coarsening step: the piecewise-constant
// tentative prolongator T (one unit entry per row, column = aggregate),
// smoothed by one damped-Jacobi pass, P = (I − ω·D⁻¹·A)·T.
//
// Returns nil when aggregation makes no progress (every point its own
// aggregate).
//
// Complexity: O(nnz) plus one sparse product.
func smoothedAggregationProlongator(a *sparse.CSR, cfg BuildConfig) *sparse.CSR {
	s := strengthGraph(a, cfg)
	agg, nAgg := aggregate(s)
	if nAgg == 0 || nAgg >= a.Rows {
		return nil
	}

	n := a.Rows
	t := &sparse.CSR{
		Rows:   n,
		Cols:   nAgg,
		RowPtr: make([]int, n+1),
		ColInd: make([]int, n),
		Val:    make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t.RowPtr[i] = i
		t.ColInd[i] = agg[i]
		t.Val[i] = 1
	}
	t.RowPtr[n] = n

	// P = T − ω·D⁻¹·(A·T). The Jacobi damping spreads each aggregate's
	// constant vector across strong couplings, which is what separates
	// smoothed aggregation from plain aggregation.
	at := matMul(a, t)
	// T has exactly one entry per row, so subtracting the scaled A·T row is
	// a sparse row merge with at most one overlap.
	return rowMergeScaled(t, at, a.Diag(), cfg.JacobiWeight)
}

// rowMergeScaled returns the sparse result of t[i,:] − (ω/d_i)·at[i,:] per
// row, keeping column indices sorted. Rows with zero diagonal keep their
// tentative entry untouched.
func rowMergeScaled(t, at *sparse.CSR, diag []float64, omega float64) *sparse.CSR {
	n := t.Rows
	out := &sparse.CSR{
		Rows:   n,
		Cols:   t.Cols,
		RowPtr: make([]int, n+1),
	}
	for i := 0; i < n; i++ {
		out.RowPtr[i] = len(out.Val)
		tj, tv := t.ColInd[t.RowPtr[i]], t.Val[t.RowPtr[i]]
		if diag[i] == 0 {
			out.ColInd = append(out.ColInd, tj)
			out.Val = append(out.Val, tv)
			continue
		}
		scale := omega / diag[i]
		merged := false
		for p := at.RowPtr[i]; p < at.RowPtr[i+1]; p++ {
			j := at.ColInd[p]
			v := -scale * at.Val[p]
			if !merged && tj < j {
				out.ColInd = append(out.ColInd, tj)
				out.Val = append(out.Val, tv)
				merged = true
			}
			if j == tj {
				v += tv
				merged = true
			}
			if v != 0 {
				out.ColInd = append(out.ColInd, j)
				out.Val = append(out.Val, v)
			}
		}
		if !merged {
			out.ColInd = append(out.ColInd, tj)
			out.Val = append(out.Val, tv)
		}
	}
	out.RowPtr[n] = len(out.Val)

	return out
}
