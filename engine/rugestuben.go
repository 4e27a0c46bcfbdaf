// SPDX-License-Identifier: MIT

// Package engine: classical (Ruge–Stüben) coarsening and interpolation.
//
// This is the first-pass splitting with direct interpolation. The second
// pass (promoting F points whose strong F–F couplings lack a common coarse
// neighbor) is intentionally omitted; on the diagonally dominant and
// M-matrix problems this engine targets, the smoother absorbs the residual
// couplings the second pass would capture.

package engine

import "github.com/katalvlaran/amg/sparse"

// alphaCap bounds the direct-interpolation scaling ratio α; rows beyond it
// fall back to smoother-only (empty) interpolation rows.
const alphaCap = 4.0

type cfState uint8

const (
	cfUndecided cfState = iota
	cfCoarse
	cfFine
)

// rugeStubenProlongator computes the classical interpolation operator P for
// one coarsening step. It returns nil when coarsening makes no progress
// (no coarse points, or every point became coarse).
//
// Complexity: O(n²) worst case for the greedy selection (linear rescan of
// the weight array), O(nnz) for interpolation. Acceptable for a reference
// engine; the scan is deterministic with index-ascending tie-breaks.
func rugeStubenProlongator(a *sparse.CSR, cfg BuildConfig) *sparse.CSR {
	n := a.Rows
	s := strengthGraph(a, cfg)
	st := transposeGraph(s)

	// First-pass splitting. λ_i counts the undecided/fine points that
	// strongly depend on i; picking the max-λ point as coarse makes its
	// dependents fine and boosts their other dependencies.
	lambda := make([]int, n)
	for i := range st {
		lambda[i] = len(st[i])
	}
	state := make([]cfState, n)
	remaining := n

	// Isolated points (no strong connections either way) are fine points
	// with empty interpolation rows; relaxation solves them outright.
	for i := 0; i < n; i++ {
		if len(s[i]) == 0 && len(st[i]) == 0 {
			state[i] = cfFine
			remaining--
		}
	}

	for remaining > 0 {
		best, bestLambda := -1, -1
		for i := 0; i < n; i++ {
			if state[i] == cfUndecided && lambda[i] > bestLambda {
				best, bestLambda = i, lambda[i]
			}
		}
		if best < 0 {
			break
		}
		state[best] = cfCoarse
		remaining--
		for _, f := range st[best] {
			if state[f] != cfUndecided {
				continue
			}
			state[f] = cfFine
			remaining--
			// The new fine point makes its remaining dependencies more
			// attractive coarse candidates.
			for _, c := range s[f] {
				if state[c] == cfUndecided {
					lambda[c]++
				}
			}
		}
		for _, c := range s[best] {
			if state[c] == cfUndecided && lambda[c] > 0 {
				lambda[c]--
			}
		}
	}

	// Coarse-point numbering in ascending fine order keeps P deterministic.
	coarseIndex := make([]int, n)
	nc := 0
	for i := 0; i < n; i++ {
		if state[i] == cfCoarse {
			coarseIndex[i] = nc
			nc++
		} else {
			coarseIndex[i] = -1
		}
	}
	if nc == 0 || nc == n {
		return nil
	}

	return directInterpolation(a, s, state, coarseIndex, nc)
}

// directInterpolation builds P row by row:
//   - coarse point: identity row;
//   - fine point:  w_ij = −α_i·a_ij / a_ii over strong coarse neighbors j,
//     with α_i = (Σ off-diagonal a_ik) / (Σ strong-coarse a_ij) so that row
//     sums of A are reproduced on constants;
//   - fine point with no strong coarse neighbor: empty row (smoother-only).
//
// Rows where |α_i| exceeds alphaCap degrade to empty rows as well: such a
// ratio means the strong coarse couplings carry almost none of the row's
// off-diagonal mass and the resulting oversized weights would destabilize
// the coarse-grid correction on matrices far from the M-matrix ideal.
func directInterpolation(a *sparse.CSR, s [][]int, state []cfState, coarseIndex []int, nc int) *sparse.CSR {
	n := a.Rows
	p := &sparse.CSR{
		Rows:   n,
		Cols:   nc,
		RowPtr: make([]int, n+1),
	}
	isStrong := make([]bool, n)

	for i := 0; i < n; i++ {
		p.RowPtr[i] = len(p.Val)
		if state[i] == cfCoarse {
			p.ColInd = append(p.ColInd, coarseIndex[i])
			p.Val = append(p.Val, 1)
			continue
		}

		for _, j := range s[i] {
			isStrong[j] = true
		}
		var diag, offSum, strongCoarseSum float64
		for q := a.RowPtr[i]; q < a.RowPtr[i+1]; q++ {
			j := a.ColInd[q]
			switch {
			case j == i:
				diag = a.Val[q]
			default:
				offSum += a.Val[q]
				if isStrong[j] && state[j] == cfCoarse {
					strongCoarseSum += a.Val[q]
				}
			}
		}
		if alpha := interpolationScale(offSum, strongCoarseSum, diag); alpha != 0 {
			for q := a.RowPtr[i]; q < a.RowPtr[i+1]; q++ {
				j := a.ColInd[q]
				if j != i && isStrong[j] && state[j] == cfCoarse {
					p.ColInd = append(p.ColInd, coarseIndex[j])
					p.Val = append(p.Val, -alpha*a.Val[q]/diag)
				}
			}
		}
		for _, j := range s[i] {
			isStrong[j] = false
		}
	}
	p.RowPtr[n] = len(p.Val)

	return p
}

// interpolationScale returns the α_i ratio for a fine row, or 0 when the row
// must degrade to an empty interpolation row (no usable strong coarse mass,
// zero diagonal, or a ratio beyond alphaCap).
func interpolationScale(offSum, strongCoarseSum, diag float64) float64 {
	if strongCoarseSum == 0 || diag == 0 {
		return 0
	}
	alpha := offSum / strongCoarseSum
	if alpha > alphaCap || alpha < -alphaCap {
		return 0
	}

	return alpha
}
