// SPDX-License-Identifier: MIT

// Package engine: strength-of-connection graphs.
//
// A strength graph keeps, per row, the column indices of connections that
// matter for coarsening. It is stored as plain per-row index slices (always
// ascending, diagonal excluded) rather than a CSR matrix: only the pattern
// is consumed downstream.

package engine

import (
	"math"

	"github.com/katalvlaran/amg/sparse"
)

// strengthGraph builds the strong-connection lists of a under the
// configured measure.
//
// Complexity: O(nnz).
func strengthGraph(a *sparse.CSR, cfg BuildConfig) [][]int {
	switch cfg.Strength {
	case StrengthSymmetric:
		return symmetricStrength(a, cfg.Theta)
	default:
		return classicalStrength(a, cfg.Theta)
	}
}

// classicalStrength keeps i→j when −a_ij ≥ θ·max_{k≠i}(−a_ik).
// Positive off-diagonal entries never qualify, matching the classical
// M-matrix heuristic.
func classicalStrength(a *sparse.CSR, theta float64) [][]int {
	s := make([][]int, a.Rows)
	for i := 0; i < a.Rows; i++ {
		var maxNeg float64
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			if a.ColInd[p] != i && -a.Val[p] > maxNeg {
				maxNeg = -a.Val[p]
			}
		}
		if maxNeg == 0 {
			continue // no negative off-diagonals: isolated row
		}
		threshold := theta * maxNeg
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			if j := a.ColInd[p]; j != i && -a.Val[p] >= threshold {
				s[i] = append(s[i], j)
			}
		}
	}

	return s
}

// symmetricStrength keeps i→j when |a_ij| ≥ θ·√(|a_ii·a_jj|), the usual
// measure for smoothed aggregation.
func symmetricStrength(a *sparse.CSR, theta float64) [][]int {
	diag := a.Diag()
	s := make([][]int, a.Rows)
	for i := 0; i < a.Rows; i++ {
		di := math.Abs(diag[i])
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			j := a.ColInd[p]
			if j == i {
				continue
			}
			if math.Abs(a.Val[p]) >= theta*math.Sqrt(di*math.Abs(diag[j])) &&
				a.Val[p] != 0 {
				s[i] = append(s[i], j)
			}
		}
	}

	return s
}

// transposeGraph returns the reverse adjacency of s: out[j] lists the rows i
// with j ∈ s[i]. Row order is preserved, so lists stay ascending.
func transposeGraph(s [][]int) [][]int {
	out := make([][]int, len(s))
	for i, row := range s {
		for _, j := range row {
			out[j] = append(out[j], i)
		}
	}

	return out
}
