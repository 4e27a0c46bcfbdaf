// SPDX-License-Identifier: MIT

// Package engine: pointwise relaxation kernels.
//
// Gauss–Seidel sweeps update in place in a fixed row order; the forward
// direction is used before the coarse-grid correction and the backward
// direction after it, which keeps a V-cycle with R = Pᵀ symmetric — a
// requirement for use as a CG preconditioner. Rows with a zero diagonal are
// skipped: their unknowns are carried by the coarse-grid correction.

package engine

type smootherKind uint8

const (
	smNone smootherKind = iota
	smGaussSeidel
	smJacobi
)

// parseSmoother maps a configuration name to its kind.
func parseSmoother(name string) (smootherKind, error) {
	switch name {
	case SmootherNone:
		return smNone, nil
	case SmootherGaussSeidel:
		return smGaussSeidel, nil
	case SmootherJacobi:
		return smJacobi, nil
	default:
		return smNone, ErrUnknownSmoother
	}
}

// presmooth runs the level's pre-relaxation on x (in place).
func (l *level) presmooth(h *Hierarchy, x, b, scratch []float64) {
	switch h.pre {
	case smGaussSeidel:
		gaussSeidel(l, x, b, h.cfg.PreSweeps, false)
	case smJacobi:
		jacobi(l, x, b, scratch, h.cfg.PreSweeps, h.cfg.JacobiWeight)
	case smNone:
	}
}

// postsmooth runs the level's post-relaxation on x (in place).
func (l *level) postsmooth(h *Hierarchy, x, b, scratch []float64) {
	switch h.post {
	case smGaussSeidel:
		gaussSeidel(l, x, b, h.cfg.PostSweeps, true)
	case smJacobi:
		jacobi(l, x, b, scratch, h.cfg.PostSweeps, h.cfg.JacobiWeight)
	case smNone:
	}
}

// gaussSeidel performs sweeps of Gauss–Seidel relaxation on A·x = b.
// backward selects the reverse row order.
//
// Complexity per sweep: O(nnz).
func gaussSeidel(l *level, x, b []float64, sweeps int, backward bool) {
	a := l.a
	for s := 0; s < sweeps; s++ {
		if backward {
			for i := a.Rows - 1; i >= 0; i-- {
				gsRow(l, x, b, i)
			}
		} else {
			for i := 0; i < a.Rows; i++ {
				gsRow(l, x, b, i)
			}
		}
	}
}

func gsRow(l *level, x, b []float64, i int) {
	d := l.diag[i]
	if d == 0 {
		return
	}
	a := l.a
	s := b[i]
	for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
		if j := a.ColInd[p]; j != i {
			s -= a.Val[p] * x[j]
		}
	}
	x[i] = s / d
}

// jacobi performs sweeps of weighted-Jacobi relaxation on A·x = b,
// x ← x + ω·D⁻¹·(b − A·x), using scratch (len = rows) for the residual.
//
// Complexity per sweep: O(nnz).
func jacobi(l *level, x, b, scratch []float64, sweeps int, weight float64) {
	a := l.a
	for s := 0; s < sweeps; s++ {
		for i := 0; i < a.Rows; i++ {
			r := b[i]
			for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
				r -= a.Val[p] * x[a.ColInd[p]]
			}
			scratch[i] = r
		}
		for i := 0; i < a.Rows; i++ {
			if d := l.diag[i]; d != 0 {
				x[i] += weight * scratch[i] / d
			}
		}
	}
}
