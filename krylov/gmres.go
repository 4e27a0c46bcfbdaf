// SPDX-License-Identifier: MIT

// Package krylov: restarted GMRES with left preconditioning.

package krylov

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GMRES solves A·x = b using restarted GMRES(m) with left preconditioning
// and modified Gram–Schmidt orthogonalization. The operator need not be
// symmetric.
//
// Inside a restart cycle convergence is estimated from the Givens-rotated
// residual of the preconditioned system; the true relative residual
// ‖b − A·x‖/‖b‖ is recomputed at every restart boundary and decides
// termination, so the estimate never reports false convergence on exit.
//
// Returns ErrIterationLimit with the best iterate when the cap is reached.
//
// Complexity per iteration: one MatVec, one PSolve, O(m·dim) vector work.
func GMRES(a Matrix, b []float64, settings Settings) (Result, error) {
	dim := len(b)
	validate(a, b, &settings)
	defaultSettings(&settings, dim)

	var stats Stats
	m := settings.Restart

	x := make([]float64, dim)
	if settings.X0 != nil {
		copy(x, settings.X0)
	}

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		bnorm = 1
	}

	r := make([]float64, dim)
	z := make([]float64, dim)
	w := make([]float64, dim)
	wz := make([]float64, dim)

	// Krylov basis and Hessenberg column-major storage for one cycle.
	v := make([][]float64, m+1)
	for i := range v {
		v[i] = make([]float64, dim)
	}
	h := make([][]float64, m+1)
	for i := range h {
		h[i] = make([]float64, m)
	}
	cs := make([]float64, m)
	sn := make([]float64, m)
	g := make([]float64, m+1)
	y := make([]float64, m)

	for {
		// True residual of the unpreconditioned system.
		a.MatVec(r, x)
		stats.MatVecs++
		floats.AddScaledTo(r, b, -1, r) // r = b - A·x
		stats.Residual = floats.Norm(r, 2) / bnorm
		if stats.Residual < settings.Tolerance {
			return Result{X: x, Stats: stats}, nil
		}
		if stats.Iterations >= settings.MaxIterations {
			return Result{X: x, Stats: stats}, ErrIterationLimit
		}

		// Preconditioned residual seeds the Krylov basis.
		if err := settings.psolve(z, r, &stats); err != nil {
			return Result{X: x, Stats: stats}, err
		}
		beta := floats.Norm(z, 2)
		if beta == 0 {
			// Preconditioner annihilated the residual estimate; the true
			// residual above is the best information available.
			return Result{X: x, Stats: stats}, nil
		}
		floats.ScaleTo(v[0], 1/beta, z)
		for i := range g {
			g[i] = 0
		}
		g[0] = beta

		// Arnoldi process with on-the-fly Givens rotations.
		var k int
		for k = 0; k < m; k++ {
			a.MatVec(w, v[k])
			stats.MatVecs++
			if err := settings.psolve(wz, w, &stats); err != nil {
				return Result{X: x, Stats: stats}, err
			}
			for i := 0; i <= k; i++ {
				h[i][k] = floats.Dot(wz, v[i])
				floats.AddScaled(wz, -h[i][k], v[i])
			}
			normw := floats.Norm(wz, 2)
			h[k+1][k] = normw

			// Rotate the new column by the accumulated rotations.
			for i := 0; i < k; i++ {
				t := cs[i]*h[i][k] + sn[i]*h[i+1][k]
				h[i+1][k] = -sn[i]*h[i][k] + cs[i]*h[i+1][k]
				h[i][k] = t
			}
			cs[k], sn[k] = givens(h[k][k], h[k+1][k])
			h[k][k] = cs[k]*h[k][k] + sn[k]*h[k+1][k]
			h[k+1][k] = 0
			g[k+1] = -sn[k] * g[k]
			g[k] *= cs[k]

			stats.Iterations++

			est := math.Abs(g[k+1]) / bnorm
			if est < settings.Tolerance || normw == 0 ||
				stats.Iterations >= settings.MaxIterations {
				// Converged estimate, lucky breakdown, or cap: leave the
				// cycle and form the update from the k+1 basis vectors.
				k++
				break
			}
			floats.ScaleTo(v[k+1], 1/normw, wz)
		}

		// Back-substitute H·y = g on the k×k leading block, then update x.
		for i := k - 1; i >= 0; i-- {
			y[i] = g[i]
			for j := i + 1; j < k; j++ {
				y[i] -= h[i][j] * y[j]
			}
			y[i] /= h[i][i]
		}
		for i := 0; i < k; i++ {
			floats.AddScaled(x, y[i], v[i])
		}
	}
}

// givens returns the rotation (c, s) zeroing b in (a, b).
func givens(a, b float64) (c, s float64) {
	if b == 0 {
		return 1, 0
	}
	r := math.Hypot(a, b)

	return a / r, b / r
}
