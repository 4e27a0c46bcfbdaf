// SPDX-License-Identifier: MIT

// Package krylov: preconditioned conjugate gradients.

package krylov

import "gonum.org/v1/gonum/floats"

// CG solves A·x = b for a symmetric positive-definite operator using the
// preconditioned conjugate-gradient method.
//
// The preconditioner (Settings.PSolve) must itself be symmetric
// positive-definite for the usual convergence theory to hold; a single
// multigrid cycle with symmetric pre/post smoothing qualifies.
//
// Returns ErrIterationLimit with the best iterate when the cap is reached.
//
// Complexity per iteration: one MatVec, one PSolve, O(dim) vector work.
func CG(a Matrix, b []float64, settings Settings) (Result, error) {
	dim := len(b)
	validate(a, b, &settings)
	defaultSettings(&settings, dim)

	var stats Stats

	x := make([]float64, dim)
	r := make([]float64, dim)
	if settings.X0 != nil {
		copy(x, settings.X0)
		a.MatVec(r, x)
		stats.MatVecs++
		floats.AddScaledTo(r, b, -1, r) // r = b - A·x₀
	} else {
		copy(r, b) // x₀ = 0 ⇒ r = b
	}

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		bnorm = 1
	}
	stats.Residual = floats.Norm(r, 2) / bnorm
	if stats.Residual < settings.Tolerance {
		return Result{X: x, Stats: stats}, nil
	}

	z := make([]float64, dim)
	p := make([]float64, dim)
	ap := make([]float64, dim)

	var rho, rhoPrev float64
	for {
		// z = M⁻¹·r
		if err := settings.psolve(z, r, &stats); err != nil {
			return Result{X: x, Stats: stats}, err
		}
		rho = floats.Dot(r, z)
		if stats.Iterations == 0 {
			copy(p, z)
		} else {
			beta := rho / rhoPrev
			floats.AddScaledTo(p, z, beta, p) // p = z + β·p
		}

		a.MatVec(ap, p)
		stats.MatVecs++
		alpha := rho / floats.Dot(p, ap)
		floats.AddScaled(x, alpha, p)   // x += α·p
		floats.AddScaled(r, -alpha, ap) // r -= α·A·p

		stats.Iterations++
		stats.Residual = floats.Norm(r, 2) / bnorm
		if stats.Residual < settings.Tolerance {
			return Result{X: x, Stats: stats}, nil
		}
		if stats.Iterations >= settings.MaxIterations {
			return Result{X: x, Stats: stats}, ErrIterationLimit
		}
		rhoPrev = rho
	}
}
