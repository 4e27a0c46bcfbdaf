// SPDX-License-Identifier: MIT

// Package engine: the iterative solve driver.

package engine

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/amg/krylov"
)

// Recognized acceleration tags.
const (
	AccelNone  = ""
	AccelCG    = "cg"
	AccelGMRES = "gmres"
)

// Solve-time defaults.
const (
	// DefaultSolveTol is the relative-residual target when SolveOpts.Tol
	// is zero.
	DefaultSolveTol = 1e-5

	// DefaultStationaryMaxIter caps unaccelerated cycle iteration when
	// SolveOpts.MaxIter is zero. Accelerated solves default to 2·dim.
	DefaultStationaryMaxIter = 100
)

// SolveOpts configures one solve. Zero fields select the documented
// defaults.
type SolveOpts struct {
	// Tol is the relative-residual convergence target.
	Tol float64

	// MaxIter caps the iteration count (cycles, or Krylov iterations when
	// accelerated).
	MaxIter int

	// Cycle selects the multigrid cycle shape.
	Cycle CycleKind

	// Accel optionally wraps the cycle in a Krylov method: AccelNone,
	// AccelCG or AccelGMRES.
	Accel string
}

// Info reports the outcome of a solve.
type Info struct {
	// Iterations is the number of cycles or Krylov iterations performed.
	Iterations int

	// Residual is the relative residual ‖b − A·x‖₂/‖b‖₂ of the returned
	// iterate.
	Residual float64

	// Converged reports whether Residual met the tolerance. A false value
	// is a shortfall, not an error: x is the best iterate reached.
	Converged bool
}

// Solve runs the hierarchy as an iterative method on A·x = b from a zero
// initial guess and returns the solution iterate.
//
// Without acceleration each iteration is one cycle followed by a residual
// check. With Accel = "cg" or "gmres" the cycle becomes the preconditioner
// of the named Krylov method.
//
// Convergence shortfall is advisory (Info.Converged == false, no error);
// unknown option values and freed hierarchies are errors.
func Solve(h *Hierarchy, b []float64, opts SolveOpts) ([]float64, Info, error) {
	if h.freed {
		return nil, Info{}, ErrFreed
	}
	n := h.Dim()
	if len(b) != n {
		return nil, Info{}, ErrDimensionMismatch
	}
	if opts.Tol == 0 {
		opts.Tol = DefaultSolveTol
	}
	if opts.Cycle > AMLI {
		return nil, Info{}, ErrUnknownCycle
	}

	switch opts.Accel {
	case AccelNone:
		return stationary(h, b, opts)
	case AccelCG, AccelGMRES:
		return accelerated(h, b, opts)
	default:
		return nil, Info{}, ErrUnknownAccel
	}
}

// stationary iterates x ← x + cycle(b − A·x) until the tolerance or the
// iteration cap. The best iterate seen is returned, so a non-monotone tail
// cannot degrade the result.
func stationary(h *Hierarchy, b []float64, opts SolveOpts) ([]float64, Info, error) {
	n := h.Dim()
	maxIter := opts.MaxIter
	if maxIter == 0 {
		maxIter = DefaultStationaryMaxIter
	}

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		bnorm = 1
	}

	x := make([]float64, n)
	best := make([]float64, n)
	r := make([]float64, n)
	fine := h.finest()

	info := Info{Residual: 1} // x₀ = 0 ⇒ ‖b − A·x‖ = ‖b‖
	bestResidual := info.Residual
	if bestResidual < opts.Tol {
		info.Converged = true
		return x, info, nil
	}

	for info.Iterations < maxIter {
		h.cycle(opts.Cycle, 0, x, b)
		info.Iterations++

		_ = fine.MulVec(r, x)
		floats.AddScaledTo(r, b, -1, r)
		info.Residual = floats.Norm(r, 2) / bnorm
		if info.Residual < bestResidual {
			bestResidual = info.Residual
			copy(best, x)
		}
		if info.Residual < opts.Tol {
			info.Converged = true
			return x, info, nil
		}
	}
	info.Residual = bestResidual

	return best, info, nil
}

// accelerated wraps one cycle per application as the preconditioner of the
// selected Krylov driver.
func accelerated(h *Hierarchy, b []float64, opts SolveOpts) ([]float64, Info, error) {
	settings := krylov.Settings{
		Tolerance:     opts.Tol,
		MaxIterations: opts.MaxIter,
		PSolve: func(dst, rhs []float64) error {
			for i := range dst {
				dst[i] = 0
			}
			h.cycle(opts.Cycle, 0, dst, rhs)
			return nil
		},
	}
	op := krylov.Matrix{MatVec: func(dst, src []float64) {
		_ = h.finest().MulVec(dst, src)
	}}

	var (
		res krylov.Result
		err error
	)
	if opts.Accel == AccelCG {
		res, err = krylov.CG(op, b, settings)
	} else {
		res, err = krylov.GMRES(op, b, settings)
	}
	info := Info{
		Iterations: res.Stats.Iterations,
		Residual:   res.Stats.Residual,
		Converged:  err == nil && res.Stats.Residual < opts.Tol,
	}
	if err != nil && !errors.Is(err, krylov.ErrIterationLimit) {
		return res.X, info, err
	}

	// Iteration-limit shortfall is advisory, like the stationary path.
	return res.X, info, nil
}
