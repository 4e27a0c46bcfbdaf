// SPDX-License-Identifier: MIT

// Package engine implements the algebraic-multigrid engine behind the amg
// adapter: hierarchy construction, smoothing, cycling and the coarsest-level
// direct solve.
//
// The public surface is deliberately narrow — build, cycle, solve, free —
// so callers treat the hierarchy as an opaque resource:
//
//	h, err := engine.BuildRugeStuben(a, engine.BuildConfig{})
//	x, info, err := engine.Solve(h, b, engine.SolveOpts{Tol: 1e-8})
//	h.Free()
//
// Two hierarchy builders are provided:
//   - BuildRugeStuben — classical strength-of-connection, first-pass
//     Ruge–Stüben C/F splitting and direct interpolation;
//   - BuildSmoothedAggregation — symmetric strength, greedy aggregation and
//     a damped-Jacobi smoothed tentative prolongator.
//
// Both use R = Pᵀ restriction and Galerkin coarse operators Ac = R·A·P,
// recursing until the level is at most MaxCoarse rows, MaxLevels is
// reached, or coarsening stops making progress; the final level is factored
// with a partially-pivoted dense LU.
//
// Thread-safety: a built Hierarchy is immutable. Cycle and Solve allocate
// all scratch per call, so repeated solves against an unmodified hierarchy
// may run concurrently from multiple goroutines. Free is not synchronized
// with in-flight solves; callers must quiesce before freeing.
//
// This is a reference engine tuned for clarity and determinism (fixed loop
// orders, no map iteration, index-ascending tie-breaks), not for peak
// performance on very large grids.
package engine
