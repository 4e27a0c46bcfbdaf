// Package amg wraps an algebraic-multigrid engine behind a small, stable
// solver handle: build a hierarchy once, then solve, re-solve and
// precondition against it.
//
// 🚀 What is amg?
//
//	An adapter between column-oriented sparse problems and a row-oriented
//	AMG engine, bringing together:
//		• Format bridge: validated CSC ingestion, exact CSC↔CSR conversion
//		• Two coarsening variants: classical Ruge–Stüben and smoothed aggregation
//		• Cycle shapes: V, W, F and AMLI
//		• Stationary or Krylov-accelerated solves (CG, GMRES)
//		• A one-cycle Preconditioner view for external iterative methods
//
// ✨ Why choose amg?
//
//   - One handle, many solves – the hierarchy is immutable and reusable
//   - Explicit errors – sentinel values for every rejection, no silent fallback
//   - Pure Go – no cgo, no hidden deps
//   - Composable – the preconditioner plugs into any MatVec/PSolve loop
//
// Under the hood, everything is organized under four subpackages:
//
//	sparse/  — CSC and CSR storage, validation, conversion, products
//	engine/  — strength graphs, coarsening, Galerkin products, cycles
//	krylov/  — preconditioned CG and restarted GMRES drivers
//	linsolve/ — a caching front end for solve-many workflows
//
// Quick example:
//
//	a, _ := sparse.NewCSCFromDense(dense)
//	s, err := amg.NewRugeStuben(a, amg.WithTolerance(1e-8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Free()
//	x, err := s.Solve(b)
//
// Dive into DESIGN.md for the full architecture notes.
package amg
