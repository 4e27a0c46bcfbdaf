// SPDX-License-Identifier: MIT

// Package krylov implements Krylov-subspace drivers for large sparse linear
// systems: preconditioned conjugate gradients (CG) and restarted GMRES.
//
// The package is deliberately matrix-free. A system is described by the
// capability pair an outer iterative method needs:
//   - Matrix.MatVec — the forward action y = A·x of the true operator;
//   - Settings.PSolve — an approximate inverse z ≈ A⁻¹·r (the
//     preconditioner application). A nil PSolve means the identity.
//
// Any operator exposing those two callables composes with these drivers; in
// this module the amg.Preconditioner is the usual supplier, but nothing here
// depends on it.
//
// Convergence is measured as ‖b − A·x‖₂ / ‖b‖₂. On reaching the iteration
// cap the drivers return ErrIterationLimit together with the best iterate
// reached, so callers can decide whether a shortfall is fatal.
package krylov
