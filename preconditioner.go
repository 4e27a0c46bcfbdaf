// SPDX-License-Identifier: MIT

package amg

import (
	"fmt"

	"github.com/katalvlaran/amg/engine"
)

// Preconditioner is a non-owning view over a solver's hierarchy that
// exposes the two operations an external iterative method needs: one
// multigrid cycle as the approximate inverse, and the original matrix as
// the forward map. It holds no per-call state, so one value may serve
// concurrent solves.
//
// The view shares the solver's lifetime: after Solver.Free both methods
// return ErrFreed.
type Preconditioner struct {
	s     *Solver
	cycle engine.CycleKind
	err   error // deferred creation error, surfaced by Apply
}

// Preconditioner returns a preconditioner view over the hierarchy. The
// cycle shape is resolved from the given solve-scope options over the
// stored defaults at creation; an unknown cycle name surfaces from the
// first Apply.
func (s *Solver) Preconditioner(opts ...Option) *Preconditioner {
	cfg := s.merged(opts)
	kind, err := engine.ParseCycle(cfg.Cycle)
	if err != nil {
		err = fmt.Errorf("%w: cycle %q: %w", ErrSolve, cfg.Cycle, err)
	}

	return &Preconditioner{s: s, cycle: kind, err: err}
}

// Apply computes dst ≈ A⁻¹·rhs by running exactly one cycle from a zero
// initial guess. No convergence loop, no tolerance check — this is the
// M⁻¹ application a Krylov method expects.
func (m *Preconditioner) Apply(dst, rhs []float64) error {
	if m.err != nil {
		return m.err
	}
	if m.s.freed {
		return ErrFreed
	}
	if len(dst) != m.s.Dim() || len(rhs) != m.s.Dim() {
		return ErrDimensionMismatch
	}
	for i := range dst {
		dst[i] = 0
	}

	return m.s.h.Cycle(m.cycle, dst, rhs)
}

// MulVec computes dst = A·x with the original matrix, so the view carries
// both sides of the preconditioned operator pair.
func (m *Preconditioner) MulVec(dst, x []float64) error {
	return m.s.MulVec(dst, x)
}
