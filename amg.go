// SPDX-License-Identifier: MIT

package amg

import (
	"fmt"

	"github.com/katalvlaran/amg/engine"
	"github.com/katalvlaran/amg/sparse"
)

// Kind is the closed set of supported multigrid variants. Each value maps
// to exactly one engine entry point; there is no generic "method name"
// string at this boundary.
type Kind uint8

const (
	// RugeStuben selects classical Ruge–Stüben coarsening with direct
	// interpolation.
	RugeStuben Kind = iota

	// SmoothedAggregation selects greedy aggregation with a damped-Jacobi
	// smoothed prolongator.
	SmoothedAggregation
)

// String returns the conventional method name.
func (k Kind) String() string {
	switch k {
	case RugeStuben:
		return "RugeStuben"
	case SmoothedAggregation:
		return "SmoothedAggregation"
	default:
		return "unknown"
	}
}

// Solver owns one built hierarchy and the matrix it was built from. It is
// safe for concurrent Solve and Preconditioner use; Free is not
// synchronized with in-flight calls.
type Solver struct {
	kind     Kind
	csc      *sparse.CSC // caller's matrix, retained for provenance
	csr      *sparse.CSR // row-oriented bridge, used for forward products
	h        *engine.Hierarchy
	defaults SolveConfig
	freed    bool
}

// NewRugeStuben builds a classical Ruge–Stüben hierarchy for a and returns
// a reusable solver handle.
//
// a must be non-nil, well-formed and square; it is validated before any
// engine work. The handle retains a — do not mutate it while the handle
// lives. Construction-scope options configure the engine build; solve-scope
// options seed the handle's per-solve defaults.
func NewRugeStuben(a *sparse.CSC, opts ...Option) (*Solver, error) {
	return newSolver(a, RugeStuben, opts)
}

// NewSmoothedAggregation builds a smoothed-aggregation hierarchy for a and
// returns a reusable solver handle. Validation and option scoping follow
// NewRugeStuben.
func NewSmoothedAggregation(a *sparse.CSC, opts ...Option) (*Solver, error) {
	return newSolver(a, SmoothedAggregation, opts)
}

func newSolver(a *sparse.CSC, kind Kind, opts []Option) (*Solver, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("amg: invalid matrix: %w", err)
	}
	if !a.IsSquare() {
		return nil, fmt.Errorf("%w: %d×%d", ErrNonSquare, a.Rows, a.Cols)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	// Fail fast on an unusable stored default instead of at first Solve.
	if _, err := engine.ParseCycle(o.Solve.Cycle); err != nil {
		return nil, fmt.Errorf("%w: cycle %q: %w", ErrConstruction, o.Solve.Cycle, err)
	}

	csr := sparse.ToCSR(a)

	var (
		h   *engine.Hierarchy
		err error
	)
	switch kind {
	case RugeStuben:
		h, err = engine.BuildRugeStuben(csr, o.Build)
	case SmoothedAggregation:
		h, err = engine.BuildSmoothedAggregation(csr, o.Build)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrConstruction, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}

	return &Solver{kind: kind, csc: a, csr: csr, h: h, defaults: o.Solve}, nil
}

// Kind returns the multigrid variant this handle was built with.
func (s *Solver) Kind() Kind { return s.kind }

// Dim returns the problem dimension, or 0 after Free.
func (s *Solver) Dim() int {
	if s.freed {
		return 0
	}

	return s.csr.Rows
}

// Levels returns the number of grids in the hierarchy, or 0 after Free.
func (s *Solver) Levels() int {
	if s.freed {
		return 0
	}

	return s.h.Levels()
}

// Matrix returns the matrix the handle was built from.
func (s *Solver) Matrix() *sparse.CSC { return s.csc }

// Defaults returns the stored per-solve defaults.
func (s *Solver) Defaults() SolveConfig { return s.defaults }

// Solve runs the hierarchy on A·x = b and returns the solution iterate.
// Per-call solve-scope options override the stored defaults key by key;
// unset keys inherit. On convergence shortfall the best iterate reached is
// returned without error — use SolveInto to inspect the achieved residual.
func (s *Solver) Solve(b []float64, opts ...Option) ([]float64, error) {
	x, _, err := s.solve(b, opts)

	return x, err
}

// SolveInto solves A·x = b into a caller-owned buffer and reports the
// iteration count, achieved residual and convergence flag. The buffer is
// checked before any work starts.
func (s *Solver) SolveInto(dst, b []float64, opts ...Option) (engine.Info, error) {
	if s == nil {
		return engine.Info{}, ErrNilSolver
	}
	if s.freed {
		return engine.Info{}, ErrFreed
	}
	if len(dst) != s.Dim() {
		return engine.Info{}, fmt.Errorf("%w: len(dst)=%d, dim=%d", ErrDimensionMismatch, len(dst), s.Dim())
	}

	x, info, err := s.solve(b, opts)
	if err != nil {
		return info, err
	}
	copy(dst, x)

	return info, nil
}

func (s *Solver) solve(b []float64, opts []Option) ([]float64, engine.Info, error) {
	if s == nil {
		return nil, engine.Info{}, ErrNilSolver
	}
	if s.freed {
		return nil, engine.Info{}, ErrFreed
	}
	if len(b) != s.Dim() {
		return nil, engine.Info{}, fmt.Errorf("%w: len(b)=%d, dim=%d", ErrDimensionMismatch, len(b), s.Dim())
	}

	cfg := s.merged(opts)
	kind, err := engine.ParseCycle(cfg.Cycle)
	if err != nil {
		return nil, engine.Info{}, fmt.Errorf("%w: cycle %q: %w", ErrSolve, cfg.Cycle, err)
	}

	x, info, err := engine.Solve(s.h, b, engine.SolveOpts{
		Tol:     cfg.Tol,
		MaxIter: cfg.MaxIter,
		Cycle:   kind,
		Accel:   cfg.Accel,
	})
	if err != nil {
		return nil, info, fmt.Errorf("%w: %w", ErrSolve, err)
	}

	return x, info, nil
}

// merged overlays per-call options on the stored defaults. Build-scope
// options are inert here: the hierarchy is already built.
func (s *Solver) merged(opts []Option) SolveConfig {
	o := Options{Solve: s.defaults}
	for _, opt := range opts {
		opt(&o)
	}
	c := o.Solve
	if c.Tol == 0 {
		c.Tol = DefaultTolerance
	}
	if c.Cycle == "" {
		c.Cycle = DefaultCycle
	}

	return c
}

// MulVec computes dst = A·x with the original matrix. Operator sugar for
// hosts that treat the handle as a linear map.
func (s *Solver) MulVec(dst, x []float64) error {
	if s.freed {
		return ErrFreed
	}
	if len(dst) != s.Dim() || len(x) != s.Dim() {
		return ErrDimensionMismatch
	}

	return s.csr.MulVec(dst, x)
}

// Free releases the hierarchy. Idempotent; subsequent Solve, MulVec and
// preconditioner calls return ErrFreed.
func (s *Solver) Free() {
	if s.freed {
		return
	}
	s.h.Free()
	s.freed = true
}
