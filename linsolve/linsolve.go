// SPDX-License-Identifier: MIT

package linsolve

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/amg"
	"github.com/katalvlaran/amg/logger"
	"github.com/katalvlaran/amg/sparse"
)

// Sentinel errors returned by the cache.
var (
	// ErrNilMatrix indicates a nil matrix passed to New or SetMatrix.
	ErrNilMatrix = errors.New("linsolve: matrix is nil")

	// ErrClosed indicates use of a cache after Close.
	ErrClosed = errors.New("linsolve: cache closed")
)

// Status classifies the outcome of one cached solve.
type Status uint8

const (
	// StatusSuccess: the achieved residual met the tolerance.
	StatusSuccess Status = iota

	// StatusMaxIterations: the iteration cap was reached with the residual
	// still above tolerance. The destination holds the best iterate.
	StatusMaxIterations

	// StatusFailure: the engine rejected the hierarchy build or the solve.
	StatusFailure
)

// String returns the conventional status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusMaxIterations:
		return "max_iterations"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result reports one solve: its status, the iterations spent and the
// relative residual of the returned iterate.
type Result struct {
	Status     Status
	Iterations int
	Residual   float64
}

// Option configures a Cache at construction.
type Option func(*Cache)

// WithKindOptions forwards options to the underlying solver constructor:
// construction-scope options shape every rebuild, solve-scope options
// seed the handle defaults.
func WithKindOptions(opts ...amg.Option) Option {
	return func(c *Cache) { c.handleOpts = append(c.handleOpts, opts...) }
}

// WithTolerance sets the relative-residual target applied to every Solve.
func WithTolerance(tol float64) Option {
	return func(c *Cache) { c.tol = tol }
}

// WithMaxIterations caps the iteration count of every Solve.
func WithMaxIterations(n int) Option {
	return func(c *Cache) { c.maxIter = n }
}

// WithVerbose emits a log event per hierarchy build and per solve.
func WithVerbose() Option {
	return func(c *Cache) { c.verbose = true }
}

// Cache holds one problem matrix and the multigrid hierarchy built for
// it. The hierarchy is built lazily on the first Solve after New or
// SetMatrix and reused until the matrix changes again.
//
// Cache is not safe for concurrent use: staleness tracking and rebuilds
// are unsynchronized.
type Cache struct {
	kind       amg.Kind
	handleOpts []amg.Option
	tol        float64
	maxIter    int
	verbose    bool

	a      *sparse.CSC
	solver *amg.Solver
	stale  bool
	closed bool
}

// New creates a cache for a and the given variant. The matrix is recorded,
// not built: the first Solve pays for the hierarchy.
func New(a *sparse.CSC, kind amg.Kind, opts ...Option) (*Cache, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	c := &Cache{kind: kind, a: a, stale: true}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetMatrix replaces the problem matrix and marks the cache stale. The
// old hierarchy stays valid until the next Solve triggers the rebuild.
func (c *Cache) SetMatrix(a *sparse.CSC) error {
	if c.closed {
		return ErrClosed
	}
	if a == nil {
		return ErrNilMatrix
	}
	c.a = a
	c.stale = true

	return nil
}

// init rebuilds the solver handle when the cache is stale.
func (c *Cache) init() error {
	if !c.stale && c.solver != nil {
		return nil
	}
	if c.solver != nil {
		c.solver.Free()
		c.solver = nil
	}

	var (
		s   *amg.Solver
		err error
	)
	switch c.kind {
	case amg.SmoothedAggregation:
		s, err = amg.NewSmoothedAggregation(c.a, c.handleOpts...)
	default:
		s, err = amg.NewRugeStuben(c.a, c.handleOpts...)
	}
	if err != nil {
		return err
	}
	c.solver = s
	c.stale = false

	if c.verbose {
		log := logger.Logger()
		log.Info().
			Str("kind", c.kind.String()).
			Int("dim", s.Dim()).
			Int("levels", s.Levels()).
			Msg("hierarchy rebuilt")
	}

	return nil
}

// Solve solves A·x = b into dst, rebuilding the hierarchy first if the
// matrix changed. The status is derived from the achieved residual: a
// capped solve that missed the tolerance reports StatusMaxIterations with
// the best iterate in dst, not success and not an error.
func (c *Cache) Solve(dst, b []float64) (Result, error) {
	if c.closed {
		return Result{Status: StatusFailure}, ErrClosed
	}
	if err := c.init(); err != nil {
		return Result{Status: StatusFailure}, fmt.Errorf("linsolve: rebuild: %w", err)
	}

	var opts []amg.Option
	if c.tol != 0 {
		opts = append(opts, amg.WithTolerance(c.tol))
	}
	if c.maxIter != 0 {
		opts = append(opts, amg.WithMaxIter(c.maxIter))
	}

	info, err := c.solver.SolveInto(dst, b, opts...)
	if err != nil {
		return Result{Status: StatusFailure}, fmt.Errorf("linsolve: %w", err)
	}

	res := Result{Status: StatusSuccess, Iterations: info.Iterations, Residual: info.Residual}
	if !info.Converged {
		res.Status = StatusMaxIterations
	}
	if c.verbose {
		log := logger.Logger()
		log.Info().
			Str("status", res.Status.String()).
			Int("iterations", res.Iterations).
			Float64("residual", res.Residual).
			Msg("solve finished")
	}

	return res, nil
}

// Solver exposes the cached handle, building it if needed. Useful for
// preconditioner views over the cached hierarchy.
func (c *Cache) Solver() (*amg.Solver, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if err := c.init(); err != nil {
		return nil, fmt.Errorf("linsolve: rebuild: %w", err)
	}

	return c.solver, nil
}

// Close releases the cached hierarchy. Idempotent; subsequent calls
// return ErrClosed.
func (c *Cache) Close() {
	if c.closed {
		return
	}
	if c.solver != nil {
		c.solver.Free()
		c.solver = nil
	}
	c.closed = true
}
