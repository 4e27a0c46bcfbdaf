// SPDX-License-Identifier: MIT

package amg

import "github.com/katalvlaran/amg/engine"

// Adapter-level solve defaults. Construction defaults live in
// engine.BuildConfig.
const (
	// DefaultTolerance is the relative-residual target used when no
	// tolerance option is given.
	DefaultTolerance = 1e-5

	// DefaultCycle is the cycle shape used when no cycle option is given.
	DefaultCycle = "V"
)

// SolveConfig is the solve-scope half of the option surface: the knobs
// that may change between solves against one hierarchy. Zero fields mean
// "inherit" — from the handle's stored defaults at solve time, and from
// the package defaults at construction time.
type SolveConfig struct {
	// Tol is the relative-residual convergence target.
	Tol float64

	// MaxIter caps the iteration count. Zero selects the engine default.
	MaxIter int

	// Cycle names the multigrid cycle shape: "V", "W", "F" or "AMLI".
	Cycle string

	// Accel optionally names a Krylov accelerator: "cg" or "gmres".
	Accel string
}

// Options is the full configuration bag: construction-scope engine knobs
// plus solve-scope defaults. One option surface serves both constructors
// and Solve; options outside the call's scope are inert (a build option
// passed to Solve changes nothing — the hierarchy is already built).
type Options struct {
	Build engine.BuildConfig
	Solve SolveConfig
}

// Option is a functional option for constructors, Solve, SolveInto and
// Preconditioner.
type Option func(*Options)

// WithStrength selects the strength-of-connection measure
// (engine.StrengthClassical or engine.StrengthSymmetric). Construction scope.
func WithStrength(strength string) Option {
	return func(o *Options) { o.Build.Strength = strength }
}

// WithTheta sets the strength threshold θ ∈ [0, 1). Construction scope.
func WithTheta(theta float64) Option {
	return func(o *Options) { o.Build.Theta = theta }
}

// WithPresmoother names the relaxation applied before each coarse
// correction. Construction scope.
func WithPresmoother(name string) Option {
	return func(o *Options) { o.Build.Presmoother = name }
}

// WithPostsmoother names the relaxation applied after each coarse
// correction. Construction scope.
func WithPostsmoother(name string) Option {
	return func(o *Options) { o.Build.Postsmoother = name }
}

// WithSweeps sets the pre- and post-smoothing sweep counts per cycle
// visit. Construction scope.
func WithSweeps(pre, post int) Option {
	return func(o *Options) {
		o.Build.PreSweeps = pre
		o.Build.PostSweeps = post
	}
}

// WithJacobiWeight sets the damping ω for the Jacobi smoother and the
// smoothed-aggregation prolongator. Construction scope.
func WithJacobiWeight(omega float64) Option {
	return func(o *Options) { o.Build.JacobiWeight = omega }
}

// WithMaxLevels caps the hierarchy depth. Construction scope.
func WithMaxLevels(n int) Option {
	return func(o *Options) { o.Build.MaxLevels = n }
}

// WithMaxCoarse sets the direct-solve threshold: coarsening stops once a
// level has at most n rows. Construction scope.
func WithMaxCoarse(n int) Option {
	return func(o *Options) { o.Build.MaxCoarse = n }
}

// WithTolerance sets the relative-residual convergence target. Solve
// scope; at construction it seeds the handle's default.
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.Solve.Tol = tol }
}

// WithMaxIter caps the solve iteration count. Solve scope.
func WithMaxIter(n int) Option {
	return func(o *Options) { o.Solve.MaxIter = n }
}

// WithCycle names the cycle shape: "V", "W", "F" or "AMLI". Solve scope.
func WithCycle(name string) Option {
	return func(o *Options) { o.Solve.Cycle = name }
}

// WithAccel names a Krylov accelerator for the solve: "cg" or "gmres".
// The cycle then runs once per Krylov iteration as the preconditioner.
// Solve scope.
func WithAccel(name string) Option {
	return func(o *Options) { o.Solve.Accel = name }
}

// defaultOptions seeds the bag with the adapter's solve defaults; the
// engine supplies its own construction defaults for zero Build fields.
func defaultOptions() Options {
	return Options{Solve: SolveConfig{Tol: DefaultTolerance, Cycle: DefaultCycle}}
}
