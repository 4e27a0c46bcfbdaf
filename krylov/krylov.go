// SPDX-License-Identifier: MIT

// Package krylov: shared driver types and defaults.

package krylov

import "errors"

// Default numeric policy. Single source of truth for zero-value Settings.
const (
	// DefaultTolerance is the relative-residual target used when
	// Settings.Tolerance is zero.
	DefaultTolerance = 1e-6

	// DefaultRestart is the GMRES restart length used when Settings.Restart
	// is zero.
	DefaultRestart = 30
)

// ErrIterationLimit is returned when a driver hits its iteration cap before
// reaching the tolerance. The accompanying Result still holds the best
// iterate and the achieved residual.
var ErrIterationLimit = errors.New("krylov: iteration limit reached")

// Matrix describes the forward action of the system operator.
// MatVec must write A·src into dst without retaining either slice.
type Matrix struct {
	MatVec func(dst, src []float64)
}

// Settings configures a driver run.
//
// Zero values select documented defaults: Tolerance → DefaultTolerance,
// MaxIterations → 2·dim, Restart → DefaultRestart. X0 == nil starts from the
// zero vector. PSolve == nil disables preconditioning (identity).
type Settings struct {
	// Tolerance is the relative-residual convergence target.
	Tolerance float64

	// MaxIterations caps the total number of iterations across restarts.
	MaxIterations int

	// Restart is the GMRES restart length. Ignored by CG.
	Restart int

	// X0 is the initial guess; it is not mutated.
	X0 []float64

	// PSolve applies the preconditioner: dst ≈ A⁻¹·rhs. dst and rhs do not
	// alias. A returned error aborts the run.
	PSolve func(dst, rhs []float64) error
}

// Stats reports the work performed by a driver run.
type Stats struct {
	Iterations int
	MatVecs    int
	PSolves    int

	// Residual is the relative residual of the returned iterate.
	Residual float64
}

// Result bundles the final iterate with its run statistics.
type Result struct {
	X     []float64
	Stats Stats
}

// DefaultSettings returns Settings prefilled with the documented defaults.
func DefaultSettings() Settings {
	return Settings{Tolerance: DefaultTolerance, Restart: DefaultRestart}
}

// defaultSettings normalizes zero fields in place for a system of the given
// dimension.
func defaultSettings(s *Settings, dim int) {
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = 2 * dim
	}
	if s.Restart <= 0 {
		s.Restart = DefaultRestart
	}
	if s.Restart > dim {
		s.Restart = dim
	}
}

// validate panics on programmer errors, mirroring the policy that malformed
// driver wiring is not a recoverable runtime condition.
func validate(a Matrix, b []float64, s *Settings) {
	switch {
	case len(b) == 0:
		panic("krylov: zero dimension")
	case a.MatVec == nil:
		panic("krylov: nil matrix-vector multiplication")
	case s.X0 != nil && len(s.X0) != len(b):
		panic("krylov: mismatched length of initial guess")
	}
}

// psolve applies s.PSolve or the identity.
func (s *Settings) psolve(dst, rhs []float64, stats *Stats) error {
	if s.PSolve == nil {
		copy(dst, rhs)
		return nil
	}
	stats.PSolves++

	return s.PSolve(dst, rhs)
}
