// SPDX-License-Identifier: MIT

// Package engine: build-time configuration.
//
// BuildConfig is a plain value; zero fields select documented defaults so
// the zero value is a fully usable configuration. String-valued options are
// validated here at build time — an unsupported value is a construction
// error, never a silent fallback.

package engine

// Recognized Strength values.
const (
	// StrengthClassical keeps connection i→j when −a_ij ≥ θ·max_k(−a_ik).
	StrengthClassical = "classical"

	// StrengthSymmetric keeps connection i→j when |a_ij| ≥ θ·√(a_ii·a_jj).
	StrengthSymmetric = "symmetric"
)

// Recognized smoother names.
const (
	SmootherGaussSeidel = "gauss_seidel"
	SmootherJacobi      = "jacobi"
	SmootherNone        = "none"
)

// Defaults — single source of truth for zero-value BuildConfig behavior.
const (
	DefaultTheta        = 0.25
	DefaultPresmoother  = SmootherGaussSeidel
	DefaultPostsmoother = SmootherGaussSeidel
	DefaultSweeps       = 1
	DefaultJacobiWeight = 2.0 / 3.0
	DefaultMaxLevels    = 10
	DefaultMaxCoarse    = 50
)

// BuildConfig configures hierarchy construction. The Strength default
// depends on the builder: BuildRugeStuben uses StrengthClassical,
// BuildSmoothedAggregation uses StrengthSymmetric.
type BuildConfig struct {
	// Strength selects the strength-of-connection measure.
	Strength string

	// Theta is the strength threshold θ ∈ [0, 1). Zero selects DefaultTheta.
	Theta float64

	// Presmoother and Postsmoother name the relaxation applied before and
	// after the coarse-grid correction on each level.
	Presmoother, Postsmoother string

	// PreSweeps and PostSweeps are the sweep counts per cycle visit.
	// Zero selects DefaultSweeps.
	PreSweeps, PostSweeps int

	// JacobiWeight is the damping ω used by the Jacobi smoother and by the
	// smoothed-aggregation prolongator smoother. Zero selects
	// DefaultJacobiWeight.
	JacobiWeight float64

	// MaxLevels caps the hierarchy depth, counting the finest level.
	MaxLevels int

	// MaxCoarse stops coarsening once a level has at most this many rows;
	// that level is solved directly.
	MaxCoarse int
}

// withDefaults returns a copy with zero fields replaced by the documented
// defaults. strengthDefault is the builder-specific Strength fallback.
func (c BuildConfig) withDefaults(strengthDefault string) BuildConfig {
	if c.Strength == "" {
		c.Strength = strengthDefault
	}
	if c.Theta == 0 {
		c.Theta = DefaultTheta
	}
	if c.Presmoother == "" {
		c.Presmoother = DefaultPresmoother
	}
	if c.Postsmoother == "" {
		c.Postsmoother = DefaultPostsmoother
	}
	if c.PreSweeps == 0 {
		c.PreSweeps = DefaultSweeps
	}
	if c.PostSweeps == 0 {
		c.PostSweeps = DefaultSweeps
	}
	if c.JacobiWeight == 0 {
		c.JacobiWeight = DefaultJacobiWeight
	}
	if c.MaxLevels == 0 {
		c.MaxLevels = DefaultMaxLevels
	}
	if c.MaxCoarse == 0 {
		c.MaxCoarse = DefaultMaxCoarse
	}

	return c
}

// validate rejects unsupported string options. Called after withDefaults.
func (c BuildConfig) validate() error {
	if c.Strength != StrengthClassical && c.Strength != StrengthSymmetric {
		return ErrUnknownStrength
	}
	if _, err := parseSmoother(c.Presmoother); err != nil {
		return err
	}
	if _, err := parseSmoother(c.Postsmoother); err != nil {
		return err
	}

	return nil
}
