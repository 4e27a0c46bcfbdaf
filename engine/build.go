// SPDX-License-Identifier: MIT

// Package engine: hierarchy builders.

package engine

import (
	"fmt"

	"github.com/katalvlaran/amg/logger"
	"github.com/katalvlaran/amg/sparse"
)

// prolongatorFunc computes the interpolation operator for one coarsening
// step, or nil when coarsening makes no further progress.
type prolongatorFunc func(a *sparse.CSR, cfg BuildConfig) *sparse.CSR

// BuildRugeStuben constructs a hierarchy with classical Ruge–Stüben
// coarsening and direct interpolation. Zero cfg fields select the
// documented defaults; cfg.Strength defaults to StrengthClassical.
//
// The returned hierarchy retains a reference to a; a must not be mutated
// for the hierarchy's lifetime.
func BuildRugeStuben(a *sparse.CSR, cfg BuildConfig) (*Hierarchy, error) {
	return build(a, cfg.withDefaults(StrengthClassical), "ruge_stuben", rugeStubenProlongator)
}

// BuildSmoothedAggregation constructs a hierarchy with greedy aggregation
// and a damped-Jacobi smoothed tentative prolongator. Zero cfg fields
// select the documented defaults; cfg.Strength defaults to
// StrengthSymmetric.
func BuildSmoothedAggregation(a *sparse.CSR, cfg BuildConfig) (*Hierarchy, error) {
	return build(a, cfg.withDefaults(StrengthSymmetric), "smoothed_aggregation", smoothedAggregationProlongator)
}

func build(a *sparse.CSR, cfg BuildConfig, method string, prolongator prolongatorFunc) (*Hierarchy, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatrix, err)
	}
	if !a.IsSquare() {
		return nil, ErrNonSquare
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	for i, d := range a.Diag() {
		if d == 0 {
			return nil, fmt.Errorf("engine: row %d: %w", i, ErrZeroDiagonal)
		}
	}

	h := &Hierarchy{cfg: cfg, fineA: a}
	h.pre, _ = parseSmoother(cfg.Presmoother)
	h.post, _ = parseSmoother(cfg.Postsmoother)

	cur := a
	for cur.Rows > cfg.MaxCoarse && len(h.levels)+1 < cfg.MaxLevels {
		p := prolongator(cur, cfg)
		if p == nil {
			break // coarsening stalled; solve this level directly
		}
		r, ac := galerkin(cur, p)
		h.levels = append(h.levels, &level{
			a:    cur,
			diag: cur.Diag(),
			p:    p,
			r:    r,
		})
		cur = ac
	}

	coarse, err := newDenseLU(cur)
	if err != nil {
		return nil, err
	}
	h.coarse = coarse
	h.nc = cur.Rows

	log := logger.Logger()
	log.Debug().
		Str("method", method).
		Int("dim", a.Rows).
		Int("levels", h.Levels()).
		Int("coarse_dim", h.nc).
		Float64("grid_complexity", h.GridComplexity()).
		Float64("operator_complexity", h.OperatorComplexity()).
		Msg("hierarchy built")

	return h, nil
}
