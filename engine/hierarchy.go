// SPDX-License-Identifier: MIT

// Package engine: hierarchy storage and lifecycle.

package engine

import "github.com/katalvlaran/amg/sparse"

// level is one grid of the hierarchy. The coarsest grid is not a level: it
// lives in Hierarchy.coarse as a dense factorization.
type level struct {
	a    *sparse.CSR // operator on this level
	diag []float64   // cached diagonal of a
	p    *sparse.CSR // prolongation to this level from the next coarser
	r    *sparse.CSR // restriction from this level to the next coarser
}

// Hierarchy is a built multigrid hierarchy: a chain of levels plus the
// coarsest-level direct factorization. It is immutable after construction;
// Cycle allocates all scratch per call, so concurrent solves against an
// unmodified hierarchy are safe. Free is not synchronized with in-flight
// solves.
type Hierarchy struct {
	levels []*level
	coarse *denseLU
	fineA  *sparse.CSR // finest operator, also levels[0].a when levels exist
	nc     int         // coarsest dimension
	cfg    BuildConfig
	pre    smootherKind
	post   smootherKind
	freed  bool
}

// finest returns the finest-level operator. Valid until Free.
func (h *Hierarchy) finest() *sparse.CSR {
	return h.fineA
}

// Dim returns the finest-level dimension, or 0 after Free.
func (h *Hierarchy) Dim() int {
	if h.fineA == nil {
		return 0
	}

	return h.fineA.Rows
}

// Levels returns the number of grids, counting the coarsest.
func (h *Hierarchy) Levels() int {
	return len(h.levels) + 1
}

// GridComplexity returns Σ rows over all grids divided by the finest rows —
// the standard measure of hierarchy memory in unknowns.
func (h *Hierarchy) GridComplexity() float64 {
	rows := h.nc
	for _, l := range h.levels {
		rows += l.a.Rows
	}

	return float64(rows) / float64(h.Dim())
}

// OperatorComplexity returns Σ nnz over all grid operators divided by the
// finest nnz.
func (h *Hierarchy) OperatorComplexity() float64 {
	if len(h.levels) == 0 {
		return 1
	}
	nnz := h.nc * h.nc // coarsest counted dense: that is how it is stored
	for _, l := range h.levels {
		nnz += l.a.NNZ()
	}

	return float64(nnz) / float64(h.levels[0].a.NNZ())
}

// Cycle runs exactly one multigrid cycle of the given shape on A·x = b,
// updating x in place. It is the preconditioner primitive: no convergence
// loop, no tolerance check.
//
// Returns ErrFreed after Free and ErrDimensionMismatch when len(x) or
// len(b) differs from Dim().
//
// Complexity: O(nnz) per level visit; the shape determines visit counts.
func (h *Hierarchy) Cycle(kind CycleKind, x, b []float64) error {
	if h.freed {
		return ErrFreed
	}
	if kind > AMLI {
		return ErrUnknownCycle
	}
	if len(x) != h.Dim() || len(b) != h.Dim() {
		return ErrDimensionMismatch
	}
	h.cycle(kind, 0, x, b)

	return nil
}

// Free releases the level storage. Idempotent; subsequent Cycle calls
// return ErrFreed. Hosts without deterministic destruction call this
// exactly once when the owning handle is done.
func (h *Hierarchy) Free() {
	h.levels = nil
	h.coarse = nil
	h.fineA = nil
	h.freed = true
}
