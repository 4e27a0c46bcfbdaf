// SPDX-License-Identifier: MIT
// Package engine: sentinel error set.
// Builders and Solve return these sentinels; tests check them via errors.Is.

package engine

import "errors"

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("engine: nil matrix")

	// ErrInvalidMatrix indicates a non-nil input matrix whose storage failed
	// validation. The wrapped cause names the structural defect.
	ErrInvalidMatrix = errors.New("engine: invalid matrix")

	// ErrNonSquare signals a non-square system matrix.
	ErrNonSquare = errors.New("engine: matrix is not square")

	// ErrZeroDiagonal signals a structurally or numerically zero diagonal
	// entry on the finest level, which the smoothers cannot handle.
	ErrZeroDiagonal = errors.New("engine: zero diagonal entry")

	// ErrUnknownStrength rejects an unsupported BuildConfig.Strength value.
	ErrUnknownStrength = errors.New("engine: unknown strength option")

	// ErrUnknownSmoother rejects an unsupported smoother name.
	ErrUnknownSmoother = errors.New("engine: unknown smoother option")

	// ErrUnknownCycle rejects a cycle shape outside {V, W, F, AMLI}.
	ErrUnknownCycle = errors.New("engine: unknown cycle shape")

	// ErrUnknownAccel rejects an acceleration tag outside {"", "cg", "gmres"}.
	ErrUnknownAccel = errors.New("engine: unknown acceleration method")

	// ErrSingularCoarse signals that the coarsest-level operator is singular
	// and cannot be factored. Fatal to construction.
	ErrSingularCoarse = errors.New("engine: singular coarse operator")

	// ErrFreed signals use of a hierarchy after Free.
	ErrFreed = errors.New("engine: hierarchy already freed")

	// ErrDimensionMismatch indicates a vector length that does not match the
	// hierarchy's finest-level dimension.
	ErrDimensionMismatch = errors.New("engine: dimension mismatch")
)
