// SPDX-License-Identifier: MIT

package amg

import "errors"

// Sentinel errors returned by the adapter. Engine and storage rejections
// arrive wrapped, so errors.Is matches both the adapter sentinel and the
// underlying cause.
var (
	// ErrNilMatrix indicates that a nil *sparse.CSC was passed to a constructor.
	ErrNilMatrix = errors.New("amg: matrix is nil")

	// ErrNonSquare indicates that the problem matrix is not square. AMG
	// hierarchies are defined for square operators only.
	ErrNonSquare = errors.New("amg: matrix must be square")

	// ErrConstruction indicates that the engine rejected the hierarchy
	// build. The wrapped cause names the offending input or option.
	ErrConstruction = errors.New("amg: hierarchy construction failed")

	// ErrSolve indicates that the engine rejected a solve call: an unknown
	// cycle or acceleration name, never a convergence shortfall. Shortfall
	// is advisory and reported through engine.Info.
	ErrSolve = errors.New("amg: solve rejected")

	// ErrDimensionMismatch indicates a vector whose length differs from the
	// handle's dimension.
	ErrDimensionMismatch = errors.New("amg: dimension mismatch")

	// ErrFreed indicates use of a handle after Free.
	ErrFreed = errors.New("amg: solver freed")

	// ErrNilSolver indicates a method call on a nil *Solver.
	ErrNilSolver = errors.New("amg: solver is nil")
)
