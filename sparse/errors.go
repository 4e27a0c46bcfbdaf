// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All validators return these sentinels; tests check them via errors.Is.
// Wrap with fmt.Errorf("ctx: %w", ErrX) at outer boundaries when context
// is essential — callers still match through errors.Is.

package sparse

import "errors"

var (
	// ErrNilMatrix indicates that a nil *CSC or *CSR was passed in.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrBadShape is returned when a dimension is negative or zero where a
	// positive one is required.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrRaggedStorage signals that index and value arrays disagree in
	// length, or that the pointer array does not have length n+1.
	ErrRaggedStorage = errors.New("sparse: ragged storage arrays")

	// ErrPointerNotMonotone signals a column/row pointer array that is not
	// monotonically non-decreasing or does not start at 0 / end at nnz.
	ErrPointerNotMonotone = errors.New("sparse: pointer array not monotone")

	// ErrIndexOutOfRange signals a row/column index outside [0, n).
	ErrIndexOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between a
	// matrix and a vector operand.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")
)
