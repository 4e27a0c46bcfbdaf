// SPDX-License-Identifier: MIT

// Package sparse provides compressed-column (CSC) and compressed-row (CSR)
// storage for square-or-rectangular sparse matrices, plus the exact
// conversions between the two layouts.
//
// The package is the format bridge of the amg module: host-side code builds
// matrices in compressed-column form, while the multigrid engine consumes
// compressed-row form. Conversion preserves the nonzero pattern and values
// exactly and always emits indices sorted ascending within each column/row.
//
// Index base:
//   - All arrays in this package are 0-based.
//   - NewCSCFromOneBased ingests 1-based pointer/index arrays (the
//     convention of several host ecosystems) and shifts them during the
//     copy. Forgetting the shift produces silently wrong or out-of-bounds
//     structures, so ingestion validates the shifted result before
//     returning.
//
// Error policy:
//   - Constructors and Validate return sentinel errors (errors.Is); they
//     never panic on user data.
//   - Kernels (ToCSR, ToCSC, MulVec) assume validated input. Validation
//     belongs to the handle boundary, not the hot path.
package sparse
