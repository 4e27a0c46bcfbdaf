// SPDX-License-Identifier: MIT

// Package sparse: compressed-column storage.
//
// CSC stores the nonzeros of a Rows×Cols matrix column by column:
//   - ColPtr has length Cols+1; column j occupies the half-open slice
//     [ColPtr[j], ColPtr[j+1]) of RowInd/Val.
//   - RowInd holds the row index of each nonzero, sorted ascending within a
//     column, without duplicates.
//   - Val holds the corresponding values.

package sparse

// CSC is a sparse matrix in compressed-column (Harwell–Boeing) form.
// All index arrays are 0-based. The zero value is not usable; construct via
// NewCSC, NewCSCFromDense, NewCSCFromOneBased or ToCSC.
type CSC struct {
	Rows, Cols int
	ColPtr     []int
	RowInd     []int
	Val        []float64
}

// NewCSC wraps the given storage arrays without copying.
// The arrays are validated; ownership passes to the returned matrix.
//
// Complexity: O(nnz) validation.
func NewCSC(rows, cols int, colPtr, rowInd []int, val []float64) (*CSC, error) {
	a := &CSC{Rows: rows, Cols: cols, ColPtr: colPtr, RowInd: rowInd, Val: val}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// NewCSCFromOneBased ingests 1-based pointer and index arrays, shifting both
// to the package's 0-based convention during the copy. The inputs are not
// mutated. The shifted structure is validated before returning, so an
// un-shifted (already 0-based) input is rejected instead of silently
// producing a matrix that is off by one row.
//
// Complexity: O(cols + nnz).
func NewCSCFromOneBased(rows, cols int, colPtr, rowInd []int, val []float64) (*CSC, error) {
	cp := make([]int, len(colPtr))
	for i, p := range colPtr {
		cp[i] = p - 1
	}
	ri := make([]int, len(rowInd))
	for i, r := range rowInd {
		ri[i] = r - 1
	}
	v := make([]float64, len(val))
	copy(v, val)

	return NewCSC(rows, cols, cp, ri, v)
}

// NewCSCFromDense builds a CSC from a dense row-major slice-of-rows,
// skipping exact zeros. Intended for tests and small setups.
//
// Complexity: O(rows*cols).
func NewCSCFromDense(dense [][]float64) (*CSC, error) {
	rows := len(dense)
	if rows == 0 {
		return nil, ErrBadShape
	}
	cols := len(dense[0])
	for _, r := range dense {
		if len(r) != cols {
			return nil, ErrRaggedStorage
		}
	}

	a := &CSC{
		Rows:   rows,
		Cols:   cols,
		ColPtr: make([]int, cols+1),
	}
	for j := 0; j < cols; j++ {
		a.ColPtr[j] = len(a.RowInd)
		for i := 0; i < rows; i++ {
			if dense[i][j] != 0 {
				a.RowInd = append(a.RowInd, i)
				a.Val = append(a.Val, dense[i][j])
			}
		}
	}
	a.ColPtr[cols] = len(a.RowInd)

	return a, nil
}

// Validate checks structural well-formedness: positive shape, pointer array
// of length Cols+1 that is monotone from 0 to nnz, index/value arrays of
// equal length, and every row index inside [0, Rows).
//
// Complexity: O(cols + nnz).
func (a *CSC) Validate() error {
	if a == nil {
		return ErrNilMatrix
	}
	if a.Rows <= 0 || a.Cols <= 0 {
		return ErrBadShape
	}
	if len(a.ColPtr) != a.Cols+1 || len(a.RowInd) != len(a.Val) {
		return ErrRaggedStorage
	}
	if a.ColPtr[0] != 0 || a.ColPtr[a.Cols] != len(a.RowInd) {
		return ErrPointerNotMonotone
	}
	for j := 0; j < a.Cols; j++ {
		if a.ColPtr[j] > a.ColPtr[j+1] {
			return ErrPointerNotMonotone
		}
	}
	for _, i := range a.RowInd {
		if i < 0 || i >= a.Rows {
			return ErrIndexOutOfRange
		}
	}

	return nil
}

// NNZ returns the number of stored nonzeros.
func (a *CSC) NNZ() int { return len(a.Val) }

// IsSquare reports whether Rows == Cols.
func (a *CSC) IsSquare() bool { return a.Rows == a.Cols }

// Clone returns a deep copy independent of the original.
//
// Complexity: O(cols + nnz).
func (a *CSC) Clone() *CSC {
	b := &CSC{
		Rows:   a.Rows,
		Cols:   a.Cols,
		ColPtr: make([]int, len(a.ColPtr)),
		RowInd: make([]int, len(a.RowInd)),
		Val:    make([]float64, len(a.Val)),
	}
	copy(b.ColPtr, a.ColPtr)
	copy(b.RowInd, a.RowInd)
	copy(b.Val, a.Val)

	return b
}

// MulVec computes dst = A·x. dst and x must not alias.
// Returns ErrDimensionMismatch if len(x) != Cols or len(dst) != Rows.
//
// Complexity: O(rows + nnz).
func (a *CSC) MulVec(dst, x []float64) error {
	if len(x) != a.Cols || len(dst) != a.Rows {
		return ErrDimensionMismatch
	}
	for i := range dst {
		dst[i] = 0
	}
	for j := 0; j < a.Cols; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			dst[a.RowInd[p]] += a.Val[p] * xj
		}
	}

	return nil
}

// At returns element (i,j) by binary-search-free scan of column j.
// Intended for tests and diagnostics, not hot loops.
func (a *CSC) At(i, j int) float64 {
	for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
		if a.RowInd[p] == i {
			return a.Val[p]
		}
	}

	return 0
}

// ToDense materializes the matrix as a slice of rows. Test aid.
//
// Complexity: O(rows*cols).
func (a *CSC) ToDense() [][]float64 {
	d := make([][]float64, a.Rows)
	for i := range d {
		d[i] = make([]float64, a.Cols)
	}
	for j := 0; j < a.Cols; j++ {
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			d[a.RowInd[p]][j] = a.Val[p]
		}
	}

	return d
}
