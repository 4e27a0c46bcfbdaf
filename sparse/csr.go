// SPDX-License-Identifier: MIT

// Package sparse: compressed-row storage.
//
// CSR mirrors CSC with the roles of rows and columns exchanged: RowPtr has
// length Rows+1, ColInd holds the column index of each nonzero sorted
// ascending within a row. This is the layout the multigrid engine consumes.

package sparse

// CSR is a sparse matrix in compressed-row form. All index arrays are
// 0-based. The zero value is not usable; construct via NewCSR,
// NewCSRFromDense or ToCSR.
type CSR struct {
	Rows, Cols int
	RowPtr     []int
	ColInd     []int
	Val        []float64
}

// NewCSR wraps the given storage arrays without copying.
// The arrays are validated; ownership passes to the returned matrix.
//
// Complexity: O(nnz) validation.
func NewCSR(rows, cols int, rowPtr, colInd []int, val []float64) (*CSR, error) {
	a := &CSR{Rows: rows, Cols: cols, RowPtr: rowPtr, ColInd: colInd, Val: val}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// NewCSRFromDense builds a CSR from a dense slice of rows, skipping exact
// zeros. Intended for tests and small setups.
//
// Complexity: O(rows*cols).
func NewCSRFromDense(dense [][]float64) (*CSR, error) {
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

	a := &CSR{
		Rows:   rows,
		Cols:   cols,
		RowPtr: make([]int, rows+1),
	}
	for i := 0; i < rows; i++ {
		a.RowPtr[i] = len(a.ColInd)
		for j := 0; j < cols; j++ {
			if dense[i][j] != 0 {
				a.ColInd = append(a.ColInd, j)
				a.Val = append(a.Val, dense[i][j])
			}
		}
	}
	a.RowPtr[rows] = len(a.ColInd)

	return a, nil
}

// Validate checks structural well-formedness, mirroring (*CSC).Validate.
//
// Complexity: O(rows + nnz).
func (a *CSR) Validate() error {
	if a == nil {
		return ErrNilMatrix
	}
	if a.Rows <= 0 || a.Cols <= 0 {
		return ErrBadShape
	}
	if len(a.RowPtr) != a.Rows+1 || len(a.ColInd) != len(a.Val) {
		return ErrRaggedStorage
	}
	if a.RowPtr[0] != 0 || a.RowPtr[a.Rows] != len(a.ColInd) {
		return ErrPointerNotMonotone
	}
	for i := 0; i < a.Rows; i++ {
		if a.RowPtr[i] > a.RowPtr[i+1] {
			return ErrPointerNotMonotone
		}
	}
	for _, j := range a.ColInd {
		if j < 0 || j >= a.Cols {
			return ErrIndexOutOfRange
		}
	}

	return nil
}

// NNZ returns the number of stored nonzeros.
func (a *CSR) NNZ() int { return len(a.Val) }

// IsSquare reports whether Rows == Cols.
func (a *CSR) IsSquare() bool { return a.Rows == a.Cols }

// Clone returns a deep copy independent of the original.
//
// Complexity: O(rows + nnz).
func (a *CSR) Clone() *CSR {
	b := &CSR{
		Rows:   a.Rows,
		Cols:   a.Cols,
		RowPtr: make([]int, len(a.RowPtr)),
		ColInd: make([]int, len(a.ColInd)),
		Val:    make([]float64, len(a.Val)),
	}
	copy(b.RowPtr, a.RowPtr)
	copy(b.ColInd, a.ColInd)
	copy(b.Val, a.Val)

	return b
}

// MulVec computes dst = A·x. dst and x must not alias.
// Returns ErrDimensionMismatch if len(x) != Cols or len(dst) != Rows.
//
// Complexity: O(rows + nnz).
func (a *CSR) MulVec(dst, x []float64) error {
	if len(x) != a.Cols || len(dst) != a.Rows {
		return ErrDimensionMismatch
	}
	for i := 0; i < a.Rows; i++ {
		var s float64
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			s += a.Val[p] * x[a.ColInd[p]]
		}
		dst[i] = s
	}

	return nil
}

// Diag extracts the main diagonal into a fresh slice of length
// min(Rows, Cols). Structurally missing diagonal entries read as 0.
//
// Complexity: O(rows + nnz).
func (a *CSR) Diag() []float64 {
	n := a.Rows
	if a.Cols < n {
		n = a.Cols
	}
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			if a.ColInd[p] == i {
				d[i] = a.Val[p]
				break
			}
		}
	}

	return d
}

// At returns element (i,j) by scanning row i. Tests and diagnostics only.
func (a *CSR) At(i, j int) float64 {
	for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
		if a.ColInd[p] == j {
			return a.Val[p]
		}
	}

	return 0
}

// ToDense materializes the matrix as a slice of rows. Test aid.
//
// Complexity: O(rows*cols).
func (a *CSR) ToDense() [][]float64 {
	d := make([][]float64, a.Rows)
	for i := range d {
		d[i] = make([]float64, a.Cols)
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			d[i][a.ColInd[p]] = a.Val[p]
		}
	}

	return d
}

// Transpose returns Aᵀ in CSR form, indices sorted within each row.
//
// Complexity: O(rows + cols + nnz).
func (a *CSR) Transpose() *CSR {
	t := &CSR{
		Rows:   a.Cols,
		Cols:   a.Rows,
		RowPtr: make([]int, a.Cols+1),
		ColInd: make([]int, a.NNZ()),
		Val:    make([]float64, a.NNZ()),
	}
	// Count entries per column of A, i.e. per row of Aᵀ.
	for _, j := range a.ColInd {
		t.RowPtr[j+1]++
	}
	for j := 0; j < t.Rows; j++ {
		t.RowPtr[j+1] += t.RowPtr[j]
	}
	// Scatter. Walking A row by row keeps Aᵀ rows sorted by column.
	next := make([]int, t.Rows)
	copy(next, t.RowPtr[:t.Rows])
	for i := 0; i < a.Rows; i++ {
		for p := a.RowPtr[i]; p < a.RowPtr[i+1]; p++ {
			j := a.ColInd[p]
			q := next[j]
			t.ColInd[q] = i
			t.Val[q] = a.Val[p]
			next[j]++
		}
	}

	return t
}
