package amg_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/amg"
	"github.com/katalvlaran/amg/engine"
	"github.com/katalvlaran/amg/krylov"
	"github.com/katalvlaran/amg/sparse"
)

// poissonCSC returns the 5-point Laplacian on a k×k grid in column form.
func poissonCSC(t *testing.T, k int) *sparse.CSC {
	t.Helper()
	n := k * k
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for r := 0; r < k; r++ {
		for c := 0; c < k; c++ {
			i := r*k + c
			d[i][i] = 4
			if r > 0 {
				d[i][i-k] = -1
			}
			if r < k-1 {
				d[i][i+k] = -1
			}
			if c > 0 {
				d[i][i-1] = -1
			}
			if c < k-1 {
				d[i][i+1] = -1
			}
		}
	}
	a, err := sparse.NewCSCFromDense(d)
	require.NoError(t, err)

	return a
}

// sprandCSC returns a random n×n matrix with the given off-diagonal
// density plus shift·I, the standard well-conditioned solve fixture.
func sprandCSC(t *testing.T, n int, density, shift float64, seed int64) *sparse.CSC {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if rng.Float64() < density {
				d[i][j] = rng.NormFloat64()
			}
		}
		d[i][i] += shift
	}
	a, err := sparse.NewCSCFromDense(d)
	require.NoError(t, err)

	return a
}

func cscResidual(t *testing.T, a *sparse.CSC, x, b []float64) float64 {
	t.Helper()
	r := make([]float64, len(b))
	require.NoError(t, a.MulVec(r, x))
	floats.AddScaledTo(r, b, -1, r)

	return floats.Norm(r, 2) / floats.Norm(b, 2)
}

func rhs(n int) []float64 {
	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i%5) - 2
	}

	return b
}

func TestKindString(t *testing.T) {
	require.Equal(t, "RugeStuben", amg.RugeStuben.String())
	require.Equal(t, "SmoothedAggregation", amg.SmoothedAggregation.String())
	require.Equal(t, "unknown", amg.Kind(9).String())
}

func TestNew_Validation(t *testing.T) {
	t.Run("nil matrix", func(t *testing.T) {
		_, err := amg.NewRugeStuben(nil)
		require.ErrorIs(t, err, amg.ErrNilMatrix)
	})

	t.Run("malformed storage", func(t *testing.T) {
		bad := &sparse.CSC{Rows: 2, Cols: 2, ColPtr: []int{0, 1}, RowInd: []int{0}, Val: []float64{1}}
		_, err := amg.NewRugeStuben(bad)
		require.ErrorIs(t, err, sparse.ErrRaggedStorage)
	})

	t.Run("non-square", func(t *testing.T) {
		a, err := sparse.NewCSCFromDense([][]float64{{1, 0, 2}, {0, 1, 0}})
		require.NoError(t, err)
		_, err = amg.NewRugeStuben(a)
		require.ErrorIs(t, err, amg.ErrNonSquare)
	})

	t.Run("engine rejection wrapped", func(t *testing.T) {
		a, err := sparse.NewCSCFromDense([][]float64{{0, 1}, {1, 1}})
		require.NoError(t, err)
		_, err = amg.NewRugeStuben(a)
		require.ErrorIs(t, err, amg.ErrConstruction)
		require.ErrorIs(t, err, engine.ErrZeroDiagonal)
	})

	t.Run("bad stored cycle", func(t *testing.T) {
		_, err := amg.NewRugeStuben(poissonCSC(t, 4), amg.WithCycle("Z"))
		require.ErrorIs(t, err, amg.ErrConstruction)
		require.ErrorIs(t, err, engine.ErrUnknownCycle)
	})
}

func TestSolve_RandomShifted(t *testing.T) {
	// 500 unknowns, ~2% off-diagonal fill, strong diagonal shift: the
	// canonical "solve a generic sparse system" workout.
	a := sprandCSC(t, 500, 0.02, 20, 1)
	s, err := amg.NewRugeStuben(a, amg.WithTolerance(1e-6), amg.WithMaxIter(100))
	require.NoError(t, err)
	defer s.Free()

	b := rhs(500)
	x, err := s.Solve(b)
	require.NoError(t, err)
	require.Less(t, cscResidual(t, a, x, b), 1e-6)
}

func TestSolve_SmoothedAggregation(t *testing.T) {
	a := poissonCSC(t, 20)
	s, err := amg.NewSmoothedAggregation(a, amg.WithTolerance(1e-8))
	require.NoError(t, err)
	defer s.Free()

	b := rhs(s.Dim())
	x, err := s.Solve(b, amg.WithAccel("cg"))
	require.NoError(t, err)
	require.Less(t, cscResidual(t, a, x, b), 1e-8)
}

func TestSolve_OptionOverride(t *testing.T) {
	a := poissonCSC(t, 16)
	s, err := amg.NewRugeStuben(a, amg.WithTolerance(1e-3))
	require.NoError(t, err)
	defer s.Free()
	require.Equal(t, 1e-3, s.Defaults().Tol)

	b := rhs(s.Dim())
	dst := make([]float64, s.Dim())

	// Stored default: loose tolerance.
	loose, err := s.SolveInto(dst, b)
	require.NoError(t, err)
	require.True(t, loose.Converged)

	// Per-call override tightens it without touching the stored default.
	tight, err := s.SolveInto(dst, b, amg.WithTolerance(1e-10))
	require.NoError(t, err)
	require.True(t, tight.Converged)
	require.Less(t, tight.Residual, loose.Residual)
	require.Greater(t, tight.Iterations, loose.Iterations)
	require.Equal(t, 1e-3, s.Defaults().Tol)
}

func TestSolve_ReuseIsDeterministic(t *testing.T) {
	a := poissonCSC(t, 12)
	s, err := amg.NewRugeStuben(a)
	require.NoError(t, err)
	defer s.Free()

	b := rhs(s.Dim())
	x1, err := s.Solve(b, amg.WithTolerance(1e-9))
	require.NoError(t, err)
	x2, err := s.Solve(b, amg.WithTolerance(1e-9))
	require.NoError(t, err)
	require.Equal(t, x1, x2)
}

func TestSolve_Errors(t *testing.T) {
	s, err := amg.NewRugeStuben(poissonCSC(t, 6))
	require.NoError(t, err)
	defer s.Free()

	_, err = s.Solve(make([]float64, 7))
	require.ErrorIs(t, err, amg.ErrDimensionMismatch)

	_, err = s.Solve(rhs(36), amg.WithCycle("Z"))
	require.ErrorIs(t, err, amg.ErrSolve)
	require.ErrorIs(t, err, engine.ErrUnknownCycle)

	_, err = s.Solve(rhs(36), amg.WithAccel("bicg"))
	require.ErrorIs(t, err, amg.ErrSolve)
	require.ErrorIs(t, err, engine.ErrUnknownAccel)

	// A mis-sized destination is rejected before any cycles run.
	info, err := s.SolveInto(make([]float64, 7), rhs(36))
	require.ErrorIs(t, err, amg.ErrDimensionMismatch)
	require.Zero(t, info.Iterations)

	// Solve-time rejections leave the handle usable.
	_, err = s.Solve(rhs(36))
	require.NoError(t, err)

	var nilSolver *amg.Solver
	_, err = nilSolver.Solve(rhs(36))
	require.ErrorIs(t, err, amg.ErrNilSolver)
}

func TestMulVec(t *testing.T) {
	a := poissonCSC(t, 5)
	s, err := amg.NewRugeStuben(a)
	require.NoError(t, err)
	defer s.Free()

	x := rhs(25)
	got := make([]float64, 25)
	require.NoError(t, s.MulVec(got, x))

	want := make([]float64, 25)
	require.NoError(t, a.MulVec(want, x))
	require.Equal(t, want, got)

	require.ErrorIs(t, s.MulVec(make([]float64, 3), x), amg.ErrDimensionMismatch)
}

func TestPreconditioner(t *testing.T) {
	a := poissonCSC(t, 16)
	s, err := amg.NewRugeStuben(a)
	require.NoError(t, err)
	defer s.Free()

	m := s.Preconditioner()
	n := s.Dim()
	b := rhs(n)

	t.Run("forward is the original matrix", func(t *testing.T) {
		got := make([]float64, n)
		want := make([]float64, n)
		require.NoError(t, m.MulVec(got, b))
		require.NoError(t, a.MulVec(want, b))
		require.Equal(t, want, got)
	})

	t.Run("inverse application reduces the residual", func(t *testing.T) {
		x := make([]float64, n)
		require.NoError(t, m.Apply(x, b))
		// One cycle is far from exact but must be a genuine approximate
		// inverse: ‖b − A·(M⁻¹b)‖ strictly below ‖b − A·0‖ = ‖b‖.
		require.Less(t, cscResidual(t, a, x, b), 1.0)
	})

	t.Run("stateless between calls", func(t *testing.T) {
		x1 := make([]float64, n)
		x2 := make([]float64, n)
		require.NoError(t, m.Apply(x1, b))
		require.NoError(t, m.Apply(x2, b))
		require.Equal(t, x1, x2)
	})

	t.Run("bad cycle surfaces from Apply", func(t *testing.T) {
		bad := s.Preconditioner(amg.WithCycle("Z"))
		err := bad.Apply(make([]float64, n), b)
		require.ErrorIs(t, err, amg.ErrSolve)
		require.ErrorIs(t, err, engine.ErrUnknownCycle)
	})
}

func TestPreconditioner_AcceleratesCG(t *testing.T) {
	a := poissonCSC(t, 24) // 576 unknowns: large enough for plain CG to grind
	s, err := amg.NewRugeStuben(a)
	require.NoError(t, err)
	defer s.Free()

	n := s.Dim()
	b := rhs(n)
	op := krylov.Matrix{MatVec: func(dst, src []float64) {
		_ = s.MulVec(dst, src)
	}}

	plain, err := krylov.CG(op, b, krylov.Settings{Tolerance: 1e-8})
	require.NoError(t, err)

	m := s.Preconditioner()
	pre, err := krylov.CG(op, b, krylov.Settings{Tolerance: 1e-8, PSolve: m.Apply})
	require.NoError(t, err)

	require.Less(t, pre.Stats.Iterations, plain.Stats.Iterations/2)
	require.Less(t, cscResidual(t, a, pre.X, b), 1e-7)
}

func TestFreeSemantics(t *testing.T) {
	s, err := amg.NewRugeStuben(poissonCSC(t, 6))
	require.NoError(t, err)
	m := s.Preconditioner()

	s.Free()
	s.Free() // idempotent
	require.Equal(t, 0, s.Dim())
	require.Equal(t, 0, s.Levels())

	_, err = s.Solve(rhs(36))
	require.ErrorIs(t, err, amg.ErrFreed)
	require.ErrorIs(t, s.MulVec(make([]float64, 36), rhs(36)), amg.ErrFreed)
	require.ErrorIs(t, m.Apply(make([]float64, 36), rhs(36)), amg.ErrFreed)
}
