package linsolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/amg"
	"github.com/katalvlaran/amg/linsolve"
	"github.com/katalvlaran/amg/sparse"
)

// laplace1D returns the tridiagonal [−1, 2, −1] operator scaled by s.
func laplace1D(t *testing.T, n int, s float64) *sparse.CSC {
	t.Helper()
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		d[i][i] = 2 * s
		if i > 0 {
			d[i][i-1] = -s
		}
		if i < n-1 {
			d[i][i+1] = -s
		}
	}
	a, err := sparse.NewCSCFromDense(d)
	require.NoError(t, err)

	return a
}

func residual(t *testing.T, a *sparse.CSC, x, b []float64) float64 {
	t.Helper()
	r := make([]float64, len(b))
	require.NoError(t, a.MulVec(r, x))
	floats.AddScaledTo(r, b, -1, r)

	return floats.Norm(r, 2) / floats.Norm(b, 2)
}

func rhs(n int) []float64 {
	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i%3) - 1
	}

	return b
}

func TestNew_NilMatrix(t *testing.T) {
	_, err := linsolve.New(nil, amg.RugeStuben)
	require.ErrorIs(t, err, linsolve.ErrNilMatrix)
}

func TestSolve_Success(t *testing.T) {
	a := laplace1D(t, 200, 1)
	c, err := linsolve.New(a, amg.RugeStuben, linsolve.WithTolerance(1e-9))
	require.NoError(t, err)
	defer c.Close()

	b := rhs(200)
	x := make([]float64, 200)
	res, err := c.Solve(x, b)
	require.NoError(t, err)
	require.Equal(t, linsolve.StatusSuccess, res.Status)
	require.Less(t, residual(t, a, x, b), 1e-9)
	require.Greater(t, res.Iterations, 0)
}

func TestSolve_MaxIterationsIsNotSuccess(t *testing.T) {
	a := laplace1D(t, 200, 1)
	c, err := linsolve.New(a, amg.RugeStuben,
		linsolve.WithTolerance(1e-14),
		linsolve.WithMaxIterations(1))
	require.NoError(t, err)
	defer c.Close()

	b := rhs(200)
	x := make([]float64, 200)
	res, err := c.Solve(x, b)
	require.NoError(t, err) // a capped solve is an outcome, not an error
	require.Equal(t, linsolve.StatusMaxIterations, res.Status)
	require.Equal(t, 1, res.Iterations)
	// Best-effort iterate: written into dst and better than the zero guess.
	require.Less(t, residual(t, a, x, b), 1.0)
	require.InDelta(t, residual(t, a, x, b), res.Residual, 1e-12)
}

func TestSolve_RebuildOnSetMatrix(t *testing.T) {
	a1 := laplace1D(t, 100, 1)
	c, err := linsolve.New(a1, amg.RugeStuben, linsolve.WithTolerance(1e-10))
	require.NoError(t, err)
	defer c.Close()

	b := rhs(100)
	x := make([]float64, 100)
	_, err = c.Solve(x, b)
	require.NoError(t, err)
	require.Less(t, residual(t, a1, x, b), 1e-10)

	// Same sparsity, different values: a stale hierarchy would solve the
	// old operator and miss this residual check badly.
	a2 := laplace1D(t, 100, 3)
	require.NoError(t, c.SetMatrix(a2))
	res, err := c.Solve(x, b)
	require.NoError(t, err)
	require.Equal(t, linsolve.StatusSuccess, res.Status)
	require.Less(t, residual(t, a2, x, b), 1e-10)
}

func TestSolve_ConstructionFailure(t *testing.T) {
	bad, err := sparse.NewCSCFromDense([][]float64{{0, 1}, {1, 1}})
	require.NoError(t, err)

	c, err := linsolve.New(bad, amg.RugeStuben)
	require.NoError(t, err) // build is lazy: New records, Solve pays

	res, err := c.Solve(make([]float64, 2), []float64{1, 1})
	require.Error(t, err)
	require.ErrorIs(t, err, amg.ErrConstruction)
	require.Equal(t, linsolve.StatusFailure, res.Status)
}

func TestSolve_KindOptionsForwarded(t *testing.T) {
	a := laplace1D(t, 300, 1)
	c, err := linsolve.New(a, amg.SmoothedAggregation,
		linsolve.WithKindOptions(amg.WithMaxLevels(2), amg.WithAccel("cg")),
		linsolve.WithTolerance(1e-8))
	require.NoError(t, err)
	defer c.Close()

	s, err := c.Solver()
	require.NoError(t, err)
	require.Equal(t, amg.SmoothedAggregation, s.Kind())
	require.LessOrEqual(t, s.Levels(), 2)

	b := rhs(300)
	x := make([]float64, 300)
	res, err := c.Solve(x, b)
	require.NoError(t, err)
	require.Equal(t, linsolve.StatusSuccess, res.Status)
	require.Less(t, residual(t, a, x, b), 1e-8)
}

func TestClose(t *testing.T) {
	c, err := linsolve.New(laplace1D(t, 50, 1), amg.RugeStuben)
	require.NoError(t, err)

	c.Close()
	c.Close() // idempotent

	_, err = c.Solve(make([]float64, 50), rhs(50))
	require.ErrorIs(t, err, linsolve.ErrClosed)
	require.ErrorIs(t, c.SetMatrix(laplace1D(t, 50, 1)), linsolve.ErrClosed)
}
