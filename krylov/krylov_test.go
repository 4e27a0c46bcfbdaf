package krylov_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/amg/krylov"
	"github.com/katalvlaran/amg/sparse"
)

// poisson1D returns the n×n tridiagonal [-1, 2, -1] operator in CSR form.
func poisson1D(t *testing.T, n int) *sparse.CSR {
	t.Helper()
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		d[i][i] = 2
		if i > 0 {
			d[i][i-1] = -1
		}
		if i < n-1 {
			d[i][i+1] = -1
		}
	}
	a, err := sparse.NewCSRFromDense(d)
	require.NoError(t, err)

	return a
}

func matvec(a *sparse.CSR) krylov.Matrix {
	return krylov.Matrix{MatVec: func(dst, src []float64) {
		_ = a.MulVec(dst, src)
	}}
}

func residual(t *testing.T, a *sparse.CSR, x, b []float64) float64 {
	t.Helper()
	r := make([]float64, len(b))
	require.NoError(t, a.MulVec(r, x))
	floats.AddScaledTo(r, b, -1, r)

	return floats.Norm(r, 2) / floats.Norm(b, 2)
}

func TestCG_Poisson(t *testing.T) {
	const n = 64
	a := poisson1D(t, n)

	rng := rand.New(rand.NewSource(11))
	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64()
	}

	res, err := krylov.CG(matvec(a), b, krylov.Settings{Tolerance: 1e-10})
	require.NoError(t, err)
	require.Less(t, residual(t, a, res.X, b), 1e-9)
	require.Equal(t, res.Stats.MatVecs, res.Stats.Iterations)
}

func TestCG_JacobiPreconditioner(t *testing.T) {
	// Diagonally dominant SPD system with wildly varying diagonal: Jacobi
	// scaling should cut the iteration count.
	const n = 80
	rng := rand.New(rand.NewSource(12))
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < 0.05 {
				v := rng.NormFloat64() * 0.1
				d[i][j] = v
				d[j][i] = v
			}
		}
	}
	for i := 0; i < n; i++ {
		scale := float64(int(1) << uint(i%8)) // diagonal spread over 2^0..2^7
		d[i][i] = 4 * scale
	}
	a, err := sparse.NewCSRFromDense(d)
	require.NoError(t, err)

	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64()
	}

	plain, err := krylov.CG(matvec(a), b, krylov.Settings{Tolerance: 1e-10})
	require.NoError(t, err)

	diag := a.Diag()
	precond, err := krylov.CG(matvec(a), b, krylov.Settings{
		Tolerance: 1e-10,
		PSolve: func(dst, rhs []float64) error {
			for i := range dst {
				dst[i] = rhs[i] / diag[i]
			}
			return nil
		},
	})
	require.NoError(t, err)

	require.Less(t, residual(t, a, precond.X, b), 1e-9)
	require.Less(t, precond.Stats.Iterations, plain.Stats.Iterations)
	require.Greater(t, precond.Stats.PSolves, 0)
}

func TestCG_IterationLimit(t *testing.T) {
	const n = 64
	a := poisson1D(t, n)
	b := make([]float64, n)
	b[0] = 1

	res, err := krylov.CG(matvec(a), b, krylov.Settings{
		Tolerance:     1e-12,
		MaxIterations: 3,
	})
	require.ErrorIs(t, err, krylov.ErrIterationLimit)
	require.Equal(t, 3, res.Stats.Iterations)
	require.Len(t, res.X, n)
}

func TestCG_ZeroRHS(t *testing.T) {
	a := poisson1D(t, 8)
	res, err := krylov.CG(matvec(a), make([]float64, 8), krylov.Settings{})
	require.NoError(t, err)
	require.Equal(t, make([]float64, 8), res.X)
	require.Zero(t, res.Stats.Iterations)
}

func TestGMRES_Nonsymmetric(t *testing.T) {
	// Upwind-style convection-diffusion stencil: nonsymmetric, diagonally
	// dominant. CG theory does not apply; GMRES must still converge.
	const n = 60
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		d[i][i] = 3
		if i > 0 {
			d[i][i-1] = -2
		}
		if i < n-1 {
			d[i][i+1] = -0.5
		}
	}
	a, err := sparse.NewCSRFromDense(d)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(13))
	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64()
	}

	res, err := krylov.GMRES(matvec(a), b, krylov.Settings{Tolerance: 1e-9})
	require.NoError(t, err)
	require.Less(t, residual(t, a, res.X, b), 1e-8)
}

func TestGMRES_SmallRestartStillConverges(t *testing.T) {
	const n = 50
	a := poisson1D(t, n)

	rng := rand.New(rand.NewSource(14))
	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64()
	}

	res, err := krylov.GMRES(matvec(a), b, krylov.Settings{
		Tolerance:     1e-8,
		Restart:       5,
		MaxIterations: 5000,
	})
	require.NoError(t, err)
	require.Less(t, residual(t, a, res.X, b), 1e-7)
}

func TestGMRES_RespectsX0(t *testing.T) {
	const n = 30
	a := poisson1D(t, n)
	want := make([]float64, n)
	for i := range want {
		want[i] = float64(i%5) - 2
	}
	b := make([]float64, n)
	require.NoError(t, a.MulVec(b, want))

	// Start from the exact solution: zero iterations needed.
	res, err := krylov.GMRES(matvec(a), b, krylov.Settings{Tolerance: 1e-10, X0: want})
	require.NoError(t, err)
	require.Zero(t, res.Stats.Iterations)
	require.InDeltaSlice(t, want, res.X, 1e-12)
}
