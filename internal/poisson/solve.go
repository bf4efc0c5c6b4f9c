package poisson

import (
	"math"

	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Solve returns phi with -L phi = rho. When constants are in the null space of
// L, as for periodic boundaries, rho must have zero mean and the returned phi
// is shifted to zero mean.
func Solve(l *mat.Dense, rho []float64, settings Settings) (Result, error) {
	r, c := l.Dims()
	if r != c {
		return Result{}, core.LengthMismatch("poisson.Solve", "L", c, r)
	}
	if len(rho) != r {
		return Result{}, core.LengthMismatch("poisson.Solve", "rho", len(rho), r)
	}

	res, err := CG(Dense(l, -1), rho, settings)
	if err != nil {
		return res, err
	}
	if constantKernel(l) {
		RemoveMean(res.X)
	}
	return res, nil
}

// constantKernel reports whether L maps the constant field to zero.
func constantKernel(l *mat.Dense) bool {
	r, _ := l.Dims()
	for i := 0; i < r; i++ {
		row := l.RawRowView(i)
		if math.Abs(floats.Sum(row)) > 1e-12*math.Max(1, math.Abs(row[i])) {
			return false
		}
	}
	return true
}

// Direct solves -L phi = rho by LU factorization. It fails with a
// mat.Condition error for singular operators such as the periodic Laplacian.
func Direct(l *mat.Dense, rho []float64) ([]float64, error) {
	r, _ := l.Dims()
	if len(rho) != r {
		return nil, core.LengthMismatch("poisson.Direct", "rho", len(rho), r)
	}
	var neg mat.Dense
	neg.Scale(-1, l)

	var phi mat.VecDense
	if err := phi.SolveVec(&neg, mat.NewVecDense(len(rho), rho)); err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, &phi), nil
}

// RemoveMean subtracts the arithmetic mean from v in place.
func RemoveMean(v []float64) {
	if len(v) == 0 {
		return
	}
	floats.AddConst(-stat.Mean(v, nil), v)
}

// Residual returns the max-norm of -L phi - rho.
func Residual(l *mat.Dense, phi, rho []float64) float64 {
	out := make([]float64, len(rho))
	Dense(l, -1).MatVec(out, phi)
	return floats.Distance(out, rho, math.Inf(1))
}
