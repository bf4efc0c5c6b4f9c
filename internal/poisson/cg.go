package poisson

import (
	"errors"
	"time"

	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrIterationLimit is returned when the residual did not reach the
// tolerance within MaxIterations.
var ErrIterationLimit = errors.New("poisson: iteration limit reached")

// MatrixOps describes the operator of the linear system.
type MatrixOps struct {
	// MatVec computes A*x and stores the result into dst.
	// It must be non-nil.
	MatVec func(dst, x []float64)
}

// Dense wraps a gonum matrix as MatrixOps, optionally scaled by alpha.
func Dense(a mat.Matrix, alpha float64) MatrixOps {
	r, c := a.Dims()
	return MatrixOps{
		MatVec: func(dst, x []float64) {
			d := mat.NewVecDense(r, dst)
			d.MulVec(a, mat.NewVecDense(c, x))
			if alpha != 1 {
				floats.Scale(alpha, dst)
			}
		},
	}
}

type Settings struct {
	// X0 is an initial guess.
	// If it is nil, the zero vector will
	// be used.
	X0 []float64

	// Tolerance on the relative residual
	// norm |b - Ax| / |b|.
	// Zero selects DefaultTolerance.
	Tolerance float64

	// MaxIterations is the limit on the
	// number of iterations.
	// If it is zero, it will be set to
	// twice the dimension of the system.
	MaxIterations int
}

// DefaultTolerance is used when Settings.Tolerance is zero.
const DefaultTolerance = 1e-10

type Stats struct {
	Iterations   int
	MatVec       int
	ResidualNorm float64
	StartTime    time.Time
	Runtime      time.Duration
}

type Result struct {
	X     []float64
	Stats Stats
}

// CG solves A x = b with conjugate gradients. A must be symmetric positive
// semi-definite and b must lie in its range.
func CG(a MatrixOps, b []float64, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}

	dim := len(b)
	switch {
	case dim == 0:
		return Result{}, core.OutOfRange("poisson.CG", "b", "empty")
	case a.MatVec == nil:
		return Result{}, core.TypeMismatch("poisson.CG", "MatVec", nil)
	case settings.X0 != nil && len(settings.X0) != dim:
		return Result{}, core.LengthMismatch("poisson.CG", "X0", len(settings.X0), dim)
	}
	defaultSettings(&settings, dim)
	if settings.Tolerance <= 0 || 1 <= settings.Tolerance {
		return Result{}, core.OutOfRange("poisson.CG", "Tolerance", settings.Tolerance)
	}

	x := make([]float64, dim)
	r := make([]float64, dim)
	if settings.X0 != nil {
		copy(x, settings.X0)
		a.MatVec(r, x)
		stats.MatVec++
		floats.AddScaledTo(r, b, -1, r) // r = b - Ax
	} else {
		copy(r, b)
	}

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		bnorm = 1
	}

	p := make([]float64, dim)
	ap := make([]float64, dim)
	copy(p, r)
	rho := floats.Dot(r, r)
	stats.ResidualNorm = floats.Norm(r, 2)

	var err error
	for stats.ResidualNorm/bnorm >= settings.Tolerance {
		if stats.Iterations == settings.MaxIterations {
			err = ErrIterationLimit
			break
		}

		a.MatVec(ap, p)
		stats.MatVec++
		alpha := rho / floats.Dot(p, ap) // α = ρ_i / (p_i · Ap_i)
		floats.AddScaled(x, alpha, p)    // x_i = x_{i-1} + α p_i
		floats.AddScaled(r, -alpha, ap)  // r_i = r_{i-1} - α Ap_i

		rhoNext := floats.Dot(r, r)
		beta := rhoNext / rho             // β = ρ_{i+1} / ρ_i
		floats.AddScaledTo(p, r, beta, p) // p_{i+1} = r_i + β p_i
		rho = rhoNext

		stats.Iterations++
		stats.ResidualNorm = floats.Norm(r, 2)
	}

	stats.Runtime = time.Since(stats.StartTime)
	return Result{X: x, Stats: stats}, err
}

func defaultSettings(s *Settings, dim int) {
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = 2 * dim
	}
}
