package langevin

import (
	"errors"
	"math"

	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/mat"
)

// ErrNilSource indicates a stochastic step without a random source.
var ErrNilSource = errors.New("langevin: nil random source")

// Force computes the forces of a single configuration. The result must have
// the shape of x and x must not be modified.
type Force func(x *mat.Dense) *mat.Dense

// Params are the integration parameters shared by all particles.
type Params struct {
	// Dt is the time step.
	Dt float64
	// Damping is the friction coefficient; zero decouples the heat bath.
	Damping float64
	// Beta is the inverse temperature.
	Beta float64
}

// DefaultParams returns dt=0.001, damping=0.1, beta=1.
func DefaultParams() Params {
	return Params{Dt: 0.001, Damping: 0.1, Beta: 1.0}
}

func (p Params) validate(op string) error {
	if !core.Positive(p.Dt) {
		return core.OutOfRange(op, "dt", p.Dt)
	}
	if p.Damping < 0 || math.IsNaN(p.Damping) || math.IsInf(p.Damping, 0) {
		return core.OutOfRange(op, "damping", p.Damping)
	}
	if !core.Positive(p.Beta) {
		return core.OutOfRange(op, "beta", p.Beta)
	}
	return nil
}

func validateState(op string, x0, v0 *mat.Dense, mass []float64) error {
	if x0 == nil {
		return core.TypeMismatch(op, "x0", nil)
	}
	if v0 == nil {
		return core.TypeMismatch(op, "v0", nil)
	}
	n, d := x0.Dims()
	vn, vd := v0.Dims()
	if vn != n {
		return core.LengthMismatch(op, "v0", vn, n)
	}
	if vd != d {
		return core.LengthMismatch(op, "v0", vd, d)
	}
	if len(mass) != n {
		return core.LengthMismatch(op, "mass", len(mass), n)
	}
	for _, m := range mass {
		if !core.Positive(m) {
			return core.OutOfRange(op, "mass", m)
		}
	}
	return nil
}

func evalForce(op string, force Force, x *mat.Dense) (*mat.Dense, error) {
	f := force(x)
	if f == nil {
		return nil, core.TypeMismatch(op, "force", nil)
	}
	n, d := x.Dims()
	fn, fd := f.Dims()
	if fn != n {
		return nil, core.LengthMismatch(op, "force", fn, n)
	}
	if fd != d {
		return nil, core.LengthMismatch(op, "force", fd, d)
	}
	return f, nil
}
