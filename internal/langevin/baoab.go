package langevin

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Stepper advances a configuration and its velocities by one time step in
// place.
type Stepper interface {
	Step(x, v *mat.Dense) error
}

// BAOAB is the Langevin stepper. It caches the force of the current
// configuration between steps.
type BAOAB struct {
	force  Force
	rng    *rand.Rand
	halfDt float64
	decay  float64
	// per particle
	halfDtMass []float64
	noise      []float64
	f          *mat.Dense
}

// NewBAOAB prepares a stepper starting from configuration x0.
func NewBAOAB(force Force, x0 *mat.Dense, mass []float64, p Params, rng *rand.Rand) (*BAOAB, error) {
	const op = "langevin.NewBAOAB"
	if err := p.validate(op); err != nil {
		return nil, err
	}
	if err := validateState(op, x0, x0, mass); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilSource
	}
	f, err := evalForce(op, force, x0)
	if err != nil {
		return nil, err
	}

	decay := math.Exp(-p.Damping * p.Dt)
	s := &BAOAB{
		force:      force,
		rng:        rng,
		halfDt:     0.5 * p.Dt,
		decay:      decay,
		halfDtMass: make([]float64, len(mass)),
		noise:      make([]float64, len(mass)),
		f:          mat.DenseCopyOf(f),
	}
	for i, m := range mass {
		s.halfDtMass[i] = 0.5 * p.Dt / m
		s.noise[i] = math.Sqrt((1 - decay*decay) / (p.Beta * m))
	}
	return s, nil
}

// Force returns the force of the configuration reached by the last step.
func (s *BAOAB) Force() *mat.Dense { return s.f }

func (s *BAOAB) Step(x, v *mat.Dense) error {
	n, _ := x.Dims()
	for i := 0; i < n; i++ {
		xi, vi, fi := x.RawRowView(i), v.RawRowView(i), s.f.RawRowView(i)
		thm, sqf := s.halfDtMass[i], s.noise[i]
		for k := range xi {
			vi[k] += thm * fi[k]
			xi[k] += s.halfDt * vi[k]
			vi[k] *= s.decay
			if sqf != 0 {
				vi[k] += sqf * s.rng.NormFloat64()
			}
			xi[k] += s.halfDt * vi[k]
		}
	}

	f, err := evalForce("langevin.BAOAB.Step", s.force, x)
	if err != nil {
		return err
	}
	s.f.Copy(f)

	for i := 0; i < n; i++ {
		vi, fi := v.RawRowView(i), s.f.RawRowView(i)
		thm := s.halfDtMass[i]
		for k := range vi {
			vi[k] += thm * fi[k]
		}
	}
	return nil
}

// VelocityVerlet is the deterministic reference stepper. BAOAB without
// damping reduces to it.
type VelocityVerlet struct {
	force      Force
	dt         float64
	halfDtMass []float64
	f          *mat.Dense
}

func NewVelocityVerlet(force Force, x0 *mat.Dense, mass []float64, dt float64) (*VelocityVerlet, error) {
	const op = "langevin.NewVelocityVerlet"
	if err := (Params{Dt: dt, Beta: 1}).validate(op); err != nil {
		return nil, err
	}
	if err := validateState(op, x0, x0, mass); err != nil {
		return nil, err
	}
	f, err := evalForce(op, force, x0)
	if err != nil {
		return nil, err
	}
	vv := &VelocityVerlet{
		force:      force,
		dt:         dt,
		halfDtMass: make([]float64, len(mass)),
		f:          mat.DenseCopyOf(f),
	}
	for i, m := range mass {
		vv.halfDtMass[i] = 0.5 * dt / m
	}
	return vv, nil
}

func (vv *VelocityVerlet) Step(x, v *mat.Dense) error {
	n, _ := x.Dims()
	for i := 0; i < n; i++ {
		xi, vi, fi := x.RawRowView(i), v.RawRowView(i), vv.f.RawRowView(i)
		for k := range xi {
			vi[k] += vv.halfDtMass[i] * fi[k]
			xi[k] += vv.dt * vi[k]
		}
	}

	f, err := evalForce("langevin.VelocityVerlet.Step", vv.force, x)
	if err != nil {
		return err
	}
	vv.f.Copy(f)

	for i := 0; i < n; i++ {
		vi, fi := v.RawRowView(i), vv.f.RawRowView(i)
		for k := range vi {
			vi[k] += vv.halfDtMass[i] * fi[k]
		}
	}
	return nil
}
