package langevin

import (
	"context"
	"math/rand"

	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/mat"
)

// Trajectory holds nSteps+1 frames, the initial state included.
type Trajectory struct {
	X  []*mat.Dense
	V  []*mat.Dense
	Dt float64
}

// Steps returns the number of integration steps.
func (t *Trajectory) Steps() int { return len(t.X) - 1 }

// Times returns the time of every frame.
func (t *Trajectory) Times() []float64 {
	out := make([]float64, len(t.X))
	for i := range out {
		out[i] = float64(i) * t.Dt
	}
	return out
}

// Coordinate returns the position series of one particle coordinate.
func (t *Trajectory) Coordinate(particle, dim int) []float64 {
	return series(t.X, particle, dim)
}

// Velocity returns the velocity series of one particle coordinate.
func (t *Trajectory) Velocity(particle, dim int) []float64 {
	return series(t.V, particle, dim)
}

func series(frames []*mat.Dense, particle, dim int) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = f.At(particle, dim)
	}
	return out
}

// Integrate runs nSteps BAOAB steps from (x0, v0). The inputs are not
// modified.
func Integrate(force Force, nSteps int, x0, v0 *mat.Dense, mass []float64, p Params, rng *rand.Rand) (*Trajectory, error) {
	return IntegrateContext(context.Background(), force, nSteps, x0, v0, mass, p, rng)
}

// IntegrateContext is Integrate with cancellation checked between steps.
func IntegrateContext(ctx context.Context, force Force, nSteps int, x0, v0 *mat.Dense, mass []float64, p Params, rng *rand.Rand) (*Trajectory, error) {
	const op = "langevin.Integrate"
	if nSteps < 0 {
		return nil, core.OutOfRange(op, "nSteps", nSteps)
	}
	if err := p.validate(op); err != nil {
		return nil, err
	}
	if err := validateState(op, x0, v0, mass); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilSource
	}

	s, err := NewBAOAB(force, x0, mass, p, rng)
	if err != nil {
		return nil, err
	}
	traj, err := Record(ctx, s, nSteps, x0, v0)
	if err != nil {
		return nil, err
	}
	traj.Dt = p.Dt
	return traj, nil
}

// Record drives any stepper for nSteps and stores every frame.
func Record(ctx context.Context, s Stepper, nSteps int, x0, v0 *mat.Dense) (*Trajectory, error) {
	x := mat.DenseCopyOf(x0)
	v := mat.DenseCopyOf(v0)

	traj := &Trajectory{
		X: make([]*mat.Dense, 0, nSteps+1),
		V: make([]*mat.Dense, 0, nSteps+1),
	}
	traj.X = append(traj.X, mat.DenseCopyOf(x))
	traj.V = append(traj.V, mat.DenseCopyOf(v))

	for i := 0; i < nSteps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.Step(x, v); err != nil {
			return nil, err
		}
		traj.X = append(traj.X, mat.DenseCopyOf(x))
		traj.V = append(traj.V, mat.DenseCopyOf(v))
	}
	return traj, nil
}
