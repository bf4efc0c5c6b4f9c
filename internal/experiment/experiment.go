// Package experiment wires potentials, steppers and metrics into seeded,
// reproducible Langevin runs.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/markovmodel/compsci-2018/internal/core"
	"github.com/markovmodel/compsci-2018/internal/langevin"
	"github.com/markovmodel/compsci-2018/internal/metrics"
	"github.com/markovmodel/compsci-2018/internal/potential"
	"gonum.org/v1/gonum/mat"
)

var ErrNotSetup = errors.New("experiment: not set up")

type Config struct {
	Potential  string
	Integrator string
	Params     map[string]float64
	Particles  int
	Dim        int
	Mass       float64
	// InitState holds Particles*Dim positions, row major. Empty means the
	// origin.
	InitState []float64
	Steps     int
	BurnIn    int
	Langevin  langevin.Params
	Seed      int64
}

type Result struct {
	Trajectory *langevin.Trajectory
	Metrics    map[string]float64
}

type Experiment struct {
	cfg        Config
	pot        potential.Potential
	metrics    []metrics.Metric
	registry   *Registry
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		registry:   NewRegistry(),
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup validates the configuration against the chosen potential. Metrics
// are evaluated after the burn-in.
func (e *Experiment) Setup(pot potential.Potential, ms []metrics.Metric) error {
	const op = "experiment.Setup"
	if pot == nil {
		return core.TypeMismatch(op, "potential", nil)
	}
	if e.cfg.Particles < 1 {
		return core.OutOfRange(op, "particles", e.cfg.Particles)
	}
	if e.cfg.Dim < 1 {
		return core.OutOfRange(op, "dim", e.cfg.Dim)
	}
	if len(e.cfg.InitState) != 0 && len(e.cfg.InitState) != e.cfg.Particles*e.cfg.Dim {
		return core.LengthMismatch(op, "init_state", len(e.cfg.InitState), e.cfg.Particles*e.cfg.Dim)
	}
	if e.cfg.BurnIn < 0 || e.cfg.BurnIn > e.cfg.Steps {
		return core.OutOfRange(op, "burn_in", e.cfg.BurnIn)
	}
	if _, err := e.registry.GetIntegrator(e.integratorName()); err != nil {
		return err
	}
	e.pot = pot
	e.metrics = ms
	return nil
}

func (e *Experiment) integratorName() string {
	if e.cfg.Integrator == "" {
		return "baoab"
	}
	return e.cfg.Integrator
}

// Masses returns the per particle masses of the configuration.
func (e *Experiment) Masses() []float64 {
	mass := make([]float64, e.cfg.Particles)
	for i := range mass {
		mass[i] = e.cfg.Mass
	}
	return mass
}

// InitialState returns the starting positions and zero velocities.
func (e *Experiment) InitialState() (x0, v0 *mat.Dense) {
	n, d := e.cfg.Particles, e.cfg.Dim
	x0 = mat.NewDense(n, d, nil)
	if len(e.cfg.InitState) > 0 {
		x0 = mat.NewDense(n, d, append([]float64(nil), e.cfg.InitState...))
	}
	return x0, mat.NewDense(n, d, nil)
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.pot == nil {
		return nil, ErrNotSetup
	}

	x0, v0 := e.InitialState()
	mass := e.Masses()
	newStepper, err := e.registry.GetIntegrator(e.integratorName())
	if err != nil {
		return nil, err
	}
	if e.cfg.Steps < 0 {
		return nil, core.OutOfRange("experiment.Run", "steps", e.cfg.Steps)
	}
	stepper, err := newStepper(e.pot.Force, x0, mass, e.cfg.Langevin, e.randSource)
	if err != nil {
		return nil, fmt.Errorf("%s stepper: %w", e.integratorName(), err)
	}

	traj, err := langevin.Record(ctx, stepper, e.cfg.Steps, x0, v0)
	if err != nil {
		return nil, err
	}
	traj.Dt = e.cfg.Langevin.Dt

	return &Result{
		Trajectory: traj,
		Metrics:    metrics.Evaluate(traj, e.cfg.BurnIn, e.metrics...),
	}, nil
}

// Potential returns the potential passed to Setup.
func (e *Experiment) Potential() potential.Potential {
	return e.pot
}
