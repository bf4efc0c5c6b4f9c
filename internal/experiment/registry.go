package experiment

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/markovmodel/compsci-2018/internal/langevin"
	"github.com/markovmodel/compsci-2018/internal/metrics"
	"github.com/markovmodel/compsci-2018/internal/potential"
	"gonum.org/v1/gonum/mat"
)

// StepperFunc builds a stepper positioned at x0.
type StepperFunc func(force langevin.Force, x0 *mat.Dense, mass []float64, p langevin.Params, rng *rand.Rand) (langevin.Stepper, error)

type Registry struct {
	integrators map[string]StepperFunc
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]StepperFunc),
	}

	r.integrators["baoab"] = func(force langevin.Force, x0 *mat.Dense, mass []float64, p langevin.Params, rng *rand.Rand) (langevin.Stepper, error) {
		return langevin.NewBAOAB(force, x0, mass, p, rng)
	}
	r.integrators["verlet"] = func(force langevin.Force, x0 *mat.Dense, mass []float64, p langevin.Params, _ *rand.Rand) (langevin.Stepper, error) {
		return langevin.NewVelocityVerlet(force, x0, mass, p.Dt)
	}

	return r
}

func (r *Registry) GetPotential(name string, params map[string]float64) (potential.Potential, error) {
	return potential.New(name, params)
}

func (r *Registry) GetIntegrator(name string) (StepperFunc, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListPotentials() []string {
	return potential.Names()
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(pot potential.Potential, mass []float64) []metrics.Metric {
	return []metrics.Metric{
		metrics.NewKineticTemperature(mass),
		metrics.NewMeanEnergy(pot, mass),
		metrics.NewEnergyDrift(pot, mass),
		metrics.NewStability(1e3),
		metrics.NewMeanSquareDisplacement(),
	}
}
