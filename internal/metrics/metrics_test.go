package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/markovmodel/compsci-2018/internal/langevin"
	"github.com/markovmodel/compsci-2018/internal/potential"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestKineticTemperature(t *testing.T) {
	m := NewKineticTemperature([]float64{1, 2})
	v := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	m.Observe(nil, v, 0)
	// (1+1+2+2)/4
	require.InDelta(t, 1.5, m.Value(), 1e-15)

	m.Observe(nil, mat.NewDense(2, 2, nil), 0.1)
	require.InDelta(t, 0.75, m.Value(), 1e-15)

	m.Reset()
	require.Zero(t, m.Value())
}

func TestMeanEnergyAndDrift(t *testing.T) {
	pot := potential.NewHarmonic()
	mass := []float64{1}
	x := mat.NewDense(1, 1, []float64{1})
	v := mat.NewDense(1, 1, []float64{0})

	me := NewMeanEnergy(pot, mass)
	drift := NewEnergyDrift(pot, mass)
	me.Observe(x, v, 0)
	drift.Observe(x, v, 0)

	x2 := mat.NewDense(1, 1, []float64{0})
	v2 := mat.NewDense(1, 1, []float64{1.1})
	me.Observe(x2, v2, 1)
	drift.Observe(x2, v2, 1)

	require.InDelta(t, (0.5+0.605)/2, me.Value(), 1e-12)
	require.InDelta(t, 0.21, drift.Value(), 1e-12)
}

func TestStability(t *testing.T) {
	s := NewStability(10)
	s.Observe(mat.NewDense(1, 2, []float64{1, 2}), nil, 0)
	s.Observe(mat.NewDense(1, 2, []float64{1, 20}), nil, 0)
	s.Observe(mat.NewDense(1, 2, []float64{math.NaN(), 0}), nil, 0)
	s.Observe(mat.NewDense(1, 2, []float64{0, 0}), nil, 0)
	require.InDelta(t, 0.5, s.Value(), 1e-15)
}

func TestMeanSquareDisplacement(t *testing.T) {
	m := NewMeanSquareDisplacement()
	m.Observe(mat.NewDense(2, 1, []float64{0, 1}), nil, 0)
	m.Observe(mat.NewDense(2, 1, []float64{3, 5}), nil, 1)
	require.InDelta(t, (9.0+16.0)/2, m.Value(), 1e-12)
}

func TestEvaluate(t *testing.T) {
	const (
		n    = 100
		beta = 2.0
	)
	mass := make([]float64, n)
	for i := range mass {
		mass[i] = 1
	}
	pot := potential.NewHarmonic()
	x0 := mat.NewDense(n, 1, nil)
	v0 := mat.NewDense(n, 1, nil)
	p := langevin.Params{Dt: 0.01, Damping: 1, Beta: beta}

	traj, err := langevin.Integrate(pot.Force, 2000, x0, v0, mass, p, rand.New(rand.NewSource(2018)))
	require.NoError(t, err)

	got := Evaluate(traj, 500,
		NewKineticTemperature(mass),
		NewMeanEnergy(pot, mass),
		NewStability(100),
	)
	require.InEpsilon(t, 1/beta, got["kinetic_temperature"], 0.15)
	// harmonic oscillator: <E> per particle = 1/beta
	require.InEpsilon(t, n/beta, got["mean_energy"], 0.15)
	require.Equal(t, 1.0, got["stability"])
}
