// Package metrics accumulates observables over Langevin trajectories.
package metrics

import (
	"github.com/markovmodel/compsci-2018/internal/langevin"
	"gonum.org/v1/gonum/mat"
)

// Metric observes one frame at a time. Value summarizes every frame seen
// since the last Reset.
type Metric interface {
	Name() string
	Observe(x, v *mat.Dense, t float64)
	Value() float64
	Reset()
}

// Energy is implemented by potentials.
type Energy interface {
	Energy(x *mat.Dense) float64
}

// Evaluate resets the metrics, feeds them every frame from burnIn on and
// returns their values by name.
func Evaluate(traj *langevin.Trajectory, burnIn int, ms ...Metric) map[string]float64 {
	if burnIn < 0 {
		burnIn = 0
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i := burnIn; i < len(traj.X); i++ {
			m.Observe(traj.X[i], traj.V[i], float64(i)*traj.Dt)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

func kinetic(v *mat.Dense, mass []float64) float64 {
	n, d := v.Dims()
	ke := 0.0
	for i := 0; i < n && i < len(mass); i++ {
		row := v.RawRowView(i)
		for k := 0; k < d; k++ {
			ke += 0.5 * mass[i] * row[k] * row[k]
		}
	}
	return ke
}
