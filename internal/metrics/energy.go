package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// KineticTemperature estimates 1/beta as the mean of Σ m v² / (n·d).
type KineticTemperature struct {
	mass    []float64
	sum     float64
	samples int
}

func NewKineticTemperature(mass []float64) *KineticTemperature {
	return &KineticTemperature{mass: mass}
}

func (k *KineticTemperature) Name() string { return "kinetic_temperature" }

func (k *KineticTemperature) Observe(_, v *mat.Dense, _ float64) {
	n, d := v.Dims()
	if n*d == 0 {
		return
	}
	k.sum += 2 * kinetic(v, k.mass) / float64(n*d)
	k.samples++
}

func (k *KineticTemperature) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.sum / float64(k.samples)
}

func (k *KineticTemperature) Reset() {
	k.sum = 0
	k.samples = 0
}

// MeanEnergy averages potential plus kinetic energy.
type MeanEnergy struct {
	pot         Energy
	mass        []float64
	totalEnergy float64
	samples     int
}

func NewMeanEnergy(pot Energy, mass []float64) *MeanEnergy {
	return &MeanEnergy{pot: pot, mass: mass}
}

func (e *MeanEnergy) Name() string { return "mean_energy" }

func (e *MeanEnergy) Observe(x, v *mat.Dense, _ float64) {
	e.totalEnergy += e.pot.Energy(x) + kinetic(v, e.mass)
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation from the energy of the first
// observed frame. It stays zero when that energy is zero.
type EnergyDrift struct {
	pot           Energy
	mass          []float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(pot Energy, mass []float64) *EnergyDrift {
	return &EnergyDrift{pot: pot, mass: mass}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x, v *mat.Dense, _ float64) {
	energy := e.pot.Energy(x) + kinetic(v, e.mass)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
