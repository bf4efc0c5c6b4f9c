package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Stability is the fraction of frames whose coordinates all stay within
// threshold and are finite. A too large time step drives it to zero.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x, _ *mat.Dense, _ float64) {
	s.samples++
	n, _ := x.Dims()
	for i := 0; i < n; i++ {
		if !bounded(x.RawRowView(i), s.threshold) {
			s.violations++
			break
		}
	}
}

func bounded(row []float64, threshold float64) bool {
	for _, val := range row {
		if math.IsNaN(val) || math.Abs(val) > threshold {
			return false
		}
	}
	return true
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// MeanSquareDisplacement is the squared displacement from the first observed
// frame, averaged over coordinates, at the last observed frame.
type MeanSquareDisplacement struct {
	origin *mat.Dense
	last   float64
}

func NewMeanSquareDisplacement() *MeanSquareDisplacement {
	return &MeanSquareDisplacement{}
}

func (m *MeanSquareDisplacement) Name() string { return "msd" }

func (m *MeanSquareDisplacement) Observe(x, _ *mat.Dense, _ float64) {
	if m.origin == nil {
		m.origin = mat.DenseCopyOf(x)
	}
	n, d := x.Dims()
	sq := 0.0
	for i := 0; i < n; i++ {
		dist := floats.Distance(x.RawRowView(i), m.origin.RawRowView(i), 2)
		sq += dist * dist
	}
	m.last = sq / float64(n*d)
}

func (m *MeanSquareDisplacement) Value() float64 { return m.last }

func (m *MeanSquareDisplacement) Reset() {
	m.origin = nil
	m.last = 0
}
