// Package potential provides separable force fields for Langevin runs. Every
// coordinate of every particle feels the same one-dimensional potential.
package potential

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrUnknownPotential = errors.New("potential: unknown potential")
	ErrUnknownParam     = errors.New("potential: unknown parameter")
)

// Potential is a force field over n×d configurations.
type Potential interface {
	Name() string
	Force(x *mat.Dense) *mat.Dense
	Energy(x *mat.Dense) float64
	GetParams() map[string]float64
	SetParam(name string, v float64) error
}

var constructors = map[string]func() Potential{
	"harmonic":   func() Potential { return NewHarmonic() },
	"doublewell": func() Potential { return NewDoubleWell() },
	"flat":       func() Potential { return Flat{} },
}

// New returns the named potential with params applied over its defaults.
func New(name string, params map[string]float64) (Potential, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPotential, name)
	}
	p := ctor()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := p.SetParam(k, params[k]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Names lists the registered potentials in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func apply(x *mat.Dense, fn func(float64) float64) *mat.Dense {
	n, d := x.Dims()
	f := mat.NewDense(n, d, nil)
	f.Apply(func(_, _ int, v float64) float64 { return fn(v) }, x)
	return f
}

func sum(x *mat.Dense, fn func(float64) float64) float64 {
	n, d := x.Dims()
	e := 0.0
	for i := 0; i < n; i++ {
		for k := 0; k < d; k++ {
			e += fn(x.At(i, k))
		}
	}
	return e
}

func unknown(pot, name string) error {
	return fmt.Errorf("%w: %s has no %q", ErrUnknownParam, pot, name)
}

// Harmonic is U(x) = K x²/2.
type Harmonic struct {
	K float64
}

func NewHarmonic() *Harmonic { return &Harmonic{K: 1.0} }

func (h *Harmonic) Name() string { return "harmonic" }

func (h *Harmonic) Force(x *mat.Dense) *mat.Dense {
	return apply(x, func(v float64) float64 { return -h.K * v })
}

func (h *Harmonic) Energy(x *mat.Dense) float64 {
	return sum(x, func(v float64) float64 { return 0.5 * h.K * v * v })
}

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"K": h.K}
}

func (h *Harmonic) SetParam(n string, v float64) error {
	switch n {
	case "K":
		h.K = v
	default:
		return unknown(h.Name(), n)
	}
	return nil
}

// DoubleWell is the bistable U(x) = A (x² - B)² with minima at ±sqrt(B).
type DoubleWell struct {
	A, B float64
}

func NewDoubleWell() *DoubleWell { return &DoubleWell{A: 1.0, B: 1.0} }

func (d *DoubleWell) Name() string { return "doublewell" }

func (d *DoubleWell) Force(x *mat.Dense) *mat.Dense {
	return apply(x, func(v float64) float64 { return -4 * d.A * v * (v*v - d.B) })
}

func (d *DoubleWell) Energy(x *mat.Dense) float64 {
	return sum(x, func(v float64) float64 {
		w := v*v - d.B
		return d.A * w * w
	})
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "A":
		d.A = v
	case "B":
		d.B = v
	default:
		return unknown(d.Name(), n)
	}
	return nil
}

// Flat exerts no force.
type Flat struct{}

func (Flat) Name() string { return "flat" }

func (Flat) Force(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	return mat.NewDense(n, d, nil)
}

func (Flat) Energy(*mat.Dense) float64 { return 0 }

func (Flat) GetParams() map[string]float64 { return map[string]float64{} }

func (f Flat) SetParam(n string, _ float64) error { return unknown(f.Name(), n) }
