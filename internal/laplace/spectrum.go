package laplace

import (
	"math"
	"sort"
)

// Sample evaluates f at the cell positions x_i = i*LX/NX, y_j = j*LY/NY and
// returns the values in flattening order.
func (g Grid) Sample(f func(x, y float64) float64) []float64 {
	out := make([]float64, g.N())
	hx := g.LX / float64(g.NX)
	hy := 0.0
	if g.NY > 1 {
		hy = g.LY / float64(g.NY)
	}
	for y := 0; y < g.NY; y++ {
		for x := 0; x < g.NX; x++ {
			out[g.Index(x, y)] = f(float64(x)*hx, float64(y)*hy)
		}
	}
	return out
}

// Eigenvalues returns the analytic spectrum of the grid's Laplacian in
// ascending order.
func (g Grid) Eigenvalues() []float64 {
	mx, my := g.Weights()
	ex := axisEigenvalues(g.NX, mx, g.Periodic)
	ey := []float64{0}
	if g.NY > 1 {
		ey = axisEigenvalues(g.NY, my, g.Periodic)
	}

	vals := make([]float64, 0, len(ex)*len(ey))
	for _, a := range ex {
		for _, b := range ey {
			vals = append(vals, a+b)
		}
	}
	sort.Float64s(vals)
	return vals
}

// ModeEigenvalue is the eigenvalue of the periodic Fourier mode with wave
// numbers (kx, ky). It is exact for sampled sin/cos fields spanning whole
// periods of the box.
func (g Grid) ModeEigenvalue(kx, ky int) float64 {
	mx, my := g.Weights()
	ev := mx * (2*math.Cos(2*math.Pi*float64(kx)/float64(g.NX)) - 2)
	if g.NY > 1 {
		ev += my * (2*math.Cos(2*math.Pi*float64(ky)/float64(g.NY)) - 2)
	}
	return ev
}

func axisEigenvalues(n int, m float64, periodic bool) []float64 {
	vals := make([]float64, n)
	for k := range vals {
		if periodic {
			vals[k] = m * (2*math.Cos(2*math.Pi*float64(k)/float64(n)) - 2)
		} else {
			vals[k] = m * (2*math.Cos(math.Pi*float64(k+1)/float64(n+1)) - 2)
		}
	}
	return vals
}
