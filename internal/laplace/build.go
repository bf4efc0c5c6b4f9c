package laplace

import (
	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/mat"
)

// rowsPerChunk is the minimum number of grid rows assembled per goroutine.
const rowsPerChunk = 16

// Build2D returns the (nx*ny)×(nx*ny) discrete Laplacian of a 2D grid.
func Build2D(nx, ny int, lx, ly float64, periodic bool) (*mat.Dense, error) {
	g, err := NewGrid(nx, ny, lx, ly, periodic)
	if err != nil {
		return nil, err
	}
	return g.Laplacian(), nil
}

// Build1D returns the nx×nx discrete Laplacian of a 1D grid.
func Build1D(nx int, lx float64, periodic bool) (*mat.Dense, error) {
	g, err := NewLine(nx, lx, periodic)
	if err != nil {
		return nil, err
	}
	return g.Laplacian(), nil
}

// Laplacian assembles the operator for a validated grid.
//
// All writes for cell (x, y) land in row Index(x, y), so grid rows are
// assembled concurrently while the accumulation within a matrix row stays on
// one goroutine.
func (g Grid) Laplacian() *mat.Dense {
	n := g.N()
	data := make([]float64, n*n)
	mx, my := g.Weights()
	diag := -2 * (mx + my)

	core.ParallelFor(g.NY, rowsPerChunk, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < g.NX; x++ {
				row := data[g.Index(x, y)*n : (g.Index(x, y)+1)*n]
				row[g.Index(x, y)] += diag
				row[g.Index(x-1, y)] += mx
				row[g.Index(x+1, y)] += mx
				row[g.Index(x, y-1)] += my
				row[g.Index(x, y+1)] += my
				if !g.Periodic {
					g.removeWrap(row, x, y, mx, my)
				}
			}
		}
	})

	return mat.NewDense(n, n, data)
}

// removeWrap subtracts the contributions the periodic stencil added across
// the box edges for cell (x, y).
func (g Grid) removeWrap(row []float64, x, y int, mx, my float64) {
	if x == 0 {
		row[g.Index(x-1, y)] -= mx
	}
	if x == g.NX-1 {
		row[g.Index(x+1, y)] -= mx
	}
	if g.NY == 1 {
		return
	}
	if y == 0 {
		row[g.Index(x, y-1)] -= my
	}
	if y == g.NY-1 {
		row[g.Index(x, y+1)] -= my
	}
}

// Apply returns L·field.
func Apply(l mat.Matrix, field []float64) ([]float64, error) {
	r, c := l.Dims()
	if len(field) != c {
		return nil, core.LengthMismatch("laplace.Apply", "field", len(field), c)
	}
	var out mat.VecDense
	out.MulVec(l, mat.NewVecDense(len(field), field))
	dst := make([]float64, r)
	for i := range dst {
		dst[i] = out.AtVec(i)
	}
	return dst, nil
}
