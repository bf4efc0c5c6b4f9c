package laplace

import (
	"github.com/markovmodel/compsci-2018/internal/core"
)

// Grid describes a regular grid of NX×NY samples on a box of size LX×LY.
// One-dimensional grids have NY == 1.
type Grid struct {
	NX, NY   int
	LX, LY   float64
	Periodic bool
}

// NewGrid validates the arguments of a 2D grid. Checks run in argument order
// and stop at the first failure.
func NewGrid(nx, ny int, lx, ly float64, periodic bool) (Grid, error) {
	const op = "laplace.NewGrid"
	if nx < 2 {
		return Grid{}, core.AsDimension(core.OutOfRange(op, "nx", nx))
	}
	if ny < 2 {
		return Grid{}, core.AsDimension(core.OutOfRange(op, "ny", ny))
	}
	if !core.Positive(lx) {
		return Grid{}, core.OutOfRange(op, "lx", lx)
	}
	if !core.Positive(ly) {
		return Grid{}, core.OutOfRange(op, "ly", ly)
	}
	return Grid{NX: nx, NY: ny, LX: lx, LY: ly, Periodic: periodic}, nil
}

// NewLine validates the arguments of a 1D grid.
func NewLine(nx int, lx float64, periodic bool) (Grid, error) {
	const op = "laplace.NewLine"
	if nx < 2 {
		return Grid{}, core.AsDimension(core.OutOfRange(op, "nx", nx))
	}
	if !core.Positive(lx) {
		return Grid{}, core.OutOfRange(op, "lx", lx)
	}
	return Grid{NX: nx, NY: 1, LX: lx, Periodic: periodic}, nil
}

// N returns the number of grid cells.
func (g Grid) N() int { return g.NX * g.NY }

// Index maps grid coordinates to a flat index, wrapping both axes.
func (g Grid) Index(x, y int) int {
	return mod(x, g.NX) + mod(y, g.NY)*g.NX
}

// Coords is the inverse of Index for i in [0, N).
func (g Grid) Coords(i int) (x, y int) {
	return i % g.NX, i / g.NX
}

// Weights returns the squared inverse grid spacings (nx/lx)^2 and
// (ny/ly)^2. The second weight is zero for 1D grids.
func (g Grid) Weights() (mx, my float64) {
	mx = float64(g.NX) / g.LX
	mx *= mx
	if g.NY > 1 {
		my = float64(g.NY) / g.LY
		my *= my
	}
	return mx, my
}

// OnBoundary reports whether cell (x, y) loses a neighbour under open
// boundary conditions.
func (g Grid) OnBoundary(x, y int) bool {
	if x == 0 || x == g.NX-1 {
		return true
	}
	return g.NY > 1 && (y == 0 || y == g.NY-1)
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
