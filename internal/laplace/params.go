package laplace

import (
	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/mat"
)

// Parameter keys understood by FromParams.
const (
	KeyNX       = "nx"
	KeyNY       = "ny"
	KeyLX       = "lx"
	KeyLY       = "ly"
	KeyPeriodic = "periodic"
)

// GridFromParams validates untyped grid parameters, as decoded from YAML or
// JSON. A missing ny selects a 1D grid; a missing periodic flag means
// periodic boundaries.
func GridFromParams(params map[string]any) (Grid, error) {
	const op = "laplace.FromParams"

	nx, err := core.Int(op, KeyNX, params[KeyNX])
	if err != nil {
		return Grid{}, core.AsDimension(err)
	}
	_, twoD := params[KeyNY]
	ny := 1
	if twoD {
		if ny, err = core.Int(op, KeyNY, params[KeyNY]); err != nil {
			return Grid{}, core.AsDimension(err)
		}
	}
	lx, err := core.Float(op, KeyLX, params[KeyLX])
	if err != nil {
		return Grid{}, err
	}
	var ly float64
	if twoD {
		if ly, err = core.Float(op, KeyLY, params[KeyLY]); err != nil {
			return Grid{}, err
		}
	}
	periodic := true
	if v, ok := params[KeyPeriodic]; ok {
		if periodic, err = core.Bool(op, KeyPeriodic, v); err != nil {
			return Grid{}, err
		}
	}

	if twoD {
		return NewGrid(nx, ny, lx, ly, periodic)
	}
	return NewLine(nx, lx, periodic)
}

// FromParams builds the Laplacian described by untyped parameters.
func FromParams(params map[string]any) (*mat.Dense, error) {
	g, err := GridFromParams(params)
	if err != nil {
		return nil, err
	}
	return g.Laplacian(), nil
}

// Params is the inverse of GridFromParams.
func (g Grid) Params() map[string]any {
	p := map[string]any{
		KeyNX:       g.NX,
		KeyLX:       g.LX,
		KeyPeriodic: g.Periodic,
	}
	if g.NY > 1 {
		p[KeyNY] = g.NY
		p[KeyLY] = g.LY
	}
	return p
}
