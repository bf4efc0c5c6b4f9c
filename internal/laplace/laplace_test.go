package laplace_test

import (
	"math"
	"testing"

	"github.com/markovmodel/compsci-2018/internal/core"
	"github.com/markovmodel/compsci-2018/internal/laplace"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func scaled(rows [][]float64, s float64) *mat.Dense {
	n := len(rows)
	m := mat.NewDense(n, len(rows[0]), nil)
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, v*s)
		}
	}
	return m
}

func requireMatrix(t *testing.T, want, got *mat.Dense) {
	t.Helper()
	require.True(t, mat.EqualApprox(want, got, 1e-7), "want\n%v\ngot\n%v", mat.Formatted(want), mat.Formatted(got))
}

func TestBuild1D(t *testing.T) {
	lap, err := laplace.Build1D(3, 1, true)
	require.NoError(t, err)
	requireMatrix(t, scaled([][]float64{
		{-2, 1, 1},
		{1, -2, 1},
		{1, 1, -2},
	}, 9), lap)

	lap, err = laplace.Build1D(3, 1, false)
	require.NoError(t, err)
	requireMatrix(t, scaled([][]float64{
		{-2, 1, 0},
		{1, -2, 1},
		{0, 1, -2},
	}, 9), lap)
}

func TestBuild1DTwoPoints(t *testing.T) {
	// Both neighbours of each point coincide.
	lap, err := laplace.Build1D(2, 1, true)
	require.NoError(t, err)
	requireMatrix(t, scaled([][]float64{{-2, 2}, {2, -2}}, 4), lap)

	lap, err = laplace.Build1D(2, 1, false)
	require.NoError(t, err)
	requireMatrix(t, scaled([][]float64{{-2, 1}, {1, -2}}, 4), lap)
}

func TestBuild2D(t *testing.T) {
	lap, err := laplace.Build2D(3, 3, 1, 1, true)
	require.NoError(t, err)
	requireMatrix(t, scaled([][]float64{
		{-4, 1, 1, 1, 0, 0, 1, 0, 0},
		{1, -4, 1, 0, 1, 0, 0, 1, 0},
		{1, 1, -4, 0, 0, 1, 0, 0, 1},
		{1, 0, 0, -4, 1, 1, 1, 0, 0},
		{0, 1, 0, 1, -4, 1, 0, 1, 0},
		{0, 0, 1, 1, 1, -4, 0, 0, 1},
		{1, 0, 0, 1, 0, 0, -4, 1, 1},
		{0, 1, 0, 0, 1, 0, 1, -4, 1},
		{0, 0, 1, 0, 0, 1, 1, 1, -4},
	}, 9), lap)

	lap, err = laplace.Build2D(3, 3, 1, 1, false)
	require.NoError(t, err)
	requireMatrix(t, scaled([][]float64{
		{-4, 1, 0, 1, 0, 0, 0, 0, 0},
		{1, -4, 1, 0, 1, 0, 0, 0, 0},
		{0, 1, -4, 0, 0, 1, 0, 0, 0},
		{1, 0, 0, -4, 1, 0, 1, 0, 0},
		{0, 1, 0, 1, -4, 1, 0, 1, 0},
		{0, 0, 1, 0, 1, -4, 0, 0, 1},
		{0, 0, 0, 1, 0, 0, -4, 1, 0},
		{0, 0, 0, 0, 1, 0, 1, -4, 1},
		{0, 0, 0, 0, 0, 1, 0, 1, -4},
	}, 9), lap)
}

func TestBuild2DTwoByTwoOpen(t *testing.T) {
	lap, err := laplace.Build2D(2, 2, 1, 1, false)
	require.NoError(t, err)
	// mx = my = 4; each cell keeps one neighbour per axis.
	requireMatrix(t, mat.NewDense(4, 4, []float64{
		-16, 4, 4, 0,
		4, -16, 0, 4,
		4, 0, -16, 4,
		0, 4, 4, -16,
	}), lap)
}

func TestBuild2DStencil(t *testing.T) {
	nx, ny, lx, ly := 5, 4, 1.0, 1.0
	lap, err := laplace.Build2D(nx, ny, lx, ly, true)
	require.NoError(t, err)

	mx := math.Pow(float64(nx)/lx, 2)
	my := math.Pow(float64(ny)/ly, 2)
	n := nx * ny
	r, c := lap.Dims()
	require.Equal(t, n, r)
	require.Equal(t, n, c)

	for i := 0; i < n; i++ {
		require.Equal(t, -2*(mx+my), lap.At(i, i))
		if i+1 < n {
			require.Contains(t, []float64{0, mx}, lap.At(i, i+1))
			require.Contains(t, []float64{0, mx}, lap.At(i+1, i))
		}
		require.Equal(t, 5, nonZero(mat.Row(nil, i, lap)))
		require.Equal(t, 5, nonZero(mat.Col(nil, i, lap)))
	}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			i := x + nx*y
			right := (x+1)%nx + y*nx
			up := (x + nx*(y+1)) % n
			require.Equal(t, mx, lap.At(i, right))
			require.Equal(t, mx, lap.At(right, i))
			require.Equal(t, my, lap.At(i, up))
			require.Equal(t, my, lap.At(up, i))
		}
	}

	open, err := laplace.Build2D(nx, ny, lx, ly, false)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		k := nonZero(mat.Row(nil, i, open))
		require.True(t, k > 2 && k < 6, "row %d has %d entries", i, k)
	}
}

func TestBuild2DLargeGridMatchesReference(t *testing.T) {
	// Tall enough to split the assembly across goroutines.
	nx, ny := 7, 53
	for _, periodic := range []bool{true, false} {
		lap, err := laplace.Build2D(nx, ny, 2, 3, periodic)
		require.NoError(t, err)
		requireMatrix(t, reference(nx, ny, 2, 3, periodic), lap)
	}
}

func reference(nx, ny int, lx, ly float64, periodic bool) *mat.Dense {
	n := nx * ny
	mx := math.Pow(float64(nx)/lx, 2)
	my := math.Pow(float64(ny)/ly, 2)
	m := mat.NewDense(n, n, nil)
	add := func(i, x, y int, w float64) {
		if !periodic && (x < 0 || x >= nx || y < 0 || y >= ny) {
			return
		}
		x, y = (x+nx)%nx, (y+ny)%ny
		j := x + y*nx
		m.Set(i, j, m.At(i, j)+w)
	}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			i := x + y*nx
			m.Set(i, i, -2*(mx+my))
			add(i, x-1, y, mx)
			add(i, x+1, y, mx)
			add(i, x, y-1, my)
			add(i, x, y+1, my)
		}
	}
	return m
}

func nonZero(v []float64) int {
	k := 0
	for _, x := range v {
		if x != 0 {
			k++
		}
	}
	return k
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name      string
		nx, ny    int
		lx, ly    float64
		wantErr   error
		dimension bool
	}{
		{"nx too small", 1, 3, 1, 1, core.ErrValueOutOfRange, true},
		{"ny too small", 3, 1, 1, 1, core.ErrValueOutOfRange, true},
		{"both too small", 1, 1, 1, 1, core.ErrValueOutOfRange, true},
		{"negative ly", 3, 3, 1, -1, core.ErrValueOutOfRange, false},
		{"negative lx", 3, 3, -1, 1, core.ErrValueOutOfRange, false},
		{"zero lx", 3, 3, 0, 1, core.ErrValueOutOfRange, false},
		{"nan ly", 3, 3, 1, math.NaN(), core.ErrValueOutOfRange, false},
		{"inf lx", 3, 3, math.Inf(1), 1, core.ErrValueOutOfRange, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lap, err := laplace.Build2D(tt.nx, tt.ny, tt.lx, tt.ly, true)
			require.Nil(t, lap)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.dimension {
				require.ErrorIs(t, err, core.ErrInvalidDimension)
			} else {
				require.NotErrorIs(t, err, core.ErrInvalidDimension)
			}
		})
	}

	_, err := laplace.Build1D(1, 1, true)
	require.ErrorIs(t, err, core.ErrInvalidDimension)
	_, err = laplace.Build1D(3, -1, true)
	require.ErrorIs(t, err, core.ErrValueOutOfRange)
}

func TestFromParams(t *testing.T) {
	lap, err := laplace.FromParams(map[string]any{"nx": 3, "ny": 3, "lx": 1, "ly": 1.0, "periodic": false})
	require.NoError(t, err)
	want, err := laplace.Build2D(3, 3, 1, 1, false)
	require.NoError(t, err)
	requireMatrix(t, want, lap)

	lap, err = laplace.FromParams(map[string]any{"nx": 3, "lx": 1})
	require.NoError(t, err)
	want, err = laplace.Build1D(3, 1, true)
	require.NoError(t, err)
	requireMatrix(t, want, lap)
}

func TestFromParamsTypeMismatch(t *testing.T) {
	bad := []any{[]any{0}, "string", map[string]any{"dict": 0}, true}
	base := func() map[string]any {
		return map[string]any{"nx": 3, "ny": 3, "lx": 1, "ly": 1, "periodic": true}
	}

	for _, key := range []string{"nx", "ny", "lx", "ly"} {
		for _, v := range bad {
			p := base()
			p[key] = v
			_, err := laplace.FromParams(p)
			require.ErrorIs(t, err, core.ErrTypeMismatch, "%s=%v", key, v)
			if key == "nx" || key == "ny" {
				require.ErrorIs(t, err, core.ErrInvalidDimension, "%s=%v", key, v)
			}
		}
	}
	for _, v := range bad[:3] {
		p := base()
		p["periodic"] = v
		_, err := laplace.FromParams(p)
		require.ErrorIs(t, err, core.ErrTypeMismatch, "periodic=%v", v)
	}

	_, err := laplace.FromParams(map[string]any{"nx": 3, "ny": 3, "lx": nil, "ly": nil})
	require.ErrorIs(t, err, core.ErrTypeMismatch)
	_, err = laplace.FromParams(map[string]any{"nx": "hello", "lx": 1})
	require.ErrorIs(t, err, core.ErrTypeMismatch)
	_, err = laplace.FromParams(map[string]any{"nx": 1, "ny": 1, "lx": 1, "ly": 1})
	require.ErrorIs(t, err, core.ErrValueOutOfRange)
}

func TestGridParamsRoundTrip(t *testing.T) {
	g, err := laplace.NewGrid(4, 5, 2, 3, false)
	require.NoError(t, err)
	back, err := laplace.GridFromParams(g.Params())
	require.NoError(t, err)
	require.Equal(t, g, back)

	line, err := laplace.NewLine(6, 1.5, true)
	require.NoError(t, err)
	back, err = laplace.GridFromParams(line.Params())
	require.NoError(t, err)
	require.Equal(t, line, back)
}

func TestIndexCoords(t *testing.T) {
	g, err := laplace.NewGrid(4, 3, 1, 1, true)
	require.NoError(t, err)
	for i := 0; i < g.N(); i++ {
		x, y := g.Coords(i)
		require.Equal(t, i, g.Index(x, y))
	}
	require.Equal(t, g.Index(3, 0), g.Index(-1, 0))
	require.Equal(t, g.Index(0, 2), g.Index(0, -1))
	require.Equal(t, g.Index(1, 1), g.Index(5, 4))
}

func TestApply(t *testing.T) {
	lap, err := laplace.Build1D(4, 1, true)
	require.NoError(t, err)
	out, err := laplace.Apply(lap, []float64{1, 1, 1, 1})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 0, 0, 0}, out, 1e-12)

	_, err = laplace.Apply(lap, []float64{1, 1})
	require.ErrorIs(t, err, core.ErrLengthMismatch)
}
