package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markovmodel/compsci-2018/internal/analysis"
	"github.com/markovmodel/compsci-2018/internal/langevin"
	"github.com/markovmodel/compsci-2018/internal/potential"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func liveModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(LiveConfig{
		Potential:     potential.NewDoubleWell(),
		X0:            mat.NewDense(3, 1, []float64{-1, 0, 1}),
		Mass:          []float64{1, 1, 1},
		Params:        langevin.Params{Dt: 0.01, Damping: 1, Beta: 2},
		Seed:          1,
		StepsPerFrame: 5,
	})
	require.NoError(t, err)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTicks(t *testing.T) {
	m := liveModel(t)
	require.NotNil(t, m.Init())

	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	require.InDelta(t, 0.1, m.Time(), 1e-12)
	require.NoError(t, m.Err())

	m = update(m, key(" "))
	require.False(t, m.Running())
	m = update(m, TickMsg(time.Now()))
	require.InDelta(t, 0.1, m.Time(), 1e-12)

	m = update(m, key("r"))
	require.Zero(t, m.Time())
}

func TestModelReproducible(t *testing.T) {
	a, b := liveModel(t), liveModel(t)
	for i := 0; i < 10; i++ {
		a = update(a, TickMsg(time.Now()))
		b = update(b, TickMsg(time.Now()))
	}
	require.True(t, mat.Equal(a.x, b.x))
}

func TestModelAdjustParams(t *testing.T) {
	m := liveModel(t)
	m = update(m, key("up"))
	require.InDelta(t, 2.2, m.Params().Beta, 1e-12)

	m = update(m, key("tab"))
	m = update(m, key("j"))
	require.InDelta(t, 1/1.1, m.Params().Damping, 1e-12)
	require.NoError(t, m.Err())
}

func TestModelView(t *testing.T) {
	m := liveModel(t)
	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	view := m.View()
	require.Contains(t, view, "DOUBLEWELL")
	require.Contains(t, view, "beta")

	m = update(m, key("?"))
	require.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
}

func TestNewModelRejectsBadParams(t *testing.T) {
	_, err := NewModel(LiveConfig{
		Potential: potential.NewHarmonic(),
		X0:        mat.NewDense(1, 1, nil),
		Mass:      []float64{1},
		Params:    langevin.Params{Dt: -1, Beta: 1},
	})
	require.Error(t, err)
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	require.Equal(t, string([]rune{0x2801, 0x2880})+"\n", c.String())

	c.Clear()
	c.DrawLine(0, 0, 3, 0)
	require.Equal(t, string([]rune{0x2809, 0x2809})+"\n", c.String())
}

func TestViewport(t *testing.T) {
	c := NewCanvas(10, 5)
	v := Viewport{XMin: -1, XMax: 1, YMin: 0, YMax: 1}
	x, y := v.Pixel(c, -1, 1)
	require.Equal(t, 0, x)
	require.Equal(t, 0, y)
	x, y = v.Pixel(c, 1, 0)
	require.Equal(t, 19, x)
	require.Equal(t, 19, y)
}

func TestPlots(t *testing.T) {
	require.Empty(t, PlotSeries(nil, "x", 10, 3))
	out := PlotSeries([]float64{0, 1, 0, -1}, "wave", 20, 4)
	require.Contains(t, out, "wave")

	h, err := analysis.NewHistogram([]float64{0, 1, 1, 2}, 3)
	require.NoError(t, err)
	require.NotEmpty(t, PlotHistogram(h, "density", 4))

	require.NotEmpty(t, PlotMany([][]float64{{0, 1}, {1, 0}}, "two", 10, 3))
	spark := Sparkline([]float64{1, 2, 3, 4}, 4)
	for _, c := range []string{"▁", "▃", "▅", "█"} {
		require.True(t, strings.Contains(spark, c), "missing %s in %q", c, spark)
	}
	require.Equal(t, "───", Sparkline(nil, 3))
}
