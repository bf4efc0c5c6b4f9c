package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/markovmodel/compsci-2018/internal/langevin"
	"github.com/markovmodel/compsci-2018/internal/metrics"
	"github.com/markovmodel/compsci-2018/internal/potential"
	"gonum.org/v1/gonum/mat"
)

const (
	width           = 60
	height          = 18
	historyCapacity = 300
)

type TickMsg time.Time

// LiveConfig describes the system shown by the live viewer.
type LiveConfig struct {
	Potential potential.Potential
	X0        *mat.Dense
	Mass      []float64
	Params    langevin.Params
	Seed      int64
	// StepsPerFrame integration steps run on every tick.
	StepsPerFrame int
}

// Model integrates a Langevin system on every tick and renders it.
type Model struct {
	cfg     LiveConfig
	stepper *langevin.BAOAB
	rng     *rand.Rand
	x, v    *mat.Dense
	params  langevin.Params
	t       float64
	steps   int
	view    Viewport
	canvas  *Canvas
	running bool

	temperature *metrics.KineticTemperature
	tempHistory []float64
	selected    int
	showHelp    bool
	err         error
}

var paramNames = []string{"beta", "damping"}

// NewModel validates cfg and prepares a stepper at X0 with zero velocities.
func NewModel(cfg LiveConfig) (Model, error) {
	if cfg.StepsPerFrame < 1 {
		cfg.StepsPerFrame = 1
	}
	m := Model{
		cfg:         cfg,
		canvas:      NewCanvas(width, height),
		running:     true,
		temperature: metrics.NewKineticTemperature(cfg.Mass),
		tempHistory: make([]float64, 0, historyCapacity),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	m.view = viewportFor(cfg.Potential, cfg.X0)
	return m, nil
}

// viewportFor frames the starting positions and the potential around them.
func viewportFor(pot potential.Potential, x0 *mat.Dense) Viewport {
	xs := x0.RawMatrix().Data
	lim := 2.0
	for _, x := range xs {
		lim = math.Max(lim, 1.5*math.Abs(x))
	}
	top := 1.0
	probe := mat.NewDense(1, 1, nil)
	for _, x := range []float64{-lim, 0, lim} {
		probe.Set(0, 0, x)
		top = math.Max(top, pot.Energy(probe))
	}
	return Viewport{XMin: -lim, XMax: lim, YMin: -0.1 * top, YMax: top}
}

func (m *Model) reset() error {
	n, d := m.cfg.X0.Dims()
	m.x = mat.DenseCopyOf(m.cfg.X0)
	m.v = mat.NewDense(n, d, nil)
	m.params = m.cfg.Params
	m.rng = rand.New(rand.NewSource(m.cfg.Seed))
	m.t, m.steps = 0, 0
	m.tempHistory = m.tempHistory[:0]
	m.temperature.Reset()
	return m.rebuild()
}

// rebuild restarts the stepper from the current state, for instance after a
// parameter change.
func (m *Model) rebuild() error {
	s, err := langevin.NewBAOAB(m.cfg.Potential.Force, m.x, m.cfg.Mass, m.params, m.rng)
	if err != nil {
		return err
	}
	m.stepper = s
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the system.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.err = m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(paramNames)
		case "up", "k":
			m.adjustParam(1.1)
		case "down", "j":
			m.adjustParam(1 / 1.1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	switch paramNames[m.selected] {
	case "beta":
		m.params.Beta *= factor
	case "damping":
		m.params.Damping *= factor
	}
	m.err = m.rebuild()
}

func (m *Model) advance() {
	for i := 0; i < m.cfg.StepsPerFrame; i++ {
		if err := m.stepper.Step(m.x, m.v); err != nil {
			m.err = err
			return
		}
		m.t += m.params.Dt
		m.steps++
	}
	m.temperature.Reset()
	m.temperature.Observe(m.x, m.v, m.t)
	m.tempHistory = append(m.tempHistory, m.temperature.Value())
	if len(m.tempHistory) > historyCapacity {
		m.tempHistory = m.tempHistory[1:]
	}
}

// Time returns the simulated time.
func (m Model) Time() float64 { return m.t }

// Running reports whether ticks advance the system.
func (m Model) Running() bool { return m.running }

// Params returns the current integration parameters.
func (m Model) Params() langevin.Params { return m.params }

// Err returns the error that stopped the integration, if any.
func (m Model) Err() error { return m.err }

func (m *Model) draw() {
	m.canvas.Clear()
	probe := mat.NewDense(1, 1, nil)
	energy := func(x float64) float64 {
		probe.Set(0, 0, x)
		return m.cfg.Potential.Energy(probe)
	}
	m.view.Curve(m.canvas, energy)

	n, _ := m.x.Dims()
	for i := 0; i < n; i++ {
		x := m.x.At(i, 0)
		m.view.Marker(m.canvas, x, energy(x))
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("LANGEVIN · "+strings.ToUpper(m.cfg.Potential.Name())) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(StatusPaused.Render("ERROR: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.tempHistory) > 1 {
		chart := asciigraph.Plot(m.tempHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic temperature"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	temp := 0.0
	if len(m.tempHistory) > 0 {
		temp = m.tempHistory[len(m.tempHistory)-1]
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("T_kin") + valueStyle.Render(fmt.Sprintf("%.3f (1/β = %.3f)", temp, 1/m.params.Beta)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	values := map[string]float64{"beta": m.params.Beta, "damping": m.params.Damping}
	for i, k := range paramNames {
		line := fmt.Sprintf("%-10s %.3f", k, values[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset                    ║
║  Q        - Quit                     ║
║  Tab      - Select parameter         ║
║  Up/K     - Increase (+10%)          ║
║  Down/J   - Decrease (-10%)          ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
