package config

import (
	"os"

	"github.com/markovmodel/compsci-2018/internal/experiment"
	"github.com/markovmodel/compsci-2018/internal/langevin"
	"github.com/markovmodel/compsci-2018/internal/laplace"
	"github.com/markovmodel/compsci-2018/internal/poisson"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGridSize  = 32
	DefaultLength    = 1.0
	DefaultParticles = 100
	DefaultSteps     = 10000
	DefaultBurnIn    = 1000
)

// Config is the file format of the compsci CLI. The laplacian section is
// kept untyped so that laplace.GridFromParams reports bad values as type
// mismatches.
type Config struct {
	Laplacian map[string]any `yaml:"laplacian"`
	Poisson   PoissonConfig  `yaml:"poisson"`
	Langevin  LangevinConfig `yaml:"langevin"`
}

type PoissonConfig struct {
	Method        string  `yaml:"method"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

type LangevinConfig struct {
	Potential  string             `yaml:"potential"`
	Integrator string             `yaml:"integrator"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Particles  int                `yaml:"particles"`
	Dim        int                `yaml:"dim"`
	Mass       float64            `yaml:"mass"`
	InitState  []float64          `yaml:"init_state,omitempty"`
	Steps      int                `yaml:"steps"`
	BurnIn     int                `yaml:"burn_in"`
	Dt         float64            `yaml:"dt"`
	Damping    float64            `yaml:"damping"`
	Beta       float64            `yaml:"beta"`
	Seed       int64              `yaml:"seed"`
}

func defaultLaplacian() map[string]any {
	return map[string]any{
		laplace.KeyNX:       DefaultGridSize,
		laplace.KeyNY:       DefaultGridSize,
		laplace.KeyLX:       DefaultLength,
		laplace.KeyLY:       DefaultLength,
		laplace.KeyPeriodic: true,
	}
}

func DefaultConfig() *Config {
	p := langevin.DefaultParams()
	return &Config{
		Laplacian: defaultLaplacian(),
		Poisson: PoissonConfig{
			Method:    "cg",
			Tolerance: poisson.DefaultTolerance,
		},
		Langevin: LangevinConfig{
			Potential:  "harmonic",
			Integrator: "baoab",
			Particles:  DefaultParticles,
			Dim:        1,
			Mass:       1.0,
			Steps:      DefaultSteps,
			BurnIn:     DefaultBurnIn,
			Dt:         p.Dt,
			Damping:    p.Damping,
			Beta:       p.Beta,
		},
	}
}

// Load reads a YAML file over the defaults. A laplacian section replaces the
// default grid as a whole, so a file giving only nx describes a line.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Laplacian = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Laplacian == nil {
		cfg.Laplacian = defaultLaplacian()
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Grid validates the laplacian section.
func (c *Config) Grid() (laplace.Grid, error) {
	return laplace.GridFromParams(c.Laplacian)
}

func (c *Config) PoissonSettings() poisson.Settings {
	return poisson.Settings{
		Tolerance:     c.Poisson.Tolerance,
		MaxIterations: c.Poisson.MaxIterations,
	}
}

// StepParams returns the integrator parameters.
func (l LangevinConfig) StepParams() langevin.Params {
	return langevin.Params{Dt: l.Dt, Damping: l.Damping, Beta: l.Beta}
}

// SetSteps changes the run length. A burn-in that no longer fits is cut to a
// tenth of the run, the ratio of the defaults.
func (l *LangevinConfig) SetSteps(n int) {
	l.Steps = n
	if l.BurnIn > n {
		l.BurnIn = n * DefaultBurnIn / DefaultSteps
	}
}

func (l LangevinConfig) Experiment() experiment.Config {
	return experiment.Config{
		Potential:  l.Potential,
		Integrator: l.Integrator,
		Params:     l.Params,
		Particles:  l.Particles,
		Dim:        l.Dim,
		Mass:       l.Mass,
		InitState:  l.InitState,
		Steps:      l.Steps,
		BurnIn:     l.BurnIn,
		Langevin:   l.StepParams(),
		Seed:       l.Seed,
	}
}

func (c *Config) clone() *Config {
	out := *c
	out.Laplacian = make(map[string]any, len(c.Laplacian))
	for k, v := range c.Laplacian {
		out.Laplacian[k] = v
	}
	if c.Langevin.Params != nil {
		out.Langevin.Params = make(map[string]float64, len(c.Langevin.Params))
		for k, v := range c.Langevin.Params {
			out.Langevin.Params[k] = v
		}
	}
	out.Langevin.InitState = append([]float64(nil), c.Langevin.InitState...)
	return &out
}
