package config

import (
	"sort"

	"github.com/markovmodel/compsci-2018/internal/laplace"
)

func preset(fn func(c *Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// Presets are grouped by the command they are meant for.
var Presets = map[string]map[string]*Config{
	"laplacian": {
		"line": preset(func(c *Config) {
			c.Laplacian = map[string]any{laplace.KeyNX: 100, laplace.KeyLX: 1.0, laplace.KeyPeriodic: true}
		}),
		"square": preset(func(c *Config) {
			c.Laplacian = map[string]any{laplace.KeyNX: 64, laplace.KeyNY: 64, laplace.KeyLX: 1.0, laplace.KeyLY: 1.0, laplace.KeyPeriodic: true}
		}),
		"box": preset(func(c *Config) {
			c.Laplacian = map[string]any{laplace.KeyNX: 32, laplace.KeyNY: 32, laplace.KeyLX: 1.0, laplace.KeyLY: 1.0, laplace.KeyPeriodic: false}
		}),
		"torus": preset(func(c *Config) {
			c.Laplacian = map[string]any{laplace.KeyNX: 40, laplace.KeyNY: 20, laplace.KeyLX: 2.0, laplace.KeyLY: 1.0, laplace.KeyPeriodic: true}
		}),
	},
	"langevin": {
		"harmonic": preset(func(c *Config) {
			c.Langevin.Potential = "harmonic"
			c.Langevin.Dt, c.Langevin.Damping, c.Langevin.Beta = 0.01, 1.0, 2.0
			c.Langevin.Steps, c.Langevin.BurnIn = 2000, 500
		}),
		"doublewell": preset(func(c *Config) {
			c.Langevin.Potential = "doublewell"
			c.Langevin.Particles = 10
			c.Langevin.Dt, c.Langevin.Damping, c.Langevin.Beta = 0.01, 1.0, 3.0
			c.Langevin.Steps, c.Langevin.BurnIn = 20000, 1000
		}),
		"nve": preset(func(c *Config) {
			c.Langevin.Potential = "harmonic"
			c.Langevin.Integrator = "verlet"
			c.Langevin.Particles = 1
			c.Langevin.InitState = []float64{1.0}
			c.Langevin.Dt, c.Langevin.Damping = 0.01, 0
			c.Langevin.Steps, c.Langevin.BurnIn = 5000, 0
		}),
		"diffusion": preset(func(c *Config) {
			c.Langevin.Potential = "flat"
			c.Langevin.Dim = 2
			c.Langevin.Dt, c.Langevin.Damping, c.Langevin.Beta = 0.01, 1.0, 1.0
			c.Langevin.Steps, c.Langevin.BurnIn = 5000, 0
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(kind, name string) *Config {
	group, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := group[name]
	if !ok {
		return nil
	}
	return cfg.clone()
}

// ListPresets returns the sorted preset names of a group, or nil.
func ListPresets(kind string) []string {
	group, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds returns the preset groups.
func Kinds() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
