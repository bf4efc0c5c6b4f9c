package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/markovmodel/compsci-2018/internal/core"
	"github.com/markovmodel/compsci-2018/internal/experiment"
	"github.com/markovmodel/compsci-2018/internal/potential"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	g, err := cfg.Grid()
	if err != nil {
		t.Fatalf("default grid: %v", err)
	}
	if g.NX != DefaultGridSize || g.NY != DefaultGridSize || !g.Periodic {
		t.Errorf("unexpected default grid %+v", g)
	}
	if cfg.Langevin.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Langevin.StepParams().Beta != 1.0 {
		t.Errorf("expected beta 1, got %f", cfg.Langevin.StepParams().Beta)
	}
}

func TestSetStepsClampsBurnIn(t *testing.T) {
	l := DefaultConfig().Langevin
	l.SetSteps(200)
	if l.Steps != 200 || l.BurnIn != 20 {
		t.Errorf("expected steps 200 burn-in 20, got %d %d", l.Steps, l.BurnIn)
	}
	if err := experiment.New(l.Experiment()).Setup(&potential.Harmonic{K: 1}, nil); err != nil {
		t.Fatalf("clamped config rejected: %v", err)
	}

	l = DefaultConfig().Langevin
	l.SetSteps(50000)
	if l.BurnIn != DefaultBurnIn {
		t.Errorf("burn-in should be kept when it fits, got %d", l.BurnIn)
	}
}

func TestParseLine(t *testing.T) {
	cfg, err := Parse([]byte("laplacian:\n  nx: 9\n  lx: 6.283185307179586\n"))
	if err != nil {
		t.Fatal(err)
	}
	g, err := cfg.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if g.NY != 1 || g.NX != 9 || !g.Periodic {
		t.Errorf("expected periodic line of 9, got %+v", g)
	}
	if cfg.Langevin.Potential != "harmonic" {
		t.Error("langevin defaults lost")
	}
}

func TestParseTypeMismatch(t *testing.T) {
	tests := []string{
		"laplacian:\n  nx: hello\n  lx: 1\n",
		"laplacian:\n  nx: [1]\n  lx: 1\n",
		"laplacian:\n  nx: 4\n  lx: 1\n  periodic: 3\n",
		"laplacian:\n  nx: 4.5\n  lx: 1\n",
	}
	for _, src := range tests {
		cfg, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if _, err := cfg.Grid(); !errors.Is(err, core.ErrTypeMismatch) {
			t.Errorf("%q: expected type mismatch, got %v", src, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("langevin", "nve")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Langevin.Integrator != "verlet" || len(loaded.Langevin.InitState) != 1 {
		t.Errorf("round trip lost langevin section: %+v", loaded.Langevin)
	}
	g1, _ := cfg.Grid()
	g2, err := loaded.Grid()
	if err != nil || g1 != g2 {
		t.Errorf("grid round trip: %+v vs %+v (%v)", g1, g2, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("laplacian", "box")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	g, err := cfg.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if g.Periodic {
		t.Error("box preset should have open boundaries")
	}

	cfg.Laplacian["nx"] = 3
	if again := GetPreset("laplacian", "box"); again.Laplacian["nx"] != 32 {
		t.Error("preset modified through returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("laplacian", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "line"); cfg != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestListPresets(t *testing.T) {
	for _, kind := range Kinds() {
		names := ListPresets(kind)
		if len(names) == 0 {
			t.Errorf("expected presets for %s", kind)
		}
		for _, name := range names {
			if _, err := GetPreset(kind, name).Grid(); err != nil {
				t.Errorf("%s/%s: %v", kind, name, err)
			}
		}
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestExperimentConfig(t *testing.T) {
	cfg := GetPreset("langevin", "doublewell")
	exp := cfg.Langevin.Experiment()
	if exp.Potential != "doublewell" || exp.Particles != 10 || exp.Langevin.Beta != 3.0 {
		t.Errorf("unexpected experiment config %+v", exp)
	}
}
