package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"github.com/markovmodel/compsci-2018/internal/config"
	"github.com/markovmodel/compsci-2018/internal/laplace"
	"github.com/markovmodel/compsci-2018/internal/poisson"
	"github.com/markovmodel/compsci-2018/internal/storage"
	"github.com/markovmodel/compsci-2018/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// maxEigenCheck bounds the dense eigendecomposition done by --spectrum.
const maxEigenCheck = 1024

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&nx, "nx", config.DefaultGridSize, "grid points along x")
	cmd.Flags().IntVar(&ny, "ny", config.DefaultGridSize, "grid points along y (1 for a line)")
	cmd.Flags().Float64Var(&lx, "lx", config.DefaultLength, "box length along x")
	cmd.Flags().Float64Var(&ly, "ly", config.DefaultLength, "box length along y")
	cmd.Flags().BoolVar(&open, "open", false, "open instead of periodic boundaries")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// gridParams overlays changed flags on the laplacian section. The result is
// validated by laplace.GridFromParams like any file input.
func gridParams(cmd *cobra.Command, cfg *config.Config) map[string]any {
	params := make(map[string]any, len(cfg.Laplacian))
	for k, v := range cfg.Laplacian {
		params[k] = v
	}
	if cmd.Flags().Changed("nx") {
		params[laplace.KeyNX] = nx
	}
	if cmd.Flags().Changed("ny") {
		if ny == 1 {
			delete(params, laplace.KeyNY)
			delete(params, laplace.KeyLY)
		} else {
			params[laplace.KeyNY] = ny
			if _, ok := params[laplace.KeyLY]; !ok {
				params[laplace.KeyLY] = ly
			}
		}
	}
	if cmd.Flags().Changed("lx") {
		params[laplace.KeyLX] = lx
	}
	if cmd.Flags().Changed("ly") {
		params[laplace.KeyLY] = ly
	}
	if cmd.Flags().Changed("open") {
		params[laplace.KeyPeriodic] = !open
	}
	return params
}

func resolveGrid(cmd *cobra.Command) (*config.Config, laplace.Grid, error) {
	cfg, err := loadConfig("laplacian")
	if err != nil {
		return nil, laplace.Grid{}, err
	}
	g, err := laplace.GridFromParams(gridParams(cmd, cfg))
	if err != nil {
		return nil, laplace.Grid{}, fmt.Errorf("invalid grid: %w", err)
	}
	return cfg, g, nil
}

func laplacianCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laplacian",
		Short: "build a discrete Laplacian",
		RunE:  runLaplacian,
	}
	addGridFlags(cmd)
	cmd.Flags().StringVar(&outFile, "out", "", "write the matrix as CSV to this file")
	cmd.Flags().BoolVar(&spectrum, "spectrum", false, "compare the analytic spectrum with a dense eigendecomposition")
	return cmd
}

func runLaplacian(cmd *cobra.Command, args []string) error {
	_, g, err := resolveGrid(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	l := g.Laplacian()
	slog.Info("assembled laplacian", "nx", g.NX, "ny", g.NY, "periodic", g.Periodic, "elapsed", time.Since(start))

	fmt.Println(viz.Title.Render("discrete laplacian"))
	fmt.Printf("grid:      %d x %d (N = %d)\n", g.NX, g.NY, g.N())
	fmt.Printf("box:       %g x %g\n", g.LX, g.LY)
	fmt.Printf("periodic:  %v\n", g.Periodic)
	mx, my := g.Weights()
	fmt.Printf("weights:   mx = %g, my = %g, diagonal = %g\n", mx, my, l.At(0, 0))

	ev := g.Eigenvalues()
	fmt.Printf("spectrum:  [%g, %g]\n", ev[0], ev[len(ev)-1])

	if spectrum {
		if g.N() > maxEigenCheck {
			return fmt.Errorf("--spectrum supports at most %d grid points, got %d", maxEigenCheck, g.N())
		}
		var eig mat.EigenSym
		if ok := eig.Factorize(mat.NewSymDense(g.N(), l.RawMatrix().Data), false); !ok {
			return fmt.Errorf("eigendecomposition failed")
		}
		got := eig.Values(nil)
		sort.Float64s(got)
		maxErr := 0.0
		for i := range got {
			maxErr = math.Max(maxErr, math.Abs(got[i]-ev[i]))
		}
		fmt.Printf("max |numeric - analytic| eigenvalue: %.3e\n", maxErr)
	}

	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := storage.WriteMatrix(f, l); err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}
		fmt.Printf("matrix written to %s\n", outFile)
	}
	return nil
}

func poissonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poisson",
		Short: "solve -L phi = rho for a test charge density",
		RunE:  runPoisson,
	}
	addGridFlags(cmd)
	cmd.Flags().StringVar(&method, "method", "", "cg or direct (default from config)")
	cmd.Flags().StringVar(&source, "source", "mode", "charge density: mode or dipole")
	cmd.Flags().Float64Var(&tol, "tol", 0, "cg tolerance (default from config)")
	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "cg iteration limit (default 2N)")
	return cmd
}

func chargeDensity(g laplace.Grid, kind string) ([]float64, error) {
	switch kind {
	case "mode":
		return g.Sample(func(x, y float64) float64 {
			return math.Sin(2*math.Pi*x/g.LX) * math.Cos(2*math.Pi*y/math.Max(g.LY, 1e-300))
		}), nil
	case "dipole":
		rho := make([]float64, g.N())
		rho[g.Index(g.NX/4, g.NY/2)] = 1
		rho[g.Index(3*g.NX/4, g.NY/2)] = -1
		return rho, nil
	}
	return nil, fmt.Errorf("unknown source: %s", kind)
}

func runPoisson(cmd *cobra.Command, args []string) error {
	cfg, g, err := resolveGrid(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("method") {
		cfg.Poisson.Method = method
	}
	settings := cfg.PoissonSettings()
	if cmd.Flags().Changed("tol") {
		settings.Tolerance = tol
	}
	if cmd.Flags().Changed("max-iter") {
		settings.MaxIterations = maxIter
	}

	rho, err := chargeDensity(g, source)
	if err != nil {
		return err
	}
	l := g.Laplacian()
	if g.Periodic {
		poisson.RemoveMean(rho)
	}

	var phi []float64
	switch cfg.Poisson.Method {
	case "", "cg":
		res, err := poisson.Solve(l, rho, settings)
		if err != nil {
			return fmt.Errorf("poisson: %w", err)
		}
		phi = res.X
		slog.Info("cg finished", "iterations", res.Stats.Iterations, "residual", res.Stats.ResidualNorm, "runtime", res.Stats.Runtime)
	case "direct":
		if phi, err = poisson.Direct(l, rho); err != nil {
			return fmt.Errorf("poisson: %w", err)
		}
	default:
		return fmt.Errorf("unknown method: %s", cfg.Poisson.Method)
	}

	fmt.Printf("max residual |-L phi - rho|: %.3e\n", poisson.Residual(l, phi, rho))

	row := make([]float64, g.NX)
	for x := range row {
		row[x] = phi[g.Index(x, g.NY/2)]
	}
	fmt.Println(viz.PlotSeries(row, fmt.Sprintf("phi along y = %d", g.NY/2), 80, 10))
	return nil
}
