package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markovmodel/compsci-2018/internal/analysis"
	"github.com/markovmodel/compsci-2018/internal/config"
	"github.com/markovmodel/compsci-2018/internal/experiment"
	"github.com/markovmodel/compsci-2018/internal/langevin"
	"github.com/markovmodel/compsci-2018/internal/metrics"
	"github.com/markovmodel/compsci-2018/internal/storage"
	"github.com/markovmodel/compsci-2018/internal/viz"
	"github.com/spf13/cobra"
)

func addLangevinFlags(cmd *cobra.Command) {
	d := config.DefaultConfig().Langevin
	cmd.Flags().StringVar(&potentialName, "potential", d.Potential, "potential (harmonic, doublewell, flat)")
	cmd.Flags().StringVar(&integrator, "integrator", d.Integrator, "integrator (baoab, verlet)")
	cmd.Flags().IntVar(&particles, "particles", d.Particles, "number of particles")
	cmd.Flags().IntVar(&dim, "dim", d.Dim, "dimensions per particle")
	cmd.Flags().Float64Var(&mass, "mass", d.Mass, "particle mass")
	cmd.Flags().IntVar(&steps, "steps", d.Steps, "integration steps")
	cmd.Flags().IntVar(&burnIn, "burn-in", d.BurnIn, "frames skipped by the metrics")
	cmd.Flags().Float64Var(&dt, "dt", d.Dt, "timestep")
	cmd.Flags().Float64Var(&damping, "damping", d.Damping, "friction coefficient")
	cmd.Flags().Float64Var(&beta, "beta", d.Beta, "inverse temperature")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// langevinConfig applies changed flags over the preset or config file.
func langevinConfig(cmd *cobra.Command) (config.LangevinConfig, error) {
	cfg, err := loadConfig("langevin")
	if err != nil {
		return config.LangevinConfig{}, err
	}
	l := cfg.Langevin
	f := cmd.Flags()
	if f.Changed("potential") {
		l.Potential = potentialName
	}
	if f.Changed("integrator") {
		l.Integrator = integrator
	}
	if f.Changed("particles") {
		l.Particles = particles
		l.InitState = nil
	}
	if f.Changed("dim") {
		l.Dim = dim
		l.InitState = nil
	}
	if f.Changed("mass") {
		l.Mass = mass
	}
	if f.Changed("steps") {
		l.SetSteps(steps)
	}
	if f.Changed("burn-in") {
		l.BurnIn = burnIn
	}
	if f.Changed("dt") {
		l.Dt = dt
	}
	if f.Changed("damping") {
		l.Damping = damping
	}
	if f.Changed("beta") {
		l.Beta = beta
	}
	if f.Changed("seed") || l.Seed == 0 {
		l.Seed = seed
	}
	return l, nil
}

func langevinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langevin",
		Short: "integrate Langevin dynamics with BAOAB",
		RunE:  runLangevin,
	}
	addLangevinFlags(cmd)
	cmd.Flags().IntVar(&runs, "runs", 1, "independent runs in parallel (seeds seed, seed+1, ...)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	return cmd
}

func runLangevin(cmd *cobra.Command, args []string) error {
	lc, err := langevinConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if runs > 1 {
		return runEnsemble(ctx, lc)
	}

	expCfg := lc.Experiment()
	registry := experiment.NewRegistry()
	pot, err := registry.GetPotential(expCfg.Potential, expCfg.Params)
	if err != nil {
		return err
	}
	exp := experiment.New(expCfg)
	if err := exp.Setup(pot, registry.DefaultMetrics(pot, exp.Masses())); err != nil {
		return err
	}

	slog.Info("running langevin", "potential", expCfg.Potential, "integrator", expCfg.Integrator,
		"particles", expCfg.Particles, "dim", expCfg.Dim, "steps", expCfg.Steps, "seed", expCfg.Seed)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(expCfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("steps: %d\n", result.Trajectory.Steps())
	fmt.Printf("1/beta: %.6f\n", 1/expCfg.Langevin.Beta)
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runEnsemble(ctx context.Context, lc config.LangevinConfig) error {
	expCfg := lc.Experiment()
	registry := experiment.NewRegistry()
	pot, err := registry.GetPotential(expCfg.Potential, expCfg.Params)
	if err != nil {
		return err
	}
	exp := experiment.New(expCfg)
	if err := exp.Setup(pot, nil); err != nil {
		return err
	}
	x0, v0 := exp.InitialState()
	mass := exp.Masses()

	ens := langevin.Ensemble{Runs: runs, SeedStart: expCfg.Seed}
	slog.Info("running ensemble", "runs", runs, "seed_start", expCfg.Seed)
	trajs, err := ens.Run(ctx, pot.Force, expCfg.Steps, x0, v0, mass, expCfg.Langevin)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tT_KIN\tMEAN_ENERGY\tMSD")
	for i, traj := range trajs {
		got := metrics.Evaluate(traj, expCfg.BurnIn,
			metrics.NewKineticTemperature(mass),
			metrics.NewMeanEnergy(pot, mass),
			metrics.NewMeanSquareDisplacement(),
		)
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%.4f\n", i, expCfg.Seed+int64(i),
			got["kinetic_temperature"], got["mean_energy"], got["msd"])
	}
	return w.Flush()
}

func liveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "integrate with live visualization",
		RunE:  runLive,
	}
	addLangevinFlags(cmd)
	cmd.Flags().IntVar(&frameSteps, "steps-per-frame", 10, "integration steps per frame")
	return cmd
}

func runLive(cmd *cobra.Command, args []string) error {
	lc, err := langevinConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("particles") && preset == "" && configFile == "" {
		lc.Particles = 20
	}
	expCfg := lc.Experiment()
	pot, err := experiment.NewRegistry().GetPotential(expCfg.Potential, expCfg.Params)
	if err != nil {
		return err
	}
	exp := experiment.New(expCfg)
	if err := exp.Setup(pot, nil); err != nil {
		return err
	}
	x0, _ := exp.InitialState()

	m, err := viz.NewModel(viz.LiveConfig{
		Potential:     pot,
		X0:            x0,
		Mass:          exp.Masses(),
		Params:        expCfg.Langevin,
		Seed:          expCfg.Seed,
		StepsPerFrame: frameSteps,
	})
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stored, err := st.List()
	if err != nil {
		return err
	}

	if len(stored) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOTENTIAL\tTIME\tSTEPS\tDT\tBETA\tINTEG")
	for _, run := range stored {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%.3f\t%s\n",
			run.ID,
			run.Potential,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Beta,
			run.Integrator,
		)
	}
	return w.Flush()
}

func plotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a coordinate of a stored run and its distribution",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().IntVar(&particle, "particle", 0, "particle index")
	cmd.Flags().IntVar(&axis, "axis", 0, "coordinate index")
	cmd.Flags().IntVar(&bins, "bins", 40, "histogram bins")
	return cmd
}

func loadRun(runID string) (*storage.RunMetadata, *langevin.Trajectory, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(traj.X) == 0 {
		return nil, nil, fmt.Errorf("no data to plot")
	}
	if particle < 0 || particle >= meta.Particles || axis < 0 || axis >= meta.Dim {
		return nil, nil, fmt.Errorf("coordinate (%d, %d) outside %d x %d", particle, axis, meta.Particles, meta.Dim)
	}
	return meta, traj, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("potential: %s\n", meta.Potential)
	fmt.Printf("frames: %d\n\n", len(traj.X))

	series := traj.Coordinate(particle, axis)
	fmt.Println(viz.PlotSeries(series, fmt.Sprintf("x[%d][%d] vs time", particle, axis), 80, 10))
	fmt.Println()

	h, err := analysis.NewHistogram(series, bins)
	if err != nil {
		return err
	}
	fmt.Println(viz.PlotHistogram(h, "position density", 8))

	acf := analysis.Autocorrelation(series, min(200, len(series)-1))
	if acf != nil {
		fmt.Println()
		fmt.Println(viz.PlotSeries(acf, "autocorrelation", 80, 6))
	}
	if meta.Potential == "doublewell" {
		fmt.Printf("\nwell transitions: %d\n", analysis.Transitions(series, -0.5, 0.5))
	}
	return nil
}

func phaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "position-velocity portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	cmd.Flags().IntVar(&particle, "particle", 0, "particle index")
	cmd.Flags().IntVar(&axis, "axis", 0, "coordinate index")
	return cmd
}

func phasePlot(cmd *cobra.Command, args []string) error {
	_, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	p := analysis.PhasePortrait(traj, particle, axis)
	fmt.Printf("phase portrait: x[%d][%d] vs v[%d][%d]\n\n", particle, axis, particle, axis)
	fmt.Print(analysis.PhasePortraitToASCII(p, 80, 24))
	return nil
}

func exportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			traj, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			return storage.ExportJSON(os.Stdout, *meta, traj)
		},
	}
}
