package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/markovmodel/compsci-2018/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	preset     string

	// grid
	nx, ny   int
	lx, ly   float64
	open     bool
	outFile  string
	spectrum bool

	// poisson
	method  string
	source  string
	tol     float64
	maxIter int

	// langevin
	potentialName string
	integrator    string
	particles     int
	dim           int
	mass          float64
	steps         int
	burnIn        int
	dt            float64
	damping       float64
	beta          float64
	seed          int64
	runs          int
	noSave        bool
	frameSteps    int

	// plots
	particle int
	axis     int
	bins     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "compsci",
		Short:         "discrete Laplacians, Poisson solves and Langevin dynamics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".compsci", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		laplacianCmd(),
		poissonCmd(),
		regressCmd(),
		langevinCmd(),
		liveCmd(),
		listCmd(),
		plotCmd(),
		phaseCmd(),
		exportJSONCmd(),
		presetsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
	return nil
}

// loadConfig resolves defaults, then the preset, then the config file. Flags
// are applied by the commands themselves.
func loadConfig(kind string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(kind, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(kind), ", "))
		}
		slog.Debug("using preset", "kind", kind, "name", preset)
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		slog.Debug("loaded config", "path", configFile)
	}
	return cfg, nil
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := config.Kinds()
			if len(args) == 1 {
				kinds = args
			}
			for _, kind := range kinds {
				presets := config.ListPresets(kind)
				if len(presets) == 0 {
					fmt.Printf("no presets for: %s\n", kind)
					continue
				}
				fmt.Printf("presets for %s:\n", kind)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}
}
