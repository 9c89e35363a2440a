package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/galaxy/pkg/config"
	"github.com/taigrr/galaxy/pkg/galaxy"
	"github.com/taigrr/galaxy/pkg/models"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	seed       uint64
	workers    int

	count      int
	size       float64
	radius     float64
	branches   int
	spin       float64
	randomness float64
	power      float64
	inside     string
	outside    string
}

func (o *options) register(cmd *cobra.Command) {
	def := config.Default()
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "TOML parameter file")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.Uint64Var(&o.seed, "seed", def.Seed, "random seed")
	flags.IntVar(&o.workers, "workers", def.Workers, "generation goroutines, 0 uses every CPU")

	g := def.Galaxy
	flags.IntVar(&o.count, "count", g.Count, "number of points")
	flags.Float64Var(&o.size, "size", g.Size, "point size in world units")
	flags.Float64Var(&o.radius, "radius", g.Radius, "galaxy radius")
	flags.IntVar(&o.branches, "branches", g.Branches, "number of spiral arms")
	flags.Float64Var(&o.spin, "spin", g.Spin, "twist in radians per unit of radius")
	flags.Float64Var(&o.randomness, "randomness", g.Randomness, "perturbation relative to radius")
	flags.Float64Var(&o.power, "randomness-power", g.RandomnessPower, "perturbation falloff exponent")
	flags.StringVar(&o.inside, "inside-color", g.InsideColor, "colour at the centre")
	flags.StringVar(&o.outside, "outside-color", g.OutsideColor, "colour at the rim")
}

// resolve layers defaults, the config file and explicitly set flags.
func (o *options) resolve(cmd *cobra.Command) (config.File, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		slog.Debug("loaded config", "path", o.configPath)
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("seed", func() { cfg.Seed = o.seed })
	set("workers", func() { cfg.Workers = o.workers })
	set("count", func() { cfg.Galaxy.Count = o.count })
	set("size", func() { cfg.Galaxy.Size = o.size })
	set("radius", func() { cfg.Galaxy.Radius = o.radius })
	set("branches", func() { cfg.Galaxy.Branches = o.branches })
	set("spin", func() { cfg.Galaxy.Spin = o.spin })
	set("randomness", func() { cfg.Galaxy.Randomness = o.randomness })
	set("randomness-power", func() { cfg.Galaxy.RandomnessPower = o.power })
	set("inside-color", func() { cfg.Galaxy.InsideColor = o.inside })
	set("outside-color", func() { cfg.Galaxy.OutsideColor = o.outside })

	if _, err := cfg.Parameters(); err != nil {
		return cfg, fmt.Errorf("parameters: %w", err)
	}
	return cfg, nil
}

// setupLogging installs a text slog handler on stderr.
func (o *options) setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// generate builds the configured galaxy.
func generate(cmd *cobra.Command, cfg config.File) (*galaxy.Field, error) {
	p, err := cfg.Parameters()
	if err != nil {
		return nil, err
	}
	f, err := galaxy.GenerateParallel(cmd.Context(), p, cfg.Seed, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	slog.Debug("generated galaxy", "points", f.Len(), "seed", cfg.Seed)
	return f, nil
}

// loadOrGenerate reads a glTF point cloud when path is set and generates the
// configured galaxy otherwise.
func loadOrGenerate(cmd *cobra.Command, cfg config.File, path string) (*galaxy.Field, error) {
	if path == "" {
		return generate(cmd, cfg)
	}
	f, err := models.LoadPoints(path, cfg.Galaxy.Size)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}
	lo, hi := f.Bounds()
	f.Params.Radius = max(lo.DiscLen(), hi.DiscLen())
	slog.Debug("loaded point cloud", "path", path, "points", f.Len())
	return f, nil
}
