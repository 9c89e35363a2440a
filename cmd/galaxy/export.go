package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taigrr/galaxy/pkg/config"
	"github.com/taigrr/galaxy/pkg/galaxy"
	"github.com/taigrr/galaxy/pkg/models"
	"github.com/taigrr/galaxy/pkg/render"
)

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <out.glb|out.gltf>",
		Short: "Write the galaxy as a glTF point cloud",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			f, err := generate(cmd, cfg)
			if err != nil {
				return err
			}
			defer f.Dispose()

			if err := models.SavePoints(f, args[0]); err != nil {
				return err
			}
			slog.Info("exported galaxy", "path", args[0], "points", f.Len())
			return nil
		},
	}
}

func newSnapshotCmd(opts *options) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "snapshot <out.png>",
		Short: "Render one frame of the galaxy to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			if cfg.View.Width <= 0 || cfg.View.Height <= 0 {
				return fmt.Errorf("snapshot size must be positive, got %dx%d", cfg.View.Width, cfg.View.Height)
			}
			bg, err := background(cfg.View)
			if err != nil {
				return err
			}

			f, err := loadOrGenerate(cmd, cfg, from)
			if err != nil {
				return err
			}
			defer f.Dispose()

			scene := NewScene(cfg.View.Width, cfg.View.Height, bg)
			scene.Render(f, Pose{Distance: cfg.View.CameraDistance})
			if err := scene.Framebuffer().SavePNG(args[0]); err != nil {
				return fmt.Errorf("save png: %w", err)
			}
			slog.Info("saved snapshot", "path", args[0], "drawn", scene.Points.Stats.Drawn, "culled", scene.Points.Stats.Culled)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "render a glTF point cloud instead of generating one")
	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config <out.toml>",
		Short: "Write the resolved parameters as a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			if dir := filepath.Dir(args[0]); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create config dir: %w", err)
				}
			}
			if err := cfg.Save(args[0]); err != nil {
				return err
			}
			slog.Info("wrote config", "path", args[0])
			return nil
		},
	}
}

// background parses the configured background colour.
func background(v config.View) (render.Color, error) {
	c, err := galaxy.ParseColor(v.Background)
	if err != nil {
		return render.Color{}, fmt.Errorf("background: %w", err)
	}
	return render.FromColorful(c), nil
}
