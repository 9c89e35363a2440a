// galaxy - procedural spiral galaxies in your terminal.
//
// Commands:
//
//	galaxy [view]            Interactive viewer
//	galaxy export <file>     Write the point cloud as glTF (.glb or .gltf)
//	galaxy snapshot <file>   Render one frame to PNG
//	galaxy config <file>     Write the resolved parameters as TOML
//
// Viewer controls:
//
//	Mouse drag / W A S D  - Orbit the camera
//	Scroll / + -          - Zoom in/out
//	Space                 - Apply random impulse
//	[ ]                   - Halve/double point count
//	1 2                   - Fewer/more branches
//	3 4                   - Less/more spin
//	5 6                   - Less/more randomness
//	7 8                   - Lower/raise randomness power
//	9 0                   - Shrink/grow radius
//	N                     - New seed
//	P                     - Pause auto-rotation
//	G                     - Toggle grid and radius ring
//	X                     - Export current galaxy to galaxy-<seed>.glb
//	R                     - Reset view
//	?                     - Toggle HUD overlay
//	Esc                   - Quit
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	vopts := &viewOptions{}

	root := &cobra.Command{
		Use:   "galaxy",
		Short: "Procedural spiral galaxies in your terminal",
		Long: "galaxy generates spiral point clouds from a handful of parameters " +
			"and shows them in the terminal, renders them to PNG or exports them as glTF.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, vopts)
		},
	}
	opts.register(root)
	vopts.register(root)

	root.AddCommand(
		newViewCmd(opts, vopts),
		newExportCmd(opts),
		newSnapshotCmd(opts),
		newConfigCmd(opts),
	)
	return root
}
