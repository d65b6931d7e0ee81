package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/shaderkit/cmd/shaderkit/shaders"
	"github.com/Faultbox/shaderkit/internal/app"
	"github.com/Faultbox/shaderkit/internal/loader"
)

var runFrames int

func init() {
	runCmd.Flags().IntVar(&runFrames, "frames", 0, "stop after this many frames (0 runs until the window closes)")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window and draw the shader program",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, closeSources, err := loader.OpenSources(cfg.Shaders.Vertex, cfg.Shaders.Fragment, shaders.Triangle())
		if err != nil {
			return err
		}
		a, err := app.New(cfg, src)
		closeSources()
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Run(runFrames)
	},
}
