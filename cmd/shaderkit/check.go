package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Faultbox/shaderkit/cmd/shaderkit/shaders"
	"github.com/Faultbox/shaderkit/internal/app"
	"github.com/Faultbox/shaderkit/internal/diag"
	"github.com/Faultbox/shaderkit/internal/loader"
)

var (
	okColor     = color.New(color.FgGreen, color.Bold)
	errColor    = color.New(color.FgRed, color.Bold)
	statusColor = color.New(color.FgYellow)
)

var checkCmd = &cobra.Command{
	Use:   "check [vertex-file] [fragment-file]",
	Short: "Compile and link shaders without drawing",
	Long: `Compile and link a vertex and a fragment shader in a hidden window.
Files given as arguments take precedence over --vertex/--fragment and the
config file; missing ones fall back to the built-in triangle shaders.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		vertPath, fragPath := cfg.Shaders.Vertex, cfg.Shaders.Fragment
		if len(args) > 0 {
			vertPath = args[0]
		}
		if len(args) > 1 {
			fragPath = args[1]
		}

		src, closeSources, err := loader.OpenSources(vertPath, fragPath, shaders.Triangle())
		if err != nil {
			return err
		}
		defer closeSources()

		if err := app.Check(cfg, src); err != nil {
			return err
		}

		okColor.Fprint(os.Stdout, "ok")
		fmt.Fprintf(os.Stdout, " %s + %s linked\n", displayName(vertPath), displayName(fragPath))
		return nil
	},
}

func displayName(path string) string {
	if path == "" {
		return "<built-in>"
	}
	return path
}

// printError writes err to stderr, tagging diagnostics with their status.
func printError(err error) {
	errColor.Fprint(os.Stderr, "error")
	if status := diag.StatusOf(err); status != nil {
		statusColor.Fprintf(os.Stderr, " [%v]", status)
	}
	fmt.Fprintf(os.Stderr, ": %v\n", err)

	var d *diag.Error
	if errors.As(err, &d) && d.Kind() == diag.Backend {
		fmt.Fprintln(os.Stderr, "hint: the message above contains the driver's compiler or linker log")
	}
}
