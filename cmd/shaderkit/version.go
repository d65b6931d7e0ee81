package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionColor = color.New(color.FgCyan, color.Bold)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the shaderkit version",
	Args:  cobra.NoArgs,
	// Skips config loading.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, "shaderkit ")
		versionColor.Fprint(out, version)
		fmt.Fprintf(out, " (%s %s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
