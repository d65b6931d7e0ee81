// shaderkit compiles and links GLSL shader programs and renders them in a window.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Faultbox/shaderkit/internal/config"
	"github.com/Faultbox/shaderkit/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg       *config.Config
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:           "shaderkit",
	Short:         "Compile, link and preview GLSL shader programs",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch colorMode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		case "auto":
		default:
			return fmt.Errorf("invalid --color value %q (auto|on|off)", colorMode)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func main() {
	rootCmd.Version = version

	config.BindFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output (auto|on|off)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
