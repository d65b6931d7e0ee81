package config

import "github.com/spf13/pflag"

var (
	flagConfig     string
	flagDebug      bool
	flagLogFile    string
	flagWindowed   bool
	flagFullscreen bool
	flagHidden     bool
	flagWidth      int
	flagHeight     int
	flagVertex     string
	flagFragment   string
)

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file (.yaml or .toml)")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&flagWindowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&flagFullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.BoolVar(&flagHidden, "hidden", false, "Keep the window hidden")
	fs.IntVar(&flagWidth, "width", 0, "Window width")
	fs.IntVar(&flagHeight, "height", 0, "Window height")
	fs.StringVar(&flagVertex, "vertex", "", "Vertex shader source file")
	fs.StringVar(&flagFragment, "fragment", "", "Fragment shader source file")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
	if flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if flagHidden {
		cfg.Window.Hidden = true
	}
	if flagWidth > 0 {
		cfg.Window.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Window.Height = flagHeight
	}
	if flagVertex != "" {
		cfg.Shaders.Vertex = flagVertex
	}
	if flagFragment != "" {
		cfg.Shaders.Fragment = flagFragment
	}
}
