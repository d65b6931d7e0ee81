// Package config handles shaderkit configuration loading and management.
package config

import (
	"fmt"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Shaders ShadersConfig `yaml:"shaders" toml:"shaders"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds window and context settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Centered   bool   `yaml:"centered" toml:"centered"` // Ignore X and Y
	X          int    `yaml:"x" toml:"x"`
	Y          int    `yaml:"y" toml:"y"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Hidden     bool   `yaml:"hidden" toml:"hidden"`
	ClearColor Color  `yaml:"clear_color" toml:"clear_color"`
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float32 `yaml:"r" toml:"r"`
	G float32 `yaml:"g" toml:"g"`
	B float32 `yaml:"b" toml:"b"`
	A float32 `yaml:"a" toml:"a"`
}

// ShadersConfig holds shader source paths. Empty paths select the built-in shaders.
type ShadersConfig struct {
	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "shaderkit",
			Centered:   true,
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			Hidden:     false,
			ClearColor: Color{R: 0.1, G: 0.1, B: 0.15, A: 1.0},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	for name, v := range map[string]float32{
		"r": c.Window.ClearColor.R,
		"g": c.Window.ClearColor.G,
		"b": c.Window.ClearColor.B,
		"a": c.Window.ClearColor.A,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear_color.%s = %v is outside [0, 1]", name, v)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
