package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Centered {
		t.Error("expected centered window by default")
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Window.ClearColor.A != 1.0 {
		t.Errorf("expected opaque clear color, got alpha %f", cfg.Window.ClearColor.A)
	}

	if cfg.Shaders.Vertex != "" || cfg.Shaders.Fragment != "" {
		t.Error("expected built-in shaders by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "shaderkit.yaml")

	yamlContent := `
window:
  title: "triangle"
  centered: false
  x: 40
  y: 60
  width: 1024
  height: 768
  fullscreen: true
  vsync: false
  clear_color: {r: 0.5, g: 0.25, b: 0, a: 1}

shaders:
  vertex: "shaders/basic.vert"
  fragment: "shaders/basic.frag"

logging:
  level: "debug"
  log_file: "shaderkit.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "triangle" {
		t.Errorf("expected title 'triangle', got %s", cfg.Window.Title)
	}
	if cfg.Window.Centered || cfg.Window.X != 40 || cfg.Window.Y != 60 {
		t.Errorf("unexpected position: centered=%v x=%d y=%d", cfg.Window.Centered, cfg.Window.X, cfg.Window.Y)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen || cfg.Window.VSync {
		t.Error("fullscreen/vsync not loaded")
	}
	if cfg.Window.ClearColor.R != 0.5 || cfg.Window.ClearColor.G != 0.25 {
		t.Errorf("unexpected clear color %+v", cfg.Window.ClearColor)
	}
	if cfg.Shaders.Vertex != "shaders/basic.vert" || cfg.Shaders.Fragment != "shaders/basic.frag" {
		t.Errorf("unexpected shader paths %+v", cfg.Shaders)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "shaderkit.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "shaderkit.toml")

	tomlContent := `
[window]
width = 640
height = 480
hidden = true

[window.clear_color]
r = 1.0
a = 0.5

[shaders]
vertex = "a.vert"

[logging]
level = "warn"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Hidden {
		t.Error("expected hidden window")
	}
	if cfg.Window.ClearColor.R != 1.0 || cfg.Window.ClearColor.A != 0.5 {
		t.Errorf("unexpected clear color %+v", cfg.Window.ClearColor)
	}
	// Untouched keys keep their defaults.
	if cfg.Window.Title != "shaderkit" {
		t.Errorf("expected default title, got %s", cfg.Window.Title)
	}
	if cfg.Shaders.Vertex != "a.vert" {
		t.Errorf("expected vertex 'a.vert', got %s", cfg.Shaders.Vertex)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromTOMLUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "shaderkit.toml")
	if err := os.WriteFile(configPath, []byte("[window]\nwidht = 10\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
	if err := loadFromFile(Default(), "/nonexistent/path/config.toml"); err == nil {
		t.Error("expected error loading missing TOML file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Window.Height = -1 }, true},
		{"color out of range", func(c *Config) { c.Window.ClearColor.G = 1.5 }, true},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"warn level", func(c *Config) { c.Logging.Level = "warn" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "shaderkit.toml")
	if err := os.WriteFile(configPath, []byte("[window]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find shaderkit.toml in current directory")
	}
}

func TestBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	defer resetFlags()

	err := fs.Parse([]string{"--debug", "--width=1280", "--vertex", "x.vert", "--hidden"})
	if err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg := Default()
	applyFlags(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("height should keep its default, got %d", cfg.Window.Height)
	}
	if cfg.Shaders.Vertex != "x.vert" {
		t.Errorf("expected vertex x.vert, got %s", cfg.Shaders.Vertex)
	}
	if !cfg.Window.Hidden {
		t.Error("expected hidden window")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		setup  func()
		verify func(*testing.T, *Config)
	}{
		{
			name:  "windowed flag",
			setup: func() { flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
		},
		{
			name:  "log file flag",
			setup: func() { flagLogFile = "run.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name:  "fragment flag",
			setup: func() { flagFragment = "y.frag" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shaders.Fragment != "y.frag" {
					t.Errorf("expected fragment y.frag, got %s", cfg.Shaders.Fragment)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer resetFlags()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	flagConfig = configPath
	flagWidth = 1920
	defer resetFlags()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	flagConfig = configPath
	defer resetFlags()

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Window.Title = "saved"
			cfg.Shaders.Fragment = "f.frag"

			path := filepath.Join(dir, "nested", name)
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo failed: %v", err)
			}

			loaded := Default()
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("failed to reload: %v", err)
			}
			if loaded.Window.Title != "saved" || loaded.Shaders.Fragment != "f.frag" {
				t.Errorf("values lost in round trip: %+v", loaded)
			}
		})
	}
}

func resetFlags() {
	flagConfig = ""
	flagDebug = false
	flagLogFile = ""
	flagWindowed = false
	flagFullscreen = false
	flagHidden = false
	flagWidth = 0
	flagHeight = 0
	flagVertex = ""
	flagFragment = ""
}
