// Package app wires the window, the OpenGL backend and a shader program
// into a small viewer.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/config"
	"github.com/Faultbox/shaderkit/internal/gpu/glbackend"
	"github.com/Faultbox/shaderkit/internal/loader"
	"github.com/Faultbox/shaderkit/internal/logger"
	"github.com/Faultbox/shaderkit/internal/shader"
	"github.com/Faultbox/shaderkit/internal/window"
)

// App owns a window, its OpenGL backend and one linked program.
type App struct {
	window  *window.Window
	backend *glbackend.Backend
	program *shader.Program
	vao     uint32
	log     *zap.Logger
}

// New opens the window described by cfg and builds the program from src.
func New(cfg *config.Config, src loader.Sources) (*App, error) {
	a := &App{log: logger.Named("app")}

	var err error
	a.window, err = window.New(windowConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	c := cfg.Window.ClearColor
	a.window.SetClearColor(c.R, c.G, c.B, c.A)

	// Entry points can only be loaded once a context is current.
	a.backend, err = glbackend.New()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	a.program, err = loader.BuildProgram(a.backend, src)
	if err != nil {
		a.window.Close()
		return nil, err
	}

	// Core profile draws need a bound vertex array even without attributes.
	gl.GenVertexArrays(1, &a.vao)

	a.log.Info("program ready", zap.Uint32("program", a.program.ID()))
	return a, nil
}

func windowConfig(cfg *config.Config) window.Config {
	return window.Config{
		Title:      cfg.Window.Title,
		Centered:   cfg.Window.Centered,
		X:          cfg.Window.X,
		Y:          cfg.Window.Y,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Hidden:     cfg.Window.Hidden,
	}
}

// Run draws frames until the window is closed, or until frames have been
// drawn when frames is positive.
func (a *App) Run(frames int) error {
	start := time.Now()
	drawn := 0

	for frames <= 0 || drawn < frames {
		if a.window.PollQuit() {
			break
		}

		a.window.Clear()
		gl.UseProgram(a.program.ID())
		gl.BindVertexArray(a.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
		gl.BindVertexArray(0)
		gl.UseProgram(0)

		if err := a.backend.Error(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		a.window.SwapBuffers()
		drawn++
	}

	a.log.Info("render loop finished",
		zap.Int("frames", drawn),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Close releases the program, the vertex array and the window.
func (a *App) Close() {
	if a.program != nil {
		a.program.Delete()
		a.program = nil
	}
	if a.vao != 0 {
		gl.DeleteVertexArrays(1, &a.vao)
		a.vao = 0
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}

// Check compiles and links src in a hidden window and reports the first error.
func Check(cfg *config.Config, src loader.Sources) error {
	wcfg := windowConfig(cfg)
	wcfg.Hidden = true
	wcfg.Fullscreen = false

	win, err := window.New(wcfg)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	backend, err := glbackend.New()
	if err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	prog, err := loader.BuildProgram(backend, src)
	if err != nil {
		return err
	}
	prog.Delete()
	return nil
}
