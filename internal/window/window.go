// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/diag"
	"github.com/Faultbox/shaderkit/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Centered   bool
	X, Y       int
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Hidden     bool
}

// Rect is a window position and size in screen coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Window wraps an SDL2 window and its OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger

	clearColor [4]float32
}

// New creates a window with an OpenGL 4.1 core context and makes it current.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config:     cfg,
		log:        logger.Named("window"),
		clearColor: [4]float32{0, 0, 0, 1},
	}

	width, height, err := toInt32Size(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	x, y := int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED)
	if !cfg.Centered {
		if x, y, err = toInt32Pair(cfg.X, cfg.Y); err != nil {
			return nil, err
		}
	}

	w.log.Debug("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, diag.New(diag.ErrRuntime, "SDL_Init failed: %v", err)
	}

	// Context attributes must be set BEFORE the window is created.
	// 4.1 core is the highest version macOS offers.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if cfg.Hidden {
		flags |= sdl.WINDOW_HIDDEN
	}

	w.sdlWindow, err = sdl.CreateWindow(cfg.Title, x, y, width, height, flags)
	if err != nil {
		sdl.Quit()
		return nil, diag.New(diag.ErrRuntime, "Unable to create window: %v", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, diag.New(diag.ErrRuntime, "Unable to create OpenGL context: %v", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Bool("hidden", cfg.Hidden),
	)

	return w, nil
}

// Close destroys the context and the window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Debug("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}

	sdl.Quit()
}

// MakeCurrent makes the window's context current on the calling thread.
func (w *Window) MakeCurrent() error {
	if err := w.sdlWindow.GLMakeCurrent(w.glContext); err != nil {
		return diag.New(diag.ErrRuntime, "Unable to make context current: %v", err)
	}
	return nil
}

// Show makes the window visible.
func (w *Window) Show() {
	w.sdlWindow.Show()
}

// Hide hides the window.
func (w *Window) Hide() {
	w.sdlWindow.Hide()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// SetFullscreen switches between desktop fullscreen and windowed mode.
func (w *Window) SetFullscreen(full bool) error {
	var flags uint32
	if full {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := w.sdlWindow.SetFullscreen(flags); err != nil {
		return diag.New(diag.ErrRuntime, "Unable to toggle fullscreen: %v", err)
	}
	w.config.Fullscreen = full
	return nil
}

// Fullscreen reports whether the window was last put in fullscreen mode.
func (w *Window) Fullscreen() bool { return w.config.Fullscreen }

// ID returns the SDL window id.
func (w *Window) ID() (uint32, error) {
	id, err := w.sdlWindow.GetID()
	if err != nil {
		return 0, diag.New(diag.ErrRuntime, "Unable to get window id: %v", err)
	}
	return id, nil
}

// Position returns the window position.
func (w *Window) Position() (int, int) {
	x, y := w.sdlWindow.GetPosition()
	return int(x), int(y)
}

// SetPosition moves the window.
func (w *Window) SetPosition(x, y int) error {
	x32, y32, err := toInt32Pair(x, y)
	if err != nil {
		return err
	}
	w.sdlWindow.SetPosition(x32, y32)
	return nil
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetSize resizes the window. Both dimensions must be positive.
func (w *Window) SetSize(width, height int) error {
	w32, h32, err := toInt32Size(width, height)
	if err != nil {
		return err
	}
	w.sdlWindow.SetSize(w32, h32)
	return nil
}

// Rect returns the window position and size.
func (w *Window) Rect() Rect {
	x, y := w.Position()
	width, height := w.Size()
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// SetRect moves and resizes the window. Nothing changes if r is invalid.
func (w *Window) SetRect(r Rect) error {
	if _, _, err := toInt32Size(r.Width, r.Height); err != nil {
		return err
	}
	if err := w.SetPosition(r.X, r.Y); err != nil {
		return err
	}
	return w.SetSize(r.Width, r.Height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// SetClearColor sets the color used by Clear.
func (w *Window) SetClearColor(r, g, b, a float32) {
	w.clearColor = [4]float32{r, g, b, a}
}

// ClearColor returns the color used by Clear.
func (w *Window) ClearColor() (r, g, b, a float32) {
	c := w.clearColor
	return c[0], c[1], c[2], c[3]
}

// Clear clears the color buffer. The OpenGL entry points must be loaded.
func (w *Window) Clear() {
	c := w.clearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// PollQuit drains pending events and reports whether the user asked to quit
// by closing the window or pressing Escape.
func (w *Window) PollQuit() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				quit = true
			}
		}
	}
	return quit
}
