// Package glbackend implements gpu.Backend on top of OpenGL 4.1 core.
package glbackend

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/diag"
	"github.com/Faultbox/shaderkit/internal/gpu"
	"github.com/Faultbox/shaderkit/internal/logger"
)

// Backend issues OpenGL calls. The context must be current on the calling thread.
type Backend struct {
	version  string
	renderer string
}

var _ gpu.Backend = (*Backend)(nil)

// New loads the OpenGL entry points.
// Must be called AFTER a context has been made current.
func New() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, diag.NewBackend(diag.ErrNotInitialized, "unable to load entry points: %v", err)
	}

	b := &Backend{
		version:  gl.GoStr(gl.GetString(gl.VERSION)),
		renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", b.version),
		zap.String("renderer", b.renderer),
	)
	return b, nil
}

// Version returns the GL_VERSION string.
func (b *Backend) Version() string { return b.version }

// Renderer returns the GL_RENDERER string.
func (b *Backend) Renderer() string { return b.renderer }

func (b *Backend) CreateShader(kind uint32) gpu.Handle { return gl.CreateShader(kind) }

func (b *Backend) DeleteShader(shader gpu.Handle) { gl.DeleteShader(shader) }

func (b *Backend) ShaderSource(shader gpu.Handle, src string) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	csource, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (b *Backend) CompileShader(shader gpu.Handle) { gl.CompileShader(shader) }

func (b *Backend) ShaderCompileStatus(shader gpu.Handle) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (b *Backend) ShaderInfoLog(shader gpu.Handle, bufSize int) string {
	return readString(bufSize, func(size int32, length *int32, buf *uint8) {
		gl.GetShaderInfoLog(shader, size, length, buf)
	})
}

func (b *Backend) ShaderSourceLength(shader gpu.Handle) int {
	var n int32
	gl.GetShaderiv(shader, gl.SHADER_SOURCE_LENGTH, &n)
	return int(n)
}

func (b *Backend) ShaderSourceText(shader gpu.Handle, bufSize int) string {
	return readString(bufSize, func(size int32, length *int32, buf *uint8) {
		gl.GetShaderSource(shader, size, length, buf)
	})
}

func (b *Backend) CreateProgram() gpu.Handle { return gl.CreateProgram() }

func (b *Backend) DeleteProgram(program gpu.Handle) { gl.DeleteProgram(program) }

func (b *Backend) AttachShader(program, shader gpu.Handle) { gl.AttachShader(program, shader) }

func (b *Backend) LinkProgram(program gpu.Handle) { gl.LinkProgram(program) }

func (b *Backend) ProgramLinkStatus(program gpu.Handle) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (b *Backend) ProgramInfoLog(program gpu.Handle, bufSize int) string {
	return readString(bufSize, func(size int32, length *int32, buf *uint8) {
		gl.GetProgramInfoLog(program, size, length, buf)
	})
}

// Error returns the pending glGetError code as a diagnostic, or nil.
func (b *Backend) Error() error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	return diag.NewBackend(diag.ErrRuntime, "%s", errorName(code))
}

// readString calls fetch with a buffer of bufSize bytes and returns what was written.
func readString(bufSize int, fetch func(size int32, length *int32, buf *uint8)) string {
	size, err := safecast.Conv[int32](bufSize)
	if err != nil || size <= 0 {
		return ""
	}
	buf := make([]byte, size)
	var length int32
	fetch(size, &length, &buf[0])
	if length < 0 || length > size {
		length = 0
	}
	return string(buf[:length])
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("GL error 0x%04X", code)
	}
}
