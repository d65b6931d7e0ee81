// Package shader manages GPU shader objects and the programs linked from them.
//
// Shaders are reference counted. A Program holds a reference to every shader
// attached to it until it links successfully, at which point the linked GPU
// program owns the compiled code and the references are released. Releasing
// the last reference to a Shader deletes its GPU handle.
//
// Nothing in this package is safe for concurrent use; every call must happen
// on the thread that has the graphics context current.
package shader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/diag"
	"github.com/Faultbox/shaderkit/internal/gpu"
	"github.com/Faultbox/shaderkit/internal/logger"
)

// Stage is the pipeline stage a shader runs in.
type Stage uint8

// Supported stages.
const (
	Vertex Stage = iota
	Fragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// backendKind maps the stage to the backend shader kind.
func (s Stage) backendKind() (uint32, bool) {
	switch s {
	case Vertex:
		return gpu.VertexShader, true
	case Fragment:
		return gpu.FragmentShader, true
	default:
		return 0, false
	}
}

// Shader owns at most one GPU shader handle.
type Shader struct {
	backend  gpu.Backend
	stage    Stage
	id       gpu.Handle
	compiled bool
	refs     int
}

// New creates an uncompiled shader for stage holding one reference.
func New(backend gpu.Backend, stage Stage) (*Shader, error) {
	if backend == nil {
		return nil, diag.New(diag.ErrNotInitialized, "shader: no graphics backend")
	}
	return &Shader{backend: backend, stage: stage, refs: 1}, nil
}

// ID returns the GPU handle, 0 if the shader was never compiled.
func (s *Shader) ID() gpu.Handle { return s.id }

// Stage returns the declared stage.
func (s *Shader) Stage() Stage { return s.stage }

// Compiled reports whether the last compilation succeeded.
func (s *Shader) Compiled() bool { return s.compiled }

// RefCount returns the number of live references.
func (s *Shader) RefCount() int { return s.refs }

// Ref takes an additional reference and returns s.
func (s *Shader) Ref() *Shader {
	s.refs++
	return s
}

// Release drops a reference. Dropping the last one deletes the GPU handle.
func (s *Shader) Release() {
	if s.refs <= 0 {
		return
	}
	s.refs--
	if s.refs == 0 {
		s.deleteHandle()
	}
}

func (s *Shader) deleteHandle() {
	if s.id != 0 {
		s.backend.DeleteShader(s.id)
		s.id = 0
	}
	s.compiled = false
}

// Compile compiles src, deleting any handle from a previous compilation first.
//
// When the backend rejects the source the returned error carries the
// compiler log and wraps diag.ErrRuntime. The new handle is kept so the
// caller can inspect it or compile again.
func (s *Shader) Compile(src string) error {
	if s.refs <= 0 {
		return diag.New(diag.ErrInvalidArgument, "shader: compile after release")
	}

	s.deleteHandle()

	kind, ok := s.stage.backendKind()
	if !ok {
		return diag.New(diag.ErrInternal, "shader: unsupported stage %s", s.stage)
	}

	s.id = s.backend.CreateShader(kind)
	if s.id == 0 {
		return diag.NewBackend(diag.ErrRuntime, "Unable to create %s shader", s.stage)
	}

	s.backend.ShaderSource(s.id, src)
	s.backend.CompileShader(s.id)

	if !s.backend.ShaderCompileStatus(s.id) {
		log := s.backend.ShaderInfoLog(s.id, gpu.LogBufferSize)
		logger.Named("shader").Warn("compilation failed",
			zap.Stringer("stage", s.stage),
			zap.Uint32("id", s.id),
			zap.String("log", log),
		)
		return diag.NewBackend(diag.ErrRuntime, "Unable to compile shader:\n%s", log)
	}

	s.compiled = true
	logger.Named("shader").Debug("compiled",
		zap.Stringer("stage", s.stage),
		zap.Uint32("id", s.id),
	)
	return nil
}

// CompileReader reads r to the end and compiles its contents.
func (s *Shader) CompileReader(r io.Reader) error {
	if r == nil {
		return diag.New(diag.ErrInvalidArgument, "shader: nil reader")
	}

	var buf bytes.Buffer
	buf.Grow(1024)
	if _, err := buf.ReadFrom(r); err != nil {
		return diag.New(diag.ErrRuntime, "shader: reading source: %v", err)
	}
	return s.Compile(buf.String())
}

// CompileFile compiles the shader source stored at path.
func (s *Shader) CompileFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return diag.New(diag.ErrRuntime, "shader: %v", err)
	}
	defer f.Close()

	return s.CompileReader(f)
}

// SourceSize returns the length in bytes of the source stored by the backend.
func (s *Shader) SourceSize() (int, error) {
	if !s.compiled {
		return 0, diag.New(diag.ErrRuntime, "shader: %s shader isn't compiled", s.stage)
	}
	n := s.backend.ShaderSourceLength(s.id)
	if n > 0 {
		// The backend counts the terminating null byte.
		n--
	}
	return n, nil
}

// Source returns the source text stored by the backend.
func (s *Shader) Source() (string, error) {
	n, err := s.SourceSize()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	return s.backend.ShaderSourceText(s.id, n+1), nil
}
