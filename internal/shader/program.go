package shader

import (
	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/diag"
	"github.com/Faultbox/shaderkit/internal/gpu"
	"github.com/Faultbox/shaderkit/internal/logger"
)

// Program combines a vertex and a fragment shader into one GPU program.
//
// Attaching a shader always invalidates a previously linked program. After a
// successful Link the program no longer references its shaders.
type Program struct {
	backend  gpu.Backend
	id       gpu.Handle
	vertex   *Shader
	fragment *Shader
	linked   bool
}

// NewProgram creates a program and attaches the given shaders. Either may be nil.
func NewProgram(backend gpu.Backend, vertex, fragment *Shader) (*Program, error) {
	if backend == nil {
		return nil, diag.New(diag.ErrNotInitialized, "program: no graphics backend")
	}

	p := &Program{backend: backend}
	if vertex != nil {
		if err := p.AddVertexShader(vertex); err != nil {
			p.Delete()
			return nil, err
		}
	}
	if fragment != nil {
		if err := p.AddFragmentShader(fragment); err != nil {
			p.Delete()
			return nil, err
		}
	}
	return p, nil
}

// ID returns the GPU program handle, 0 before the first Link.
func (p *Program) ID() gpu.Handle { return p.id }

// Linked reports whether the last Link succeeded and no shader was attached since.
func (p *Program) Linked() bool { return p.linked }

// VertexShader returns the attached vertex shader without taking a reference.
// It is nil after a successful Link.
func (p *Program) VertexShader() *Shader { return p.vertex }

// FragmentShader returns the attached fragment shader without taking a reference.
// It is nil after a successful Link.
func (p *Program) FragmentShader() *Shader { return p.fragment }

func (p *Program) invalidate() {
	if p.id != 0 {
		p.backend.DeleteProgram(p.id)
		p.id = 0
	}
	p.linked = false
}

// AddShader attaches s to the slot matching its stage, replacing and
// releasing the shader previously held there.
func (p *Program) AddShader(s *Shader) error {
	if s == nil {
		return diag.New(diag.ErrInvalidArgument, "program: nil shader")
	}

	var slot **Shader
	switch s.Stage() {
	case Vertex:
		slot = &p.vertex
	case Fragment:
		slot = &p.fragment
	default:
		return diag.New(diag.ErrInvalidArgument, "program: unsupported stage %s", s.Stage())
	}

	// Reference first: s may already be the shader in the slot.
	s.Ref()
	if old := *slot; old != nil {
		old.Release()
	}
	*slot = s

	p.invalidate()
	return nil
}

// AddVertexShader attaches s, which must be a vertex shader.
func (p *Program) AddVertexShader(s *Shader) error {
	return p.addTyped(s, Vertex, "add_vertex_shader")
}

// AddFragmentShader attaches s, which must be a fragment shader.
func (p *Program) AddFragmentShader(s *Shader) error {
	return p.addTyped(s, Fragment, "add_fragment_shader")
}

func (p *Program) addTyped(s *Shader, want Stage, op string) error {
	if s == nil {
		return diag.New(diag.ErrInvalidArgument, "%s: nil shader", op)
	}
	if s.Stage() != want {
		return diag.NewBackend(diag.ErrInvalidArgument, "%s: the shader is not a %s shader.", op, want)
	}
	return p.AddShader(s)
}

// AddVertexSource compiles src as a vertex shader and attaches it.
// On a compile error the program is left unmodified.
func (p *Program) AddVertexSource(src string) error {
	return p.addSource(src, Vertex)
}

// AddFragmentSource compiles src as a fragment shader and attaches it.
// On a compile error the program is left unmodified.
func (p *Program) AddFragmentSource(src string) error {
	return p.addSource(src, Fragment)
}

func (p *Program) addSource(src string, stage Stage) error {
	s, err := New(p.backend, stage)
	if err != nil {
		return err
	}
	defer s.Release()

	if err := s.Compile(src); err != nil {
		return err
	}
	if stage == Vertex {
		return p.AddVertexShader(s)
	}
	return p.AddFragmentShader(s)
}

// Link links the attached shaders into a new GPU program.
//
// Any previous program handle is deleted first. Both a vertex and a fragment
// shader must be attached and compiled. On failure the shaders stay attached
// and the error wraps diag.ErrRuntime; on success they are released.
func (p *Program) Link() error {
	p.invalidate()

	p.id = p.backend.CreateProgram()
	if p.id == 0 {
		return diag.NewBackend(diag.ErrRuntime, "Unable to create program")
	}

	if err := p.attach(p.vertex, "Vertex", "vertex"); err != nil {
		return err
	}
	if err := p.attach(p.fragment, "Fragment", "fragment"); err != nil {
		return err
	}

	p.backend.LinkProgram(p.id)
	if !p.backend.ProgramLinkStatus(p.id) {
		log := p.backend.ProgramInfoLog(p.id, gpu.LogBufferSize)
		logger.Named("program").Warn("link failed",
			zap.Uint32("id", p.id),
			zap.String("log", log),
		)
		return diag.NewBackend(diag.ErrRuntime, "Unable to link program:\n%s", log)
	}

	// The linked program owns the compiled code now.
	p.vertex.Release()
	p.vertex = nil
	p.fragment.Release()
	p.fragment = nil

	p.linked = true
	logger.Named("program").Debug("linked", zap.Uint32("id", p.id))
	return nil
}

func (p *Program) attach(s *Shader, title, name string) error {
	if s == nil {
		return diag.NewBackend(diag.ErrRuntime, "No %s shader specified", name)
	}
	if !s.Compiled() {
		return diag.NewBackend(diag.ErrRuntime, "Link: %s shader isn't compiled", title)
	}
	p.backend.AttachShader(p.id, s.ID())
	return nil
}

// Delete releases the attached shaders and the program handle.
// It is safe to call more than once.
func (p *Program) Delete() {
	if p.vertex != nil {
		p.vertex.Release()
		p.vertex = nil
	}
	if p.fragment != nil {
		p.fragment.Release()
		p.fragment = nil
	}
	p.invalidate()
}
