// Package gpufake provides an in-memory gpu.Backend for tests.
//
// Compilation fails for blank sources and sources containing an #error
// directive. Linking fails when an attached shader has no main function.
// The logs imitate the Mesa GLSL compiler.
package gpufake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Faultbox/shaderkit/internal/gpu"
)

var mainFunc = regexp.MustCompile(`\bvoid\s+main\s*\(`)

type shaderObject struct {
	kind     uint32
	src      string
	compiled bool
	log      string
}

type programObject struct {
	attached []gpu.Handle
	linked   bool
	log      string
}

// Counters records how many objects were created and deleted.
type Counters struct {
	ShadersCreated  int
	ShadersDeleted  int
	ProgramsCreated int
	ProgramsDeleted int
	// InvalidDeletes counts deletions of non-zero handles that were not live.
	InvalidDeletes int
}

// Backend is a fake graphics backend. It is not safe for concurrent use.
type Backend struct {
	Counters

	next     gpu.Handle
	shaders  map[gpu.Handle]*shaderObject
	programs map[gpu.Handle]*programObject
}

var _ gpu.Backend = (*Backend)(nil)

// New returns an empty fake backend.
func New() *Backend {
	return &Backend{
		shaders:  make(map[gpu.Handle]*shaderObject),
		programs: make(map[gpu.Handle]*programObject),
	}
}

// LiveShaders returns the number of shader handles not yet deleted.
func (b *Backend) LiveShaders() int { return len(b.shaders) }

// LivePrograms returns the number of program handles not yet deleted.
func (b *Backend) LivePrograms() int { return len(b.programs) }

// IsShader reports whether h names a live shader.
func (b *Backend) IsShader(h gpu.Handle) bool {
	_, ok := b.shaders[h]
	return ok
}

// IsProgram reports whether h names a live program.
func (b *Backend) IsProgram(h gpu.Handle) bool {
	_, ok := b.programs[h]
	return ok
}

// Attached returns the shaders attached to a program.
func (b *Backend) Attached(program gpu.Handle) []gpu.Handle {
	p, ok := b.programs[program]
	if !ok {
		return nil
	}
	return append([]gpu.Handle(nil), p.attached...)
}

func (b *Backend) alloc() gpu.Handle {
	b.next++
	return b.next
}

func (b *Backend) CreateShader(kind uint32) gpu.Handle {
	if kind != gpu.VertexShader && kind != gpu.FragmentShader {
		return 0
	}
	h := b.alloc()
	b.shaders[h] = &shaderObject{kind: kind}
	b.ShadersCreated++
	return h
}

func (b *Backend) DeleteShader(shader gpu.Handle) {
	if shader == 0 {
		return
	}
	if _, ok := b.shaders[shader]; !ok {
		b.InvalidDeletes++
		return
	}
	delete(b.shaders, shader)
	b.ShadersDeleted++
}

func (b *Backend) ShaderSource(shader gpu.Handle, src string) {
	if s, ok := b.shaders[shader]; ok {
		s.src = strings.TrimSuffix(src, "\x00")
	}
}

func (b *Backend) CompileShader(shader gpu.Handle) {
	s, ok := b.shaders[shader]
	if !ok {
		return
	}
	s.compiled, s.log = compile(s.src)
}

func compile(src string) (bool, string) {
	if strings.TrimSpace(src) == "" {
		return false, "0:1(1): error: syntax error, unexpected end of file\n"
	}
	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#error") {
			msg := strings.TrimSpace(strings.TrimPrefix(trimmed, "#error"))
			return false, fmt.Sprintf("%d:%d(1): preprocessor error: %s\n", 0, i+1, msg)
		}
	}
	return true, ""
}

func (b *Backend) ShaderCompileStatus(shader gpu.Handle) bool {
	s, ok := b.shaders[shader]
	return ok && s.compiled
}

func (b *Backend) ShaderInfoLog(shader gpu.Handle, bufSize int) string {
	s, ok := b.shaders[shader]
	if !ok {
		return ""
	}
	return clip(s.log, bufSize)
}

func (b *Backend) ShaderSourceLength(shader gpu.Handle) int {
	s, ok := b.shaders[shader]
	if !ok || s.src == "" {
		return 0
	}
	return len(s.src) + 1
}

func (b *Backend) ShaderSourceText(shader gpu.Handle, bufSize int) string {
	s, ok := b.shaders[shader]
	if !ok {
		return ""
	}
	return clip(s.src, bufSize)
}

func (b *Backend) CreateProgram() gpu.Handle {
	h := b.alloc()
	b.programs[h] = &programObject{}
	b.ProgramsCreated++
	return h
}

func (b *Backend) DeleteProgram(program gpu.Handle) {
	if program == 0 {
		return
	}
	if _, ok := b.programs[program]; !ok {
		b.InvalidDeletes++
		return
	}
	delete(b.programs, program)
	b.ProgramsDeleted++
}

func (b *Backend) AttachShader(program, shader gpu.Handle) {
	p, ok := b.programs[program]
	if !ok {
		return
	}
	if _, ok := b.shaders[shader]; !ok {
		return
	}
	p.attached = append(p.attached, shader)
}

func (b *Backend) LinkProgram(program gpu.Handle) {
	p, ok := b.programs[program]
	if !ok {
		return
	}
	p.linked, p.log = b.link(p)
}

func (b *Backend) link(p *programObject) (bool, string) {
	if len(p.attached) == 0 {
		return false, "error: no shaders attached to the program\n"
	}
	for _, h := range p.attached {
		s, ok := b.shaders[h]
		if !ok || !s.compiled {
			return false, "error: linking with uncompiled/unspecialized shader\n"
		}
		if !mainFunc.MatchString(s.src) {
			return false, fmt.Sprintf("error: %s shader lacks `main'\n", kindName(s.kind))
		}
	}
	return true, ""
}

func (b *Backend) ProgramLinkStatus(program gpu.Handle) bool {
	p, ok := b.programs[program]
	return ok && p.linked
}

func (b *Backend) ProgramInfoLog(program gpu.Handle, bufSize int) string {
	p, ok := b.programs[program]
	if !ok {
		return ""
	}
	return clip(p.log, bufSize)
}

func kindName(kind uint32) string {
	if kind == gpu.VertexShader {
		return "vertex"
	}
	return "fragment"
}

// clip mimics GL's null-terminated buffers: at most bufSize-1 bytes are returned.
func clip(s string, bufSize int) string {
	if bufSize <= 0 {
		return ""
	}
	if len(s) > bufSize-1 {
		return s[:bufSize-1]
	}
	return s
}
