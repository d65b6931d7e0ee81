// Package gpu defines the graphics backend consumed by shaders and programs.
//
// All methods must be called from the goroutine that owns the current
// graphics context.
package gpu

// Handle identifies a backend object. Zero means none.
type Handle = uint32

// Shader kinds, identical to the OpenGL enums.
const (
	FragmentShader uint32 = 0x8B30
	VertexShader   uint32 = 0x8B31
)

// LogBufferSize bounds every info log and source text retrieved from a backend.
const LogBufferSize = 8192

// Backend is the subset of a graphics API needed to build shader programs.
type Backend interface {
	CreateShader(kind uint32) Handle
	DeleteShader(shader Handle)
	ShaderSource(shader Handle, src string)
	CompileShader(shader Handle)
	ShaderCompileStatus(shader Handle) bool
	// ShaderInfoLog returns at most bufSize-1 bytes of the compile log.
	ShaderInfoLog(shader Handle, bufSize int) string
	// ShaderSourceLength includes the terminating null byte, like GL does.
	ShaderSourceLength(shader Handle) int
	ShaderSourceText(shader Handle, bufSize int) string

	CreateProgram() Handle
	DeleteProgram(program Handle)
	AttachShader(program, shader Handle)
	LinkProgram(program Handle)
	ProgramLinkStatus(program Handle) bool
	ProgramInfoLog(program Handle, bufSize int) string
}
