// Package loader builds linked programs from shader source streams.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/shaderkit/internal/gpu"
	"github.com/Faultbox/shaderkit/internal/shader"
)

// Sources holds the two shader sources a program is built from.
type Sources struct {
	Vertex   io.Reader
	Fragment io.Reader
}

// BuildProgram compiles both sources and links them.
// Nothing stays allocated on the backend when an error is returned.
func BuildProgram(backend gpu.Backend, src Sources) (*shader.Program, error) {
	vs, err := compile(backend, shader.Vertex, src.Vertex)
	if err != nil {
		return nil, err
	}
	defer vs.Release()

	fs, err := compile(backend, shader.Fragment, src.Fragment)
	if err != nil {
		return nil, err
	}
	defer fs.Release()

	prog, err := shader.NewProgram(backend, vs, fs)
	if err != nil {
		return nil, err
	}
	if err := prog.Link(); err != nil {
		prog.Delete()
		return nil, fmt.Errorf("linking program: %w", err)
	}
	return prog, nil
}

func compile(backend gpu.Backend, stage shader.Stage, r io.Reader) (*shader.Shader, error) {
	s, err := shader.New(backend, stage)
	if err != nil {
		return nil, err
	}
	if err := s.CompileReader(r); err != nil {
		s.Release()
		return nil, fmt.Errorf("compiling %s shader: %w", stage, err)
	}
	return s, nil
}

// OpenSources opens the shader files at the given paths. An empty path
// selects the matching fallback. The returned close function releases the files.
func OpenSources(vertexPath, fragmentPath string, fallback Sources) (Sources, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	open := func(path string, def io.Reader) (io.Reader, error) {
		if path == "" {
			return def, nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
		return f, nil
	}

	vert, err := open(vertexPath, fallback.Vertex)
	if err != nil {
		closeAll()
		return Sources{}, nil, err
	}
	frag, err := open(fragmentPath, fallback.Fragment)
	if err != nil {
		closeAll()
		return Sources{}, nil, err
	}
	return Sources{Vertex: vert, Fragment: frag}, closeAll, nil
}
