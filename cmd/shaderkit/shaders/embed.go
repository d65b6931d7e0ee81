// Package shaders provides the built-in GLSL shader sources.
package shaders

import (
	_ "embed"
	"strings"

	"github.com/Faultbox/shaderkit/internal/loader"
)

// TriangleVertexShader places a triangle using gl_VertexID, so it needs no
// vertex attributes.
//
//go:embed triangle.vert
var TriangleVertexShader string

// TriangleFragmentShader outputs the interpolated vertex color.
//
//go:embed triangle.frag
var TriangleFragmentShader string

// Triangle returns readers over the built-in sources.
func Triangle() loader.Sources {
	return loader.Sources{
		Vertex:   strings.NewReader(TriangleVertexShader),
		Fragment: strings.NewReader(TriangleFragmentShader),
	}
}
