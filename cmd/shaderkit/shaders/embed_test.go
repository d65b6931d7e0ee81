package shaders

import (
	"testing"

	"github.com/Faultbox/shaderkit/internal/gpu/gpufake"
	"github.com/Faultbox/shaderkit/internal/loader"
)

func TestTriangleBuilds(t *testing.T) {
	b := gpufake.New()

	prog, err := loader.BuildProgram(b, Triangle())
	if err != nil {
		t.Fatalf("built-in shaders failed to build: %v", err)
	}
	defer prog.Delete()

	if !prog.Linked() {
		t.Error("expected linked program")
	}
}
