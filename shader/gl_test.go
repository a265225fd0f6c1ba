package shader

import (
	"errors"
	"runtime"
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/trishade/egl"
)

func initTestGL(t *testing.T) {
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	display, err := egl.Headless(1, 1, 3, 3)
	if err != nil {
		t.Skip(err)
	}
	t.Cleanup(display.Destroy)
	if err := gl.Init(); err != nil {
		t.Skip(err)
	}
}

func TestGLBuildTriangle(t *testing.T) {
	initTestGL(t)

	prog, err := NewBuilder(GLDriver{}).Build(VertexSource(triangleVert), FragmentSource(triangleFrag))
	require.NoError(t, err)
	defer prog.Release()
	assert.NotZero(t, prog.Handle())
	assert.True(t, gl.IsProgram(uint32(prog.Handle())))
}

func TestGLVertexSyntaxError(t *testing.T) {
	initTestGL(t)

	vert := `#version 330 core
layout (location = 0) in vec3 aPos;
void main() {
	gl_Position = vec4(aPos, 1.0)
}
`
	b := NewBuilder(GLDriver{})
	for i := 0; i < 2; i++ {
		_, err := b.Build(VertexSource(vert), FragmentSource(triangleFrag))
		var berr *BuildError
		require.True(t, errors.As(err, &berr), "expected a BuildError, got %#v", err)
		assert.Equal(t, PhaseVertexCompile, berr.Phase)
		assert.NotEmpty(t, berr.Log)
		t.Logf("\n%s\n", berr.Log)
	}
}

func TestGLFragmentUnknownVar(t *testing.T) {
	initTestGL(t)

	frag := `#version 330 core
out vec4 FragColor;
void main() {
	a = 12;
}
`
	_, err := NewBuilder(GLDriver{}).Build(VertexSource(triangleVert), FragmentSource(frag))
	var berr *BuildError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, PhaseFragmentCompile, berr.Phase)
}

func TestGLMismatchedInterface(t *testing.T) {
	initTestGL(t)

	frag := `#version 330 core
in vec3 vertexColor;
out vec4 FragColor;
void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`
	_, err := NewBuilder(GLDriver{}).Build(VertexSource(triangleVert), FragmentSource(frag))
	var berr *BuildError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, PhaseLink, berr.Phase)
	t.Logf("\n%s\n", berr.Log)
}
