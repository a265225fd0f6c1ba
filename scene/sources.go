package scene

import (
	"fmt"

	"github.com/polyfloyd/trishade/shader"
)

// Variant selects one of the two triangle programs.
type Variant int

const (
	// Plain draws the triangle in a constant color.
	Plain Variant = iota
	// Colored interpolates a per-vertex color attribute across the triangle.
	Colored
)

func (v Variant) String() string {
	switch v {
	case Plain:
		return "plain"
	case Colored:
		return "colored"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

const (
	positionLocation = 0
	colorLocation    = 1
)

const glslVersion = "#version 330 core\n"

const plainVertex = glslVersion + `
layout (location = 0) in vec3 aPos;

void main() {
	gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}
`

const plainFragment = glslVersion + `
out vec4 FragColor;

void main() {
	FragColor = vec4(0.0, 0.0, 1.0, 1.0);
}
`

// The vertex and fragment stage of the colored program must agree on the
// name and type of vertexColor for the program to link.
const coloredVertex = glslVersion + `
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

out vec3 vertexColor;

void main() {
	gl_Position = vec4(aPos, 1.0);
	vertexColor = aColor;
}
`

const coloredFragment = glslVersion + `
in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`

// Sources returns the vertex and fragment stage of the variant's program.
func Sources(v Variant) (vertex, fragment shader.Source) {
	if v == Colored {
		return shader.VertexSource(coloredVertex), shader.FragmentSource(coloredFragment)
	}
	return shader.VertexSource(plainVertex), shader.FragmentSource(plainFragment)
}
