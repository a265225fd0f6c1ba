package scene

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Triangle owns the vertex array and buffer objects of a single triangle.
type Triangle struct {
	variant  Variant
	vao, vbo uint32
}

// NewTriangle uploads the vertices and configures the attribute layout the
// variant's program expects. A context must be current.
func NewTriangle(variant Variant, vertices [3]Vertex) *Triangle {
	tr := &Triangle{variant: variant}
	data := vertexData(variant, vertices)

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)

	stride := int32(variant.floatsPerVertex() * 4)
	gl.VertexAttribPointer(positionLocation, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(positionLocation)
	if variant == Colored {
		gl.VertexAttribPointer(colorLocation, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(colorLocation)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return tr
}

// SetVertexColor replaces the color of vertex i in the vertex buffer.
func (tr *Triangle) SetVertexColor(i int, c mgl32.Vec3) error {
	offset, err := colorOffset(tr.variant, i)
	if err != nil {
		return err
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, 3*4, gl.Ptr(&c[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// Draw draws the triangle with the program currently in use.
func (tr *Triangle) Draw() {
	gl.BindVertexArray(tr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

func (tr *Triangle) Delete() {
	gl.DeleteVertexArrays(1, &tr.vao)
	gl.DeleteBuffers(1, &tr.vbo)
}
