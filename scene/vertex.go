package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Pos   mgl32.Vec3
	Color mgl32.Vec3
}

// DefaultVertices is the triangle of the original demonstration with a
// primary color on every corner.
var DefaultVertices = [3]Vertex{
	{Pos: mgl32.Vec3{-0.5, -0.5, 0.0}, Color: mgl32.Vec3{1, 0, 0}},
	{Pos: mgl32.Vec3{0.5, -0.5, 0.0}, Color: mgl32.Vec3{0, 1, 0}},
	{Pos: mgl32.Vec3{0.0, 0.5, 0.0}, Color: mgl32.Vec3{0, 0, 1}},
}

func (v Variant) floatsPerVertex() int {
	if v == Colored {
		return 6
	}
	return 3
}

// vertexData interleaves the attributes used by the variant.
func vertexData(v Variant, vertices [3]Vertex) []float32 {
	data := make([]float32, 0, len(vertices)*v.floatsPerVertex())
	for _, vert := range vertices {
		data = append(data, vert.Pos[:]...)
		if v == Colored {
			data = append(data, vert.Color[:]...)
		}
	}
	return data
}

// colorOffset returns the byte offset of the color of vertex i in the vertex
// buffer.
func colorOffset(v Variant, i int) (int, error) {
	if v != Colored {
		return 0, fmt.Errorf("the %s variant has no color attribute", v)
	}
	if i < 0 || i >= len(DefaultVertices) {
		return 0, fmt.Errorf("vertex index %d out of range", i)
	}
	return (i*v.floatsPerVertex() + 3) * 4, nil
}

// CycleColor returns the color for a vertex at time t into an animation that
// repeats every period. The channels are phase shifted sine waves, each
// within [0, 1].
func CycleColor(t, period time.Duration) mgl32.Vec3 {
	if period <= 0 {
		return mgl32.Vec3{1, 1, 1}
	}
	phase := 2 * math.Pi * float64(t%period) / float64(period)
	var c mgl32.Vec3
	for i := range c {
		c[i] = float32(0.5 + 0.5*math.Sin(phase+float64(i)*2*math.Pi/3))
	}
	return c
}
