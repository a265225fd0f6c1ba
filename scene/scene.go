// Package scene renders the triangle of the demonstration programs.
package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/polyfloyd/trishade/config"
	"github.com/polyfloyd/trishade/shader"
)

// AnimatedVertex is the vertex whose color is cycled when animation is on.
const AnimatedVertex = 0

type Scene struct {
	cfg      config.Scene
	program  *shader.Program
	triangle *Triangle
}

// New builds the program for the configured variant and uploads the
// triangle. A context must be current on the calling thread.
func New(builder *shader.Builder, cfg config.Scene) (*Scene, error) {
	variant := Plain
	if cfg.Colored {
		variant = Colored
	}
	program, err := builder.Build(Sources(variant))
	if err != nil {
		return nil, fmt.Errorf("building the %s program: %w", variant, err)
	}
	return &Scene{
		cfg:      cfg,
		program:  program,
		triangle: NewTriangle(variant, DefaultVertices),
	}, nil
}

// Frame renders the scene as it appears at time t.
func (sc *Scene) Frame(t time.Duration) error {
	c := sc.cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if sc.cfg.Animate {
		color := CycleColor(t, sc.cfg.CyclePeriod.Duration)
		if err := sc.triangle.SetVertexColor(AnimatedVertex, color); err != nil {
			return err
		}
	}
	sc.program.Use()
	sc.triangle.Draw()
	return nil
}

func (sc *Scene) Close() {
	sc.triangle.Delete()
	sc.program.Release()
}
