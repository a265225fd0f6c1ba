package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/trishade/shader"
)

func TestVertexData(t *testing.T) {
	plain := vertexData(Plain, DefaultVertices)
	assert.Equal(t, []float32{
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
		0.0, 0.5, 0.0,
	}, plain)

	colored := vertexData(Colored, DefaultVertices)
	assert.Equal(t, []float32{
		-0.5, -0.5, 0.0, 1, 0, 0,
		0.5, -0.5, 0.0, 0, 1, 0,
		0.0, 0.5, 0.0, 0, 0, 1,
	}, colored)
}

func TestColorOffset(t *testing.T) {
	for i, expected := range []int{12, 36, 60} {
		off, err := colorOffset(Colored, i)
		require.NoError(t, err)
		assert.Equal(t, expected, off)
	}

	_, err := colorOffset(Colored, 3)
	assert.Error(t, err)
	_, err = colorOffset(Colored, -1)
	assert.Error(t, err)
	_, err = colorOffset(Plain, 0)
	assert.Error(t, err)
}

func TestCycleColor(t *testing.T) {
	period := 2 * time.Second
	for ms := 0; ms < 4000; ms += 37 {
		c := CycleColor(time.Duration(ms)*time.Millisecond, period)
		for i, v := range c {
			assert.True(t, v >= 0 && v <= 1, "channel %d out of range at %dms: %v", i, ms, v)
		}
	}

	assert.Equal(t, CycleColor(0, period), CycleColor(period, period), "the cycle repeats every period")
	assert.NotEqual(t, CycleColor(0, period), CycleColor(period/2, period))
	assert.Equal(t, CycleColor(time.Second, 0), CycleColor(0, 0))
}

func TestSourcesStages(t *testing.T) {
	for _, v := range []Variant{Plain, Colored} {
		vert, frag := Sources(v)
		assert.Equal(t, shader.StageVertex, vert.Stage())
		assert.Equal(t, shader.StageFragment, frag.Stage())
		assert.Contains(t, vert.Text(), "#version 330 core")
		assert.Contains(t, frag.Text(), "#version 330 core")
	}

	vert, frag := Sources(Colored)
	assert.Contains(t, vert.Text(), "out vec3 vertexColor;")
	assert.Contains(t, frag.Text(), "in vec3 vertexColor;")
}
