package renderer

import (
	"context"
	"image"
	"image/color"
	"runtime"
	"testing"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/trishade/config"
	"github.com/polyfloyd/trishade/egl"
	"github.com/polyfloyd/trishade/scene"
	"github.com/polyfloyd/trishade/shader"
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

func TestFlip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})

	flip := &Flip{Image: img}
	assert.Equal(t, img.At(0, 1), flip.At(0, 0))
	assert.Equal(t, img.At(0, 0), flip.At(0, 1))
	assert.Equal(t, img.Bounds(), flip.Bounds())
}

func TestOffscreenTriangle(t *testing.T) {
	initTestGL(t)

	cfg := config.Default().Scene
	sc, err := scene.New(shader.NewBuilder(shader.GLDriver{}), cfg)
	require.NoError(t, err)
	defer sc.Close()

	off, err := NewOffscreen(64, 64)
	require.NoError(t, err)
	defer off.Close()

	handle, err := off.Draw(func() error { return sc.Frame(0) })
	require.NoError(t, err)
	img := off.Image(handle)

	r, g, b, _ := img.At(32, 36).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b}, "the triangle is blue")
	r, g, b, _ = img.At(1, 1).RGBA()
	assert.Equal(t, [3]uint32{0, 0xffff, 0}, [3]uint32{r, g, b}, "the background is green")
}

func TestOffscreenAnimate(t *testing.T) {
	initTestGL(t)

	off, err := NewOffscreen(4, 4)
	require.NoError(t, err)
	defer off.Close()

	var drawn []time.Duration
	frame := func(t time.Duration) error {
		drawn = append(drawn, t)
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		return nil
	}

	const numFrames = 7
	stream := make(chan image.Image, numFrames)
	err = off.Animate(context.Background(), frame, 10*time.Millisecond, numFrames, stream)
	require.NoError(t, err)
	close(stream)

	assert.Len(t, stream, numFrames)
	require.Len(t, drawn, numFrames)
	assert.Equal(t, 60*time.Millisecond, drawn[numFrames-1])
}
