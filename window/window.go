// Package window opens an on-screen window with a current OpenGL context.
package window

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/polyfloyd/trishade/config"
)

// ErrClosed is returned by Run when the window was closed by the user.
var ErrClosed = errors.New("the window was closed")

type Window struct {
	win    *glfw.Window
	logger *slog.Logger
}

// Open creates the window and makes its context current on the calling
// thread, which must be the main thread and locked with
// runtime.LockOSThread.
func Open(wc config.Window, glc config.GL, logger *slog.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("error initializing GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, glc.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, glc.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	if wc.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}
	if glc.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	win, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()

	// The loader resolves the function pointers of the current context.
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to load OpenGL: %w", err)
	}

	w := &Window{win: win, logger: logger}
	win.SetFramebufferSizeCallback(w.onFramebufferSize)
	fbw, fbh := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	return w, nil
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.logger.Debug("Framebuffer resized", "width", width, "height", height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// processInput flags the window for closing when escape is pressed.
func (w *Window) processInput() {
	if w.win.GetKey(glfw.KeyEscape) == glfw.Press {
		w.win.SetShouldClose(true)
	}
}

// Run calls frame once per displayed frame with the time elapsed since Run
// was called, until the window is closed or ctx is done.
func (w *Window) Run(ctx context.Context, frame func(time.Duration) error) error {
	start := time.Now()
	var frames uint64
	defer func() {
		elapsed := time.Since(start)
		w.logger.Debug("Render loop stopped", "frames", frames, "elapsed", elapsed)
	}()

	for !w.win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.processInput()
		if err := frame(time.Since(start)); err != nil {
			return err
		}
		w.win.SwapBuffers()
		glfw.PollEvents()
		frames++
	}
	return ErrClosed
}

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
