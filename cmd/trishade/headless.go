package main

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/polyfloyd/trishade/config"
	"github.com/polyfloyd/trishade/egl"
	"github.com/polyfloyd/trishade/renderer"
)

// headlessContext creates an offscreen context and loads OpenGL for it. The
// returned function tears it down.
func headlessContext(glc config.GL) (func(), error) {
	display, err := egl.Headless(1, 1, glc.Major, glc.Minor)
	if err != nil {
		return nil, fmt.Errorf("could not create a headless OpenGL %d.%d context: %w", glc.Major, glc.Minor, err)
	}
	if err := gl.Init(); err != nil {
		display.Destroy()
		return nil, fmt.Errorf("failed to load OpenGL: %w", err)
	}
	sess.logger.Debug("Headless OpenGL context created",
		append([]any{"egl_vendor", display.Vendor(), "egl_version", display.Version()}, renderer.ContextInfo()...)...)
	return display.Destroy, nil
}
