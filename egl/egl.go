// Package egl creates headless OpenGL contexts backed by pixel buffer
// surfaces.
package egl

// #cgo LDFLAGS: -lEGL
// #include <EGL/egl.h>
import "C"
import (
	"errors"
	"fmt"
	"strings"
)

var DefaultDisplay = NativeDisplayType(nil) // C.EGL_DEFAULT_DISPLAY

type NativeDisplayType C.EGLNativeDisplayType

type API C.EGLenum

const (
	OpenGLAPI   = API(C.EGL_OPENGL_API)
	OpenGLESAPI = API(C.EGL_OPENGL_ES_API)
)

var errNoConfig = errors.New("no EGL config matches the requested surface")

type Display struct {
	dpy C.EGLDisplay
}

func GetDisplay(dtype NativeDisplayType) (Display, error) {
	dpy := C.eglGetDisplay(C.EGLNativeDisplayType(dtype))
	if dpy == nil {
		return Display{}, fmt.Errorf("error getting display: %v", getError())
	}
	if C.eglInitialize(dpy, nil, nil) == C.EGL_FALSE {
		return Display{}, fmt.Errorf("error initializing display: %v", getError())
	}
	return Display{dpy: dpy}, nil
}

// ClientAPIs retrieves a list of supported client APIs.
func (d Display) ClientAPIs() []string {
	return strings.Fields(C.GoString(C.eglQueryString(d.dpy, C.EGL_CLIENT_APIS)))
}

// Vendor retrieves the EGL vendor string.
func (d Display) Vendor() string {
	return C.GoString(C.eglQueryString(d.dpy, C.EGL_VENDOR))
}

// Version retrieves the EGL version string.
func (d Display) Version() string {
	return C.GoString(C.eglQueryString(d.dpy, C.EGL_VERSION))
}

func (d Display) Destroy() {
	C.eglMakeCurrent(d.dpy, nil, nil, nil)
	C.eglTerminate(d.dpy)
}

type Surface struct {
	conf C.EGLConfig
	surf C.EGLSurface
}

// CreateSurface creates an 8 bit RGBA pixel buffer surface.
func (d Display) CreateSurface(width, height uint) (Surface, error) {
	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_NONE,
	}
	var numConfigs C.EGLint
	var conf C.EGLConfig
	if C.eglChooseConfig(d.dpy, &configAttribs[0], &conf, 1, &numConfigs) == C.EGL_FALSE {
		return Surface{}, fmt.Errorf("error choosing config: %v", getError())
	}
	if numConfigs == 0 {
		return Surface{}, errNoConfig
	}

	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(width),
		C.EGL_HEIGHT, C.EGLint(height),
		C.EGL_NONE,
	}
	surf := C.eglCreatePbufferSurface(d.dpy, conf, &pbufferAttribs[0])
	if surf == nil {
		return Surface{}, fmt.Errorf("error creating surface: %v", getError())
	}
	return Surface{conf: conf, surf: surf}, nil
}

func (d Display) BindAPI(api API) error {
	if C.eglBindAPI(C.EGLenum(api)) == C.EGL_FALSE {
		return fmt.Errorf("error binding API: %v", getError())
	}
	return nil
}

// CreateContext creates a core profile context of at least the requested
// version.
func (d Display) CreateContext(surface Surface, major, minor int) (Context, error) {
	attribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, C.EGLint(major),
		C.EGL_CONTEXT_MINOR_VERSION, C.EGLint(minor),
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		C.EGL_NONE,
	}
	context := C.eglCreateContext(d.dpy, surface.conf, nil, &attribs[0])
	if context == nil {
		return Context{}, fmt.Errorf("error creating %d.%d context: %v", major, minor, getError())
	}
	return Context{
		Display: d,
		Surface: surface,
		context: context,
	}, nil
}

type Context struct {
	Display Display
	Surface Surface

	context C.EGLContext
}

// MakeCurrent binds the context to the calling thread.
func (cx Context) MakeCurrent() error {
	if C.eglMakeCurrent(cx.Display.dpy, cx.Surface.surf, cx.Surface.surf, cx.context) == C.EGL_FALSE {
		return fmt.Errorf("error making context current: %v", getError())
	}
	return nil
}

// Headless sets up a display, a surface of the given size and a current
// OpenGL core context on the calling thread. Callers should hold the thread
// with runtime.LockOSThread.
func Headless(width, height uint, major, minor int) (Display, error) {
	display, err := GetDisplay(DefaultDisplay)
	if err != nil {
		return Display{}, err
	}
	surface, err := display.CreateSurface(width, height)
	if err != nil {
		display.Destroy()
		return Display{}, err
	}
	if err := display.BindAPI(OpenGLAPI); err != nil {
		display.Destroy()
		return Display{}, err
	}
	context, err := display.CreateContext(surface, major, minor)
	if err != nil {
		display.Destroy()
		return Display{}, err
	}
	if err := context.MakeCurrent(); err != nil {
		display.Destroy()
		return Display{}, err
	}
	return display, nil
}

func getError() error {
	switch code := C.eglGetError(); code {
	case C.EGL_SUCCESS:
		return nil
	case C.EGL_NOT_INITIALIZED:
		return errors.New("EGL is not initialized for the display connection")
	case C.EGL_BAD_ACCESS:
		return errors.New("EGL cannot access a requested resource")
	case C.EGL_BAD_ALLOC:
		return errors.New("EGL failed to allocate resources")
	case C.EGL_BAD_ATTRIBUTE:
		return errors.New("unrecognized attribute or attribute value")
	case C.EGL_BAD_CONTEXT:
		return errors.New("invalid EGL rendering context")
	case C.EGL_BAD_CONFIG:
		return errors.New("invalid EGL frame buffer configuration")
	case C.EGL_BAD_CURRENT_SURFACE:
		return errors.New("the current surface is no longer valid")
	case C.EGL_BAD_DISPLAY:
		return errors.New("invalid EGL display connection")
	case C.EGL_BAD_SURFACE:
		return errors.New("invalid EGL surface")
	case C.EGL_BAD_MATCH:
		return errors.New("inconsistent arguments")
	case C.EGL_BAD_PARAMETER:
		return errors.New("invalid argument value")
	case C.EGL_CONTEXT_LOST:
		return errors.New("context lost after a power management event")
	default:
		return fmt.Errorf("unknown EGL error: %#x", int(code))
	}
}
