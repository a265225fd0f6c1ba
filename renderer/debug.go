package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

var ErrDebugUnsupported = errors.New("the context does not support KHR_debug")

type DebugMessage struct {
	ID       uint32
	Source   uint32
	Type     uint32
	Severity uint32
	Message  string
}

func (dm DebugMessage) SeverityString() string {
	switch dm.Severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case gl.DEBUG_SEVERITY_LOW:
		return "low"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "note"
	default:
		return ""
	}
}

func (dm DebugMessage) level() slog.Level {
	switch dm.Severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return slog.LevelError
	case gl.DEBUG_SEVERITY_MEDIUM, gl.DEBUG_SEVERITY_LOW:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}

func (dm DebugMessage) String() string {
	return fmt.Sprintf("[%s] %s", dm.SeverityString(), dm.Message)
}

// HasExtension reports whether the current context advertises the named
// extension.
func HasExtension(name string) bool {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := uint32(0); i < uint32(n); i++ {
		if gl.GoStr(gl.GetStringi(gl.EXTENSIONS, i)) == name {
			return true
		}
	}
	return false
}

// DebugOutput enables debug output on the current context. Messages that
// arrive while the channel is full are dropped.
func DebugOutput() (<-chan DebugMessage, error) {
	if !HasExtension("GL_KHR_debug") {
		return nil, ErrDebugUnsupported
	}
	ch := make(chan DebugMessage, 32)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
	gl.DebugMessageCallback(func(source uint32, typ uint32, id uint32, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		dm := DebugMessage{
			ID:       id,
			Source:   source,
			Type:     typ,
			Severity: severity,
			Message:  message,
		}
		select {
		case ch <- dm:
		default:
		}
	}, nil)
	return ch, nil
}

// LogDebugOutput forwards debug messages to the logger until ctx is done.
func LogDebugOutput(ctx context.Context, logger *slog.Logger, messages <-chan DebugMessage) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case dm := <-messages:
				logger.Log(ctx, dm.level(), "OpenGL debug message",
					"severity", dm.SeverityString(),
					"id", dm.ID,
					"message", dm.Message)
			}
		}
	}()
}

// ContextInfo describes the current context as slog attributes.
func ContextInfo() []any {
	return []any{
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}
