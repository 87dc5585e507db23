// Package window creates a window with an OpenGL context.
//
// The context is current on the main OS thread; every GL call must be made
// from the goroutine that called New.
package window

import (
	"fmt"
	"runtime"
	"time"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names accepted by New.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Hidden     bool
	Backend    string
	GLMajor    int
	GLMinor    int
}

// Window is a native window owning the current OpenGL context.
type Window interface {
	// PollEvents processes pending input. It returns false once the user
	// closed the window or pressed Escape.
	PollEvents() bool
	SwapBuffers()
	// Size returns the framebuffer size in pixels.
	Size() (width, height int)
	// OnResize registers a handler for framebuffer size changes.
	OnResize(func(width, height int))
	// Elapsed returns the time since the window was created.
	Elapsed() time.Duration
	Close()
}

// New creates a window using the configured backend.
func New(cfg Config) (Window, error) {
	if cfg.GLMajor == 0 {
		cfg.GLMajor, cfg.GLMinor = 4, 1
	}
	switch cfg.Backend {
	case "", BackendSDL:
		return newSDL(cfg)
	case BackendGLFW:
		return newGLFW(cfg)
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
}
