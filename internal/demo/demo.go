// Package demo contains the tutorial scenes and the loop that drives them.
package demo

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/shader"
)

// Drawable is uploaded geometry.
type Drawable interface {
	Draw()
	Delete()
}

// Uploader turns packed vec3 positions into drawable geometry.
type Uploader interface {
	Upload(positions []float32) (Drawable, error)
}

// Surface is the part of a window the loop needs.
type Surface interface {
	PollEvents() bool
	SwapBuffers()
	Elapsed() time.Duration
}

// Env is what a scene may use during Setup.
type Env struct {
	GL      shader.Context
	Meshes  Uploader
	Sources shader.SourceProvider
	Shaders config.ShadersConfig
	// WatchDirs are the directories watched when Shaders.Watch is set.
	WatchDirs []string
	Log       *zap.Logger
}

func (e *Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// Scene is one tutorial program.
type Scene interface {
	Setup(env *Env) error
	// Frame draws one frame; t is the time since the window opened.
	Frame(t time.Duration) error
	Close()
}

var registry = map[string]func() Scene{
	"color":        func() Scene { return &colorScene{} },
	"two-vaos":     func() Scene { return &twoVAOScene{} },
	"six-vertices": func() Scene { return &sixVertexScene{} },
}

// Names lists the available scenes.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the named scene.
func New(name string) (Scene, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown demo %q (available: %v)", name, Names())
	}
	return ctor(), nil
}

// Run draws frames until the surface asks to close. begin runs before each
// frame, typically to clear the framebuffer.
func Run(s Surface, begin func(), scene Scene) error {
	for s.PollEvents() {
		if begin != nil {
			begin()
		}
		if err := scene.Frame(s.Elapsed()); err != nil {
			return err
		}
		s.SwapBuffers()
	}
	return nil
}

// Green is the animated green channel: sin(t)/2 + 0.5.
func Green(t time.Duration) float32 {
	return float32(math.Sin(t.Seconds())/2 + 0.5)
}

// ShaderErrorFields describes a shader construction error for logging.
func ShaderErrorFields(err error) []zap.Field {
	fields := []zap.Field{
		zap.Int("code", shader.ErrorCode(err)),
		zap.Error(err),
	}
	if log, ok := shader.DiagnosticLog(err); ok {
		fields = append(fields, zap.String("diagnostic", log))
	}
	return fields
}
