// Package config handles loading and validating learngl settings.
package config

import (
	"fmt"
	"strings"
)

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Demo    DemoConfig    `yaml:"demo" toml:"demo"`
	Shaders ShadersConfig `yaml:"shaders" toml:"shaders"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds window and context settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Backend    string `yaml:"backend" toml:"backend"` // "sdl" or "glfw"
	GLMajor    int    `yaml:"gl_major" toml:"gl_major"`
	GLMinor    int    `yaml:"gl_minor" toml:"gl_minor"`
}

// DemoConfig selects the demo scene.
type DemoConfig struct {
	Name       string     `yaml:"name" toml:"name"`
	ClearColor [4]float32 `yaml:"clear_color" toml:"clear_color"`
}

// ShadersConfig locates file-backed shader sources.
type ShadersConfig struct {
	Dir      string `yaml:"dir" toml:"dir"` // searched before the embedded shaders
	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`
	Watch    bool   `yaml:"watch" toml:"watch"` // rebuild when files in Dir change
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with the tutorial defaults.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "LearnOpenGL",
			Width:   800,
			Height:  600,
			VSync:   true,
			Backend: BackendSDL,
			GLMajor: 4,
			GLMinor: 1,
		},
		Demo: DemoConfig{
			Name:       "color",
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		},
		Shaders: ShadersConfig{
			Vertex:   "vertex.glsl",
			Fragment: "fragment.glsl",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings that cannot produce a working window.
func (c *Config) Validate() error {
	var problems []string

	switch c.Window.Backend {
	case BackendSDL, BackendGLFW:
	default:
		problems = append(problems, fmt.Sprintf("unknown window backend %q", c.Window.Backend))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, fmt.Sprintf("invalid window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.GLMajor < 3 || (c.Window.GLMajor == 3 && c.Window.GLMinor < 3) {
		problems = append(problems, fmt.Sprintf("OpenGL %d.%d is older than 3.3 core", c.Window.GLMajor, c.Window.GLMinor))
	}
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		problems = append(problems, "shader file names must not be empty")
	}
	if c.Shaders.Watch && c.Shaders.Dir == "" {
		problems = append(problems, "shaders.watch requires shaders.dir")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
