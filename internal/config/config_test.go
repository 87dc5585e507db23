package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Backend != BackendSDL {
		t.Errorf("expected sdl backend, got %s", cfg.Window.Backend)
	}
	if cfg.Window.GLMajor != 4 || cfg.Window.GLMinor != 1 {
		t.Errorf("expected OpenGL 4.1, got %d.%d", cfg.Window.GLMajor, cfg.Window.GLMinor)
	}
	if cfg.Demo.Name != "color" {
		t.Errorf("expected demo 'color', got %s", cfg.Demo.Name)
	}
	if cfg.Demo.ClearColor != [4]float32{0.2, 0.3, 0.3, 1.0} {
		t.Errorf("unexpected clear color %v", cfg.Demo.ClearColor)
	}
	if cfg.Shaders.Dir != "" || cfg.Shaders.Watch {
		t.Error("expected embedded shaders without watching by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `
window:
  width: 1024
  backend: glfw
  gl_major: 3
  gl_minor: 3
demo:
  name: two-vaos
  clear_color: [0, 0, 0, 1]
shaders:
  dir: ./shaders
  watch: true
logging:
  level: debug
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `
[window]
width = 1024
backend = "glfw"
gl_major = 3
gl_minor = 3

[demo]
name = "two-vaos"
clear_color = [0.0, 0.0, 0.0, 1.0]

[shaders]
dir = "./shaders"
watch = true

[logging]
level = "debug"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, path); err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.Window.Width != 1024 {
				t.Errorf("expected width 1024, got %d", cfg.Window.Width)
			}
			if cfg.Window.Height != 600 {
				t.Errorf("expected height to keep default 600, got %d", cfg.Window.Height)
			}
			if cfg.Window.Backend != BackendGLFW {
				t.Errorf("expected glfw backend, got %s", cfg.Window.Backend)
			}
			if cfg.Window.GLMajor != 3 || cfg.Window.GLMinor != 3 {
				t.Errorf("expected OpenGL 3.3, got %d.%d", cfg.Window.GLMajor, cfg.Window.GLMinor)
			}
			if cfg.Demo.Name != "two-vaos" {
				t.Errorf("expected demo two-vaos, got %s", cfg.Demo.Name)
			}
			if cfg.Demo.ClearColor != [4]float32{0, 0, 0, 1} {
				t.Errorf("unexpected clear color %v", cfg.Demo.ClearColor)
			}
			if cfg.Shaders.Dir != "./shaders" || !cfg.Shaders.Watch {
				t.Errorf("unexpected shaders config %+v", cfg.Shaders)
			}
			if cfg.Shaders.Vertex != "vertex.glsl" {
				t.Errorf("expected vertex name to keep default, got %s", cfg.Shaders.Vertex)
			}
			if cfg.Logging.Level != "debug" {
				t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
			}
		})
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	for _, name := range []string{"invalid.yaml", "invalid.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(path, []byte("window:\n  width: [not a number\n"), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"glfw backend", func(c *Config) { c.Window.Backend = BackendGLFW }, ""},
		{"unknown backend", func(c *Config) { c.Window.Backend = "vulkan" }, "unknown window backend"},
		{"zero size", func(c *Config) { c.Window.Width = 0 }, "invalid window size"},
		{"old gl", func(c *Config) { c.Window.GLMajor, c.Window.GLMinor = 3, 2 }, "older than 3.3"},
		{"gl 3.3", func(c *Config) { c.Window.GLMajor, c.Window.GLMinor = 3, 3 }, ""},
		{"empty shader name", func(c *Config) { c.Shaders.Fragment = "" }, "must not be empty"},
		{"watch without dir", func(c *Config) { c.Shaders.Watch = true }, "requires shaders.dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.toml", []byte("[window]\nwidth = 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "config.toml" {
		t.Errorf("expected to find config.toml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "demo and backend flags",
			setup: func() { *flagDemo = "six-vertices"; *flagBackend = BackendGLFW },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Demo.Name != "six-vertices" {
					t.Errorf("expected demo six-vertices, got %s", cfg.Demo.Name)
				}
				if cfg.Window.Backend != BackendGLFW {
					t.Errorf("expected glfw backend, got %s", cfg.Window.Backend)
				}
			},
			teardown: func() { *flagDemo = ""; *flagBackend = "" },
		},
		{
			name:  "shader flags",
			setup: func() { *flagShaders = "assets/shaders"; *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shaders.Dir != "assets/shaders" || !cfg.Shaders.Watch {
					t.Errorf("unexpected shaders config %+v", cfg.Shaders)
				}
			},
			teardown: func() { *flagShaders = ""; *flagWatch = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 1280; *flagHeight = 720 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
					t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 1600\n  height: 900\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  backend: directx\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error, got nil")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Demo.Name = "two-vaos"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Demo.Name != "two-vaos" {
		t.Errorf("expected demo two-vaos after reload, got %s", loaded.Demo.Name)
	}
}
