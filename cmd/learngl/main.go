// Package main runs one of the LearnOpenGL tutorial scenes.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/assets"
	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/demo"
	"github.com/Faultbox/learngl/internal/demo/shaders"
	"github.com/Faultbox/learngl/internal/engine/glctx"
	"github.com/Faultbox/learngl/internal/engine/renderer"
	"github.com/Faultbox/learngl/internal/engine/window"
	"github.com/Faultbox/learngl/internal/logger"
)

// meshUploader adapts the renderer to demo.Uploader.
type meshUploader struct {
	r *renderer.Renderer
}

func (u meshUploader) Upload(positions []float32) (demo.Drawable, error) {
	m, err := u.r.NewMesh(positions)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("demo failed", demo.ShaderErrorFields(err)...)
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("demo closed normally")
}

func run(cfg *config.Config) error {
	logger.Info("=== LearnOpenGL ===", zap.String("demo", cfg.Demo.Name))
	logger.Sugar.Debugf("Config: %+v", cfg)

	scene, err := demo.New(cfg.Demo.Name)
	if err != nil {
		return err
	}

	sources := assets.NewManager()
	defer sources.Close()
	sources.AddFS("embedded", shaders.FS)
	if cfg.Shaders.Dir != "" {
		if err := sources.AddDir(cfg.Shaders.Dir); err != nil {
			return err
		}
	}

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Backend:    cfg.Window.Backend,
		GLMajor:    cfg.Window.GLMajor,
		GLMinor:    cfg.Window.GLMinor,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	ctx, err := glctx.New()
	if err != nil {
		return err
	}

	width, height := win.Size()
	rend := renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Demo.ClearColor,
	})
	defer rend.Close()
	win.OnResize(rend.Resize)

	env := &demo.Env{
		GL:        ctx,
		Meshes:    meshUploader{r: rend},
		Sources:   sources,
		Shaders:   cfg.Shaders,
		WatchDirs: sources.Dirs(),
		Log:       logger.Named(cfg.Demo.Name),
	}
	if err := scene.Setup(env); err != nil {
		return err
	}
	defer scene.Close()

	return demo.Run(win, rend.Begin, scene)
}
