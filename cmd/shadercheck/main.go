// Package main compiles and links a vertex/fragment shader pair and reports
// the result. The exit status is 0 on success, 1 for a vertex compile
// error, 2 for a fragment compile error, 3 for a link error and 4 for
// anything else.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/demo"
	"github.com/Faultbox/learngl/internal/engine/glctx"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/engine/window"
	"github.com/Faultbox/learngl/internal/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <vertex> <fragment> [uniform...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	config.ParseFlags()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(shader.CodeOther)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(shader.CodeOther)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(shader.CodeOther)
	}

	code := check(cfg, flag.Arg(0), flag.Arg(1), flag.Args()[2:])
	logger.Sync()
	os.Exit(code)
}

// orderStages lets the pair be given in either order when the file names
// say which stage each one is.
func orderStages(a, b string) (vertex, fragment string) {
	if stage, ok := shader.StageFromName(a); ok && stage == shader.Fragment {
		if stage, ok := shader.StageFromName(b); !ok || stage == shader.Vertex {
			return b, a
		}
	}
	return a, b
}

func readFile(name string) (string, error) {
	data, err := os.ReadFile(name)
	return string(data), err
}

func check(cfg *config.Config, a, b string, uniforms []string) int {
	vertex, fragment := orderStages(a, b)

	win, err := window.New(window.Config{
		Title:   "shadercheck",
		Width:   64,
		Height:  64,
		Hidden:  true,
		Backend: cfg.Window.Backend,
		GLMajor: cfg.Window.GLMajor,
		GLMinor: cfg.Window.GLMinor,
	})
	if err != nil {
		logger.Error("creating context", zap.Error(err))
		return shader.CodeOther
	}
	defer win.Close()

	ctx, err := glctx.New()
	if err != nil {
		logger.Error("loading OpenGL", zap.Error(err))
		return shader.CodeOther
	}

	prog, err := shader.Load(ctx, shader.SourceFunc(readFile), vertex, fragment)
	if err != nil {
		logger.Error("shader program failed", demo.ShaderErrorFields(err)...)
		return shader.ErrorCode(err)
	}
	defer prog.Destroy()

	logger.Info("shader program linked",
		zap.String("vertex", vertex),
		zap.String("fragment", fragment),
		zap.Uint32("program", prog.Handle()),
	)

	for _, name := range uniforms {
		loc, ok := prog.Location(name)
		if !ok {
			logger.Warn("uniform not active", zap.String("uniform", name))
			continue
		}
		value := make([]float32, 16)
		if _, err := prog.ReadUniform(name, value); err != nil {
			logger.Warn("reading uniform", zap.String("uniform", name), zap.Error(err))
			continue
		}
		logger.Info("uniform",
			zap.String("name", name),
			zap.Int32("location", loc),
			zap.String("value", formatFloats(value)),
		)
	}

	return shader.CodeOK
}

func formatFloats(v []float32) string {
	// Trailing zeros are indistinguishable from unused slots.
	end := len(v)
	for end > 1 && v[end-1] == 0 {
		end--
	}
	parts := make([]string, end)
	for i, f := range v[:end] {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
