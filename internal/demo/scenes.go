package demo

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/demo/shaders"
	"github.com/Faultbox/learngl/internal/engine/shader"
)

var triangle = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

var (
	lowerLeft = []float32{
		-0.5, 0.0, 0.0,
		0.0, -1.0, 0.0,
		-1.0, -1.0, 0.0,
	}
	upperRight = []float32{
		0.5, 1.0, 0.0,
		1.0, 0.0, 0.0,
		0.0, 0.0, 0.0,
	}
)

func upload(env *Env, sets ...[]float32) ([]Drawable, error) {
	var meshes []Drawable
	for _, positions := range sets {
		m, err := env.Meshes.Upload(positions)
		if err != nil {
			deleteAll(meshes)
			return nil, fmt.Errorf("uploading mesh: %w", err)
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func deleteAll(meshes []Drawable) {
	for _, m := range meshes {
		m.Delete()
	}
}

// colorScene draws one triangle whose green channel follows a sine wave.
type colorScene struct {
	program *shader.Program
	meshes  []Drawable
}

func (s *colorScene) Setup(env *Env) error {
	program, err := shader.Compile(env.GL, shaders.PositionVertexShader, shaders.UniformColorFragmentShader)
	if err != nil {
		return fmt.Errorf("building color program: %w", err)
	}
	meshes, err := upload(env, triangle)
	if err != nil {
		program.Destroy()
		return err
	}
	s.program, s.meshes = program, meshes
	return nil
}

func (s *colorScene) Frame(t time.Duration) error {
	s.program.Use()
	if err := s.program.SetVec4("ourColor", 0, Green(t), 0, 1); err != nil {
		return err
	}
	for _, m := range s.meshes {
		m.Draw()
	}
	return nil
}

func (s *colorScene) Close() {
	deleteAll(s.meshes)
	s.meshes = nil
	s.program.Destroy()
}

// twoVAOScene draws two orange triangles from separate vertex arrays.
type twoVAOScene struct {
	program *shader.Program
	meshes  []Drawable
}

func (s *twoVAOScene) Setup(env *Env) error {
	program, err := shader.Compile(env.GL, shaders.PositionVertexShader, shaders.OrangeFragmentShader)
	if err != nil {
		return fmt.Errorf("building orange program: %w", err)
	}
	meshes, err := upload(env, lowerLeft, upperRight)
	if err != nil {
		program.Destroy()
		return err
	}
	s.program, s.meshes = program, meshes
	return nil
}

func (s *twoVAOScene) Frame(time.Duration) error {
	s.program.Use()
	for _, m := range s.meshes {
		m.Draw()
	}
	return nil
}

func (s *twoVAOScene) Close() {
	deleteAll(s.meshes)
	s.meshes = nil
	s.program.Destroy()
}

// sixVertexScene draws both triangles from one vertex array, with shaders
// read from files and optionally rebuilt when they change.
type sixVertexScene struct {
	log      *zap.Logger
	program  *shader.Program
	reloader *shader.Reloader
	meshes   []Drawable
}

func (s *sixVertexScene) Setup(env *Env) error {
	s.log = env.logger()
	cfg := env.Shaders

	var err error
	if cfg.Watch {
		s.reloader, err = shader.NewReloader(env.GL, env.Sources, cfg.Vertex, cfg.Fragment, env.WatchDirs...)
	} else {
		s.program, err = shader.Load(env.GL, env.Sources, cfg.Vertex, cfg.Fragment)
	}
	if err != nil {
		return fmt.Errorf("building program from %s and %s: %w", cfg.Vertex, cfg.Fragment, err)
	}

	positions := append(append([]float32{}, lowerLeft...), upperRight...)
	s.meshes, err = upload(env, positions)
	if err != nil {
		s.Close()
		return err
	}
	return nil
}

func (s *sixVertexScene) current() *shader.Program {
	if s.reloader != nil {
		return s.reloader.Program()
	}
	return s.program
}

func (s *sixVertexScene) Frame(time.Duration) error {
	if s.reloader != nil {
		reloaded, err := s.reloader.Poll()
		switch {
		case err != nil:
			s.log.Error("shader reload failed, keeping previous program", ShaderErrorFields(err)...)
		case reloaded:
			s.log.Info("shader program reloaded", zap.Uint32("program", s.reloader.Program().Handle()))
		}
	}

	s.current().Use()
	for _, m := range s.meshes {
		m.Draw()
	}
	return nil
}

func (s *sixVertexScene) Close() {
	deleteAll(s.meshes)
	s.meshes = nil
	if s.reloader != nil {
		if err := s.reloader.Close(); err != nil {
			s.log.Warn("closing shader watcher", zap.Error(err))
		}
		s.reloader = nil
	}
	s.program.Destroy()
}
