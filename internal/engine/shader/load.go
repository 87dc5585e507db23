package shader

import (
	"fmt"
	"path"
	"strings"
)

// SourceProvider returns shader text by name. Missing names should yield an
// error matching fs.ErrNotExist.
type SourceProvider interface {
	ReadSource(name string) (string, error)
}

// SourceFunc adapts a function to SourceProvider.
type SourceFunc func(name string) (string, error)

// ReadSource calls f(name).
func (f SourceFunc) ReadSource(name string) (string, error) { return f(name) }

// Load reads both stages from src and builds a program from them.
func Load(ctx Context, src SourceProvider, vertexName, fragmentName string) (*Program, error) {
	vs, err := src.ReadSource(vertexName)
	if err != nil {
		return nil, fmt.Errorf("reading vertex shader %s: %w", vertexName, err)
	}
	fs, err := src.ReadSource(fragmentName)
	if err != nil {
		return nil, fmt.Errorf("reading fragment shader %s: %w", fragmentName, err)
	}
	return Compile(ctx, vs, fs)
}

// StageFromName guesses the stage from a file name such as "basic.vert",
// "quad.fs" or "sprite.frag.glsl".
func StageFromName(name string) (Stage, bool) {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))
	base = strings.TrimSuffix(base, ".glsl")

	switch {
	case strings.HasSuffix(base, ".vert"), strings.HasSuffix(base, ".vs"),
		strings.HasSuffix(base, ".vertex"), base == "vertex":
		return Vertex, true
	case strings.HasSuffix(base, ".frag"), strings.HasSuffix(base, ".fs"),
		strings.HasSuffix(base, ".fragment"), base == "fragment":
		return Fragment, true
	}
	return 0, false
}
