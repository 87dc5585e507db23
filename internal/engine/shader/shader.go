// Package shader compiles and links GLSL programs and manages their lifetime.
//
// All functions must be called on the thread that owns the current graphics
// context. The package never logs; failures are returned as *CompileError or
// *LinkError and callers decide how to report them.
package shader

import (
	"fmt"
	"strings"
)

// MaxLogLength bounds the diagnostic log fetched from the driver.
// Longer logs are truncated.
const MaxLogLength = 512

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Source is the text of one stage. It is only read during construction.
type Source struct {
	Stage Stage
	Text  string
}

// VertexSource returns a vertex stage source.
func VertexSource(text string) Source { return Source{Stage: Vertex, Text: text} }

// FragmentSource returns a fragment stage source.
func FragmentSource(text string) Source { return Source{Stage: Fragment, Text: text} }

// Context is the subset of the graphics API used to build and drive programs.
// Object names are the driver's unsigned integer handles; 0 is never a valid name.
type Context interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	// ShaderInfoLog returns at most bufSize-1 bytes of the log.
	ShaderInfoLog(shader uint32, bufSize int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32, bufSize int) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformLocation returns -1 when the program has no active uniform by that name.
	UniformLocation(program uint32, name string) int32
	Uniform1f(program uint32, location int32, v float32)
	Uniform2f(program uint32, location int32, v0, v1 float32)
	Uniform3f(program uint32, location int32, v0, v1, v2 float32)
	Uniform4f(program uint32, location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(program uint32, location int32, m *[16]float32)
	// GetUniformfv reads the current value into out, which must be large
	// enough for the uniform's type.
	GetUniformfv(program uint32, location int32, out []float32)
}

// Program is a linked shader program.
//
// A Program returned by New is always linked. Destroy releases it; after
// that every method except Destroy reports ErrDestroyed or does nothing.
type Program struct {
	ctx       Context
	handle    uint32
	locations map[string]int32
}

// Compile builds a program from vertex and fragment source text.
func Compile(ctx Context, vertexSrc, fragmentSrc string) (*Program, error) {
	return New(ctx, VertexSource(vertexSrc), FragmentSource(fragmentSrc))
}

// New compiles both stages and links them into a program.
//
// The vertex stage is compiled first and construction stops at the first
// failure, so a broken vertex stage is reported even if the fragment stage
// is broken too. Stage objects never outlive this call.
func New(ctx Context, vertex, fragment Source) (*Program, error) {
	if vertex.Stage != Vertex || fragment.Stage != Fragment {
		return nil, fmt.Errorf("%w: got %s and %s", ErrStageMismatch, vertex.Stage, fragment.Stage)
	}

	vertShader, err := compileStage(ctx, vertex)
	if err != nil {
		return nil, err
	}
	defer ctx.DeleteShader(vertShader)

	fragShader, err := compileStage(ctx, fragment)
	if err != nil {
		return nil, err
	}
	defer ctx.DeleteShader(fragShader)

	program := ctx.CreateProgram()
	ctx.AttachShader(program, vertShader)
	ctx.AttachShader(program, fragShader)
	ctx.LinkProgram(program)

	if !ctx.ProgramLinked(program) {
		log := ctx.ProgramInfoLog(program, MaxLogLength)
		ctx.DeleteProgram(program)
		return nil, &LinkError{Log: log}
	}

	return &Program{
		ctx:       ctx,
		handle:    program,
		locations: make(map[string]int32),
	}, nil
}

// compileStage compiles a single stage. On failure the stage object is
// already deleted.
func compileStage(ctx Context, src Source) (uint32, error) {
	if strings.TrimSpace(src.Text) == "" {
		return 0, &CompileError{Stage: src.Stage, Log: "empty source", Err: ErrEmptySource}
	}

	shader := ctx.CreateShader(src.Stage)
	ctx.ShaderSource(shader, src.Text)
	ctx.CompileShader(shader)

	if !ctx.ShaderCompiled(shader) {
		log := ctx.ShaderInfoLog(shader, MaxLogLength)
		ctx.DeleteShader(shader)
		return 0, &CompileError{Stage: src.Stage, Log: log}
	}

	return shader, nil
}

// Handle returns the driver's name for the program, or 0 once destroyed.
func (p *Program) Handle() uint32 {
	if p == nil {
		return 0
	}
	return p.handle
}

// Linked reports whether the program can be used for drawing.
func (p *Program) Linked() bool {
	return p != nil && p.handle != 0
}

// Use makes the program current for subsequent draw calls.
func (p *Program) Use() {
	if !p.Linked() {
		return
	}
	p.ctx.UseProgram(p.handle)
}

// Destroy deletes the program object. It is safe to call more than once
// and on a nil Program.
func (p *Program) Destroy() {
	if !p.Linked() {
		return
	}
	p.ctx.DeleteProgram(p.handle)
	p.handle = 0
	p.locations = nil
}
