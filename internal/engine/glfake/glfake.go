// Package glfake is an in-memory graphics context for tests.
//
// It performs a shallow GLSL check on compile (version directive, balanced
// delimiters, terminated statements), matches stage interfaces on link, and
// keeps uniform values per program. It counts calls and live objects so
// tests can verify resource release.
package glfake

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Faultbox/learngl/internal/engine/shader"
)

type variable struct {
	typ  string
	name string
}

type shaderObject struct {
	stage    shader.Stage
	source   string
	compiled bool
	log      string

	ins      []variable
	outs     []variable
	uniforms []variable
	body     string
	hasMain  bool
}

type uniform struct {
	variable
	location int32
	value    []float32
}

type programObject struct {
	attached []uint32
	linked   bool
	log      string
	uniforms []*uniform
}

// Context implements shader.Context without a GPU.
type Context struct {
	next     uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	current  uint32
	calls    map[string]int
	faults   []string
}

var _ shader.Context = (*Context)(nil)

// New returns an empty context.
func New() *Context {
	return &Context{
		shaders:  make(map[uint32]*shaderObject),
		programs: make(map[uint32]*programObject),
		calls:    make(map[string]int),
	}
}

// Calls returns how many times the named method was invoked.
func (c *Context) Calls(method string) int { return c.calls[method] }

// LiveShaders returns the number of shader objects not yet deleted.
func (c *Context) LiveShaders() int { return len(c.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (c *Context) LivePrograms() int { return len(c.programs) }

// Live returns the number of live objects of any kind.
func (c *Context) Live() int { return len(c.shaders) + len(c.programs) }

// CurrentProgram returns the program bound by the last UseProgram.
func (c *Context) CurrentProgram() uint32 { return c.current }

// Faults lists API misuse seen so far, such as deleting an unknown object.
func (c *Context) Faults() []string { return c.faults }

// ActiveUniforms returns the sorted names of a linked program's active uniforms.
func (c *Context) ActiveUniforms(program uint32) []string {
	p, ok := c.programs[program]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(p.uniforms))
	for _, u := range p.uniforms {
		names = append(names, u.name)
	}
	sort.Strings(names)
	return names
}

func (c *Context) record(method string) { c.calls[method]++ }

func (c *Context) fault(format string, args ...any) {
	c.faults = append(c.faults, fmt.Sprintf(format, args...))
}

func (c *Context) newName() uint32 {
	c.next++
	return c.next
}

func (c *Context) CreateShader(stage shader.Stage) uint32 {
	c.record("CreateShader")
	name := c.newName()
	c.shaders[name] = &shaderObject{stage: stage}
	return name
}

func (c *Context) ShaderSource(name uint32, source string) {
	c.record("ShaderSource")
	s, ok := c.shaders[name]
	if !ok {
		c.fault("ShaderSource: unknown shader %d", name)
		return
	}
	s.source = source
}

func (c *Context) CompileShader(name uint32) {
	c.record("CompileShader")
	s, ok := c.shaders[name]
	if !ok {
		c.fault("CompileShader: unknown shader %d", name)
		return
	}
	s.compile()
}

func (c *Context) ShaderCompiled(name uint32) bool {
	c.record("ShaderCompiled")
	s, ok := c.shaders[name]
	if !ok {
		c.fault("ShaderCompiled: unknown shader %d", name)
		return false
	}
	return s.compiled
}

func (c *Context) ShaderInfoLog(name uint32, bufSize int) string {
	c.record("ShaderInfoLog")
	s, ok := c.shaders[name]
	if !ok {
		c.fault("ShaderInfoLog: unknown shader %d", name)
		return ""
	}
	return truncate(s.log, bufSize)
}

func (c *Context) DeleteShader(name uint32) {
	c.record("DeleteShader")
	if _, ok := c.shaders[name]; !ok {
		c.fault("DeleteShader: unknown shader %d", name)
		return
	}
	delete(c.shaders, name)
}

func (c *Context) CreateProgram() uint32 {
	c.record("CreateProgram")
	name := c.newName()
	c.programs[name] = &programObject{}
	return name
}

func (c *Context) AttachShader(program, name uint32) {
	c.record("AttachShader")
	p, ok := c.programs[program]
	if !ok {
		c.fault("AttachShader: unknown program %d", program)
		return
	}
	if _, ok := c.shaders[name]; !ok {
		c.fault("AttachShader: unknown shader %d", name)
		return
	}
	p.attached = append(p.attached, name)
}

func (c *Context) LinkProgram(program uint32) {
	c.record("LinkProgram")
	p, ok := c.programs[program]
	if !ok {
		c.fault("LinkProgram: unknown program %d", program)
		return
	}
	var stages []*shaderObject
	for _, name := range p.attached {
		if s, ok := c.shaders[name]; ok {
			stages = append(stages, s)
		}
	}
	p.link(stages)
}

func (c *Context) ProgramLinked(program uint32) bool {
	c.record("ProgramLinked")
	p, ok := c.programs[program]
	if !ok {
		c.fault("ProgramLinked: unknown program %d", program)
		return false
	}
	return p.linked
}

func (c *Context) ProgramInfoLog(program uint32, bufSize int) string {
	c.record("ProgramInfoLog")
	p, ok := c.programs[program]
	if !ok {
		c.fault("ProgramInfoLog: unknown program %d", program)
		return ""
	}
	return truncate(p.log, bufSize)
}

func (c *Context) DeleteProgram(program uint32) {
	c.record("DeleteProgram")
	if _, ok := c.programs[program]; !ok {
		c.fault("DeleteProgram: unknown program %d", program)
		return
	}
	delete(c.programs, program)
	if c.current == program {
		c.current = 0
	}
}

func (c *Context) UseProgram(program uint32) {
	c.record("UseProgram")
	if program == 0 {
		c.current = 0
		return
	}
	p, ok := c.programs[program]
	if !ok {
		c.fault("UseProgram: unknown program %d", program)
		return
	}
	if !p.linked {
		c.fault("UseProgram: program %d is not linked", program)
		return
	}
	c.current = program
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	c.record("UniformLocation")
	p, ok := c.programs[program]
	if !ok || !p.linked {
		c.fault("UniformLocation: program %d is not linked", program)
		return -1
	}
	for _, u := range p.uniforms {
		if u.name == name {
			return u.location
		}
	}
	return -1
}

func (c *Context) Uniform1f(program uint32, location int32, v float32) {
	c.record("Uniform1f")
	c.setUniform(program, location, "float", v)
}

func (c *Context) Uniform2f(program uint32, location int32, v0, v1 float32) {
	c.record("Uniform2f")
	c.setUniform(program, location, "vec2", v0, v1)
}

func (c *Context) Uniform3f(program uint32, location int32, v0, v1, v2 float32) {
	c.record("Uniform3f")
	c.setUniform(program, location, "vec3", v0, v1, v2)
}

func (c *Context) Uniform4f(program uint32, location int32, v0, v1, v2, v3 float32) {
	c.record("Uniform4f")
	c.setUniform(program, location, "vec4", v0, v1, v2, v3)
}

func (c *Context) UniformMatrix4fv(program uint32, location int32, m *[16]float32) {
	c.record("UniformMatrix4fv")
	c.setUniform(program, location, "mat4", m[:]...)
}

func (c *Context) GetUniformfv(program uint32, location int32, out []float32) {
	c.record("GetUniformfv")
	u := c.lookupUniform(program, location)
	if u == nil {
		c.fault("GetUniformfv: invalid location %d in program %d", location, program)
		return
	}
	copy(out, u.value)
}

func (c *Context) setUniform(program uint32, location int32, typ string, values ...float32) {
	if location == -1 {
		return
	}
	u := c.lookupUniform(program, location)
	if u == nil {
		c.fault("set %s: invalid location %d in program %d", typ, location, program)
		return
	}
	if u.typ != typ {
		c.fault("set %s: uniform %s is %s", typ, u.name, u.typ)
		return
	}
	copy(u.value, values)
}

func (c *Context) lookupUniform(program uint32, location int32) *uniform {
	p, ok := c.programs[program]
	if !ok || !p.linked {
		return nil
	}
	for _, u := range p.uniforms {
		if u.location == location {
			return u
		}
	}
	return nil
}

func truncate(log string, bufSize int) string {
	if bufSize <= 1 {
		return ""
	}
	if len(log) > bufSize-1 {
		return log[:bufSize-1]
	}
	return log
}

var (
	declPattern = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?(in|out|uniform)\s+(\w+)\s+(\w+)\s*;`)
	mainPattern = regexp.MustCompile(`\bvoid\s+main\s*\(\s*\)`)
)

// components returns the float count for a GLSL type, or 0 if unsupported.
func components(typ string) int {
	switch typ {
	case "float", "int", "bool":
		return 1
	case "vec2":
		return 2
	case "vec3":
		return 3
	case "vec4":
		return 4
	case "mat4":
		return 16
	}
	return 0
}
