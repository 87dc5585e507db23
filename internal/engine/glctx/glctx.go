// Package glctx implements shader.Context on top of OpenGL via go-gl.
package glctx

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/logger"
)

// Context issues calls against the OpenGL context current on this thread.
// IMPORTANT: New must be called after the window has made a context current.
type Context struct {
	major, minor int32

	// programUniforms is set on GL 4.1+, where glProgramUniform* lets
	// uniforms be set without binding the program.
	programUniforms bool
}

var _ shader.Context = (*Context)(nil)

// New loads the OpenGL function pointers and queries the context version.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	c := &Context{}
	gl.GetIntegerv(gl.MAJOR_VERSION, &c.major)
	gl.GetIntegerv(gl.MINOR_VERSION, &c.minor)
	c.programUniforms = c.major > 4 || (c.major == 4 && c.minor >= 1)

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Bool("program_uniforms", c.programUniforms),
	)

	return c, nil
}

// Version returns the context's major and minor version.
func (c *Context) Version() (major, minor int) {
	return int(c.major), int(c.minor)
}

func (c *Context) CreateShader(stage shader.Stage) uint32 {
	switch stage {
	case shader.Fragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
}

func (c *Context) ShaderSource(name uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(name, 1, csource, nil)
	free()
}

func (c *Context) CompileShader(name uint32) {
	gl.CompileShader(name)
}

func (c *Context) ShaderCompiled(name uint32) bool {
	var status int32
	gl.GetShaderiv(name, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ShaderInfoLog(name uint32, bufSize int) string {
	var logLen int32
	gl.GetShaderiv(name, gl.INFO_LOG_LENGTH, &logLen)
	buf := logBuffer(logLen, bufSize)
	if buf == nil {
		return ""
	}
	gl.GetShaderInfoLog(name, int32(len(buf)), nil, &buf[0])
	return trimLog(buf)
}

func (c *Context) DeleteShader(name uint32) {
	gl.DeleteShader(name)
}

func (c *Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (c *Context) AttachShader(program, name uint32) {
	gl.AttachShader(program, name)
}

func (c *Context) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (c *Context) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ProgramInfoLog(program uint32, bufSize int) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	buf := logBuffer(logLen, bufSize)
	if buf == nil {
		return ""
	}
	gl.GetProgramInfoLog(program, int32(len(buf)), nil, &buf[0])
	return trimLog(buf)
}

func (c *Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (c *Context) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	return gl.GetUniformLocation(program, *cname)
}

func (c *Context) Uniform1f(program uint32, location int32, v float32) {
	if c.programUniforms {
		gl.ProgramUniform1f(program, location, v)
		return
	}
	c.withProgram(program, func() { gl.Uniform1f(location, v) })
}

func (c *Context) Uniform2f(program uint32, location int32, v0, v1 float32) {
	if c.programUniforms {
		gl.ProgramUniform2f(program, location, v0, v1)
		return
	}
	c.withProgram(program, func() { gl.Uniform2f(location, v0, v1) })
}

func (c *Context) Uniform3f(program uint32, location int32, v0, v1, v2 float32) {
	if c.programUniforms {
		gl.ProgramUniform3f(program, location, v0, v1, v2)
		return
	}
	c.withProgram(program, func() { gl.Uniform3f(location, v0, v1, v2) })
}

func (c *Context) Uniform4f(program uint32, location int32, v0, v1, v2, v3 float32) {
	if c.programUniforms {
		gl.ProgramUniform4f(program, location, v0, v1, v2, v3)
		return
	}
	c.withProgram(program, func() { gl.Uniform4f(location, v0, v1, v2, v3) })
}

func (c *Context) UniformMatrix4fv(program uint32, location int32, m *[16]float32) {
	if c.programUniforms {
		gl.ProgramUniformMatrix4fv(program, location, 1, false, &m[0])
		return
	}
	c.withProgram(program, func() { gl.UniformMatrix4fv(location, 1, false, &m[0]) })
}

func (c *Context) GetUniformfv(program uint32, location int32, out []float32) {
	if len(out) == 0 {
		return
	}
	gl.GetUniformfv(program, location, &out[0])
}

// withProgram runs f with program bound and restores the previous binding.
func (c *Context) withProgram(program uint32, f func()) {
	var current int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &current)
	if uint32(current) != program {
		gl.UseProgram(program)
		defer gl.UseProgram(uint32(current))
	}
	f()
}

// logBuffer sizes a log buffer to the driver's log, capped at bufSize.
func logBuffer(logLen int32, bufSize int) []byte {
	n := int(logLen)
	if n > bufSize {
		n = bufSize
	}
	if n <= 1 {
		return nil
	}
	return make([]byte, n)
}

func trimLog(buf []byte) string {
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}
