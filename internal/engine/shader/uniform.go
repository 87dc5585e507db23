package shader

import "fmt"

// Value is a uniform value. Components are passed to the driver as-is.
type Value interface {
	apply(ctx Context, program uint32, location int32)
}

// Float is a float uniform.
type Float float32

// Vec2 is a vec2 uniform.
type Vec2 [2]float32

// Vec3 is a vec3 uniform.
type Vec3 [3]float32

// Vec4 is a vec4 uniform.
type Vec4 [4]float32

// Mat4 is a mat4 uniform in column-major order.
type Mat4 [16]float32

func (v Float) apply(ctx Context, program uint32, loc int32) {
	ctx.Uniform1f(program, loc, float32(v))
}

func (v Vec2) apply(ctx Context, program uint32, loc int32) {
	ctx.Uniform2f(program, loc, v[0], v[1])
}

func (v Vec3) apply(ctx Context, program uint32, loc int32) {
	ctx.Uniform3f(program, loc, v[0], v[1], v[2])
}

func (v Vec4) apply(ctx Context, program uint32, loc int32) {
	ctx.Uniform4f(program, loc, v[0], v[1], v[2], v[3])
}

func (v Mat4) apply(ctx Context, program uint32, loc int32) {
	m := [16]float32(v)
	ctx.UniformMatrix4fv(program, loc, &m)
}

// Location resolves a uniform name, querying the driver only on the first
// lookup of each name. Misses are cached too.
func (p *Program) Location(name string) (int32, bool) {
	if !p.Linked() {
		return -1, false
	}
	loc, ok := p.locations[name]
	if !ok {
		loc = p.ctx.UniformLocation(p.handle, name)
		p.locations[name] = loc
	}
	return loc, loc >= 0
}

// SetUniform assigns v to the named uniform. A name with no active uniform
// in the linked program is silently ignored, since compilers drop unused
// uniforms. A nil v is rejected with ErrNilValue.
func (p *Program) SetUniform(name string, v Value) error {
	if !p.Linked() {
		return ErrDestroyed
	}
	if v == nil {
		return fmt.Errorf("uniform %s: %w", name, ErrNilValue)
	}
	loc, ok := p.Location(name)
	if !ok {
		return nil
	}
	v.apply(p.ctx, p.handle, loc)
	return nil
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) error {
	return p.SetUniform(name, Float(v))
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, x, y float32) error {
	return p.SetUniform(name, Vec2{x, y})
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, x, y, z float32) error {
	return p.SetUniform(name, Vec3{x, y, z})
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, x, y, z, w float32) error {
	return p.SetUniform(name, Vec4{x, y, z, w})
}

// SetMat4 sets a mat4 uniform from column-major values.
func (p *Program) SetMat4(name string, m [16]float32) error {
	return p.SetUniform(name, Mat4(m))
}

// ReadUniform copies the current value of the named uniform into out.
// It returns false when the program has no active uniform by that name.
func (p *Program) ReadUniform(name string, out []float32) (bool, error) {
	if !p.Linked() {
		return false, ErrDestroyed
	}
	loc, ok := p.Location(name)
	if !ok {
		return false, nil
	}
	p.ctx.GetUniformfv(p.handle, loc, out)
	return true, nil
}
