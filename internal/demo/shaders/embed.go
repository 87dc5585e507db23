// Package shaders provides embedded GLSL shader sources.
package shaders

import "embed"

// FS holds every shader in this directory. It is the lowest-priority root
// for file-backed demos.
//
//go:embed *.vert *.frag *.glsl
var FS embed.FS

// PositionVertexShader passes vec3 positions through unchanged.
//
//go:embed position.vert
var PositionVertexShader string

// OrangeFragmentShader fills with a constant orange.
//
//go:embed orange.frag
var OrangeFragmentShader string

// UniformColorFragmentShader fills with the ourColor uniform.
//
//go:embed uniform_color.frag
var UniformColorFragmentShader string
