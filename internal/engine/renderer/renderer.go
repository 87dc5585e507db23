// Package renderer provides the OpenGL state and geometry used by the demos.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Renderer owns frame setup and the meshes it uploaded.
type Renderer struct {
	config Config
	meshes map[*Mesh]struct{}
}

// New sets the viewport and clear color.
// IMPORTANT: Must be called AFTER the GL function pointers are loaded!
func New(cfg Config) *Renderer {
	r := &Renderer{
		config: cfg,
		meshes: make(map[*Mesh]struct{}),
	}

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r
}

// Close deletes every mesh that is still alive.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for m := range r.meshes {
		m.Delete()
	}
}

// Resize handles framebuffer size changes.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Mesh is a vertex array holding vec3 positions at attribute location 0.
type Mesh struct {
	vao   uint32
	vbo   uint32
	count int32
	owner *Renderer
}

// NewMesh uploads tightly packed x, y, z positions.
func (r *Renderer) NewMesh(positions []float32) (*Mesh, error) {
	count, err := vertexCount(positions)
	if err != nil {
		return nil, err
	}

	m := &Mesh{count: count, owner: r}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.meshes[m] = struct{}{}
	logger.Debug("mesh created",
		zap.Uint32("vao", m.vao),
		zap.Uint32("vbo", m.vbo),
		zap.Int32("vertices", count),
	)
	return m, nil
}

// Draw draws the mesh as triangles with the currently bound program.
func (m *Mesh) Draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

// Delete releases the mesh. Calling it again does nothing.
func (m *Mesh) Delete() {
	if m.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	m.vao, m.vbo = 0, 0
	delete(m.owner.meshes, m)
}

var errNoVertices = errors.New("mesh has no vertices")

// vertexCount validates a position slice and returns its vertex count.
func vertexCount(positions []float32) (int32, error) {
	if len(positions) == 0 {
		return 0, errNoVertices
	}
	if len(positions)%3 != 0 {
		return 0, fmt.Errorf("mesh has %d floats, not a multiple of 3", len(positions))
	}
	return int32(len(positions) / 3), nil
}
