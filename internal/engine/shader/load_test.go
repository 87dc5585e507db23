package shader_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/learngl/internal/engine/glfake"
	"github.com/Faultbox/learngl/internal/engine/shader"
)

func dirSource(dir string) shader.SourceFunc {
	return func(name string) (string, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		return string(data), err
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "basic.vert"), passThroughVertex)
	writeFile(t, filepath.Join(dir, "basic.frag"), colorFragment)

	ctx := glfake.New()
	prog, err := shader.Load(ctx, dirSource(dir), "basic.vert", "basic.frag")
	require.NoError(t, err)
	defer prog.Destroy()

	assert.True(t, prog.Linked())
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "basic.vert"), passThroughVertex)

	ctx := glfake.New()
	_, err := shader.Load(ctx, dirSource(dir), "basic.vert", "missing.frag")

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.frag")
	assert.Equal(t, shader.CodeOther, shader.ErrorCode(err))
	assert.Zero(t, ctx.Calls("CreateShader"), "nothing is compiled until both sources are read")
}

func TestStageFromName(t *testing.T) {
	tests := []struct {
		name  string
		stage shader.Stage
		ok    bool
	}{
		{"basic.vert", shader.Vertex, true},
		{"shaders/quad.vs", shader.Vertex, true},
		{"sprite.vert.glsl", shader.Vertex, true},
		{"vertex.glsl", shader.Vertex, true},
		{`C:\shaders\Water.FRAG`, shader.Fragment, true},
		{"quad.fs", shader.Fragment, true},
		{"fragment.glsl", shader.Fragment, true},
		{"common.glsl", 0, false},
		{"readme.md", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, ok := shader.StageFromName(tt.name)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.stage, stage)
			}
		})
	}
}

func TestReloaderMarkStale(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "basic.vert")
	frag := filepath.Join(dir, "basic.frag")
	writeFile(t, vert, passThroughVertex)
	writeFile(t, frag, colorFragment)

	ctx := glfake.New()
	r, err := shader.NewReloader(ctx, dirSource(dir), "basic.vert", "basic.frag")
	require.NoError(t, err)

	reloaded, err := r.Poll()
	require.NoError(t, err)
	assert.False(t, reloaded, "nothing changed yet")

	first := r.Program()
	writeFile(t, frag, brokenFragment)
	r.MarkStale()

	reloaded, err = r.Poll()
	assert.False(t, reloaded)
	var compileErr *shader.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, shader.Fragment, compileErr.Stage)
	assert.Same(t, first, r.Program(), "a failed rebuild keeps the previous program")
	assert.True(t, first.Linked())

	writeFile(t, frag, tintFragment)
	r.MarkStale()
	reloaded, err = r.Poll()
	require.NoError(t, err)
	assert.True(t, reloaded)
	assert.NotSame(t, first, r.Program())
	assert.False(t, first.Linked())
	assert.Equal(t, 1, ctx.LivePrograms())

	require.NoError(t, r.Close())
	assert.Zero(t, ctx.Live())
	assert.Empty(t, ctx.Faults())
}

func TestReloaderWatchesFiles(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "basic.frag")
	writeFile(t, filepath.Join(dir, "basic.vert"), passThroughVertex)
	writeFile(t, frag, colorFragment)

	ctx := glfake.New()
	r, err := shader.NewReloader(ctx, dirSource(dir), "basic.vert", "basic.frag", dir)
	require.NoError(t, err)
	defer r.Close()

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")
	writeFile(t, frag, tintFragment)
	require.Eventually(t, r.Pending, 5*time.Second, 10*time.Millisecond)

	reloaded, err := r.Poll()
	require.NoError(t, err)
	assert.True(t, reloaded)
	assert.Contains(t, ctx.ActiveUniforms(r.Program().Handle()), "tint")
}

func TestNewReloaderInitialFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "basic.vert"), brokenVertex)
	writeFile(t, filepath.Join(dir, "basic.frag"), colorFragment)

	ctx := glfake.New()
	_, err := shader.NewReloader(ctx, dirSource(dir), "basic.vert", "basic.frag", dir)

	assert.Equal(t, shader.CodeVertexCompile, shader.ErrorCode(err))
	assert.Zero(t, ctx.Live())
}
