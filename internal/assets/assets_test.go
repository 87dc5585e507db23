package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrefersLastRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fragment.glsl"), []byte("override"), 0644))

	m := NewManager()
	m.AddFS("embedded", fstest.MapFS{
		"vertex.glsl":   {Data: []byte("embedded vertex")},
		"fragment.glsl": {Data: []byte("embedded fragment")},
	})
	require.NoError(t, m.AddDir(dir))

	src, err := m.ReadSource("fragment.glsl")
	require.NoError(t, err)
	assert.Equal(t, "override", src)

	src, err = m.ReadSource("vertex.glsl")
	require.NoError(t, err)
	assert.Equal(t, "embedded vertex", src, "lower roots still serve files the top root lacks")
}

func TestLoadMissing(t *testing.T) {
	m := NewManager()
	m.AddFS("embedded", fstest.MapFS{})

	_, err := m.ReadSource("nope.frag")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = m.ReadSource("../outside.frag")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestLoadCachesAndInvalidates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "basic.frag")
	require.NoError(t, os.WriteFile(file, []byte("v1"), 0644))

	m := NewManager()
	require.NoError(t, m.AddDir(dir))

	for i := 0; i < 2; i++ {
		src, err := m.ReadSource("basic.frag")
		require.NoError(t, err)
		assert.Equal(t, "v1", src)
	}
	hits, misses := m.Cache().Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	require.NoError(t, os.WriteFile(file, []byte("v2"), 0644))
	src, _ := m.ReadSource("basic.frag")
	assert.Equal(t, "v1", src, "cached until invalidated")

	m.Invalidate("./basic.frag")
	src, err := m.ReadSource("basic.frag")
	require.NoError(t, err)
	assert.Equal(t, "v2", src)
}

func TestAddDirErrors(t *testing.T) {
	m := NewManager()
	assert.Error(t, m.AddDir(filepath.Join(t.TempDir(), "missing")))

	file := filepath.Join(t.TempDir(), "file.glsl")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, m.AddDir(file))
}

func TestDirs(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()

	m := NewManager()
	require.NoError(t, m.AddDir(a))
	m.AddFS("embedded", fstest.MapFS{})
	require.NoError(t, m.AddDir(b))

	assert.Equal(t, []string{b, a}, m.Dirs())

	m.Close()
	assert.Empty(t, m.Dirs())
}
