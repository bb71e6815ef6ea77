package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cfgtrack/internal/adapters/fs"
)

func TestHasher_HashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(`{"x":1}`), 0o600))
	require.NoError(t, os.WriteFile(b, []byte(`{"x":1}`), 0o600))

	h := fs.NewHasher()

	hashA, err := h.HashFile(a)
	require.NoError(t, err)
	hashB, err := h.HashFile(b)
	require.NoError(t, err)

	assert.Len(t, hashA, 16)
	assert.Equal(t, hashA, hashB, "equal content hashes equally regardless of path")

	require.NoError(t, os.WriteFile(b, []byte(`{"x":2}`), 0o600))
	hashB2, err := h.HashFile(b)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB2)
}

func TestHasher_HashFile_Missing(t *testing.T) {
	_, err := fs.NewHasher().HashFile(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to open file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHasher_HashValue(t *testing.T) {
	h := fs.NewHasher()

	v1, err := h.HashValue(map[string]any{"b": 2, "a": []any{"x", "y"}})
	require.NoError(t, err)
	v2, err := h.HashValue(map[string]any{"a": []any{"x", "y"}, "b": 2})
	require.NoError(t, err)
	v3, err := h.HashValue(map[string]any{"a": []any{"y", "x"}, "b": 2})
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.NotEqual(t, v1, v3)

	_, err = h.HashValue(func() {})
	assert.Error(t, err)
}
