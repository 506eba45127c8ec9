package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/storage"
)

func TestStore_WriteCreatesDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := storage.New(fs)

	path := filepath.Join("models", "feature", "user_test.go")
	require.NoError(t, store.Write(path, []byte("package models_test\n")))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "package models_test\n", string(data))

	exists, err := store.Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_WriteLeavesNoTemporaryFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := storage.New(fs)
	require.NoError(t, store.Write("out/post_test.go", []byte("x")))

	entries, err := afero.ReadDir(fs, "out")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "post_test.go", entries[0].Name())
}

func TestStore_WriteRefusesExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out/user_test.go", []byte("original"), 0o644))

	err := storage.New(fs).Write("out/user_test.go", []byte("new"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	data, _ := afero.ReadFile(fs, "out/user_test.go")
	assert.Equal(t, "original", string(data))

	entries, _ := afero.ReadDir(fs, "out")
	assert.Len(t, entries, 1)
}

func TestStore_WriteOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := storage.New(fs).Write("out/user_test.go", []byte("x"))
	require.Error(t, err)

	exists, _ := storage.New(fs).Exists("out/user_test.go")
	assert.False(t, exists)
}

func TestStore_ExistsMissing(t *testing.T) {
	exists, err := storage.New(afero.NewMemMapFs()).Exists("nope.go")
	require.NoError(t, err)
	assert.False(t, exists)
}
