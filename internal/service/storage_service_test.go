package service

import (
	"context"
	"edunity_backend/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageServiceContentURL(t *testing.T) {
	s := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()}})
	ctx := context.Background()

	url, err := s.ContentURL(ctx, "videos/intro.mp4")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/videos/intro.mp4", url)

	url, err = s.ContentURL(ctx, "https://cdn.example.com/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.mp4", url)

	url, err = s.ContentURL(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestLocalStorageLocalCopy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "videos"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "videos", "a.mp4"), []byte("x"), 0644))

	s := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: dir}})

	path, cleanup, err := s.LocalCopy(context.Background(), "videos/a.mp4")
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, filepath.Join(dir, "videos", "a.mp4"), path)

	_, _, err = s.LocalCopy(context.Background(), "videos/missing.mp4")
	assert.Error(t, err)
}
