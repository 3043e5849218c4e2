package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imgopt/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesIndentedJSON(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	path := filepath.Join(t.TempDir(), "manifest.json")

	m := domain.NewManifest("/work", []domain.OptimizationResult{
		{Source: "in/a.jpg", Paths: []string{"out/a.jpg"}},
		{Source: "in/bad.jpg", Paths: []string{}},
	})
	require.NoError(t, repo.Save(ctx, path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	raw := string(data)
	assert.True(t, strings.HasPrefix(raw, "{\n  \"version\": \"1.0\""), raw)
	assert.Contains(t, raw, `"in/bad.jpg": []`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "/work", decoded["generated_at"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	path := filepath.Join(t.TempDir(), "manifest.json")

	first := domain.NewManifest("/a", []domain.OptimizationResult{{Source: "x.jpg", Paths: []string{"x.jpg"}}})
	second := domain.NewManifest("/b", []domain.OptimizationResult{{Source: "y.jpg", Paths: []string{"y.jpg"}}})
	require.NoError(t, repo.Save(ctx, path, first))
	require.NoError(t, repo.Save(ctx, path, second))

	loaded, err := repo.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "/b", loaded.GeneratedAt)
	assert.NotContains(t, loaded.OptimizedImages, "x.jpg")
	assert.Equal(t, []string{"y.jpg"}, loaded.OptimizedImages["y.jpg"])
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	dir := t.TempDir()

	_, err := repo.Load(ctx, filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrManifestNotFound)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = repo.Load(ctx, bad)
	assert.ErrorIs(t, err, ErrManifestInvalid)
}
