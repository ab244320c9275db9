package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/avinashkumarr/studiobook/internal/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_SaveAndLoad(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	env := &draft.Envelope{PageCursor: 2}
	env.Project.Name = "Kapoor Wedding"
	require.NoError(t, c.Save(ctx, "current", env))

	loaded, err := c.Load(ctx, "current")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.PageCursor)
	assert.Equal(t, "Kapoor Wedding", loaded.Project.Name)
}

func TestFileCache_LoadMissing(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	_, err = c.Load(context.Background(), "current")
	assert.ErrorIs(t, err, draft.ErrNoEnvelope)
}

func TestFileCache_SaveOverwrites(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "current", &draft.Envelope{PageCursor: 1}))
	require.NoError(t, c.Save(ctx, "current", &draft.Envelope{PageCursor: 3}))

	loaded, err := c.Load(ctx, "current")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.PageCursor)
}

func TestFileCache_ClearIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "current", &draft.Envelope{PageCursor: 1}))
	require.NoError(t, c.Clear(ctx, "current"))
	require.NoError(t, c.Clear(ctx, "current"), "clearing an absent entry is not an error")

	_, err = c.Load(ctx, "current")
	assert.ErrorIs(t, err, draft.ErrNoEnvelope)
}

func TestFileCache_KeysAreIsolated(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "current", &draft.Envelope{PageCursor: 2}))
	_, err = c.Load(ctx, "other")
	assert.ErrorIs(t, err, draft.ErrNoEnvelope)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "draft-current.json", filepath.Base(entries[0].Name()))
}

func TestNewFileCache_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	_, err := NewFileCache(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
