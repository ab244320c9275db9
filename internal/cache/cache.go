// Package cache is the session-scoped local tier: one JSON file per cache
// key under the state directory, written synchronously.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avinashkumarr/studiobook/internal/draft"
)

// FileCache stores draft envelopes as files named draft-<key>.json.
type FileCache struct {
	dir string
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, "draft-"+key+".json")
}

// Load reads the envelope for key, or draft.ErrNoEnvelope when absent.
func (c *FileCache) Load(_ context.Context, key string) (*draft.Envelope, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, draft.ErrNoEnvelope
		}
		return nil, fmt.Errorf("reading cached draft: %w", err)
	}
	return draft.DecodeEnvelope(data)
}

// Save writes the envelope atomically via a rename.
func (c *FileCache) Save(_ context.Context, key string, env *draft.Envelope) error {
	data, err := env.Encode()
	if err != nil {
		return err
	}
	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cached draft: %w", err)
	}
	if err := os.Rename(tmp, c.path(key)); err != nil {
		return fmt.Errorf("replacing cached draft: %w", err)
	}
	return nil
}

// Clear removes the envelope for key. Missing files are not an error.
func (c *FileCache) Clear(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing cached draft: %w", err)
	}
	return nil
}
