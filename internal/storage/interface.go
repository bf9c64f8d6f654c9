package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists binary assets and hands back a URL-like reference.
type FileStore interface {
	// Save writes size bytes from r under key. size may be -1 when unknown.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes the asset behind a reference returned by Save.
	Delete(ctx context.Context, ref string) error
	Close() error
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}

// NewKey builds a collision free object key under prefix keeping the
// original extension, e.g. "thumbnails/6f1c...e2.png".
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(prefix, uuid.New().String()+ext)
}
