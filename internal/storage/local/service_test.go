package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soldout/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) LogInfo(string, map[string]interface{}) {}
func (nopLogger) LogError(err error, _ string) error     { return err }

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewService(&storage.Config{UploadDir: dir, PublicPath: "/uploads/"}, nopLogger{})
	require.NoError(t, err)
	return svc, dir
}

func TestSaveAndDelete(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	ref, err := svc.Save(ctx, "thumbnails/a.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/thumbnails/a.png", ref)

	data, err := os.ReadFile(filepath.Join(dir, "thumbnails", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, svc.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, "thumbnails", "a.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, svc.Delete(ctx, ref))
}

func TestRejectsTraversal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)

	assert.Error(t, svc.Delete(ctx, "/uploads/../../etc/passwd"))
	assert.Error(t, svc.Delete(ctx, "https://elsewhere/a.png"))
}

func TestSaveDoesNotOverwrite(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "videos/a.mp4", strings.NewReader("one"), 3, "video/mp4")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "videos/a.mp4", strings.NewReader("two"), 3, "video/mp4")
	assert.Error(t, err)
}
