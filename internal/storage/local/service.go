package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/soldout/backend/internal/storage"
)

// Service stores assets on the local filesystem under a root directory and
// references them by their public URL path.
type Service struct {
	root       string
	publicPath string
	logger     storage.Logger
}

// NewService creates the upload directory if needed.
func NewService(cfg *storage.Config, logger storage.Logger) (*Service, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}
	publicPath := cfg.PublicPath
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &Service{
		root:       cfg.UploadDir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		logger:     logger,
	}, nil
}

func (s *Service) Save(ctx context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	target, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %v", err)
	}

	file, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %v", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write file: %v", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to close file: %v", err)
	}

	return path.Join(s.publicPath, filepath.ToSlash(key)), nil
}

func (s *Service) Delete(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, s.publicPath+"/") {
		return fmt.Errorf("reference %q is not managed by this store", ref)
	}
	target, err := s.resolve(strings.TrimPrefix(ref, s.publicPath+"/"))
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %v", err)
	}
	return nil
}

// Root is the directory served at the public path.
func (s *Service) Root() string { return s.root }

// PublicPath is the URL prefix of every reference.
func (s *Service) PublicPath() string { return s.publicPath }

func (s *Service) Close() error { return nil }

func (s *Service) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
