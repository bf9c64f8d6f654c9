package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/soldout/backend/internal/storage"
)

// Service stores assets in an S3 compatible bucket
type Service struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    storage.Logger
}

// NewService creates a new S3 service instance and makes sure the bucket exists
func NewService(ctx context.Context, cfg *storage.S3Config, logger storage.Logger) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %v", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %v", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %v", cfg.Bucket, err)
		}
		logger.LogInfo("Created storage bucket", map[string]interface{}{"bucket": cfg.Bucket})
	}

	return &Service{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: objectBaseURL(cfg),
		logger:    logger,
	}, nil
}

// Save uploads the stream to the bucket
func (s *Service) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return s.publicURL + "/" + key, nil
}

// Delete removes the object behind ref
func (s *Service) Delete(ctx context.Context, ref string) error {
	key, ok := keyFromRef(s.publicURL, ref)
	if !ok {
		return fmt.Errorf("reference %q is not managed by this store", ref)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file from S3: %v", err)
	}
	return nil
}

// Close closes any open S3 connections and resources
func (s *Service) Close() error {
	return nil
}

func objectBaseURL(cfg *storage.S3Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimSuffix(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

func keyFromRef(base, ref string) (string, bool) {
	if !strings.HasPrefix(ref, base+"/") {
		return "", false
	}
	key := strings.TrimPrefix(ref, base+"/")
	return key, key != ""
}
