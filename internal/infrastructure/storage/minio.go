package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/stackit/qna-api/internal/core/ports"
)

// Config captures the settings for the S3-compatible media host.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base URL for objects. When empty,
	// URLs are derived from the endpoint.
	PublicURL string
}

// ImageStore stores uploaded images in a MinIO/S3 bucket and serves them by
// public URL. It satisfies ports.ImageStore.
type ImageStore struct {
	client *minio.Client
	cfg    Config
}

// NewImageStore connects to the media host and ensures the bucket exists.
func NewImageStore(ctx context.Context, cfg Config) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &ImageStore{client: client, cfg: cfg}, nil
}

// Upload stores the raw image bytes under folder/<uuid> and returns the
// public location.
func (s *ImageStore) Upload(ctx context.Context, data []byte, contentType, folder string) (*ports.StoredImage, error) {
	if folder == "" {
		folder = "stackit"
	}
	key := fmt.Sprintf("%s/%s", folder, uuid.NewString())

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	info, err := s.client.PutObject(uploadCtx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("minio upload: %w", err)
	}

	return &ports.StoredImage{
		URL:  s.publicURL(key),
		Key:  key,
		Size: info.Size,
	}, nil
}

// Delete removes a previously uploaded image by its key.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete: %w", err)
	}
	return nil
}

func (s *ImageStore) publicURL(key string) string {
	if s.cfg.PublicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.PublicURL, s.cfg.Bucket, key)
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key)
}
