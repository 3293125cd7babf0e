// Package minio is the S3-compatible media store.
package minio

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/desichan/desichan/backend/internal/service"
	"github.com/desichan/desichan/backend/internal/storage"
	"github.com/desichan/desichan/shared/config"
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/logger"
)

// readOnlyPolicy lets anonymous clients GET objects, which is how media URLs are served.
const readOnlyPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`

type Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

var _ service.MediaStore = (*Storage)(nil)

// New connects and makes sure the bucket exists and is publicly readable.
func New(ctx context.Context, cfg config.Minio) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		if err := client.SetBucketPolicy(ctx, cfg.Bucket, fmt.Sprintf(readOnlyPolicy, cfg.Bucket)); err != nil {
			return nil, fmt.Errorf("failed to set bucket policy: %w", err)
		}
		logger.Log.Info("created media bucket", "bucket", cfg.Bucket)
	}

	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}

	return &Storage{client: client, bucket: cfg.Bucket, baseURL: base + "/" + cfg.Bucket}, nil
}

func (s *Storage) Store(ctx context.Context, upload *domain.Upload) (*domain.Media, error) {
	name := storage.ObjectName(upload)
	size := upload.SizeBytes
	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, upload.Data, size, minio.PutObjectOptions{ContentType: upload.MimeType})
	if err != nil {
		return nil, fmt.Errorf("failed to put object %s: %w", name, err)
	}
	return &domain.Media{URL: s.objectURL(name), Kind: upload.Kind}, nil
}

func (s *Storage) Delete(ctx context.Context, url string) error {
	name, ok := s.objectName(url)
	if !ok {
		return fmt.Errorf("media url %q is not in bucket %s", url, s.bucket)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", name, err)
	}
	return nil
}

// Ping backs the readiness probe.
func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

func (s *Storage) objectURL(name string) string {
	return s.baseURL + "/" + name
}

func (s *Storage) objectName(url string) (string, bool) {
	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" || strings.Contains(name, "..") {
		return "", false
	}
	return name, true
}
