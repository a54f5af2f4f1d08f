package storage

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
)

// MinIOStorage presigns uploads against a MinIO (or any S3 compatible) endpoint.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage creates the client and makes sure the bucket exists.
func NewMinIOStorage(ctx context.Context, cfg config.StorageConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created storage bucket")
	}

	return &MinIOStorage{client: client, bucket: cfg.Bucket}, nil
}

// PresignPut signs a PUT for key. Content-Type and Content-Length are part of
// the signature, so the browser must send exactly what was requested.
func (s *MinIOStorage) PresignPut(ctx context.Context, key, contentType string, size int64, expires time.Duration) (string, error) {
	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	if size > 0 {
		headers.Set("Content-Length", strconv.FormatInt(size, 10))
	}

	u, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, expires, nil, headers)
	if err != nil {
		return "", fmt.Errorf("minio presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *MinIOStorage) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio bucket check: %w", err)
	}
	return nil
}
