package storage

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/config"
)

// Presigner issues time-limited URLs that let a browser PUT an object directly.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, size int64, expires time.Duration) (string, error)
	Ping(ctx context.Context) error
}

// New picks the driver named by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Presigner, error) {
	switch cfg.Driver {
	case "minio", "":
		return NewMinIOStorage(ctx, cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
