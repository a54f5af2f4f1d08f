package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/upload/model"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/logger"
)

// Presigner issues direct-to-storage upload URLs.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, size int64, expires time.Duration) (string, error)
}

type Config struct {
	PublicBaseURL  string
	Expiry         time.Duration
	MaxUploadBytes int64
}

type Service interface {
	Presign(ctx context.Context, req model.PresignRequest) (*model.PresignResponse, error)
}

type uploadService struct {
	presigner Presigner
	cfg       Config
	newID     func() uuid.UUID
}

func NewUploadService(presigner Presigner, cfg Config) Service {
	if cfg.Expiry <= 0 {
		cfg.Expiry = 5 * time.Minute
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &uploadService{presigner: presigner, cfg: cfg, newID: utils.NewID}
}

func (s *uploadService) Presign(ctx context.Context, req model.PresignRequest) (*model.PresignResponse, error) {
	req.Normalize()
	if err := req.Validate(s.cfg.MaxUploadBytes); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	key := ObjectKey(req, s.newID())

	url, err := s.presigner.PresignPut(ctx, key, req.MimeType, req.Size, s.cfg.Expiry)
	if err != nil {
		return nil, model.NewPresignFailed(err)
	}

	logger.Info("upload presigned", map[string]interface{}{
		"object_key": key,
		"type":       req.Type,
		"size":       req.Size,
	})

	return &model.PresignResponse{
		UploadURL: url,
		ObjectKey: key,
		PublicURL: s.cfg.PublicBaseURL + "/" + key,
		ExpiresIn: int(s.cfg.Expiry / time.Second),
	}, nil
}

// ObjectKey places post images under their draft and the about image at the root.
// req must be validated.
func ObjectKey(req model.PresignRequest, id uuid.UUID) string {
	ext, _ := model.Extension(req.MimeType)
	if req.Type == model.TypeAbout {
		return fmt.Sprintf("about/%s.%s", id, ext)
	}
	return fmt.Sprintf("posts/%s/%s/%s.%s", req.DraftUUID, req.Type, id, ext)
}
