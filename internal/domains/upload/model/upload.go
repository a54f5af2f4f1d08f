package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/shared/utils"
)

// Upload types.
const (
	TypeThumbnail = "thumbnail"
	TypeContent   = "content"
	TypeAbout     = "about"
)

// extensions maps accepted MIME types to the stored file extension.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
	"image/avif": "avif",
}

// Extension returns the file extension for an accepted MIME type.
func Extension(mimeType string) (string, bool) {
	ext, ok := extensions[mimeType]
	return ext, ok
}

type PresignRequest struct {
	Filename  string `json:"filename"`
	MimeType  string `json:"mimeType"`
	Size      int64  `json:"size"`
	DraftUUID string `json:"draftUuid"`
	Type      string `json:"type"`
}

type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	PublicURL string `json:"publicUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

func (r *PresignRequest) Normalize() {
	r.Filename = strings.TrimSpace(r.Filename)
	r.MimeType = strings.ToLower(strings.TrimSpace(r.MimeType))
	r.DraftUUID = strings.TrimSpace(r.DraftUUID)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
}

// Validate checks the request against the upload limit maxBytes.
// draftUuid is required for post images and optional for the about image.
func (r PresignRequest) Validate(maxBytes int64) error {
	mimeTypes := make([]interface{}, 0, len(extensions))
	for m := range extensions {
		mimeTypes = append(mimeTypes, m)
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Filename, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&r.MimeType, validation.Required, validation.In(mimeTypes...).Error("unsupported image type")),
		validation.Field(&r.Size, validation.By(sizeRule(maxBytes))),
		validation.Field(&r.Type, validation.Required, validation.In(TypeThumbnail, TypeContent, TypeAbout)),
		validation.Field(&r.DraftUUID,
			validation.When(r.Type != TypeAbout, validation.Required),
			validation.By(uuidV7Rule),
		),
	)
}

func sizeRule(maxBytes int64) validation.RuleFunc {
	return func(value interface{}) error {
		n, _ := value.(int64)
		if n < 1 || n > maxBytes {
			return fmt.Errorf("size must be between 1 and %d bytes", maxBytes)
		}
		return nil
	}
}

func uuidV7Rule(value interface{}) error {
	s, _ := value.(string)
	if s == "" || utils.IsUUIDv7(s) {
		return nil
	}
	return errors.New("must be a UUID version 7")
}

func (r PresignRequest) Values() map[string]any {
	return map[string]any{
		"filename":  r.Filename,
		"mimeType":  r.MimeType,
		"size":      r.Size,
		"draftUuid": r.DraftUUID,
		"type":      r.Type,
	}
}

type UploadError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// NewPresignFailed wraps a storage failure.
func NewPresignFailed(err error) *UploadError {
	return &UploadError{
		Code:    "UPLOAD_PRESIGN_FAILED",
		Message: "업로드 URL을 생성하지 못했습니다",
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}
