package services

import (
	"context"
	"fmt"
	"mime"
	"strings"

	market_errors "live-market/pkg/errors"

	"github.com/google/uuid"
)

const MaxImageSize int64 = 10 << 20

const (
	UploadKindProduct = "product"
	UploadKindAvatar  = "avatar"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UploadService struct {
	presigner Presigner
}

// NewUploadService accepts a nil presigner; every call then fails with ErrServiceUnavailable.
func NewUploadService(presigner Presigner) *UploadService {
	return &UploadService{presigner: presigner}
}

type PresignImageInput struct {
	Kind        string
	ContentType string
	Size        int64
}

type PresignResult struct {
	UploadURL string
	Headers   map[string]string
	Key       string
	PublicURL string
}

func (s *UploadService) PresignImageUpload(ctx context.Context, userID uint64, in PresignImageInput) (PresignResult, error) {
	if s.presigner == nil {
		return PresignResult{}, market_errors.ErrServiceUnavailable
	}
	if in.Kind != UploadKindProduct && in.Kind != UploadKindAvatar {
		return PresignResult{}, fmt.Errorf("kind must be %q or %q: %w", UploadKindProduct, UploadKindAvatar, market_errors.ErrInvalidInput)
	}

	mediaType, _, err := mime.ParseMediaType(in.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return PresignResult{}, fmt.Errorf("content type must be an image: %w", market_errors.ErrInvalidInput)
	}
	if in.Size <= 0 {
		return PresignResult{}, fmt.Errorf("size is required: %w", market_errors.ErrInvalidInput)
	}
	if in.Size > MaxImageSize {
		return PresignResult{}, market_errors.ErrTooLarge
	}

	key := fmt.Sprintf("%ss/%d/%s%s", in.Kind, userID, uuid.NewString(), imageExtensions[mediaType])
	url, headers, err := s.presigner.PresignPut(ctx, key, mediaType, in.Size)
	if err != nil {
		return PresignResult{}, fmt.Errorf("presign upload: %w", err)
	}

	return PresignResult{
		UploadURL: url,
		Headers:   headers,
		Key:       key,
		PublicURL: s.presigner.PublicURL(key),
	}, nil
}
