package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/arzan03/newsroom/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload describes a stored object.
type Upload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadService stores article images in object storage.
type UploadService struct {
	store    ObjectStore
	maxBytes int64
	log      *zap.Logger
}

// NewUploadService accepts a nil store, in which case uploads report
// models.ErrStorageUnavailable.
func NewUploadService(store ObjectStore, maxBytes int64, log *zap.Logger) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes, log: log}
}

// UploadImage stores an image of size bytes under a fresh key and returns its URL.
func (s *UploadService) UploadImage(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*Upload, error) {
	if s.store == nil {
		return nil, models.ErrStorageUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, models.NewValidationError("only image uploads are allowed")
	}
	if size <= 0 {
		return nil, models.NewValidationError("file is empty")
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}

	key := "articles/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	url, err := s.store.Put(ctx, key, r, size, contentType)
	if err != nil {
		return nil, err
	}
	s.log.Info("Image uploaded", zap.String("key", key), zap.Int64("size", size))
	return &Upload{Key: key, URL: url}, nil
}
