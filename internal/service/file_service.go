package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/domain"
	"github.com/reproute/crm-api/internal/storage"
	"go.uber.org/zap"
)

// FileService handles visit attachment uploads. Files are stored under
// a per-rep prefix; the resulting path is referenced from the visit's
// attachments column at creation time.
type FileService struct {
	storage storage.Storage
	logger  *zap.Logger
}

func NewFileService(storage storage.Storage, logger *zap.Logger) *FileService {
	return &FileService{
		storage: storage,
		logger:  logger,
	}
}

// Upload stores an attachment and returns the storage path to reference
// in a subsequent visit creation.
func (s *FileService) Upload(ctx context.Context, filename, contentType string, data io.Reader) (*domain.FileUploadResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	storagePath, size, err := s.storage.Upload(ctx, userCtx.UserID.String(), filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.Info("attachment uploaded",
		zap.String("user_id", userCtx.UserID.String()),
		zap.String("path", storagePath),
		zap.Int64("size", size),
	)

	return &domain.FileUploadResponse{
		Path:        storagePath,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Download streams an attachment previously uploaded by the
// authenticated rep. Paths outside the rep's prefix behave as missing.
// The path is checked in canonical form: anything that cleans
// differently than it was given (dot-dot segments, doubled slashes)
// could escape the prefix after the storage backend resolves it, so
// such paths are treated as missing too.
func (s *FileService) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	prefix := userCtx.UserID.String() + "/"
	if path.Clean(storagePath) != storagePath || !strings.HasPrefix(storagePath, prefix) {
		return nil, ErrNotFound
	}

	reader, err := s.storage.Download(ctx, storagePath)
	if err != nil {
		return nil, ErrNotFound
	}
	return reader, nil
}
