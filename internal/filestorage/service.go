// File: internal/filestorage/service.go
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// imageSubDir is where listing photos live under the storage root.
const imageSubDir = "rooms"

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Service stores and deletes listing images on local disk.
type Service struct {
	storagePath string
	logger      *zap.Logger
}

// NewService creates the image storage service and ensures the storage root
// exists.
func NewService(storagePath string, logger *zap.Logger) (*Service, error) {
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Join(storagePath, imageSubDir), os.ModePerm); err != nil {
		logger.Error("Failed to create image storage directory", zap.String("path", storagePath), zap.Error(err))
		return nil, fmt.Errorf("failed to create storage path %s: %w", storagePath, err)
	}
	logger.Info("Image storage initialized", zap.String("storagePath", storagePath))
	return &Service{storagePath: storagePath, logger: logger}, nil
}

// SaveImage stores an uploaded listing photo under a generated name and
// returns its path relative to the storage root, e.g. "rooms/<uuid>.jpg".
func (s *Service) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}

	extension, err := imageExtension(fileHeader)
	if err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	filename := uuid.New().String() + extension
	destination := filepath.Join(s.storagePath, imageSubDir, filename)

	dst, err := os.Create(destination)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.String("path", destination), zap.Error(err))
		return "", fmt.Errorf("failed to create file %s: %w", destination, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		s.logger.Error("Failed to write uploaded file", zap.String("path", destination), zap.Error(err))
		os.Remove(destination)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("Image saved", zap.String("path", destination))
	return filepath.ToSlash(filepath.Join(imageSubDir, filename)), nil
}

// DeleteImage removes a stored image by its relative path. Deleting a file
// that is already gone is not an error.
func (s *Service) DeleteImage(relativePath string) error {
	if relativePath == "" {
		return fmt.Errorf("relative path cannot be empty")
	}

	cleaned := filepath.Clean(relativePath)
	if strings.Contains(cleaned, "..") || filepath.IsAbs(cleaned) {
		s.logger.Warn("Rejected image deletion outside storage root", zap.String("relativePath", relativePath))
		return fmt.Errorf("invalid file path for deletion")
	}

	fullPath := filepath.Join(s.storagePath, cleaned)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		s.logger.Warn("Attempt to delete non-existent image", zap.String("path", fullPath))
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		s.logger.Error("Failed to delete image", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	s.logger.Info("Image deleted", zap.String("path", fullPath))
	return nil
}

// imageExtension resolves the file extension from the filename, falling back
// to the declared content type, and rejects anything that is not an image.
func imageExtension(fileHeader *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(filepath.Base(fileHeader.Filename)))
	if extension == "" {
		contentType := fileHeader.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "image/jpeg"):
			extension = ".jpg"
		case strings.HasPrefix(contentType, "image/png"):
			extension = ".png"
		case strings.HasPrefix(contentType, "image/gif"):
			extension = ".gif"
		case strings.HasPrefix(contentType, "image/webp"):
			extension = ".webp"
		}
	}
	if !allowedImageExtensions[extension] {
		return "", fmt.Errorf("unsupported image type: %q", fileHeader.Filename)
	}
	return extension, nil
}
