// File: internal/filestorage/handler.go
package filestorage

import (
	"fmt"
	"strings"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes image upload endpoints.
type Handler struct {
	service *Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new upload handler.
func NewHandler(service *Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes sets up the upload routes. Uploads require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	uploadGroup := router.Group("/uploads")
	uploadGroup.Use(authMW)
	{
		uploadGroup.POST("/images", h.uploadImages)
	}
}

// uploadImages accepts a multipart form with one or more files under the
// "images" field and returns their public URLs. The URLs are meant to go
// into a property submission afterwards.
func (h *Handler) uploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Expected a multipart form upload."))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("No files provided under the 'images' field."))
		return
	}
	if len(files) > h.cfg.MaxSubmissionImages {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(
			fmt.Sprintf("Too many images: at most %d are allowed.", h.cfg.MaxSubmissionImages)))
		return
	}

	urls := make([]string, 0, len(files))
	saved := make([]string, 0, len(files))
	for _, fileHeader := range files {
		relativePath, err := h.service.SaveImage(fileHeader)
		if err != nil {
			h.logger.Warn("Image upload failed, rolling back batch",
				zap.String("filename", fileHeader.Filename),
				zap.Error(err),
			)
			// One bad file fails the whole batch; remove anything stored so far.
			for _, p := range saved {
				if derr := h.service.DeleteImage(p); derr != nil {
					h.logger.Warn("Failed to clean up image after failed batch", zap.String("path", p), zap.Error(derr))
				}
			}
			common.RespondWithError(c, common.ErrUploadFailed.WithDetails(err.Error()))
			return
		}
		saved = append(saved, relativePath)
		urls = append(urls, h.publicURL(relativePath))
	}

	common.RespondCreated(c, "Images uploaded successfully.", gin.H{"urls": urls})
}

func (h *Handler) publicURL(relativePath string) string {
	base := strings.TrimSuffix(h.cfg.ImagePublicBaseURL, "/")
	return base + "/" + strings.TrimPrefix(relativePath, "/")
}
