package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// UploadHandler accepts recipe and avatar images
type UploadHandler struct {
	imageService service.IImageService
	validator    middleware.TokenValidator
}

// NewUploadHandler creates a new UploadHandler instance
func NewUploadHandler(images service.IImageService, validator middleware.TokenValidator) *UploadHandler {
	return &UploadHandler{imageService: images, validator: validator}
}

// RegisterRoutes registers the upload routes on router
func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	uploads := router.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware(h.validator))
	uploads.POST("/images", h.UploadImage)
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		fail(c, types.NewValidationError("An image file is required"))
		return
	}
	if header.Size > service.MaxImageSize {
		fail(c, types.NewValidationError("Image exceeds the 5MB limit"))
		return
	}
	f, err := header.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	// One byte past the limit is enough for the service to reject it.
	data, err := io.ReadAll(io.LimitReader(f, service.MaxImageSize+1))
	if err != nil {
		fail(c, err)
		return
	}
	url, err := h.imageService.UploadImage(c.Request.Context(), data)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Image uploaded", gin.H{"url": url})
}
