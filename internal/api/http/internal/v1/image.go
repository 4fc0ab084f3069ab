package v1

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/internal/service"
	"github.com/silver-jubilee/backend/pkg/logger"
)

func (h *Handler) initImageRoutes(api *gin.RouterGroup) {
	images := api.Group("/admin/images")
	// Listing is intentionally public: the site frontend reads the
	// galleries without any session.
	images.GET("", h.listImages)
	images.POST("/upload", h.adminIdentityMiddleware, h.uploadImage)
	images.DELETE("/:id", h.adminIdentityMiddleware, h.deleteImage)
}

// @Summary List site images
// @Tags Images
// @Produce json
// @Param category query string false "Filter by category" Enums(home_announcement, home_memories, memories_page)
// @Success 200 {array} domain.Image
// @Failure 400 {object} messageResponse
// @Router /admin/images [get]
func (h *Handler) listImages(c *gin.Context) {
	var category *domain.ImageCategory
	if raw := c.Query("category"); raw != "" {
		parsed := domain.ImageCategory(raw)
		if !parsed.IsValid() {
			newErrorResponse(c, http.StatusBadRequest, "Invalid category")
			return
		}
		category = &parsed
	}

	images, err := h.services.Images.List(c.Request.Context(), category)
	if err != nil {
		logger.Error("list images failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, images)
}

type uploadImageRequest struct {
	Category domain.ImageCategory `form:"category" binding:"required,oneof=home_announcement home_memories memories_page"`
}

// @Summary Upload a site image
// @Tags Images
// @Accept mpfd
// @Produce json
// @Param category formData string true "Image category" Enums(home_announcement, home_memories, memories_page)
// @Param image formData file true "Image file"
// @Success 201 {object} domain.Image
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Failure 413 {object} messageResponse
// @Security AdminAuth
// @Router /admin/images/upload [post]
func (h *Handler) uploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.Upload.MaxBytes)

	var req uploadImageRequest
	if err := c.ShouldBind(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			newErrorResponse(c, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		bindingErrorResponse(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Image file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		newErrorResponse(c, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Could not read image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Could not read image file")
		return
	}

	image, err := h.services.Images.Upload(c.Request.Context(), data, contentType, req.Category)
	if err != nil {
		logger.Error("image upload failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Image upload failed")
		return
	}

	c.JSON(http.StatusCreated, image)
}

// @Summary Delete a site image
// @Tags Images
// @Produce json
// @Param id path string true "Image id"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Security AdminAuth
// @Router /admin/images/{id} [delete]
func (h *Handler) deleteImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	if err := h.services.Images.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Image not found")
			return
		}
		logger.Error("image delete failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
