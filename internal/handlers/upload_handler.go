package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/media"
)

// UploadHandler handles media uploads
type UploadHandler struct {
	uploader *media.Uploader
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader *media.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterUploadRoutes registers media upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.Upload)
}

// UploadRequest carries a base64 payload, optionally as a data URI
type UploadRequest struct {
	File     string `json:"file" validate:"required"`
	Filename string `json:"filename,omitempty" validate:"omitempty,max=255"`
}

// Upload stores the decoded file in the media bucket and returns its public URL
func (h *UploadHandler) Upload(c echo.Context) error {
	var req UploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	url, err := h.uploader.UploadBase64(c.Request().Context(), req.File, req.Filename)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Upload failed",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
