package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/storage"
)

// UploadHandler hands out presigned upload URLs for ID documents
type UploadHandler struct {
	presigner storage.Presigner
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(presigner storage.Presigner) *UploadHandler {
	return &UploadHandler{presigner: presigner}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads/presign", h.PresignUpload)
}

// PresignUploadRequest defines the request body for a presigned upload
type PresignUploadRequest struct {
	FileName    string `json:"file_name" validate:"required,max=200"`
	ContentType string `json:"content_type" validate:"required"`
}

// PresignUpload returns a time-limited upload URL and the stable public URL
// the client should submit back once the upload completes. Only images are
// accepted; the file itself never passes through this server.
func (h *UploadHandler) PresignUpload(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req PresignUploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only image uploads are allowed")
	}

	upload, err := h.presigner.PresignUpload(claims.UserID, req.FileName, req.ContentType)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"upload": upload})
}
