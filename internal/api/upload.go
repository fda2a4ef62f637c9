package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/najino/Cooko-application-api/internal/service"
)

// maxUploadSize caps uploaded files at 10MB.
const maxUploadSize = 10 << 20

// allowedMimeTypes lists the accepted image content types.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UploadHandler serves the /upload route.
type UploadHandler struct {
	uploadService service.IUploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService service.IUploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// RegisterRoutes registers the upload routes
func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup, middleware ...gin.HandlerFunc) {
	handlers := append(middleware, h.Upload)
	router.POST("/upload", handlers...)
}

// Upload accepts a multipart image and stores it in the object store.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, "upload file", service.NewBadRequest("No file provided"))
		return
	}

	if fileHeader.Size > maxUploadSize {
		respondError(c, "upload file", service.NewUnprocessable(
			fmt.Sprintf("File exceeds the maximum size of %d bytes", maxUploadSize)))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedMimeTypes[mimeType] {
		respondError(c, "upload file", service.NewUnprocessable(
			fmt.Sprintf("Unsupported file type '%s', only JPEG and PNG images are allowed", mimeType)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "upload file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		respondError(c, "upload file", err)
		return
	}

	uploadType := c.DefaultQuery("type", "category")
	publicURL, err := h.uploadService.UploadFile(c.Request.Context(), &service.FileUpload{
		OriginalName: fileHeader.Filename,
		MimeType:     mimeType,
		Data:         data,
		Type:         uploadType,
	})
	if err != nil {
		respondError(c, "upload file", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "File uploaded successfully",
		"data": gin.H{
			"originalName": fileHeader.Filename,
			"size":         fileHeader.Size,
			"mimetype":     mimeType,
			"publicUrl":    publicURL,
		},
	})
}
