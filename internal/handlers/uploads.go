package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadImage handles POST /api/upload/image (admin): a single file under
// the "image" field.
func (h *Handlers) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image field is required"})
		return
	}

	uploaded, err := h.saveUpload(c, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, uploaded)
}

// UploadImages handles POST /api/upload/images (admin): multiple files
// under the "images" field.
func (h *Handlers) UploadImages(c *gin.Context) {
	h.uploadMany(c, "images")
}

// UploadReviewImages handles POST /api/upload/review-images: multiple
// files under the "images" field, open to any authenticated user.
func (h *Handlers) UploadReviewImages(c *gin.Context) {
	h.uploadMany(c, "images")
}

func (h *Handlers) uploadMany(c *gin.Context, field string) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}

	files := form.File[field]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": field + " field is required"})
		return
	}

	uploaded := make([]models.UploadedFile, 0, len(files))
	for _, file := range files {
		out, err := h.saveUpload(c, file)
		if err != nil {
			respondError(c, err)
			return
		}
		uploaded = append(uploaded, *out)
	}

	c.JSON(http.StatusCreated, gin.H{"files": uploaded})
}

// saveUpload validates one file and stores it under a random name so
// uploads cannot clobber each other.
func (h *Handlers) saveUpload(c *gin.Context, file *multipart.FileHeader) (*models.UploadedFile, error) {
	maxBytes := h.upload.MaxSizeMB * 1024 * 1024
	if file.Size > maxBytes {
		return nil, fmt.Errorf("%w: file exceeds the %dMB limit", apperrors.ErrBadRequest, h.upload.MaxSizeMB)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported file type %q", apperrors.ErrBadRequest, ext)
	}

	if err := os.MkdirAll(h.upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.upload.Dir, filename)); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &models.UploadedFile{
		Filename: filename,
		URL:      h.upload.PublicPath + "/" + filename,
		Size:     file.Size,
	}, nil
}
