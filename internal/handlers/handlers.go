package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/config"
	"github.com/SHOMANS/tourer-backend/internal/service"
)

type Handlers struct {
	services *service.Services
	upload   config.UploadConfig
}

func New(services *service.Services, upload config.UploadConfig) *Handlers {
	return &Handlers{services: services, upload: upload}
}

// respondError maps the service error taxonomy to HTTP statuses.
// Unrecognized errors become opaque 500s; the details go to the log only.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
