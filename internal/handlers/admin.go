package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHOMANS/tourer-backend/internal/models"
)

// Dashboard handles GET /api/admin/dashboard (admin)
func (h *Handlers) Dashboard(c *gin.Context) {
	resp, err := h.services.Admin.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListUsers handles GET /api/admin/users (admin)
func (h *Handlers) ListUsers(c *gin.Context) {
	var q models.UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	resp, err := h.services.Admin.ListUsers(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
