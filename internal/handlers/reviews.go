package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHOMANS/tourer-backend/internal/middleware"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

// ListPackageReviews handles GET /api/packages/:id/reviews
func (h *Handlers) ListPackageReviews(c *gin.Context) {
	var q models.ReviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	resp, err := h.services.Reviews.ListForPackage(c.Request.Context(), c.Param("id"), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateReview handles POST /api/packages/:id/reviews
func (h *Handlers) CreateReview(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.services.Reviews.Create(c.Request.Context(), id.UserID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (h *Handlers) DeleteReview(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.services.Reviews.Delete(c.Request.Context(), id.UserID, id.IsAdmin(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// ListAllReviews handles GET /api/reviews (admin)
func (h *Handlers) ListAllReviews(c *gin.Context) {
	var q models.AdminReviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	resp, err := h.services.Reviews.ListAll(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ApproveReview handles POST /api/reviews/:id/approve (admin)
func (h *Handlers) ApproveReview(c *gin.Context) {
	review, err := h.services.Reviews.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
