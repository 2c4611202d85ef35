package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHOMANS/tourer-backend/internal/models"
)

// ListCarousel handles GET /api/carousel
func (h *Handlers) ListCarousel(c *gin.Context) {
	items, err := h.services.Carousel.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// ListAllCarousel handles GET /api/carousel/admin (admin)
func (h *Handlers) ListAllCarousel(c *gin.Context) {
	items, err := h.services.Carousel.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// CreateCarouselItem handles POST /api/carousel (admin)
func (h *Handlers) CreateCarouselItem(c *gin.Context) {
	var req models.CreateCarouselItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.services.Carousel.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateCarouselItem handles PATCH /api/carousel/:id (admin)
func (h *Handlers) UpdateCarouselItem(c *gin.Context) {
	var req models.UpdateCarouselItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.services.Carousel.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteCarouselItem handles DELETE /api/carousel/:id (admin)
func (h *Handlers) DeleteCarouselItem(c *gin.Context) {
	if err := h.services.Carousel.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Carousel item deleted"})
}
