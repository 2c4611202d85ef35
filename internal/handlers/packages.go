package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SHOMANS/tourer-backend/internal/models"
)

// ListPackages handles GET /api/packages
func (h *Handlers) ListPackages(c *gin.Context) {
	var q models.PackageListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	resp, err := h.services.Packages.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPackage handles GET /api/packages/:id
func (h *Handlers) GetPackage(c *gin.Context) {
	pkg, err := h.services.Packages.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// GetPackageBySlug handles GET /api/packages/slug/:slug
func (h *Handlers) GetPackageBySlug(c *gin.Context) {
	pkg, err := h.services.Packages.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// ListCategories handles GET /api/packages/categories
func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := h.services.Packages.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListPopularPackages handles GET /api/packages/popular
func (h *Handlers) ListPopularPackages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	packages, err := h.services.Packages.Popular(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": packages})
}

// CreatePackage handles POST /api/packages (admin)
func (h *Handlers) CreatePackage(c *gin.Context) {
	var req models.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pkg, err := h.services.Packages.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// UpdatePackage handles PATCH /api/packages/:id (admin)
func (h *Handlers) UpdatePackage(c *gin.Context) {
	var req models.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pkg, err := h.services.Packages.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// DeletePackage handles DELETE /api/packages/:id (admin)
func (h *Handlers) DeletePackage(c *gin.Context) {
	if err := h.services.Packages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted"})
}
