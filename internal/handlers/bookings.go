package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHOMANS/tourer-backend/internal/middleware"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

// CreateBooking handles POST /api/bookings
func (h *Handlers) CreateBooking(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.services.Bookings.Create(c.Request.Context(), id.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListBookings handles GET /api/bookings. Regular users always get their
// own bookings; admins can filter freely.
func (h *Handlers) ListBookings(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var q models.BookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	resp, err := h.services.Bookings.List(c.Request.Context(), id.UserID, id.IsAdmin(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBooking handles GET /api/bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	booking, err := h.services.Bookings.Get(c.Request.Context(), id.UserID, id.IsAdmin(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBooking handles PATCH /api/bookings/:id
func (h *Handlers) UpdateBooking(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.services.Bookings.Update(c.Request.Context(), id.UserID, id.IsAdmin(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking handles POST /api/bookings/:id/cancel
func (h *Handlers) CancelBooking(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	booking, err := h.services.Bookings.Cancel(c.Request.Context(), id.UserID, id.IsAdmin(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// MyBookings handles GET /api/bookings/my-bookings. Always scoped to the
// caller, even for admins.
func (h *Handlers) MyBookings(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var q models.BookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	resp, err := h.services.Bookings.List(c.Request.Context(), id.UserID, false, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmBooking handles POST /api/bookings/:id/confirm (admin)
func (h *Handlers) ConfirmBooking(c *gin.Context) {
	booking, err := h.services.Bookings.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CompleteBooking handles POST /api/bookings/:id/complete (admin)
func (h *Handlers) CompleteBooking(c *gin.Context) {
	booking, err := h.services.Bookings.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdatePaymentStatus handles PATCH /api/bookings/:id/payment (admin)
func (h *Handlers) UpdatePaymentStatus(c *gin.Context) {
	var req models.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.services.Bookings.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/bookings/:id (owner or admin)
func (h *Handlers) DeleteBooking(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.services.Bookings.Delete(c.Request.Context(), id.UserID, id.IsAdmin(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// BookingStats handles GET /api/bookings/stats (admin)
func (h *Handlers) BookingStats(c *gin.Context) {
	stats, err := h.services.Bookings.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
