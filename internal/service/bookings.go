package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

// BookingStore is the persistence surface the booking service needs
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, q *models.BookingListQuery) ([]models.Booking, int, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.BookingStats, error)
}

// PackageGetter resolves packages referenced by bookings
type PackageGetter interface {
	GetByID(ctx context.Context, id string) (*models.Package, error)
}

type BookingService struct {
	store    BookingStore
	packages PackageGetter
	events   Publisher
}

func NewBookingService(store BookingStore, packages PackageGetter, events Publisher) *BookingService {
	return &BookingService{store: store, packages: packages, events: events}
}

// bookingTransitions is the allowed status state machine. CANCELLED and
// COMPLETED are terminal.
var bookingTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

func canTransition(from, to string) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

var paymentStatuses = map[string]bool{
	models.PaymentPending:  true,
	models.PaymentPaid:     true,
	models.PaymentFailed:   true,
	models.PaymentRefunded: true,
}

// Create books a package for a user. Total price and end date are derived
// from the package when the request omits them; the booking starts PENDING
// with payment PENDING.
func (s *BookingService) Create(ctx context.Context, userID string, req *models.CreateBookingRequest) (*models.Booking, error) {
	pkg, err := s.packages.GetByID(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil || !pkg.IsActive {
		return nil, fmt.Errorf("%w: package %s", apperrors.ErrNotFound, req.PackageID)
	}
	if !pkg.IsAvailable {
		return nil, fmt.Errorf("%w: package is not available for booking", apperrors.ErrBadRequest)
	}
	if pkg.MaxGuests != nil && req.Guests > *pkg.MaxGuests {
		return nil, fmt.Errorf("%w: package allows at most %d guests", apperrors.ErrBadRequest, *pkg.MaxGuests)
	}
	if len(req.GuestNames) != req.Guests {
		return nil, fmt.Errorf("%w: expected %d guest names, got %d", apperrors.ErrBadRequest, req.Guests, len(req.GuestNames))
	}

	endDate := req.EndDate
	if endDate == nil {
		derived := req.StartDate.AddDate(0, 0, pkg.Duration-1)
		endDate = &derived
	}

	currency := pkg.Currency
	if req.Currency != nil && *req.Currency != "" {
		currency = *req.Currency
	}

	totalPrice := pkg.Price * float64(req.Guests)
	if req.TotalPrice != nil {
		totalPrice = *req.TotalPrice
	}

	booking := &models.Booking{
		UserID:        userID,
		PackageID:     req.PackageID,
		StartDate:     req.StartDate,
		EndDate:       endDate,
		Guests:        req.Guests,
		GuestNames:    req.GuestNames,
		ContactInfo:   req.ContactInfo,
		Notes:         req.Notes,
		TotalPrice:    totalPrice,
		Currency:      currency,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
	}

	if err := s.store.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publish(models.EventBookingCreated, models.BookingEvent{
		BookingID: booking.ID,
		PackageID: booking.PackageID,
		UserID:    booking.UserID,
		Status:    booking.Status,
		Timestamp: time.Now().UTC(),
	})

	// refetch to fill the joined user/package summaries
	created, err := s.store.GetByID(ctx, booking.ID)
	if err != nil || created == nil {
		return booking, nil
	}
	return created, nil
}

// Get returns a booking. Regular users see only their own bookings.
func (s *BookingService) Get(ctx context.Context, actorID string, isAdmin bool, id string) (*models.Booking, error) {
	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, id)
	}
	if !isAdmin && booking.UserID != actorID {
		return nil, fmt.Errorf("%w: booking belongs to another user", apperrors.ErrForbidden)
	}
	return booking, nil
}

// List returns one page of bookings. Regular users are always scoped to
// their own bookings regardless of the query.
func (s *BookingService) List(ctx context.Context, actorID string, isAdmin bool, q *models.BookingListQuery) (*models.BookingListResponse, error) {
	if !isAdmin {
		q.UserID = actorID
	}

	bookings, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	return &models.BookingListResponse{
		Data:       bookings,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Update patches a booking. Non-admin callers may only cancel their own
// booking; every other field is admin-only. Status changes follow the
// lifecycle state machine.
func (s *BookingService) Update(ctx context.Context, actorID string, isAdmin bool, id string, req *models.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.Get(ctx, actorID, isAdmin, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		otherFields := req.StartDate != nil || req.EndDate != nil || req.Guests != nil ||
			req.GuestNames != nil || req.ContactInfo != nil || req.Notes != nil ||
			req.TotalPrice != nil || req.Currency != nil ||
			req.PaymentStatus != nil || req.PaymentID != nil
		if otherFields {
			return nil, fmt.Errorf("%w: only cancellation is allowed", apperrors.ErrForbidden)
		}
		if req.Status != nil && *req.Status != models.BookingCancelled {
			return nil, fmt.Errorf("%w: only cancellation is allowed", apperrors.ErrForbidden)
		}
	}

	if req.StartDate != nil {
		booking.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		booking.EndDate = req.EndDate
	}
	if req.Guests != nil {
		booking.Guests = *req.Guests
	}
	if req.GuestNames != nil {
		booking.GuestNames = req.GuestNames
	}
	if req.ContactInfo != nil {
		booking.ContactInfo = req.ContactInfo
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}
	if req.TotalPrice != nil {
		booking.TotalPrice = *req.TotalPrice
	}
	if req.Currency != nil {
		booking.Currency = *req.Currency
	}
	if req.PaymentStatus != nil {
		if !paymentStatuses[*req.PaymentStatus] {
			return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrBadRequest, *req.PaymentStatus)
		}
		booking.PaymentStatus = *req.PaymentStatus
	}
	if req.PaymentID != nil {
		booking.PaymentID = req.PaymentID
	}

	// validate the merged state, not just the patch
	if booking.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", apperrors.ErrBadRequest)
	}
	if len(booking.GuestNames) != booking.Guests {
		return nil, fmt.Errorf("%w: expected %d guest names, got %d", apperrors.ErrBadRequest, booking.Guests, len(booking.GuestNames))
	}

	statusChanged := false
	if req.Status != nil && *req.Status != booking.Status {
		if !canTransition(booking.Status, *req.Status) {
			return nil, fmt.Errorf("%w: cannot change status from %s to %s", apperrors.ErrBadRequest, booking.Status, *req.Status)
		}
		booking.Status = *req.Status
		statusChanged = true
	}

	if err := s.store.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if statusChanged {
		s.publishStatusEvent(booking)
	}
	if req.PaymentStatus != nil {
		paymentID := ""
		if booking.PaymentID != nil {
			paymentID = *booking.PaymentID
		}
		s.publish(models.EventPaymentUpdated, models.PaymentEvent{
			BookingID:     booking.ID,
			PaymentStatus: booking.PaymentStatus,
			PaymentID:     paymentID,
			Timestamp:     time.Now().UTC(),
		})
	}

	return booking, nil
}

// Cancel moves a booking to CANCELLED through the state machine
func (s *BookingService) Cancel(ctx context.Context, actorID string, isAdmin bool, id string) (*models.Booking, error) {
	cancelled := models.BookingCancelled
	return s.Update(ctx, actorID, isAdmin, id, &models.UpdateBookingRequest{Status: &cancelled})
}

// Confirm moves a PENDING booking to CONFIRMED
func (s *BookingService) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	confirmed := models.BookingConfirmed
	return s.Update(ctx, "", true, id, &models.UpdateBookingRequest{Status: &confirmed})
}

// Complete moves a CONFIRMED booking to COMPLETED
func (s *BookingService) Complete(ctx context.Context, id string) (*models.Booking, error) {
	completed := models.BookingCompleted
	return s.Update(ctx, "", true, id, &models.UpdateBookingRequest{Status: &completed})
}

// UpdatePaymentStatus records a payment outcome on a booking
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, id string, req *models.UpdatePaymentStatusRequest) (*models.Booking, error) {
	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, id)
	}
	if !paymentStatuses[req.PaymentStatus] {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrBadRequest, req.PaymentStatus)
	}

	booking.PaymentStatus = req.PaymentStatus
	if req.PaymentID != nil {
		booking.PaymentID = req.PaymentID
	}

	if err := s.store.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	paymentID := ""
	if booking.PaymentID != nil {
		paymentID = *booking.PaymentID
	}
	s.publish(models.EventPaymentUpdated, models.PaymentEvent{
		BookingID:     booking.ID,
		PaymentStatus: booking.PaymentStatus,
		PaymentID:     paymentID,
		Timestamp:     time.Now().UTC(),
	})

	return booking, nil
}

// Delete removes a booking record. Owners delete their own bookings,
// admins delete any. Only PENDING and CANCELLED bookings can be deleted;
// confirmed or completed ones are part of the revenue history.
func (s *BookingService) Delete(ctx context.Context, actorID string, isAdmin bool, id string) error {
	booking, err := s.Get(ctx, actorID, isAdmin, id)
	if err != nil {
		return err
	}
	if booking.Status == models.BookingConfirmed || booking.Status == models.BookingCompleted {
		return fmt.Errorf("%w: cannot delete a %s booking", apperrors.ErrBadRequest, booking.Status)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// Stats returns the aggregate booking counters and revenue
func (s *BookingService) Stats(ctx context.Context) (*models.BookingStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute booking stats: %w", err)
	}
	return stats, nil
}

func (s *BookingService) publishStatusEvent(booking *models.Booking) {
	var subject string
	switch booking.Status {
	case models.BookingConfirmed:
		subject = models.EventBookingConfirmed
	case models.BookingCompleted:
		subject = models.EventBookingCompleted
	case models.BookingCancelled:
		subject = models.EventBookingCancelled
	default:
		return
	}

	s.publish(subject, models.BookingEvent{
		BookingID: booking.ID,
		PackageID: booking.PackageID,
		UserID:    booking.UserID,
		Status:    booking.Status,
		Timestamp: time.Now().UTC(),
	})
}

func (s *BookingService) publish(subject string, event interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, event); err != nil {
		slog.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
