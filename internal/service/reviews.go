package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

// ReviewStore is the persistence surface the review service needs
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	FindByUserAndPackage(ctx context.Context, userID, packageID string) (*models.Review, error)
	ListApproved(ctx context.Context, packageID string, q *models.ReviewListQuery) ([]models.Review, int, error)
	ListAll(ctx context.Context, q *models.AdminReviewListQuery) ([]models.Review, int, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// RatingStore recomputes package rating aggregates after review changes
type RatingStore interface {
	GetByID(ctx context.Context, id string) (*models.Package, error)
	RecalculateRating(ctx context.Context, packageID string) error
}

// CompletedBookingFinder locates a completed booking backing a review
type CompletedBookingFinder interface {
	FindCompletedForUserPackage(ctx context.Context, userID, packageID string) (*models.Booking, error)
}

type ReviewService struct {
	store    ReviewStore
	packages RatingStore
	bookings CompletedBookingFinder
	events   Publisher
}

func NewReviewService(store ReviewStore, packages RatingStore, bookings CompletedBookingFinder, events Publisher) *ReviewService {
	return &ReviewService{store: store, packages: packages, bookings: bookings, events: events}
}

// Create adds a review for a package. A user reviews a package at most
// once; reviews backed by a completed booking are marked verified. The
// package rating aggregates are recomputed in the same call.
func (s *ReviewService) Create(ctx context.Context, userID, packageID string, req *models.CreateReviewRequest) (*models.Review, error) {
	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil || !pkg.IsActive {
		return nil, fmt.Errorf("%w: package %s", apperrors.ErrNotFound, packageID)
	}

	existing, err := s.store.FindByUserAndPackage(ctx, userID, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: you have already reviewed this package", apperrors.ErrBadRequest)
	}

	review := &models.Review{
		UserID:     userID,
		PackageID:  packageID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		Images:     req.Images,
		IsApproved: true,
	}

	booking, err := s.bookings.FindCompletedForUserPackage(ctx, userID, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking history: %w", err)
	}
	if booking != nil {
		review.IsVerified = true
		review.BookingID = &booking.ID
	}

	if err := s.store.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.packages.RecalculateRating(ctx, packageID); err != nil {
		return nil, fmt.Errorf("failed to recalculate package rating: %w", err)
	}

	s.publish(models.EventReviewCreated, review)

	return review, nil
}

// ListForPackage returns one page of approved reviews for a package
func (s *ReviewService) ListForPackage(ctx context.Context, packageID string, q *models.ReviewListQuery) (*models.ReviewListResponse, error) {
	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: package %s", apperrors.ErrNotFound, packageID)
	}

	reviews, total, err := s.store.ListApproved(ctx, packageID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	return &models.ReviewListResponse{
		Reviews:    reviews,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// ListAll returns one page of reviews across packages for moderation
func (s *ReviewService) ListAll(ctx context.Context, q *models.AdminReviewListQuery) (*models.ReviewListResponse, error) {
	reviews, total, err := s.store.ListAll(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	return &models.ReviewListResponse{
		Reviews:    reviews,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Approve marks a review visible and recomputes the package aggregates
func (s *ReviewService) Approve(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("%w: review %s", apperrors.ErrNotFound, id)
	}

	if !review.IsApproved {
		if err := s.store.Approve(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to approve review: %w", err)
		}
		review.IsApproved = true

		if err := s.packages.RecalculateRating(ctx, review.PackageID); err != nil {
			return nil, fmt.Errorf("failed to recalculate package rating: %w", err)
		}
	}

	return review, nil
}

// Delete removes a review. Users delete their own reviews; admins delete
// any. Package aggregates are recomputed afterwards.
func (s *ReviewService) Delete(ctx context.Context, actorID string, isAdmin bool, id string) error {
	review, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return fmt.Errorf("%w: review %s", apperrors.ErrNotFound, id)
	}
	if !isAdmin && review.UserID != actorID {
		return fmt.Errorf("%w: review belongs to another user", apperrors.ErrForbidden)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if err := s.packages.RecalculateRating(ctx, review.PackageID); err != nil {
		return fmt.Errorf("failed to recalculate package rating: %w", err)
	}

	s.publish(models.EventReviewDeleted, review)

	return nil
}

func (s *ReviewService) publish(subject string, review *models.Review) {
	if s.events == nil {
		return
	}
	event := models.ReviewEvent{
		ReviewID:  review.ID,
		PackageID: review.PackageID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: time.Now().UTC(),
	}
	if err := s.events.Publish(subject, event); err != nil {
		slog.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
