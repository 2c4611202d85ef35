package service

import (
	"context"
	"fmt"

	"github.com/SHOMANS/tourer-backend/internal/models"
	"github.com/SHOMANS/tourer-backend/internal/repository"
)

// AdminService serves the admin dashboard and user administration
type AdminService struct {
	repos *repository.Repositories
}

func NewAdminService(repos *repository.Repositories) *AdminService {
	return &AdminService{repos: repos}
}

// Dashboard aggregates entity counts and booking stats in one response
func (s *AdminService) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	users, err := s.repos.Users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	packages, err := s.repos.Packages.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count packages: %w", err)
	}
	bookings, err := s.repos.Bookings.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	reviews, err := s.repos.Reviews.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	stats, err := s.repos.Bookings.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute booking stats: %w", err)
	}

	return &models.DashboardResponse{
		TotalUsers:    users,
		TotalPackages: packages,
		TotalBookings: bookings,
		TotalReviews:  reviews,
		BookingStats:  *stats,
	}, nil
}

// ListUsers returns one page of accounts, optionally filtered by a
// name/email search
func (s *AdminService) ListUsers(ctx context.Context, q *models.UserListQuery) (*models.UserListResponse, error) {
	users, total, err := s.repos.Users.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}

	return &models.UserListResponse{
		Data:       users,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}, nil
}
