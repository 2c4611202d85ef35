package repository

import (
	"errors"

	"github.com/lib/pq"

	"github.com/SHOMANS/tourer-backend/internal/database"
)

type Repositories struct {
	Users    *UserRepository
	Packages *PackageRepository
	Bookings *BookingRepository
	Reviews  *ReviewRepository
	Carousel *CarouselRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Packages: NewPackageRepository(db),
		Bookings: NewBookingRepository(db),
		Reviews:  NewReviewRepository(db),
		Carousel: NewCarouselRepository(db),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique-key conflict.
// Services translate these to the Conflict error instead of leaking
// driver error codes to callers.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
