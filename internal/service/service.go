package service

import (
	"github.com/SHOMANS/tourer-backend/internal/auth"
	"github.com/SHOMANS/tourer-backend/internal/cache"
	"github.com/SHOMANS/tourer-backend/internal/config"
	"github.com/SHOMANS/tourer-backend/internal/repository"
)

// Publisher emits domain events to the streaming bus. Publishing is
// best-effort; services log failures and move on.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

type Services struct {
	Auth     *AuthService
	Packages *PackageService
	Bookings *BookingService
	Reviews  *ReviewService
	Carousel *CarouselService
	Admin    *AdminService
}

type Dependencies struct {
	Repos     *repository.Repositories
	Tokens    *auth.TokenManager
	Cache     *cache.Client
	Searcher  Searcher
	Publisher Publisher
	Config    *config.Config
}

// NewServices wires the service layer. Reviews recompute ratings through
// the package service so cached package lists are invalidated too.
func NewServices(deps Dependencies) *Services {
	packages := NewPackageService(deps.Repos.Packages, deps.Searcher, deps.Cache)

	return &Services{
		Auth:     NewAuthService(deps.Repos.Users, deps.Tokens, deps.Config.Auth.BcryptCost),
		Packages: packages,
		Bookings: NewBookingService(deps.Repos.Bookings, deps.Repos.Packages, deps.Publisher),
		Reviews:  NewReviewService(deps.Repos.Reviews, packages, deps.Repos.Bookings, deps.Publisher),
		Carousel: NewCarouselService(deps.Repos.Carousel, deps.Cache),
		Admin:    NewAdminService(deps.Repos),
	}
}
