package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/SHOMANS/tourer-backend/internal/config"
	"github.com/SHOMANS/tourer-backend/internal/database"
	"github.com/SHOMANS/tourer-backend/internal/logger"
	"github.com/SHOMANS/tourer-backend/internal/models"
	"github.com/SHOMANS/tourer-backend/internal/repository"
	"github.com/SHOMANS/tourer-backend/internal/service"
)

// Seeds a development database with an admin account, a few packages and
// a carousel. Safe to rerun; existing rows are left alone.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	repos := repository.NewRepositories(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	seedAdmin(ctx, cfg, repos)
	seedPackages(ctx, repos)
	seedCarousel(ctx, repos)

	slog.Info("Seeding finished")
}

func seedAdmin(ctx context.Context, cfg *config.Config, repos *repository.Repositories) {
	email := "admin@tourer.local"

	existing, err := repos.Users.GetByEmail(ctx, email)
	if err != nil {
		logger.Fatal("Failed to check admin account", "error", err)
	}
	if existing != nil {
		slog.Info("Admin account already present", "email", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("Failed to hash admin password", "error", err)
	}

	hashStr := string(hash)
	first := "Admin"
	admin := &models.User{
		Email:        email,
		PasswordHash: &hashStr,
		FirstName:    &first,
		Provider:     models.ProviderLocal,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := repos.Users.Create(ctx, admin); err != nil {
		logger.Fatal("Failed to create admin account", "error", err)
	}
	slog.Info("Created admin account", "email", email)
}

func seedPackages(ctx context.Context, repos *repository.Repositories) {
	samples := []models.Package{
		{
			Title:        "Istanbul City Escape",
			Description:  ptr("Three days across the old town, the bazaars and the Bosphorus."),
			Price:        420,
			Currency:     "USD",
			Duration:     3,
			MaxGuests:    intPtr(12),
			Difficulty:   ptr("EASY"),
			Category:     ptr("city"),
			LocationName: "Istanbul",
			Country:      ptr("Turkey"),
			Highlights:   []string{"Hagia Sophia", "Grand Bazaar", "Bosphorus cruise"},
			Tags:         []string{"city", "culture", "food"},
			IsActive:     true,
			IsAvailable:  true,
			Itinerary: []models.ItineraryDay{
				{Day: 1, Title: "Old town walk"},
				{Day: 2, Title: "Bazaars and food tour"},
				{Day: 3, Title: "Bosphorus cruise"},
			},
		},
		{
			Title:        "Cappadocia Balloon Adventure",
			Description:  ptr("Sunrise balloon flights and valley hikes over four days."),
			Price:        780,
			Currency:     "USD",
			Duration:     4,
			MaxGuests:    intPtr(8),
			Difficulty:   ptr("MODERATE"),
			Category:     ptr("adventure"),
			LocationName: "Cappadocia",
			Country:      ptr("Turkey"),
			Highlights:   []string{"Hot air balloon", "Rose Valley hike", "Underground city"},
			Tags:         []string{"adventure", "hiking", "balloon"},
			IsActive:     true,
			IsAvailable:  true,
		},
		{
			Title:        "Lycian Coast Sailing Week",
			Description:  ptr("Seven days on a gulet along the turquoise coast."),
			Price:        1250,
			Currency:     "USD",
			Duration:     7,
			MaxGuests:    intPtr(10),
			Difficulty:   ptr("EASY"),
			Category:     ptr("beach"),
			LocationName: "Fethiye",
			Country:      ptr("Turkey"),
			Highlights:   []string{"Blue lagoon", "Butterfly Valley", "Sunken ruins"},
			Tags:         []string{"sailing", "beach", "relaxation"},
			IsActive:     true,
			IsAvailable:  true,
		},
	}

	for i := range samples {
		pkg := &samples[i]
		pkg.Slug = service.GenerateSlug(pkg.Title)

		existing, err := repos.Packages.GetBySlug(ctx, pkg.Slug)
		if err != nil {
			logger.Fatal("Failed to check package", "slug", pkg.Slug, "error", err)
		}
		if existing != nil {
			continue
		}

		if err := repos.Packages.Create(ctx, pkg); err != nil {
			logger.Fatal("Failed to create package", "slug", pkg.Slug, "error", err)
		}
		slog.Info("Created package", "slug", pkg.Slug)
	}
}

func seedCarousel(ctx context.Context, repos *repository.Repositories) {
	existing, err := repos.Carousel.ListAll(ctx)
	if err != nil {
		logger.Fatal("Failed to check carousel", "error", err)
	}
	if len(existing) > 0 {
		return
	}

	items := []models.CarouselItem{
		{
			Title:       "Summer Sailing Deals",
			Description: ptr("Save on coastal trips this season"),
			ImageURL:    "/uploads/banner-sailing.jpg",
			ActionType:  models.ActionInternal,
			ActionValue: ptr("/packages/lycian-coast-sailing-week"),
			IsActive:    true,
			SortOrder:   1,
		},
		{
			Title:       "Fly Over Cappadocia",
			ImageURL:    "/uploads/banner-balloon.jpg",
			ActionType:  models.ActionInternal,
			ActionValue: ptr("/packages/cappadocia-balloon-adventure"),
			IsActive:    true,
			SortOrder:   2,
		},
	}

	for i := range items {
		if err := repos.Carousel.Create(ctx, &items[i]); err != nil {
			logger.Fatal("Failed to create carousel item", "error", err)
		}
	}
	slog.Info("Created carousel items", "count", len(items))
}

func ptr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
