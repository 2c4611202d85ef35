package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/cache"
	"github.com/SHOMANS/tourer-backend/internal/models"
	"github.com/SHOMANS/tourer-backend/internal/repository"
)

const defaultCurrency = "USD"

// PackageStore is the persistence surface the package service needs
type PackageStore interface {
	Create(ctx context.Context, pkg *models.Package) error
	GetByID(ctx context.Context, id string) (*models.Package, error)
	GetBySlug(ctx context.Context, slug string) (*models.Package, error)
	List(ctx context.Context, q *models.PackageListQuery, idFilter []string) ([]models.Package, int, error)
	Update(ctx context.Context, pkg *models.Package) error
	SoftDelete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Popular(ctx context.Context, limit int) ([]models.Package, error)
	RecalculateRating(ctx context.Context, packageID string) error
}

// Searcher resolves free-text queries against the package search index.
// A nil Searcher disables the index and falls back to SQL matching.
type Searcher interface {
	IndexPackage(ctx context.Context, pkg *models.Package) error
	DeletePackage(ctx context.Context, id string) error
	SearchIDs(ctx context.Context, query string, max int) ([]string, error)
}

type PackageService struct {
	store    PackageStore
	searcher Searcher
	cache    *cache.Client
}

func NewPackageService(store PackageStore, searcher Searcher, cacheClient *cache.Client) *PackageService {
	return &PackageService{store: store, searcher: searcher, cache: cacheClient}
}

// GenerateSlug turns a title into a URL-safe slug: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, no leading or trailing
// hyphen.
func GenerateSlug(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func (s *PackageService) Create(ctx context.Context, req *models.CreatePackageRequest) (*models.Package, error) {
	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: title produces an empty slug", apperrors.ErrBadRequest)
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	pkg := &models.Package{
		Title:            req.Title,
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		Currency:         currency,
		Duration:         req.Duration,
		MaxGuests:        req.MaxGuests,
		MinAge:           req.MinAge,
		Difficulty:       req.Difficulty,
		Category:         req.Category,
		LocationName:     req.LocationName,
		Country:          req.Country,
		Coordinates:      req.Coordinates,
		Images:           req.Images,
		CoverImage:       req.CoverImage,
		Highlights:       req.Highlights,
		Includes:         req.Includes,
		Excludes:         req.Excludes,
		Itinerary:        req.Itinerary,
		IsActive:         true,
		IsAvailable:      true,
		AvailableFrom:    req.AvailableFrom,
		AvailableTo:      req.AvailableTo,
		Tags:             req.Tags,
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	if req.IsAvailable != nil {
		pkg.IsAvailable = *req.IsAvailable
	}

	if err := s.store.Create(ctx, pkg); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q already in use", apperrors.ErrConflict, slug)
		}
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	s.indexPackage(ctx, pkg)
	s.cache.InvalidatePackages(ctx)

	return pkg, nil
}

func (s *PackageService) GetByID(ctx context.Context, id string) (*models.Package, error) {
	pkg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: package %s", apperrors.ErrNotFound, id)
	}
	return pkg, nil
}

func (s *PackageService) GetBySlug(ctx context.Context, slug string) (*models.Package, error) {
	pkg, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil || !pkg.IsActive {
		return nil, fmt.Errorf("%w: package %s", apperrors.ErrNotFound, slug)
	}
	return pkg, nil
}

// List returns one page of the public catalog. Free-text search goes
// through the search index when one is configured; index failures fall
// back to SQL matching so the catalog stays available.
func (s *PackageService) List(ctx context.Context, q *models.PackageListQuery) (*models.PackageListResponse, error) {
	var idFilter []string

	if q.Search != "" && s.searcher != nil {
		ids, err := s.searcher.SearchIDs(ctx, q.Search, 1000)
		if err != nil {
			slog.Warn("search index query failed, falling back to SQL", "error", err)
		} else {
			idFilter = ids
			if idFilter == nil {
				idFilter = []string{}
			}
		}
	}

	packages, total, err := s.store.List(ctx, q, idFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	if packages == nil {
		packages = []models.Package{}
	}

	return &models.PackageListResponse{
		Data:       packages,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (s *PackageService) Update(ctx context.Context, id string, req *models.UpdatePackageRequest) (*models.Package, error) {
	pkg, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		pkg.Title = *req.Title
	}
	if req.Slug != nil {
		if *req.Slug == "" {
			return nil, fmt.Errorf("%w: slug cannot be empty", apperrors.ErrBadRequest)
		}
		pkg.Slug = *req.Slug
	}
	if req.Description != nil {
		pkg.Description = req.Description
	}
	if req.ShortDescription != nil {
		pkg.ShortDescription = req.ShortDescription
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrBadRequest)
		}
		pkg.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		pkg.OriginalPrice = req.OriginalPrice
	}
	if req.Currency != nil {
		pkg.Currency = *req.Currency
	}
	if req.Duration != nil {
		if *req.Duration < 1 {
			return nil, fmt.Errorf("%w: duration must be at least one day", apperrors.ErrBadRequest)
		}
		pkg.Duration = *req.Duration
	}
	if req.MaxGuests != nil {
		pkg.MaxGuests = req.MaxGuests
	}
	if req.MinAge != nil {
		pkg.MinAge = req.MinAge
	}
	if req.Difficulty != nil {
		pkg.Difficulty = req.Difficulty
	}
	if req.Category != nil {
		pkg.Category = req.Category
	}
	if req.LocationName != nil {
		pkg.LocationName = *req.LocationName
	}
	if req.Country != nil {
		pkg.Country = req.Country
	}
	if req.Coordinates != nil {
		pkg.Coordinates = req.Coordinates
	}
	if req.Images != nil {
		pkg.Images = req.Images
	}
	if req.CoverImage != nil {
		pkg.CoverImage = req.CoverImage
	}
	if req.Highlights != nil {
		pkg.Highlights = req.Highlights
	}
	if req.Includes != nil {
		pkg.Includes = req.Includes
	}
	if req.Excludes != nil {
		pkg.Excludes = req.Excludes
	}
	if req.Itinerary != nil {
		pkg.Itinerary = req.Itinerary
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	if req.IsAvailable != nil {
		pkg.IsAvailable = *req.IsAvailable
	}
	if req.AvailableFrom != nil {
		pkg.AvailableFrom = req.AvailableFrom
	}
	if req.AvailableTo != nil {
		pkg.AvailableTo = req.AvailableTo
	}
	if req.Tags != nil {
		pkg.Tags = req.Tags
	}

	if err := s.store.Update(ctx, pkg); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q already in use", apperrors.ErrConflict, pkg.Slug)
		}
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	s.indexPackage(ctx, pkg)
	s.cache.InvalidatePackages(ctx)

	return pkg, nil
}

// Delete deactivates a package. The row is kept so existing bookings and
// reviews stay intact.
func (s *PackageService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.store.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	if s.searcher != nil {
		if err := s.searcher.DeletePackage(ctx, id); err != nil {
			slog.Warn("failed to remove package from search index", "package_id", id, "error", err)
		}
	}
	s.cache.InvalidatePackages(ctx)

	return nil
}

func (s *PackageService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// Popular returns the highest-rated available packages, read through the
// cache when one is configured.
func (s *PackageService) Popular(ctx context.Context, limit int) ([]models.Package, error) {
	if limit < 1 || limit > 50 {
		limit = 6
	}

	if raw, err := s.cache.GetPopularPackagesRaw(ctx, limit); err == nil {
		var packages []models.Package
		if err := json.Unmarshal(raw, &packages); err == nil {
			return packages, nil
		}
	} else if !cache.IsMiss(err) {
		slog.Warn("popular packages cache read failed", "error", err)
	}

	packages, err := s.store.Popular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular packages: %w", err)
	}
	if packages == nil {
		packages = []models.Package{}
	}

	s.cache.SetPopularPackages(ctx, limit, packages)

	return packages, nil
}

// RecalculateRating rewrites the cached rating aggregates for a package
func (s *PackageService) RecalculateRating(ctx context.Context, packageID string) error {
	if err := s.store.RecalculateRating(ctx, packageID); err != nil {
		return fmt.Errorf("failed to recalculate rating: %w", err)
	}
	s.cache.InvalidatePackages(ctx)
	return nil
}

func (s *PackageService) indexPackage(ctx context.Context, pkg *models.Package) {
	if s.searcher == nil {
		return
	}
	if err := s.searcher.IndexPackage(ctx, pkg); err != nil {
		slog.Warn("failed to index package", "package_id", pkg.ID, "error", err)
	}
}
