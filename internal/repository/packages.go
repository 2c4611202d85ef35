package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/SHOMANS/tourer-backend/internal/database"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

type PackageRepository struct {
	db *database.DB
}

func NewPackageRepository(db *database.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

const packageColumns = `id, title, slug, description, short_description, price, original_price,
       currency, duration, max_guests, min_age, difficulty, category, location_name,
       country, coordinates, images, cover_image, highlights, includes, excludes,
       itinerary, is_active, is_available, available_from, available_to, tags,
       rating, review_count, created_at, updated_at`

// Allowed sort columns for the public list endpoint
var packageSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"rating":    "rating",
	"duration":  "duration",
	"title":     "title",
}

func scanPackage(row interface{ Scan(...any) error }) (*models.Package, error) {
	pkg := &models.Package{}
	var itineraryJSON []byte

	err := row.Scan(
		&pkg.ID,
		&pkg.Title,
		&pkg.Slug,
		&pkg.Description,
		&pkg.ShortDescription,
		&pkg.Price,
		&pkg.OriginalPrice,
		&pkg.Currency,
		&pkg.Duration,
		&pkg.MaxGuests,
		&pkg.MinAge,
		&pkg.Difficulty,
		&pkg.Category,
		&pkg.LocationName,
		&pkg.Country,
		&pkg.Coordinates,
		&pkg.Images,
		&pkg.CoverImage,
		&pkg.Highlights,
		&pkg.Includes,
		&pkg.Excludes,
		&itineraryJSON,
		&pkg.IsActive,
		&pkg.IsAvailable,
		&pkg.AvailableFrom,
		&pkg.AvailableTo,
		&pkg.Tags,
		&pkg.Rating,
		&pkg.ReviewCount,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(itineraryJSON) > 0 {
		if err := json.Unmarshal(itineraryJSON, &pkg.Itinerary); err != nil {
			return nil, fmt.Errorf("failed to decode itinerary: %w", err)
		}
	}

	return pkg, nil
}

func marshalItinerary(itinerary []models.ItineraryDay) (any, error) {
	if len(itinerary) == 0 {
		return nil, nil
	}
	return json.Marshal(itinerary)
}

func (r *PackageRepository) Create(ctx context.Context, pkg *models.Package) error {
	itineraryJSON, err := marshalItinerary(pkg.Itinerary)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO packages (title, slug, description, short_description, price, original_price,
		                      currency, duration, max_guests, min_age, difficulty, category,
		                      location_name, country, coordinates, images, cover_image, highlights,
		                      includes, excludes, itinerary, is_active, is_available,
		                      available_from, available_to, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING id, rating, review_count, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		pkg.Title,
		pkg.Slug,
		pkg.Description,
		pkg.ShortDescription,
		pkg.Price,
		pkg.OriginalPrice,
		pkg.Currency,
		pkg.Duration,
		pkg.MaxGuests,
		pkg.MinAge,
		pkg.Difficulty,
		pkg.Category,
		pkg.LocationName,
		pkg.Country,
		pkg.Coordinates,
		pq.Array([]string(pkg.Images)),
		pkg.CoverImage,
		pq.Array([]string(pkg.Highlights)),
		pq.Array([]string(pkg.Includes)),
		pq.Array([]string(pkg.Excludes)),
		itineraryJSON,
		pkg.IsActive,
		pkg.IsAvailable,
		pkg.AvailableFrom,
		pkg.AvailableTo,
		pq.Array([]string(pkg.Tags)),
	).Scan(&pkg.ID, &pkg.Rating, &pkg.ReviewCount, &pkg.CreatedAt, &pkg.UpdatedAt)
}

func (r *PackageRepository) GetByID(ctx context.Context, id string) (*models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return pkg, err
}

func (r *PackageRepository) GetBySlug(ctx context.Context, slug string) (*models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE slug = $1`

	pkg, err := scanPackage(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return pkg, err
}

// List returns one page of active, available packages matching the filters.
// When idFilter is non-nil the result is additionally restricted to those
// ids (used by the search index path); an empty non-nil filter matches
// nothing.
func (r *PackageRepository) List(ctx context.Context, q *models.PackageListQuery, idFilter []string) ([]models.Package, int, error) {
	conditions := []string{"is_active = TRUE", "is_available = TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if idFilter != nil {
		conditions = append(conditions, fmt.Sprintf("id = ANY(%s)", arg(pq.Array(idFilter))))
	} else if q.Search != "" {
		p := arg("%" + q.Search + "%")
		exact := arg(q.Search)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE %[1]s OR description ILIKE %[1]s OR location_name ILIKE %[1]s OR %[2]s = ANY(tags))", p, exact))
	}

	if q.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = %s", arg(q.Category)))
	}
	if q.Difficulty != "" {
		conditions = append(conditions, fmt.Sprintf("difficulty = %s", arg(q.Difficulty)))
	}
	if q.LocationName != "" {
		conditions = append(conditions, fmt.Sprintf("location_name ILIKE %s", arg("%"+q.LocationName+"%")))
	}
	if q.Country != "" {
		conditions = append(conditions, fmt.Sprintf("country ILIKE %s", arg("%"+q.Country+"%")))
	}
	if q.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= %s", arg(*q.MinPrice)))
	}
	if q.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= %s", arg(*q.MaxPrice)))
	}
	if q.MinDuration != nil {
		conditions = append(conditions, fmt.Sprintf("duration >= %s", arg(*q.MinDuration)))
	}
	if q.MaxDuration != nil {
		conditions = append(conditions, fmt.Sprintf("duration <= %s", arg(*q.MaxDuration)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM packages`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count packages: %w", err)
	}

	sortColumn, ok := packageSortColumns[q.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	offset := (q.Page - 1) * q.Limit
	query := `SELECT ` + packageColumns + ` FROM packages` + where +
		fmt.Sprintf(` ORDER BY %s %s LIMIT %d OFFSET %d`, sortColumn, direction, q.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, 0, err
		}
		packages = append(packages, *pkg)
	}

	return packages, total, rows.Err()
}

func (r *PackageRepository) Update(ctx context.Context, pkg *models.Package) error {
	itineraryJSON, err := marshalItinerary(pkg.Itinerary)
	if err != nil {
		return err
	}

	query := `
		UPDATE packages
		SET title = $1, slug = $2, description = $3, short_description = $4, price = $5,
		    original_price = $6, currency = $7, duration = $8, max_guests = $9, min_age = $10,
		    difficulty = $11, category = $12, location_name = $13, country = $14,
		    coordinates = $15, images = $16, cover_image = $17, highlights = $18,
		    includes = $19, excludes = $20, itinerary = $21, is_active = $22,
		    is_available = $23, available_from = $24, available_to = $25, tags = $26,
		    updated_at = NOW()
		WHERE id = $27`

	_, err = r.db.ExecContext(ctx, query,
		pkg.Title,
		pkg.Slug,
		pkg.Description,
		pkg.ShortDescription,
		pkg.Price,
		pkg.OriginalPrice,
		pkg.Currency,
		pkg.Duration,
		pkg.MaxGuests,
		pkg.MinAge,
		pkg.Difficulty,
		pkg.Category,
		pkg.LocationName,
		pkg.Country,
		pkg.Coordinates,
		pq.Array([]string(pkg.Images)),
		pkg.CoverImage,
		pq.Array([]string(pkg.Highlights)),
		pq.Array([]string(pkg.Includes)),
		pq.Array([]string(pkg.Excludes)),
		itineraryJSON,
		pkg.IsActive,
		pkg.IsAvailable,
		pkg.AvailableFrom,
		pkg.AvailableTo,
		pq.Array([]string(pkg.Tags)),
		pkg.ID,
	)

	return err
}

// SoftDelete marks a package inactive; the row stays so bookings and
// reviews keep valid references
func (r *PackageRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE packages SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *PackageRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM packages WHERE is_active = TRUE AND category IS NOT NULL ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *PackageRepository) Popular(ctx context.Context, limit int) ([]models.Package, error) {
	query := `SELECT ` + packageColumns + `
		FROM packages
		WHERE is_active = TRUE AND is_available = TRUE
		ORDER BY rating DESC, review_count DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, *pkg)
	}

	return packages, rows.Err()
}

// RecalculateRating rewrites the cached rating/review_count aggregates from
// the approved review set in a single statement, so concurrent review
// writes cannot leave a stale pair behind.
func (r *PackageRepository) RecalculateRating(ctx context.Context, packageID string) error {
	query := `
		UPDATE packages
		SET rating = COALESCE((SELECT AVG(rating)::double precision FROM reviews
		                       WHERE package_id = $1 AND is_approved = TRUE), 0),
		    review_count = (SELECT COUNT(*) FROM reviews
		                    WHERE package_id = $1 AND is_approved = TRUE),
		    updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, packageID)
	return err
}

// AllIDs returns every package id, for maintenance recalculation
func (r *PackageRepository) AllIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM packages ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *PackageRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM packages`).Scan(&count)
	return count, err
}
