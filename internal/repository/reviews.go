package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/SHOMANS/tourer-backend/internal/database"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

type ReviewRepository struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `r.id, r.user_id, r.package_id, r.booking_id, r.rating, r.title,
       r.comment, r.images, r.is_approved, r.is_verified, r.helpful_votes,
       r.created_at, r.updated_at`

const reviewUserColumns = `u.id, u.first_name, u.last_name, u.photo_url`

func scanReview(row interface{ Scan(...any) error }, withPackage bool) (*models.Review, error) {
	review := &models.Review{User: &models.UserSummary{}}

	dest := []any{
		&review.ID,
		&review.UserID,
		&review.PackageID,
		&review.BookingID,
		&review.Rating,
		&review.Title,
		&review.Comment,
		&review.Images,
		&review.IsApproved,
		&review.IsVerified,
		&review.HelpfulVotes,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.User.ID,
		&review.User.FirstName,
		&review.User.LastName,
		&review.User.PhotoURL,
	}
	if withPackage {
		review.Package = &models.PackageSummary{}
		dest = append(dest, &review.Package.ID, &review.Package.Title, &review.Package.LocationName)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return review, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (user_id, package_id, booking_id, rating, title, comment, images,
		                     is_approved, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, helpful_votes, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		review.UserID,
		review.PackageID,
		review.BookingID,
		review.Rating,
		review.Title,
		review.Comment,
		pq.Array([]string(review.Images)),
		review.IsApproved,
		review.IsVerified,
	).Scan(&review.ID, &review.HelpfulVotes, &review.CreatedAt, &review.UpdatedAt)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + `, ` + reviewUserColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`

	review, err := scanReview(r.db.QueryRowContext(ctx, query, id), false)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return review, err
}

// FindByUserAndPackage returns the user's review for a package, if any.
// Each user reviews a package at most once.
func (r *ReviewRepository) FindByUserAndPackage(ctx context.Context, userID, packageID string) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + `, ` + reviewUserColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1 AND r.package_id = $2`

	review, err := scanReview(r.db.QueryRowContext(ctx, query, userID, packageID), false)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return review, err
}

// ListApproved returns one page of approved reviews for a package,
// newest first.
func (r *ReviewRepository) ListApproved(ctx context.Context, packageID string, q *models.ReviewListQuery) ([]models.Review, int, error) {
	conditions := []string{"r.package_id = $1", "r.is_approved = TRUE"}
	args := []any{packageID}

	if q.Rating != nil {
		args = append(args, *q.Rating)
		conditions = append(conditions, fmt.Sprintf("r.rating = $%d", len(args)))
	}
	if q.Verified != nil {
		args = append(args, *q.Verified)
		conditions = append(conditions, fmt.Sprintf("r.is_verified = $%d", len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews r`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	offset := (q.Page - 1) * q.Limit
	query := `SELECT ` + reviewColumns + `, ` + reviewUserColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id` + where +
		fmt.Sprintf(` ORDER BY r.created_at DESC LIMIT %d OFFSET %d`, q.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		review, err := scanReview(rows, false)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *review)
	}

	return reviews, total, rows.Err()
}

// ListAll returns one page of reviews across all packages for moderation,
// with user and package summaries joined in.
func (r *ReviewRepository) ListAll(ctx context.Context, q *models.AdminReviewListQuery) ([]models.Review, int, error) {
	conditions := []string{}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.IsApproved != nil {
		conditions = append(conditions, fmt.Sprintf("r.is_approved = %s", arg(*q.IsApproved)))
	}
	if q.IsVerified != nil {
		conditions = append(conditions, fmt.Sprintf("r.is_verified = %s", arg(*q.IsVerified)))
	}
	if q.Rating != nil {
		conditions = append(conditions, fmt.Sprintf("r.rating = %s", arg(*q.Rating)))
	}
	if q.PackageID != "" {
		conditions = append(conditions, fmt.Sprintf("r.package_id = %s", arg(q.PackageID)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	from := ` FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN packages p ON p.id = r.package_id`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	offset := (q.Page - 1) * q.Limit
	query := `SELECT ` + reviewColumns + `, ` + reviewUserColumns + `, p.id, p.title, p.location_name` +
		from + where +
		fmt.Sprintf(` ORDER BY r.created_at DESC LIMIT %d OFFSET %d`, q.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		review, err := scanReview(rows, true)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *review)
	}

	return reviews, total, rows.Err()
}

func (r *ReviewRepository) Approve(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET is_approved = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}

func (r *ReviewRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count)
	return count, err
}
