package repository

import (
	"context"
	"database/sql"

	"github.com/SHOMANS/tourer-backend/internal/database"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

type CarouselRepository struct {
	db *database.DB
}

func NewCarouselRepository(db *database.DB) *CarouselRepository {
	return &CarouselRepository{db: db}
}

const carouselColumns = `id, title, description, image_url, action_type, action_value,
       is_active, sort_order, created_at, updated_at`

func scanCarouselItem(row interface{ Scan(...any) error }) (*models.CarouselItem, error) {
	item := &models.CarouselItem{}
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.ImageURL,
		&item.ActionType,
		&item.ActionValue,
		&item.IsActive,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *CarouselRepository) Create(ctx context.Context, item *models.CarouselItem) error {
	query := `
		INSERT INTO carousel_items (title, description, image_url, action_type, action_value, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		item.Title,
		item.Description,
		item.ImageURL,
		item.ActionType,
		item.ActionValue,
		item.IsActive,
		item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *CarouselRepository) GetByID(ctx context.Context, id string) (*models.CarouselItem, error) {
	query := `SELECT ` + carouselColumns + ` FROM carousel_items WHERE id = $1`

	item, err := scanCarouselItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return item, err
}

// ListActive returns the public carousel in display order
func (r *CarouselRepository) ListActive(ctx context.Context) ([]models.CarouselItem, error) {
	query := `SELECT ` + carouselColumns + `
		FROM carousel_items
		WHERE is_active = TRUE
		ORDER BY sort_order ASC, created_at DESC`

	return r.list(ctx, query)
}

// ListAll returns every carousel item for administration
func (r *CarouselRepository) ListAll(ctx context.Context) ([]models.CarouselItem, error) {
	query := `SELECT ` + carouselColumns + `
		FROM carousel_items
		ORDER BY sort_order ASC, created_at DESC`

	return r.list(ctx, query)
}

func (r *CarouselRepository) list(ctx context.Context, query string) ([]models.CarouselItem, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CarouselItem
	for rows.Next() {
		item, err := scanCarouselItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

func (r *CarouselRepository) Update(ctx context.Context, item *models.CarouselItem) error {
	query := `
		UPDATE carousel_items
		SET title = $1, description = $2, image_url = $3, action_type = $4, action_value = $5,
		    is_active = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8`

	_, err := r.db.ExecContext(ctx, query,
		item.Title,
		item.Description,
		item.ImageURL,
		item.ActionType,
		item.ActionValue,
		item.IsActive,
		item.SortOrder,
		item.ID,
	)

	return err
}

func (r *CarouselRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carousel_items WHERE id = $1`, id)
	return err
}
