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

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `b.id, b.user_id, b.package_id, b.start_date, b.end_date, b.guests,
       b.guest_names, b.contact_info, b.notes, b.total_price, b.currency, b.status,
       b.payment_status, b.payment_id, b.created_at, b.updated_at,
       u.id, u.email, u.first_name, u.last_name,
       p.id, p.title, p.location_name, p.duration, p.cover_image`

var bookingSortColumns = map[string]string{
	"createdAt":  "b.created_at",
	"startDate":  "b.start_date",
	"totalPrice": "b.total_price",
}

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	booking := &models.Booking{
		User:    &models.UserSummary{},
		Package: &models.PackageSummary{},
	}
	var contactJSON []byte

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.PackageID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Guests,
		&booking.GuestNames,
		&contactJSON,
		&booking.Notes,
		&booking.TotalPrice,
		&booking.Currency,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.User.ID,
		&booking.User.Email,
		&booking.User.FirstName,
		&booking.User.LastName,
		&booking.Package.ID,
		&booking.Package.Title,
		&booking.Package.LocationName,
		&booking.Package.Duration,
		&booking.Package.CoverImage,
	)
	if err != nil {
		return nil, err
	}

	if len(contactJSON) > 0 {
		booking.ContactInfo = &models.ContactInfo{}
		if err := json.Unmarshal(contactJSON, booking.ContactInfo); err != nil {
			return nil, fmt.Errorf("failed to decode contact info: %w", err)
		}
	}

	return booking, nil
}

func marshalContactInfo(info *models.ContactInfo) (any, error) {
	if info == nil {
		return nil, nil
	}
	return json.Marshal(info)
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	contactJSON, err := marshalContactInfo(booking.ContactInfo)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bookings (user_id, package_id, start_date, end_date, guests, guest_names,
		                      contact_info, notes, total_price, currency, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		booking.UserID,
		booking.PackageID,
		booking.StartDate,
		booking.EndDate,
		booking.Guests,
		pq.Array([]string(booking.GuestNames)),
		contactJSON,
		booking.Notes,
		booking.TotalPrice,
		booking.Currency,
		booking.Status,
		booking.PaymentStatus,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN packages p ON p.id = b.package_id
		WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

func (r *BookingRepository) List(ctx context.Context, q *models.BookingListQuery) ([]models.Booking, int, error) {
	conditions := []string{}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("b.user_id = %s", arg(q.UserID)))
	}
	if q.PackageID != "" {
		conditions = append(conditions, fmt.Sprintf("b.package_id = %s", arg(q.PackageID)))
	}
	if q.Status != "" {
		conditions = append(conditions, fmt.Sprintf("b.status = %s", arg(q.Status)))
	}
	if q.PaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("b.payment_status = %s", arg(q.PaymentStatus)))
	}
	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		conditions = append(conditions, fmt.Sprintf(
			`(u.email ILIKE %[1]s OR u.first_name ILIKE %[1]s OR u.last_name ILIKE %[1]s
			  OR p.title ILIKE %[1]s
			  OR EXISTS (SELECT 1 FROM unnest(b.guest_names) g WHERE g ILIKE %[1]s))`, p))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	from := ` FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN packages p ON p.id = b.package_id`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	sortColumn, ok := bookingSortColumns[q.SortBy]
	if !ok {
		sortColumn = "b.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	offset := (q.Page - 1) * q.Limit
	query := `SELECT ` + bookingColumns + from + where +
		fmt.Sprintf(` ORDER BY %s %s LIMIT %d OFFSET %d`, sortColumn, direction, q.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, total, rows.Err()
}

func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	contactJSON, err := marshalContactInfo(booking.ContactInfo)
	if err != nil {
		return err
	}

	query := `
		UPDATE bookings
		SET start_date = $1, end_date = $2, guests = $3, guest_names = $4, contact_info = $5,
		    notes = $6, total_price = $7, currency = $8, status = $9, payment_status = $10,
		    payment_id = $11, updated_at = NOW()
		WHERE id = $12`

	_, err = r.db.ExecContext(ctx, query,
		booking.StartDate,
		booking.EndDate,
		booking.Guests,
		pq.Array([]string(booking.GuestNames)),
		contactJSON,
		booking.Notes,
		booking.TotalPrice,
		booking.Currency,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentID,
		booking.ID,
	)

	return err
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	return err
}

// FindCompletedForUserPackage returns the user's completed booking for a
// package, if any. Reviews use it to mark verified purchases.
func (r *BookingRepository) FindCompletedForUserPackage(ctx context.Context, userID, packageID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN packages p ON p.id = b.package_id
		WHERE b.user_id = $1 AND b.package_id = $2 AND b.status = $3
		ORDER BY b.created_at DESC
		LIMIT 1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, userID, packageID, models.BookingCompleted))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

// Stats aggregates booking counts per status plus realized revenue
// (confirmed and completed bookings only) in one round trip.
func (r *BookingRepository) Stats(ctx context.Context) (*models.BookingStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'PENDING'),
		       COUNT(*) FILTER (WHERE status = 'CONFIRMED'),
		       COUNT(*) FILTER (WHERE status = 'COMPLETED'),
		       COUNT(*) FILTER (WHERE status = 'CANCELLED'),
		       COALESCE(SUM(total_price) FILTER (WHERE status IN ('CONFIRMED', 'COMPLETED')), 0)
		FROM bookings`

	stats := &models.BookingStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalBookings,
		&stats.PendingBookings,
		&stats.ConfirmedBookings,
		&stats.CompletedBookings,
		&stats.CancelledBookings,
		&stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute booking stats: %w", err)
	}

	return stats, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	return count, err
}
