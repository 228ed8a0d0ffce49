// internal/repository/postgres/booking_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourdesk-service/internal/domain/booking"
	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Bookings are always read joined to their customer and tour for display.
const bookingSelect = `
	SELECT b.id, b.customer_id, b.tour_id, b.number_of_participants,
	       b.total_price, b.amount_paid, b.payment_status, b.booking_date,
	       b.notes, b.created_at, b.updated_at,
	       c.first_name || ' ' || c.last_name AS customer_name,
	       t.name || ' - ' || t.destination AS tour_name
	FROM bookings b
	JOIN customers c ON c.id = b.customer_id
	JOIN tours t ON t.id = b.tour_id`

var bookingSortColumns = map[string]string{
	"booking_date":   "b.booking_date",
	"total_price":    "b.total_price",
	"amount_paid":    "b.amount_paid",
	"payment_status": "b.payment_status",
	"created_at":     "b.created_at",
}

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var b booking.Booking
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.TourID, &b.NumberOfParticipants,
		&b.TotalPrice, &b.AmountPaid, &b.PaymentStatus, &b.BookingDate,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt,
		&b.CustomerName, &b.TourName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a booking. A missing customer or tour surfaces as ErrInvalidInput.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	query := `
		INSERT INTO bookings (
			customer_id, tour_id, number_of_participants, total_price,
			amount_paid, payment_status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, booking_date, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		b.CustomerID, b.TourID, b.NumberOfParticipants, b.TotalPrice,
		b.AmountPaid, b.PaymentStatus, b.Notes,
	).Scan(&b.ID, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt)

	return translate(err, "create booking")
}

// FindByID retrieves a booking by ID
func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, translate(err, "find booking")
	}
	return b, nil
}

// Update updates a booking. booking_date is fixed at creation.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	query := `
		UPDATE bookings
		SET customer_id = $1, tour_id = $2, number_of_participants = $3,
		    total_price = $4, amount_paid = $5, payment_status = $6,
		    notes = $7, updated_at = $8
		WHERE id = $9
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		b.CustomerID, b.TourID, b.NumberOfParticipants,
		b.TotalPrice, b.AmountPaid, b.PaymentStatus,
		b.Notes, time.Now(), b.ID,
	).Scan(&b.UpdatedAt)

	return translate(err, "update booking")
}

// Delete removes a booking
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete booking")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List retrieves bookings with filters
func (r *BookingRepository) List(ctx context.Context, filters *booking.BookingListFilters) ([]booking.Booking, int64, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if len(filters.PaymentStatuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("b.payment_status = ANY($%d)", argPos))
		args = append(args, pq.Array(filters.PaymentStatuses))
		argPos++
	}

	if filters.TourID > 0 {
		conditions = append(conditions, fmt.Sprintf("b.tour_id = $%d", argPos))
		args = append(args, filters.TourID)
		argPos++
	}

	if filters.CustomerID > 0 {
		conditions = append(conditions, fmt.Sprintf("b.customer_id = $%d", argPos))
		args = append(args, filters.CustomerID)
		argPos++
	}

	if filters.BookedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("b.booking_date >= $%d", argPos))
		args = append(args, *filters.BookedFrom)
		argPos++
	}

	if filters.BookedTo != nil {
		conditions = append(conditions, fmt.Sprintf("b.booking_date < $%d", argPos))
		args = append(args, filters.BookedTo.AddDate(0, 0, 1))
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR t.name ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM bookings b
		JOIN customers c ON c.id = b.customer_id
		JOIN tours t ON t.id = b.tour_id
		WHERE %s
	`, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "count bookings")
	}

	limit, offset := pageBounds(filters.Page, filters.PageSize)
	order := orderClause(filters.SortBy, filters.SortOrder, bookingSortColumns, "b.booking_date DESC")

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, bookingSelect, whereClause, order, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, "list bookings")
	}
	defer rows.Close()

	bookings := []booking.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}

	return bookings, total, rows.Err()
}
