// internal/repository/postgres/tour_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourdesk-service/internal/domain/tour"
	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const tourColumns = `
	id, name, description, destination, duration_days, price,
	start_date, end_date, max_participants, status, created_at, updated_at`

var tourSortColumns = map[string]string{
	"start_date": "start_date",
	"end_date":   "end_date",
	"name":       "name",
	"price":      "price",
	"status":     "status",
	"created_at": "created_at",
}

type TourRepository struct {
	db *pgxpool.Pool
}

func NewTourRepository(db *pgxpool.Pool) *TourRepository {
	return &TourRepository{db: db}
}

func scanTour(row pgx.Row) (*tour.Tour, error) {
	var t tour.Tour
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.Destination, &t.DurationDays, &t.Price,
		&t.StartDate, &t.EndDate, &t.MaxParticipants, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new tour
func (r *TourRepository) Create(ctx context.Context, t *tour.Tour) error {
	query := `
		INSERT INTO tours (
			name, description, destination, duration_days, price,
			start_date, end_date, max_participants, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		t.Name, t.Description, t.Destination, t.DurationDays, t.Price,
		t.StartDate, t.EndDate, t.MaxParticipants, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	return translate(err, "create tour")
}

// FindByID retrieves a tour by ID
func (r *TourRepository) FindByID(ctx context.Context, id int64) (*tour.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	t, err := scanTour(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, "find tour")
	}
	return t, nil
}

// Update updates a tour
func (r *TourRepository) Update(ctx context.Context, t *tour.Tour) error {
	query := `
		UPDATE tours
		SET name = $1, description = $2, destination = $3, duration_days = $4,
		    price = $5, start_date = $6, end_date = $7, max_participants = $8,
		    status = $9, updated_at = $10
		WHERE id = $11
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		t.Name, t.Description, t.Destination, t.DurationDays,
		t.Price, t.StartDate, t.EndDate, t.MaxParticipants,
		t.Status, time.Now(), t.ID,
	).Scan(&t.UpdatedAt)

	return translate(err, "update tour")
}

// Delete removes a tour and, through the foreign key, its bookings.
func (r *TourRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete tour")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List retrieves tours with filters
func (r *TourRepository) List(ctx context.Context, filters *tour.TourListFilters) ([]tour.Tour, int64, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if len(filters.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", argPos))
		args = append(args, pq.Array(filters.Statuses))
		argPos++
	}

	if len(filters.Destinations) > 0 {
		conditions = append(conditions, fmt.Sprintf("destination = ANY($%d)", argPos))
		args = append(args, pq.Array(filters.Destinations))
		argPos++
	}

	if filters.StartFrom != nil {
		conditions = append(conditions, fmt.Sprintf("start_date >= $%d", argPos))
		args = append(args, *filters.StartFrom)
		argPos++
	}

	if filters.StartTo != nil {
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", argPos))
		args = append(args, *filters.StartTo)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR destination ILIKE $%d OR description ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tours WHERE %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "count tours")
	}

	limit, offset := pageBounds(filters.Page, filters.PageSize)
	order := orderClause(filters.SortBy, filters.SortOrder, tourSortColumns, "start_date DESC")

	query := fmt.Sprintf(`
		SELECT %s
		FROM tours
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, tourColumns, whereClause, order, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, "list tours")
	}
	defer rows.Close()

	tours := []tour.Tour{}
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tour: %w", err)
		}
		tours = append(tours, *t)
	}

	return tours, total, rows.Err()
}
