// internal/repository/postgres/dashboard_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"tourdesk-service/internal/domain/dashboard"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DashboardRepository runs the read-only aggregates behind the dashboard.
// Every figure is recomputed per call.
type DashboardRepository struct {
	db *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, translate(err, "count customers")
}

func (r *DashboardRepository) CountTours(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tours`).Scan(&n)
	return n, translate(err, "count tours")
}

// TotalRevenue sums amount_paid over paid bookings.
func (r *DashboardRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_paid), 0) FROM bookings WHERE payment_status = 'paid'
	`).Scan(&total)
	return total, translate(err, "sum revenue")
}

// AccountsReceivable is sum(total_price) - sum(amount_paid) over bookings not
// yet paid. Refunded bookings are included.
func (r *DashboardRepository) AccountsReceivable(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_price), 0) - COALESCE(SUM(amount_paid), 0)
		FROM bookings
		WHERE payment_status <> 'paid'
	`).Scan(&total)
	return total, translate(err, "sum accounts receivable")
}

func (r *DashboardRepository) CustomersByCountry(ctx context.Context, limit int) ([]dashboard.CountByKey, error) {
	return r.groupCount(ctx, "country", limit)
}

func (r *DashboardRepository) CustomersByCity(ctx context.Context, limit int) ([]dashboard.CountByKey, error) {
	return r.groupCount(ctx, "city", limit)
}

// GenderStats counts customers per gender code.
func (r *DashboardRepository) GenderStats(ctx context.Context) ([]dashboard.CountByKey, error) {
	return r.groupCount(ctx, "gender", 0)
}

// groupCount counts customers per value of column, largest first. Ties are
// broken by the value so the order is stable. limit <= 0 means no limit.
func (r *DashboardRepository) groupCount(ctx context.Context, column string, limit int) ([]dashboard.CountByKey, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*) AS count
		FROM customers
		GROUP BY %[1]s
		ORDER BY count DESC, %[1]s ASC
	`, column)

	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "count customers by "+column)
	}
	defer rows.Close()

	counts := []dashboard.CountByKey{}
	for rows.Next() {
		var c dashboard.CountByKey
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// AgeGroups counts customers per fixed age band in a single pass.
func (r *DashboardRepository) AgeGroups(ctx context.Context) (map[string]int64, error) {
	query, labels := ageGroupsQuery(dashboard.AgeBands)

	values := make([]int64, len(labels))
	dest := make([]interface{}, len(labels))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := r.db.QueryRow(ctx, query).Scan(dest...); err != nil {
		return nil, translate(err, "count age groups")
	}

	groups := dashboard.EmptyAgeGroups()
	for i, label := range labels {
		groups[label] = values[i]
	}
	return groups, nil
}

// ageGroupsQuery builds one COUNT FILTER column per band.
func ageGroupsQuery(bands []dashboard.AgeBand) (string, []string) {
	cols := make([]string, 0, len(bands))
	labels := make([]string, 0, len(bands))
	for _, b := range bands {
		cond := fmt.Sprintf("age >= %d", b.Min)
		if b.Max >= 0 {
			cond += fmt.Sprintf(" AND age <= %d", b.Max)
		}
		cols = append(cols, fmt.Sprintf("COUNT(*) FILTER (WHERE %s)", cond))
		labels = append(labels, b.Label)
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM customers", labels
}
