// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourdesk-service/internal/domain/customer"
	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const customerColumns = `
	id, customer_number, first_name, last_name, email, phone,
	passport_number, identity_number, birth_date, birth_place, address,
	country, city, nationality, age, gender, created_at, updated_at`

var customerSortColumns = map[string]string{
	"created_at":      "created_at",
	"first_name":      "first_name",
	"last_name":       "last_name",
	"country":         "country",
	"city":            "city",
	"age":             "age",
	"customer_number": "customer_number",
}

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a customer that already carries its customer number.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return translate(insertCustomer(ctx, r.db, c), "create customer")
}

// CreateNumbered allocates the next number of period and inserts the customer
// in the same transaction. The allocation is a single upsert on the period's
// counter row, so concurrent creations serialise on that row and never share
// a number. The first allocation of a period starts after the customers that
// already exist in it.
func (r *CustomerRepository) CreateNumbered(ctx context.Context, c *customer.Customer, period customer.Period, loc *time.Location) error {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO customer_number_sequences (period, last_value)
			VALUES ($1, (SELECT COUNT(*) FROM customers WHERE created_at >= $2 AND created_at < $3) + 1)
			ON CONFLICT (period) DO UPDATE
				SET last_value = customer_number_sequences.last_value + 1
			RETURNING last_value
		`

		var n int64
		if err := tx.QueryRow(ctx, query, period.Key(), period.Start(loc), period.End(loc)).Scan(&n); err != nil {
			return fmt.Errorf("failed to allocate customer number: %w", err)
		}

		c.CustomerNumber = customer.FormatNumber(period, n)
		return insertCustomer(ctx, tx, c)
	})
	if err != nil {
		c.CustomerNumber = ""
	}
	return translate(err, "create customer")
}

func insertCustomer(ctx context.Context, q querier, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			customer_number, first_name, last_name, email, phone,
			passport_number, identity_number, birth_date, birth_place, address,
			country, city, nationality, age, gender, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		RETURNING id, created_at, updated_at
	`

	return q.QueryRow(
		ctx, query,
		c.CustomerNumber, c.FirstName, c.LastName, c.Email, c.Phone,
		c.PassportNumber, c.IdentityNumber, c.BirthDate, c.BirthPlace, c.Address,
		c.Country, c.City, c.Nationality, c.Age, c.Gender, c.CreatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.CustomerNumber, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.PassportNumber, &c.IdentityNumber, &c.BirthDate, &c.BirthPlace, &c.Address,
		&c.Country, &c.City, &c.Nationality, &c.Age, &c.Gender, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByID retrieves a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, "find customer")
	}
	return c, nil
}

// FindByNumber retrieves a customer by customer number
func (r *CustomerRepository) FindByNumber(ctx context.Context, number string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_number = $1`

	c, err := scanCustomer(r.db.QueryRow(ctx, query, number))
	if err != nil {
		return nil, translate(err, "find customer")
	}
	return c, nil
}

// Update updates every mutable column. customer_number is never written.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    passport_number = $5, identity_number = $6, birth_date = $7,
		    birth_place = $8, address = $9, country = $10, city = $11,
		    nationality = $12, age = $13, gender = $14, updated_at = $15
		WHERE id = $16
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.PassportNumber, c.IdentityNumber, c.BirthDate,
		c.BirthPlace, c.Address, c.Country, c.City,
		c.Nationality, c.Age, c.Gender, time.Now(), c.ID,
	).Scan(&c.UpdatedAt)

	return translate(err, "update customer")
}

// Delete removes a customer; bookings go with it through ON DELETE CASCADE.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete customer")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List retrieves customers with filters
func (r *CustomerRepository) List(ctx context.Context, filters *customer.CustomerListFilters) ([]customer.Customer, int64, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if len(filters.Countries) > 0 {
		conditions = append(conditions, fmt.Sprintf("country = ANY($%d)", argPos))
		args = append(args, pq.Array(filters.Countries))
		argPos++
	}

	if len(filters.Cities) > 0 {
		conditions = append(conditions, fmt.Sprintf("city = ANY($%d)", argPos))
		args = append(args, pq.Array(filters.Cities))
		argPos++
	}

	if filters.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = $%d", argPos))
		args = append(args, filters.Gender)
		argPos++
	}

	if filters.CreatedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argPos))
		args = append(args, *filters.CreatedFrom)
		argPos++
	}

	if filters.CreatedTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", argPos))
		args = append(args, filters.CreatedTo.AddDate(0, 0, 1))
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "count customers")
	}

	limit, offset := pageBounds(filters.Page, filters.PageSize)
	order := orderClause(filters.SortBy, filters.SortOrder, customerSortColumns, "created_at DESC")

	query := fmt.Sprintf(`
		SELECT %s
		FROM customers
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, customerColumns, whereClause, order, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, "list customers")
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}

	return customers, total, rows.Err()
}
