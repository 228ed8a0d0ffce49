// internal/repository/postgres/db.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// withTx runs fn in a transaction, committing on success.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// translate maps driver errors onto the application sentinels.
func translate(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %s: %w", action, constraintField(pgErr.ConstraintName), xerrors.ErrDuplicateEntry)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: referenced record does not exist: %w", action, xerrors.ErrInvalidInput)
		case pgCheckViolation:
			return fmt.Errorf("%s: %s: %w", action, pgErr.ConstraintName, xerrors.ErrInvalidInput)
		}
	}

	return fmt.Errorf("failed to %s: %w", action, err)
}

// constraintField turns "customers_email_key" into "email".
func constraintField(constraint string) string {
	name := strings.TrimSuffix(constraint, "_key")
	if i := strings.Index(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// pageBounds normalises page/page size the same way for every list query.
func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}

// orderClause whitelists sortable columns; unknown columns fall back to def.
func orderClause(sortBy, sortOrder string, allowed map[string]string, def string) string {
	col, ok := allowed[sortBy]
	if !ok {
		return def
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}
