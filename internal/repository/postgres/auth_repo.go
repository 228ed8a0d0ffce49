// internal/repository/postgres/auth_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourdesk-service/internal/domain/auth"
	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `
	u.id, u.username, u.password_hash, u.first_name, u.last_name, u.email,
	u.is_active, u.is_staff, u.is_superuser, u.last_login, u.date_joined`

type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

// ========== User Methods ==========

func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.LastLogin, &u.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByUsername retrieves a user by username (case-sensitive, like the login form)
func (r *AuthRepository) FindUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.username = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, translate(err, "find user")
	}
	return u, nil
}

// FindUserByID retrieves a user by ID
func (r *AuthRepository) FindUserByID(ctx context.Context, id int64) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, "find user")
	}
	return u, nil
}

// UpdateLastLogin stamps a successful login
func (r *AuthRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	return translate(err, "update last login")
}

// CreateUserWithProfile inserts the account and its profile in one transaction,
// so an account never exists without a profile.
func (r *AuthRepository) CreateUserWithProfile(ctx context.Context, u *auth.User, p *auth.UserProfile) error {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		userQuery := `
			INSERT INTO users (
				username, password_hash, first_name, last_name, email,
				is_active, is_staff, is_superuser
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, date_joined
		`
		err := tx.QueryRow(
			ctx, userQuery,
			u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email,
			u.IsActive, u.IsStaff, u.IsSuperuser,
		).Scan(&u.ID, &u.DateJoined)
		if err != nil {
			return err
		}

		p.UserID = u.ID
		return insertProfile(ctx, tx, p)
	})
	return translate(err, "create user")
}

func insertProfile(ctx context.Context, q querier, p *auth.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, photo_url, birth_date, phone, gender, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(
		ctx, query,
		p.UserID, p.PhotoURL, p.BirthDate, p.Phone, p.Gender, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// UpdateUserWithProfile writes both rows in one transaction. The password hash
// is only written when non-empty. A missing profile row is created.
func (r *AuthRepository) UpdateUserWithProfile(ctx context.Context, u *auth.User, p *auth.UserProfile) error {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		userQuery := `
			UPDATE users
			SET first_name = $1, last_name = $2, email = $3,
			    is_active = $4, is_staff = $5, is_superuser = $6,
			    password_hash = COALESCE(NULLIF($7, ''), password_hash)
			WHERE id = $8
		`
		result, err := tx.Exec(
			ctx, userQuery,
			u.FirstName, u.LastName, u.Email,
			u.IsActive, u.IsStaff, u.IsSuperuser,
			u.PasswordHash, u.ID,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		p.UserID = u.ID
		profileQuery := `
			INSERT INTO user_profiles (user_id, photo_url, birth_date, phone, gender, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE
				SET photo_url = EXCLUDED.photo_url, birth_date = EXCLUDED.birth_date,
				    phone = EXCLUDED.phone, gender = EXCLUDED.gender,
				    status = EXCLUDED.status, updated_at = NOW()
			RETURNING id, created_at, updated_at
		`
		return tx.QueryRow(
			ctx, profileQuery,
			p.UserID, p.PhotoURL, p.BirthDate, p.Phone, p.Gender, p.Status,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	})
	return translate(err, "update user")
}

// SetActive writes users.is_active and the mirrored profile status together.
func (r *AuthRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, userID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		_, err = tx.Exec(ctx, `
			UPDATE user_profiles SET status = $1, updated_at = NOW() WHERE user_id = $2
		`, auth.StatusFor(active), userID)
		return err
	})
	return translate(err, "set user active")
}

// DeleteUser removes a user; the profile goes with it through ON DELETE CASCADE.
func (r *AuthRepository) DeleteUser(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete user")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ========== Profile Methods ==========

// FindProfileByUserID retrieves the profile of a user
func (r *AuthRepository) FindProfileByUserID(ctx context.Context, userID int64) (*auth.UserProfile, error) {
	query := `
		SELECT id, user_id, photo_url, birth_date, phone, gender, status, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var p auth.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.PhotoURL, &p.BirthDate, &p.Phone, &p.Gender,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, "find profile")
	}
	return &p, nil
}

// ListUsers returns users joined with their profiles
func (r *AuthRepository) ListUsers(ctx context.Context, filters *auth.UserListFilters) ([]auth.UserWithProfile, int64, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.IsStaff != nil {
		conditions = append(conditions, fmt.Sprintf("u.is_staff = $%d", argPos))
		args = append(args, *filters.IsStaff)
		argPos++
	}

	if filters.IsSuperuser != nil {
		conditions = append(conditions, fmt.Sprintf("u.is_superuser = $%d", argPos))
		args = append(args, *filters.IsSuperuser)
		argPos++
	}

	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("u.is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.username ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.email ILIKE $%d)",
			argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users u WHERE %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "count users")
	}

	limit, offset := pageBounds(filters.Page, filters.PageSize)

	query := fmt.Sprintf(`
		SELECT %s,
		       p.id, p.photo_url, p.birth_date, p.phone, p.gender, p.status, p.created_at, p.updated_at
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE %s
		ORDER BY u.username ASC
		LIMIT $%d OFFSET $%d
	`, userColumns, whereClause, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, "list users")
	}
	defer rows.Close()

	users := []auth.UserWithProfile{}
	for rows.Next() {
		var (
			u                    auth.User
			profileID            *int64
			photo, phone, gender *string
			status               *string
			birthDate            *time.Time
			createdAt, updatedAt *time.Time
		)

		err := rows.Scan(
			&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email,
			&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.LastLogin, &u.DateJoined,
			&profileID, &photo, &birthDate, &phone, &gender, &status, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}

		var profile *auth.UserProfile
		if profileID != nil {
			profile = &auth.UserProfile{
				ID:        *profileID,
				UserID:    u.ID,
				PhotoURL:  deref(photo),
				BirthDate: birthDate,
				Phone:     deref(phone),
				Gender:    deref(gender),
				Status:    deref(status),
			}
			if createdAt != nil {
				profile.CreatedAt = *createdAt
			}
			if updatedAt != nil {
				profile.UpdatedAt = *updatedAt
			}
		}

		users = append(users, auth.NewUserWithProfile(u, profile))
	}

	return users, total, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
