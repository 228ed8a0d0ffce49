// internal/domain/auth/entity.go
package auth

import (
	"database/sql"
	"strings"
	"time"

	"tourdesk-service/internal/domain/customer"
)

// Profile statuses, mirrored from User.IsActive.
const (
	ProfileActive  = "active"
	ProfilePassive = "passive"
)

// Roles derived from the account flags.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleReader    = "reader"
)

var ProfileStatusChoices = []customer.Choice{
	{Value: ProfileActive, Label: "Active"},
	{Value: ProfilePassive, Label: "Passive"},
}

// User is a staff account.
type User struct {
	ID           int64        `json:"id" db:"id"`
	Username     string       `json:"username" db:"username" validate:"required,max=150"`
	PasswordHash string       `json:"-" db:"password_hash"`
	FirstName    string       `json:"first_name" db:"first_name" validate:"max=150"`
	LastName     string       `json:"last_name" db:"last_name" validate:"max=150"`
	Email        string       `json:"email" db:"email" validate:"omitempty,email,max=254"`
	IsActive     bool         `json:"is_active" db:"is_active"`
	IsStaff      bool         `json:"is_staff" db:"is_staff"`
	IsSuperuser  bool         `json:"is_superuser" db:"is_superuser"`
	LastLogin    sql.NullTime `json:"-" db:"last_login"`
	DateJoined   time.Time    `json:"date_joined" db:"date_joined"`
}

// Role maps the flags to a display role: superuser is admin, staff is moderator.
func (u *User) Role() string {
	switch {
	case u.IsSuperuser:
		return RoleAdmin
	case u.IsStaff:
		return RoleModerator
	default:
		return RoleReader
	}
}

// FullName returns "first last", or "-" when both are empty.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return "-"
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initial is the avatar placeholder letter used when no photo exists.
func (u *User) Initial() string {
	if u.Username == "" {
		return "?"
	}
	return strings.ToUpper(u.Username[:1])
}

// UserProfile is the one-to-one extension of a staff account.
type UserProfile struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	PhotoURL  string     `json:"photo_url" db:"photo_url" validate:"omitempty,max=500"`
	BirthDate *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Phone     string     `json:"phone" db:"phone" validate:"max=20"`
	Gender    string     `json:"gender" db:"gender" validate:"omitempty,oneof=M F O"`
	Status    string     `json:"status" db:"status" validate:"required,oneof=active passive"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// StatusFor is the profile status that mirrors an account active flag.
func StatusFor(isActive bool) string {
	if isActive {
		return ProfileActive
	}
	return ProfilePassive
}

// UserWithProfile is the combined view used by the staff list.
type UserWithProfile struct {
	User
	Profile  *UserProfile `json:"profile"`
	Role     string       `json:"role"`
	FullName string       `json:"full_name"`
	Initial  string       `json:"initial"`
}

// NewUserWithProfile fills the derived display columns.
func NewUserWithProfile(u User, p *UserProfile) UserWithProfile {
	return UserWithProfile{
		User:     u,
		Profile:  p,
		Role:     u.Role(),
		FullName: u.FullName(),
		Initial:  u.Initial(),
	}
}
