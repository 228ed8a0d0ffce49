// internal/domain/auth/dto.go
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LoginRequest carries the login form or JSON body.
type LoginRequest struct {
	Username  string       `json:"username" form:"username" binding:"required"`
	Password  string       `json:"password" form:"password" binding:"required"`
	Remember  RememberFlag `json:"remember" form:"remember"`
	IPAddress string       `json:"-" form:"-"`
	UserAgent string       `json:"-" form:"-"`
}

// RememberMe reports whether a persistent session was asked for.
func (r *LoginRequest) RememberMe() bool {
	return bool(r.Remember)
}

// RememberFlag is the remember-me switch. JSON bodies may send a boolean or a
// string; form posts send the checkbox value "on".
type RememberFlag bool

// UnmarshalParam implements gin's binding.BindUnmarshaler for form posts.
func (f *RememberFlag) UnmarshalParam(param string) error {
	v, err := parseRemember(param)
	if err != nil {
		return err
	}
	*f = RememberFlag(v)
	return nil
}

func (f *RememberFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = RememberFlag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("remember must be a boolean or string")
	}
	return f.UnmarshalParam(s)
}

func parseRemember(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true, nil
	case "", "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid remember value %q", s)
}

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	Token string
	JTI   string
	User  User
	// Persistent sessions carry a fixed lifetime; browser sessions end when the
	// browser closes and MaxAge is zero.
	Persistent bool
	MaxAge     time.Duration
	ExpiresAt  time.Time
}

// UserInfo minimal user information
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type CreateUserRequest struct {
	Username    string     `json:"username" binding:"required,max=150"`
	Password1   string     `json:"password1" binding:"required,min=8"`
	Password2   string     `json:"password2" binding:"required"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	IsActive    *bool      `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	PhotoURL    string     `json:"photo_url"`
	Phone       string     `json:"phone"`
	BirthDate   *time.Time `json:"birth_date"`
	Gender      string     `json:"gender"`
	Status      string     `json:"status"`
}

type UpdateUserRequest struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Email       *string    `json:"email"`
	IsActive    *bool      `json:"is_active"`
	IsStaff     *bool      `json:"is_staff"`
	IsSuperuser *bool      `json:"is_superuser"`
	Password    *string    `json:"password"`
	PhotoURL    *string    `json:"photo_url"`
	Phone       *string    `json:"phone"`
	BirthDate   *time.Time `json:"birth_date"`
	Gender      *string    `json:"gender"`
	Status      *string    `json:"status"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type UserListFilters struct {
	IsStaff     *bool  `form:"is_staff"`
	IsSuperuser *bool  `form:"is_superuser"`
	IsActive    *bool  `form:"is_active"`
	Search      string `form:"search"` // username, first name, last name, email
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

type UserListResponse struct {
	Users      []UserWithProfile `json:"users"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}
