// internal/service/account/account.go
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tourdesk-service/internal/domain/auth"
	xerrors "tourdesk-service/internal/pkg/errors"
	"tourdesk-service/internal/pkg/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Store is the staff account storage.
type Store interface {
	CreateUserWithProfile(ctx context.Context, u *auth.User, p *auth.UserProfile) error
	UpdateUserWithProfile(ctx context.Context, u *auth.User, p *auth.UserProfile) error
	SetActive(ctx context.Context, userID int64, active bool) error
	FindUserByID(ctx context.Context, id int64) (*auth.User, error)
	FindUserByUsername(ctx context.Context, username string) (*auth.User, error)
	FindProfileByUserID(ctx context.Context, userID int64) (*auth.UserProfile, error)
	ListUsers(ctx context.Context, filters *auth.UserListFilters) ([]auth.UserWithProfile, int64, error)
	DeleteUser(ctx context.Context, id int64) error
}

// SessionRevoker ends every session of a user.
type SessionRevoker interface {
	InvalidateAllUserSessions(ctx context.Context, userID int64) error
}

// AccountService manages staff accounts and their profiles. Every account is
// created together with its profile, and the account active flag and the
// profile status are always written together.
type AccountService struct {
	store    Store
	sessions SessionRevoker
	hashCost int
	logger   *zap.Logger
}

func NewAccountService(store Store, sessions SessionRevoker, logger *zap.Logger) *AccountService {
	return &AccountService{
		store:    store,
		sessions: sessions,
		hashCost: bcrypt.DefaultCost,
		logger:   logger,
	}
}

// ========== Create ==========

// CreateUser creates an account and its profile in one step.
func (s *AccountService) CreateUser(ctx context.Context, req *auth.CreateUserRequest) (*auth.UserWithProfile, error) {
	if err := checkPasswords(req.Password1, req.Password2); err != nil {
		return nil, err
	}

	active, status, err := resolveActive(req.IsActive, req.Status, true)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &auth.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.TrimSpace(req.Email),
		IsActive:     active,
		IsStaff:      req.IsStaff || req.IsSuperuser,
		IsSuperuser:  req.IsSuperuser,
	}
	p := &auth.UserProfile{
		PhotoURL:  req.PhotoURL,
		BirthDate: req.BirthDate,
		Phone:     req.Phone,
		Gender:    req.Gender,
		Status:    status,
	}

	if err := validateAccount(u, p); err != nil {
		return nil, err
	}

	if err := s.store.CreateUserWithProfile(ctx, u, p); err != nil {
		s.logger.Error("failed to create user", zap.String("username", u.Username), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("role", u.Role()),
	)

	view := auth.NewUserWithProfile(*u, p)
	return &view, nil
}

// ========== Read ==========

// GetUser returns an account with its profile
func (s *AccountService) GetUser(ctx context.Context, id int64) (*auth.UserWithProfile, error) {
	u, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.store.FindProfileByUserID(ctx, id)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	view := auth.NewUserWithProfile(*u, p)
	return &view, nil
}

// ListUsers lists accounts with filters and pagination
func (s *AccountService) ListUsers(ctx context.Context, filters *auth.UserListFilters) (*auth.UserListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}
	filters.Search = strings.TrimSpace(filters.Search)

	users, total, err := s.store.ListUsers(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &auth.UserListResponse{
		Users:      users,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ========== Update ==========

// UpdateUser applies account and profile changes together.
func (s *AccountService) UpdateUser(ctx context.Context, id int64, req *auth.UpdateUserRequest) (*auth.UserWithProfile, error) {
	u, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.store.FindProfileByUserID(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		p = &auth.UserProfile{UserID: id, Status: auth.StatusFor(u.IsActive)}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	wasActive, wasStaff, wasSuperuser := u.IsActive, u.IsStaff, u.IsSuperuser

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		u.Email = strings.TrimSpace(*req.Email)
	}
	if req.IsStaff != nil {
		u.IsStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		u.IsSuperuser = *req.IsSuperuser
		if u.IsSuperuser {
			u.IsStaff = true
		}
	}

	// Only an explicit change goes through resolveActive; otherwise the
	// stored pair stays as it is.
	if req.IsActive != nil || req.Status != nil {
		status := ""
		if req.Status != nil {
			status = *req.Status
		}
		active, resolved, err := resolveActive(req.IsActive, status, u.IsActive)
		if err != nil {
			return nil, err
		}
		u.IsActive = active
		p.Status = resolved
	}

	// The hash is only written when a new password was given.
	u.PasswordHash = ""
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return nil, xerrors.NewValidationError(map[string]string{
				"password": fmt.Sprintf("must be at least %d characters", minPasswordLength),
			})
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if req.PhotoURL != nil {
		p.PhotoURL = *req.PhotoURL
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		p.BirthDate = req.BirthDate
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}

	if err := validateAccount(u, p); err != nil {
		return nil, err
	}

	if err := s.store.UpdateUserWithProfile(ctx, u, p); err != nil {
		s.logger.Error("failed to update user", zap.Int64("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Tokens carry the role, so any privilege change ends the open sessions.
	if (wasActive && !u.IsActive) || wasStaff != u.IsStaff || wasSuperuser != u.IsSuperuser {
		s.revokeSessions(ctx, id)
	}

	s.logger.Info("user updated", zap.Int64("user_id", id), zap.Bool("is_active", u.IsActive))

	u.PasswordHash = ""
	view := auth.NewUserWithProfile(*u, p)
	return &view, nil
}

// SetActive flips the account active flag; the profile status follows.
func (s *AccountService) SetActive(ctx context.Context, id int64, active bool) (*auth.UserWithProfile, error) {
	if err := s.store.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	if !active {
		s.revokeSessions(ctx, id)
	}

	s.logger.Info("user active flag changed", zap.Int64("user_id", id), zap.Bool("is_active", active))
	return s.GetUser(ctx, id)
}

// ========== Delete ==========

// DeleteUser removes an account and its profile. Users cannot delete themselves.
func (s *AccountService) DeleteUser(ctx context.Context, id, actingUserID int64) error {
	if id == actingUserID {
		return fmt.Errorf("cannot delete your own account: %w", xerrors.ErrForbidden)
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.revokeSessions(ctx, id)
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

func (s *AccountService) revokeSessions(ctx context.Context, id int64) {
	if err := s.sessions.InvalidateAllUserSessions(ctx, id); err != nil {
		s.logger.Warn("failed to revoke sessions", zap.Int64("user_id", id), zap.Error(err))
	}
}

// ========== Helpers ==========

func checkPasswords(p1, p2 string) error {
	fields := map[string]string{}
	if len(p1) < minPasswordLength {
		fields["password1"] = fmt.Sprintf("must be at least %d characters", minPasswordLength)
	}
	if p1 != p2 {
		fields["password2"] = "the two password fields didn't match"
	}
	if len(fields) > 0 {
		return xerrors.NewValidationError(fields)
	}
	return nil
}

// resolveActive reconciles the account flag and the profile status. Either
// may be given; if both are given they must agree. fallback applies when
// neither is.
func resolveActive(isActive *bool, status string, fallback bool) (bool, string, error) {
	switch {
	case isActive != nil && status != "":
		if auth.StatusFor(*isActive) != status {
			return false, "", xerrors.NewValidationError(map[string]string{
				"status": "does not match is_active",
			})
		}
		return *isActive, status, nil
	case isActive != nil:
		return *isActive, auth.StatusFor(*isActive), nil
	case status != "":
		if status != auth.ProfileActive && status != auth.ProfilePassive {
			return false, "", xerrors.NewValidationError(map[string]string{
				"status": "must be one of: active, passive",
			})
		}
		return status == auth.ProfileActive, status, nil
	default:
		return fallback, auth.StatusFor(fallback), nil
	}
}

func validateAccount(u *auth.User, p *auth.UserProfile) error {
	fields := map[string]string{}
	if err := validation.Struct(u); err != nil {
		ve, ok := xerrors.AsValidation(err)
		if !ok {
			return err
		}
		for k, v := range ve.Fields {
			fields[k] = v
		}
	}
	if err := validation.Struct(p); err != nil {
		ve, ok := xerrors.AsValidation(err)
		if !ok {
			return err
		}
		for k, v := range ve.Fields {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return xerrors.NewValidationError(fields)
	}
	return nil
}
