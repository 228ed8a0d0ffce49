// internal/service/account/bootstrap.go
package account

import (
	"context"
	"errors"
	"fmt"

	"tourdesk-service/internal/domain/auth"
	xerrors "tourdesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// EnsureSuperuser creates the bootstrap superuser if it does not exist yet
// (called on startup). Without a configured username it does nothing.
func (s *AccountService) EnsureSuperuser(ctx context.Context, username, password, email string) error {
	if username == "" {
		s.logger.Info("no bootstrap superuser configured, skipping")
		return nil
	}

	_, err := s.store.FindUserByUsername(ctx, username)
	if err == nil {
		s.logger.Info("superuser already exists, skipping creation", zap.String("username", username))
		return nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return fmt.Errorf("failed to check superuser existence: %w", err)
	}

	if password == "" {
		return fmt.Errorf("SUPER_ADMIN_PASSWORD must be set to create superuser %q", username)
	}

	active := true
	created, err := s.CreateUser(ctx, &auth.CreateUserRequest{
		Username:    username,
		Password1:   password,
		Password2:   password,
		Email:       email,
		IsActive:    &active,
		IsStaff:     true,
		IsSuperuser: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	s.logger.Info("superuser created", zap.Int64("user_id", created.ID), zap.String("username", username))
	return nil
}
