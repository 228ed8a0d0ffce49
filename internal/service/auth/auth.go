// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourdesk-service/internal/domain/auth"
	xerrors "tourdesk-service/internal/pkg/errors"
	"tourdesk-service/internal/pkg/jwt"
	"tourdesk-service/internal/pkg/metrics"
	"tourdesk-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the account lookup the gateway needs.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*auth.User, error)
	FindUserByID(ctx context.Context, id int64) (*auth.User, error)
	FindProfileByUserID(ctx context.Context, userID int64) (*auth.UserProfile, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// SessionStore keeps live sessions and revoked tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, s *session.SessionData) error
	GetSession(ctx context.Context, userID int64, jti string) (*session.SessionData, error)
	Touch(ctx context.Context, s *session.SessionData)
	InvalidateSession(ctx context.Context, userID int64, jti string) error
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// SessionConfig holds the two session lifetimes.
type SessionConfig struct {
	// BrowserTTL bounds a session that ends with the browser; the cookie
	// itself carries no Max-Age.
	BrowserTTL time.Duration
	// RememberTTL is the fixed lifetime of a "remember me" session.
	RememberTTL time.Duration
}

// dummyHash is compared against when the username is unknown so that a miss
// costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tourdesk-dummy-password"), bcrypt.DefaultCost)

type AuthService struct {
	userStore      UserStore
	jwtManager     *jwt.Manager
	sessionManager SessionStore
	sessions       SessionConfig
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

func NewAuthService(
	userStore UserStore,
	jwtManager *jwt.Manager,
	sessionManager SessionStore,
	sessions SessionConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userStore:      userStore,
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		sessions:       sessions,
		metrics:        m,
		logger:         logger,
	}
}

// ========== Login ==========

// Login checks the credentials and opens a session. Unknown users, inactive
// users and wrong passwords all fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
	user, err := s.userStore.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, s.rejectLogin(req.Username, "unknown user")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, s.rejectLogin(req.Username, "wrong password")
	}

	if !user.IsActive {
		return nil, s.rejectLogin(req.Username, "inactive user")
	}

	persistent := req.RememberMe()
	ttl := s.sessions.BrowserTTL
	if persistent {
		ttl = s.sessions.RememberTTL
	}

	token, jti, expiresAt, err := s.jwtManager.Generator.Generate(jwt.Subject{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role(),
		IsStaff:     user.IsStaff || user.IsSuperuser,
		IsSuperuser: user.IsSuperuser,
	}, persistent, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	sessionData := &session.SessionData{
		JTI:            jti,
		UserID:         user.ID,
		Username:       user.Username,
		Role:           user.Role(),
		IsSuperuser:    user.IsSuperuser,
		IPAddress:      req.IPAddress,
		UserAgent:      req.UserAgent,
		Persistent:     persistent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}
	if err := s.sessionManager.CreateSession(ctx, sessionData); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Error("failed to update last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info("user logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Bool("remember", persistent),
		zap.String("ip", req.IPAddress),
	)

	result := &auth.LoginResult{
		Token:      token,
		JTI:        jti,
		User:       *user,
		Persistent: persistent,
		ExpiresAt:  expiresAt,
	}
	if persistent {
		result.MaxAge = ttl
	}
	return result, nil
}

func (s *AuthService) rejectLogin(username, reason string) error {
	s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
	s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", reason))
	return xerrors.ErrInvalidCredentials
}

// ========== Logout ==========

// Logout ends the session and revokes its token for the rest of its life.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if err := s.sessionManager.InvalidateSession(ctx, claims.UserID, claims.ID); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}

	var remaining time.Duration
	if claims.ExpiresAt != nil {
		remaining = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.sessionManager.BlacklistToken(ctx, claims.ID, remaining); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	s.logger.Info("user logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// ========== Token Validation ==========

// ValidateToken checks the signature, the blacklist and the live session.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err)
	}

	blacklisted, err := s.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return nil, xerrors.ErrSessionExpired
	}

	sess, err := s.sessionManager.GetSession(ctx, claims.UserID, claims.ID)
	if err != nil {
		if errors.Is(err, xerrors.ErrSessionExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	s.sessionManager.Touch(ctx, sess)

	return claims, nil
}

// ========== Current User ==========

// Me returns the logged-in user with profile and display columns.
func (s *AuthService) Me(ctx context.Context, userID int64) (*auth.UserWithProfile, error) {
	user, err := s.userStore.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.userStore.FindProfileByUserID(ctx, userID)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	view := auth.NewUserWithProfile(*user, profile)
	return &view, nil
}
