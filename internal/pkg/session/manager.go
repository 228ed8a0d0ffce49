// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Manager keeps sessions and revoked token IDs in Redis. Redis is the only
// source of truth: a session missing there is a dead session.
type Manager struct {
	client *redis.Client
	logger *zap.Logger
}

func NewManager(client *redis.Client, logger *zap.Logger) *Manager {
	return &Manager{
		client: client,
		logger: logger,
	}
}

// CreateSession stores a new session until its ExpiresAt.
func (m *Manager) CreateSession(ctx context.Context, session *SessionData) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := m.client.Set(ctx, sessionKey(session.UserID, session.JTI), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

// GetSession returns the live session, or ErrSessionExpired when it is gone.
func (m *Manager) GetSession(ctx context.Context, userID int64, jti string) (*SessionData, error) {
	data, err := m.client.Get(ctx, sessionKey(userID, jti)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Touch records activity on a session without changing its expiry.
func (m *Manager) Touch(ctx context.Context, session *SessionData) {
	session.LastActivityAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	// KeepTTL leaves the existing expiry in place.
	if err := m.client.SetArgs(ctx, sessionKey(session.UserID, session.JTI), data, redis.SetArgs{KeepTTL: true, Mode: "XX"}).Err(); err != nil && !errors.Is(err, redis.Nil) {
		m.logger.Warn("failed to update session activity", zap.Int64("user_id", session.UserID), zap.Error(err))
	}
}

// InvalidateSession removes one session
func (m *Manager) InvalidateSession(ctx context.Context, userID int64, jti string) error {
	if err := m.client.Del(ctx, sessionKey(userID, jti)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// InvalidateAllUserSessions removes every session of a user, used when an
// account is deactivated or deleted.
func (m *Manager) InvalidateAllUserSessions(ctx context.Context, userID int64) error {
	iter := m.client.Scan(ctx, 0, userSessionPattern(userID), 0).Iterator()
	for iter.Next(ctx) {
		if err := m.client.Del(ctx, iter.Val()).Err(); err != nil {
			m.logger.Warn("failed to delete session", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	return iter.Err()
}

// IsTokenBlacklisted checks if a token is blacklisted
func (m *Manager) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := m.client.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return exists > 0, nil
}

// BlacklistToken revokes a token for the rest of its life.
func (m *Manager) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return m.client.Set(ctx, blacklistKey(jti), "1", ttl).Err()
}

func sessionKey(userID int64, jti string) string {
	return fmt.Sprintf("session:%d:%s", userID, jti)
}

func userSessionPattern(userID int64) string {
	return fmt.Sprintf("session:%d:*", userID)
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}
