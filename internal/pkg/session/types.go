// internal/pkg/session/types.go
package session

import "time"

// SessionData is what Redis holds for one login.
type SessionData struct {
	JTI            string    `json:"jti"`
	UserID         int64     `json:"user_id"`
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	IsSuperuser    bool      `json:"is_superuser"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	Persistent     bool      `json:"persistent"`
	LoginAt        time.Time `json:"login_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *SessionData) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
