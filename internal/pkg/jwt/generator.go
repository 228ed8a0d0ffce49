// internal/pkg/jwt/generator.go
package jwt

import (
	"crypto/rsa"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type Generator struct {
	priv     *rsa.PrivateKey
	issuer   string
	audience string
	kid      string // key id for rotation
	Ttl      time.Duration
}

func NewGenerator(priv *rsa.PrivateKey, issuer, audience, kid string, ttl time.Duration) *Generator {
	return &Generator{
		priv:     priv,
		issuer:   issuer,
		audience: audience,
		kid:      kid,
		Ttl:      ttl,
	}
}

// Subject is who a token is issued to.
type Subject struct {
	UserID      int64
	Username    string
	Role        string
	IsStaff     bool
	IsSuperuser bool
}

// Generate signs a session token valid for ttl (the generator default when
// ttl <= 0). It returns the token, its JTI and its expiry.
func (g *Generator) Generate(sub Subject, persistent bool, ttl time.Duration) (string, string, time.Time, error) {
	if g.priv == nil {
		return "", "", time.Time{}, fmt.Errorf("jwt generator has nil private key")
	}
	if ttl <= 0 {
		ttl = g.Ttl
	}

	now := time.Now()
	jti := ulid.Make().String()
	expiresAt := now.Add(ttl)

	claims := &Claims{
		UserID:      sub.UserID,
		Username:    sub.Username,
		Role:        sub.Role,
		IsStaff:     sub.IsStaff,
		IsSuperuser: sub.IsSuperuser,
		Persistent:  persistent,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   strconv.FormatInt(sub.UserID, 10),
			Audience:  []string{g.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if g.kid != "" {
		tok.Header["kid"] = g.kid
	}

	signed, err := tok.SignedString(g.priv)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, jti, expiresAt, nil
}
