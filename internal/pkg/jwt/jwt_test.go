package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestGenerateAndVerify(t *testing.T) {
	key := testKey(t)
	gen := NewGenerator(key, "tourdesk", "tourdesk-admin", "k1", time.Hour)
	ver := NewVerifier(&key.PublicKey, "tourdesk", "tourdesk-admin")

	sub := Subject{UserID: 42, Username: "selin", Role: "admin", IsStaff: true, IsSuperuser: true}
	token, jti, exp, err := gen.Generate(sub, true, 14*24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.WithinDuration(t, time.Now().Add(14*24*time.Hour), exp, 5*time.Second)

	claims, err := ver.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "selin", claims.Username)
	assert.Equal(t, jti, claims.ID)
	assert.True(t, claims.Persistent)
	assert.True(t, claims.IsStaff)
	assert.True(t, claims.IsSuperuser)
}

func TestGenerateDefaultTTL(t *testing.T) {
	key := testKey(t)
	gen := NewGenerator(key, "iss", "aud", "", 2*time.Hour)

	_, _, exp, err := gen.Generate(Subject{UserID: 1}, false, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), exp, 5*time.Second)
}

func TestVerifyRejects(t *testing.T) {
	key := testKey(t)
	other := testKey(t)
	gen := NewGenerator(key, "iss", "aud", "", time.Hour)
	token, _, _, err := gen.Generate(Subject{UserID: 1}, false, 0)
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := NewVerifier(&other.PublicKey, "iss", "aud").Verify(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewVerifier(&key.PublicKey, "other", "aud").Verify(token)
		assert.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		_, err := NewVerifier(&key.PublicKey, "iss", "other").Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		short := NewGenerator(key, "iss", "aud", "", time.Millisecond)
		tok, _, _, err := short.Generate(Subject{UserID: 1}, false, 0)
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)
		_, err = NewVerifier(&key.PublicKey, "iss", "aud").Verify(tok)
		assert.Error(t, err)
	})
}

func TestLoadAndBuild(t *testing.T) {
	key := testKey(t)
	dir := t.TempDir()

	privPath := filepath.Join(dir, "priv.pem")
	pubPath := filepath.Join(dir, "pub.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o600))

	m, err := LoadAndBuild(Config{PrivPath: privPath, PubPath: pubPath, Issuer: "iss", Audience: "aud", TTL: time.Hour})
	require.NoError(t, err)

	token, _, _, err := m.Generator.Generate(Subject{UserID: 7}, false, 0)
	require.NoError(t, err)
	claims, err := m.Verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}
