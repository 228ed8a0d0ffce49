package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	xerrors "tourdesk-service/internal/pkg/errors"
	"tourdesk-service/internal/pkg/jwt"
	"tourdesk-service/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubValidator struct {
	tokens map[string]*jwt.Claims
}

func (s stubValidator) ValidateToken(_ context.Context, token string) (*jwt.Claims, error) {
	if c, ok := s.tokens[token]; ok {
		return c, nil
	}
	return nil, xerrors.ErrSessionExpired
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator := stubValidator{tokens: map[string]*jwt.Claims{
		"admin-token":     {UserID: 1, Username: "selin", Role: "admin", IsSuperuser: true},
		"moderator-token": {UserID: 3, Username: "deniz", Role: "moderator", IsStaff: true},
		"reader-token":    {UserID: 2, Username: "mert", Role: "reader"},
	}}
	m := NewAuthMiddleware(validator, "tourdesk_session")

	r := gin.New()
	r.GET("/me", m.Auth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": MustGetUserID(c), "role": GetRole(c)})
	})
	r.GET("/users", append(m.SuperuserOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})...)
	r.POST("/customers", append(m.StaffOnly(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})...)
	r.GET("/login", m.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": IsAuthenticated(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{name: "missing token", want: http.StatusUnauthorized},
		{name: "bearer header", header: "Bearer reader-token", want: http.StatusOK},
		{name: "session cookie", cookie: "admin-token", want: http.StatusOK},
		{name: "unknown token", header: "Bearer stale", want: http.StatusUnauthorized},
		{name: "malformed header", header: "reader-token", want: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "tourdesk_session", Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequireSuperuser(t *testing.T) {
	r := newAuthRouter()

	for token, want := range map[string]int{
		"admin-token":     http.StatusOK,
		"moderator-token": http.StatusForbidden,
		"reader-token":    http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}
}

func TestRequireStaff(t *testing.T) {
	r := newAuthRouter()

	for token, want := range map[string]int{
		"admin-token":     http.StatusCreated,
		"moderator-token": http.StatusCreated,
		"reader-token":    http.StatusForbidden,
		"":                http.StatusUnauthorized,
	} {
		req := httptest.NewRequest(http.MethodPost, "/customers", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Authorization", "Bearer reader-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.NewNop()
	r := gin.New()
	r.Use(MetricsMiddleware(m), LoggingMiddleware(zap.NewNop()))
	r.GET("/customers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/customers/1", "/customers/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/customers/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware("https://admin.example.com"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
