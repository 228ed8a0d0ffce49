package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("wrap: %w", xerrors.ErrNotFound), http.StatusNotFound},
		{xerrors.ErrDuplicateEntry, http.StatusConflict},
		{xerrors.ErrInvalidInput, http.StatusBadRequest},
		{xerrors.NewValidationError(map[string]string{"a": "b"}), http.StatusBadRequest},
		{xerrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{xerrors.ErrForbidden, http.StatusForbidden},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), "%v", tc.err)
	}
}

func TestFromError_ValidationFields(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, "failed to create tour", xerrors.NewValidationError(map[string]string{
		"duration_days": "must be at least 1",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "failed to create tour", body.Message)
	assert.Equal(t, "must be at least 1", body.Data["duration_days"])
}

func TestRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Redirect(c, "Login successful!", "/admin/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Login successful!","redirect_url":"/admin/"}`, w.Body.String())
}
