package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, (&User{IsSuperuser: true, IsStaff: true}).Role())
	assert.Equal(t, RoleModerator, (&User{IsStaff: true}).Role())
	assert.Equal(t, RoleReader, (&User{}).Role())
}

func TestUserDisplay(t *testing.T) {
	u := User{Username: "selin", FirstName: "Selin", LastName: "Kaya"}
	assert.Equal(t, "Selin Kaya", u.FullName())
	assert.Equal(t, "S", u.Initial())

	blank := User{}
	assert.Equal(t, "-", blank.FullName())
	assert.Equal(t, "?", blank.Initial())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, ProfileActive, StatusFor(true))
	assert.Equal(t, ProfilePassive, StatusFor(false))
}

func TestRememberMe(t *testing.T) {
	assert.True(t, (&LoginRequest{Remember: true}).RememberMe())
	assert.False(t, (&LoginRequest{}).RememberMe())
}

func TestRememberFlagJSON(t *testing.T) {
	cases := map[string]bool{
		`true`:    true,
		`false`:   false,
		`null`:    false,
		`"on"`:    true,
		`"true"`:  true,
		`"1"`:     true,
		`""`:      false,
		`"off"`:   false,
		`"false"`: false,
	}

	for raw, want := range cases {
		var req LoginRequest
		require.NoError(t, json.Unmarshal([]byte(`{"remember":`+raw+`}`), &req), raw)
		assert.Equal(t, want, req.RememberMe(), raw)
	}

	var req LoginRequest
	assert.Error(t, json.Unmarshal([]byte(`{"remember":"maybe"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"remember":3}`), &req))
}

func TestRememberFlagParam(t *testing.T) {
	var f RememberFlag
	require.NoError(t, f.UnmarshalParam("on"))
	assert.True(t, bool(f))
	require.NoError(t, f.UnmarshalParam(""))
	assert.False(t, bool(f))
	assert.Error(t, f.UnmarshalParam("maybe"))
}
