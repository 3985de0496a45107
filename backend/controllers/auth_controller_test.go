package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	status, envelope := doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "secret123",
		"name":     "Bob",
	})
	require.Equal(t, http.StatusCreated, status)

	data := dataOf(t, envelope)
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "bearer", data["token_type"])

	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bob", user["username"])
	assert.Equal(t, "user", user["role"])
	_, leaked := user["password_hash"]
	assert.False(t, leaked)

	status, envelope = doJSON(t, http.MethodPost, "/api/auth/login-json", "", map[string]interface{}{
		"username": "bob",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	token := jsonPath(dataOf(t, envelope), "access_token")
	require.NotEmpty(t, token)

	status, envelope = doJSON(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bob", jsonPath(dataOf(t, envelope), "username"))
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	payload := map[string]interface{}{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "secret123",
		"name":     "Carol",
	}
	status, _ := doJSON(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, status)

	// Same email under a new username still conflicts.
	payload["username"] = "carol2"
	status, _ = doJSON(t, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, status)
}

func TestRegisterValidation(t *testing.T) {
	status, envelope := doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username": "dq",
		"email":    "not-an-email",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	details, ok := envelope["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "name")
}

func TestLoginWrongPassword(t *testing.T) {
	status, _ := doJSON(t, http.MethodPost, "/api/auth/login-json", "", map[string]interface{}{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, http.MethodPost, "/api/auth/login-json", "", map[string]interface{}{
		"username": "nobody",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminRouteForbiddenForUsers(t *testing.T) {
	status, _ := doJSON(t, http.MethodPost, "/api/qaqf/levels", plainToken, map[string]interface{}{
		"level":       1,
		"name":        "X",
		"description": "Y",
	})
	assert.Equal(t, http.StatusForbidden, status)
}
