package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	ts := newTestServer(t)

	t.Run("creates account and issues token", func(t *testing.T) {
		w := ts.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"name":     "Ada Lovelace",
			"email":    "ada@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		assert.NotEmpty(t, body["token"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "ada@example.com", user["email"])
		// password hash never leaves the server
		assert.NotContains(t, user, "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := ts.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"name":     "Ada Again",
			"email":    "ada@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email is already in use", decodeBody(t, w)["message"])
	})

	t.Run("short password fails validation", func(t *testing.T) {
		w := ts.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"name":     "Ada",
			"email":    "ada2@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decodeBody(t, w)["errors"])
	})
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials", func(t *testing.T) {
		w := ts.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "ada@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["token"])

		// the token works against a protected route
		token := body["token"].(string)
		me := ts.request(t, http.MethodGet, "/api/users/me", token, nil)
		assert.Equal(t, http.StatusOK, me.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := ts.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "ada@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
