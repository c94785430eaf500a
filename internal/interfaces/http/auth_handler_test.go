package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
)

func TestAuth_Register_Y_Signup(t *testing.T) {
	env := buildTestApp(t, false)

	for i, path := range []string{"/api/auth/register", "/api/auth/signup"} {
		email := []string{"uno@x.in", "dos@x.in"}[i]
		resp, body := doRequest(t, env.app, http.MethodPost, path, "", map[string]string{
			"name": "Tienda", "email": email, "password": "password123", "shopName": "Kirana",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, path)
		assert.Equal(t, "User created successfully. Awaiting verification.", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "PENDING", user["verificationStatus"])
	}

	resp, body := doRequest(t, env.app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Otra", "email": "uno@x.in", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already exists", body["error"])
}

func TestAuth_Login_NoVerificado_Retorna403ConEstado(t *testing.T) {
	env := buildTestApp(t, false)
	env.seedUser(t, "u-1", "pend@x.in", entity.RoleRetailer, entity.StatusPending, time.Hour)

	resp, body := doRequest(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "pend@x.in", "password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Account not verified", body["error"])
	assert.Equal(t, "PENDING", body["verificationStatus"])
}

func TestAuth_Login_AprobadoYCheck(t *testing.T) {
	env := buildTestApp(t, false)
	env.seedUser(t, "u-1", "ok@x.in", entity.RoleWholesaler, entity.StatusApproved, time.Hour)

	resp, body := doRequest(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ok@x.in", "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doRequest(t, env.app, http.MethodGet, "/api/auth/check", "Bearer "+token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "WHOLESALER", body["user"].(map[string]any)["role"])
}

func TestAuth_Login_CredencialesInvalidas(t *testing.T) {
	env := buildTestApp(t, false)
	env.seedUser(t, "u-1", "ok@x.in", entity.RoleRetailer, entity.StatusApproved, time.Hour)

	resp, body := doRequest(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ok@x.in", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestAuth_Check_SinTokenOInvalido(t *testing.T) {
	env := buildTestApp(t, false)

	resp, body := doRequest(t, env.app, http.MethodGet, "/api/auth/check", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No token provided", body["error"])

	resp, body = doRequest(t, env.app, http.MethodGet, "/api/auth/check", "Bearer basura", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestUpload_SinStorage(t *testing.T) {
	env := buildTestApp(t, false)

	resp, body := doRequest(t, env.app, http.MethodPost, "/api/upload", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Image is required", body["error"])

	resp, body = doRequest(t, env.app, http.MethodPost, "/api/upload", "", map[string]string{
		"image": "data:image/png;base64,iVBORw0KGgo=",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STORAGE_DISABLED", body["code"])
}
