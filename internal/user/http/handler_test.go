package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/dev-resources-backend/internal/auth"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/kvstore"
	"github.com/nekogravitycat/dev-resources-backend/internal/user"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	svc := user.NewService(
		user.NewKVRepository(kvstore.NewMemoryStore()),
		auth.NewBcryptPasswordHasherWithCost(4),
		nil,
	)

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, jwtManager), auth.AuthRequired(jwtManager))
	return r
}

func executeRequest(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	r := setupRouter()

	var token string

	t.Run("Register", func(t *testing.T) {
		w := executeRequest(r, "POST", "/v1/auth/register", RegisterRequest{
			Email: "ada@example.com", Password: "password123", DisplayName: "Ada",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp MeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ada@example.com", resp.User.Email)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Register: duplicate email", func(t *testing.T) {
		w := executeRequest(r, "POST", "/v1/auth/register", RegisterRequest{
			Email: "ada@example.com", Password: "password123",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Register: bad payload", func(t *testing.T) {
		w := executeRequest(r, "POST", "/v1/auth/register", RegisterRequest{
			Email: "not-an-email", Password: "password123",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login", func(t *testing.T) {
		w := executeRequest(r, "POST", "/v1/auth/login", LoginRequest{
			Email: "ada@example.com", Password: "password123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, 3600, resp.ExpiresIn)
		token = resp.AccessToken
	})

	t.Run("Login: wrong password", func(t *testing.T) {
		w := executeRequest(r, "POST", "/v1/auth/login", LoginRequest{
			Email: "ada@example.com", Password: "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Me", func(t *testing.T) {
		w := executeRequest(r, "GET", "/v1/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp MeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Ada", resp.User.DisplayName)
		assert.NotNil(t, resp.User.LastLoginAt)
	})

	t.Run("Me: no token", func(t *testing.T) {
		w := executeRequest(r, "GET", "/v1/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
