package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinicore/backend/internal/infrastructure/auth"
	"github.com/clinicore/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(cfg AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Auth(cfg))
	r.GET("/protected", func(c *gin.Context) {
		actorID, ok := GetActorID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"actor_id": actorID.String()})
	})
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func newAuthTestService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-that-is-long-enough-123",
		TokenExpiration: time.Hour,
		Issuer:          "clinicore-test",
	})
}

func TestAuth_ValidToken(t *testing.T) {
	svc := newAuthTestService(t)
	router := newAuthTestRouter(AuthConfig{JWTService: svc})

	actorID := uuid.New()
	token, _, err := svc.GenerateToken(actorID, "Dr. Sarah Blake", "DOCTOR")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), actorID.String())
}

func TestAuth_MissingToken(t *testing.T) {
	router := newAuthTestRouter(AuthConfig{JWTService: newAuthTestService(t)})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuth_InvalidToken(t *testing.T) {
	router := newAuthTestRouter(AuthConfig{JWTService: newAuthTestService(t)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_SkipPaths(t *testing.T) {
	router := newAuthTestRouter(AuthConfig{
		JWTService: newAuthTestService(t),
		SkipPaths:  []string{"/health"},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_HeaderFallback(t *testing.T) {
	svc := newAuthTestService(t)

	t.Run("accepted when enabled", func(t *testing.T) {
		router := newAuthTestRouter(AuthConfig{JWTService: svc, AllowHeaderFallback: true})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Actor-ID", uuid.New().String())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejected when disabled", func(t *testing.T) {
		router := newAuthTestRouter(AuthConfig{JWTService: svc})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Actor-ID", uuid.New().String())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
