package middleware

import (
	"net/http"
	"strings"

	"github.com/clinicore/backend/internal/infrastructure/auth"
	"github.com/clinicore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Auth context keys
const (
	ActorIDKey    = "actor_id"
	ActorNameKey  = "actor_name"
	ActorRoleKey  = "actor_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	// AllowHeaderFallback accepts an X-Actor-ID header in place of a
	// token. Development only; disabled in production config.
	AllowHeaderFallback bool
}

// Auth validates the bearer token and stores the acting staff member's
// identity in the request context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" && cfg.AllowHeaderFallback {
			if actorID := c.GetHeader("X-Actor-ID"); actorID != "" {
				if id, err := uuid.Parse(actorID); err == nil {
					c.Set(ActorIDKey, id)
					c.Next()
					return
				}
			}
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Token validation failed")
			return
		}

		actorID, err := uuid.Parse(claims.ActorID)
		if err != nil {
			abortUnauthorized(c, "Invalid actor identity in token")
			return
		}

		c.Set(ActorIDKey, actorID)
		c.Set(ActorNameKey, claims.FullName)
		c.Set(ActorRoleKey, claims.Role)
		c.Next()
	}
}

// GetActorID returns the authenticated actor's ID from the context
func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ActorIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, requestID))
}
