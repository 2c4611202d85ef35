package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SHOMANS/tourer-backend/internal/auth"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

// Identity is the authenticated caller extracted from the bearer token
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the caller carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Ctx key and helpers for the authenticated identity.
// Using unexported type to avoid collisions.

type ctxKey string

const identityKey ctxKey = "identity"

const ginIdentityKey = "identity"

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// GetIdentity returns the identity stored by the auth middleware
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(ginIdentityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// CORS handles cross-origin requests
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger emits one structured log line per completed request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if id, ok := GetIdentity(c); ok {
			logFields = append(logFields, "user_id", id.UserID)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		} else {
			slog.Debug("Request completed", logFields...)
		}
	}
}

// Recovery converts panics into 500 responses with detailed logging
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// RequireAuth authenticates the caller via a Bearer token and stores the
// identity in both the gin and request contexts
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// RequireAdmin authenticates the caller and rejects non-admin roles
func RequireAdmin(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth stores the identity when a valid token is present but lets
// anonymous requests through
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, tokens); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, tokens *auth.TokenManager) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	id := Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	c.Set(ginIdentityKey, id)
	c.Request = c.Request.WithContext(ContextWithIdentity(c.Request.Context(), id))
}
