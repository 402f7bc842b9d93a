package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkowalik/copydesk/internal/domain/model"
	pkgAuth "github.com/mkowalik/copydesk/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "copydesk_token"
)

// TokenParser resolves auth tokens into user identifiers.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// UserProvider fetches accounts for role checks.
type UserProvider interface {
	User(ctx context.Context, userID int64) (*model.User, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// AdminRequired rejects authenticated users without the admin role.
// Must run after AuthRequired.
func AdminRequired(users UserProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(UserIDContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		userID, _ := val.(int64)

		user, err := users.User(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if user.Role != model.RoleAdmin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
