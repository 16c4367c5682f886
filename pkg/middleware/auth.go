package middleware

import (
	"net/http"
	"strings"

	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/pkg/token"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// UserLoader resolves a token subject to the current identity record, so
// role changes take effect without re-issuing tokens.
type UserLoader interface {
	GetByID(id string) (*entity.User, error)
}

// CurrentUser returns the authenticated user, or nil for anonymous
// callers.
func CurrentUser(c *gin.Context) *entity.User {
	if u, exists := c.Get(userKey); exists {
		if user, ok := u.(*entity.User); ok {
			return user
		}
	}
	return nil
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(tokens *token.Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c, tokens, users)
		if !ok {
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the acting user when a token is supplied and lets
// anonymous requests through; a supplied but invalid token still fails.
func OptionalAuth(tokens *token.Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c, tokens, users)
		if !ok {
			return
		}
		if user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// authenticate returns (nil, true) for anonymous requests, (user, true)
// on success, and (nil, false) after writing a 401.
func authenticate(c *gin.Context, tokens *token.Service, users UserLoader) (*entity.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
		c.Abort()
		return nil, false
	}

	claims, err := tokens.ValidateToken(parts[1])
	if err != nil || claims.Type != token.TypeAccess {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		c.Abort()
		return nil, false
	}

	user, err := users.GetByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown identity"})
		c.Abort()
		return nil, false
	}
	return user, true
}
