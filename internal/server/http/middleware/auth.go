package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	pkgAuth "github.com/Lonewolf123457499/CarWashApp/internal/pkg/auth"
)

const (
	// IdentityContextKey is a gin context key for the authenticated caller.
	IdentityContextKey = "identity"
	authCookieName     = "carwash_token"
)

// TokenParser resolves auth tokens into caller identities.
type TokenParser interface {
	ParseToken(token string) (model.Identity, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			Abort(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
			return
		}
		identity, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				Abort(c, http.StatusUnauthorized, CodeUnauthorized, "invalid or expired token")
				return
			}
			_ = c.Error(err)
			Abort(c, http.StatusInternalServerError, CodeInternal, "internal error")
			return
		}
		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// RequireRole lets through callers holding one of roles. It must run after
// AuthRequired.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			Abort(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
			return
		}
		if !slices.Contains(roles, identity.Role) {
			Abort(c, http.StatusForbidden, CodeForbidden, "operation not permitted for role "+string(identity.Role))
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller stored by AuthRequired.
func CurrentIdentity(c *gin.Context) (model.Identity, bool) {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := val.(model.Identity)
	return identity, ok
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
