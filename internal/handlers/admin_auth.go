package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iotlab-kiit/registration-service/internal/auth"
)

// sessionCookie carries the admin session token. HttpOnly keeps it away
// from dashboard scripts; SameSite=Lax blocks cross-site PATCH forgery.
const sessionCookie = "admin_token"

const (
	contextAdminUsername = "admin_username"
	contextAdminRole     = "admin_role"
	contextAdminClaims   = "admin_claims"
)

// AdminAuthMiddleware guards the dashboard routes with the session cookie.
type AdminAuthMiddleware struct {
	tokens *auth.TokenService
}

func NewAdminAuthMiddleware(tokens *auth.TokenService) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{tokens: tokens}
}

// RequireSession aborts with 401 unless the request carries a valid,
// unexpired session cookie. On success the admin identity lands in the
// gin context for downstream handlers.
func (m *AdminAuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
			return
		}

		claims, ok := m.tokens.Verify(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Session expired or invalid"})
			return
		}

		c.Set(contextAdminUsername, claims.Username)
		c.Set(contextAdminRole, claims.Role)
		c.Set(contextAdminClaims, claims)
		c.Next()
	}
}

// adminClaims returns the verified session claims set by RequireSession.
func adminClaims(c *gin.Context) (auth.Claims, bool) {
	v, ok := c.Get(contextAdminClaims)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := v.(auth.Claims)
	return claims, ok
}
