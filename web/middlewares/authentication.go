package middlewares

import (
	"net/http"
	"strings"

	"timekeeper.com/timekeeper/security"
	"timekeeper.com/timekeeper/web/common"

	"github.com/gin-gonic/gin"
)

const (
	// AuthCookie is read when no Authorization header is sent.
	AuthCookie = "timekeeper.ApplicationCookie"

	principalKey = "principal"
)

// Authentication checks for a valid Bearer token or auth cookie and stores the
// caller as a security.Principal.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Try to get from cookie
			cookie, err := c.Cookie(AuthCookie)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("authentication required"))
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid authorization header"))
				return
			}

			tokenStr = parts[1]
		}

		principal, err := security.ParseIdentityToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		SetPrincipal(c, *principal)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles. It must run
// after Authentication.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("authentication required"))
			return
		}
		if !principal.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the caller stored by Authentication.
func GetPrincipal(c *gin.Context) (security.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return security.Principal{}, false
	}
	principal, ok := v.(security.Principal)
	return principal, ok
}

// SetPrincipal stores the caller on the request.
func SetPrincipal(c *gin.Context, principal security.Principal) {
	c.Set(principalKey, principal)
}
