package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jphacks/hs-2501/internal/service"
)

// AuthMiddleware returns a Gin middleware that resolves the caller's
// bearer token to a user. The token is read from the X-Auth-Token header,
// the token query parameter, or an Authorization: Bearer header; it is
// valid only while its session exists in the store and the user is still
// registered.
func AuthMiddleware(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.Authenticate(c.Request.Context(), extractToken(c))
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		// Expose the caller's identity to the route handlers
		c.Set("userId", user.ID)
		c.Set("username", user.Username)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := c.GetHeader("X-Auth-Token"); token != "" {
		return token
	}
	if token := c.Query("token"); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
