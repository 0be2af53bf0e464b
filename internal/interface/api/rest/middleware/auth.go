package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"filevault-api/internal/application/ports"
)

const (
	CtxUsername  = "username"
	CtxUserRoles = "userRoles"
)

const bearerPrefix = "Bearer "

// AuthMiddleware rejects requests without a valid bearer token. Every
// failure yields the same body so callers cannot tell why a token was refused.
func AuthMiddleware(tokens ports.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "unauthorized"},
			)
			return
		}

		identity, err := tokens.Validate(strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "unauthorized"},
			)
			return
		}

		c.Set(CtxUsername, identity.Username)
		c.Set(CtxUserRoles, identity.Roles)

		c.Next()
	}
}
