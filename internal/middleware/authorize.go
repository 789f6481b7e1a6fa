package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cesizen/api/internal/models"
)

// RequireRoles lets the request through when the caller holds at least
// one of the listed roles. Must run after Auth.
func RequireRoles(required ...models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		held := CallerRoles(c)

		for _, want := range required {
			for _, have := range held {
				if have == want {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Accès non autorisé",
		})
	}
}
