package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cesizen/api/internal/config"
	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
	"cesizen/api/internal/security"
)

const (
	ctxUserKey  = "current_user"
	ctxRolesKey = "user_roles"
)

// Auth verifies the bearer token, resolves the caller's user row and
// role set, and attaches both to the request context.
func Auth(cfg *config.AppConfig, users repository.UserStore, roles repository.RoleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentification requise",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token invalide ou expiré",
			})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Utilisateur non trouvé",
			})
			return
		}

		names, err := roles.NamesByUser(c.Request.Context(), user.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Une erreur interne est survenue",
			})
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxRolesKey, names)

		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(ctxUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// CallerRoles returns the role names attached by Auth.
func CallerRoles(c *gin.Context) []models.RoleName {
	val, exists := c.Get(ctxRolesKey)
	if !exists {
		return nil
	}
	names, _ := val.([]models.RoleName)
	return names
}
