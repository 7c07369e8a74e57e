package middleware

import (
	"net/http"
	"strings"

	"propertydeals_backend/internal/auth"
	"propertydeals_backend/internal/logger"
	"propertydeals_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the claims in the
// gin context under "userID", "activeRole" and "isAdmin".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("activeRole", claims.ActiveRole)
		c.Set("isAdmin", claims.IsAdmin)

		// Request-scoped logs carry the user from here on.
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// OptionalAuthMiddleware populates claims when a valid token is present but
// never rejects the request. Used on public routes that behave differently
// for signed-in users (draft visibility, inquiry attribution).
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if claims, err := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("activeRole", claims.ActiveRole)
				c.Set("isAdmin", claims.IsAdmin)
			}
		}
		c.Next()
	}
}

// RequireAdmin gates the /admin route groups.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("isAdmin")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}
		if admin, ok := isAdmin.(bool); !ok || !admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireActiveRole restricts a group to users currently acting in one of
// the given roles. Fine-grained approval checks (is the role approved, does
// the user own the resource) stay in the services.
func RequireActiveRole(roles ...models.Role) gin.HandlerFunc {
	roleSet := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("activeRole")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
			return
		}

		if !roleSet[models.Role(roleStr)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role"})
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID or "" when anonymous.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}
