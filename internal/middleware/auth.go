package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/internal/service"
)

// RequireAuth verifies the bearer token and stores the caller identity in
// the request context for handlers to pick up.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			return
		}

		claims, err := service.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if _, err := uuid.Parse(claims.Subject); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Query fallback for clients that cannot set headers.
	return c.Query("token")
}

// AuthUser rebuilds the acting identity stored by RequireAuth.
func AuthUser(c *gin.Context) (dto.AuthUser, bool) {
	idValue, exists := c.Get("user_id")
	if !exists {
		return dto.AuthUser{}, false
	}
	userID, err := uuid.Parse(idValue.(string))
	if err != nil {
		return dto.AuthUser{}, false
	}
	role := entity.RoleRegular
	if roleValue, ok := c.Get("user_role"); ok {
		role = entity.UserRole(roleValue.(string))
	}
	return dto.AuthUser{UserID: userID, Role: role}, true
}
