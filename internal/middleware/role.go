package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/internal/types"
)

// RequireRole gates a route group to a single role. It must run after
// AuthMiddleware so the authenticated user is already in the context.
func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user type in context"})
			return
		}

		if user.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this action"})
			return
		}

		ctx.Next()
	}
}
