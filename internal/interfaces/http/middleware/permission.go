package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"shopgate.backend/internal/interfaces/http/response"
	"shopgate.backend/internal/usecases"
)

// RequireAny gates a route behind an ordered requirement list: plain
// permission names or "role:<name>" entries, satisfied by the first match.
// Route definitions supply the list; the evaluator owns the semantics.
func RequireAny(authz *usecases.AuthzUsecase, requirements ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		if err := authz.Authorize(c.Request.Context(), principal, requirements); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}
