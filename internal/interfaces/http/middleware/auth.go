package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"shopgate.backend/internal/domain/entities"
	"shopgate.backend/internal/interfaces/http/response"
	"shopgate.backend/internal/usecases"
	"shopgate.backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	// APIKeyHeader carries a raw API key; it wins over a bearer token.
	APIKeyHeader = "X-Api-Key"
	// AuthorizationHeader is the header key for bearer authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// PrincipalKey is the gin context key for the resolved principal
	PrincipalKey = "principal"
)

// Authenticate resolves the request's credential material into a Principal
// and aborts with the typed failure if resolution fails. An API key header
// takes precedence: a request presenting both channels is resolved as the
// key and the bearer token is ignored.
func Authenticate(resolver *usecases.PrincipalUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawKey := c.GetHeader(APIKeyHeader)

		bearerToken := ""
		if authHeader := c.GetHeader(AuthorizationHeader); strings.HasPrefix(authHeader, BearerPrefix) {
			bearerToken = strings.TrimPrefix(authHeader, BearerPrefix)
		}

		principal, err := resolver.Resolve(c.Request.Context(), rawKey, bearerToken)
		if err != nil {
			logger.Warn(c.Request.Context(), "authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// GetPrincipal gets the resolved principal from context
func GetPrincipal(c *gin.Context) (entities.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(entities.Principal)
	return principal, ok
}
