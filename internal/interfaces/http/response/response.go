package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "shopgate.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error to its HTTP shape. Escalation denials carry the
// offending permission names; everything else renders as a short
// machine-oriented reason.
func Error(c *gin.Context, err error) {
	if esc, ok := domainerrors.AsEscalation(err); ok {
		c.JSON(http.StatusForbidden, gin.H{
			"error":               esc.Error(),
			"invalid_permissions": esc.InvalidPermissions,
		})
		return
	}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}

	status, message := statusFor(err)
	c.JSON(status, gin.H{"error": message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domainerrors.ErrMissingCredential),
		errors.Is(err, domainerrors.ErrInvalidCredential),
		errors.Is(err, domainerrors.ErrCredentialExpired),
		errors.Is(err, domainerrors.ErrMalformedCredential),
		errors.Is(err, domainerrors.ErrPrincipalNotFound),
		errors.Is(err, domainerrors.ErrCredentialRevoked),
		errors.Is(err, domainerrors.ErrUserNotFound),
		errors.Is(err, domainerrors.ErrInvalidPassword):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domainerrors.ErrForbidden):
		return http.StatusForbidden, "insufficient permissions"
	case errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return http.StatusConflict, "already exists or database error"
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
