package api

import (
	"errors"
	"net/http"

	"whatsapp-console/internal/auth"
	"whatsapp-console/internal/console"
	"whatsapp-console/internal/probe"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidOTP), errors.Is(err, auth.ErrInvalidSession):
		return http.StatusUnauthorized
	case errors.Is(err, console.ErrMissingRequiredFields),
		errors.Is(err, console.ErrNoContactSelected),
		errors.Is(err, console.ErrEmptyMessage),
		errors.Is(err, console.ErrNoAIKey),
		errors.Is(err, probe.ErrURLRequired):
		return http.StatusBadRequest
	case errors.Is(err, console.ErrNoSavedConfig), errors.Is(err, console.ErrContactNotFound):
		return http.StatusNotFound
	case errors.Is(err, console.ErrConfigNotSaved),
		errors.Is(err, console.ErrConnecting),
		errors.Is(err, console.ErrSessionEnded):
		return http.StatusConflict
	case errors.Is(err, console.ErrConnectFailed),
		errors.Is(err, console.ErrAIFailed),
		errors.Is(err, console.ErrEmptyReply):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
