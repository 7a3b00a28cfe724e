package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/logger"
)

// ErrorHandler returns a Gin middleware that renders the last error set on
// the Gin context, unless a response has already been written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError writes err as a JSON response. Errors carrying field messages
// render as an ordered {"field": ["message", ...]} object; the assistant's
// errors render as {"error": message}; every other AppError renders as
// {"detail": message, "code": code}. Non-AppErrors are logged and reported
// as internal errors without details.
func WriteError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"message", appErr.Message,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	switch {
	case len(appErr.Fields) > 0:
		c.JSON(appErr.StatusCode, appErr.Fields)
	case appErr.Code == apperrors.ErrAssistantUnavailable.Code:
		c.JSON(appErr.StatusCode, gin.H{"error": appErr.Message})
	default:
		c.JSON(appErr.StatusCode, gin.H{"detail": appErr.Message, "code": appErr.Code})
	}
}
