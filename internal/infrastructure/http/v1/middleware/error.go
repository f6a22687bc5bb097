package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"abarrote/internal/core/apperror"
	"abarrote/pkg/logger"
)

// ErrorHandler is the single translation point from errors to HTTP.
// Handlers push errors with c.Error and abort; this middleware maps
// the first one to the response envelope. Unknown errors become a
// generic 500 and are only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors[0].Err
		ctx := c.Request.Context()

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.HTTPStatus >= 500 {
				logger.Error(ctx, "request error",
					"code", appErr.Code,
					"error", appErr.Error(),
					"path", c.Request.URL.Path,
				)
			}

			c.JSON(appErr.HTTPStatus, gin.H{
				"success": false,
				"error":   appErr.Message,
			})
			return
		}

		logger.Error(ctx, "unhandled error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
		)

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Error interno del servidor",
		})
	}
}
