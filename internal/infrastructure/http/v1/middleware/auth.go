package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"abarrote/internal/core/appctx"
	"abarrote/internal/domain/auth"
)

// Auth is the gate in front of every protected route. It verifies the
// bearer token and attaches the principal to the request context;
// missing header, wrong scheme or a bad token end the request with
// 401 before any handler runs.
func Auth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Token no proporcionado")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Formato de token inválido")
			return
		}

		claims, err := svc.VerifyToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Token inválido")
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), &appctx.UserContext{
			UserID:   claims.UserID(),
			Username: claims.Username,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   message,
	})
}
