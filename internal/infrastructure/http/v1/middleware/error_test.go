package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"abarrote/internal/core/apperror"
)

func errorRouter(err error) *gin.Engine {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(err)
		c.Abort()
	})
	return router
}

func TestErrorHandlerMapsAppErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			"not found",
			apperror.NewNotFound("Producto no encontrado"),
			http.StatusNotFound,
			`{"success":false,"error":"Producto no encontrado"}`,
		},
		{
			"duplicate reported as 400",
			apperror.NewDuplicate("El SKU ya existe"),
			http.StatusBadRequest,
			`{"success":false,"error":"El SKU ya existe"}`,
		},
		{
			"foreign key",
			apperror.NewForeignKey("La plataforma o cliente especificado no existe"),
			http.StatusBadRequest,
			`{"success":false,"error":"La plataforma o cliente especificado no existe"}`,
		},
		{
			"unauthorized",
			apperror.NewUnauthorized("Credenciales inválidas"),
			http.StatusUnauthorized,
			`{"success":false,"error":"Credenciales inválidas"}`,
		},
		{
			"internal hides cause",
			apperror.NewInternal(errors.New("pq: connection refused")),
			http.StatusInternalServerError,
			`{"success":false,"error":"Error interno del servidor"}`,
		},
		{
			"unknown error becomes generic 500",
			errors.New("pq: connection refused"),
			http.StatusInternalServerError,
			`{"success":false,"error":"Error interno del servidor"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/fail", nil)
			errorRouter(tt.err).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("unexpected")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Error interno del servidor"}`, rec.Body.String())
}
