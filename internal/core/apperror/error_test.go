package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
		http int
	}{
		{"validation", NewValidation("ID inválido"), CodeValidation, http.StatusBadRequest},
		{"not found", NewNotFound("Producto no encontrado"), CodeNotFound, http.StatusNotFound},
		{"duplicate", NewDuplicate("El SKU ya existe"), CodeDuplicate, http.StatusBadRequest},
		{"foreign key", NewForeignKey("La plataforma o cliente especificado no existe"), CodeForeignKey, http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("Credenciales inválidas"), CodeUnauthorized, http.StatusUnauthorized},
		{"internal", NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.http, tt.err.HTTPStatus)
			assert.Equal(t, tt.http, GetHTTPStatus(tt.err))
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	err := NewInternal(errors.New("pq: connection refused"))
	assert.Equal(t, "Error interno del servidor", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	orig := NewNotFound("Insumo no encontrado")
	wrapped := fmt.Errorf("list supplies: %w", orig)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, orig, appErr)
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(wrapped))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := NewDuplicate("El cliente ya existe").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsDuplicate(err))
}

func TestGetHTTPStatusUnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("Datos de entrada inválidos").WithDetail("field", "sku")
	assert.Equal(t, "sku", err.Details["field"])
}
