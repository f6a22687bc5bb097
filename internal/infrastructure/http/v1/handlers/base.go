// Package handlers translates HTTP requests into service calls and
// shapes the response envelope {success, data?, message?, error?}.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain"
	"abarrote/internal/infrastructure/storage/postgres"
	"abarrote/pkg/logger"
)

// Base carries the pieces every handler shares.
type Base struct {
	Audit *postgres.AuditService
}

// respondOK writes a 200 envelope with data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondCreated writes a 201 envelope with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// respondMessage writes a 200 envelope with a message only.
func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// fail hands the error to the error middleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// failBinding maps a body-binding failure to a validation error.
func failBinding(c *gin.Context, err error) {
	fail(c, apperror.NewValidation("Datos de entrada inválidos").WithCause(err))
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, apperror.NewValidation("ID inválido"))
		return 0, false
	}
	return id, true
}

// listFilter builds the common listing filter from query parameters.
// Page and limit are clamped to at least one; repositories trust the
// handler to sanitize.
func listFilter(c *gin.Context, defaultLimit int) domain.ListFilter {
	filter := domain.ListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", defaultLimit),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}

	if v := c.Query("categoria"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CategoriaID = &id
		}
	}
	if v := c.Query("tipoProducto"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.TipoProducto = &id
		}
	}

	return filter
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// record writes an audit entry for a successful mutation. Auditing is
// best effort: a failure is logged, never surfaced to the client.
func (b *Base) record(c *gin.Context, entidad string, id int64, action postgres.AuditAction, payload any) {
	if b == nil || b.Audit == nil {
		return
	}
	ctx := c.Request.Context()
	if err := b.Audit.Record(ctx, entidad, id, action, payload); err != nil {
		logger.Warn(ctx, "audit record failed", "entidad", entidad, "id", id, "error", err)
	}
}
