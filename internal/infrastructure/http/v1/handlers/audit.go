package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/infrastructure/storage/postgres"
)

// AuditHandler serves the change trail of an entity.
type AuditHandler struct {
	svc *postgres.AuditService
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(svc *postgres.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List returns the recorded mutations of one entity, newest first.
// GET /api/auditoria/:entidad/:id
func (h *AuditHandler) List(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.svc.List(c.Request.Context(), c.Param("entidad"), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, entries)
}
