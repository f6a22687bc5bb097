package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

const defaultInsumoLimit = 50

// InsumoHandler serves the supply CRUD family.
type InsumoHandler struct {
	*Base
	svc *catalog.InsumoService
}

// NewInsumoHandler creates a supply handler.
func NewInsumoHandler(base *Base, svc *catalog.InsumoService) *InsumoHandler {
	return &InsumoHandler{Base: base, svc: svc}
}

// List returns supplies paginated.
// GET /api/insumos?page&limit&search&categoria&status
func (h *InsumoHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), listFilter(c, defaultInsumoLimit))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result)
}

// Get returns one supply.
// GET /api/insumos/:id
func (h *InsumoHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ins, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, ins)
}

// Create inserts a supply together with its zero stock row.
// POST /api/insumos
func (h *InsumoHandler) Create(c *gin.Context) {
	var in catalog.CreateInsumo
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	ins, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "insumo", ins.IDInsumo, postgres.AuditActionCreate, ins)
	respondCreated(c, ins)
}

// Update applies a partial update.
// PUT /api/insumos/:id
func (h *InsumoHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch catalog.UpdateInsumo
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	ins, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "insumo", id, postgres.AuditActionUpdate, patch)
	respondOK(c, ins)
}

// Delete marks the supply inactive.
// DELETE /api/insumos/:id
func (h *InsumoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	h.record(c, "insumo", id, postgres.AuditActionDelete, nil)
	respondMessage(c, "Insumo eliminado correctamente")
}
