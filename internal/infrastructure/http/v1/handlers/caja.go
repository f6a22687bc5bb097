package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// CajaHandler serves the box CRUD family.
type CajaHandler struct {
	*Base
	svc *catalog.CajaService
}

// NewCajaHandler creates a box handler.
func NewCajaHandler(base *Base, svc *catalog.CajaService) *CajaHandler {
	return &CajaHandler{Base: base, svc: svc}
}

// List returns boxes.
// GET /api/cajas?status&search
func (h *CajaHandler) List(c *gin.Context) {
	filter := listFilter(c, 0)
	filter.Limit = 0

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result.Items)
}

// Get returns one box.
// GET /api/cajas/:id
func (h *CajaHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	caja, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, caja)
}

// Create inserts a box.
// POST /api/cajas
func (h *CajaHandler) Create(c *gin.Context) {
	var in catalog.CreateCaja
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	caja, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "caja", caja.IDCaja, postgres.AuditActionCreate, caja)
	respondCreated(c, caja)
}

// Update applies a partial update.
// PUT /api/cajas/:id
func (h *CajaHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch catalog.UpdateCaja
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	caja, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "caja", id, postgres.AuditActionUpdate, patch)
	respondOK(c, caja)
}

// Delete marks the box inactive.
// DELETE /api/cajas/:id
func (h *CajaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	h.record(c, "caja", id, postgres.AuditActionDelete, nil)
	respondMessage(c, "Caja eliminada correctamente")
}
